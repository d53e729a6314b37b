// itm predicts basic transmission loss with the Irregular Terrain Model for
// the scenario described in a YAML configuration file.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nfvri/itm/pkg/graphs"
	"github.com/nfvri/itm/pkg/manager"
	"github.com/nfvri/itm/pkg/model"
	"github.com/nfvri/itm/pkg/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile   string
	scenarioName string
	outputFormat string
	plotDir      string
	metricsFile  string
	snapshotId   string
	redisEnabled bool
	workers      int
	intervals    int
	climate      string
	ground       string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "itm",
	Short: "Irregular Terrain Model propagation loss predictions",
	Long: `itm computes basic transmission loss over irregular terrain with the
Longley-Rice Irregular Terrain Model, either point-to-point over a terrain
profile or in area mode from statistical terrain parameters.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

var p2pCmd = &cobra.Command{
	Use:   "p2p",
	Short: "Point-to-point prediction over the scenario's terrain profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(cmd.Context(), func(mgr *manager.Manager) error {
			lr, iv, err := mgr.PointToPoint()
			if err != nil {
				return err
			}
			if plotDir != "" {
				if err := saveProfilePlot(mgr, plotDir); err != nil {
					return err
				}
			}
			rep := newPointReport(lr, iv)
			rep.Frequency = mgr.Scenario().System.Frequency
			return printReport(rep)
		})
	},
}

var areaCmd = &cobra.Command{
	Use:   "area",
	Short: "Area mode prediction from the scenario's terrain irregularity and siting",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(cmd.Context(), func(mgr *manager.Manager) error {
			r, iv := mgr.Area()
			s := mgr.Scenario()
			lr := model.LinkResult{LinkID: s.Name, Distance: s.Area.Distance * 1000, Result: r}
			rep := newPointReport(lr, iv)
			rep.Frequency = s.System.Frequency
			return printReport(rep)
		})
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Loss against distance over growing prefixes of the terrain profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(cmd.Context(), func(mgr *manager.Manager) error {
			snapshot, err := mgr.Sweep(cmd.Context(), snapshotId)
			if err != nil {
				return err
			}
			if plotDir != "" {
				name := mgr.Scenario().Name
				if err := graphs.SaveLossCurve(snapshot.Results, name, filepath.Join(plotDir, name+"-sweep.png")); err != nil {
					return err
				}
				losses := make([]float64, len(snapshot.Results))
				for i, r := range snapshot.Results {
					losses[i] = r.Result.Loss
				}
				if err := graphs.SaveLossDistribution(losses, 20, filepath.Join(plotDir, name+"-sweep-hist.png")); err != nil {
					return err
				}
			}
			return printSnapshot(snapshot)
		})
	},
}

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Time percentage over which the link loss stays within maxLoss",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(cmd.Context(), func(mgr *manager.Manager) error {
			a, err := mgr.Availability()
			if err != nil {
				return err
			}
			return printAvailability(mgr.Scenario(), a)
		})
	},
}

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Sample locations between the scenario's tx and rx for an elevation lookup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(cmd.Context(), func(mgr *manager.Manager) error {
			s := mgr.Scenario()
			return printPoints(utils.ProfilePoints(s.Tx, s.Rx, intervals), utils.ProfileStep(s.Tx, s.Rx, intervals))
		})
	},
}

func saveProfilePlot(mgr *manager.Manager, dir string) error {
	link, err := mgr.Link()
	if err != nil {
		return err
	}
	return graphs.SaveProfile(link.Profile, link.System, filepath.Join(dir, link.ID+"-profile.png"))
}

func withManager(ctx context.Context, run func(*manager.Manager) error) error {
	mgr, err := manager.NewManager(&manager.Config{
		ConfigFile:   configFile,
		ScenarioName: scenarioName,
		RedisEnabled: redisEnabled,
		MetricsFile:  metricsFile,
		Workers:      workers,
		Climate:      climate,
		Ground:       ground,
	})
	if err != nil {
		return err
	}
	if err := mgr.Start(ctx); err != nil {
		return err
	}
	defer mgr.Close()
	if plotDir != "" {
		if err := os.MkdirAll(plotDir, os.ModePerm); err != nil {
			return err
		}
	}
	return run(mgr)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "scenario file (default: search for the named scenario)")
	rootCmd.PersistentFlags().StringVarP(&scenarioName, "scenario", "s", "itm", "scenario name looked up in ., $HOME/.itm and /etc/itm")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, yaml, json)")
	rootCmd.PersistentFlags().StringVar(&plotDir, "plot", "", "directory for profile and loss plots")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write prometheus metrics to this textfile on exit")
	rootCmd.PersistentFlags().StringVar(&climate, "climate", "", "override the radio climate (e.g. continental-temperate, desert)")
	rootCmd.PersistentFlags().StringVar(&ground, "ground", "", "override ground constants (poor, average, good, fresh-water, sea-water)")
	rootCmd.PersistentFlags().BoolVar(&redisEnabled, "redis", false, "persist sweep snapshots in redis")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	sweepCmd.Flags().StringVar(&snapshotId, "snapshot", "", "snapshot id to reuse or store under")
	pointsCmd.Flags().IntVar(&intervals, "intervals", 100, "profile intervals between tx and rx")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent predictions (default GOMAXPROCS)")

	rootCmd.AddCommand(p2pCmd, areaCmd, sweepCmd, availabilityCmd, pointsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
