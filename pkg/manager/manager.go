// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/nfvri/itm/pkg/batch"
	"github.com/nfvri/itm/pkg/itm"
	"github.com/nfvri/itm/pkg/model"
	"github.com/nfvri/itm/pkg/observability"
	redisLib "github.com/nfvri/itm/pkg/store/redis"
	"github.com/nfvri/itm/pkg/utils"
	"github.com/nfvri/itm/pkg/utils/solver"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	defaultProfileIntervals = 100
	elevationTimeout        = 30 * time.Second
)

// Config is a manager configuration
type Config struct {
	ConfigFile   string // explicit scenario file, overrides ScenarioName
	ScenarioName string // looked up in the viper search path
	RedisEnabled bool
	MetricsFile  string // node exporter textfile written on Close
	Workers      int
	Climate      string // overrides the scenario's radio climate by name
	Ground       string // overrides permittivity and conductivity by ground name
}

// Manager loads a scenario and runs predictions for it
type Manager struct {
	config    Config
	scenario  model.Scenario
	link      model.Link
	rdbClient *goredis.Client
	elevation ElevationSource
	metrics   *observability.Collector
	engine    *batch.Engine
}

// NewManager creates a new manager
func NewManager(config *Config) (*Manager, error) {
	log.Info("Creating Manager")
	if config.ConfigFile == "" && config.ScenarioName == "" {
		return nil, errors.New(errors.Invalid, "no scenario configured")
	}
	return &Manager{config: *config}, nil
}

// Start loads the scenario and initialises the stores
func (m *Manager) Start(ctx context.Context) error {
	log.Info("Starting Manager")
	var err error
	if m.config.ConfigFile != "" {
		err = model.LoadConfigFile(&m.scenario, m.config.ConfigFile)
	} else {
		err = model.LoadConfig(&m.scenario, m.config.ScenarioName)
	}
	if err != nil {
		log.Error(err)
		return err
	}
	if err := m.applyOverrides(); err != nil {
		return err
	}
	if key := utils.GetEnv("ITM_MAPS_API_KEY", ""); key != "" {
		m.elevation, err = NewMapsElevation(key, utils.GetEnv("ITM_MAPS_BASE_URL", ""))
		if err != nil {
			return err
		}
	}

	m.metrics, err = observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	m.engine = &batch.Engine{Metrics: m.metrics, Workers: m.config.Workers}

	if m.config.RedisEnabled {
		if err := m.initRedis(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) applyOverrides() error {
	if m.config.Climate != "" {
		c, err := model.ParseClimate(m.config.Climate)
		if err != nil {
			return err
		}
		m.scenario.System.Climate = c
	}
	if m.config.Ground != "" {
		g, err := model.ParseGround(m.config.Ground)
		if err != nil {
			return err
		}
		m.scenario.System.Permittivity = g.Permittivity
		m.scenario.System.Conductivity = g.Conductivity
	}
	return nil
}

func (m *Manager) initRedis(ctx context.Context) error {
	host := utils.GetEnv("REDIS_HOST", "localhost")
	port := utils.GetEnv("REDIS_PORT", "6379")
	if addr := m.scenario.Redis.Addr; addr != "" {
		var err error
		if host, port, err = net.SplitHostPort(addr); err != nil {
			return errors.New(errors.Invalid, "bad redis address %q: %v", addr, err)
		}
	}
	m.rdbClient = redisLib.InitClient(host, port, strconv.Itoa(m.scenario.Redis.DB), "", m.scenario.Redis.Password)
	store, err := redisLib.NewRedisStore(ctx, m.rdbClient)
	if err != nil {
		return err
	}
	m.engine.Store = store
	return nil
}

// Scenario returns the loaded scenario
func (m *Manager) Scenario() model.Scenario {
	return m.scenario
}

// Link resolves the scenario's terrain profile and builds its link. An
// inline profile wins over a profile file, which wins over an online
// elevation lookup between the scenario's terminals.
func (m *Manager) Link() (model.Link, error) {
	if !m.link.Profile.IsZero() {
		return m.link, nil
	}
	s := m.scenario
	var profile model.TerrainProfile
	var err error
	switch {
	case len(s.Profile) == 0 && s.ProfileFile != "":
		profile, err = m.loadProfileFile()
	case len(s.Profile) == 0 && m.elevation != nil:
		profile, err = m.lookupProfile()
	default:
		link, err := s.PointToPointLink()
		if err != nil {
			return model.Link{}, err
		}
		m.link = link
		return m.link, nil
	}
	if err != nil {
		return model.Link{}, err
	}
	m.link = model.Link{ID: s.Name, Profile: profile, System: s.System, Variability: s.Variability}
	return m.link, nil
}

// lookupProfile samples the elevation source along the great circle between
// the scenario's terminals.
func (m *Manager) lookupProfile() (model.TerrainProfile, error) {
	s := m.scenario
	var zero model.Coordinate
	if s.Tx == zero && s.Rx == zero {
		return model.TerrainProfile{}, errors.New(errors.Invalid, "scenario %s has no tx/rx coordinates", s.Name)
	}
	intervals := s.ProfileIntervals
	if intervals <= 0 {
		intervals = defaultProfileIntervals
	}
	ctx, cancel := context.WithTimeout(context.Background(), elevationTimeout)
	defer cancel()
	z, err := m.elevation.Elevations(ctx, s.Tx, s.Rx, intervals+1)
	if err != nil {
		return model.TerrainProfile{}, err
	}
	log.Infof("Looked up %d elevations between %v and %v", len(z), s.Tx, s.Rx)
	return model.NewTerrainProfile(utils.ProfileStep(s.Tx, s.Rx, intervals), z)
}

// loadProfileFile reads either a packed PFL or bare elevations, which are
// spaced along the great circle between the scenario's terminals.
func (m *Manager) loadProfileFile() (model.TerrainProfile, error) {
	values, err := ReadProfileFile(m.scenario.ProfileFile)
	if err != nil {
		return model.TerrainProfile{}, err
	}
	if profile, err := model.ParsePFL(values); err == nil {
		return profile, nil
	}
	var zero model.Coordinate
	if m.scenario.Tx == zero && m.scenario.Rx == zero {
		return model.TerrainProfile{}, errors.New(errors.Invalid,
			"%s holds bare elevations but the scenario has no tx/rx coordinates", m.scenario.ProfileFile)
	}
	step := utils.ProfileStep(m.scenario.Tx, m.scenario.Rx, len(values)-1)
	return model.NewTerrainProfile(step, values)
}

// PointToPoint predicts the scenario's link
func (m *Manager) PointToPoint() (model.LinkResult, itm.IntermediateValues, error) {
	link, err := m.Link()
	if err != nil {
		return model.LinkResult{}, itm.IntermediateValues{}, err
	}
	r, iv := itm.PointToPointEx(link.Profile, link.System, link.Variability)
	m.metrics.Observe(r)
	return model.LinkResult{LinkID: link.ID, Distance: link.Profile.Distance(), Result: r}, iv, nil
}

// Area predicts the scenario's area mode parameters
func (m *Manager) Area() (model.Result, itm.IntermediateValues) {
	r, iv := itm.AreaEx(m.scenario.Area, m.scenario.System, m.scenario.Variability)
	m.metrics.Observe(r)
	return r, iv
}

// Sweep predicts the scenario's link at SweepPoints distances and stores
// the result set as a snapshot.
func (m *Manager) Sweep(ctx context.Context, snapshotId string) (model.Snapshot, error) {
	link, err := m.Link()
	if err != nil {
		return model.Snapshot{}, err
	}
	points := m.scenario.SweepPoints
	if points <= 0 {
		points = link.Profile.Intervals()
	}
	links, err := batch.SweepLinks(link, points)
	if err != nil {
		return model.Snapshot{}, err
	}
	return m.engine.Run(ctx, snapshotId, links)
}

// Availability finds the time percentage over which the scenario's link
// stays within MaxLoss.
func (m *Manager) Availability() (solver.Availability, error) {
	if m.scenario.MaxLoss <= 0 {
		return solver.Availability{}, errors.New(errors.Invalid, "scenario has no maxLoss")
	}
	link, err := m.Link()
	if err != nil {
		return solver.Availability{}, err
	}
	return solver.TimeAvailability(link.Profile, link.System, link.Variability, m.scenario.MaxLoss)
}

// Close flushes the metrics and releases the redis client
func (m *Manager) Close() {
	log.Info("Closing Manager")
	if m.config.MetricsFile != "" {
		if err := m.metrics.WriteTextfile(m.config.MetricsFile); err != nil {
			log.Errorf("unable to write metrics to %s: %v", m.config.MetricsFile, err)
		}
	}
	if m.rdbClient != nil {
		if err := m.rdbClient.Close(); err != nil {
			log.Warn(err)
		}
	}
}
