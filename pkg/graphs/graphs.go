// Package graphs renders terrain profiles and loss curves with gonum/plot.
package graphs

import (
	"fmt"
	"image/color"
	"math"

	"github.com/nfvri/itm/pkg/model"
	"github.com/nfvri/itm/pkg/signal"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	terrainColor = color.RGBA{R: 139, G: 90, B: 43, A: 255}
	rayColor     = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	fresnelColor = color.RGBA{R: 200, G: 40, B: 40, A: 255}
)

const (
	width  = 15 * vg.Inch
	height = 10 * vg.Inch
)

// SaveProfile plots the terrain profile with the line of sight ray between
// the antennas and the lower edge of the first Fresnel zone.
func SaveProfile(profile model.TerrainProfile, sys model.SystemParameters, filename string) error {
	if profile.IsZero() {
		return errors.New(errors.Invalid, "empty terrain profile")
	}
	n := profile.Intervals()
	d := profile.Distance()
	step := profile.Step()
	tx := profile.At(0) + sys.TxHeight
	rx := profile.At(n) + sys.RxHeight

	terrain := make(plotter.XYs, n+1)
	ray := make(plotter.XYs, n+1)
	fresnel := make(plotter.XYs, n+1)
	for i := 0; i <= n; i++ {
		x := float64(i) * step
		los := tx + (rx-tx)*x/d
		terrain[i].X, terrain[i].Y = x/1000, profile.At(i)
		ray[i].X, ray[i].Y = x/1000, los
		fresnel[i].X, fresnel[i].Y = x/1000, los-signal.FresnelRadius(1, sys.Frequency, x, d-x)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Terrain profile %.1f km, %.0f MHz", d/1000, sys.Frequency)
	p.X.Label.Text = "Distance (km)"
	p.Y.Label.Text = "Elevation (m)"

	terrainLine, err := plotter.NewLine(terrain)
	if err != nil {
		return err
	}
	terrainLine.Color = terrainColor
	terrainLine.FillColor = color.RGBA{R: 222, G: 196, B: 160, A: 255}

	rayLine, err := plotter.NewLine(ray)
	if err != nil {
		return err
	}
	rayLine.Color = rayColor

	fresnelLine, err := plotter.NewLine(fresnel)
	if err != nil {
		return err
	}
	fresnelLine.Color = fresnelColor
	fresnelLine.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(terrainLine, rayLine, fresnelLine)
	p.Legend.Add("Terrain", terrainLine)
	p.Legend.Add("Line of sight", rayLine)
	p.Legend.Add("First Fresnel zone", fresnelLine)

	if err := p.Save(width, height, filename); err != nil {
		return err
	}
	log.Infof("Profile plot saved to %s", filename)
	return nil
}

// SaveLossCurve plots basic transmission loss against distance. Failed
// predictions are skipped.
func SaveLossCurve(results []model.LinkResult, title, filename string) error {
	pts := make(plotter.XYs, 0, len(results))
	for _, r := range results {
		if !r.Result.Valid() {
			continue
		}
		pts = append(pts, plotter.XY{X: r.Distance / 1000, Y: r.Result.Loss})
	}
	if len(pts) == 0 {
		return errors.New(errors.Invalid, "no valid predictions to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Distance (km)"
	p.Y.Label.Text = "Basic transmission loss (dB)"

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = rayColor
	p.Add(line, points)
	p.Legend.Add("Loss", line, points)

	if err := p.Save(width, height, filename); err != nil {
		return err
	}
	log.Infof("Loss curve saved to %s", filename)
	return nil
}

// SaveLossDistribution plots a histogram of predicted losses.
func SaveLossDistribution(losses []float64, bins int, filename string) error {
	values := make(plotter.Values, 0, len(losses))
	for _, l := range losses {
		if !math.IsNaN(l) {
			values = append(values, l)
		}
	}
	if len(values) == 0 {
		return errors.New(errors.Invalid, "no valid losses to plot")
	}

	pl := plot.New()
	pl.Title.Text = "Loss Distribution"
	pl.X.Label.Text = "Basic transmission loss (dB)"
	pl.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return err
	}
	pl.Add(h)
	pl.Legend.Add("Loss Distribution", h)

	if err := pl.Save(width, height, filename); err != nil {
		return err
	}
	log.Infof("Histogram plot saved to %s", filename)
	return nil
}
