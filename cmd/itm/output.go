package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/nfvri/itm/pkg/itm"
	"github.com/nfvri/itm/pkg/model"
	"github.com/nfvri/itm/pkg/statistics"
	"github.com/nfvri/itm/pkg/utils"
	"github.com/nfvri/itm/pkg/utils/solver"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/rodaine/table"
	"gopkg.in/yaml.v2"
)

var (
	headerFmt  = color.New(color.FgHiWhite, color.BgBlue).SprintfFunc()
	warningFmt = color.New(color.FgYellow).SprintFunc()
	errorFmt   = color.New(color.FgRed, color.Bold).SprintFunc()
)

type pointReport struct {
	Link                 string    `yaml:"link" json:"link"`
	DistanceKm           float64   `yaml:"distanceKm" json:"distanceKm"`
	Frequency            float64   `yaml:"frequency" json:"frequency"` // MHz
	Loss                 *float64  `yaml:"loss" json:"loss"`
	Mode                 string    `yaml:"mode" json:"mode"`
	ReturnCode           int       `yaml:"returnCode" json:"returnCode"`
	Warnings             []string  `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Error                string    `yaml:"error,omitempty" json:"error,omitempty"`
	FreeSpaceLoss        float64   `yaml:"freeSpaceLoss" json:"freeSpaceLoss"`
	ReferenceAttenuation float64   `yaml:"referenceAttenuation" json:"referenceAttenuation"`
	SurfaceRefractivity  float64   `yaml:"surfaceRefractivity" json:"surfaceRefractivity"`
	SmoothEarthDistance  float64   `yaml:"smoothEarthDistance" json:"smoothEarthDistance"`
	HorizonDistances     []float64 `yaml:"horizonDistances" json:"horizonDistances"`
	HorizonAngles        []float64 `yaml:"horizonAngles" json:"horizonAngles"`
	EffectiveHeights     []float64 `yaml:"effectiveHeights" json:"effectiveHeights"`
	TerrainIrregularity  float64   `yaml:"terrainIrregularity" json:"terrainIrregularity"`
}

func newPointReport(lr model.LinkResult, iv itm.IntermediateValues) pointReport {
	r := lr.Result
	rep := pointReport{
		Link:       lr.LinkID,
		DistanceKm: utils.RoundToDecimal(lr.Distance/1000, 3),
		Mode:       r.Mode.String(),
		ReturnCode: r.ReturnCode(),
	}
	if r.Warnings != model.NoWarnings {
		rep.Warnings = r.Warnings.Names()
	}
	if !r.Valid() {
		rep.Error = r.Err.Error()
		return rep
	}
	loss := utils.RoundToDecimal(r.Loss, 2)
	rep.Loss = &loss
	g := iv.Geometry
	rep.FreeSpaceLoss = utils.RoundToDecimal(iv.FreeSpaceLoss, 2)
	rep.ReferenceAttenuation = utils.RoundToDecimal(iv.ReferenceAttenuation, 2)
	rep.SurfaceRefractivity = utils.RoundToDecimal(iv.SurfaceRefractivity, 2)
	rep.SmoothEarthDistance = utils.RoundToDecimal(iv.SmoothEarthDistance, 1)
	rep.HorizonDistances = []float64{utils.RoundToDecimal(g.Dl[0], 1), utils.RoundToDecimal(g.Dl[1], 1)}
	rep.HorizonAngles = []float64{utils.RoundToDecimal(g.Theta[0], 5), utils.RoundToDecimal(g.Theta[1], 5)}
	rep.EffectiveHeights = []float64{utils.RoundToDecimal(g.He[0], 2), utils.RoundToDecimal(g.He[1], 2)}
	rep.TerrainIrregularity = utils.RoundToDecimal(g.DeltaH, 2)
	return rep
}

func encode(v interface{}) (bool, error) {
	var out []byte
	var err error
	switch outputFormat {
	case "yaml":
		out, err = yaml.Marshal(v)
	case "json":
		out, err = jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	case "table":
		return false, nil
	default:
		return false, errors.New(errors.Invalid, "unknown output format %q", outputFormat)
	}
	if err != nil {
		return false, err
	}
	_, err = os.Stdout.Write(out)
	return true, err
}

func printReport(rep pointReport) error {
	if done, err := encode(rep); done || err != nil {
		return err
	}
	tbl := table.New("PARAMETER", "VALUE")
	tbl.WithHeaderFormatter(headerFmt)
	tbl.AddRow("link", rep.Link)
	tbl.AddRow("distance (km)", rep.DistanceKm)
	if rep.Frequency > 0 {
		tbl.AddRow("frequency", humanize.SIWithDigits(rep.Frequency*1e6, 3, "Hz"))
	}
	if rep.Loss != nil {
		tbl.AddRow("loss (dB)", *rep.Loss)
		tbl.AddRow("mode", rep.Mode)
		tbl.AddRow("free space loss (dB)", rep.FreeSpaceLoss)
		tbl.AddRow("reference attenuation (dB)", rep.ReferenceAttenuation)
		tbl.AddRow("surface refractivity (N)", rep.SurfaceRefractivity)
		tbl.AddRow("smooth earth distance (m)", rep.SmoothEarthDistance)
		tbl.AddRow("horizon distances (m)", fmt.Sprint(rep.HorizonDistances))
		tbl.AddRow("horizon angles (rad)", fmt.Sprint(rep.HorizonAngles))
		tbl.AddRow("effective heights (m)", fmt.Sprint(rep.EffectiveHeights))
		tbl.AddRow("terrain irregularity (m)", rep.TerrainIrregularity)
	} else {
		tbl.AddRow("error", errorFmt(rep.Error))
	}
	tbl.AddRow("return code", rep.ReturnCode)
	if len(rep.Warnings) > 0 {
		tbl.AddRow("warnings", warningFmt(strings.Join(rep.Warnings, ", ")))
	}
	tbl.Print()
	return nil
}

func printSnapshot(snapshot model.Snapshot) error {
	if done, err := encode(snapshot); done || err != nil {
		return err
	}
	fmt.Printf("snapshot %s (created %s)\n", snapshot.ID, humanize.Time(snapshot.Created))
	losses := make([]float64, 0, len(snapshot.Results))
	tbl := table.New("LINK", "DISTANCE (km)", "LOSS (dB)", "MODE", "CODE", "WARNINGS")
	tbl.WithHeaderFormatter(headerFmt)
	for _, lr := range snapshot.Results {
		r := lr.Result
		var loss string
		if r.Valid() {
			loss = fmt.Sprintf("%.2f", r.Loss)
		} else {
			loss = errorFmt(r.Err.Error())
		}
		warnings := ""
		if r.Warnings != model.NoWarnings {
			warnings = warningFmt(r.Warnings.String())
		}
		tbl.AddRow(lr.LinkID, utils.RoundToDecimal(lr.Distance/1000, 3), loss, r.Mode, r.ReturnCode(), warnings)
		losses = append(losses, r.Loss)
	}
	tbl.Print()
	fmt.Printf("mean %.2f dB, median %.2f dB, p90 %.2f dB, %d failed\n",
		statistics.Mean(losses), statistics.Percentile(losses, 50), statistics.Percentile(losses, 90), snapshot.Failures())
	return nil
}

func printAvailability(s model.Scenario, a solver.Availability) error {
	if done, err := encode(a); done || err != nil {
		return err
	}
	quantity := utils.If(s.Variability.Mode.Base() == model.ModeSingleMessage, "situations", "time")
	tbl := table.New("PARAMETER", "VALUE")
	tbl.WithHeaderFormatter(headerFmt)
	tbl.AddRow("link", s.Name)
	tbl.AddRow("loss budget (dB)", s.MaxLoss)
	tbl.AddRow(fmt.Sprintf("availability (%% of %s)", quantity), utils.RoundToDecimal(a.Percent, 3))
	tbl.AddRow("loss at availability (dB)", utils.RoundToDecimal(a.Loss, 2))
	tbl.AddRow("standard normal deviate", utils.RoundToDecimal(a.Deviate, 4))
	tbl.AddRow("method", a.Method)
	tbl.Print()
	return nil
}

type samplePoint struct {
	Index    int     `yaml:"index" json:"index"`
	Distance float64 `yaml:"distance" json:"distance"` // meters from tx
	Lat      float64 `yaml:"lat" json:"lat"`
	Lng      float64 `yaml:"lng" json:"lng"`
}

func printPoints(points []model.Coordinate, step float64) error {
	samples := make([]samplePoint, len(points))
	for i, p := range points {
		samples[i] = samplePoint{
			Index:    i,
			Distance: utils.RoundToDecimal(float64(i)*step, 1),
			Lat:      utils.RoundToDecimal(p.Lat, 6),
			Lng:      utils.RoundToDecimal(p.Lng, 6),
		}
	}
	if done, err := encode(samples); done || err != nil {
		return err
	}
	tbl := table.New("#", "DISTANCE (m)", "LAT", "LNG")
	tbl.WithHeaderFormatter(headerFmt)
	for _, s := range samples {
		tbl.AddRow(s.Index, s.Distance, s.Lat, s.Lng)
	}
	tbl.Print()
	return nil
}
