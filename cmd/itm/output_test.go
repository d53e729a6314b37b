package main

import (
	"testing"

	"github.com/nfvri/itm/pkg/itm"
	"github.com/nfvri/itm/pkg/model"
	"github.com/nfvri/itm/pkg/terrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointReport(t *testing.T) {
	lr := model.LinkResult{
		LinkID:   "flat",
		Distance: 50000,
		Result:   model.Result{Loss: 156.0897451, Mode: model.PropModeDiffraction},
	}
	iv := itm.IntermediateValues{
		Geometry:      terrain.LinkGeometry{Dl: [2]float64{13000, 13000}, He: [2]float64{10, 10}},
		FreeSpaceLoss: 106.4294,
	}

	rep := newPointReport(lr, iv)
	require.NotNil(t, rep.Loss)
	assert.Equal(t, 156.09, *rep.Loss)
	assert.Equal(t, 50.0, rep.DistanceKm)
	assert.Equal(t, "diffraction", rep.Mode)
	assert.Equal(t, 0, rep.ReturnCode)
	assert.Equal(t, []float64{13000, 13000}, rep.HorizonDistances)
	assert.Empty(t, rep.Warnings)
}

func TestPointReportFailed(t *testing.T) {
	lr := model.LinkResult{
		LinkID: "bad",
		Result: model.Failed(model.ErrFrequency, model.WarnTxTerminalHeight),
	}

	rep := newPointReport(lr, itm.IntermediateValues{})
	assert.Nil(t, rep.Loss)
	assert.Equal(t, int(model.ErrFrequency), rep.ReturnCode)
	assert.NotEmpty(t, rep.Error)
	assert.Len(t, rep.Warnings, 1)
}

func TestEncodeUnknownFormat(t *testing.T) {
	outputFormat = "xml"
	defer func() { outputFormat = "table" }()

	_, err := encode(struct{}{})
	assert.Error(t, err)
}
