package solver

import (
	"testing"

	"github.com/nfvri/itm/pkg/itm"
	"github.com/nfvri/itm/pkg/model"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatLink(t *testing.T) (model.TerrainProfile, model.SystemParameters) {
	profile, err := model.NewTerrainProfile(500, make([]float64, 101))
	require.NoError(t, err)
	return profile, model.SystemParameters{
		TxHeight:     10,
		RxHeight:     10,
		Frequency:    100,
		Polarization: model.PolarizationHorizontal,
		Permittivity: 15,
		Conductivity: 0.005,
		Refractivity: 301,
		Climate:      model.ClimateContinentalTemperate,
	}
}

func TestTimeAvailability(t *testing.T) {
	profile, sys := flatLink(t)

	for _, tc := range []struct {
		name    string
		v       model.VariabilitySpec
		percent float64
	}{
		{"broadcast 90%", model.VariabilitySpec{Mode: model.ModeBroadcast, Time: 90, Location: 50, Situation: 50}, 90},
		{"broadcast 10%", model.VariabilitySpec{Mode: model.ModeBroadcast, Time: 10, Location: 50, Situation: 50}, 10},
		{"mobile 75%", model.VariabilitySpec{Mode: model.ModeMobile, Time: 75, Location: 50, Situation: 50}, 75},
		{"single message 80%", model.VariabilitySpec{Mode: model.ModeSingleMessage, Time: 50, Location: 50, Situation: 80}, 80},
	} {
		t.Run(tc.name, func(t *testing.T) {
			budget := itm.PointToPoint(profile, sys, tc.v)
			require.True(t, budget.Valid())

			a, err := TimeAvailability(profile, sys, tc.v, budget.Loss)
			require.NoError(t, err)
			assert.InDelta(t, tc.percent, a.Percent, 0.05)
			assert.InDelta(t, budget.Loss, a.Loss, 1e-2)
			assert.NotEmpty(t, a.Method)
		})
	}
}

func TestTimeAvailabilityOutOfRange(t *testing.T) {
	profile, sys := flatLink(t)
	v := model.VariabilitySpec{Mode: model.ModeBroadcast, Time: 50, Location: 50, Situation: 50}

	_, err := TimeAvailability(profile, sys, v, 1000)
	assert.True(t, errors.IsInvalid(err))

	_, err = TimeAvailability(profile, sys, v, 1)
	assert.True(t, errors.IsInvalid(err))
}

func TestTimeAvailabilityInvalidInput(t *testing.T) {
	profile, sys := flatLink(t)
	sys.TxHeight = 0.1
	v := model.VariabilitySpec{Mode: model.ModeBroadcast, Time: 50, Location: 50, Situation: 50}

	_, err := TimeAvailability(profile, sys, v, 150)
	assert.Equal(t, model.ErrTxTerminalHeight, err)
}
