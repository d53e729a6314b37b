// Package solver inverts the point-to-point prediction: given a loss budget
// it finds the percentage of time the budget is not exceeded.
package solver

import (
	"math"

	"github.com/davidkleiven/gononlin/nonlin"
	"github.com/nfvri/itm/pkg/itm"
	"github.com/nfvri/itm/pkg/model"
	"github.com/nfvri/itm/pkg/statistics"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// loss tolerance in dB
	tolerance     = 1e-6
	maxBisections = 100
)

type Availability struct {
	// Percent of time (of situations, in single message mode) the link
	// loss stays at or below the budget.
	Percent float64 `json:"percent" yaml:"percent"`
	// Loss predicted at Percent.
	Loss float64 `json:"loss" yaml:"loss"`
	// Deviate is the standard normal deviate matching Percent.
	Deviate float64 `json:"deviate" yaml:"deviate"`
	Method  string  `json:"method" yaml:"method"`
}

// lossFunc returns the predicted loss for the standard normal deviate z
// applied to the quantity that carries the variability in v.Mode.
func lossFunc(profile model.TerrainProfile, sys model.SystemParameters, v model.VariabilitySpec) func(z float64) float64 {
	return func(z float64) float64 {
		vz := v
		p := 100 * distuv.UnitNormal.Survival(z)
		if v.Mode.Base() == model.ModeSingleMessage {
			vz.Situation = p
		} else {
			vz.Time = p
		}
		r := itm.PointToPoint(profile, sys, vz)
		return r.Loss
	}
}

// TimeAvailability returns the time percentage at which the predicted loss
// over profile equals maxLoss.
func TimeAvailability(profile model.TerrainProfile, sys model.SystemParameters, v model.VariabilitySpec, maxLoss float64) (Availability, error) {
	if r := itm.PointToPoint(profile, sys, v); !r.Valid() {
		return Availability{}, r.Err
	}

	loss := lossFunc(profile, sys, v)
	zmax := statistics.ExtremeDeviate
	// loss decreases as the deviate grows
	hi, lo := loss(-zmax), loss(zmax)
	if maxLoss > hi || maxLoss < lo {
		return Availability{}, errors.New(errors.Invalid,
			"loss budget %.2f dB outside predictable range [%.2f, %.2f] dB", maxLoss, lo, hi)
	}

	problem := nonlin.Problem{
		F: func(out, x []float64) {
			out[0] = loss(x[0]) - maxLoss
		},
	}
	newton := nonlin.NewtonKrylov{
		Maxiter:  100,
		StepSize: 1e-3,
		Tol:      tolerance,
	}
	res, err := newton.Solve(problem, []float64{0})
	if err != nil {
		log.Debugf("newton-krylov failed (%v), bisecting", err)
	} else {
		z := res.X[0]
		if !math.IsNaN(z) && math.Abs(z) <= zmax && math.Abs(res.F[0]) <= 1e-3 {
			return availability(z, loss(z), "newton-krylov"), nil
		}
		log.Debugf("newton-krylov did not converge (z=%v, f=%v), bisecting", z, res.F[0])
	}

	a, b := -zmax, zmax
	for i := 0; i < maxBisections && b-a > 1e-9; i++ {
		m := (a + b) / 2
		if loss(m) > maxLoss {
			a = m
		} else {
			b = m
		}
	}
	z := (a + b) / 2
	return availability(z, loss(z), "bisection"), nil
}

func availability(z, loss float64, method string) Availability {
	return Availability{
		Percent: 100 * distuv.UnitNormal.Survival(z),
		Loss:    loss,
		Deviate: z,
		Method:  method,
	}
}
