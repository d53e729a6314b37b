package variability

import "github.com/nfvri/itm/pkg/model"

// curveCoeffs parameterise one empirical curve of the variability model
// against the effective distance.
type curveCoeffs struct {
	c1, c2     float64
	x1, x2, x3 float64
}

// eval returns (c1 + c2/(1 + ((de-x2)/x3)²)) * (de/x1)²/(1 + (de/x1)²).
func (c curveCoeffs) eval(de float64) float64 {
	t1 := (de - c.x2) / c.x3
	t2 := de / c.x1
	t1 *= t1
	t2 *= t2
	return (c.c1 + c.c2/(1+t1)) * t2 / (1 + t2)
}

// climateCurves are the empirical curves of one radio climate.
type climateCurves struct {
	median     curveCoeffs // Vmd
	sigmaMinus curveCoeffs // time variability below the median
	sigmaPlus  curveCoeffs // time variability above the median
	ductSigma  float64     // ratio of the ducting sigma to sigmaPlus
	ductZ      float64     // deviate beyond which ducting dominates
	fm         [3]float64  // frequency factor of sigmaMinus
	fp         [3]float64  // frequency factor of sigmaPlus
}

var climates = map[model.Climate]climateCurves{
	model.ClimateEquatorial: {
		median:     curveCoeffs{-9.67, 12.7, 144.9e3, 190.3e3, 133.8e3},
		sigmaMinus: curveCoeffs{2.13, 159.5, 762.2e3, 123.6e3, 94.5e3},
		sigmaPlus:  curveCoeffs{2.11, 102.3, 636.9e3, 134.8e3, 95.6e3},
		ductSigma:  1.224,
		ductZ:      1.282,
		fm:         [3]float64{1, 0, 0},
		fp:         [3]float64{1, 0, 0},
	},
	model.ClimateContinentalSubtropical: {
		median:     curveCoeffs{-0.62, 9.19, 228.9e3, 205.2e3, 143.6e3},
		sigmaMinus: curveCoeffs{2.66, 7.67, 100.4e3, 172.5e3, 136.4e3},
		sigmaPlus:  curveCoeffs{6.87, 15.53, 138.7e3, 143.7e3, 98.6e3},
		ductSigma:  0.801,
		ductZ:      2.161,
		fm:         [3]float64{1, 0, 0},
		fp:         [3]float64{0.93, 0.31, 2.00},
	},
	model.ClimateMaritimeSubtropical: {
		median:     curveCoeffs{1.26, 15.5, 262.6e3, 185.2e3, 99.8e3},
		sigmaMinus: curveCoeffs{6.11, 6.65, 138.2e3, 242.2e3, 178.6e3},
		sigmaPlus:  curveCoeffs{10.08, 9.60, 165.3e3, 225.7e3, 129.7e3},
		ductSigma:  1.380,
		ductZ:      1.282,
		fm:         [3]float64{1, 0, 0},
		fp:         [3]float64{1, 0, 0},
	},
	model.ClimateDesert: {
		median:     curveCoeffs{-9.21, 9.05, 84.1e3, 101.1e3, 98.6e3},
		sigmaMinus: curveCoeffs{1.98, 13.11, 139.1e3, 132.7e3, 193.5e3},
		sigmaPlus:  curveCoeffs{3.68, 159.3, 464.4e3, 93.1e3, 94.2e3},
		ductSigma:  1.000,
		ductZ:      20,
		fm:         [3]float64{1, 0, 0},
		fp:         [3]float64{0.93, 0.19, 1.79},
	},
	model.ClimateContinentalTemperate: {
		median:     curveCoeffs{-0.62, 9.19, 228.9e3, 205.2e3, 143.6e3},
		sigmaMinus: curveCoeffs{2.68, 7.16, 93.7e3, 186.8e3, 133.5e3},
		sigmaPlus:  curveCoeffs{4.75, 8.12, 93.2e3, 135.9e3, 113.4e3},
		ductSigma:  1.224,
		ductZ:      1.282,
		fm:         [3]float64{0.92, 0.25, 1.77},
		fp:         [3]float64{0.93, 0.31, 2.00},
	},
	model.ClimateMaritimeTemperateOverLand: {
		median:     curveCoeffs{-0.39, 2.86, 141.7e3, 315.9e3, 167.4e3},
		sigmaMinus: curveCoeffs{6.86, 10.38, 187.8e3, 169.6e3, 108.9e3},
		sigmaPlus:  curveCoeffs{8.58, 13.97, 216.0e3, 152.0e3, 122.7e3},
		ductSigma:  1.518,
		ductZ:      1.282,
		fm:         [3]float64{1, 0, 0},
		fp:         [3]float64{1, 0, 0},
	},
	model.ClimateMaritimeTemperateOverSea: {
		median:     curveCoeffs{3.15, 857.9, 2222.0e3, 164.8e3, 116.3e3},
		sigmaMinus: curveCoeffs{8.51, 169.8, 609.8e3, 119.9e3, 106.6e3},
		sigmaPlus:  curveCoeffs{8.43, 8.19, 136.2e3, 188.5e3, 122.9e3},
		ductSigma:  1.518,
		ductZ:      1.282,
		fm:         [3]float64{1, 0, 0},
		fp:         [3]float64{1, 0, 0},
	},
}
