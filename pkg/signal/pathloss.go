package signal

import (
	"math"
)

// SpeedOfLight in m/s
const SpeedOfLight = 299792458.0

// FreeSpaceLoss is the free space basic transmission loss in dB for a
// frequency in MHz over a distance in meters.
func FreeSpaceLoss(frequency, distance float64) float64 {
	// 32.45 is 20 * log10(4*pi/c) with f in MHz and d in km
	return 32.45 + 20*math.Log10(frequency) + 20*math.Log10(distance/1000)
}

// Wavelength in meters for a frequency in MHz
func Wavelength(frequency float64) float64 {
	return SpeedOfLight / (frequency * 1e6)
}

// FresnelRadius is the radius of the given Fresnel zone at a point d1 meters
// from one terminal and d2 meters from the other.
func FresnelRadius(zone int, frequency, d1, d2 float64) float64 {
	d := d1 + d2
	if d <= 0 || zone < 1 {
		return 0
	}
	return math.Sqrt(float64(zone) * Wavelength(frequency) * d1 * d2 / d)
}
