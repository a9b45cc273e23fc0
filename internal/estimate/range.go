// Package estimate provides radio propagation range estimation from
// transmitter parameters.
package estimate

import "math"

// DefaultRxSensitivityDBM is a typical receive sensitivity for fixed
// wireless subscriber equipment.
const DefaultRxSensitivityDBM = -85.0

// MaxRangeKM caps estimates; free-space figures beyond this are not credible
// for ground-based links.
const MaxRangeKM = 50.0

// fsplConstant is the frequency/distance constant of the free-space
// path-loss equation with d in km and f in MHz.
const fsplConstant = 32.44

// RangeKM estimates the usable coverage radius in kilometers for a
// transmitter of the given power (dBW) at the given frequency (MHz),
// against a receiver of the given sensitivity (dBm).
//
// The free-space path-loss model is used:
//
//	FSPL(dB) = 20 log10(d_km) + 20 log10(f_MHz) + 32.44
//
// solved for d at the point where received power equals sensitivity. The
// result is clamped to [0, MaxRangeKM]. Non-positive frequency returns 0.
func RangeKM(powerDBW, freqMHz, rxSensitivityDBM float64) float64 {
	if freqMHz <= 0 {
		return 0
	}

	eirpDBM := powerDBW + 30 // dBW -> dBm
	budget := eirpDBM - rxSensitivityDBM

	d := math.Pow(10, (budget-fsplConstant-20*math.Log10(freqMHz))/20)
	if d < 0 || math.IsNaN(d) {
		return 0
	}
	if d > MaxRangeKM {
		return MaxRangeKM
	}
	return d
}
