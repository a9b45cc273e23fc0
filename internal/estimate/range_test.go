package estimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeKM_KnownBudget(t *testing.T) {
	// 10 dBW = 40 dBm EIRP against -85 dBm sensitivity: budget 125 dB.
	// At 3500 MHz: d = 10^((125 - 32.44 - 20*log10(3500)) / 20)
	want := math.Pow(10, (125-32.44-20*math.Log10(3500))/20)
	got := RangeKM(10, 3500, -85)
	assert.InDelta(t, want, got, 1e-9)
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, MaxRangeKM)
}

func TestRangeKM_HigherFrequencyShorterRange(t *testing.T) {
	low := RangeKM(10, 900, DefaultRxSensitivityDBM)
	high := RangeKM(10, 3500, DefaultRxSensitivityDBM)
	assert.Greater(t, low, high)
}

func TestRangeKM_MorePowerLongerRange(t *testing.T) {
	weak := RangeKM(0, 3500, DefaultRxSensitivityDBM)
	strong := RangeKM(20, 3500, DefaultRxSensitivityDBM)
	assert.Greater(t, strong, weak)
}

func TestRangeKM_ClampedToMax(t *testing.T) {
	got := RangeKM(60, 150, -120)
	assert.Equal(t, MaxRangeKM, got)
}

func TestRangeKM_InvalidFrequency(t *testing.T) {
	assert.Zero(t, RangeKM(10, 0, -85))
	assert.Zero(t, RangeKM(10, -3500, -85))
}
