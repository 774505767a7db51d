package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.23456789, 1.2345},
		{-1.23456789, -1.2345}, // toward zero, not floor
		{0, 0},
		{45.99999999, 45.9999},
		{-0.00009, 0},
		{12.3456, 12.3456},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, Truncate(tc.in), 1e-12, "Truncate(%v)", tc.in)
	}
}

func TestTruncateIdempotent(t *testing.T) {
	coords := []float64{1.23456789, -87.654321, 0.00005, 179.9999999}
	for _, c := range coords {
		once := Truncate(c)
		assert.Equal(t, once, Truncate(once))
		assert.Less(t, abs(once-c), 0.0001)
	}
}

func TestHaversineZero(t *testing.T) {
	assert.Zero(t, HaversineKm(0, 0, 0, 0))
	assert.Zero(t, HaversineKm(48.8566, 2.3522, 48.8566, 2.3522))
}

func TestHaversineOneDegree(t *testing.T) {
	// one degree of longitude at the equator
	assert.InDelta(t, 111.19, HaversineKm(0, 0, 0, 1), 0.1)
}

func TestHaversineKnownDistance(t *testing.T) {
	// London <-> Paris, roughly 343-344 km great circle
	d := HaversineKm(51.5074, -0.1278, 48.8566, 2.3522)
	assert.InDelta(t, 343.5, d, 1.5)
}

func TestHaversineSymmetric(t *testing.T) {
	a := HaversineKm(51.5074, -0.1278, 48.8566, 2.3522)
	b := HaversineKm(48.8566, 2.3522, 51.5074, -0.1278)
	assert.InDelta(t, a, b, 1e-9)
}

func TestRoundKm(t *testing.T) {
	assert.InDelta(t, 1.23, RoundKm(1.234), 1e-12)
	assert.InDelta(t, 1.24, RoundKm(1.238), 1e-12)
	assert.InDelta(t, 0.11, RoundKm(0.11119), 1e-12)
	assert.InDelta(t, 0.0, RoundKm(0.004), 1e-12)
}

func TestValidLatLng(t *testing.T) {
	assert.True(t, ValidLatLng(0, 0))
	assert.True(t, ValidLatLng(90, 180))
	assert.True(t, ValidLatLng(-90, -180))
	assert.False(t, ValidLatLng(90.0001, 0))
	assert.False(t, ValidLatLng(0, -180.0001))
	assert.False(t, ValidLatLng(-91, 0))
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
