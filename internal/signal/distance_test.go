package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityBoundaries(t *testing.T) {
	tests := []struct {
		strength int
		want     Quality
	}{
		{0, QualityExcellent},
		{-40, QualityExcellent},
		{-49, QualityExcellent},
		{-50, QualityGood},
		{-59, QualityGood},
		{-60, QualityFair},
		{-65, QualityFair},
		{-69, QualityFair},
		{-70, QualityWeak},
		{-79, QualityWeak},
		{-80, QualityVeryWeak},
		{-120, QualityVeryWeak},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QualityFor(tt.strength), "strength %d", tt.strength)
	}
}

func TestQualityMonotonic(t *testing.T) {
	prev := QualityFor(30)
	for x := 30; x >= -150; x-- {
		q := QualityFor(x)
		assert.GreaterOrEqual(t, int(q), int(prev), "quality improved as signal weakened at %d", x)
		assert.LessOrEqual(t, int(q), int(QualityVeryWeak))
		prev = q
	}
}

func TestEstimateReferencePoint(t *testing.T) {
	e := EstimateDistance(-40)
	assert.Equal(t, QualityExcellent, e.Quality)
	assert.InDelta(t, 1.0, e.DistanceMeters, 1e-9)

	e = EstimateDistance(-30)
	assert.Less(t, e.DistanceMeters, 1.0)
	assert.Equal(t, "less than 1 meter", e.Text())

	assert.Equal(t, QualityFair, EstimateDistance(-65).Quality)
}

func TestEstimateDistanceModel(t *testing.T) {
	// 25 dB below the reference is exactly one decade at n=2.5.
	assert.InDelta(t, 10.0, EstimateDistance(-65).DistanceMeters, 1e-9)
	assert.InDelta(t, 100.0, EstimateDistance(-90).DistanceMeters, 1e-9)

	prev := EstimateDistance(10).DistanceMeters
	for x := 9; x >= -130; x-- {
		d := EstimateDistance(x).DistanceMeters
		assert.Greater(t, d, prev, "distance not increasing at %d", x)
		prev = d
	}
}

func TestEstimateNeverFails(t *testing.T) {
	for _, x := range []int{math.MaxInt32, 500, 1, 0, -1000, math.MinInt32} {
		e := EstimateDistance(x)
		assert.False(t, math.IsNaN(e.DistanceMeters), "strength %d", x)
		assert.NotEmpty(t, e.Text())
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "less than 1 meter"},
		{0.99, "less than 1 meter"},
		{1, "~1.0 meters"},
		{3.24, "~3.2 meters"},
		{9.94, "~9.9 meters"},
		{10, "~10 meters"},
		{15.8, "~16 meters"},
		{12.5, "~13 meters"},
		{100.4, "~100 meters"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDistance(tt.meters), "meters %v", tt.meters)
	}
}

func TestQualityStrings(t *testing.T) {
	assert.Equal(t, "excellent", QualityExcellent.String())
	assert.Equal(t, "veryWeak", QualityVeryWeak.String())
	assert.Equal(t, "Fair - Medium Distance", QualityFair.Label())
}
