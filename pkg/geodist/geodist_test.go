package geodist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate_ZeroForSamePoint(t *testing.T) {
	assert.Zero(t, Estimate(2.3522, 48.8566, 2.3522, 48.8566))
}

func TestEstimate_NonNegative(t *testing.T) {
	cases := []struct {
		name                   string
		lon1, lat1, lon2, lat2 float64
	}{
		{"paris to lyon", 2.3522, 48.8566, 4.8357, 45.7640},
		{"across the equator", 0, -1, 0, 1},
		{"across the antimeridian band", 179.9, 10, -179.9, 10},
		{"westward origin", -73.9857, 40.7484, 2.3522, 48.8566},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Estimate(tc.lon1, tc.lat1, tc.lon2, tc.lat2)
			assert.GreaterOrEqual(t, d, 0.0)
		})
	}
}

// The mean latitude makes the formula symmetric: swapping origin and point
// must give the same value up to floating-point noise.
func TestEstimate_Symmetry(t *testing.T) {
	ab := Estimate(2.3522, 48.8566, 4.8357, 45.7640)
	ba := Estimate(4.8357, 45.7640, 2.3522, 48.8566)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestEstimate_OneDegreeOfLatitude(t *testing.T) {
	// A pure latitude delta is independent of the cosine term:
	// exactly 60 nautical miles.
	d := Estimate(2.0, 48.0, 2.0, 49.0)
	assert.InDelta(t, 1.852*60, d, 1e-9)
}

func TestEstimate_LongitudeShrinksWithLatitude(t *testing.T) {
	atEquator := Estimate(2.0, 0.0, 3.0, 0.0)
	atParis := Estimate(2.0, 48.8566, 3.0, 48.8566)
	assert.Less(t, atParis, atEquator)
}

func TestEstimate_NaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(Estimate(math.NaN(), 48.0, 2.0, 48.0)))
	assert.True(t, math.IsNaN(Estimate(2.0, 48.0, 2.0, math.NaN())))
}
