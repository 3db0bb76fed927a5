// internal/analysis/grid/grid_test.go
package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"site-advisor/internal/geo"
	"site-advisor/internal/regions"
)

func collect(s *Sweep) []geo.Coordinate {
	var out []geo.Coordinate
	for {
		c, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

func TestSweep_OneDegreeBoxAtHalfDegree(t *testing.T) {
	bounds := regions.Bounds{MinLng: 70.0, MinLat: 20.0, MaxLng: 71.0, MaxLat: 21.0}
	s := NewWithBounds(bounds, 0.5)

	assert.Equal(t, 4, s.Count())

	got := collect(s)
	expected := []geo.Coordinate{
		{Lng: 70.0, Lat: 20.0},
		{Lng: 70.0, Lat: 20.5},
		{Lng: 70.5, Lat: 20.0},
		{Lng: 70.5, Lat: 20.5},
	}
	assert.Equal(t, expected, got)
}

func TestSweep_CountMatchesCeilFormula(t *testing.T) {
	tests := []struct {
		name     string
		bounds   regions.Bounds
		res      float64
		expected int
	}{
		{
			name:     "uneven span rounds up",
			bounds:   regions.Bounds{MinLng: 70.0, MinLat: 20.0, MaxLng: 71.0, MaxLat: 21.0},
			res:      0.4, // ceil(1/0.4)=3 per axis
			expected: 9,
		},
		{
			name:     "single cell",
			bounds:   regions.Bounds{MinLng: 70.0, MinLat: 20.0, MaxLng: 70.1, MaxLat: 20.1},
			res:      0.5,
			expected: 1,
		},
		{
			name:     "degenerate box",
			bounds:   regions.Bounds{MinLng: 70.0, MinLat: 20.0, MaxLng: 70.0, MaxLat: 21.0},
			res:      0.5,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewWithBounds(tt.bounds, tt.res)
			assert.Equal(t, tt.expected, s.Count())
			assert.Len(t, collect(s), tt.expected)
		})
	}
}

func TestSweep_SweepOrderIsLngOuterLatInner(t *testing.T) {
	bounds := regions.Bounds{MinLng: 0, MinLat: 0, MaxLng: 1.0, MaxLat: 1.5}
	s := NewWithBounds(bounds, 0.5)

	got := collect(s)
	// Two longitude columns of three latitudes each.
	assert.Len(t, got, 6)
	assert.Equal(t, geo.Coordinate{Lng: 0, Lat: 0}, got[0])
	assert.Equal(t, geo.Coordinate{Lng: 0, Lat: 0.5}, got[1])
	assert.Equal(t, geo.Coordinate{Lng: 0, Lat: 1.0}, got[2])
	assert.Equal(t, geo.Coordinate{Lng: 0.5, Lat: 0}, got[3])
}

func TestSweep_ResetRestarts(t *testing.T) {
	bounds := regions.Bounds{MinLng: 70.0, MinLat: 20.0, MaxLng: 71.0, MaxLat: 21.0}
	s := NewWithBounds(bounds, 0.5)

	first := collect(s)
	_, ok := s.Next()
	assert.False(t, ok, "exhausted sweep stays exhausted")

	s.Reset()
	second := collect(s)
	assert.Equal(t, first, second)
}

func TestNew_RegionLookup(t *testing.T) {
	s, err := New("Gujarat", 0.5)
	assert.NoError(t, err)

	known, _ := regions.BoundsFor("gujarat")
	assert.Equal(t, NewWithBounds(known, 0.5).Count(), s.Count())

	// Unknown regions sweep the default, larger box.
	d, err := New("atlantis", 0.5)
	assert.NoError(t, err)
	assert.Greater(t, d.Count(), s.Count())
}

func TestNew_RejectsNonPositiveResolution(t *testing.T) {
	for _, res := range []float64{0, -0.5} {
		s, err := New("gujarat", res)
		assert.Nil(t, s)
		assert.Error(t, err)
	}
}
