// internal/analysis/grid/grid.go

// Package grid generates candidate sites by sweeping a rectangular grid
// over a region's bounding box.
package grid

import (
	"math"

	"site-advisor/internal/common/errors"
	"site-advisor/internal/geo"
	"site-advisor/internal/regions"
)

// Sweep is a lazy, restartable iterator over the candidate grid. The
// candidate count grows quadratically as the resolution shrinks, so the
// grid is never materialized as a slice.
//
// The sweep is deterministic: outer loop over longitude, inner loop over
// latitude. Steps are computed by index (min + i*res) rather than by
// accumulation, so the candidate count is exactly
// ceil(dLng/res) * ceil(dLat/res) regardless of floating-point drift.
type Sweep struct {
	bounds     regions.Bounds
	resolution float64
	lngSteps   int
	latSteps   int
	i, j       int
}

// New builds a sweep for the named region. The region lookup is
// case-insensitive; unknown names fall back to the service-wide default
// bounding box. Resolution is in degrees and must be positive.
func New(region string, resolution float64) (*Sweep, error) {
	if resolution <= 0 {
		return nil, errors.NewInvalidRequestError("grid resolution must be > 0")
	}
	bounds, _ := regions.BoundsFor(region)
	return NewWithBounds(bounds, resolution), nil
}

// NewWithBounds builds a sweep over an explicit bounding box.
func NewWithBounds(bounds regions.Bounds, resolution float64) *Sweep {
	return &Sweep{
		bounds:     bounds,
		resolution: resolution,
		lngSteps:   steps(bounds.MinLng, bounds.MaxLng, resolution),
		latSteps:   steps(bounds.MinLat, bounds.MaxLat, resolution),
	}
}

// Reset rewinds the sweep to the first candidate.
func (s *Sweep) Reset() {
	s.i, s.j = 0, 0
}

// Next returns the next candidate coordinate, or false once the grid is
// exhausted.
func (s *Sweep) Next() (geo.Coordinate, bool) {
	if s.i >= s.lngSteps || s.latSteps == 0 {
		return geo.Coordinate{}, false
	}

	c := geo.Coordinate{
		Lng: s.bounds.MinLng + float64(s.i)*s.resolution,
		Lat: s.bounds.MinLat + float64(s.j)*s.resolution,
	}

	s.j++
	if s.j >= s.latSteps {
		s.j = 0
		s.i++
	}

	return c, true
}

// Count returns the number of candidates the sweep produces.
func (s *Sweep) Count() int {
	return s.lngSteps * s.latSteps
}

func steps(min, max, res float64) int {
	if max <= min {
		return 0
	}
	return int(math.Ceil((max - min) / res))
}
