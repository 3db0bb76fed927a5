// internal/regions/regions_test.go
package regions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"site-advisor/internal/geo"
)

func TestBoundsFor(t *testing.T) {
	tests := []struct {
		name     string
		region   string
		known    bool
		expected Bounds
	}{
		{"known region", "gujarat", true, Bounds{68.1, 20.1, 74.5, 24.7}},
		{"case insensitive", "GUJARAT", true, Bounds{68.1, 20.1, 74.5, 24.7}},
		{"surrounding whitespace", "  Rajasthan ", true, Bounds{69.5, 23.0, 78.3, 30.2}},
		{"unknown falls back to default", "atlantis", false, DefaultBounds},
		{"empty falls back to default", "", false, DefaultBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, known := BoundsFor(tt.region)
			assert.Equal(t, tt.known, known)
			assert.Equal(t, tt.expected, b)
		})
	}
}

func TestDistrictFor_ExactMatch(t *testing.T) {
	// Central Ahmedabad.
	got := DistrictFor(geo.Coordinate{Lng: 72.58, Lat: 23.03}, "gujarat")
	assert.Equal(t, "Ahmedabad", got)

	// Deep inside Kutch.
	got = DistrictFor(geo.Coordinate{Lng: 69.5, Lat: 23.5}, "gujarat")
	assert.Equal(t, "Kutch", got)
}

func TestDistrictFor_CentroidFallback(t *testing.T) {
	// Inside the gujarat bounds but outside every district box; the
	// nearest centroid should label it.
	c := geo.Coordinate{Lng: 71.0, Lat: 20.8}
	got := DistrictFor(c, "gujarat")
	assert.NotEqual(t, "gujarat", got)

	best := ""
	bestDist := 1e18
	for _, d := range districts {
		if dist := geo.HaversineKm(c, d.Centroid); dist < bestDist {
			bestDist = dist
			best = d.Name
		}
	}
	assert.Equal(t, best, got)
}

func TestDistrictFor_OutsideRegion(t *testing.T) {
	// Far outside the broader bounds: keep the caller's region label.
	got := DistrictFor(geo.Coordinate{Lng: 0, Lat: 0}, "gujarat")
	assert.Equal(t, "gujarat", got)
}
