// internal/regions/regions.go
package regions

import (
	"math"
	"strings"

	"site-advisor/internal/geo"
)

// Bounds is a rectangular bounding box in WGS84 degrees.
type Bounds struct {
	MinLng float64
	MinLat float64
	MaxLng float64
	MaxLat float64
}

// Contains reports whether the coordinate lies inside the box, borders
// included.
func (b Bounds) Contains(c geo.Coordinate) bool {
	return c.Lng >= b.MinLng && c.Lng <= b.MaxLng &&
		c.Lat >= b.MinLat && c.Lat <= b.MaxLat
}

// DefaultBounds covers the whole service area and is used when a region
// name is not in the table.
var DefaultBounds = Bounds{MinLng: 68.0, MinLat: 6.5, MaxLng: 97.5, MaxLat: 35.5}

var regionBounds = map[string]Bounds{
	"gujarat":        {MinLng: 68.1, MinLat: 20.1, MaxLng: 74.5, MaxLat: 24.7},
	"maharashtra":    {MinLng: 72.6, MinLat: 15.6, MaxLng: 80.9, MaxLat: 22.0},
	"rajasthan":      {MinLng: 69.5, MinLat: 23.0, MaxLng: 78.3, MaxLat: 30.2},
	"madhya pradesh": {MinLng: 74.0, MinLat: 21.1, MaxLng: 82.8, MaxLat: 26.9},
	"karnataka":      {MinLng: 74.0, MinLat: 11.6, MaxLng: 78.6, MaxLat: 18.5},
}

// BoundsFor looks up the bounding box for a region name. Lookup is
// case-insensitive; unknown names fall back to DefaultBounds.
func BoundsFor(region string) (Bounds, bool) {
	b, ok := regionBounds[strings.ToLower(strings.TrimSpace(region))]
	if !ok {
		return DefaultBounds, false
	}
	return b, true
}

// District is a named bounding box with a centroid used for labeling
// selected sites.
type District struct {
	Name     string
	Bounds   Bounds
	Centroid geo.Coordinate
}

// Order matters: the first matching box wins for coordinates inside an
// overlap.
var districts = []District{
	{"Kutch", Bounds{68.1, 22.7, 71.8, 24.7}, geo.Coordinate{Lng: 69.86, Lat: 23.73}},
	{"Banaskantha", Bounds{71.0, 23.6, 73.0, 24.7}, geo.Coordinate{Lng: 72.43, Lat: 24.17}},
	{"Ahmedabad", Bounds{71.6, 22.0, 73.0, 23.6}, geo.Coordinate{Lng: 72.58, Lat: 23.03}},
	{"Jamnagar", Bounds{69.0, 21.8, 70.6, 22.9}, geo.Coordinate{Lng: 70.07, Lat: 22.47}},
	{"Rajkot", Bounds{70.0, 21.5, 71.7, 23.0}, geo.Coordinate{Lng: 70.80, Lat: 22.30}},
	{"Bhavnagar", Bounds{71.2, 21.2, 72.6, 22.3}, geo.Coordinate{Lng: 72.15, Lat: 21.76}},
	{"Vadodara", Bounds{72.8, 21.8, 74.3, 22.8}, geo.Coordinate{Lng: 73.18, Lat: 22.31}},
	{"Surat", Bounds{72.6, 20.7, 73.8, 21.5}, geo.Coordinate{Lng: 72.83, Lat: 21.17}},
}

// DistrictFor labels a coordinate. Exact bounding-box match first; when
// no box matches but the coordinate is inside the region's broader
// bounds, the nearest district centroid is used; otherwise the supplied
// region string is returned unchanged.
func DistrictFor(c geo.Coordinate, region string) string {
	for _, d := range districts {
		if d.Bounds.Contains(c) {
			return d.Name
		}
	}

	broader, _ := BoundsFor(region)
	if !broader.Contains(c) {
		return region
	}

	bestName := region
	bestDist := math.MaxFloat64
	for _, d := range districts {
		if dist := geo.HaversineKm(c, d.Centroid); dist < bestDist {
			bestDist = dist
			bestName = d.Name
		}
	}
	return bestName
}
