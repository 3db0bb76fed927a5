// internal/geo/geo.go
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Coordinate is a WGS84 longitude/latitude pair.
type Coordinate struct {
	Lng float64 `json:"longitude"`
	Lat float64 `json:"latitude"`
}

// IsValid reports whether both components are finite and inside the
// valid WGS84 ranges.
func (c Coordinate) IsValid() bool {
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return false
	}
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return false
	}
	return c.Lng >= -180 && c.Lng <= 180 && c.Lat >= -90 && c.Lat <= 90
}

// HaversineKm returns the great-circle distance between two coordinates
// in kilometers.
func HaversineKm(a, b Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// Round2 rounds to two decimal places. Distances and scores are reported
// at this precision everywhere in the pipeline.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
