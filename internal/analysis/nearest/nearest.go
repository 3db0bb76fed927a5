// internal/analysis/nearest/nearest.go

// Package nearest finds the closest valid resource of one category to a
// query point.
package nearest

import (
	"math"

	"site-advisor/internal/common/logger"
	"site-advisor/internal/common/metrics"
	"site-advisor/internal/geo"
	"site-advisor/internal/models"
)

// Finder performs linear nearest-resource searches over a category's
// resource set. Malformed resources are skipped with a warning and never
// abort a search.
type Finder struct {
	logger logger.Logger
}

func NewFinder(log logger.Logger) *Finder {
	return &Finder{
		logger: log.WithFields(map[string]interface{}{"component": "nearest"}),
	}
}

// NoResource is the sentinel returned when a category has no usable
// resource: infinite distance, no id.
func NoResource() models.NearestResource {
	return models.NearestResource{DistanceKm: math.Inf(1)}
}

// Find returns the resource minimizing haversine distance to the point,
// with the distance in kilometers rounded to 2 decimals. An empty set or
// a set of only malformed resources yields the NoResource sentinel, not
// an error.
func (f *Finder) Find(point geo.Coordinate, resources []models.ResourcePoint) models.NearestResource {
	best := NoResource()
	bestDist := math.Inf(1)

	for _, r := range resources {
		if !r.Location.IsValid() {
			f.logger.Warn("skipping resource with malformed coordinates", map[string]interface{}{
				"id":       r.ID,
				"category": string(r.Category),
				"lng":      r.Location.Lng,
				"lat":      r.Location.Lat,
			})
			metrics.ResourcesSkipped.WithLabelValues(string(r.Category)).Inc()
			continue
		}

		d := geo.HaversineKm(point, r.Location)
		if d < bestDist {
			bestDist = d
			best = models.NearestResource{
				DistanceKm: geo.Round2(d),
				ResourceID: r.ID,
				Name:       r.Name,
				Magnitude:  r.Magnitude,
			}
		}
	}

	return best
}
