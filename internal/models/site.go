// internal/models/site.go
package models

import (
	"math"

	"site-advisor/internal/geo"
)

// NearestResource references the closest resource of one category from
// a candidate site.
type NearestResource struct {
	DistanceKm float64 `json:"distanceKm"`
	ResourceID string  `json:"id"`
	Name       string  `json:"name"`
	Magnitude  float64 `json:"-"`
}

// Found reports whether a resource was located for the category. The
// sentinel "no resource" result carries an infinite distance.
func (n NearestResource) Found() bool {
	return !math.IsInf(n.DistanceKm, 1) && n.ResourceID != ""
}

// CategoryScores holds the per-category sub-scores, each in [0,100].
type CategoryScores struct {
	EnergyScore    float64 `json:"energyScore"`
	WaterScore     float64 `json:"waterScore"`
	IndustryScore  float64 `json:"industryScore"`
	TransportScore float64 `json:"transportScore"`
}

// ScoredSite is a grid candidate that survived scoring.
type ScoredSite struct {
	Location         geo.Coordinate               `json:"location"`
	Scores           CategoryScores               `json:"scores"`
	OverallScore     float64                      `json:"overallScore"`
	NearestResources map[Category]NearestResource `json:"nearestResources"`
}

// AverageResourceDistanceKm is the mean of the four nearest distances,
// feeding cost estimation. Categories without a resource are skipped so
// a sparse catalog does not poison the average with +Inf.
func (s *ScoredSite) AverageResourceDistanceKm() float64 {
	var sum float64
	var n int
	for _, nr := range s.NearestResources {
		if !nr.Found() {
			continue
		}
		sum += nr.DistanceKm
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// CostEstimate itemizes the derived development cost components in
// arbitrary cost units.
type CostEstimate struct {
	LandAcquisition float64 `json:"landAcquisition"`
	Infrastructure  float64 `json:"infrastructure"`
	Connectivity    float64 `json:"connectivity"`
}

// OptimalSite is a selected site, the only entity that crosses the
// persistence boundary.
type OptimalSite struct {
	ID               string                       `json:"id"`
	Location         geo.Coordinate               `json:"location"`
	District         string                       `json:"district"`
	Region           string                       `json:"region"`
	Scores           CategoryScores               `json:"scores"`
	OverallScore     float64                      `json:"overallScore"`
	NearestResources map[Category]NearestResource `json:"nearestResources"`
	EstimatedCosts   CostEstimate                 `json:"estimatedCosts"`
	IsGoldenLocation bool                         `json:"isGoldenLocation"`
}

// FoundNearestResources returns only the categories where a resource
// was actually located. The not-found sentinel carries an infinite
// distance that cannot survive JSON encoding, so it never crosses the
// persistence or reporting boundary.
func (s *OptimalSite) FoundNearestResources() map[Category]NearestResource {
	out := make(map[Category]NearestResource, len(s.NearestResources))
	for c, nr := range s.NearestResources {
		if !nr.Found() || math.IsNaN(nr.DistanceKm) {
			continue
		}
		out[c] = nr
	}
	return out
}

// Persistable reports whether the site passes the persistence-shape
// validation: finite coordinates inside WGS84 ranges and a finite score.
func (s *OptimalSite) Persistable() bool {
	if !s.Location.IsValid() {
		return false
	}
	return !math.IsNaN(s.OverallScore) && !math.IsInf(s.OverallScore, 0)
}
