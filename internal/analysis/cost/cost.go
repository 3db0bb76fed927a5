// internal/analysis/cost/cost.go

// Package cost derives rough development cost components from a site's
// average resource distance.
package cost

import (
	"math"

	"site-advisor/internal/models"
)

// Base cost components in arbitrary cost units. Remote sites scale these
// up through the distance multiplier.
const (
	BaseLandAcquisition = 5000000.0
	BaseInfrastructure  = 3000000.0
	BaseConnectivity    = 1500000.0

	// multiplierScaleKm controls how fast costs grow with distance:
	// +100% at 50 km average resource distance.
	multiplierScaleKm = 50.0
)

// Estimate computes the cost components for a site. Pure function,
// monotonic non-decreasing in averageDistanceKm; each component is
// rounded to the nearest whole unit.
func Estimate(averageDistanceKm float64) models.CostEstimate {
	if averageDistanceKm < 0 || math.IsNaN(averageDistanceKm) {
		averageDistanceKm = 0
	}

	multiplier := 1 + averageDistanceKm/multiplierScaleKm

	return models.CostEstimate{
		LandAcquisition: math.Round(BaseLandAcquisition * multiplier),
		Infrastructure:  math.Round(BaseInfrastructure * multiplier),
		Connectivity:    math.Round(BaseConnectivity * multiplier),
	}
}
