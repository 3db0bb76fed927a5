// internal/catalog/catalog.go

// Package catalog provides read-only access to the four categorized sets
// of geolocated resource points for a region.
package catalog

import (
	"context"

	"site-advisor/internal/models"
)

// Catalog is the query boundary the analysis pipeline depends on. The
// returned snapshot is treated as immutable for the duration of a run.
type Catalog interface {
	Query(ctx context.Context, region string) (*models.ResourceSnapshot, error)
}

func newSnapshot(region string) *models.ResourceSnapshot {
	resources := make(map[models.Category][]models.ResourcePoint, len(models.Categories))
	for _, c := range models.Categories {
		resources[c] = nil
	}
	return &models.ResourceSnapshot{Region: region, Resources: resources}
}
