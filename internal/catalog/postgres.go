// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"site-advisor/internal/common/errors"
	"site-advisor/internal/common/logger"
	"site-advisor/internal/models"
)

const queryResourcesByRegion = `
SELECT id, category, name, longitude, latitude, magnitude
FROM resources
WHERE lower(region) = lower($1)
ORDER BY category, id`

// PostgresCatalog loads resource snapshots from the resources table.
type PostgresCatalog struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresCatalog(db *sql.DB, log logger.Logger) *PostgresCatalog {
	return &PostgresCatalog{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "catalog.postgres"}),
	}
}

// Query loads all resource points for the region, grouped by category.
// Unknown categories in the table are logged and skipped so a widened
// schema cannot break older deployments.
func (c *PostgresCatalog) Query(ctx context.Context, region string) (*models.ResourceSnapshot, error) {
	region = strings.TrimSpace(region)

	rows, err := c.db.QueryContext(ctx, queryResourcesByRegion, region)
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError(region, fmt.Errorf("query resources: %w", err))
	}
	defer rows.Close()

	snapshot := newSnapshot(region)
	for rows.Next() {
		var (
			p        models.ResourcePoint
			category string
		)
		if err := rows.Scan(&p.ID, &category, &p.Name, &p.Location.Lng, &p.Location.Lat, &p.Magnitude); err != nil {
			return nil, errors.NewCatalogQueryFailedError(region, fmt.Errorf("scan resource: %w", err))
		}

		p.Category = models.Category(category)
		if !p.Category.Valid() {
			c.logger.Warn("skipping resource with unknown category", map[string]interface{}{
				"id":       p.ID,
				"category": category,
			})
			continue
		}
		if p.Magnitude < 0 {
			p.Magnitude = 0
		}

		snapshot.Resources[p.Category] = append(snapshot.Resources[p.Category], p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogQueryFailedError(region, fmt.Errorf("iterate resources: %w", err))
	}

	c.logger.Debug("catalog snapshot loaded", map[string]interface{}{
		"region":      region,
		"greenEnergy": len(snapshot.Resources[models.CategoryGreenEnergy]),
		"water":       len(snapshot.Resources[models.CategoryWater]),
		"industry":    len(snapshot.Resources[models.CategoryIndustry]),
		"transport":   len(snapshot.Resources[models.CategoryTransport]),
	})

	return snapshot, nil
}
