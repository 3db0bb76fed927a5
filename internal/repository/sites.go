// internal/repository/sites.go

// Package repository persists optimal sites with region-replace
// semantics: a new analysis run fully supersedes the previous result set
// for its region.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"site-advisor/internal/common/errors"
	"site-advisor/internal/common/logger"
	"site-advisor/internal/common/metrics"
	"site-advisor/internal/models"
)

// SiteRepository is the persistence boundary of the pipeline.
type SiteRepository interface {
	ReplaceRegion(ctx context.Context, region string, sites []models.OptimalSite) error
}

const (
	deleteRegionSites = `DELETE FROM optimal_sites WHERE lower(region) = lower($1)`

	insertSite = `
INSERT INTO optimal_sites (
	id, region, district, longitude, latitude,
	overall_score, energy_score, water_score, industry_score, transport_score,
	nearest_resources,
	land_acquisition_cost, infrastructure_cost, connectivity_cost,
	is_golden_location, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
)

// PostgresSiteRepository implements SiteRepository on PostgreSQL.
type PostgresSiteRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresSiteRepository(db *sql.DB, log logger.Logger) *PostgresSiteRepository {
	return &PostgresSiteRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "repository.sites"}),
	}
}

// ReplaceRegion deletes every previously persisted site for the region
// and inserts the new set in one transaction, so readers never observe a
// partial state. Sites failing shape validation are dropped with a
// warning; repository errors are propagated unmodified with no retry.
func (r *PostgresSiteRepository) ReplaceRegion(ctx context.Context, region string, sites []models.OptimalSite) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewRepositoryFailureError(fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteRegionSites, region); err != nil {
		return errors.NewRepositoryFailureError(fmt.Errorf("delete region sites: %w", err))
	}

	now := time.Now().UTC()
	inserted := 0
	for _, site := range sites {
		if !site.Persistable() {
			r.logger.Warn("dropping site failing persistence validation", map[string]interface{}{
				"region": region,
				"lng":    site.Location.Lng,
				"lat":    site.Location.Lat,
				"score":  site.OverallScore,
			})
			metrics.SitesDropped.WithLabelValues(region, string(errors.ErrCodeInvalidSiteData)).Inc()
			continue
		}

		id := site.ID
		if id == "" {
			id = uuid.NewString()
		}

		nearest, err := json.Marshal(site.FoundNearestResources())
		if err != nil {
			return errors.NewRepositoryFailureError(fmt.Errorf("marshal nearest resources: %w", err))
		}

		if _, err := tx.ExecContext(ctx, insertSite,
			id, region, site.District,
			site.Location.Lng, site.Location.Lat,
			site.OverallScore,
			site.Scores.EnergyScore, site.Scores.WaterScore,
			site.Scores.IndustryScore, site.Scores.TransportScore,
			nearest,
			site.EstimatedCosts.LandAcquisition,
			site.EstimatedCosts.Infrastructure,
			site.EstimatedCosts.Connectivity,
			site.IsGoldenLocation, now,
		); err != nil {
			return errors.NewRepositoryFailureError(fmt.Errorf("insert site %s: %w", id, err))
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return errors.NewRepositoryFailureError(fmt.Errorf("commit: %w", err))
	}

	r.logger.Info("region sites replaced", map[string]interface{}{
		"region":   region,
		"inserted": inserted,
		"dropped":  len(sites) - inserted,
	})

	return nil
}
