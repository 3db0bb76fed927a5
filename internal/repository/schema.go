// internal/repository/schema.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema holds the DDL for the tables the pipeline touches. Applied by
// the seed-resources tool; production deployments manage migrations
// externally.
const Schema = `
CREATE TABLE IF NOT EXISTS resources (
	id         TEXT PRIMARY KEY,
	category   TEXT NOT NULL,
	name       TEXT NOT NULL,
	longitude  DOUBLE PRECISION NOT NULL,
	latitude   DOUBLE PRECISION NOT NULL,
	magnitude  DOUBLE PRECISION NOT NULL DEFAULT 0,
	region     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_resources_region_category
	ON resources (lower(region), category);

CREATE TABLE IF NOT EXISTS optimal_sites (
	id                    TEXT PRIMARY KEY,
	region                TEXT NOT NULL,
	district              TEXT NOT NULL,
	longitude             DOUBLE PRECISION NOT NULL,
	latitude              DOUBLE PRECISION NOT NULL,
	overall_score         DOUBLE PRECISION NOT NULL,
	energy_score          DOUBLE PRECISION NOT NULL,
	water_score           DOUBLE PRECISION NOT NULL,
	industry_score        DOUBLE PRECISION NOT NULL,
	transport_score       DOUBLE PRECISION NOT NULL,
	nearest_resources     JSONB NOT NULL,
	land_acquisition_cost DOUBLE PRECISION NOT NULL,
	infrastructure_cost   DOUBLE PRECISION NOT NULL,
	connectivity_cost     DOUBLE PRECISION NOT NULL,
	is_golden_location    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_optimal_sites_region
	ON optimal_sites (lower(region));
`

// EnsureSchema applies the DDL.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
