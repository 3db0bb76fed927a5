// cmd/tools/seed-resources/main.go

// seed-resources loads a deterministic sample resource catalog for a
// region into PostgreSQL, so local runs have something to analyze. With
// -schema it also applies the table DDL first.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"site-advisor/internal/catalog"
	"site-advisor/internal/common/config"
	"site-advisor/internal/common/database"
	"site-advisor/internal/common/logger"
	"site-advisor/internal/geo"
	"site-advisor/internal/models"
	"site-advisor/internal/repository"
)

type seedResource struct {
	ID        string
	Category  models.Category
	Name      string
	Lng, Lat  float64
	Magnitude float64
}

// gujaratSeed is a hand-picked set of real-world-shaped resources across
// the state: solar and wind parks, reservoirs and canals, industrial
// estates, highway and port nodes.
var gujaratSeed = []seedResource{
	{"ge-charanka", models.CategoryGreenEnergy, "Charanka Solar Park", 71.20, 23.90, 690},
	{"ge-kutch-wind", models.CategoryGreenEnergy, "Kutch Hybrid Wind Farm", 69.80, 23.20, 300},
	{"ge-dhuvaran", models.CategoryGreenEnergy, "Dhuvaran Solar Plant", 72.75, 22.25, 112},
	{"ge-banaskantha", models.CategoryGreenEnergy, "Banaskantha Solar Cluster", 71.60, 24.20, 345},

	{"wt-sardar-sarovar", models.CategoryWater, "Sardar Sarovar Reservoir", 73.75, 21.83, 9500},
	{"wt-narmada-canal", models.CategoryWater, "Narmada Main Canal", 72.10, 23.10, 458},
	{"wt-ukai", models.CategoryWater, "Ukai Dam", 73.59, 21.25, 7414},
	{"wt-kadana", models.CategoryWater, "Kadana Reservoir", 73.83, 23.30, 1714},

	{"in-sanand", models.CategoryIndustry, "Sanand GIDC Estate", 72.38, 22.99, 850},
	{"in-dahej", models.CategoryIndustry, "Dahej PCPIR", 72.58, 21.70, 1200},
	{"in-hazira", models.CategoryIndustry, "Hazira Industrial Area", 72.62, 21.12, 980},
	{"in-morbi", models.CategoryIndustry, "Morbi Ceramic Cluster", 70.84, 22.82, 640},

	{"tr-nh47", models.CategoryTransport, "NH-47 Sarkhej Junction", 72.50, 22.98, 0},
	{"tr-mundra", models.CategoryTransport, "Mundra Port Gateway", 69.72, 22.84, 0},
	{"tr-vadodara-exp", models.CategoryTransport, "Vadodara Expressway Node", 73.18, 22.31, 0},
	{"tr-rajkot-rail", models.CategoryTransport, "Rajkot Freight Terminal", 70.80, 22.30, 0},
}

const (
	deleteRegionResources = `DELETE FROM resources WHERE lower(region) = lower($1)`
	insertResource        = `
INSERT INTO resources (id, category, name, longitude, latitude, magnitude, region)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
)

func main() {
	region := flag.String("region", "gujarat", "region to seed")
	applySchema := flag.Bool("schema", false, "apply table DDL before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pg.Close()

	if err := pg.Ping(ctx); err != nil {
		zapLog.Fatal("postgres ping failed", zap.Error(err))
	}

	if *applySchema {
		if err := repository.EnsureSchema(ctx, pg.DB); err != nil {
			zapLog.Fatal("schema apply failed", zap.Error(err))
		}
		zapLog.Info("schema applied")
	}

	seed := gujaratSeed
	if err := seedRegion(ctx, pg, *region, seed); err != nil {
		zapLog.Fatal("seeding failed", zap.Error(err))
	}

	// Invalidate a stale snapshot so the next run sees the new catalog.
	if cfg.Catalog.CacheEnabled {
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			log.Warn("redis unavailable, snapshot cache not invalidated", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer rdb.Close()
			key := catalog.SnapshotCacheKey(*region)
			if err := rdb.Client.Del(ctx, key).Err(); err != nil {
				log.Warn("snapshot cache invalidation failed", map[string]interface{}{
					"key":   key,
					"error": err.Error(),
				})
			}
		}
	}

	log.Info("seeding finished", map[string]interface{}{
		"region":    *region,
		"resources": len(seed),
	})
}

func seedRegion(ctx context.Context, pg *database.PostgresClient, region string, seed []seedResource) error {
	for _, r := range seed {
		c := geo.Coordinate{Lng: r.Lng, Lat: r.Lat}
		if !c.IsValid() {
			return fmt.Errorf("seed resource %s has invalid coordinates", r.ID)
		}
	}

	tx, err := pg.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteRegionResources, region); err != nil {
		return fmt.Errorf("clear region resources: %w", err)
	}

	for _, r := range seed {
		if _, err := tx.ExecContext(ctx, insertResource,
			r.ID, string(r.Category), r.Name, r.Lng, r.Lat, r.Magnitude, region,
		); err != nil {
			return fmt.Errorf("insert resource %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}
