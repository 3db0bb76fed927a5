// cmd/analysis-runner/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"site-advisor/internal/analysis"
	"site-advisor/internal/analysis/scoring"
	"site-advisor/internal/catalog"
	"site-advisor/internal/common/config"
	"site-advisor/internal/common/database"
	"site-advisor/internal/common/logger"
	"site-advisor/internal/common/observability"
	"site-advisor/internal/repository"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	region := flag.String("region", "", "region to analyze (required)")
	resolution := flag.Float64("resolution", 0, "grid resolution in degrees (0 uses the configured default)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting analysis runner...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	if *region == "" {
		zapLog.Fatal("missing required -region flag")
	}
	if *resolution <= 0 {
		*resolution = cfg.Analysis.GridResolution
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Build the catalog for the configured backend ---
	var cat catalog.Catalog
	switch cfg.Catalog.Backend {
	case "elasticsearch":
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
		cat = catalog.NewElasticCatalog(esClient.Client, cfg.Catalog.Index, log)
	default:
		cat = catalog.NewPostgresCatalog(pg.DB, log)
	}

	// --- Optional Redis snapshot cache ---
	if cfg.Catalog.CacheEnabled {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		zapLog.Info("Redis connected successfully")

		ttl := time.Duration(cfg.Catalog.CacheTTLSecs) * time.Second
		cat = catalog.NewCachedCatalog(cat, rdb.Client, ttl, log)
	}

	// --- Metrics endpoint ---
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
		go func() {
			zapLog.Info("metrics endpoint listening", zap.String("address", cfg.Metrics.Address))
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				zapLog.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	repo := repository.NewPostgresSiteRepository(pg.DB, log)
	pipeline := analysis.New(cat, repo, cfg.Analysis, scoring.ProfileFromConfig(cfg.Scoring), obs, log)

	result, err := pipeline.Run(ctx, *region, *resolution)
	if err != nil {
		zapLog.Error("analysis run failed", zap.Error(err))
		shutdownMetrics(metricsSrv, zapLog)
		os.Exit(1)
	}

	summary, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		zapLog.Warn("run summary encoding failed", zap.Error(err))
	} else {
		fmt.Println(string(summary))
	}

	zapLog.Info("analysis runner finished",
		zap.String("region", result.Region),
		zap.Int("selected", len(result.Sites)),
		zap.Duration("duration", result.Duration),
	)

	shutdownMetrics(metricsSrv, zapLog)
}

func shutdownMetrics(srv *http.Server, log *zap.Logger) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("metrics server shutdown failed", zap.Error(err))
	}
}
