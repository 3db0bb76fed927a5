// internal/common/config/loader.go
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml plus an optional config.<env>.yaml
// overlay, with environment variables overriding both.
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // overlay is optional

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env at a few relative locations so tests and tools
// run from nested directories still pick it up.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "site-advisor"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Database.Postgres.Host == "" {
		cfg.Database.Postgres.Host = "localhost"
	}
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if len(cfg.Database.Elasticsearch.Addresses) == 0 {
		cfg.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	}
	if cfg.Database.Redis.Address == "" {
		cfg.Database.Redis.Address = "localhost:6379"
	}

	if cfg.Catalog.Backend == "" {
		cfg.Catalog.Backend = "postgres"
	}
	if cfg.Catalog.Index == "" {
		cfg.Catalog.Index = "resources"
	}
	if cfg.Catalog.CacheTTLSecs == 0 {
		cfg.Catalog.CacheTTLSecs = 300
	}

	if cfg.Analysis.GridResolution == 0 {
		cfg.Analysis.GridResolution = 0.1
	}
	if cfg.Analysis.ScoreThreshold == 0 {
		cfg.Analysis.ScoreThreshold = 20
	}
	if cfg.Analysis.MinSiteDistanceKm == 0 {
		cfg.Analysis.MinSiteDistanceKm = 2
	}
	if cfg.Analysis.MaxSelectedSites == 0 {
		cfg.Analysis.MaxSelectedSites = 15
	}
	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = 8
	}
	if cfg.Analysis.RunTimeoutSecs == 0 {
		cfg.Analysis.RunTimeoutSecs = 120
	}

	// Canonical scoring profile: weights .30/.25/.25/.20, cutoffs
	// 50/20/100/10 km, transport baseline 50.
	if cfg.Scoring.Weights == (CategoryValues{}) {
		cfg.Scoring.Weights = CategoryValues{
			GreenEnergy: 0.30, Water: 0.25, Industry: 0.25, Transport: 0.20,
		}
	}
	if cfg.Scoring.MaxDistancesKm == (CategoryValues{}) {
		cfg.Scoring.MaxDistancesKm = CategoryValues{
			GreenEnergy: 50, Water: 20, Industry: 100, Transport: 10,
		}
	}
	if cfg.Scoring.TransportBaseline == 0 {
		cfg.Scoring.TransportBaseline = 50
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9091"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Analysis.GridResolution <= 0 {
		return fmt.Errorf("analysis.grid_resolution must be > 0, got %v", cfg.Analysis.GridResolution)
	}
	if cfg.Analysis.Workers < 1 {
		return fmt.Errorf("analysis.workers must be >= 1, got %d", cfg.Analysis.Workers)
	}
	if cfg.Analysis.ScoreThreshold < 0 || cfg.Analysis.ScoreThreshold > 100 {
		return fmt.Errorf("analysis.score_threshold must be in [0,100], got %v", cfg.Analysis.ScoreThreshold)
	}

	w := cfg.Scoring.Weights
	sum := w.GreenEnergy + w.Water + w.Industry + w.Transport
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("scoring.weights must sum to 1.0, got %v", sum)
	}

	d := cfg.Scoring.MaxDistancesKm
	for name, v := range map[string]float64{
		"green_energy": d.GreenEnergy,
		"water":        d.Water,
		"industry":     d.Industry,
		"transport":    d.Transport,
	} {
		if v <= 0 {
			return fmt.Errorf("scoring.max_distances_km.%s must be > 0, got %v", name, v)
		}
	}

	switch cfg.Catalog.Backend {
	case "postgres", "elasticsearch":
	default:
		return fmt.Errorf("catalog.backend must be postgres or elasticsearch, got %q", cfg.Catalog.Backend)
	}

	return nil
}
