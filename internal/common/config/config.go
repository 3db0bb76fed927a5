// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Pipeline Configuration ---

// CatalogConfig selects the resource catalog backend and its snapshot
// cache behavior.
type CatalogConfig struct {
	Backend       string `mapstructure:"backend"` // "postgres" or "elasticsearch"
	Index         string `mapstructure:"index"`   // elasticsearch index name
	CacheEnabled  bool   `mapstructure:"cache_enabled"`
	CacheTTLSecs  int    `mapstructure:"cache_ttl_seconds"`
}

// AnalysisConfig holds the per-run pipeline settings.
type AnalysisConfig struct {
	GridResolution    float64 `mapstructure:"grid_resolution"` // degrees
	ScoreThreshold    float64 `mapstructure:"score_threshold"`
	MinSiteDistanceKm float64 `mapstructure:"min_site_distance_km"`
	MaxSelectedSites  int     `mapstructure:"max_selected_sites"`
	Workers           int     `mapstructure:"workers"`
	RunTimeoutSecs    int     `mapstructure:"run_timeout_seconds"`
}

// ScoringConfig lets deployments substitute an alternate weight profile
// without touching engine code. Zero values fall back to the canonical
// defaults during load.
type ScoringConfig struct {
	Weights           CategoryValues `mapstructure:"weights"`
	MaxDistancesKm    CategoryValues `mapstructure:"max_distances_km"`
	TransportBaseline float64        `mapstructure:"transport_baseline"`
}

// CategoryValues carries one float per resource category.
type CategoryValues struct {
	GreenEnergy float64 `mapstructure:"green_energy"`
	Water       float64 `mapstructure:"water"`
	Industry    float64 `mapstructure:"industry"`
	Transport   float64 `mapstructure:"transport"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
