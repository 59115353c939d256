// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Simulation  SimulationConfig  `mapstructure:"simulation" validate:"required"`
	MonteCarlo  MonteCarloConfig  `mapstructure:"monte_carlo" validate:"required"`
	Calibration CalibrationConfig `mapstructure:"calibration" validate:"required"`
	Backtest    BacktestConfig    `mapstructure:"backtest" validate:"required"`
	StatsFeed   StatsFeedConfig   `mapstructure:"stats_feed" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
}

// TracingConfig represents AWS X-Ray tracing configuration
type TracingConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	DaemonAddr string `mapstructure:"daemon_addr"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// SimulationConfig represents game engine tuning exposed to deployments.
// The remaining engine parameters keep their compiled defaults.
type SimulationConfig struct {
	HomeFieldPoints float64 `mapstructure:"home_field_points" validate:"gte=0,lte=10"`
	MaxDrivePlays   int     `mapstructure:"max_drive_plays" validate:"required,gt=0"`
	MaxGamePlays    int     `mapstructure:"max_game_plays" validate:"required,gt=0"`
}

// MonteCarloConfig represents batch runner configuration
type MonteCarloConfig struct {
	Trials              int     `mapstructure:"trials" validate:"required,gt=0"`
	MinTrials           int     `mapstructure:"min_trials" validate:"required,gt=0"`
	Workers             int     `mapstructure:"workers" validate:"gte=0"`
	Seed                int64   `mapstructure:"seed"`
	MaxDurationSeconds  int     `mapstructure:"max_duration_seconds" validate:"gte=0"`
	MaxDiscardRate      float64 `mapstructure:"max_discard_rate" validate:"gte=0,lte=1"`
	HighEdgePoints      float64 `mapstructure:"high_edge_points" validate:"required,gt=0"`
	LowEdgePoints       float64 `mapstructure:"low_edge_points" validate:"gte=0"`
	MaxConvictionStdDev float64 `mapstructure:"max_conviction_stddev" validate:"required,gt=0"`
}

// CalibrationConfig represents the weekly calibration pass configuration
type CalibrationConfig struct {
	WindowWeeks         int     `mapstructure:"window_weeks" validate:"required,gt=0"`
	MinSampleWeeks      int     `mapstructure:"min_sample_weeks" validate:"required,gt=0"`
	MaterialityStdErrs  float64 `mapstructure:"materiality_stderrs" validate:"gte=0"`
	Damping             float64 `mapstructure:"damping" validate:"required,gt=0,lte=1"`
	MaxCorrectionPoints float64 `mapstructure:"max_correction_points" validate:"required,gt=0"`
	Schedule            string  `mapstructure:"schedule" validate:"required"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	Season        int     `mapstructure:"season" validate:"required,gt=0"`
	StartWeek     int     `mapstructure:"start_week" validate:"required,gte=1"`
	EndWeek       int     `mapstructure:"end_week" validate:"required,gte=1"`
	MinEdgePoints float64 `mapstructure:"min_edge_points" validate:"gte=0"`
	OutputPath    string  `mapstructure:"output_path" validate:"required"`
	ExportCSV     bool    `mapstructure:"export_csv"`
}

// StatsFeedConfig represents the upstream stats provider configuration
type StatsFeedConfig struct {
	APIURL            string  `mapstructure:"api_url" validate:"required,url"`
	APIKey            string  `mapstructure:"api_key"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts     int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	Burst             int     `mapstructure:"burst" validate:"required,gt=0"`
	CacheTTLSeconds   int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	FailureThreshold  int     `mapstructure:"failure_threshold" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
