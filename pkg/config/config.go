// Package config provides configuration management for gnsynth.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Catalog: backend, sqlite_path, reference_file, mapping_dir
//   - Database: host, port, user, password, database, ssl_mode
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - DataSourceIDs, WithMetrics, WithPrettyOutput (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNSYNTH_ prefix with underscores for nesting:
//
//	GNSYNTH_CATALOG_BACKEND=postgres
//	GNSYNTH_DATABASE_HOST=localhost
//	GNSYNTH_LOG_LEVEL=info
//	GNSYNTH_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gnsynth configuration.
type Config struct {
	// Catalog contains settings of the vocabulary catalog.
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`

	// Database contains PostgreSQL connection settings used by the
	// postgres catalog backend.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// DataSourceIDs limits synthesis to given data sources.
	// Empty slice means all registered data sources.
	DataSourceIDs []string `mapstructure:"-" yaml:"-"`

	// WithMetrics enables reporting of synthesis counters.
	WithMetrics bool `mapstructure:"-" yaml:"-"`

	// WithPrettyOutput makes JSON output human-readable.
	WithPrettyOutput bool `mapstructure:"-" yaml:"-"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// CatalogConfig contains settings of the vocabulary catalog.
type CatalogConfig struct {
	// Backend keeps catalog tables. Valid values: "sqlite", "postgres".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// SQLitePath is a path to the SQLite catalog file. The default
	// ":memory:" keeps the catalog in memory.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	// ReferenceFile is a path or gs:// URL of the observed property
	// vocabulary. Empty value means the embedded vocabulary.
	ReferenceFile string `mapstructure:"reference_file" yaml:"reference_file"`

	// MappingDir is a directory or gs:// URL with mapping files of data
	// sources that do not provide their own. Empty value means
	// MappingDir(HomeDir).
	MappingDir string `mapstructure:"mapping_dir" yaml:"mapping_dir"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Catalog: CatalogConfig{
			Backend:    "sqlite",
			SQLitePath: ":memory:",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "gnsynth",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}

// MappingLocation returns the location of mapping files, falling back to
// the mappings directory in HomeDir.
func (c *Config) MappingLocation() string {
	if c.Catalog.MappingDir != "" {
		return c.Catalog.MappingDir
	}
	if c.HomeDir == "" {
		return ""
	}
	return MappingDir(c.HomeDir)
}
