// Package iotesting provides shared test utilities: configurations,
// fixture plugins with mapping files and data directories.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gnames/gnsynth/internal/iodb"
	"github.com/gnames/gnsynth/pkg/config"
	"github.com/jackc/pgx/v5"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "gnsynth_test"
)

// GetTestConfig returns a configuration suitable for tests. It starts
// from defaults, takes database credentials from GNSYNTH_DATABASE_*
// environment variables and overrides the database name to
// TestDatabaseName for safety.
func GetTestConfig() *config.Config {
	cfg := config.New()
	var opts []config.Option
	if s := os.Getenv("GNSYNTH_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("GNSYNTH_DATABASE_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if s := os.Getenv("GNSYNTH_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("GNSYNTH_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts,
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptJobsNumber(2),
	)
	cfg.Update(opts)
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// SkipWithoutPostgres skips a test if the test database is not reachable.
func SkipWithoutPostgres(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	cfg := GetTestDatabaseConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, iodb.ConnString(cfg))
	if err != nil {
		t.Skipf("PostgreSQL test database is not reachable: %v", err)
	}
	conn.Close(ctx)
}

// SetupTempHome creates a temporary home directory with gnsynth config
// and mapping directories. The directory is removed after the test.
func SetupTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	dirs := []string{
		config.ConfigDir(home),
		config.MappingDir(home),
		config.LogDir(home),
	}
	for _, v := range dirs {
		if err := os.MkdirAll(v, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", v, err)
		}
	}
	return home
}

// WriteTempDataSourcesYAML writes datasources.yaml to the config directory
// of a temporary home.
//
// Usage:
//
//	home := iotesting.SetupTempHome(t)
//	iotesting.WriteTempDataSourcesYAML(t, home, `
//	data_sources:
//	  - id: Alpha
//	    id_prefix: A
//	    location: /path/to/data
//	`)
func WriteTempDataSourcesYAML(t *testing.T, home, content string) {
	t.Helper()

	path := config.DataSourcesFilePath(home)
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("Failed to write temp datasources.yaml: %v", err)
	}
}

// WriteFile writes a file into a directory, creating the directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
