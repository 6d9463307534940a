// Package db defines the PostgreSQL operator used by the persistent
// catalog backend.
package db

import (
	"context"

	"github.com/gnames/gnsynth/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator connects to the catalog database and manages catalog tables.
// Tables are created by GORM AutoMigrate over the same pool.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// CatalogTables returns names of catalog tables that already exist
	// in the current schema. Catalog creation prompts for confirmation
	// when the result is not empty.
	CatalogTables(ctx context.Context) ([]string, error)

	// DropCatalogTables drops all catalog tables in one transaction.
	// Other tables of the database are left alone.
	DropCatalogTables(ctx context.Context) error
}
