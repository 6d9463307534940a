// Package lifecycle defines stages of the persistent catalog.
package lifecycle

import (
	"context"

	"gorm.io/gorm"
)

// SchemaManager creates catalog tables in PostgreSQL.
// It uses GORM AutoMigrate and is safe to run multiple times.
type SchemaManager interface {
	// Create creates data_sources, observed_properties and
	// attribute_mappings tables if they do not exist.
	Create(ctx context.Context) error

	// DB returns a GORM connection over the pool of the operator.
	DB() (*gorm.DB, error)
}
