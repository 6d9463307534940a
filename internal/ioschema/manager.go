// Package ioschema implements the SchemaManager interface for catalog
// tables in PostgreSQL. This is an impure I/O package that wraps GORM
// AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/gnsynth/pkg/db"
	"github.com/gnames/gnsynth/pkg/lifecycle"
	"github.com/gnames/gnsynth/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
	gormDB   *gorm.DB
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// DB opens GORM over the pgx pool once and reuses it.
func (m *manager) DB() (*gorm.DB, error) {
	if m.gormDB != nil {
		return m.gormDB, nil
	}

	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	m.gormDB = gormDB
	return gormDB, nil
}

// Create creates catalog tables using GORM AutoMigrate.
func (m *manager) Create(ctx context.Context) error {
	gormDB, err := m.DB()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}
	slog.Info("Catalog tables are ready", "tables", len(schema.AllModels()))
	return nil
}
