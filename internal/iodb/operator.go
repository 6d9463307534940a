// Package iodb implements database operations using pgxpool.
// The PostgreSQL backend of the catalog uses its pool.
package iodb

import (
	"context"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/gnames/gnsynth/pkg/config"
	"github.com/gnames/gnsynth/pkg/db"
	"github.com/gnames/gnsynth/pkg/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a new database operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// ConnString builds a PostgreSQL URL from database settings. User and
// password are escaped.
func ConnString(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Database,
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return u.String()
}

// Connect establishes a connection pool to PostgreSQL.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	poolConfig, err := pgxpool.ParseConfig(ConnString(cfg))
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// catalog lookups are short, a small pool is enough
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool.
func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// catalogTableNames returns names of catalog tables in creation order.
func catalogTableNames() []string {
	models := schema.DDLModels()
	res := make([]string, len(models))
	for i, v := range models {
		res[i] = v.TableName()
	}
	return res
}

// CatalogTables returns names of existing catalog tables.
func (p *pgxOperator) CatalogTables(ctx context.Context) ([]string, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	q := `
		SELECT table_name::text
		FROM information_schema.tables
		WHERE table_schema = current_schema()
		AND table_name::text = ANY($1::text[])
		ORDER BY 1
	`
	rows, err := p.pool.Query(ctx, q, catalogTableNames())
	if err != nil {
		return nil, TableCheckError(err)
	}
	res, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, TableCheckError(err)
	}
	return res, nil
}

// DropCatalogTables drops catalog tables, dependent ones first.
func (p *pgxOperator) DropCatalogTables(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	names := catalogTableNames()
	quoted := make([]string, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		quoted = append(quoted, pgx.Identifier{names[i]}.Sanitize())
	}
	stmt := "DROP TABLE IF EXISTS " + strings.Join(quoted, ", ") + " CASCADE"

	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, stmt)
		return err
	})
	if err != nil {
		return DropTableError(strings.Join(names, ", "), err)
	}
	return nil
}
