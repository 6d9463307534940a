package iocatalog

import (
	"context"
	"strings"

	"github.com/gnames/gnsynth/pkg/schema"
	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite" // import the sqlite driver
)

const sqliteDriver = "sqlite"

type sqliteStore struct {
	dbx *sqlx.DB
}

func newSQLiteStore(ctx context.Context, path string) (*sqliteStore, error) {
	dbx, err := sqlx.Open(sqliteDriver, path)
	if err != nil {
		return nil, StoreError("open "+path, err)
	}
	// every connection to :memory: is a separate database
	dbx.SetMaxOpenConns(1)

	for _, v := range schema.AllDDL() {
		if _, err = dbx.ExecContext(ctx, v); err != nil {
			dbx.Close()
			return nil, StoreError("create tables", err)
		}
	}
	return &sqliteStore{dbx: dbx}, nil
}

func (s *sqliteStore) reset(ctx context.Context, sourceIDs []string) error {
	tx, err := s.dbx.BeginTxx(ctx, nil)
	if err != nil {
		return StoreError("start transaction", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, "DELETE FROM observed_properties"); err != nil {
		return StoreError("delete variables", err)
	}
	if len(sourceIDs) > 0 {
		qs := []string{
			"DELETE FROM attribute_mappings WHERE data_source_id IN (?)",
			"DELETE FROM data_sources WHERE id IN (?)",
		}
		for _, v := range qs {
			q, args, err := sqlx.In(v, sourceIDs)
			if err != nil {
				return StoreError("build delete query", err)
			}
			if _, err = tx.ExecContext(ctx, tx.Rebind(q), args...); err != nil {
				return StoreError("delete data source rows", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return StoreError("commit reset", err)
	}
	return nil
}

func (s *sqliteStore) addDataSources(
	ctx context.Context,
	rows []schema.DataSource,
) error {
	q := `INSERT OR REPLACE INTO data_sources (id, name, id_prefix, location)
  VALUES (:id, :name, :id_prefix, :location)`
	for _, v := range rows {
		if _, err := s.dbx.NamedExecContext(ctx, q, v); err != nil {
			return StoreError("insert data source "+v.ID, err)
		}
	}
	return nil
}

func (s *sqliteStore) addVariables(
	ctx context.Context,
	rows []schema.ObservedProperty,
) ([]string, error) {
	q := `INSERT OR IGNORE INTO observed_properties
  (id, seq, full_name, categories, units)
  VALUES (:id, :seq, :full_name, :categories, :units)`

	var dups []string
	err := s.insertEach(ctx, q, len(rows), func(i int) any { return rows[i] },
		func(i int) { dups = append(dups, rows[i].ID) })
	if err != nil {
		return nil, StoreError("insert variables", err)
	}
	return dups, nil
}

func (s *sqliteStore) addMappings(
	ctx context.Context,
	rows []schema.AttributeMapping,
) ([]schema.AttributeMapping, error) {
	q := `INSERT OR IGNORE INTO attribute_mappings
  (id, seq, data_source_id, attr_type, canonical_vocab, source_vocab, source_desc)
  VALUES
  (:id, :seq, :data_source_id, :attr_type, :canonical_vocab, :source_vocab, :source_desc)`

	var dups []schema.AttributeMapping
	err := s.insertEach(ctx, q, len(rows), func(i int) any { return rows[i] },
		func(i int) { dups = append(dups, rows[i]) })
	if err != nil {
		return nil, StoreError("insert attribute mappings", err)
	}
	return dups, nil
}

// insertEach runs an INSERT OR IGNORE statement for every row in one
// transaction. Rows that did not change the table are reported by dup.
func (s *sqliteStore) insertEach(
	ctx context.Context,
	q string,
	n int,
	row func(int) any,
	dup func(int),
) error {
	tx, err := s.dbx.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range n {
		res, err := tx.NamedExecContext(ctx, q, row(i))
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			dup(i)
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) variables(
	ctx context.Context,
	ids []string,
) ([]schema.ObservedProperty, error) {
	var res []schema.ObservedProperty
	q := `SELECT id, seq, full_name, categories, units
  FROM observed_properties`
	var args []any
	if len(ids) > 0 {
		var err error
		q, args, err = sqlx.In(q+" WHERE id IN (?)", ids)
		if err != nil {
			return nil, StoreError("build variables query", err)
		}
	}
	q = s.dbx.Rebind(q + " ORDER BY seq")
	if err := s.dbx.SelectContext(ctx, &res, q, args...); err != nil {
		return nil, StoreError("select variables", err)
	}
	return res, nil
}

func (s *sqliteStore) mappings(
	ctx context.Context,
	mq mappingQuery,
) ([]schema.AttributeMapping, error) {
	var res []schema.AttributeMapping
	var where []string
	var args []any
	if len(mq.dataSourceIDs) > 0 {
		where = append(where, "data_source_id IN (?)")
		args = append(args, mq.dataSourceIDs)
	}
	if len(mq.sourceVocabs) > 0 {
		where = append(where, "source_vocab IN (?)")
		args = append(args, mq.sourceVocabs)
	}

	q := `SELECT id, seq, data_source_id, attr_type, canonical_vocab,
  source_vocab, source_desc
  FROM attribute_mappings`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
		var err error
		q, args, err = sqlx.In(q, args...)
		if err != nil {
			return nil, StoreError("build mappings query", err)
		}
	}
	q = s.dbx.Rebind(q + " ORDER BY seq")
	if err := s.dbx.SelectContext(ctx, &res, q, args...); err != nil {
		return nil, StoreError("select attribute mappings", err)
	}
	return res, nil
}

func (s *sqliteStore) counts(ctx context.Context) (int, int, error) {
	var vars, maps int
	err := s.dbx.GetContext(ctx, &vars, "SELECT count(*) FROM observed_properties")
	if err != nil {
		return 0, 0, StoreError("count variables", err)
	}
	err = s.dbx.GetContext(ctx, &maps, "SELECT count(*) FROM attribute_mappings")
	if err != nil {
		return 0, 0, StoreError("count attribute mappings", err)
	}
	return vars, maps, nil
}

func (s *sqliteStore) close() error {
	return s.dbx.Close()
}
