package schema_test

import (
	"strings"
	"testing"

	"github.com/gnames/gnsynth/pkg/schema"
	"github.com/stretchr/testify/assert"
)

// TestDataSourceTableDDL tests DDL generation for DataSource model
func TestDataSourceTableDDL(t *testing.T) {
	ds := schema.DataSource{}
	ddl := ds.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS data_sources")
	assert.Contains(t, ddl, "id TEXT PRIMARY KEY")
	assert.Contains(t, ddl, "id_prefix TEXT NOT NULL")
	assert.Equal(t, "data_sources", ds.TableName())
	assert.Empty(t, ds.IndexDDL())
}

// TestAttributeMappingDDL tests DDL generation for AttributeMapping model
func TestAttributeMappingDDL(t *testing.T) {
	am := schema.AttributeMapping{}
	ddl := am.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS attribute_mappings")
	assert.Contains(t, ddl, "data_source_id TEXT NOT NULL")
	assert.Contains(t, ddl, "canonical_vocab TEXT NOT NULL")

	idx := am.IndexDDL()
	assert.Len(t, idx, 2)
	assert.Contains(t, idx[0], "UNIQUE INDEX")
	assert.Contains(t, idx[0], "(data_source_id, attr_type, source_vocab)")
}

// TestAllDDL tests that tables are created before their indices
func TestAllDDL(t *testing.T) {
	stmts := schema.AllDDL()
	assert.Len(t, stmts, 6)

	var tables int
	for i, v := range stmts {
		if strings.HasPrefix(v, "CREATE TABLE") {
			tables++
			continue
		}
		// every index follows its table
		assert.Greater(t, i, 0)
	}
	assert.Equal(t, 3, tables)
	assert.Len(t, schema.AllModels(), 3)
}
