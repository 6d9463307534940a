// Package schema provides table models of the gnsynth catalog.
// The same models create tables in SQLite (from ddl tags) and in
// PostgreSQL (GORM AutoMigrate).
package schema

// DDLGenerator defines how Go models generate SQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// DataSource is a registered source of observations.
type DataSource struct {
	// ID is a unique short name of the data source.
	ID string `db:"id" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`

	// Name is a human-friendly name of the data source.
	Name string `db:"name" ddl:"TEXT"`

	// IDPrefix namespaces identifiers of objects from the data source.
	IDPrefix string `db:"id_prefix" ddl:"TEXT NOT NULL" gorm:"not null"`

	// Location is a URL or a directory of the data source.
	Location string `db:"location" ddl:"TEXT"`
}

// ObservedProperty is a variable of the canonical vocabulary.
type ObservedProperty struct {
	// ID is the canonical vocabulary of the variable.
	ID string `db:"id" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`

	// Seq keeps the order of the reference file.
	Seq int `db:"seq" ddl:"INTEGER NOT NULL" gorm:"not null;index"`

	// FullName is a description of the variable.
	FullName string `db:"full_name" ddl:"TEXT"`

	// Categories are comma-separated categories from general to specific.
	Categories string `db:"categories" ddl:"TEXT"`

	// Units of measurement.
	Units string `db:"units" ddl:"TEXT"`
}

// AttributeMapping maps a source vocabulary to a canonical one.
type AttributeMapping struct {
	// ID is UUID v5 generated from data source ID, attribute type and
	// source vocabulary.
	ID string `db:"id" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`

	// Seq keeps the order of mapping files.
	Seq int `db:"seq" ddl:"INTEGER NOT NULL" gorm:"not null;index"`

	// DataSourceID is the ID of the data source that owns the mapping.
	DataSourceID string `db:"data_source_id" ddl:"TEXT NOT NULL" gorm:"not null;uniqueIndex:idx_attribute_mappings_key,priority:1"`

	// AttrType is a simple or compound attribute type.
	AttrType string `db:"attr_type" ddl:"TEXT NOT NULL" gorm:"not null;uniqueIndex:idx_attribute_mappings_key,priority:2"`

	// CanonicalVocab is aligned with AttrType.
	CanonicalVocab string `db:"canonical_vocab" ddl:"TEXT NOT NULL" gorm:"not null"`

	// SourceVocab is the vocabulary of the data source.
	SourceVocab string `db:"source_vocab" ddl:"TEXT NOT NULL" gorm:"not null;uniqueIndex:idx_attribute_mappings_key,priority:3"`

	// SourceDesc is a description given by the data source.
	SourceDesc string `db:"source_desc" ddl:"TEXT"`
}
