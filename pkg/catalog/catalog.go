// Package catalog defines the vocabulary catalog of gnsynth.
//
// The catalog combines two stores. The variable store keeps canonical
// observed-property variables loaded from a reference table. The
// attribute mapping store keeps, for every data source, the mappings
// between source vocabularies and canonical vocabularies, including
// compound mappings that couple several attribute types.
//
// The catalog is built once by Initialize and is read-only afterwards.
// All lookups fail before initialization.
package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/query"
)

// Catalog provides vocabulary lookups in both directions.
type Catalog interface {
	// Initialize loads the reference vocabulary and the mapping file of
	// every source. Missing files and malformed headers are fatal,
	// malformed rows are logged and skipped.
	Initialize(ctx context.Context, sources []Source) error

	// IsInitialized is true after a successful Initialize.
	IsInitialized() bool

	// ObservedProperty returns a variable by its canonical ID, or nil if
	// the variable is unknown.
	ObservedProperty(ctx context.Context, id string) (*model.ObservedProperty, error)

	// ObservedProperties returns variables with given IDs, or all of them
	// if no IDs are given.
	ObservedProperties(ctx context.Context, ids ...string) ([]model.ObservedProperty, error)

	// FindMapping returns the mapping of a source vocabulary or nil.
	FindMapping(
		ctx context.Context,
		sourceID, attrType, sourceVocab string,
	) (*model.AttributeMapping, error)

	// FindDatasourceMapping works like FindMapping, but returns a
	// NOT_SUPPORTED mapping that explains the failure instead of nil.
	FindDatasourceMapping(
		ctx context.Context,
		sourceID, attrType, sourceVocab string,
	) (model.AttributeMapping, error)

	// FindMappings scans mappings that satisfy the filter.
	FindMappings(ctx context.Context, f MappingFilter) ([]model.AttributeMapping, error)

	// CompoundAttributes returns attribute types that share compound
	// mappings with attrType, in the declared order of the source.
	CompoundAttributes(
		ctx context.Context,
		sourceID, attrType string,
		includeSelf bool,
	) ([]string, error)

	// CompoundAttrTypes returns compound attribute types of a source in
	// the order of their first appearance in its mapping file.
	CompoundAttrTypes(ctx context.Context, sourceID string) ([]string, error)

	// DatasourceVocab resolves a canonical value of an attribute type to
	// source vocabularies. Values of sibling attribute types of compound
	// mappings are taken from the context.
	DatasourceVocab(
		ctx context.Context,
		sourceID, attrType, canonical string,
		context query.FieldGetter,
	) (VocabMatch, error)

	// Counts returns numbers of stored variables and attribute mappings.
	Counts(ctx context.Context) (variables int, mappings int, err error)

	// Close releases the store of the catalog.
	Close() error
}

// Source is a data source with its mapping file.
type Source struct {
	// DataSource to load mappings for.
	DataSource model.DataSource

	// Files contain the mapping file of the source. If nil, the file is
	// looked up in the configured mapping location.
	Files fs.FS
}

// MappingFilter limits the result of FindMappings. Empty fields do not
// filter.
type MappingFilter struct {
	// DataSourceID limits mappings to one data source.
	DataSourceID string

	// AttrType limits mappings to those that include the attribute type.
	AttrType string

	// Vocabs limits mappings by vocabularies.
	Vocabs []string

	// FromCanonical tells that Vocabs are canonical. Canonical
	// vocabularies may be compound and may use vocab.Wildcard segments.
	FromCanonical bool
}

// VocabMatch is the result of resolving a canonical value.
type VocabMatch struct {
	// Vocabs are source vocabularies, or NOT_SUPPORTED alone if nothing
	// matched.
	Vocabs []string

	// Unmatched are canonical combinations without mappings.
	Unmatched []string

	// AttrType is the attribute type used for the lookup. For compound
	// mappings it joins all participating types.
	AttrType string
}

// UnmatchedMsg describes canonical combinations without mappings in a
// data source. It returns an empty string if all combinations matched.
func (m VocabMatch) UnmatchedMsg(sourceID string) string {
	if len(m.Unmatched) == 0 {
		return ""
	}
	return fmt.Sprintf(
		"Datasource %q did not have matches for attr_type %s and canonical vocab %s.",
		sourceID, m.AttrType, strings.Join(m.Unmatched, ", "),
	)
}

// MappingFileName returns the name of the mapping file of a data source.
func MappingFileName(ds model.DataSource) string {
	return lower(ds.ID) + "_mapping.csv"
}
