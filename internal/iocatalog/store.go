package iocatalog

import (
	"context"

	"github.com/gnames/gnsynth/pkg/schema"
)

// store keeps catalog tables.
type store interface {
	// reset removes rows of the reference vocabulary and of the given
	// data sources, so a persistent catalog can be rebuilt.
	reset(ctx context.Context, sourceIDs []string) error

	// addDataSources inserts or replaces data sources.
	addDataSources(ctx context.Context, rows []schema.DataSource) error

	// addVariables inserts variables and returns IDs of rejected
	// duplicates. The first inserted row wins.
	addVariables(ctx context.Context, rows []schema.ObservedProperty) ([]string, error)

	// addMappings inserts mappings and returns rejected duplicates of
	// (data source, attribute type, source vocabulary).
	addMappings(
		ctx context.Context,
		rows []schema.AttributeMapping,
	) ([]schema.AttributeMapping, error)

	// variables returns variables in load order. Empty ids mean all.
	variables(ctx context.Context, ids []string) ([]schema.ObservedProperty, error)

	// mappings returns mappings in load order.
	mappings(ctx context.Context, q mappingQuery) ([]schema.AttributeMapping, error)

	// counts returns numbers of variables and mappings.
	counts(ctx context.Context) (int, int, error)

	close() error
}

// mappingQuery narrows mappings by columns that can be compared in SQL.
// Attribute type membership and canonical wildcards are matched in Go.
type mappingQuery struct {
	dataSourceIDs []string
	sourceVocabs  []string
}
