// Package gnsynth synthesizes environmental observations from many data
// sources into one vocabulary and one object model.
package gnsynth

import (
	"context"

	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/synthesis"
)

var (
	// Version of gnsynth, set by build flags.
	Version = "v0.1.0"

	// Build timestamp, set by build flags.
	Build = "n/a"
)

// Synthesizer answers canonical queries with objects of all registered
// data sources.
type Synthesizer interface {
	// DataSources returns registered data sources in registration order.
	DataSources() []model.DataSource

	// ObservedProperties returns canonical variables with given IDs, or
	// all of them.
	ObservedProperties(ctx context.Context, ids ...string) ([]model.ObservedProperty, error)

	// AttributeMappings returns mappings that satisfy the filter.
	AttributeMappings(ctx context.Context, f catalog.MappingFilter) ([]model.AttributeMapping, error)

	// MonitoringFeatures lists monitoring features. Malformed queries
	// return an error.
	MonitoringFeatures(ctx context.Context, q *query.MonitoringFeatureQuery) (*synthesis.Iterator, error)

	// MonitoringFeature retrieves one monitoring feature by its ID.
	MonitoringFeature(ctx context.Context, q *query.MonitoringFeatureQuery) (*query.Response, error)

	// Timeseries lists measurement timeseries.
	Timeseries(ctx context.Context, q *query.TimeseriesQuery) (*synthesis.Iterator, error)

	// Close releases the catalog and the plugins.
	Close() error
}
