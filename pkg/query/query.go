// Package query provides canonical queries, their per-source translations
// and the responses of synthesis calls.
//
// A query declares two classes of fields that need translation before the
// query reaches a data source. Mapped fields carry canonical vocabularies.
// Prefixed fields carry identifiers of the form "{prefix}-{id}".
package query

import (
	"github.com/gnames/gnsynth/pkg/model"
)

// Field names shared by queries.
const (
	FieldDatasource          = "datasource"
	FieldID                  = "id"
	FieldFeatureType         = "feature_type"
	FieldMonitoringFeature   = "monitoring_feature"
	FieldParentFeature       = "parent_feature"
	FieldObservedProperty    = "observed_property"
	FieldAggregationDuration = "aggregation_duration"
	FieldStatistic           = "statistic"
	FieldResultQuality       = "result_quality"
	FieldSamplingMedium      = "sampling_medium"
	FieldStartDate           = "start_date"
	FieldEndDate             = "end_date"
)

// DateFormat is the layout of date fields.
const DateFormat = "2006-01-02"

// FieldGetter provides values of query fields by name. A value is either
// a string, a []string, or nil when the field is not set.
type FieldGetter interface {
	Get(field string) any
}

// Query is a canonical request for synthesized objects.
type Query interface {
	FieldGetter

	// ModelType is the synthesis model the query asks for.
	ModelType() model.Type

	// Datasources limits the query to the given data source IDs.
	// Empty slice means all data sources.
	Datasources() []string

	// MappedFields are fields with canonical vocabularies.
	MappedFields() []string

	// PrefixedFields are fields with namespaced identifiers.
	PrefixedFields() []string

	// Validate returns an error if the query is malformed.
	Validate() error
}

// Fields is a Query-less FieldGetter, handy for vocabulary lookups that
// depend on a few field values only.
type Fields map[string]any

// Get implements FieldGetter.
func (f Fields) Get(field string) any {
	return normalize(f[field])
}

// normalize turns empty values into nil.
func normalize(v any) any {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil
		}
		return val
	case []string:
		if len(val) == 0 {
			return nil
		}
		return val
	default:
		return v
	}
}

func strValue(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func listValue(ss []string) any {
	if len(ss) == 0 {
		return nil
	}
	return ss
}
