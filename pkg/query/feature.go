package query

import (
	"slices"
	"strings"

	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/vocab"
)

// MonitoringFeatureQuery asks for monitoring features.
type MonitoringFeatureQuery struct {
	// Datasource limits the query to the given data source IDs.
	Datasource []string `json:"datasource,omitempty"`

	// ID of a single feature, for retrieval.
	ID string `json:"id,omitempty"`

	// FeatureType limits features to one type.
	FeatureType string `json:"featureType,omitempty"`

	// MonitoringFeature lists feature identifiers.
	MonitoringFeature []string `json:"monitoringFeature,omitempty"`

	// ParentFeature lists identifiers of parent features.
	ParentFeature []string `json:"parentFeature,omitempty"`
}

// ModelType implements Query.
func (q *MonitoringFeatureQuery) ModelType() model.Type {
	return model.MonitoringFeatureType
}

// Datasources implements Query.
func (q *MonitoringFeatureQuery) Datasources() []string {
	return q.Datasource
}

// MappedFields implements Query. Monitoring features have no mapped
// fields.
func (q *MonitoringFeatureQuery) MappedFields() []string {
	return nil
}

// PrefixedFields implements Query.
func (q *MonitoringFeatureQuery) PrefixedFields() []string {
	return []string{FieldID, FieldMonitoringFeature, FieldParentFeature}
}

// Get implements FieldGetter.
func (q *MonitoringFeatureQuery) Get(field string) any {
	switch field {
	case FieldDatasource:
		return listValue(q.Datasource)
	case FieldID:
		return strValue(q.ID)
	case FieldFeatureType:
		return strValue(q.FeatureType)
	case FieldMonitoringFeature:
		return listValue(q.MonitoringFeature)
	case FieldParentFeature:
		return listValue(q.ParentFeature)
	default:
		return nil
	}
}

// Validate implements Query. It also normalizes FeatureType to upper
// case.
func (q *MonitoringFeatureQuery) Validate() error {
	if q.FeatureType == "" {
		return nil
	}
	ft, ok := vocab.ParseFeatureType(q.FeatureType)
	if !ok {
		return InvalidValueError(FieldFeatureType, q.FeatureType)
	}
	q.FeatureType = string(ft)
	return nil
}

// Clone returns a deep copy of the query.
func (q *MonitoringFeatureQuery) Clone() *MonitoringFeatureQuery {
	res := *q
	res.Datasource = slices.Clone(q.Datasource)
	res.MonitoringFeature = slices.Clone(q.MonitoringFeature)
	res.ParentFeature = slices.Clone(q.ParentFeature)
	res.FeatureType = strings.ToUpper(q.FeatureType)
	return &res
}
