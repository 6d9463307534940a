package query

import (
	"slices"
	"time"

	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/vocab"
)

// TimeseriesQuery asks for measurement timeseries of time-value pairs.
// MonitoringFeature, ObservedProperty and StartDate are required.
type TimeseriesQuery struct {
	Datasource          []string  `json:"datasource,omitempty"`
	MonitoringFeature   []string  `json:"monitoringFeature"`
	ObservedProperty    []string  `json:"observedProperty"`
	StartDate           time.Time `json:"startDate"`
	EndDate             time.Time `json:"endDate,omitzero"`
	AggregationDuration string    `json:"aggregationDuration,omitempty"`
	Statistic           []string  `json:"statistic,omitempty"`
	ResultQuality       []string  `json:"resultQuality,omitempty"`
	SamplingMedium      []string  `json:"samplingMedium,omitempty"`
}

// ModelType implements Query.
func (q *TimeseriesQuery) ModelType() model.Type {
	return model.TimeseriesType
}

// Datasources implements Query.
func (q *TimeseriesQuery) Datasources() []string {
	return q.Datasource
}

// MappedFields implements Query.
func (q *TimeseriesQuery) MappedFields() []string {
	return []string{
		FieldObservedProperty,
		FieldAggregationDuration,
		FieldStatistic,
		FieldResultQuality,
		FieldSamplingMedium,
	}
}

// PrefixedFields implements Query.
func (q *TimeseriesQuery) PrefixedFields() []string {
	return []string{FieldMonitoringFeature}
}

// Get implements FieldGetter. Dates are returned in DateFormat.
func (q *TimeseriesQuery) Get(field string) any {
	switch field {
	case FieldDatasource:
		return listValue(q.Datasource)
	case FieldMonitoringFeature:
		return listValue(q.MonitoringFeature)
	case FieldObservedProperty:
		return listValue(q.ObservedProperty)
	case FieldStartDate:
		return dateValue(q.StartDate)
	case FieldEndDate:
		return dateValue(q.EndDate)
	case FieldAggregationDuration:
		return strValue(q.AggregationDuration)
	case FieldStatistic:
		return listValue(q.Statistic)
	case FieldResultQuality:
		return listValue(q.ResultQuality)
	case FieldSamplingMedium:
		return listValue(q.SamplingMedium)
	default:
		return nil
	}
}

// Validate implements Query. Empty AggregationDuration is set to DAY.
func (q *TimeseriesQuery) Validate() error {
	if len(q.MonitoringFeature) == 0 {
		return MissingFieldError(FieldMonitoringFeature)
	}
	if len(q.ObservedProperty) == 0 {
		return MissingFieldError(FieldObservedProperty)
	}
	if q.StartDate.IsZero() {
		return MissingFieldError(FieldStartDate)
	}
	if !q.EndDate.IsZero() && q.EndDate.Before(q.StartDate) {
		return InvalidValueError(FieldEndDate, q.EndDate.Format(DateFormat))
	}

	if q.AggregationDuration == "" {
		q.AggregationDuration = vocab.DurationDay
	}
	if !vocab.IsMember(vocab.AggregationDuration, q.AggregationDuration) {
		return InvalidValueError(FieldAggregationDuration, q.AggregationDuration)
	}

	enums := []struct {
		field string
		attr  vocab.MappedAttribute
		vals  []string
	}{
		{FieldStatistic, vocab.Statistic, q.Statistic},
		{FieldResultQuality, vocab.ResultQuality, q.ResultQuality},
		{FieldSamplingMedium, vocab.SamplingMedium, q.SamplingMedium},
	}
	for _, v := range enums {
		for _, val := range v.vals {
			if !vocab.IsMember(v.attr, val) {
				return InvalidValueError(v.field, val)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the query.
func (q *TimeseriesQuery) Clone() *TimeseriesQuery {
	res := *q
	res.Datasource = slices.Clone(q.Datasource)
	res.MonitoringFeature = slices.Clone(q.MonitoringFeature)
	res.ObservedProperty = slices.Clone(q.ObservedProperty)
	res.Statistic = slices.Clone(q.Statistic)
	res.ResultQuality = slices.Clone(q.ResultQuality)
	res.SamplingMedium = slices.Clone(q.SamplingMedium)
	return &res
}

func dateValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(DateFormat)
}
