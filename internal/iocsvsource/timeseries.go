package iocsvsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnsynth/internal/iofs"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/translate"
	"github.com/gnames/gnsynth/pkg/vocab"
)

var observationColumns = []string{
	"monitoring_feature", "observed_property", "timestamp", "value",
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	query.DateFormat,
}

type seriesKey struct {
	feature, property, statistic, duration string
}

// id is the raw identifier of a timeseries.
func (k seriesKey) id() string {
	parts := []string{k.feature, k.property}
	for _, v := range []string{k.statistic, k.duration} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ".")
}

type series struct {
	key       seriesKey
	unit      string
	qualities []string
	points    []model.TimeValuePair
}

// obsFilter selects observations that satisfy a translated query. Empty
// lists do not filter.
type obsFilter struct {
	features, properties, statistics, durations, qualities []string
	start, end                                             time.Time
}

func newObsFilter(q *query.Translated) obsFilter {
	res := obsFilter{
		features:   q.Strings(query.FieldMonitoringFeature),
		properties: q.Strings(query.FieldObservedProperty),
		statistics: q.Strings(query.FieldStatistic),
		durations:  q.Strings(query.FieldAggregationDuration),
		qualities:  q.Strings(query.FieldResultQuality),
	}
	if t, err := time.Parse(query.DateFormat, q.String(query.FieldStartDate)); err == nil {
		res.start = t
	}
	if t, err := time.Parse(query.DateFormat, q.String(query.FieldEndDate)); err == nil {
		res.end = t.AddDate(0, 0, 1)
	}
	return res
}

func (f obsFilter) match(r row) bool {
	checks := []struct {
		vals []string
		col  string
	}{
		{f.features, "monitoring_feature"},
		{f.properties, "observed_property"},
		{f.statistics, "statistic"},
		{f.durations, "aggregation_duration"},
		{f.qualities, "result_quality"},
	}
	for _, v := range checks {
		if len(v.vals) > 0 && !slices.Contains(v.vals, r.get(v.col)) {
			return false
		}
	}
	return true
}

func (f obsFilter) inRange(ts time.Time) bool {
	if !f.start.IsZero() && ts.Before(f.start) {
		return false
	}
	if !f.end.IsZero() && !ts.Before(f.end) {
		return false
	}
	return true
}

func parseTime(s string) (time.Time, error) {
	var err error
	for _, v := range timeLayouts {
		var res time.Time
		if res, err = time.Parse(v, s); err == nil {
			return res.UTC(), nil
		}
	}
	return time.Time{}, err
}

// readSeries groups matching observations into timeseries in the order
// of their first row. It returns the number of malformed rows.
func (s *Source) readSeries(ctx context.Context, f obsFilter) ([]*series, int, error) {
	t, err := openTable(ctx, s.loc, s.ds.ID, ObservationsFile, observationColumns)
	if err != nil {
		return nil, 0, err
	}
	defer t.close()

	var res []*series
	var malformed int
	idx := make(map[seriesKey]*series)
	for {
		if err = ctx.Err(); err != nil {
			return nil, 0, err
		}
		r, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		if !f.match(r) {
			continue
		}

		ts, err := parseTime(r.get("timestamp"))
		if err != nil {
			slog.Debug("Skip observation", "source", s.ds.ID, "line", r.line, "error", err)
			malformed++
			continue
		}
		if !f.inRange(ts) {
			continue
		}
		val, err := strconv.ParseFloat(r.get("value"), 64)
		if err != nil {
			slog.Debug("Skip observation", "source", s.ds.ID, "line", r.line, "error", err)
			malformed++
			continue
		}

		key := seriesKey{
			feature:   r.get("monitoring_feature"),
			property:  r.get("observed_property"),
			statistic: r.get("statistic"),
			duration:  r.get("aggregation_duration"),
		}
		sr, ok := idx[key]
		if !ok {
			sr = &series{key: key, unit: r.get("unit")}
			idx[key] = sr
			res = append(res, sr)
		}
		if rq := r.get("result_quality"); rq != "" && !slices.Contains(sr.qualities, rq) {
			sr.qualities = append(sr.qualities, rq)
		}
		sr.points = append(sr.points, model.TimeValuePair{Timestamp: ts, Value: val})
	}
	return res, malformed, nil
}

// readFeatureIndex returns features by their raw identifiers. A source
// without the features file gives an empty index.
func (s *Source) readFeatureIndex(ctx context.Context) (map[string]featureRow, error) {
	rows, _, err := s.readFeatures(ctx)
	if iofs.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	res := make(map[string]featureRow, len(rows))
	for _, v := range rows {
		res[v.id] = v
	}
	return res, nil
}

func (s *Source) listTimeseries(
	ctx context.Context,
	acc *plugin.Access,
	q *query.Translated,
) (plugin.Cursor, error) {
	f := newObsFilter(q)
	var warnings []string

	var seq iter.Seq2[model.Object, error] = func(yield func(model.Object, error) bool) {
		all, malformed, err := s.readSeries(ctx, f)
		if err != nil {
			yield(nil, err)
			return
		}
		if malformed > 0 {
			warnings = append(warnings, fmt.Sprintf(
				"Skipped %d malformed rows of %s in datasource %s.",
				malformed, ObservationsFile, s.ds.ID,
			))
		}
		features, err := s.readFeatureIndex(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		types := featureTypes(slices.Collect(maps.Values(features)))

		for _, sr := range all {
			ts, ws, err := s.timeseries(ctx, acc, sr, features, types)
			warnings = append(warnings, ws...)
			if err != nil {
				yield(nil, err)
				return
			}
			if ts == nil {
				continue
			}
			if !yield(ts, nil) {
				return
			}
		}
	}
	return plugin.NewCursor(seq, func() []string { return warnings }), nil
}

// timeseries converts grouped observations to a timeseries. It returns
// nil if the observed property has no mapping.
func (s *Source) timeseries(
	ctx context.Context,
	acc *plugin.Access,
	sr *series,
	features map[string]featureRow,
	types map[string]vocab.FeatureType,
) (*model.MeasurementTimeseriesTVPObservation, []string, error) {
	vals := map[vocab.MappedAttribute]string{vocab.ObservedProperty: sr.key.property}
	if sr.key.statistic != "" {
		vals[vocab.Statistic] = sr.key.statistic
	}
	if sr.key.duration != "" {
		vals[vocab.AggregationDuration] = sr.key.duration
	}
	attrs, err := translate.Attributes(ctx, acc, vals)
	if err != nil {
		return nil, nil, err
	}
	op := attrs[vocab.ObservedProperty]
	if !op.Mapping.IsSupported() {
		w := fmt.Sprintf("Variable %s has no mapping in datasource %s.",
			sr.key.property, s.ds.ID)
		return nil, []string{w}, nil
	}

	id := sr.key.id()
	res := &model.MeasurementTimeseriesTVPObservation{
		ID:                  acc.DataSource.PrefixedID(id),
		OriginalID:          id,
		ObservedProperty:    op,
		SamplingMedium:      attrs[vocab.SamplingMedium],
		Statistic:           attrs[vocab.Statistic],
		AggregationDuration: attrs[vocab.AggregationDuration],
		UnitOfMeasurement:   sr.unit,
		Result:              sr.points,
		DataSource:          acc.DataSource,
	}
	for _, v := range sr.qualities {
		ma, err := translate.Attribute(ctx, acc, vocab.ResultQuality, v)
		if err != nil {
			return nil, nil, err
		}
		res.ResultQuality = append(res.ResultQuality, ma)
	}

	if row, ok := features[sr.key.feature]; ok {
		mf, _, err := s.feature(ctx, acc, row, types)
		if err != nil {
			return nil, nil, err
		}
		res.FeatureOfInterest = mf
		res.FeatureOfInterestType = mf.FeatureType
	}
	return res, nil, nil
}
