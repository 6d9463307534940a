package iotesting

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"slices"
	"time"

	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/translate"
	"github.com/gnames/gnsynth/pkg/vocab"
)

//go:embed mappings
var mappingsFS embed.FS

// ErrPlugin is returned by handlers of the Error plugin.
var ErrPlugin = errors.New("plugin failure")

// MappingFS contains mapping files of fixture plugins.
func MappingFS() fs.FS {
	res, _ := fs.Sub(mappingsFS, "mappings")
	return res
}

// Alpha is a plugin with monitoring features and timeseries. Its
// observed properties are mapped together with sampling media.
func Alpha() plugin.Plugin {
	ds := model.DataSource{
		ID:       "Alpha",
		Name:     "Alpha",
		IDPrefix: "A",
		Location: "https://asource.foo/",
	}
	return plugin.New(ds, MappingFS(),
		plugin.NewHandler(model.MonitoringFeatureType, alphaFeatures, alphaFeature),
		plugin.NewHandler(model.TimeseriesType, alphaTimeseries, nil),
	)
}

// Complexmap is a plugin with compound mappings of observed property,
// sampling medium and statistic.
func Complexmap() plugin.Plugin {
	ds := model.DataSource{
		ID:       "Complexmap",
		Name:     "Complexmap",
		IDPrefix: "C",
		Location: "https://asource.foo/",
	}
	return plugin.New(ds, MappingFS(),
		plugin.NewHandler(model.TimeseriesType, complexTimeseries, nil),
	)
}

// Error is a plugin whose handlers fail. Listing of monitoring features
// fails at once, listing of timeseries fails after the first object.
func Error() plugin.Plugin {
	ds := model.DataSource{ID: "Error", Name: "Error", IDPrefix: "E"}
	return plugin.New(ds, MappingFS(),
		plugin.NewHandler(model.MonitoringFeatureType, errorList, errorGet),
		plugin.NewHandler(model.TimeseriesType, errorTimeseries, nil),
	)
}

// NoViews is a plugin without handlers.
func NoViews() plugin.Plugin {
	ds := model.DataSource{ID: "NoViews", Name: "NoViews", IDPrefix: "N"}
	return plugin.New(ds, MappingFS())
}

// Plugins returns all fixture plugins.
func Plugins() []plugin.Plugin {
	return []plugin.Plugin{Alpha(), Complexmap(), Error(), NoViews()}
}

// CatalogSources describes plugins for catalog initialization.
func CatalogSources(ps ...plugin.Plugin) []catalog.Source {
	res := make([]catalog.Source, len(ps))
	for i, v := range ps {
		res[i] = plugin.CatalogSource(v)
	}
	return res
}

type alphaSite struct {
	id, name, parent string
	ft               vocab.FeatureType
	props            []string
}

var alphaSites = []alphaSite{
	{id: "Region1", name: "AwesomeRegion", ft: vocab.FeatureRegion},
	{
		id: "1", name: "Point Location 1", parent: "Region1",
		ft: vocab.FeaturePoint, props: []string{"Acetate", "Silver"},
	},
	{
		id: "2", name: "Point Location 2", parent: "Region1",
		ft: vocab.FeaturePoint, props: []string{"Aluminum"},
	},
}

func (s alphaSite) feature(
	ctx context.Context,
	acc *plugin.Access,
) (*model.MonitoringFeature, error) {
	res := &model.MonitoringFeature{
		ID:          acc.DataSource.PrefixedID(s.id),
		OriginalID:  s.id,
		Name:        s.name,
		FeatureType: s.ft,
		Coordinates: &model.Coordinates{Latitude: 70.4657, Longitude: -20.4567},
		DataSource:  acc.DataSource,
	}
	if s.parent != "" {
		res.RelatedFeatures = []model.RelatedFeature{{
			ID:          acc.DataSource.PrefixedID(s.parent),
			FeatureType: vocab.FeatureRegion,
			Role:        model.RoleParent,
		}}
	}
	for _, v := range s.props {
		ma, err := translate.Attribute(ctx, acc, vocab.ObservedProperty, v)
		if err != nil {
			return nil, err
		}
		res.ObservedProperties = append(res.ObservedProperties, ma.CanonicalVocab())
	}
	return res, nil
}

func (s alphaSite) match(q *query.Translated) bool {
	if ids := q.Strings(query.FieldMonitoringFeature); len(ids) > 0 &&
		!slices.Contains(ids, s.id) {
		return false
	}
	if ids := q.Strings(query.FieldParentFeature); len(ids) > 0 &&
		!slices.Contains(ids, s.parent) {
		return false
	}
	if ft := q.String(query.FieldFeatureType); ft != "" && ft != string(s.ft) {
		return false
	}
	return true
}

func alphaFeatures(
	ctx context.Context,
	acc *plugin.Access,
	q *query.Translated,
) (plugin.Cursor, error) {
	var res []model.Object
	for _, v := range alphaSites {
		if !v.match(q) {
			continue
		}
		mf, err := v.feature(ctx, acc)
		if err != nil {
			return nil, err
		}
		res = append(res, mf)
	}
	return plugin.SliceCursor(res), nil
}

func alphaFeature(
	ctx context.Context,
	acc *plugin.Access,
	q *query.Translated,
) (model.Object, error) {
	id := q.String(query.FieldID)
	for _, v := range alphaSites {
		if v.id == id {
			return v.feature(ctx, acc)
		}
	}
	return nil, nil
}

func alphaTimeseries(
	ctx context.Context,
	acc *plugin.Access,
	q *query.Translated,
) (plugin.Cursor, error) {
	var warnings []string
	seq := func(yield func(model.Object, error) bool) {
		for _, mf := range q.Strings(query.FieldMonitoringFeature) {
			idx := slices.IndexFunc(alphaSites, func(s alphaSite) bool {
				return s.id == mf && s.ft == vocab.FeaturePoint
			})
			if idx < 0 {
				warnings = append(warnings,
					fmt.Sprintf("Alpha has no observations for feature %s", mf))
				continue
			}
			site := alphaSites[idx]
			for _, op := range q.Strings(query.FieldObservedProperty) {
				if !slices.Contains(site.props, op) {
					continue
				}
				ts, err := alphaSeries(ctx, acc, site, op)
				if !yield(ts, err) || err != nil {
					return
				}
			}
		}
	}
	return plugin.NewCursor(seq, func() []string { return warnings }), nil
}

func alphaSeries(
	ctx context.Context,
	acc *plugin.Access,
	site alphaSite,
	op string,
) (model.Object, error) {
	attrs, err := translate.Attributes(ctx, acc, map[vocab.MappedAttribute]string{
		vocab.ObservedProperty:    op,
		vocab.Statistic:           "mean",
		vocab.AggregationDuration: "day",
		vocab.ResultQuality:       "CHECKED",
	})
	if err != nil {
		return nil, err
	}
	feature, err := site.feature(ctx, acc)
	if err != nil {
		return nil, err
	}

	id := site.id + "." + op
	res := &model.MeasurementTimeseriesTVPObservation{
		ID:                    acc.DataSource.PrefixedID(id),
		OriginalID:            id,
		ObservedProperty:      attrs[vocab.ObservedProperty],
		SamplingMedium:        attrs[vocab.SamplingMedium],
		Statistic:             attrs[vocab.Statistic],
		AggregationDuration:   attrs[vocab.AggregationDuration],
		ResultQuality:         []model.MappedAttribute{attrs[vocab.ResultQuality]},
		FeatureOfInterest:     feature,
		FeatureOfInterestType: vocab.FeaturePoint,
		UnitOfMeasurement:     "nm",
		UTCOffset:             -9,
		DataSource:            acc.DataSource,
	}
	for i := range 9 {
		res.Result = append(res.Result, model.TimeValuePair{
			Timestamp: time.Date(2016, 2, i+1, 0, 0, 0, 0, time.UTC),
			Value:     float64(i+1) * 0.3454,
		})
	}
	return res, nil
}

func complexTimeseries(
	ctx context.Context,
	acc *plugin.Access,
	q *query.Translated,
) (plugin.Cursor, error) {
	var res []model.Object
	for _, mf := range q.Strings(query.FieldMonitoringFeature) {
		for _, op := range q.Strings(query.FieldObservedProperty) {
			attrs, err := translate.Attributes(ctx, acc, map[vocab.MappedAttribute]string{
				vocab.ObservedProperty:    op,
				vocab.AggregationDuration: "daily",
			})
			if err != nil {
				return nil, err
			}
			id := mf + "." + op
			res = append(res, &model.MeasurementTimeseriesTVPObservation{
				ID:                  acc.DataSource.PrefixedID(id),
				OriginalID:          id,
				ObservedProperty:    attrs[vocab.ObservedProperty],
				SamplingMedium:      attrs[vocab.SamplingMedium],
				Statistic:           attrs[vocab.Statistic],
				AggregationDuration: attrs[vocab.AggregationDuration],
				UnitOfMeasurement:   "mg/L",
				DataSource:          acc.DataSource,
			})
		}
	}
	return plugin.SliceCursor(res), nil
}

func errorList(
	_ context.Context,
	_ *plugin.Access,
	_ *query.Translated,
) (plugin.Cursor, error) {
	return nil, fmt.Errorf("list monitoring features: %w", ErrPlugin)
}

func errorGet(
	_ context.Context,
	_ *plugin.Access,
	_ *query.Translated,
) (model.Object, error) {
	return nil, fmt.Errorf("get monitoring feature: %w", ErrPlugin)
}

func errorTimeseries(
	_ context.Context,
	acc *plugin.Access,
	_ *query.Translated,
) (plugin.Cursor, error) {
	var seq iter.Seq2[model.Object, error] = func(yield func(model.Object, error) bool) {
		ts := &model.MeasurementTimeseriesTVPObservation{
			ID:         acc.DataSource.PrefixedID("1"),
			OriginalID: "1",
			DataSource: acc.DataSource,
		}
		if !yield(ts, nil) {
			return
		}
		yield(nil, fmt.Errorf("read timeseries: %w", ErrPlugin))
	}
	return plugin.NewCursor(seq, nil), nil
}
