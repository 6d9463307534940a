package translate_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gnsynth/internal/iocatalog"
	"github.com/gnames/gnsynth/internal/iotesting"
	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/translate"
	"github.com/gnames/gnsynth/pkg/vocab"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2016, 2, 1, 0, 0, 0, 0, time.UTC)

func newCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	ctx := context.Background()
	cat, err := iocatalog.New(ctx, iotesting.GetTestConfig())
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })

	err = cat.Initialize(ctx, iotesting.CatalogSources(iotesting.Plugins()...))
	require.NoError(t, err)
	return cat
}

func access(cat catalog.Catalog, p plugin.Plugin) *plugin.Access {
	return plugin.NewAccess(p, cat)
}

func TestOrderMappedFields(t *testing.T) {
	ctx := context.Background()
	cat := newCatalog(t)
	fields := (&query.TimeseriesQuery{}).MappedFields()

	tests := []struct {
		msg string
		p   plugin.Plugin
		res []string
	}{
		{
			"alpha", iotesting.Alpha(),
			[]string{
				"observed_property", "sampling_medium",
				"aggregation_duration", "statistic", "result_quality",
			},
		},
		{
			"complexmap", iotesting.Complexmap(),
			[]string{
				"observed_property", "sampling_medium", "statistic",
				"aggregation_duration", "result_quality",
			},
		},
		{"no compound", iotesting.NoViews(), fields},
	}

	for _, v := range tests {
		res, err := translate.OrderMappedFields(ctx, access(cat, v.p), fields)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}

	res, err := translate.OrderMappedFields(
		ctx, access(cat, iotesting.Alpha()), []string{"statistic", "sampling_medium"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"sampling_medium", "statistic"}, res)
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	cat := newCatalog(t)

	tests := []struct {
		msg      string
		p        plugin.Plugin
		q        *query.TimeseriesQuery
		valid    bool
		fields   map[string]any
		warnings int
	}{
		{
			msg: "alpha",
			p:   iotesting.Alpha(),
			q: &query.TimeseriesQuery{
				MonitoringFeature:   []string{"A-1", "C-2", "A-2"},
				ObservedProperty:    []string{"ACT", "Ag"},
				SamplingMedium:      []string{"WATER"},
				Statistic:           []string{"MEAN"},
				AggregationDuration: "DAY",
				StartDate:           start,
			},
			valid: true,
			fields: map[string]any{
				"monitoring_feature":   []string{"1", "2"},
				"observed_property":    []string{"Acetate", "Silver"},
				"sampling_medium":      nil,
				"statistic":            []string{"mean"},
				"aggregation_duration": []string{"day"},
				"result_quality":       nil,
			},
		},
		{
			msg: "alpha partial support",
			p:   iotesting.Alpha(),
			q: &query.TimeseriesQuery{
				MonitoringFeature:   []string{"A-1"},
				ObservedProperty:    []string{"Al", "Ag", "Ag"},
				SamplingMedium:      []string{"GAS"},
				AggregationDuration: "DAY",
				StartDate:           start,
			},
			valid: true,
			fields: map[string]any{
				"monitoring_feature": []string{"1"},
				"observed_property":  []string{"Silver Gas"},
				"sampling_medium":    nil,
			},
			warnings: 1,
		},
		{
			msg: "alpha unsupported property",
			p:   iotesting.Alpha(),
			q: &query.TimeseriesQuery{
				MonitoringFeature:   []string{"A-1"},
				ObservedProperty:    []string{"Al"},
				SamplingMedium:      []string{"GAS"},
				AggregationDuration: "DAY",
				StartDate:           start,
			},
			valid: false,
			fields: map[string]any{
				"observed_property": []string{vocab.NotSupported},
			},
			warnings: 1,
		},
		{
			msg: "alpha unsupported duration",
			p:   iotesting.Alpha(),
			q: &query.TimeseriesQuery{
				MonitoringFeature:   []string{"A-1"},
				ObservedProperty:    []string{"ACT"},
				AggregationDuration: "MONTH",
				StartDate:           start,
			},
			valid: false,
			fields: map[string]any{
				"aggregation_duration": []string{vocab.NotSupported},
			},
			warnings: 1,
		},
		{
			msg: "alpha features of other sources",
			p:   iotesting.Alpha(),
			q: &query.TimeseriesQuery{
				MonitoringFeature:   []string{"C-1", "N-1"},
				ObservedProperty:    []string{"ACT"},
				AggregationDuration: "DAY",
				StartDate:           start,
			},
			valid: false,
			fields: map[string]any{
				"monitoring_feature": []string{},
			},
		},
		{
			msg: "complexmap",
			p:   iotesting.Complexmap(),
			q: &query.TimeseriesQuery{
				MonitoringFeature:   []string{"C-1", "A-1"},
				ObservedProperty:    []string{"Al"},
				Statistic:           []string{"MAX"},
				AggregationDuration: "DAY",
				StartDate:           start,
			},
			valid: true,
			fields: map[string]any{
				"monitoring_feature":   []string{"1"},
				"observed_property":    []string{"Max Al"},
				"statistic":            nil,
				"sampling_medium":      nil,
				"aggregation_duration": []string{"daily"},
			},
		},
		{
			msg: "complexmap all media and statistics",
			p:   iotesting.Complexmap(),
			q: &query.TimeseriesQuery{
				MonitoringFeature:   []string{"C-1"},
				ObservedProperty:    []string{"Al"},
				AggregationDuration: "DAY",
				StartDate:           start,
			},
			valid: true,
			fields: map[string]any{
				"observed_property": []string{"Mean Al", "Max Al", "Mean Aluminum"},
			},
		},
		{
			msg: "noviews",
			p:   iotesting.NoViews(),
			q: &query.TimeseriesQuery{
				MonitoringFeature:   []string{"N-1"},
				ObservedProperty:    []string{"ACT"},
				AggregationDuration: "DAY",
				StartDate:           start,
			},
			valid: true,
			fields: map[string]any{
				"monitoring_feature":   []string{"1"},
				"observed_property":    []string{"Acetate"},
				"aggregation_duration": []string{"day"},
			},
		},
	}

	for _, v := range tests {
		canonical := v.q.Clone()
		res, err := translate.Query(ctx, access(cat, v.p), v.q)
		require.NoError(t, err, v.msg)
		require.NotNil(t, res.Valid, v.msg)
		assert.Equal(t, v.valid, res.IsValid(), v.msg)
		assert.Len(t, res.Warnings, v.warnings, v.msg)
		assert.Equal(t, v.p.DataSource().ID, res.DataSource, v.msg)
		for f, val := range v.fields {
			if diff := cmp.Diff(val, res.Get(f)); diff != "" {
				t.Errorf("%s: field %s mismatch (-want +got):\n%s", v.msg, f, diff)
			}
		}
		if diff := cmp.Diff(canonical, v.q); diff != "" {
			t.Errorf("%s: canonical query changed (-want +got):\n%s", v.msg, diff)
		}
	}
}

func TestQueryFeatures(t *testing.T) {
	ctx := context.Background()
	cat := newCatalog(t)
	acc := access(cat, iotesting.Alpha())

	q := &query.MonitoringFeatureQuery{
		ID:            "A-Region1",
		ParentFeature: []string{"A-Region1", "C-Region1"},
	}
	res, err := translate.Query(ctx, acc, q)
	require.NoError(t, err)
	assert.True(t, res.IsValid())
	assert.Equal(t, "Region1", res.String(query.FieldID))
	assert.Equal(t, []string{"Region1"}, res.Strings(query.FieldParentFeature))
	assert.Nil(t, res.Get(query.FieldMonitoringFeature))

	q = &query.MonitoringFeatureQuery{ID: "C-1"}
	res, err = translate.Query(ctx, acc, q)
	require.NoError(t, err)
	assert.False(t, res.IsValid())
	assert.Equal(t, vocab.NotSupported, res.Get(query.FieldID))
}

func TestValidity(t *testing.T) {
	q := &query.TimeseriesQuery{
		MonitoringFeature: []string{"A-1"},
		ObservedProperty:  []string{"ACT"},
		StartDate:         start,
	}

	tq := query.NewTranslated(q, "Alpha")
	assert.True(t, *translate.Validity(tq))

	tq.Set(query.FieldStatistic, 42)
	assert.Nil(t, translate.Validity(tq))
	assert.False(t, tq.IsValid())

	tq = query.NewTranslated(q, "Alpha")
	tq.Set(query.FieldObservedProperty, []string{vocab.NotSupported, vocab.NotSupported})
	assert.False(t, *translate.Validity(tq))

	tq.Set(query.FieldObservedProperty, []string{vocab.NotSupported, "Acetate"})
	assert.True(t, *translate.Validity(tq))

	// the first invalid field decides, later fields are not assessed
	tq = query.NewTranslated(q, "Alpha")
	tq.Set(query.FieldObservedProperty, []string{vocab.NotSupported})
	tq.Set(query.FieldStatistic, 42)
	res := translate.Validity(tq)
	require.NotNil(t, res)
	assert.False(t, *res)
}

func TestClean(t *testing.T) {
	q := &query.TimeseriesQuery{
		MonitoringFeature:   []string{"A-1"},
		ObservedProperty:    []string{"ACT"},
		AggregationDuration: "DAY",
		StartDate:           start,
	}
	tq := query.NewTranslated(q, "Alpha")
	tq.Set(query.FieldObservedProperty,
		[]string{"Silver", vocab.NotSupported, "Acetate", "Silver"})
	tq.Set(query.FieldAggregationDuration, vocab.NotSupported)

	translate.Clean(tq)
	assert.Equal(t, []string{"Silver", "Acetate"}, tq.Get(query.FieldObservedProperty))
	assert.Nil(t, tq.Get(query.FieldAggregationDuration))
	assert.Equal(t, []string{"A-1"}, tq.Get(query.FieldMonitoringFeature))

	translate.Clean(tq)
	assert.Equal(t, []string{"Silver", "Acetate"}, tq.Get(query.FieldObservedProperty))
	assert.Nil(t, tq.Get(query.FieldAggregationDuration))
}

func TestAttribute(t *testing.T) {
	ctx := context.Background()
	cat := newCatalog(t)
	acc := access(cat, iotesting.Alpha())

	ma, err := translate.Attribute(ctx, acc, vocab.ObservedProperty, "Silver Gas")
	require.NoError(t, err)
	assert.Equal(t, "Ag", ma.CanonicalVocab())
	assert.Equal(t, "Silver Gas", ma.SourceVocab())
	assert.Equal(t, "Alpha", ma.Mapping.DataSource.ID)

	ma, err = translate.Attribute(ctx, acc, vocab.Statistic, "median")
	require.NoError(t, err)
	assert.False(t, ma.Mapping.IsSupported())
	assert.Equal(t, vocab.NotSupported, ma.CanonicalVocab())
}

func TestAttributes(t *testing.T) {
	ctx := context.Background()
	cat := newCatalog(t)

	acc := access(cat, iotesting.Alpha())
	res, err := translate.Attributes(ctx, acc, map[vocab.MappedAttribute]string{
		vocab.ObservedProperty: "Silver Gas",
		vocab.Statistic:        "max",
	})
	require.NoError(t, err)
	assert.Len(t, res, 3)
	assert.Equal(t, "Ag", res[vocab.ObservedProperty].CanonicalVocab())
	assert.Equal(t, "GAS", res[vocab.SamplingMedium].CanonicalVocab())
	assert.Equal(t, "MAX", res[vocab.Statistic].CanonicalVocab())

	acc = access(cat, iotesting.Complexmap())
	res, err = translate.Attributes(ctx, acc, map[vocab.MappedAttribute]string{
		vocab.ObservedProperty:    "Min Acetate",
		vocab.AggregationDuration: "instant",
	})
	require.NoError(t, err)
	assert.Len(t, res, 4)
	assert.Equal(t, "ACT", res[vocab.ObservedProperty].CanonicalVocab())
	assert.Equal(t, "WATER", res[vocab.SamplingMedium].CanonicalVocab())
	assert.Equal(t, "MIN", res[vocab.Statistic].CanonicalVocab())
	assert.Equal(t, "NONE", res[vocab.AggregationDuration].CanonicalVocab())

	res, err = translate.Attributes(ctx, acc, map[vocab.MappedAttribute]string{
		vocab.ObservedProperty: "Unknown",
	})
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.False(t, res[vocab.ObservedProperty].Mapping.IsSupported())
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	cat := newCatalog(t)

	tests := []struct {
		msg string
		p   plugin.Plugin
	}{
		{"alpha", iotesting.Alpha()},
		{"complexmap", iotesting.Complexmap()},
		{"error", iotesting.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			acc := access(cat, tt.p)
			id := tt.p.DataSource().ID
			mappings, err := cat.FindMappings(ctx, catalog.MappingFilter{DataSourceID: id})
			require.NoError(t, err)
			require.NotEmpty(t, mappings)

			for _, m := range mappings {
				types := vocab.Split(m.AttrType)
				canonical := vocab.Split(m.CanonicalVocab)
				require.Len(t, canonical, len(types), m.SourceVocab)

				// canonical values of the whole compound mapping give the context
				fields := make(query.Fields, len(types))
				for i, v := range types {
					fields[strings.ToLower(v)] = canonical[i]
				}

				for i, v := range types {
					attr, ok := vocab.ParseMappedAttribute(v)
					require.True(t, ok, v)

					ma, err := translate.Attribute(ctx, acc, attr, m.SourceVocab)
					require.NoError(t, err)
					require.True(t, ma.Mapping.IsSupported(), m.SourceVocab)
					assert.Equal(t, canonical[i], ma.CanonicalVocab(), m.SourceVocab)

					res, err := cat.DatasourceVocab(ctx, id, v, ma.CanonicalVocab(), fields)
					require.NoError(t, err)
					assert.NotContains(t, res.Vocabs, vocab.NotSupported, m.SourceVocab)
					assert.Contains(t, res.Vocabs, m.SourceVocab,
						"%s %s back to source", m.AttrType, m.CanonicalVocab)
				}
			}
		})
	}
}
