package query_test

import (
	"errors"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/errcode"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

func TestTimeseriesValidate(t *testing.T) {
	tests := []struct {
		msg  string
		q    query.TimeseriesQuery
		code gn.ErrorCode
	}{
		{
			"ok",
			query.TimeseriesQuery{
				MonitoringFeature: []string{"A-1"},
				ObservedProperty:  []string{"ACT"},
				StartDate:         start,
			},
			0,
		},
		{
			"no features",
			query.TimeseriesQuery{
				ObservedProperty: []string{"ACT"},
				StartDate:        start,
			},
			errcode.QueryMissingFieldError,
		},
		{
			"no properties",
			query.TimeseriesQuery{
				MonitoringFeature: []string{"A-1"},
				StartDate:         start,
			},
			errcode.QueryMissingFieldError,
		},
		{
			"no start",
			query.TimeseriesQuery{
				MonitoringFeature: []string{"A-1"},
				ObservedProperty:  []string{"ACT"},
			},
			errcode.QueryMissingFieldError,
		},
		{
			"end before start",
			query.TimeseriesQuery{
				MonitoringFeature: []string{"A-1"},
				ObservedProperty:  []string{"ACT"},
				StartDate:         start,
				EndDate:           start.AddDate(0, 0, -1),
			},
			errcode.QueryInvalidValueError,
		},
		{
			"bad statistic",
			query.TimeseriesQuery{
				MonitoringFeature: []string{"A-1"},
				ObservedProperty:  []string{"ACT"},
				StartDate:         start,
				Statistic:         []string{"MEDIAN"},
			},
			errcode.QueryInvalidValueError,
		},
		{
			"bad aggregation",
			query.TimeseriesQuery{
				MonitoringFeature:   []string{"A-1"},
				ObservedProperty:    []string{"ACT"},
				StartDate:           start,
				AggregationDuration: "WEEK",
			},
			errcode.QueryInvalidValueError,
		},
	}

	for _, v := range tests {
		err := v.q.Validate()
		if v.code == 0 {
			assert.Nil(t, err, v.msg)
			assert.Equal(t, "DAY", v.q.AggregationDuration, v.msg)
			continue
		}
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}
}

func TestTimeseriesGet(t *testing.T) {
	assert := assert.New(t)
	q := query.TimeseriesQuery{
		MonitoringFeature: []string{"A-1"},
		ObservedProperty:  []string{"ACT"},
		StartDate:         start,
	}
	assert.Equal([]string{"A-1"}, q.Get(query.FieldMonitoringFeature))
	assert.Equal("2019-01-01", q.Get(query.FieldStartDate))
	assert.Nil(q.Get(query.FieldEndDate))
	assert.Nil(q.Get(query.FieldStatistic))
	assert.Nil(q.Get("color"))
	assert.Equal([]string{"monitoring_feature"}, q.PrefixedFields())
	assert.Len(q.MappedFields(), 5)
}

func TestFeatureValidate(t *testing.T) {
	q := query.MonitoringFeatureQuery{FeatureType: "point"}
	assert.Nil(t, q.Validate())
	assert.Equal(t, "POINT", q.FeatureType)

	q = query.MonitoringFeatureQuery{FeatureType: "tree"}
	assert.NotNil(t, q.Validate())
}

func TestClone(t *testing.T) {
	q := &query.TimeseriesQuery{
		MonitoringFeature: []string{"A-1"},
		ObservedProperty:  []string{"ACT"},
		StartDate:         start,
	}
	c := q.Clone()
	c.MonitoringFeature[0] = "B-1"
	assert.Equal(t, "A-1", q.MonitoringFeature[0])

	mf := &query.MonitoringFeatureQuery{ParentFeature: []string{"A-1"}}
	mc := mf.Clone()
	mc.ParentFeature[0] = "B-1"
	assert.Equal(t, "A-1", mf.ParentFeature[0])
}

func TestTranslated(t *testing.T) {
	assert := assert.New(t)
	q := &query.TimeseriesQuery{
		MonitoringFeature: []string{"A-1"},
		ObservedProperty:  []string{"Ag"},
		SamplingMedium:    []string{"WATER"},
		StartDate:         start,
		Datasource:        []string{"Alpha", "Beta"},
	}
	tq := query.NewTranslated(q, "Alpha")

	tq.Set(query.FieldObservedProperty, []string{"Ag", "Ag_gas"})
	tq.Set(query.FieldSamplingMedium, nil)

	assert.Equal([]string{"Ag", "Ag_gas"}, tq.Strings(query.FieldObservedProperty))
	assert.Nil(tq.Get(query.FieldSamplingMedium))
	assert.Equal("2019-01-01", tq.String(query.FieldStartDate))
	assert.Equal([]string{"Alpha"}, tq.Get(query.FieldDatasource))
	assert.False(tq.IsValid())

	// canonical query is not modified
	assert.Equal([]string{"Ag"}, q.ObservedProperty)
	assert.Equal([]string{"WATER"}, q.SamplingMedium)

	// copies are independent
	tq2 := query.NewTranslated(q, "Beta")
	tq2.Strings(query.FieldMonitoringFeature)[0] = "B-1"
	assert.Equal("A-1", q.MonitoringFeature[0])
}

func TestFields(t *testing.T) {
	f := query.Fields{"statistic": "MEAN", "sampling_medium": []string{}}
	assert.Equal(t, "MEAN", f.Get("statistic"))
	assert.Nil(t, f.Get("sampling_medium"))
	assert.Nil(t, f.Get("observed_property"))
}
