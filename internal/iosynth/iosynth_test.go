package iosynth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/internal/iosynth"
	"github.com/gnames/gnsynth/internal/iotesting"
	gnsynth "github.com/gnames/gnsynth/pkg"
	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/gnames/gnsynth/pkg/errcode"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSynth(t *testing.T) gnsynth.Synthesizer {
	t.Helper()
	s, err := iosynth.New(
		context.Background(),
		iotesting.GetTestConfig(),
		iotesting.Plugins()...,
	)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr), "expected gn.Error, got %v", err)
	return gnErr.Code
}

func TestNewErrors(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	_, err := iosynth.New(ctx, cfg)
	require.Error(t, err)
	assert.Equal(t, errcode.PluginNoneError, errCode(t, err))

	_, err = iosynth.New(ctx, cfg, iotesting.Alpha(), iotesting.Alpha())
	require.Error(t, err)
	assert.Equal(t, errcode.PluginDuplicateError, errCode(t, err))
}

func TestDataSources(t *testing.T) {
	s := newSynth(t)
	var ids []string
	for _, v := range s.DataSources() {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"Alpha", "Complexmap", "Error", "NoViews"}, ids)
}

func TestCatalogLookups(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	s := newSynth(t)

	vars, err := s.ObservedProperties(ctx, "ACT")
	require.NoError(t, err)
	require.Len(t, vars, 1)
	assert.Equal("ACT", vars[0].ID)

	ms, err := s.AttributeMappings(ctx, catalog.MappingFilter{DataSourceID: "Alpha"})
	require.NoError(t, err)
	assert.NotEmpty(ms)
	for _, v := range ms {
		assert.Equal("Alpha", v.DataSource.ID)
	}
}

func TestMonitoringFeatures(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	s := newSynth(t)

	it, err := s.MonitoringFeatures(ctx, &query.MonitoringFeatureQuery{
		Datasource: []string{"Alpha"},
	})
	require.NoError(t, err)
	var ids []string
	for obj := range it.All(ctx) {
		ids = append(ids, obj.ObjectID())
	}
	assert.Equal([]string{"A-Region1", "A-1", "A-2"}, ids)
	assert.Empty(it.Messages())

	_, err = s.MonitoringFeatures(ctx, &query.MonitoringFeatureQuery{FeatureType: "tree"})
	require.Error(t, err)
	assert.Equal(errcode.QueryInvalidValueError, errCode(t, err))
}

func TestMonitoringFeature(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	s := newSynth(t)

	res, err := s.MonitoringFeature(ctx, &query.MonitoringFeatureQuery{ID: "A-1"})
	require.NoError(t, err)
	require.NotNil(t, res.Data)
	assert.Equal("A-1", res.Data.ObjectID())
}

func TestTimeseries(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	s := newSynth(t)

	_, err := s.Timeseries(ctx, &query.TimeseriesQuery{
		MonitoringFeature: []string{"A-1"},
	})
	require.Error(t, err)
	assert.Equal(errcode.QueryMissingFieldError, errCode(t, err))

	it, err := s.Timeseries(ctx, &query.TimeseriesQuery{
		Datasource:        []string{"Alpha"},
		MonitoringFeature: []string{"A-1"},
		ObservedProperty:  []string{"ACT"},
		StartDate:         time.Date(2016, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	var ids []string
	for obj := range it.All(ctx) {
		ids = append(ids, obj.ObjectID())
	}
	assert.Equal([]string{"A-1.Acetate"}, ids)
}
