package iometrics_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/gnames/gnsynth/internal/iometrics"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdk.ManualReader) map[string]metricdata.Sum[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	res := make(map[string]metricdata.Sum[int64])
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not a sum", m.Name)
			res[m.Name] = sum
		}
	}
	return res
}

func value(sum metricdata.Sum[int64], attrs ...attribute.KeyValue) int64 {
	set := attribute.NewSet(attrs...)
	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&set) {
			return dp.Value
		}
	}
	return 0
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	reader := sdk.NewManualReader()
	m, err := iometrics.New(reader)
	require.NoError(t, err)

	m.AddObject(ctx, "Alpha", model.TimeseriesType)
	m.AddObject(ctx, "Alpha", model.TimeseriesType)
	m.AddObject(ctx, "Complexmap", model.TimeseriesType)
	m.AddMessage(ctx, model.TimeseriesType, query.Message{
		Msg:   "Plugin view does not exist",
		Level: vocab.LevelWarn,
		Where: []string{"NoViews", string(model.TimeseriesType)},
	})
	m.AddMessage(ctx, model.MonitoringFeatureType, query.Message{
		Msg:   "DataSource not found for retrieve request",
		Level: vocab.LevelError,
	})

	sums := collect(t, reader)
	require.Contains(t, sums, iometrics.ObjectsCounter)
	require.Contains(t, sums, iometrics.MessagesCounter)

	objects := sums[iometrics.ObjectsCounter]
	assert.Equal(t, int64(2), value(objects,
		attribute.String("datasource", "Alpha"),
		attribute.String("model", string(model.TimeseriesType)),
	))
	assert.Equal(t, int64(1), value(objects,
		attribute.String("datasource", "Complexmap"),
		attribute.String("model", string(model.TimeseriesType)),
	))

	messages := sums[iometrics.MessagesCounter]
	assert.Equal(t, int64(1), value(messages,
		attribute.String("datasource", "core"),
		attribute.String("model", string(model.MonitoringFeatureType)),
		attribute.String("level", "ERROR"),
	))
	assert.NoError(t, m.Shutdown(ctx))
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	m, err := iometrics.NewConsole(&buf)
	require.NoError(t, err)

	m.AddObject(context.Background(), "Alpha", model.MonitoringFeatureType)
	require.NoError(t, m.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), iometrics.ObjectsCounter)
}
