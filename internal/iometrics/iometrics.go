// Package iometrics counts synthesized objects and messages with
// OpenTelemetry instruments.
package iometrics

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/synthesis"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdk "go.opentelemetry.io/otel/sdk/metric"
)

const (
	meterName = "github.com/gnames/gnsynth/internal/iometrics"

	// ObjectsCounter counts objects given to callers.
	ObjectsCounter = "gnsynth.objects"

	// MessagesCounter counts messages of synthesis responses.
	MessagesCounter = "gnsynth.messages"

	dataSourceAttr = "datasource"
	modelAttr      = "model"
	levelAttr      = "level"

	// coreSource marks messages that do not belong to a data source.
	coreSource = "core"

	shutdownTimeout = 10 * time.Second
)

// Metrics records synthesis events. It implements synthesis.Recorder.
type Metrics struct {
	provider *sdk.MeterProvider
	objects  metric.Int64Counter
	messages metric.Int64Counter
}

var _ synthesis.Recorder = (*Metrics)(nil)

// New creates Metrics that are collected by the reader.
func New(reader sdk.Reader) (*Metrics, error) {
	mp := sdk.NewMeterProvider(sdk.WithReader(reader))
	meter := mp.Meter(meterName)

	objects, err := meter.Int64Counter(
		ObjectsCounter,
		metric.WithDescription("Number of synthesized objects"),
	)
	if err != nil {
		return nil, err
	}

	messages, err := meter.Int64Counter(
		MessagesCounter,
		metric.WithDescription("Number of synthesis messages"),
	)
	if err != nil {
		return nil, err
	}

	res := Metrics{
		provider: mp,
		objects:  objects,
		messages: messages,
	}
	return &res, nil
}

// NewConsole creates Metrics that are printed to w as JSON when Metrics
// shut down.
func NewConsole(w io.Writer) (*Metrics, error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	exp, err := stdoutmetric.New(
		stdoutmetric.WithEncoder(enc),
		stdoutmetric.WithoutTimestamps(),
	)
	if err != nil {
		return nil, err
	}
	return New(sdk.NewPeriodicReader(exp))
}

// AddObject implements synthesis.Recorder.
func (m *Metrics) AddObject(ctx context.Context, sourceID string, mt model.Type) {
	m.objects.Add(ctx, 1, metric.WithAttributes(
		attribute.String(dataSourceAttr, sourceID),
		attribute.String(modelAttr, string(mt)),
	))
}

// AddMessage implements synthesis.Recorder.
func (m *Metrics) AddMessage(ctx context.Context, mt model.Type, msg query.Message) {
	source := coreSource
	if len(msg.Where) > 0 {
		source = msg.Where[0]
	}
	m.messages.Add(ctx, 1, metric.WithAttributes(
		attribute.String(dataSourceAttr, source),
		attribute.String(modelAttr, string(mt)),
		attribute.String(levelAttr, string(msg.Level)),
	))
}

// Shutdown flushes collected metrics to their exporter.
func (m *Metrics) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	err := m.provider.Shutdown(ctx)
	if err != nil {
		slog.Error("Failed to shutdown MeterProvider", "error", err)
	}
	return err
}
