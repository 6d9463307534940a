// Package iosynth implements gnsynth.Synthesizer. It registers plugins,
// builds the catalog from their mapping files and serves synthesis
// models through it.
package iosynth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/gnames/gnsynth/internal/iocatalog"
	"github.com/gnames/gnsynth/internal/iometrics"
	gnsynth "github.com/gnames/gnsynth/pkg"
	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/gnames/gnsynth/pkg/config"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/synthesis"
)

type synth struct {
	cfg     *config.Config
	plugins []plugin.Plugin
	reg     *plugin.Registry
	cat     catalog.Catalog
	metrics *iometrics.Metrics

	features   *synthesis.Access
	timeseries *synthesis.Access
}

// New creates a Synthesizer of given plugins. Plugins are registered in
// the given order, which is also the order of synthesized objects. If
// cfg.WithMetrics is set, counters are printed to STDERR on Close.
func New(
	ctx context.Context,
	cfg *config.Config,
	plugins ...plugin.Plugin,
) (gnsynth.Synthesizer, error) {
	if len(plugins) == 0 {
		return nil, plugin.NoneError()
	}

	res := &synth{cfg: cfg, plugins: plugins, reg: plugin.NewRegistry()}
	for _, p := range plugins {
		if err := res.reg.Register(p); err != nil {
			return nil, err
		}
	}

	var err error
	res.cat, err = iocatalog.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	srcs := make([]catalog.Source, len(plugins))
	for i, p := range plugins {
		srcs[i] = plugin.CatalogSource(p)
	}
	if err = res.cat.Initialize(ctx, srcs); err != nil {
		res.cat.Close()
		return nil, err
	}

	var opts []synthesis.Option
	if cfg.WithMetrics {
		res.metrics, err = iometrics.NewConsole(os.Stderr)
		if err != nil {
			res.cat.Close()
			return nil, err
		}
		opts = append(opts, synthesis.OptRecorder(res.metrics))
	}

	res.features = synthesis.NewAccess(model.MonitoringFeatureType, res.reg, res.cat, opts...)
	res.timeseries = synthesis.NewAccess(model.TimeseriesType, res.reg, res.cat, opts...)

	slog.Info("Synthesizer is ready", "datasources", res.reg.Len())
	return res, nil
}

// DataSources implements gnsynth.Synthesizer.
func (s *synth) DataSources() []model.DataSource {
	ps := s.reg.Plugins()
	res := make([]model.DataSource, len(ps))
	for i, p := range ps {
		res[i] = p.DataSource()
	}
	return res
}

// ObservedProperties implements gnsynth.Synthesizer.
func (s *synth) ObservedProperties(
	ctx context.Context,
	ids ...string,
) ([]model.ObservedProperty, error) {
	return s.cat.ObservedProperties(ctx, ids...)
}

// AttributeMappings implements gnsynth.Synthesizer.
func (s *synth) AttributeMappings(
	ctx context.Context,
	f catalog.MappingFilter,
) ([]model.AttributeMapping, error) {
	return s.cat.FindMappings(ctx, f)
}

// MonitoringFeatures implements gnsynth.Synthesizer.
func (s *synth) MonitoringFeatures(
	ctx context.Context,
	q *query.MonitoringFeatureQuery,
) (*synthesis.Iterator, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.features.List(ctx, q), nil
}

// MonitoringFeature implements gnsynth.Synthesizer.
func (s *synth) MonitoringFeature(
	ctx context.Context,
	q *query.MonitoringFeatureQuery,
) (*query.Response, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.features.Retrieve(ctx, q), nil
}

// Timeseries implements gnsynth.Synthesizer.
func (s *synth) Timeseries(
	ctx context.Context,
	q *query.TimeseriesQuery,
) (*synthesis.Iterator, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.timeseries.List(ctx, q), nil
}

// Close implements gnsynth.Synthesizer.
func (s *synth) Close() error {
	var errs []error
	if s.metrics != nil {
		errs = append(errs, s.metrics.Shutdown(context.Background()))
	}
	for _, p := range s.plugins {
		if c, ok := p.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	errs = append(errs, s.cat.Close())
	return errors.Join(errs...)
}
