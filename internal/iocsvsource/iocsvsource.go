// Package iocsvsource provides a data-source plugin that reads monitoring
// features and observations from a directory of CSV files. The directory
// is local or a Google Cloud Storage prefix.
//
// The directory contains two files:
//
//	monitoring_features.csv
//	  id,name,description,feature_type,latitude,longitude,parent_id,observed_properties
//	observations.csv
//	  monitoring_feature,observed_property,statistic,aggregation_duration,result_quality,timestamp,value,unit
//
// Observed properties of a feature are separated by ";". All
// vocabularies are in the vocabulary of the data source and are mapped
// to canonical ones by the mapping file of the source.
package iocsvsource

import (
	"io/fs"
	"os"

	"github.com/gnames/gnsynth/internal/iofs"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/gnames/gnsynth/pkg/sources"
)

const (
	// FeaturesFile contains monitoring features of a source.
	FeaturesFile = "monitoring_features.csv"

	// ObservationsFile contains measurements of a source, one per row.
	ObservationsFile = "observations.csv"
)

// Source is a plugin backed by CSV files.
type Source struct {
	ds       model.DataSource
	loc      iofs.Location
	mappings fs.FS
	handlers []plugin.Handler
}

// New creates a plugin of a data source from its configuration. If
// MappingDir is set, the mapping file is taken from it, otherwise from
// the catalog mapping location.
func New(cfg sources.DataSourceConfig) *Source {
	res := &Source{
		ds:  cfg.DataSource(),
		loc: iofs.NewLocation(cfg.Location),
	}
	if cfg.MappingDir != "" {
		res.mappings = os.DirFS(cfg.MappingDir)
	}
	res.handlers = []plugin.Handler{
		plugin.NewHandler(model.MonitoringFeatureType, res.listFeatures, res.getFeature),
		plugin.NewHandler(model.TimeseriesType, res.listTimeseries, nil),
	}
	return res
}

// Plugins creates plugins for all configured data sources.
func Plugins(cfgs []sources.DataSourceConfig) []plugin.Plugin {
	res := make([]plugin.Plugin, len(cfgs))
	for i, v := range cfgs {
		res[i] = New(v)
	}
	return res
}

// DataSource implements plugin.Plugin.
func (s *Source) DataSource() model.DataSource {
	return s.ds
}

// Handlers implements plugin.Plugin.
func (s *Source) Handlers() []plugin.Handler {
	return s.handlers
}

// MappingFS implements plugin.MappingProvider.
func (s *Source) MappingFS() fs.FS {
	return s.mappings
}

// Close releases the storage client of a remote location.
func (s *Source) Close() error {
	return s.loc.Close()
}
