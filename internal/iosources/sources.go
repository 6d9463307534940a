// Package iosources loads datasources.yaml.
package iosources

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/config"
	"github.com/gnames/gnsynth/pkg/sources"
	"gopkg.in/yaml.v3"
)

type iosources struct {
	cfg *config.Config
}

// New creates a loader of datasources.yaml from the home directory of
// the configuration.
func New(cfg *config.Config) sources.Sources {
	res := iosources{cfg: cfg}
	return &res
}

// Load reads, validates and filters data sources. Data sources are
// limited to cfg.DataSourceIDs when they are given.
func (s *iosources) Load() (*sources.SourcesConfig, error) {
	sourcesPath := config.DataSourcesFilePath(s.cfg.HomeDir)
	sourcesConfig, err := loadSourcesConfig(sourcesPath)
	if err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}

	if err = sourcesConfig.Validate(); err != nil {
		return nil, SourcesValidationError(sourcesPath, err)
	}
	for _, v := range sourcesConfig.Warnings {
		slog.Warn(v.Message, "datasource", v.DataSourceID, "field", v.Field)
	}

	ds, warns, err := sources.Filter(sourcesConfig.DataSources, s.cfg.DataSourceIDs)
	for _, v := range warns {
		gn.Warn(v)
	}
	if err != nil {
		return nil, SourcesValidationError(sourcesPath, err)
	}
	sourcesConfig.DataSources = ds

	return sourcesConfig, nil
}

// loadSourcesConfig reads datasources.yaml. Local locations have to be
// existing directories.
func loadSourcesConfig(path string) (*sources.SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources config file: %w", err)
	}

	var res sources.SourcesConfig
	if err = yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to parse sources config file: %w", err)
	}

	for _, v := range res.DataSources {
		if v.Location == "" || sources.IsRemote(v.Location) {
			continue
		}
		info, err := os.Stat(v.Location)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf(
				"location directory does not exist: %s", v.Location,
			)
		}
	}

	return &res, nil
}
