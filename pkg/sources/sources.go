// Package sources provides configuration and validation of CSV data
// sources.
//
// This package defines the schema of datasources.yaml, where users list
// data sources that keep monitoring features and observations as CSV
// files in a local directory or in a Google Cloud Storage prefix. Every
// entry becomes a plugin of the synthesizer.
package sources

import (
	"github.com/gnames/gnsynth/pkg/model"
)

// Sources loads the data sources configuration.
type Sources interface {
	Load() (*SourcesConfig, error)
}

// SourcesConfig represents the complete datasources.yaml file.
type SourcesConfig struct {
	// DataSources is the list of CSV data sources.
	DataSources []DataSourceConfig `yaml:"data_sources"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	DataSourceID string // ID of the data source
	Field        string // Field name that has the issue
	Message      string // Description of the issue
	Suggestion   string // How to fix it
}

// DataSourceConfig represents configuration of a single data source.
type DataSourceConfig struct {
	// ID is a unique short name of the data source (required).
	ID string `yaml:"id"`

	// Name is a human-friendly name. Defaults to ID.
	Name string `yaml:"name,omitempty"`

	// IDPrefix namespaces identifiers of the data source (required).
	// It cannot contain "-", which separates the prefix from raw ids.
	IDPrefix string `yaml:"id_prefix"`

	// Location is a directory or gs://bucket/prefix with the CSV files
	// (required).
	// Examples:
	//   - /home/user/data/snow
	//   - gs://my-bucket/observations/snow
	Location string `yaml:"location"`

	// MappingDir contains the mapping file of the data source. If empty,
	// the catalog mapping directory is used.
	MappingDir string `yaml:"mapping_dir,omitempty"`
}

// DataSource converts the configuration to model.DataSource.
func (d DataSourceConfig) DataSource() model.DataSource {
	name := d.Name
	if name == "" {
		name = d.ID
	}
	return model.DataSource{
		ID:       d.ID,
		Name:     name,
		IDPrefix: d.IDPrefix,
		Location: d.Location,
	}
}
