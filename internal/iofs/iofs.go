// Package iofs provides file system helpers of gnsynth: home
// directories, embedded configuration templates and locations of data
// files on a local disk or in Google Cloud Storage.
package iofs

import (
	"embed"
	"os"

	"github.com/gnames/gnsynth/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed datasources.yaml
var DataSourcesYAML string

// ReferenceFile is the name of the embedded observed property vocabulary.
const ReferenceFile = "observed_property_vocabulary.csv"

//go:embed data
var dataFS embed.FS

// EnsureDirs creates config, cache, log and mapping directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
		config.MappingDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded config.yaml if the config file
// does not exist.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)
	return ensureFile(configPath, ConfigYAML)
}

// EnsureDataSourcesFile writes the embedded datasources.yaml if the file
// does not exist.
func EnsureDataSourcesFile(homeDir string) error {
	path := config.DataSourcesFilePath(homeDir)
	return ensureFile(path, DataSourcesYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}
