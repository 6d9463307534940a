package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnsynth"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnsynth by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gnsynth by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnsynth/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// MappingDir returns the default directory of mapping files.
// Returns ~/.config/gnsynth/mappings by default.
func MappingDir(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "mappings")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnsynth/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DataSourcesFilePath returns the full path to the datasources.yaml file.
// Returns ~/.config/gnsynth/datasources.yaml by default.
func DataSourcesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "datasources.yaml")
}
