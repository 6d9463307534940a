package sources

import (
	"fmt"
	"slices"
	"strings"
)

// IsRemote checks if a location is a Google Cloud Storage path.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "gs://")
}

// Filter returns data sources with given IDs in the order of the
// configuration. Empty ids return all sources. Returns warnings about
// IDs that are not configured and an error if nothing matched.
func Filter(
	sources []DataSourceConfig,
	ids []string,
) ([]DataSourceConfig, []string, error) {
	if len(ids) == 0 {
		return sources, nil, nil
	}

	var filtered []DataSourceConfig
	for _, src := range sources {
		if slices.Contains(ids, src.ID) {
			filtered = append(filtered, src)
		}
	}

	var warnings []string
	for _, id := range ids {
		found := slices.ContainsFunc(sources, func(src DataSourceConfig) bool {
			return src.ID == id
		})
		if !found {
			warnings = append(warnings,
				fmt.Sprintf("source ID %s not found in configuration", id))
		}
	}

	if len(filtered) == 0 {
		return nil, warnings, fmt.Errorf(
			"no sources matched filter '%s'", strings.Join(ids, ","),
		)
	}

	return filtered, warnings, nil
}
