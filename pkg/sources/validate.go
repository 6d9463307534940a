package sources

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for errors. Duplicate IDs and
// prefixes are fatal.
func (c *SourcesConfig) Validate() error {
	ids := make(map[string]struct{})
	prefixes := make(map[string]struct{})

	for i := range c.DataSources {
		d := &c.DataSources[i]
		warnings, err := d.Validate(i + 1)
		if err != nil {
			return fmt.Errorf("data source %d: %w", i+1, err)
		}
		c.Warnings = append(c.Warnings, warnings...)

		if _, ok := ids[d.ID]; ok {
			return fmt.Errorf("data source %d: duplicate id '%s'", i+1, d.ID)
		}
		ids[d.ID] = struct{}{}

		if _, ok := prefixes[d.IDPrefix]; ok {
			return fmt.Errorf(
				"data source %d: duplicate id_prefix '%s'", i+1, d.IDPrefix,
			)
		}
		prefixes[d.IDPrefix] = struct{}{}
	}

	return nil
}

// Validate checks a single data source configuration for data structure
// validity. File system validation (directory existence) is deferred to
// runtime (I/O layer). Returns a slice of warnings (non-fatal issues) and
// an error (fatal issues).
func (d *DataSourceConfig) Validate(index int) ([]ValidationWarning, error) {
	var warnings []ValidationWarning

	d.ID = strings.TrimSpace(d.ID)
	d.IDPrefix = strings.TrimSpace(d.IDPrefix)
	d.Location = strings.TrimSpace(d.Location)
	d.MappingDir = strings.TrimSpace(d.MappingDir)

	if d.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	if d.IDPrefix == "" {
		return nil, fmt.Errorf("id_prefix is required")
	}

	if strings.Contains(d.IDPrefix, "-") {
		return nil, fmt.Errorf(
			"invalid id_prefix '%s': it cannot contain '-'", d.IDPrefix,
		)
	}

	if d.Location == "" {
		return nil, fmt.Errorf("location directory or gs:// path is required")
	}

	if IsRemote(d.MappingDir) {
		return nil, fmt.Errorf(
			"invalid mapping_dir '%s': it has to be a local directory",
			d.MappingDir,
		)
	}

	if d.Name == "" {
		warnings = append(warnings, ValidationWarning{
			DataSourceID: d.ID,
			Field:        "name",
			Message:      fmt.Sprintf("data source %d has no name", index),
			Suggestion:   fmt.Sprintf("Set 'name' to a readable title, '%s' is used now", d.ID),
		})
	}

	return warnings, nil
}
