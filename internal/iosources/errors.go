package iosources

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/errcode"
)

// SourcesConfigError creates an error for when datasources.yaml
// cannot be loaded.
func SourcesConfigError(path string, err error) error {
	msg := `Cannot load data sources configuration

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Permission denied

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Remove the file, it is recreated with examples on the next run`

	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)

	return &gn.Error{
		Code: errcode.SourcesConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: failed to load data sources config: %w", fn.Name(), err),
	}
}

// SourcesValidationError creates an error for entries of datasources.yaml
// that cannot be used.
func SourcesValidationError(path string, err error) error {
	msg := `Invalid data sources configuration in <em>%s</em>: %s`
	vars := []any{path, err.Error()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)

	return &gn.Error{
		Code: errcode.SourcesValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid data sources config: %w", fn.Name(), err),
	}
}
