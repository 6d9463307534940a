package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/errcode"
)

// CreateLogFileError is returned when the log file of gnsynth cannot be
// opened for writing. The message names the path, so users can fix
// permissions or change log.destination in config.yaml.
func CreateLogFileError(path string, err error) error {
	msg := "Cannot open gnsynth log <em>%s</em>, check log.destination in config.yaml"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open log %s: %w",
			fn.Name(), path, err),
	}
}
