package iocsvsource

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/errcode"
)

// DataFileError is returned when a data file of a CSV source cannot be
// read or does not have required columns.
func DataFileError(source, file string, err error) error {
	msg := "Cannot read <em>%s</em> of datasource <em>%s</em>"
	vars := []any{file, source}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DataFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read %s of %s: %w",
			fn.Name(), file, source, err),
	}
}
