package query

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/errcode"
)

func MissingFieldError(field string) error {
	msg := "Query field <em>%s</em> is required"
	vars := []any{field}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.QueryMissingFieldError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: missing required field %s",
			fn.Name(), field),
	}
}

func InvalidValueError(field, val string) error {
	msg := "Query field <em>%s</em> does not support value <em>%s</em>"
	vars := []any{field, val}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.QueryInvalidValueError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid value %q for field %s",
			fn.Name(), val, field),
	}
}
