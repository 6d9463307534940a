package plugin

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/errcode"
)

func MetadataError(plugin, field string) error {
	msg := "Plugin <em>%s</em> does not provide required field %s"
	vars := []any{plugin, field}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PluginMetadataError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: plugin %q misses %s",
			fn.Name(), plugin, field),
	}
}

func DuplicateError(kind, val string) error {
	msg := "Plugin %s <em>%s</em> is already registered"
	vars := []any{kind, val}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PluginDuplicateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: duplicate %s %q", fn.Name(), kind, val),
	}
}

func NoneError() error {
	msg := "There are no plugins to register"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PluginNoneError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: empty plugin list", fn.Name()),
	}
}

// PanicError reports a panic raised while a cursor produced objects.
func PanicError(val any) error {
	msg := "Plugin failed with panic: %v"
	vars := []any{val}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PluginPanicError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: panic: %v", fn.Name(), val),
	}
}
