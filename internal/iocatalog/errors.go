package iocatalog

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/errcode"
)

func NotInitializedError(store string) error {
	msg := "%s has not been initialized."
	vars := []any{store}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogNotInitializedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s is not initialized",
			fn.Name(), strings.ToLower(store)),
	}
}

func InitializedError() error {
	msg := "Catalog is already initialized"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogInitializedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: second initialization", fn.Name()),
	}
}

func ReferenceFileError(path string, err error) error {
	msg := "Cannot load observed property vocabulary <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogReferenceFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot load %s: %w",
			fn.Name(), path, err),
	}
}

// HeaderError is returned when a CSV file does not start with the
// expected header. Empty sourceID means the reference vocabulary.
func HeaderError(sourceID, file string, got []string) error {
	msg := "Plugin <em>%s</em>: %s is not in correct format. Cannot create catalog."
	vars := []any{sourceID, file}
	if sourceID == "" {
		msg = "<em>%s</em> is not in correct format. Cannot create catalog."
		vars = []any{file}
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogHeaderError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unexpected header of %s: %s",
			fn.Name(), file, strings.Join(got, ",")),
	}
}

func MappingFileError(sourceID, file string, err error) error {
	msg := "Plugin <em>%s</em> does not have variable mapping file %s"
	vars := []any{sourceID, file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogMappingFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read mapping file %s: %w",
			fn.Name(), file, err),
	}
}

func DataSourceError(sourceID, reason string) error {
	msg := "Data source <em>%s</em> cannot be used: %s"
	vars := []any{sourceID, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogDataSourceError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: data source %q: %w",
			fn.Name(), sourceID, errors.New(reason)),
	}
}

func AttrTypeError(attrType string) error {
	msg := "Attribute type <em>%s</em> is invalid"
	vars := []any{attrType}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogAttrTypeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid attribute type %q", fn.Name(), attrType),
	}
}

func StoreError(op string, err error) error {
	msg := "Catalog storage failed to %s"
	vars := []any{op}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogStoreError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot %s: %w", fn.Name(), op, err),
	}
}
