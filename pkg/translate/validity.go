package translate

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/vocab"
)

// Validity assesses a translated query. It returns false as soon as a
// field lost all its values in translation, and nil if a field has a
// value of unexpected type.
func Validity(t *query.Translated) *bool {
	valid := true
	fields := slices.Concat(t.Query.MappedFields(), t.Query.PrefixedFields())
	for _, f := range fields {
		ok, known := fieldValidity(t, f)
		if !known {
			slog.Warn(fmt.Sprintf(
				"Translated query for datasource %s cannot be assessed. "+
					"Translated value for %s is not expected type.",
				t.DataSource, f,
			))
			return nil
		}
		if !ok {
			slog.Info(fmt.Sprintf(
				"Translated query for datasource %s is invalid. "+
					"No vocabulary found for attribute %s with values: %s.",
				t.DataSource, f, canonicalValues(t.Query.Get(f)),
			))
			valid = false
			return &valid
		}
	}
	return &valid
}

func fieldValidity(t *query.Translated, field string) (bool, bool) {
	switch v := t.Get(field).(type) {
	case nil:
		return true, true
	case string:
		return v != vocab.NotSupported, true
	case []string:
		if len(v) == 0 {
			// identifiers of other data sources only
			return t.Query.Get(field) == nil, true
		}
		for _, s := range v {
			if s != vocab.NotSupported {
				return true, true
			}
		}
		return false, true
	default:
		return false, false
	}
}

func canonicalValues(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	default:
		return ""
	}
}

// Clean removes NOT_SUPPORTED values and duplicates from translated
// fields. A single NOT_SUPPORTED value is unset. Clean is idempotent.
func Clean(t *query.Translated) {
	fields := slices.Concat(t.Query.MappedFields(), t.Query.PrefixedFields())
	for _, f := range fields {
		switch v := t.Get(f).(type) {
		case string:
			if v == vocab.NotSupported {
				t.Set(f, nil)
			}
		case []string:
			res := make([]string, 0, len(v))
			for _, s := range v {
				if s != vocab.NotSupported && !slices.Contains(res, s) {
					res = append(res, s)
				}
			}
			t.Set(f, res)
		}
	}
}
