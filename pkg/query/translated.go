package query

import (
	"slices"
)

// Translated is a query rewritten for one data source. It keeps its own
// values of mapped and prefixed fields; all other fields are read from
// the canonical query, which is never modified.
type Translated struct {
	// Query is the canonical query the translation derives from.
	Query Query

	// DataSource is the ID of the data source the query is for.
	DataSource string

	// Valid is nil when validity could not be assessed.
	Valid *bool

	// Warnings collect translation problems that did not invalidate
	// the query.
	Warnings []string

	fields map[string]any
}

// NewTranslated creates a translation of the query for a data source.
// The values of mapped and prefixed fields are copied.
func NewTranslated(q Query, dataSourceID string) *Translated {
	res := &Translated{
		Query:      q,
		DataSource: dataSourceID,
		fields:     make(map[string]any),
	}
	fields := slices.Concat(q.MappedFields(), q.PrefixedFields())
	for _, f := range fields {
		res.fields[f] = copyValue(q.Get(f))
	}
	return res
}

// Get implements FieldGetter. The datasource field of a translation
// always holds its own data source.
func (t *Translated) Get(field string) any {
	if field == FieldDatasource {
		return []string{t.DataSource}
	}
	if v, ok := t.fields[field]; ok {
		return v
	}
	return t.Query.Get(field)
}

// Set replaces the value of a field in the translation.
func (t *Translated) Set(field string, val any) {
	t.fields[field] = val
}

// Strings returns the value of a field as a list. A string value becomes
// a list of one element.
func (t *Translated) Strings(field string) []string {
	switch v := t.Get(field).(type) {
	case string:
		return []string{v}
	case []string:
		return v
	default:
		return nil
	}
}

// String returns a string value of a field or an empty string.
func (t *Translated) String(field string) string {
	if v, ok := t.Get(field).(string); ok {
		return v
	}
	return ""
}

// IsValid is true only if the translation was assessed as valid.
func (t *Translated) IsValid() bool {
	return t.Valid != nil && *t.Valid
}

func copyValue(v any) any {
	if ss, ok := v.([]string); ok {
		return slices.Clone(ss)
	}
	return v
}
