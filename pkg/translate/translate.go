// Package translate rewrites canonical queries into the vocabulary of a
// data source and turns source vocabularies back into canonical
// attributes.
//
// Translation of a query runs in stages. Mapped fields are ordered so
// that compound attribute types are resolved first, their values are
// translated through the catalog, identifiers of prefixed fields lose
// the prefix of the data source, and finally the translation is assessed
// and cleaned. The canonical query is never modified.
package translate

import (
	"context"
	"slices"
	"strings"

	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/vocab"
)

// Query translates a canonical query for the data source of acc.
// The result is cleaned only if it is valid.
func Query(
	ctx context.Context,
	acc *plugin.Access,
	q query.Query,
) (*query.Translated, error) {
	res := query.NewTranslated(q, acc.DataSource.ID)

	fields, err := OrderMappedFields(ctx, acc, q.MappedFields())
	if err != nil {
		return nil, err
	}

	err = translateMapped(ctx, acc, res, fields)
	if err != nil {
		return nil, err
	}

	translatePrefixed(acc, res, q.PrefixedFields())

	res.Valid = Validity(res)
	if res.IsValid() {
		Clean(res)
	}
	return res, nil
}

// OrderMappedFields puts fields of compound attribute types of the data
// source first, in the declared order of compound types, and keeps the
// order of the remaining fields.
func OrderMappedFields(
	ctx context.Context,
	acc *plugin.Access,
	fields []string,
) ([]string, error) {
	cts, err := acc.Catalog.CompoundAttrTypes(ctx, acc.DataSource.ID)
	if err != nil {
		return nil, err
	}

	res := make([]string, 0, len(fields))
	for _, ct := range cts {
		for _, attr := range vocab.Split(ct) {
			f := strings.ToLower(attr)
			if slices.Contains(fields, f) && !slices.Contains(res, f) {
				res = append(res, f)
			}
		}
	}
	for _, f := range fields {
		if !slices.Contains(res, f) {
			res = append(res, f)
		}
	}
	return res, nil
}

// translateMapped replaces canonical values of mapped fields with source
// vocabularies. The translation in progress is the context for compound
// lookups. Once a field is translated, its compound siblings are unset,
// because the source vocabulary already covers them.
func translateMapped(
	ctx context.Context,
	acc *plugin.Access,
	t *query.Translated,
	fields []string,
) error {
	id := acc.DataSource.ID
	for _, f := range fields {
		vals := t.Strings(f)
		if len(vals) == 0 {
			continue
		}
		attr, ok := vocab.ParseMappedAttribute(f)
		if !ok {
			continue
		}

		var res []string
		for _, v := range vals {
			m, err := acc.Catalog.DatasourceVocab(ctx, id, attr.String(), v, t)
			if err != nil {
				return err
			}
			res = append(res, m.Vocabs...)
			if msg := m.UnmatchedMsg(id); msg != "" {
				t.Warnings = append(t.Warnings, msg)
			}
		}
		// one canonical value may fan out to several source ones
		t.Set(f, res)

		siblings, err := acc.Catalog.CompoundAttributes(ctx, id, attr.String(), false)
		if err != nil {
			return err
		}
		for _, s := range siblings {
			t.Set(strings.ToLower(s), nil)
		}
	}
	return nil
}

// translatePrefixed strips the prefix of the data source from
// identifiers. Identifiers of other data sources are dropped from lists,
// a single identifier of another data source becomes NOT_SUPPORTED.
func translatePrefixed(acc *plugin.Access, t *query.Translated, fields []string) {
	prefix := acc.DataSource.IDPrefix + "-"
	for _, f := range fields {
		switch v := t.Get(f).(type) {
		case []string:
			res := make([]string, 0, len(v))
			for _, s := range v {
				if raw, ok := strings.CutPrefix(s, prefix); ok {
					res = append(res, raw)
				}
			}
			t.Set(f, res)
		case string:
			if raw, ok := strings.CutPrefix(v, prefix); ok {
				t.Set(f, raw)
			} else {
				t.Set(f, vocab.NotSupported)
			}
		}
	}
}
