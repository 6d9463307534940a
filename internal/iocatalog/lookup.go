package iocatalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/schema"
	"github.com/gnames/gnsynth/pkg/vocab"
)

const (
	variableStore  = "Variable Store"
	attributeStore = "Attribute Store"
)

// ObservedProperty implements catalog.Catalog.
func (c *catalogImpl) ObservedProperty(
	ctx context.Context,
	id string,
) (*model.ObservedProperty, error) {
	if err := c.checkReady(variableStore); err != nil {
		return nil, err
	}
	rows, err := c.st.variables(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	res := variableToModel(rows[0])
	return &res, nil
}

// ObservedProperties implements catalog.Catalog.
func (c *catalogImpl) ObservedProperties(
	ctx context.Context,
	ids ...string,
) ([]model.ObservedProperty, error) {
	if err := c.checkReady(variableStore); err != nil {
		return nil, err
	}
	rows, err := c.st.variables(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]model.ObservedProperty, len(rows))
	found := make(map[string]struct{}, len(rows))
	for i, v := range rows {
		res[i] = variableToModel(v)
		found[v.ID] = struct{}{}
	}
	for _, v := range ids {
		if _, ok := found[v]; !ok {
			slog.Warn("Catalog does not support variable", "variable", v)
		}
	}
	return res, nil
}

// FindMappings implements catalog.Catalog.
func (c *catalogImpl) FindMappings(
	ctx context.Context,
	f catalog.MappingFilter,
) ([]model.AttributeMapping, error) {
	if err := c.checkReady(attributeStore); err != nil {
		return nil, err
	}

	q := mappingQuery{dataSourceIDs: c.sourceIDs()}
	if f.DataSourceID != "" {
		if _, ok := c.dataSource(f.DataSourceID); !ok {
			err := DataSourceError(f.DataSourceID, "no datasource was found")
			slog.Warn("Cannot find mappings", "datasource", f.DataSourceID, "error", err)
			return nil, err
		}
		q.dataSourceIDs = []string{f.DataSourceID}
	}

	attrType := f.AttrType
	if attrType != "" {
		attr, ok := vocab.ParseMappedAttribute(attrType)
		if !ok {
			return nil, AttrTypeError(attrType)
		}
		attrType = attr.String()
	}

	if !f.FromCanonical {
		q.sourceVocabs = f.Vocabs
	}

	var rows []schema.AttributeMapping
	if len(q.dataSourceIDs) > 0 {
		var err error
		rows, err = c.st.mappings(ctx, q)
		if err != nil {
			return nil, err
		}
	}

	var res []model.AttributeMapping
	for _, v := range rows {
		if attrType != "" && !catalog.HasAttrType(v.AttrType, attrType) {
			continue
		}
		if f.FromCanonical && len(f.Vocabs) > 0 && !matchAny(v.CanonicalVocab, f.Vocabs) {
			continue
		}
		res = append(res, c.mappingToModel(v))
	}

	c.logMissing(f, attrType, res)
	return res, nil
}

func (c *catalogImpl) logMissing(
	f catalog.MappingFilter,
	attrType string,
	res []model.AttributeMapping,
) {
	if len(res) == 0 {
		slog.Info(
			"No attribute mappings found for specified parameters",
			"datasource", f.DataSourceID,
			"attr_type", attrType,
			"vocab", strings.Join(f.Vocabs, ", "),
		)
		return
	}

	var missing []string
	for _, v := range f.Vocabs {
		matched := slices.ContainsFunc(res, func(am model.AttributeMapping) bool {
			if f.FromCanonical {
				return catalog.MatchCanonical(am.CanonicalVocab, v)
			}
			return am.SourceVocab == v
		})
		if !matched {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		slog.Warn(
			"No attribute mappings found for some vocabularies",
			"datasource", f.DataSourceID,
			"attr_type", attrType,
			"vocab", strings.Join(missing, ", "),
		)
	}
}

// FindMapping implements catalog.Catalog.
func (c *catalogImpl) FindMapping(
	ctx context.Context,
	sourceID, attrType, sourceVocab string,
) (*model.AttributeMapping, error) {
	if err := c.checkReady(attributeStore); err != nil {
		return nil, err
	}
	if _, ok := c.dataSource(sourceID); !ok {
		return nil, nil
	}
	row, err := c.findRow(ctx, sourceID, attrType, sourceVocab)
	if err != nil || row == nil {
		return nil, err
	}
	res := c.mappingToModel(*row)
	return &res, nil
}

func (c *catalogImpl) findRow(
	ctx context.Context,
	sourceID, attrType, sourceVocab string,
) (*schema.AttributeMapping, error) {
	attrType = strings.ToUpper(strings.TrimSpace(attrType))
	q := mappingQuery{
		dataSourceIDs: []string{sourceID},
		sourceVocabs:  []string{sourceVocab},
	}
	rows, err := c.st.mappings(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, v := range rows {
		if catalog.HasAttrType(v.AttrType, attrType) {
			return &v, nil
		}
	}
	return nil, nil
}

// FindDatasourceMapping implements catalog.Catalog.
func (c *catalogImpl) FindDatasourceMapping(
	ctx context.Context,
	sourceID, attrType, sourceVocab string,
) (model.AttributeMapping, error) {
	res := model.AttributeMapping{
		AttrType:       strings.ToUpper(strings.TrimSpace(attrType)),
		CanonicalVocab: vocab.NotSupported,
		SourceVocab:    sourceVocab,
	}
	if err := c.checkReady(attributeStore); err != nil {
		return res, err
	}

	ds, ok := c.dataSource(sourceID)
	if !ok {
		res.SourceDesc = fmt.Sprintf("No datasource was found for id %q.", sourceID)
		return res, nil
	}
	res.DataSource = ds

	row, err := c.findRow(ctx, sourceID, attrType, sourceVocab)
	if err != nil {
		return res, err
	}
	if row == nil {
		res.SourceDesc = fmt.Sprintf(
			"No mapping was found for attr: %q and for datasource vocab: %q in datasource: %q.",
			res.AttrType, sourceVocab, sourceID,
		)
		return res, nil
	}
	return c.mappingToModel(*row), nil
}

// CompoundAttrTypes implements catalog.Catalog.
func (c *catalogImpl) CompoundAttrTypes(
	_ context.Context,
	sourceID string,
) ([]string, error) {
	if err := c.checkReady(attributeStore); err != nil {
		return nil, err
	}
	return slices.Clone(c.compound[sourceID]), nil
}

// CompoundAttributes implements catalog.Catalog. The first compound
// attribute type of the source that includes attrType decides the
// result.
func (c *catalogImpl) CompoundAttributes(
	_ context.Context,
	sourceID, attrType string,
	includeSelf bool,
) ([]string, error) {
	if err := c.checkReady(attributeStore); err != nil {
		return nil, err
	}
	attrType = strings.ToUpper(strings.TrimSpace(attrType))

	for _, ct := range c.compound[sourceID] {
		if !catalog.HasAttrType(ct, attrType) {
			continue
		}
		var res []string
		for _, v := range vocab.Split(ct) {
			if v == attrType && !includeSelf {
				continue
			}
			res = append(res, v)
		}
		return res, nil
	}
	return nil, nil
}

// DatasourceVocab implements catalog.Catalog.
//
// For a compound attribute type every sibling attribute takes its
// values from the context, or vocab.Wildcard if the context has none.
// All combinations are looked up and the union of matches is returned.
func (c *catalogImpl) DatasourceVocab(
	ctx context.Context,
	sourceID, attrType, canonical string,
	fields query.FieldGetter,
) (catalog.VocabMatch, error) {
	attrType = strings.ToUpper(strings.TrimSpace(attrType))
	res := catalog.VocabMatch{AttrType: attrType}

	attrs, err := c.CompoundAttributes(ctx, sourceID, attrType, true)
	if err != nil {
		return res, err
	}

	combos := []string{canonical}
	if len(attrs) > 0 {
		res.AttrType = vocab.Join(attrs...)
		choices := make([][]string, len(attrs))
		for i, v := range attrs {
			if v == attrType {
				choices[i] = []string{canonical}
				continue
			}
			choices[i] = contextValues(fields, v)
		}
		combos = product(choices)
	}

	seen := make(map[string]struct{})
	for _, combo := range combos {
		f := catalog.MappingFilter{
			DataSourceID:  sourceID,
			AttrType:      attrType,
			Vocabs:        []string{combo},
			FromCanonical: true,
		}
		ms, err := c.FindMappings(ctx, f)
		if err != nil {
			return res, err
		}
		if len(ms) == 0 {
			res.Unmatched = append(res.Unmatched, combo)
			continue
		}
		for _, v := range ms {
			if _, ok := seen[v.SourceVocab]; ok {
				continue
			}
			seen[v.SourceVocab] = struct{}{}
			res.Vocabs = append(res.Vocabs, v.SourceVocab)
		}
	}

	if len(res.Vocabs) == 0 {
		res.Vocabs = []string{vocab.NotSupported}
	}
	if msg := res.UnmatchedMsg(sourceID); msg != "" {
		slog.Info(msg)
	}
	return res, nil
}

// contextValues returns values of an attribute type given by the query
// fields. Comma-separated strings are split.
func contextValues(fields query.FieldGetter, attrType string) []string {
	if fields == nil {
		return []string{vocab.Wildcard}
	}
	var res []string
	switch v := fields.Get(strings.ToLower(attrType)).(type) {
	case string:
		res = splitList(v)
	case []string:
		for _, s := range v {
			res = append(res, splitList(s)...)
		}
	}
	if len(res) == 0 {
		return []string{vocab.Wildcard}
	}
	return res
}

// product creates compound vocabularies from all combinations of
// choices, keeping the order of choices.
func product(choices [][]string) []string {
	res := [][]string{nil}
	for _, vals := range choices {
		var next [][]string
		for _, prefix := range res {
			for _, v := range vals {
				next = append(next, append(slices.Clone(prefix), v))
			}
		}
		res = next
	}

	combos := make([]string, len(res))
	for i, v := range res {
		combos[i] = vocab.Join(v...)
	}
	return combos
}

func matchAny(canonical string, requested []string) bool {
	return slices.ContainsFunc(requested, func(r string) bool {
		return catalog.MatchCanonical(canonical, r)
	})
}
