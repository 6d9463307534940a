package translate

import (
	"context"

	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/gnames/gnsynth/pkg/vocab"
)

// Attribute translates a source vocabulary to a canonical attribute. If
// the vocabulary has no mapping, the attribute is NOT_SUPPORTED.
func Attribute(
	ctx context.Context,
	acc *plugin.Access,
	attrType vocab.MappedAttribute,
	sourceVocab string,
) (model.MappedAttribute, error) {
	m, err := acc.Catalog.FindDatasourceMapping(
		ctx, acc.DataSource.ID, attrType.String(), sourceVocab,
	)
	if err != nil {
		return model.MappedAttribute{}, err
	}
	return model.MappedAttribute{AttrType: attrType, Mapping: m}, nil
}

// Attributes translates source vocabularies of several attribute types.
// A compound mapping also sets its sibling attribute types, unless they
// are given in values.
func Attributes(
	ctx context.Context,
	acc *plugin.Access,
	values map[vocab.MappedAttribute]string,
) (map[vocab.MappedAttribute]model.MappedAttribute, error) {
	res := make(map[vocab.MappedAttribute]model.MappedAttribute)
	for _, attr := range vocab.MappedAttributes() {
		v, ok := values[attr]
		if !ok {
			continue
		}
		if _, done := res[attr]; done {
			continue
		}

		ma, err := Attribute(ctx, acc, attr, v)
		if err != nil {
			return nil, err
		}
		res[attr] = ma

		if !ma.Mapping.IsSupported() || !vocab.IsCompound(ma.Mapping.AttrType) {
			continue
		}
		for _, s := range vocab.Split(ma.Mapping.AttrType) {
			sibling := vocab.MappedAttribute(s)
			if _, given := values[sibling]; given {
				continue
			}
			res[sibling] = model.MappedAttribute{AttrType: sibling, Mapping: ma.Mapping}
		}
	}
	return res, nil
}
