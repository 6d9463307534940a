package catalog_test

import (
	"testing"

	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestMatchCanonical(t *testing.T) {
	tests := []struct {
		msg, canonical, req string
		res                 bool
	}{
		{"exact", "ACT", "ACT", true},
		{"exact compound", "Al:WATER", "Al:WATER", true},
		{"segment", "Al:WATER", "Al", true},
		{"segment second", "Al:WATER", "WATER", true},
		{"no substring", "ACT:WATER", "AC", false},
		{"wildcard", "Ag:GAS", "Ag:.*", true},
		{"wildcard miss", "Ag:GAS", "Al:.*", false},
		{"wildcard middle", "Ag:GAS:MIN", "Ag:.*:MIN", true},
		{"segment count", "Ag:GAS:MIN", "Ag:.*", false},
		{"compound miss", "Al:WATER", "Al:GAS", false},
		{"simple miss", "ACT", "Al", false},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, catalog.MatchCanonical(v.canonical, v.req), v.msg)
	}
}

func TestHasAttrType(t *testing.T) {
	assert := assert.New(t)
	assert.True(catalog.HasAttrType("STATISTIC", "STATISTIC"))
	assert.True(catalog.HasAttrType("OBSERVED_PROPERTY:SAMPLING_MEDIUM", "SAMPLING_MEDIUM"))
	assert.False(catalog.HasAttrType("OBSERVED_PROPERTY:SAMPLING_MEDIUM", "STATISTIC"))
	assert.False(catalog.HasAttrType("OBSERVED_PROPERTY", "PROPERTY"))
}

func TestCheckHeader(t *testing.T) {
	assert := assert.New(t)
	assert.True(catalog.CheckHeader(
		[]string{"\ufeffcanonical_id", "description", "categories", " units"},
		catalog.ReferenceHeader,
	))
	assert.False(catalog.CheckHeader(
		[]string{"id", "description", "categories", "units"},
		catalog.ReferenceHeader,
	))
	assert.False(catalog.CheckHeader(
		[]string{"attr_type", "canonical_vocab"},
		catalog.MappingHeader,
	))
}

func TestMappingFileName(t *testing.T) {
	ds := model.DataSource{ID: "Alpha"}
	assert.Equal(t, "alpha_mapping.csv", catalog.MappingFileName(ds))
}
