// Package model provides the synthesized object model of gnsynth.
// Objects produced by data-source plugins are expressed in the canonical
// vocabulary and carry identifiers namespaced by the data source prefix.
package model

import (
	"strings"

	"github.com/gnames/gnsynth/pkg/vocab"
)

// Type names a synthesis model. Plugins register handlers per Type.
type Type string

const (
	// MonitoringFeatureType is a feature where observations are made.
	MonitoringFeatureType Type = "MonitoringFeature"

	// TimeseriesType is a timeseries of time-value pairs.
	TimeseriesType Type = "MeasurementTimeseriesTVPObservation"
)

// Object is a synthesized object produced by a data source.
type Object interface {
	// ModelType returns the synthesis model of the object.
	ModelType() Type

	// ObjectID returns the namespaced identifier of the object.
	ObjectID() string
}

// DataSource describes an upstream source of observations.
type DataSource struct {
	// ID is a unique short name of the data source.
	ID string `json:"id" yaml:"id"`

	// Name is a human-friendly name of the data source.
	Name string `json:"name" yaml:"name"`

	// IDPrefix namespaces identifiers of objects from this data source.
	IDPrefix string `json:"idPrefix" yaml:"id_prefix"`

	// Location is the resource location, a URL or a directory.
	Location string `json:"location" yaml:"location"`

	// Credentials are not serialized.
	Credentials map[string]string `json:"-" yaml:"-"`
}

// PrefixedID creates an identifier namespaced by the data source prefix.
func (ds DataSource) PrefixedID(id string) string {
	if id == "" {
		return ""
	}
	return ds.IDPrefix + "-" + id
}

// SplitPrefixedID breaks a namespaced identifier into the prefix and the
// raw identifier. It returns false if there is no prefix.
func SplitPrefixedID(id string) (string, string, bool) {
	return strings.Cut(id, "-")
}

// ObservedProperty is an entry of the canonical variable vocabulary.
type ObservedProperty struct {
	// ID is the canonical vocabulary of the variable, e.g. "ACT".
	ID string `json:"id"`

	// FullName is a description of the variable, e.g. "Acetate (CH3COO)".
	FullName string `json:"fullName"`

	// Categories are ordered from general to specific.
	Categories []string `json:"categories,omitempty"`

	// Units of measurement.
	Units string `json:"units,omitempty"`
}

// CanonicalTerm describes one segment of a canonical vocabulary.
type CanonicalTerm struct {
	// AttrType of the segment.
	AttrType vocab.MappedAttribute `json:"attrType"`

	// Vocab is the canonical value of the segment.
	Vocab string `json:"vocab"`

	// Variable is set for OBSERVED_PROPERTY segments.
	Variable *ObservedProperty `json:"variable,omitempty"`
}

// AttributeMapping maps a source vocabulary to a canonical vocabulary.
// Compound mappings join several attribute types and their canonical
// values with vocab.Delimiter in the same positional order.
type AttributeMapping struct {
	// ID is a stable identifier of the mapping row.
	ID string `json:"id,omitempty"`

	// AttrType is a simple or compound attribute type.
	AttrType string `json:"attrType"`

	// CanonicalVocab is aligned with AttrType.
	CanonicalVocab string `json:"canonicalVocab"`

	// CanonicalDesc describes each segment of CanonicalVocab.
	CanonicalDesc []CanonicalTerm `json:"canonicalDesc"`

	// SourceVocab is the value as it appears at the data source.
	SourceVocab string `json:"sourceVocab"`

	// SourceDesc is a free text description provided by the data source.
	SourceDesc string `json:"sourceDesc"`

	// DataSource owns the mapping.
	DataSource DataSource `json:"datasource"`
}

// IsSupported is false for placeholder mappings created when the source
// vocabulary has no mapping.
func (am AttributeMapping) IsSupported() bool {
	return am.CanonicalVocab != vocab.NotSupported
}

// MappedAttribute is an attribute of a synthesized object expressed
// through its mapping.
type MappedAttribute struct {
	AttrType vocab.MappedAttribute `json:"attrType"`
	Mapping  AttributeMapping      `json:"mapping"`
}

// position returns the segment index of the attribute type in the
// mapping or -1.
func (ma MappedAttribute) position() int {
	for i, v := range vocab.Split(ma.Mapping.AttrType) {
		if v == string(ma.AttrType) {
			return i
		}
	}
	return -1
}

// CanonicalVocab returns the canonical value of the attribute.
func (ma MappedAttribute) CanonicalVocab() string {
	if !ma.Mapping.IsSupported() {
		return vocab.NotSupported
	}
	idx := ma.position()
	segs := vocab.Split(ma.Mapping.CanonicalVocab)
	if idx < 0 || idx >= len(segs) {
		return vocab.NotSupported
	}
	return segs[idx]
}

// CanonicalDesc returns the description of the canonical value or nil.
func (ma MappedAttribute) CanonicalDesc() *CanonicalTerm {
	idx := ma.position()
	if idx < 0 || idx >= len(ma.Mapping.CanonicalDesc) {
		return nil
	}
	res := ma.Mapping.CanonicalDesc[idx]
	return &res
}

// SourceVocab returns the vocabulary used by the data source.
func (ma MappedAttribute) SourceVocab() string {
	return ma.Mapping.SourceVocab
}
