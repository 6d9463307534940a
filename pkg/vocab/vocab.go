// Package vocab provides the canonical controlled vocabularies of gnsynth.
//
// Attribute types listed in MappedAttributes are translated between the
// canonical vocabulary and the vocabulary of every data source. Mappings
// that couple several attribute types join them with Delimiter.
package vocab

import (
	"slices"
	"strings"
)

const (
	// Delimiter joins attribute types and vocabularies of compound
	// mappings, e.g. "OBSERVED_PROPERTY:SAMPLING_MEDIUM" and "Al:WATER".
	Delimiter = ":"

	// NotSupported is the value given to canonical vocabularies that do
	// not have a mapping in a data source.
	NotSupported = "NOT_SUPPORTED"

	// Wildcard matches any single segment of a compound vocabulary.
	Wildcard = ".*"
)

// MappedAttribute is an attribute type that has vocabulary mappings.
type MappedAttribute string

const (
	ObservedProperty    MappedAttribute = "OBSERVED_PROPERTY"
	AggregationDuration MappedAttribute = "AGGREGATION_DURATION"
	ResultQuality       MappedAttribute = "RESULT_QUALITY"
	SamplingMedium      MappedAttribute = "SAMPLING_MEDIUM"
	Statistic           MappedAttribute = "STATISTIC"
)

// MappedAttributes returns all attribute types with vocabulary mappings.
func MappedAttributes() []MappedAttribute {
	return []MappedAttribute{
		ObservedProperty,
		AggregationDuration,
		ResultQuality,
		SamplingMedium,
		Statistic,
	}
}

// ParseMappedAttribute converts a string to MappedAttribute. The string
// is case-insensitive, so query field names like "observed_property" are
// accepted.
func ParseMappedAttribute(s string) (MappedAttribute, bool) {
	res := MappedAttribute(strings.ToUpper(strings.TrimSpace(s)))
	if slices.Contains(MappedAttributes(), res) {
		return res, true
	}
	return "", false
}

// Field returns the query field name of the attribute type.
func (m MappedAttribute) Field() string {
	return strings.ToLower(string(m))
}

func (m MappedAttribute) String() string {
	return string(m)
}

// Values of AGGREGATION_DURATION.
const (
	DurationYear   = "YEAR"
	DurationMonth  = "MONTH"
	DurationDay    = "DAY"
	DurationHour   = "HOUR"
	DurationMinute = "MINUTE"
	DurationSecond = "SECOND"
	DurationNone   = "NONE"
)

// Values of RESULT_QUALITY.
const (
	QualityUnvalidated = "UNVALIDATED"
	QualityValidated   = "VALIDATED"
	QualityRejected    = "REJECTED"
	QualitySuspected   = "SUSPECTED"
	QualityEstimated   = "ESTIMATED"
)

// Values of STATISTIC.
const (
	StatisticInstant = "INSTANT"
	StatisticMean    = "MEAN"
	StatisticMin     = "MIN"
	StatisticMax     = "MAX"
	StatisticTotal   = "TOTAL"
)

// Values of SAMPLING_MEDIUM.
const (
	MediumSolidPhase    = "SOLID_PHASE"
	MediumWater         = "WATER"
	MediumGas           = "GAS"
	MediumOther         = "OTHER"
	MediumNotApplicable = "NOT_APPLICABLE"
)

var members = map[MappedAttribute][]string{
	AggregationDuration: {
		DurationYear, DurationMonth, DurationDay, DurationHour,
		DurationMinute, DurationSecond, DurationNone,
	},
	ResultQuality: {
		QualityUnvalidated, QualityValidated, QualityRejected,
		QualitySuspected, QualityEstimated,
	},
	Statistic: {
		StatisticInstant, StatisticMean, StatisticMin,
		StatisticMax, StatisticTotal,
	},
	SamplingMedium: {
		MediumSolidPhase, MediumWater, MediumGas,
		MediumOther, MediumNotApplicable,
	},
}

// Members returns the values of the enumeration that governs the
// attribute type. OBSERVED_PROPERTY is governed by the variable store,
// not by an enumeration, and returns nil.
func Members(attr MappedAttribute) []string {
	return slices.Clone(members[attr])
}

// IsMember checks if the value belongs to the enumeration of the
// attribute type.
func IsMember(attr MappedAttribute, value string) bool {
	return slices.Contains(members[attr], value)
}

// IsCompound checks if an attribute type or a vocabulary joins several
// segments.
func IsCompound(s string) bool {
	return strings.Contains(s, Delimiter)
}

// Split breaks a compound attribute type or vocabulary into segments.
func Split(s string) []string {
	return strings.Split(s, Delimiter)
}

// Join creates a compound attribute type or vocabulary.
func Join(ss ...string) string {
	return strings.Join(ss, Delimiter)
}
