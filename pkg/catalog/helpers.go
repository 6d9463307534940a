package catalog

import (
	"slices"
	"strings"

	"github.com/gnames/gnsynth/pkg/vocab"
)

// ReferenceHeader is the header of the reference vocabulary file.
var ReferenceHeader = []string{"canonical_id", "description", "categories", "units"}

// MappingHeader is the header of a mapping file.
var MappingHeader = []string{"attr_type", "canonical_vocab", "source_vocab", "source_desc"}

func lower(s string) string {
	return strings.ToLower(s)
}

// MatchCanonical checks if a canonical vocabulary of a mapping matches a
// requested canonical vocabulary.
//
// A simple request matches the whole vocabulary or any of its segments.
// A compound request matches segment by segment, vocab.Wildcard matches
// any segment.
func MatchCanonical(canonical, requested string) bool {
	if canonical == requested {
		return true
	}
	segs := vocab.Split(canonical)
	if !vocab.IsCompound(requested) {
		return slices.Contains(segs, requested)
	}

	reqs := vocab.Split(requested)
	if len(reqs) != len(segs) {
		return false
	}
	for i := range reqs {
		if reqs[i] != vocab.Wildcard && reqs[i] != segs[i] {
			return false
		}
	}
	return true
}

// HasAttrType checks if a simple or compound attribute type includes the
// requested attribute type.
func HasAttrType(attrType, requested string) bool {
	if attrType == requested {
		return true
	}
	return slices.Contains(vocab.Split(attrType), requested)
}

// CheckHeader compares a parsed header with the expected one.
func CheckHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if strings.TrimSpace(strings.TrimPrefix(got[i], "\ufeff")) != want[i] {
			return false
		}
	}
	return true
}
