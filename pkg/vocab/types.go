package vocab

import (
	"slices"
	"strings"
)

// FeatureType is the type of a monitoring feature.
type FeatureType string

const (
	FeatureRegion         FeatureType = "REGION"
	FeatureSubregion      FeatureType = "SUBREGION"
	FeatureBasin          FeatureType = "BASIN"
	FeatureSubbasin       FeatureType = "SUBBASIN"
	FeatureWatershed      FeatureType = "WATERSHED"
	FeatureSubwatershed   FeatureType = "SUBWATERSHED"
	FeatureSite           FeatureType = "SITE"
	FeaturePlot           FeatureType = "PLOT"
	FeatureHorizontalPath FeatureType = "HORIZONTAL_PATH"
	FeatureVerticalPath   FeatureType = "VERTICAL_PATH"
	FeaturePoint          FeatureType = "POINT"
)

// FeatureTypes returns all supported feature types.
func FeatureTypes() []FeatureType {
	return []FeatureType{
		FeatureRegion, FeatureSubregion, FeatureBasin, FeatureSubbasin,
		FeatureWatershed, FeatureSubwatershed, FeatureSite, FeaturePlot,
		FeatureHorizontalPath, FeatureVerticalPath, FeaturePoint,
	}
}

// ParseFeatureType converts a case-insensitive string to FeatureType.
func ParseFeatureType(s string) (FeatureType, bool) {
	res := FeatureType(strings.ToUpper(strings.TrimSpace(s)))
	if slices.Contains(FeatureTypes(), res) {
		return res, true
	}
	return "", false
}

// MessageLevel is the severity of a synthesis message.
type MessageLevel string

const (
	LevelWarn     MessageLevel = "WARN"
	LevelError    MessageLevel = "ERROR"
	LevelCritical MessageLevel = "CRITICAL"
)
