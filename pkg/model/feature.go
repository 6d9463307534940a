package model

import (
	"time"

	"github.com/gnames/gnsynth/pkg/vocab"
)

// Coordinates of a monitoring feature in decimal degrees.
type Coordinates struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Datum     string   `json:"datum,omitempty"`
}

// RelatedFeature links a feature to another feature, usually its parent.
type RelatedFeature struct {
	ID          string            `json:"id"`
	FeatureType vocab.FeatureType `json:"featureType,omitempty"`
	Role        string            `json:"role"`
}

// RoleParent is the role of a related parent feature.
const RoleParent = "PARENT"

// MonitoringFeature is a feature where observations are made.
type MonitoringFeature struct {
	ID                 string            `json:"id"`
	OriginalID         string            `json:"originalId"`
	Name               string            `json:"name"`
	Description        string            `json:"description,omitempty"`
	FeatureType        vocab.FeatureType `json:"featureType"`
	Coordinates        *Coordinates      `json:"coordinates,omitempty"`
	ObservedProperties []string          `json:"observedProperties,omitempty"`
	RelatedFeatures    []RelatedFeature  `json:"relatedFeatures,omitempty"`
	DataSource         DataSource        `json:"datasource"`
}

// ModelType implements Object.
func (mf *MonitoringFeature) ModelType() Type {
	return MonitoringFeatureType
}

// ObjectID implements Object.
func (mf *MonitoringFeature) ObjectID() string {
	return mf.ID
}

// TimeValuePair is a single measurement.
type TimeValuePair struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// MeasurementTimeseriesTVPObservation is a timeseries of time-value pairs
// of one observed property at one feature.
type MeasurementTimeseriesTVPObservation struct {
	ID                    string             `json:"id"`
	OriginalID            string             `json:"originalId"`
	ObservedProperty      MappedAttribute    `json:"observedProperty"`
	SamplingMedium        MappedAttribute    `json:"samplingMedium"`
	Statistic             MappedAttribute    `json:"statistic"`
	AggregationDuration   MappedAttribute    `json:"aggregationDuration"`
	ResultQuality         []MappedAttribute  `json:"resultQuality,omitempty"`
	FeatureOfInterest     *MonitoringFeature `json:"featureOfInterest,omitempty"`
	FeatureOfInterestType vocab.FeatureType  `json:"featureOfInterestType,omitempty"`
	UnitOfMeasurement     string             `json:"unitOfMeasurement"`
	UTCOffset             int                `json:"utcOffset"`
	Result                []TimeValuePair    `json:"result"`
	DataSource            DataSource         `json:"datasource"`
}

// ModelType implements Object.
func (ts *MeasurementTimeseriesTVPObservation) ModelType() Type {
	return TimeseriesType
}

// ObjectID implements Object.
func (ts *MeasurementTimeseriesTVPObservation) ObjectID() string {
	return ts.ID
}
