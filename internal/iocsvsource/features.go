package iocsvsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/translate"
	"github.com/gnames/gnsynth/pkg/vocab"
)

var featureColumns = []string{"id", "name", "feature_type"}

type featureRow struct {
	id, name, description string
	featureType           vocab.FeatureType
	latitude, longitude   string
	parent                string
	properties            []string
}

// readFeatures reads all rows of the features file. Rows with unknown
// feature types are skipped with a warning.
func (s *Source) readFeatures(ctx context.Context) ([]featureRow, []string, error) {
	t, err := openTable(ctx, s.loc, s.ds.ID, FeaturesFile, featureColumns)
	if err != nil {
		return nil, nil, err
	}
	defer t.close()

	var res []featureRow
	var warnings []string
	for {
		if err = ctx.Err(); err != nil {
			return nil, nil, err
		}
		r, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		ft, ok := vocab.ParseFeatureType(r.get("feature_type"))
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"Feature %s of datasource %s has unknown feature_type %q.",
				r.get("id"), s.ds.ID, r.get("feature_type"),
			))
			continue
		}
		row := featureRow{
			id:          r.get("id"),
			name:        r.get("name"),
			description: r.get("description"),
			featureType: ft,
			latitude:    r.get("latitude"),
			longitude:   r.get("longitude"),
			parent:      r.get("parent_id"),
		}
		for _, v := range strings.Split(r.get("observed_properties"), ";") {
			if v = strings.TrimSpace(v); v != "" {
				row.properties = append(row.properties, v)
			}
		}
		res = append(res, row)
	}
	return res, warnings, nil
}

func (r featureRow) match(q *query.Translated) bool {
	if ids := q.Strings(query.FieldMonitoringFeature); len(ids) > 0 &&
		!slices.Contains(ids, r.id) {
		return false
	}
	if ids := q.Strings(query.FieldParentFeature); len(ids) > 0 &&
		!slices.Contains(ids, r.parent) {
		return false
	}
	if ft := q.String(query.FieldFeatureType); ft != "" && ft != string(r.featureType) {
		return false
	}
	return true
}

// feature converts a row to a monitoring feature. Observed properties
// without a mapping are left out and reported as warnings.
func (s *Source) feature(
	ctx context.Context,
	acc *plugin.Access,
	r featureRow,
	types map[string]vocab.FeatureType,
) (*model.MonitoringFeature, []string, error) {
	var warnings []string
	res := &model.MonitoringFeature{
		ID:          acc.DataSource.PrefixedID(r.id),
		OriginalID:  r.id,
		Name:        r.name,
		Description: r.description,
		FeatureType: r.featureType,
		DataSource:  acc.DataSource,
	}

	if r.latitude != "" && r.longitude != "" {
		lat, errLat := strconv.ParseFloat(r.latitude, 64)
		lon, errLon := strconv.ParseFloat(r.longitude, 64)
		if errLat == nil && errLon == nil {
			res.Coordinates = &model.Coordinates{Latitude: lat, Longitude: lon}
		} else {
			warnings = append(warnings, fmt.Sprintf(
				"Feature %s of datasource %s has invalid coordinates.",
				r.id, s.ds.ID,
			))
		}
	}

	if r.parent != "" {
		res.RelatedFeatures = []model.RelatedFeature{{
			ID:          acc.DataSource.PrefixedID(r.parent),
			FeatureType: types[r.parent],
			Role:        model.RoleParent,
		}}
	}

	for _, v := range r.properties {
		ma, err := translate.Attribute(ctx, acc, vocab.ObservedProperty, v)
		if err != nil {
			return nil, nil, err
		}
		if !ma.Mapping.IsSupported() {
			warnings = append(warnings, fmt.Sprintf(
				"Variable %s of feature %s has no mapping in datasource %s.",
				v, r.id, s.ds.ID,
			))
			continue
		}
		res.ObservedProperties = append(res.ObservedProperties, ma.CanonicalVocab())
	}
	return res, warnings, nil
}

func featureTypes(rows []featureRow) map[string]vocab.FeatureType {
	res := make(map[string]vocab.FeatureType, len(rows))
	for _, v := range rows {
		res[v.id] = v.featureType
	}
	return res
}

func (s *Source) listFeatures(
	ctx context.Context,
	acc *plugin.Access,
	q *query.Translated,
) (plugin.Cursor, error) {
	rows, warnings, err := s.readFeatures(ctx)
	if err != nil {
		return nil, err
	}
	types := featureTypes(rows)

	var res []model.Object
	for _, v := range rows {
		if !v.match(q) {
			continue
		}
		mf, ws, err := s.feature(ctx, acc, v, types)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, ws...)
		res = append(res, mf)
	}
	return plugin.SliceCursor(res, warnings...), nil
}

func (s *Source) getFeature(
	ctx context.Context,
	acc *plugin.Access,
	q *query.Translated,
) (model.Object, error) {
	id := q.String(query.FieldID)
	if id == "" {
		return nil, nil
	}
	rows, _, err := s.readFeatures(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range rows {
		if v.id == id {
			mf, _, err := s.feature(ctx, acc, v, featureTypes(rows))
			if err != nil {
				return nil, err
			}
			return mf, nil
		}
	}
	return nil, nil
}
