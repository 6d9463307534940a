package iocatalog

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/gnames/gnsynth/internal/iofs"
	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/schema"
	"github.com/gnames/gnsynth/pkg/vocab"
	"github.com/gnames/gnuuid"
	"golang.org/x/sync/errgroup"
)

// mappingFile keeps valid rows of the mapping file of a data source.
type mappingFile struct {
	source model.DataSource
	rows   []schema.AttributeMapping
}

// loadReference reads the observed property vocabulary. Rows keep the
// order of the file, duplicates are rejected later by the store.
func (c *catalogImpl) loadReference(ctx context.Context) ([]schema.ObservedProperty, error) {
	file := c.cfg.Catalog.ReferenceFile
	name := file
	if name == "" {
		name = iofs.ReferenceFile
	}

	rc, err := iofs.OpenReference(ctx, file)
	if err != nil {
		return nil, ReferenceFileError(name, err)
	}
	defer rc.Close()

	r := newCSVReader(rc)
	header, err := r.Read()
	if err != nil {
		return nil, ReferenceFileError(name, err)
	}
	if !catalog.CheckHeader(header, catalog.ReferenceHeader) {
		return nil, HeaderError("", name, header)
	}

	var res []schema.ObservedProperty
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ReferenceFileError(name, err)
		}
		if len(rec) != len(catalog.ReferenceHeader) || strings.TrimSpace(rec[0]) == "" {
			slog.Warn("Malformed variable row, skipping", "row", strings.Join(rec, ","))
			continue
		}
		res = append(res, schema.ObservedProperty{
			ID:         strings.TrimSpace(rec[0]),
			Seq:        len(res),
			FullName:   strings.TrimSpace(rec[1]),
			Categories: strings.Join(splitList(rec[2]), ","),
			Units:      strings.TrimSpace(rec[3]),
		})
	}
	return res, nil
}

// parseMappings reads mapping files of all sources concurrently. The
// result keeps the order of sources.
func (c *catalogImpl) parseMappings(
	ctx context.Context,
	sources []catalog.Source,
	vars map[string]model.ObservedProperty,
) ([]mappingFile, error) {
	res := make([]mappingFile, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.cfg.JobsNumber, 1))
	for i, src := range sources {
		g.Go(func() error {
			rows, err := c.parseMappingFile(ctx, src, vars)
			if err != nil {
				return err
			}
			res[i] = mappingFile{source: src.DataSource, rows: rows}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *catalogImpl) mappingLocation(src catalog.Source) (iofs.Location, error) {
	ds := src.DataSource
	if src.Files != nil {
		return iofs.NewFSLocation(src.Files, ds.ID), nil
	}
	loc := c.cfg.MappingLocation()
	if loc == "" {
		err := errors.New("mapping location is not configured")
		return nil, MappingFileError(ds.ID, catalog.MappingFileName(ds), err)
	}
	return iofs.NewLocation(loc), nil
}

func (c *catalogImpl) parseMappingFile(
	ctx context.Context,
	src catalog.Source,
	vars map[string]model.ObservedProperty,
) ([]schema.AttributeMapping, error) {
	ds := src.DataSource
	file := catalog.MappingFileName(ds)

	loc, err := c.mappingLocation(src)
	if err != nil {
		return nil, err
	}
	defer loc.Close()

	rc, err := loc.Open(ctx, file)
	if err != nil {
		return nil, MappingFileError(ds.ID, file, err)
	}
	defer rc.Close()

	r := newCSVReader(rc)
	header, err := r.Read()
	if err != nil {
		return nil, MappingFileError(ds.ID, file, err)
	}
	if !catalog.CheckHeader(header, catalog.MappingHeader) {
		return nil, HeaderError(ds.ID, file, header)
	}

	var res []schema.AttributeMapping
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, MappingFileError(ds.ID, file, err)
		}
		if row, ok := validateRow(ds.ID, rec, vars); ok {
			res = append(res, row)
		}
	}
	return res, nil
}

// validateRow converts a record of a mapping file to a row. Invalid
// records are logged and rejected.
func validateRow(
	sourceID string,
	rec []string,
	vars map[string]model.ObservedProperty,
) (schema.AttributeMapping, bool) {
	var res schema.AttributeMapping
	if len(rec) != len(catalog.MappingHeader) {
		slog.Warn(
			"Malformed mapping row, skipping mapping",
			"datasource", sourceID,
			"row", strings.Join(rec, ","),
		)
		return res, false
	}

	attrType := strings.TrimSpace(rec[0])
	canonical := strings.TrimSpace(rec[1])
	sourceVocab := strings.TrimSpace(rec[2])
	if sourceVocab == "" {
		slog.Warn(
			"Empty source vocabulary, skipping mapping",
			"datasource", sourceID,
			"attr_type", attrType,
		)
		return res, false
	}

	attrs := vocab.Split(attrType)
	vals := vocab.Split(canonical)
	if len(attrs) != len(vals) {
		slog.Warn(
			"Attribute types do not align with canonical vocabulary, skipping mapping",
			"datasource", sourceID,
			"attr_type", attrType,
			"vocab", canonical,
		)
		return res, false
	}

	for i, v := range attrs {
		attr, ok := vocab.ParseMappedAttribute(v)
		if !ok {
			slog.Warn(
				"Attribute type is not supported, skipping mapping",
				"datasource", sourceID,
				"attr_type", v,
				"vocab", sourceVocab,
			)
			return res, false
		}
		attrs[i] = attr.String()

		var valid bool
		if attr == vocab.ObservedProperty {
			_, valid = vars[vals[i]]
		} else {
			valid = vocab.IsMember(attr, vals[i])
		}
		if !valid {
			slog.Warn(
				"Canonical vocabulary is not valid, skipping attribute mapping",
				"datasource", sourceID,
				"attr_type", attr.String(),
				"vocab", vals[i],
			)
			return res, false
		}
	}

	attrType = vocab.Join(attrs...)
	key := strings.Join([]string{sourceID, attrType, sourceVocab}, "|")
	res = schema.AttributeMapping{
		ID:             gnuuid.New(key).String(),
		DataSourceID:   sourceID,
		AttrType:       attrType,
		CanonicalVocab: canonical,
		SourceVocab:    sourceVocab,
		SourceDesc:     strings.TrimSpace(rec[3]),
	}
	return res, true
}

// compoundTypes returns compound attribute types in the order of their
// first appearance.
func compoundTypes(rows []schema.AttributeMapping) []string {
	var res []string
	seen := make(map[string]struct{})
	for _, v := range rows {
		if !vocab.IsCompound(v.AttrType) {
			continue
		}
		if _, ok := seen[v.AttrType]; ok {
			continue
		}
		seen[v.AttrType] = struct{}{}
		res = append(res, v.AttrType)
	}
	return res
}

func newCSVReader(r io.Reader) *csv.Reader {
	res := csv.NewReader(r)
	res.FieldsPerRecord = -1
	return res
}

func splitList(s string) []string {
	var res []string
	for v := range strings.SplitSeq(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}

// variablesMap indexes variables by ID, the first row wins.
func variablesMap(rows []schema.ObservedProperty) map[string]model.ObservedProperty {
	res := make(map[string]model.ObservedProperty, len(rows))
	for _, v := range rows {
		if _, ok := res[v.ID]; !ok {
			res[v.ID] = variableToModel(v)
		}
	}
	return res
}

func variableToModel(op schema.ObservedProperty) model.ObservedProperty {
	return model.ObservedProperty{
		ID:         op.ID,
		FullName:   op.FullName,
		Categories: splitList(op.Categories),
		Units:      op.Units,
	}
}

func dataSourceToSchema(ds model.DataSource) schema.DataSource {
	return schema.DataSource{
		ID:       ds.ID,
		Name:     ds.Name,
		IDPrefix: ds.IDPrefix,
		Location: ds.Location,
	}
}

// mappingToModel converts a row to a mapping and describes every segment
// of its canonical vocabulary.
func (c *catalogImpl) mappingToModel(am schema.AttributeMapping) model.AttributeMapping {
	ds, _ := c.dataSource(am.DataSourceID)
	res := model.AttributeMapping{
		ID:             am.ID,
		AttrType:       am.AttrType,
		CanonicalVocab: am.CanonicalVocab,
		SourceVocab:    am.SourceVocab,
		SourceDesc:     am.SourceDesc,
		DataSource:     ds,
	}

	attrs := vocab.Split(am.AttrType)
	vals := vocab.Split(am.CanonicalVocab)
	for i := range min(len(attrs), len(vals)) {
		term := model.CanonicalTerm{
			AttrType: vocab.MappedAttribute(attrs[i]),
			Vocab:    vals[i],
		}
		if term.AttrType == vocab.ObservedProperty {
			if op, ok := c.vars[vals[i]]; ok {
				term.Variable = &op
			}
		}
		res.CanonicalDesc = append(res.CanonicalDesc, term)
	}
	return res
}
