// Package iocatalog implements catalog.Catalog on top of SQLite or
// PostgreSQL tables.
//
// Canonical variables and attribute mappings are loaded once. SQL keeps
// the rows and narrows lookups by data source and source vocabulary,
// attribute type membership and canonical wildcards are matched in Go.
package iocatalog

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/gnames/gnsynth/pkg/config"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/schema"
)

type catalogImpl struct {
	cfg *config.Config
	st  store

	// progress shows a progress bar while mapping files are loaded.
	progress bool

	mu    sync.RWMutex
	ready bool

	// sources are data sources initialized by this process in
	// registration order.
	sources []model.DataSource

	// compound keeps compound attribute types of every data source in
	// the order of their first appearance.
	compound map[string][]string

	// vars is the in-memory copy of the variable store used to describe
	// canonical terms.
	vars map[string]model.ObservedProperty
}

// Option configures the catalog.
type Option func(*catalogImpl)

// OptProgressBar shows a progress bar during initialization.
func OptProgressBar(b bool) Option {
	return func(c *catalogImpl) {
		c.progress = b
	}
}

// New opens the catalog store chosen by configuration. The catalog is
// empty until Initialize is called.
func New(
	ctx context.Context,
	cfg *config.Config,
	opts ...Option,
) (catalog.Catalog, error) {
	res := &catalogImpl{
		cfg:      cfg,
		compound: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(res)
	}

	var err error
	switch cfg.Catalog.Backend {
	case "postgres":
		res.st, err = newPgStore(ctx, cfg)
	default:
		res.st, err = newSQLiteStore(ctx, cfg.Catalog.SQLitePath)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Initialize implements catalog.Catalog.
func (c *catalogImpl) Initialize(ctx context.Context, sources []catalog.Source) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready {
		return InitializedError()
	}

	ids, err := checkSources(sources)
	if err != nil {
		return err
	}

	rows, err := c.loadReference(ctx)
	if err != nil {
		return err
	}
	vars := variablesMap(rows)

	// mapping rows are validated against variables, so mapping files
	// are parsed after the reference vocabulary.
	parsed, err := c.parseMappings(ctx, sources, vars)
	if err != nil {
		return err
	}

	if err = c.st.reset(ctx, ids); err != nil {
		return err
	}

	dups, err := c.st.addVariables(ctx, rows)
	if err != nil {
		return err
	}
	for _, v := range dups {
		slog.Warn("Duplicate variable found, skipping duplicate", "variable", v)
	}
	c.vars = vars
	slog.Info("Loaded variables", "count", humanize.Comma(int64(len(vars))))

	dsRows := make([]schema.DataSource, len(sources))
	for i, v := range sources {
		dsRows[i] = dataSourceToSchema(v.DataSource)
	}
	if err = c.st.addDataSources(ctx, dsRows); err != nil {
		return err
	}

	err = c.addMappings(ctx, parsed)
	if err != nil {
		return err
	}

	c.sources = make([]model.DataSource, len(sources))
	for i, v := range sources {
		c.sources[i] = v.DataSource
	}
	c.ready = true
	return nil
}

// addMappings inserts mappings in registration order, so the seq column
// keeps the order of data sources and of rows in their files.
func (c *catalogImpl) addMappings(ctx context.Context, parsed []mappingFile) error {
	var bar *pb.ProgressBar
	if c.progress {
		bar = pb.Full.Start(len(parsed))
		bar.Set("prefix", "Loading attribute mappings: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	var seq int
	for _, p := range parsed {
		for i := range p.rows {
			p.rows[i].Seq = seq
			seq++
		}
		dups, err := c.st.addMappings(ctx, p.rows)
		if err != nil {
			return err
		}
		for _, v := range dups {
			slog.Warn(
				"Duplicate attribute mapping, skipping datasource attribute",
				"datasource", v.DataSourceID,
				"attr_type", v.AttrType,
				"vocab", v.SourceVocab,
			)
		}

		c.compound[p.source.ID] = compoundTypes(p.rows)
		slog.Info(
			"Loaded attribute mappings",
			"datasource", p.source.ID,
			"count", humanize.Comma(int64(len(p.rows)-len(dups))),
		)
		if bar != nil {
			bar.Increment()
		}
	}
	return nil
}

// IsInitialized implements catalog.Catalog.
func (c *catalogImpl) IsInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Counts implements catalog.Catalog.
func (c *catalogImpl) Counts(ctx context.Context) (int, int, error) {
	return c.st.counts(ctx)
}

// Close implements catalog.Catalog.
func (c *catalogImpl) Close() error {
	return c.st.close()
}

func (c *catalogImpl) checkReady(store string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ready {
		return NotInitializedError(store)
	}
	return nil
}

func (c *catalogImpl) sourceIDs() []string {
	res := make([]string, len(c.sources))
	for i, v := range c.sources {
		res[i] = v.ID
	}
	return res
}

func (c *catalogImpl) dataSource(id string) (model.DataSource, bool) {
	idx := slices.IndexFunc(c.sources, func(ds model.DataSource) bool {
		return ds.ID == id
	})
	if idx < 0 {
		return model.DataSource{}, false
	}
	return c.sources[idx], true
}

func checkSources(sources []catalog.Source) ([]string, error) {
	seen := make(map[string]struct{})
	for _, v := range sources {
		ds := v.DataSource
		if ds.ID == "" {
			return nil, DataSourceError(ds.Name, "data source ID is empty")
		}
		if ds.IDPrefix == "" {
			return nil, DataSourceError(ds.ID, "ID prefix is empty")
		}
		if _, ok := seen[ds.ID]; ok {
			return nil, DataSourceError(ds.ID, "data source is registered twice")
		}
		seen[ds.ID] = struct{}{}
	}
	return slices.Collect(maps.Keys(seen)), nil
}
