// Package synthesis assembles objects of one synthesis model from all
// registered data-source plugins.
//
// Access.List fans a canonical query out over the plugins and returns an
// Iterator that lazily drains one source after another. Access.Retrieve
// asks a single source for one object. Problems of individual sources
// never fail a call, they are collected as messages of the response.
package synthesis

import (
	"context"
	"log/slog"

	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/google/uuid"
)

// Recorder receives events of synthesis calls, usually to count them.
type Recorder interface {
	// AddObject is called for every object given to the caller.
	AddObject(ctx context.Context, sourceID string, mt model.Type)

	// AddMessage is called for every message of a response.
	AddMessage(ctx context.Context, mt model.Type, m query.Message)
}

// Access synthesizes objects of one model.
type Access struct {
	mt  model.Type
	reg *plugin.Registry
	cat catalog.Catalog
	rec Recorder
}

// Option configures Access.
type Option func(*Access)

// OptRecorder sets a Recorder of synthesis events.
func OptRecorder(r Recorder) Option {
	return func(a *Access) {
		a.rec = r
	}
}

// NewAccess creates Access to a synthesis model of registered plugins.
func NewAccess(
	mt model.Type,
	reg *plugin.Registry,
	cat catalog.Catalog,
	opts ...Option,
) *Access {
	res := &Access{mt: mt, reg: reg, cat: cat}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// ModelType is the synthesis model of the Access.
func (a *Access) ModelType() model.Type {
	return a.mt
}

// List creates an iterator over objects of all target data sources. The
// targets are the data sources named by the query, or all registered
// ones, in registration order.
func (a *Access) List(ctx context.Context, q query.Query) *Iterator {
	id := uuid.NewString()
	log := newMessageLog(a, id)
	prepared, _ := prepare(ctx, q, false, log)

	res := &Iterator{
		acc:     a,
		id:      id,
		q:       prepared,
		log:     log,
		plugins: a.targets(ctx, prepared, log),
		state:   SelectSource,
	}
	slog.Debug("Start synthesis",
		"synthesis_id", id,
		"model", string(a.mt),
		"sources", len(res.plugins),
	)
	return res
}

// targets returns plugins of data sources requested by the query.
func (a *Access) targets(
	ctx context.Context,
	q query.Query,
	log *messageLog,
) []plugin.Plugin {
	ids := q.Datasources()
	if len(ids) == 0 {
		return a.reg.Plugins()
	}

	var res []plugin.Plugin
	for _, p := range a.reg.Plugins() {
		for _, id := range ids {
			if p.DataSource().ID == id {
				res = append(res, p)
				break
			}
		}
	}
	for _, id := range ids {
		if _, ok := a.reg.Plugin(id); !ok {
			log.warn(ctx, nil, "Datasource "+id+" is not registered.")
		}
	}
	return res
}
