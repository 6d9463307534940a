package synthesis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/translate"
	"github.com/google/uuid"
)

// Retrieve asks one data source for one object. The data source is the
// first one named by the query, or the one whose prefix starts the first
// prefixed identifier of the query. Failures are reported as messages of
// the response.
func (a *Access) Retrieve(ctx context.Context, q query.Query) *query.Response {
	id := uuid.NewString()
	log := newMessageLog(a, id)
	prepared, ok := prepare(ctx, q, true, log)

	res := &query.Response{Query: prepared}
	defer func() {
		res.Messages = log.list()
	}()
	if !ok {
		return res
	}

	p, ok := a.retrieveSource(prepared)
	if !ok {
		log.fail(ctx, nil, msgNoDataSource)
		return res
	}
	ds := p.DataSource()
	where := []string{ds.ID, string(a.mt)}
	slog.Debug("Retrieve object", "synthesis_id", id, "where", ds.ID)

	getter, ok := a.reg.Getter(ds.ID, a.mt)
	if !ok {
		log.warn(ctx, where, msgNoView)
		return res
	}

	pacc := plugin.NewAccess(p, a.cat)
	tq, err := translate.Query(ctx, pacc, prepared)
	if err != nil {
		log.unexpected(ctx, where, err)
		return res
	}
	if !tq.IsValid() {
		log.warn(ctx, where, fmt.Sprintf(msgInvalidQuery, ds.ID))
		return res
	}
	for _, w := range tq.Warnings {
		log.warn(ctx, where, w)
	}

	obj, err := getter.Get(ctx, pacc, tq)
	if err != nil {
		log.unexpected(ctx, where, err)
		return res
	}
	if obj != nil {
		res.Data = obj
		if a.rec != nil {
			a.rec.AddObject(ctx, ds.ID, a.mt)
		}
	}
	return res
}

func (a *Access) retrieveSource(q query.Query) (plugin.Plugin, bool) {
	if ids := q.Datasources(); len(ids) > 0 {
		return a.reg.Plugin(ids[0])
	}

	for _, f := range q.PrefixedFields() {
		var id string
		switch v := q.Get(f).(type) {
		case string:
			id = v
		case []string:
			if len(v) > 0 {
				id = v[0]
			}
		}
		if id == "" {
			continue
		}
		prefix, _, ok := model.SplitPrefixedID(id)
		if !ok {
			return nil, false
		}
		return a.reg.PluginByPrefix(prefix)
	}
	return nil, false
}
