package synthesis

import (
	"context"
	"fmt"
	"iter"

	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/translate"
)

// State is a state of Iterator.
type State int

const (
	// SelectSource looks for the next data source that can serve the
	// query.
	SelectSource State = iota

	// DrainSource takes objects from the cursor of the current source.
	DrainSource

	// Done is the terminal state.
	Done
)

func (s State) String() string {
	switch s {
	case SelectSource:
		return "SelectSource"
	case DrainSource:
		return "DrainSource"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Iterator yields objects of all target data sources, one source after
// another, in the order of each source. It is not safe for concurrent
// use.
//
// Usage:
//
//	it := acc.List(ctx, q)
//	defer it.Close()
//	for it.Next(ctx) {
//		obj := it.Value()
//	}
//	res := it.Response()
type Iterator struct {
	acc     *Access
	id      string
	q       query.Query
	log     *messageLog
	plugins []plugin.Plugin
	idx     int

	state  State
	where  []string
	cursor plugin.Cursor
	value  model.Object
	err    error
}

// Next advances the iterator to the next object. It returns false when
// all sources are drained or the context is canceled.
func (it *Iterator) Next(ctx context.Context) bool {
	it.value = nil
	for {
		if it.state != Done {
			if err := ctx.Err(); err != nil {
				it.err = err
				it.Close()
			}
		}

		switch it.state {
		case Done:
			return false
		case SelectSource:
			it.selectSource(ctx)
		case DrainSource:
			if it.drain(ctx) {
				return true
			}
		}
	}
}

func (it *Iterator) selectSource(ctx context.Context) {
	if it.idx >= len(it.plugins) {
		it.where = nil
		it.state = Done
		return
	}
	p := it.plugins[it.idx]
	it.idx++

	ds := p.DataSource()
	it.where = []string{ds.ID, string(it.acc.mt)}

	lister, ok := it.acc.reg.Lister(ds.ID, it.acc.mt)
	if !ok {
		it.log.warn(ctx, it.where, msgNoView)
		return
	}

	pacc := plugin.NewAccess(p, it.acc.cat)
	tq, err := translate.Query(ctx, pacc, it.q)
	if err != nil {
		it.log.unexpected(ctx, it.where, err)
		return
	}
	if !tq.IsValid() {
		it.log.warn(ctx, it.where, fmt.Sprintf(msgInvalidQuery, ds.ID))
		return
	}
	for _, w := range tq.Warnings {
		it.log.warn(ctx, it.where, w)
	}

	cur, err := lister.List(ctx, pacc, tq)
	if err != nil {
		it.log.unexpected(ctx, it.where, err)
		return
	}
	if cur == nil {
		return
	}
	it.cursor = cur
	it.state = DrainSource
}

// drain takes the next object of the current source. It returns false
// if the source has no more objects.
func (it *Iterator) drain(ctx context.Context) bool {
	obj, ok, err := it.cursor.Next(ctx)
	switch {
	case err != nil:
		it.log.unexpected(ctx, it.where, err)
		it.closeCursor()
		return false
	case !ok:
		for _, w := range it.cursor.Warnings() {
			it.log.warn(ctx, it.where, w)
		}
		it.closeCursor()
		return false
	case obj == nil:
		return false
	}

	it.value = obj
	if it.acc.rec != nil {
		it.acc.rec.AddObject(ctx, it.where[0], it.acc.mt)
	}
	return true
}

func (it *Iterator) closeCursor() {
	if it.cursor != nil {
		it.cursor.Close()
		it.cursor = nil
	}
	if it.state == DrainSource {
		it.state = SelectSource
	}
}

// Value is the current object.
func (it *Iterator) Value() model.Object {
	return it.value
}

// State is the current state of the iterator.
func (it *Iterator) State() State {
	return it.state
}

// Where is [datasource ID, model type] of the current source, or nil
// when no source is selected.
func (it *Iterator) Where() []string {
	return it.where
}

// ID is the identifier of the synthesis call.
func (it *Iterator) ID() string {
	return it.id
}

// Err returns the context error that stopped the iteration, if any.
// Failures of data sources are messages, not errors.
func (it *Iterator) Err() error {
	return it.err
}

// Messages returns messages collected so far.
func (it *Iterator) Messages() []query.Message {
	return it.log.list()
}

// Response returns the prepared query and messages collected so far.
// Data of the response is always nil, objects are given by the
// iterator.
func (it *Iterator) Response() *query.Response {
	return &query.Response{
		Query:    it.q,
		Messages: it.Messages(),
	}
}

// Close releases the current cursor and stops the iteration. It is safe
// to call Close more than once.
func (it *Iterator) Close() error {
	var err error
	if it.cursor != nil {
		err = it.cursor.Close()
		it.cursor = nil
	}
	it.value = nil
	it.where = nil
	it.state = Done
	return err
}

// All returns a sequence of remaining objects. The iterator is closed
// when the sequence ends or the loop breaks.
func (it *Iterator) All(ctx context.Context) iter.Seq[model.Object] {
	return func(yield func(model.Object) bool) {
		defer it.Close()
		for it.Next(ctx) {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
