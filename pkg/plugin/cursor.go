package plugin

import (
	"context"
	"iter"
	"slices"

	"github.com/gnames/gnsynth/pkg/model"
)

// Cursor is a lazy sequence of objects found by a Lister. Diagnostics
// are returned separately by Warnings, which is complete only after Next
// reports the end of the sequence.
type Cursor interface {
	// Next returns the next object. The boolean is false when the
	// sequence is exhausted or when an error occurred.
	Next(ctx context.Context) (model.Object, bool, error)

	// Warnings describe problems that did not stop the listing.
	Warnings() []string

	// Close releases resources of the cursor. It is safe to call Close
	// more than once.
	Close() error
}

// NewCursor adapts a sequence to Cursor. The warnings function is
// called after the sequence is exhausted and may be nil.
func NewCursor(seq iter.Seq2[model.Object, error], warnings func() []string) Cursor {
	next, stop := iter.Pull2(seq)
	return &seqCursor{next: next, stop: stop, warnings: warnings}
}

type seqCursor struct {
	next     func() (model.Object, error, bool)
	stop     func()
	warnings func() []string
	done     bool
}

func (c *seqCursor) Next(ctx context.Context) (model.Object, bool, error) {
	if c.done {
		return nil, false, nil
	}
	if err := ctx.Err(); err != nil {
		c.finish()
		return nil, false, err
	}
	obj, err, ok := c.pull()
	if !ok {
		c.finish()
		return nil, false, nil
	}
	if err != nil {
		c.finish()
		return nil, false, err
	}
	return obj, true, nil
}

// pull takes the next pair of the sequence. A panic of the sequence
// becomes an error, so a failing plugin does not stop other sources.
func (c *seqCursor) pull() (obj model.Object, err error, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			obj, err, ok = nil, PanicError(r), true
		}
	}()
	return c.next()
}

func (c *seqCursor) Warnings() []string {
	if !c.done || c.warnings == nil {
		return nil
	}
	return c.warnings()
}

func (c *seqCursor) Close() error {
	c.finish()
	return nil
}

func (c *seqCursor) finish() {
	if c.done {
		return
	}
	c.done = true
	c.stop()
}

// SliceCursor creates a cursor over objects that are already in memory.
func SliceCursor(objs []model.Object, warnings ...string) Cursor {
	return NewCursor(
		func(yield func(model.Object, error) bool) {
			for _, v := range objs {
				if !yield(v, nil) {
					return
				}
			}
		},
		func() []string { return slices.Clone(warnings) },
	)
}
