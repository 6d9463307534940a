/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsynth/internal/iocsvsource"
	"github.com/gnames/gnsynth/internal/iosources"
	"github.com/gnames/gnsynth/internal/iosynth"
	app "github.com/gnames/gnsynth/pkg"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/sources"
	"github.com/gnames/gnsynth/pkg/synthesis"
)

// loadSources reads data sources from datasources.yaml, limited by
// the --sources flag.
func loadSources() ([]sources.DataSourceConfig, error) {
	sc, err := iosources.New(cfg).Load()
	if err != nil {
		return nil, err
	}
	return sc.DataSources, nil
}

// newSynthesizer creates a Synthesizer of configured CSV data sources.
func newSynthesizer(ctx context.Context) (app.Synthesizer, error) {
	srcs, err := loadSources()
	if err != nil {
		return nil, err
	}
	return iosynth.New(ctx, cfg, iocsvsource.Plugins(srcs)...)
}

// printJSON writes an object as one line of JSON, or as indented JSON
// with --pretty.
func printJSON(w io.Writer, obj any) error {
	enc := gnfmt.GNjson{Pretty: cfg.WithPrettyOutput}
	bs, err := enc.Encode(obj)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bs))
	return err
}

// printMessages reports synthesis messages to STDERR.
func printMessages(msgs []query.Message) {
	for _, v := range msgs {
		where := "core"
		if len(v.Where) > 0 {
			where = strings.Join(v.Where, "/")
		}
		gn.Warn("<warn>%s</warn> %s: %s", v.Level, where, v.Msg)
	}
}

// printIterator writes all objects of the iterator and then its
// messages.
func printIterator(ctx context.Context, w io.Writer, it *synthesis.Iterator) error {
	start := time.Now()
	var count int64
	for obj := range it.All(ctx) {
		if err := printJSON(w, obj); err != nil {
			return err
		}
		count++
	}
	printMessages(it.Messages())
	if err := it.Err(); err != nil {
		return err
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Synthesis is done",
		"synthesis_id", it.ID(),
		"objects", humanize.Comma(count),
		"duration", dur,
	)
	gn.Info("Found <em>%s</em> objects in %s", humanize.Comma(count), dur)
	return nil
}
