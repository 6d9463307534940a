package iocsvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/gnames/gnsynth/internal/iofs"
)

// table reads a CSV file with a header. Columns are found by name, so
// their order does not matter.
type table struct {
	source string
	name   string
	rc     io.ReadCloser
	r      *csv.Reader
	cols   map[string]int
	line   int
}

func openTable(
	ctx context.Context,
	loc iofs.Location,
	source, name string,
	required []string,
) (*table, error) {
	rc, err := loc.Open(ctx, name)
	if iofs.IsNotExist(err) {
		return nil, DataFileError(source, name, fs.ErrNotExist)
	}
	if err != nil {
		return nil, DataFileError(source, name, err)
	}

	r := csv.NewReader(rc)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		rc.Close()
		return nil, DataFileError(source, name, fmt.Errorf("read header: %w", err))
	}

	cols := make(map[string]int, len(header))
	for i, v := range header {
		cols[strings.ToLower(strings.TrimSpace(v))] = i
	}
	for _, v := range required {
		if _, ok := cols[v]; !ok {
			rc.Close()
			return nil, DataFileError(source, name,
				fmt.Errorf("missing column %q", v))
		}
	}

	res := table{source: source, name: name, rc: rc, r: r, cols: cols, line: 1}
	return &res, nil
}

// next returns the next row. It returns io.EOF at the end of the file.
func (t *table) next() (row, error) {
	fields, err := t.r.Read()
	if errors.Is(err, io.EOF) {
		return row{}, io.EOF
	}
	t.line++
	if err != nil {
		return row{}, DataFileError(t.source, t.name, err)
	}
	return row{cols: t.cols, fields: fields, line: t.line}, nil
}

func (t *table) close() error {
	return t.rc.Close()
}

type row struct {
	cols   map[string]int
	fields []string
	line   int
}

// get returns a trimmed value of a column or an empty string.
func (r row) get(col string) string {
	idx, ok := r.cols[col]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}
