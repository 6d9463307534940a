package iofs_test

import (
	"context"
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/internal/iofs"
	"github.com/gnames/gnsynth/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGCSPath(t *testing.T) {
	tests := []struct {
		msg, input, bucket, prefix string
		ok                         bool
	}{
		{"bucket only", "gs://maps", "maps", "", true},
		{"prefix", "gs://maps/sources", "maps", "sources/", true},
		{"prefix slash", "gs://maps/sources/", "maps", "sources/", true},
		{"local", "/tmp/maps", "", "", false},
		{"empty", "gs://", "", "", false},
	}

	for _, v := range tests {
		bucket, prefix, ok := iofs.ParseGCSPath(v.input)
		assert.Equal(t, v.ok, ok, v.msg)
		assert.Equal(t, v.bucket, bucket, v.msg)
		assert.Equal(t, v.prefix, prefix, v.msg)
	}
}

func TestFSLocation(t *testing.T) {
	ctx := context.Background()
	fsys := fstest.MapFS{
		"alpha_mapping.csv": {Data: []byte("attr_type\n")},
		"sub/other.csv":     {Data: []byte("x\n")},
	}
	loc := iofs.NewFSLocation(fsys, "alpha")
	defer loc.Close()

	names, err := loc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha_mapping.csv"}, names)

	rc, err := loc.Open(ctx, "alpha_mapping.csv")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "attr_type\n", string(data))
	require.NoError(t, rc.Close())

	_, err = loc.Open(ctx, "beta_mapping.csv")
	assertNotExist(t, err)
	assert.Equal(t, "alpha", loc.String())
}

func TestDirLocation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "beta_mapping.csv"), []byte("a\n"), 0644)
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	loc := iofs.NewLocation(dir)
	names, err := loc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta_mapping.csv"}, names)

	rc, err := iofs.OpenFile(ctx, filepath.Join(dir, "beta_mapping.csv"))
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	_, err = loc.Open(ctx, "missing.csv")
	assertNotExist(t, err)
}

func assertNotExist(t *testing.T, err error) {
	t.Helper()
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, fs.ErrNotExist)
	assert.True(t, iofs.IsNotExist(err))
}

func TestOpenReference(t *testing.T) {
	rc, err := iofs.OpenReference(context.Background(), "")
	require.NoError(t, err)
	defer rc.Close()

	rows, err := csv.NewReader(rc).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(rows), 1)
	assert.Equal(t,
		[]string{"canonical_id", "description", "categories", "units"},
		rows[0],
	)
	assert.Equal(t, "ACT", rows[1][0])
	assert.Equal(t, "Acetate (CH3COO)", rows[1][1])
}
