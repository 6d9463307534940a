package iofs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/gnames/gn"
	"google.golang.org/api/iterator"
)

// Location is a directory-like place with data files. It can be a local
// directory, a Google Cloud Storage prefix or an fs.FS.
type Location interface {
	// Open returns a reader of a file. A missing file gives an error
	// that matches fs.ErrNotExist.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// List returns names of files at the location.
	List(ctx context.Context) ([]string, error)

	// String returns a human-readable location.
	String() string

	// Close releases resources of the location.
	Close() error
}

// NewLocation creates a Location from a local directory path or a
// gs://bucket/prefix URL.
func NewLocation(loc string) Location {
	if bucket, prefix, ok := ParseGCSPath(loc); ok {
		return &gcsLocation{url: loc, bucket: bucket, prefix: prefix}
	}
	return &dirLocation{dir: loc}
}

// NewFSLocation creates a Location from a file system.
func NewFSLocation(fsys fs.FS, name string) Location {
	return &fsLocation{fsys: fsys, name: name}
}

// OpenFile opens a local file or a gs://bucket/object.
func OpenFile(ctx context.Context, file string) (io.ReadCloser, error) {
	if _, _, ok := ParseGCSPath(file); ok {
		idx := strings.LastIndex(file, "/")
		loc := NewLocation(file[:idx])
		rc, err := loc.Open(ctx, file[idx+1:])
		if err != nil {
			loc.Close()
			return nil, err
		}
		return &closers{ReadCloser: rc, loc: loc}, nil
	}
	return NewLocation(filepath.Dir(file)).Open(ctx, filepath.Base(file))
}

// OpenReference opens the observed property vocabulary. Empty file means
// the embedded vocabulary.
func OpenReference(ctx context.Context, file string) (io.ReadCloser, error) {
	if file == "" {
		f, err := dataFS.Open(path.Join("data", ReferenceFile))
		if err != nil {
			return nil, ReadFileError(ReferenceFile, err)
		}
		return f, nil
	}
	return OpenFile(ctx, file)
}

// IsNotExist reports whether err tells about a missing file.
func IsNotExist(err error) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		err = gnErr.Err
	}
	return errors.Is(err, fs.ErrNotExist)
}

// ParseGCSPath breaks gs://bucket/prefix into a bucket and an object
// prefix.
func ParseGCSPath(gcsPath string) (string, string, bool) {
	body, ok := strings.CutPrefix(gcsPath, "gs://")
	if !ok || body == "" {
		return "", "", false
	}
	bucket, prefix, _ := strings.Cut(body, "/")
	if bucket == "" {
		return "", "", false
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return bucket, prefix, true
}

type closers struct {
	io.ReadCloser
	loc Location
}

func (c *closers) Close() error {
	err := c.ReadCloser.Close()
	return errors.Join(err, c.loc.Close())
}

type dirLocation struct {
	dir string
}

func (d *dirLocation) Open(_ context.Context, name string) (io.ReadCloser, error) {
	p := filepath.Join(d.dir, name)
	f, err := os.Open(p)
	if err != nil {
		return nil, ReadFileError(p, err)
	}
	return f, nil
}

func (d *dirLocation) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, ReadFileError(d.dir, err)
	}
	var res []string
	for _, v := range entries {
		if !v.IsDir() {
			res = append(res, v.Name())
		}
	}
	return res, nil
}

func (d *dirLocation) String() string {
	return d.dir
}

func (d *dirLocation) Close() error {
	return nil
}

type fsLocation struct {
	fsys fs.FS
	name string
}

func (l *fsLocation) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, ReadFileError(path.Join(l.name, name), err)
	}
	return f, nil
}

func (l *fsLocation) List(_ context.Context) ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, ReadFileError(l.name, err)
	}
	var res []string
	for _, v := range entries {
		if !v.IsDir() {
			res = append(res, v.Name())
		}
	}
	return res, nil
}

func (l *fsLocation) String() string {
	return l.name
}

func (l *fsLocation) Close() error {
	return nil
}

type gcsLocation struct {
	url, bucket, prefix string

	mu     sync.Mutex
	client *storage.Client
}

func (g *gcsLocation) getClient(ctx context.Context) (*storage.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, RemoteFileError(g.url, err)
	}
	g.client = client
	return client, nil
}

func (g *gcsLocation) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return nil, err
	}
	obj := g.prefix + name
	rc, err := client.Bucket(g.bucket).Object(obj).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		err = fmt.Errorf("%w: %w", fs.ErrNotExist, err)
	}
	if err != nil {
		return nil, RemoteFileError(g.url+"/"+name, err)
	}
	return rc, nil
}

func (g *gcsLocation) List(ctx context.Context) ([]string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return nil, err
	}
	query := &storage.Query{Prefix: g.prefix}
	it := client.Bucket(g.bucket).Objects(ctx, query)
	var res []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, RemoteFileError(g.url, err)
		}
		name := strings.TrimPrefix(attrs.Name, g.prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		res = append(res, name)
	}
	slices.Sort(res)
	return res, nil
}

func (g *gcsLocation) String() string {
	return g.url
}

func (g *gcsLocation) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	return err
}
