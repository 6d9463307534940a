// Package plugin defines the contract between gnsynth and data-source
// plugins.
//
// A plugin describes its data source and provides handlers for the
// synthesis models it supports. A handler lists objects that satisfy a
// translated query (Lister), retrieves one object (Getter), or both.
// Plugins are registered explicitly in a Registry.
package plugin

import (
	"context"
	"io/fs"

	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/query"
)

// Plugin is a data source of synthesized objects.
type Plugin interface {
	// DataSource describes the source. ID and IDPrefix are required.
	DataSource() model.DataSource

	// Handlers return handlers of supported synthesis models.
	Handlers() []Handler
}

// MappingProvider is implemented by plugins that ship their own mapping
// file.
type MappingProvider interface {
	// MappingFS contains the mapping file of the plugin or is nil.
	MappingFS() fs.FS
}

// Handler serves one synthesis model of a plugin. It has to implement
// Lister, Getter or both.
type Handler interface {
	ModelType() model.Type
}

// Lister finds objects that satisfy a query translated for the data
// source of the plugin.
type Lister interface {
	Handler
	List(ctx context.Context, acc *Access, q *query.Translated) (Cursor, error)
}

// Getter retrieves one object, usually by its identifier. A nil object
// without an error means that nothing was found.
type Getter interface {
	Handler
	Get(ctx context.Context, acc *Access, q *query.Translated) (model.Object, error)
}

// Access gives handlers and the query translator access to the catalog
// in the context of one data source.
type Access struct {
	DataSource model.DataSource
	Catalog    catalog.Catalog
}

// NewAccess creates Access for a plugin.
func NewAccess(p Plugin, cat catalog.Catalog) *Access {
	return &Access{DataSource: p.DataSource(), Catalog: cat}
}

// CatalogSource describes a plugin for catalog initialization.
func CatalogSource(p Plugin) catalog.Source {
	res := catalog.Source{DataSource: p.DataSource()}
	if mp, ok := p.(MappingProvider); ok {
		res.Files = mp.MappingFS()
	}
	return res
}

// ListFunc is the signature of Lister.List.
type ListFunc func(ctx context.Context, acc *Access, q *query.Translated) (Cursor, error)

// GetFunc is the signature of Getter.Get.
type GetFunc func(ctx context.Context, acc *Access, q *query.Translated) (model.Object, error)

// NewHandler creates a handler from functions. The handler implements
// Lister if list is not nil and Getter if get is not nil.
func NewHandler(mt model.Type, list ListFunc, get GetFunc) Handler {
	base := handler{mt: mt, list: list, get: get}
	switch {
	case list != nil && get != nil:
		return &listGetHandler{base}
	case list != nil:
		return &listHandler{base}
	case get != nil:
		return &getHandler{base}
	default:
		return &base
	}
}

type handler struct {
	mt   model.Type
	list ListFunc
	get  GetFunc
}

func (h *handler) ModelType() model.Type {
	return h.mt
}

type listHandler struct{ handler }

func (h *listHandler) List(
	ctx context.Context,
	acc *Access,
	q *query.Translated,
) (Cursor, error) {
	return h.list(ctx, acc, q)
}

type getHandler struct{ handler }

func (h *getHandler) Get(
	ctx context.Context,
	acc *Access,
	q *query.Translated,
) (model.Object, error) {
	return h.get(ctx, acc, q)
}

type listGetHandler struct{ handler }

func (h *listGetHandler) List(
	ctx context.Context,
	acc *Access,
	q *query.Translated,
) (Cursor, error) {
	return h.list(ctx, acc, q)
}

func (h *listGetHandler) Get(
	ctx context.Context,
	acc *Access,
	q *query.Translated,
) (model.Object, error) {
	return h.get(ctx, acc, q)
}

// New creates a plugin from its data source, an optional file system with
// its mapping file and handlers.
func New(ds model.DataSource, mappings fs.FS, handlers ...Handler) Plugin {
	return &basic{ds: ds, fsys: mappings, handlers: handlers}
}

type basic struct {
	ds       model.DataSource
	fsys     fs.FS
	handlers []Handler
}

func (b *basic) DataSource() model.DataSource {
	return b.ds
}

func (b *basic) Handlers() []Handler {
	return b.handlers
}

func (b *basic) MappingFS() fs.FS {
	return b.fsys
}
