package iocatalog

import "github.com/gnames/gnsynth/pkg/catalog"

var _ catalog.Catalog = (*catalogImpl)(nil)
