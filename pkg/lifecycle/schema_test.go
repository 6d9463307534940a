package lifecycle_test

import (
	"testing"

	"github.com/gnames/gnsynth/internal/iodb"
	"github.com/gnames/gnsynth/internal/ioschema"
	"github.com/gnames/gnsynth/pkg/lifecycle"
)

// TestSchemaManagerContract ensures that ioschema manager satisfies the
// lifecycle.SchemaManager interface.
func TestSchemaManagerContract(t *testing.T) {
	var _ lifecycle.SchemaManager = ioschema.NewManager(iodb.NewPgxOperator())
}
