package irbuilder

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/surface"
	"github.com/tsoniclang/tsonic/internal/typecatalog"
	"github.com/tsoniclang/tsonic/internal/typesystem"
)

// newTestContext binds, type-checks, and wraps a single surface.Program
// into a ProgramContext the way BuildModule does internally, returning the
// sink too so tests can assert on reported diagnostics.
func newTestContext(t *testing.T, prog *surface.Program) (*ProgramContext, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	b := binding.New([]*surface.Program{prog}, sink)
	catalog := typecatalog.New()
	types := typesystem.New(b, catalog, sink)
	return newProgramContext(b, types, sink, prog.File), sink
}

func sp() surface.Span { return surface.Span{} }

func namedType(name string) *surface.NamedTypeSyntax {
	return &surface.NamedTypeSyntax{Name: name}
}
