package typesystem

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/surface"
	"github.com/tsoniclang/tsonic/internal/typecatalog"
)

func namedType(name string) *surface.NamedTypeSyntax { return &surface.NamedTypeSyntax{Name: name} }

func TestNamedTypeFromSyntax_FlagsASourceDeclaredInterface(t *testing.T) {
	iface := &surface.InterfaceDecl{Name: "Printable"}
	prog := &surface.Program{File: "p.ts", Decls: []surface.Decl{iface}}
	sink := diagnostics.NewSink()
	b := binding.New([]*surface.Program{prog}, sink)
	s := New(b, typecatalog.New(), sink)

	ref := s.TypeFromSyntax(b.CaptureTypeSyntax(namedType("Printable")), nil)
	if !ref.IsNominalizedInterface {
		t.Fatal("expected IsNominalizedInterface to be set for a source-declared interface")
	}
}

func TestNamedTypeFromSyntax_DoesNotFlagAClass(t *testing.T) {
	cls := &surface.ClassDecl{Name: "Widget"}
	prog := &surface.Program{File: "p.ts", Decls: []surface.Decl{cls}}
	sink := diagnostics.NewSink()
	b := binding.New([]*surface.Program{prog}, sink)
	s := New(b, typecatalog.New(), sink)

	ref := s.TypeFromSyntax(b.CaptureTypeSyntax(namedType("Widget")), nil)
	if ref.IsNominalizedInterface {
		t.Fatal("did not expect IsNominalizedInterface to be set for a class")
	}
}

func TestNamedTypeFromSyntax_DoesNotFlagACatalogFacade(t *testing.T) {
	prog := &surface.Program{File: "p.ts"}
	sink := diagnostics.NewSink()
	b := binding.New([]*surface.Program{prog}, sink)
	catalog := typecatalog.New()
	typecatalog.SeedWellKnown(catalog)
	s := New(b, catalog, sink)

	ref := s.TypeFromSyntax(b.CaptureTypeSyntax(&surface.NamedTypeSyntax{
		Name:      "IEnumerable",
		Arguments: []surface.TypeSyntax{namedType("int")},
	}), nil)
	if ref.IsNominalizedInterface {
		t.Fatal("did not expect IsNominalizedInterface to be set for a catalog-registered facade")
	}
}
