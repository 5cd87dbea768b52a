package manifest

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/typecatalog"
)

func TestRegisterCatalog_EntersEachNamespacedTypeAtArityZero(t *testing.T) {
	m := &Manifest{
		Assembly: "System.Collections",
		Namespaces: []Namespace{
			{Name: "System.Collections.Generic", Types: []Type{
				{Name: "List_1", Kind: "class"},
				{Name: "Stack", Alias: "Stack", Kind: "class"},
			}},
		},
	}
	cat := typecatalog.New()
	RegisterCatalog(cat, []*Manifest{m})

	id, ok := cat.ResolveClrName("System.Collections.Generic.List_1")
	if !ok {
		t.Fatal("expected List_1 to resolve by its fully-qualified CLR name")
	}
	entry, ok := cat.Entry(id)
	if !ok || !entry.FromManifest {
		t.Fatalf("expected a manifest-sourced entry, got %+v", entry)
	}

	if _, ok := cat.ResolveTsName("Stack"); !ok {
		t.Fatal("expected Stack to resolve by its TS-visible alias")
	}
}

func TestRegisterCatalog_IsANoOpOverAnEmptyManifestList(t *testing.T) {
	cat := typecatalog.New()
	RegisterCatalog(cat, nil)
	if _, ok := cat.ResolveTsName("Anything"); ok {
		t.Fatal("expected no entries to resolve from an empty manifest list")
	}
}
