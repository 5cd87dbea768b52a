package compilation

import (
	"sort"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/tsoniclang/tsonic/internal/config"
	"github.com/tsoniclang/tsonic/internal/manifest"
	"github.com/tsoniclang/tsonic/internal/surface"
)

func namedType(name string) *surface.NamedTypeSyntax { return &surface.NamedTypeSyntax{Name: name} }
func ident(name string) *surface.Identifier          { return &surface.Identifier{Name: name} }
func param(name string, t surface.TypeSyntax) *surface.Param {
	return &surface.Param{Name: name, Type: t}
}

func addFunctionProgram(file string) *surface.Program {
	fn := &surface.FunctionDecl{
		Name:       "add",
		Params:     []*surface.Param{param("a", namedType("int")), param("b", namedType("int"))},
		ReturnType: namedType("int"),
		Body: &surface.Block{Stmts: []surface.Stmt{
			&surface.ReturnStmt{Value: &surface.BinaryExpr{Op: surface.OpAdd, Left: ident("a"), Right: ident("b")}},
		}},
		Exported: true,
	}
	return &surface.Program{File: file, Decls: []surface.Decl{fn}}
}

func TestRun_SingleFileProducesEmittedText(t *testing.T) {
	prog := addFunctionProgram("math/add.ts")
	opts := config.Options{SourceRoot: "", OutputRoot: "out", TargetRootNamespace: "Acme"}
	comp := New(opts, nil, []*surface.Program{prog})

	outputs := comp.Run()
	require.Falsef(t, comp.Sink.HasErrors(), "unexpected diagnostics: %v", comp.Sink.Diagnostics())
	require.Len(t, outputs, 1)

	out := outputs[0]
	if !strings.Contains(out.Text, "class addModule") {
		t.Errorf("expected lowered static container, got:\n%s", out.Text)
	}
	if !strings.HasPrefix(out.Module.Namespace, "Acme") {
		t.Errorf("expected namespace qualified with TargetRootNamespace, got %q", out.Module.Namespace)
	}
	require.Equal(t, "out/math/add.cs", out.TargetPath)
}

func TestRun_MultipleFilesEachProduceOwnOutput(t *testing.T) {
	progs := []*surface.Program{addFunctionProgram("a.ts"), addFunctionProgram("b.ts")}
	comp := New(config.Options{}, nil, progs)
	outputs := comp.Run()
	require.Len(t, outputs, 2)

	got := []string{outputs[0].SourceFile, outputs[1].SourceFile}
	sort.Strings(got)
	want := []string{"a.ts", "b.ts"}
	if diff := pretty.Diff(got, want); len(diff) != 0 {
		t.Errorf("source files don't match:\n%s", strings.Join(diff, "\n"))
	}
}

// TestRun_RegistersManifestTypesBeforeTheFirstFileBuilds exercises
// manifest.RegisterCatalog's wiring into New: a class implementing a
// manifest-sourced interface must resolve it, not report an unresolved
// binding, even though the interface is declared nowhere in source.
func TestRun_RegistersManifestTypesBeforeTheFirstFileBuilds(t *testing.T) {
	m := &manifest.Manifest{
		Namespaces: []manifest.Namespace{
			{Name: "System", Types: []manifest.Type{{Name: "IDisposable", Kind: "interface"}}},
		},
	}
	cls := &surface.ClassDecl{Name: "Resource", Implements: []surface.TypeSyntax{namedType("IDisposable")}}
	prog := &surface.Program{File: "resource.ts", Decls: []surface.Decl{cls}}

	comp := New(config.Options{}, []*manifest.Manifest{m}, []*surface.Program{prog})
	comp.Run()

	for _, d := range comp.Sink.Diagnostics() {
		if d.Severity.String() == "error" {
			t.Errorf("unexpected error resolving a manifest-sourced interface: %v", d)
		}
	}
}

func TestRun_PanicsWhenCalledFromADifferentGoroutineThanNew(t *testing.T) {
	prog := addFunctionProgram("add.ts")
	comp := New(config.Options{}, nil, []*surface.Program{prog})
	comp.creatorGoroutine = comp.creatorGoroutine + 1

	defer func() {
		if recover() == nil {
			t.Fatal("expected Run to panic on a goroutine mismatch")
		}
	}()
	comp.Run()
}
