// Package compilation wires the whole pass pipeline spec.md §5 describes
// into a single value: Binding, TypeCatalog/TypeSystem, one IrBuilder run
// per source file, the narrowing/anonobj/mono/numeric middle passes in
// their prescribed order, and finally the emitter. It is the one place
// that owns that order; every other package only knows its own pass.
//
// Grounded on the teacher's pkg/cli/entry.go, which plays the same role
// for the teacher's own parse -> analyze -> execute pipeline: one
// function owning stage order so command-line and embedding callers never
// have to reconstruct it themselves.
package compilation

import (
	"fmt"
	"strings"

	"github.com/petermattis/goid"

	"github.com/tsoniclang/tsonic/internal/anonobj"
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/config"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/emitter"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/irbuilder"
	"github.com/tsoniclang/tsonic/internal/manifest"
	"github.com/tsoniclang/tsonic/internal/mono"
	"github.com/tsoniclang/tsonic/internal/narrowing"
	"github.com/tsoniclang/tsonic/internal/numeric"
	"github.com/tsoniclang/tsonic/internal/surface"
	"github.com/tsoniclang/tsonic/internal/targetast"
	"github.com/tsoniclang/tsonic/internal/typecatalog"
	"github.com/tsoniclang/tsonic/internal/typesystem"
)

// Output is one compiled source file's result: the lowered target AST
// (useful to callers that want to inspect structure, e.g. tests or an
// LSP-style consumer) plus the printed text ready to write to OutputRoot.
type Output struct {
	SourceFile string
	TargetPath string
	Module     *ir.Module
	File       *targetast.File
	Text       string
}

// Compilation is a single end-to-end run over a fixed set of source files.
// It is built once (New) and run once (Run); spec.md §5's single-threaded,
// cooperative pipeline assumption means nothing here needs locking, but
// Run asserts it is never called from a different goroutine than New was,
// catching an accidental concurrent-reuse bug early instead of letting it
// corrupt the shared Binding/TypeCatalog registries silently.
type Compilation struct {
	Options  config.Options
	Sink     *diagnostics.Sink
	Binding  *binding.Binding
	Catalog  *typecatalog.Catalog
	Types    *typesystem.System
	programs []*surface.Program

	creatorGoroutine int64
}

// New builds the shared Binding/TypeCatalog/TypeSystem registries over the
// full set of programs in one workspace (spec.md §4.1: Binding sees every
// file at once so cross-file references resolve). manifests seeds the
// catalog with every external binding manifest's types before any source
// file's IR is built, so a class implementing or referencing a CLR type
// resolves it from the very first file (spec.md §4.2/§C). No IR is built
// yet; that happens per file in Run.
func New(opts config.Options, manifests []*manifest.Manifest, programs []*surface.Program) *Compilation {
	sink := diagnostics.NewSink()
	b := binding.New(programs, sink)
	catalog := typecatalog.New()
	manifest.RegisterCatalog(catalog, manifests)
	types := typesystem.New(b, catalog, sink)
	return &Compilation{
		Options:          opts,
		Sink:             sink,
		Binding:          b,
		Catalog:          catalog,
		Types:            types,
		programs:         programs,
		creatorGoroutine: goid.Get(),
	}
}

// Run executes the full per-file pipeline: IrBuilder, then narrowing,
// anonobj, mono, numeric in the order spec.md §5 fixes, then the emitter.
// It returns one Output per input program regardless of whether that
// program's diagnostics include errors, so a caller that wants
// best-effort partial output (an LSP-style consumer) can still have it;
// callers that must fail the build on errors check c.Sink.HasErrors().
func (c *Compilation) Run() []Output {
	c.assertSingleGoroutine()

	outputs := make([]Output, 0, len(c.programs))
	for _, prog := range c.programs {
		module := irbuilder.BuildModule(c.Binding, c.Types, c.Sink, prog)
		c.qualifyNamespace(module)

		narrowing.Pass(module, c.Types)
		anonobj.Pass(module)
		mono.Pass(module)
		numeric.Pass(module, c.Sink)

		file, text := emitter.Emit(module, c.Sink)
		outputs = append(outputs, Output{
			SourceFile: prog.File,
			TargetPath: c.targetPath(prog.File),
			Module:     module,
			File:       file,
			Text:       text,
		})
	}
	return outputs
}

// qualifyNamespace prefixes a freshly built module's synthesized namespace
// with Options.TargetRootNamespace, when one was configured. IrBuilder
// derives a module's namespace purely from its file path (spec.md §4.4)
// since it has no workspace-level context; root qualification is a
// Compilation-level concern layered on afterward.
func (c *Compilation) qualifyNamespace(module *ir.Module) {
	if c.Options.TargetRootNamespace == "" {
		return
	}
	if module.Namespace == "" {
		module.Namespace = c.Options.TargetRootNamespace
		return
	}
	module.Namespace = c.Options.TargetRootNamespace + "." + module.Namespace
}

// targetPath mirrors a source file's path under OutputRoot, swapping its
// extension for config.TargetFileExtension.
func (c *Compilation) targetPath(sourceFile string) string {
	rel := strings.TrimPrefix(sourceFile, c.Options.SourceRoot)
	rel = strings.TrimPrefix(rel, "/")
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(rel, ext) {
			rel = strings.TrimSuffix(rel, ext)
			break
		}
	}
	return joinPath(c.Options.OutputRoot, rel+config.TargetFileExtension)
}

func joinPath(root, rel string) string {
	if root == "" {
		return rel
	}
	return strings.TrimSuffix(root, "/") + "/" + rel
}

func (c *Compilation) assertSingleGoroutine() {
	if got := goid.Get(); got != c.creatorGoroutine {
		panic(fmt.Sprintf("compilation: Run called from goroutine %d, created on %d — spec.md §5's single-threaded pipeline assumption was violated", got, c.creatorGoroutine))
	}
}
