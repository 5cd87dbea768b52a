// Package emitter implements spec.md §4.9: lowering an *ir.Module into the
// closed internal/targetast tree, and printing that tree deterministically
// as TargetLang source text.
//
// Lowering is grounded on the teacher's internal/backend/treewalk.go and
// internal/vm/compiler.go — two independent tree-walking lowerings of the
// teacher's own AST into a different representation, which is why a
// hand-written type-switch-with-return-value walker (rather than an
// Accept(Visitor) implementation) is the idiom here: internal/ir.Visitor's
// methods are void-shaped, awkward for a pass whose entire job is to
// construct and return new nodes. internal/mono/clone.go already
// establishes this return-value shape for a structurally similar
// transform (clone-with-substitution over the same ir package), so
// lowering follows it directly.
//
// The printer, in contrast, only ever walks the node set it owns
// (internal/targetast), so it type-switches directly over that closed set
// rather than doing anything fancier — grounded on
// internal/prettyprinter/code_printer.go's deterministic, precedence-aware
// printing of the teacher's own surface language.
package emitter

import (
	"sort"

	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
	"github.com/tsoniclang/tsonic/internal/targetast"
)

// context threads per-module lowering state immutably downward (spec.md
// §4.9's "emitter context": indentation is the printer's concern, but the
// using/import sink and static/async flags are the lowering stage's).
type context struct {
	module   *ir.Module
	sink     *diagnostics.Sink
	usings   map[string]bool
	isStatic bool
	isAsync  bool
	// pending collects declarations a lowering step synthesizes alongside
	// its direct result (the generator lowering's _Generator wrapper
	// class) so the caller can fold them into the nearest enclosing
	// class/container as Nested decls. pendingMethods does the same for
	// sibling methods (the generator lowering's private _core iterator
	// method, which belongs in the same class as the public entry point
	// rather than nested inside it). Both are shared by pointer across
	// every context derived via withFlags.
	pending        *[]targetast.Decl
	pendingMethods *[]targetast.MethodDecl
}

func newContext(module *ir.Module, sink *diagnostics.Sink) *context {
	pending := make([]targetast.Decl, 0)
	pendingMethods := make([]targetast.MethodDecl, 0)
	return &context{module: module, sink: sink, usings: map[string]bool{"System": true}, pending: &pending, pendingMethods: &pendingMethods}
}

func (c *context) addPending(d targetast.Decl) { *c.pending = append(*c.pending, d) }

func (c *context) drainPending() []targetast.Decl {
	out := *c.pending
	*c.pending = nil
	return out
}

func (c *context) addPendingMethod(m targetast.MethodDecl) { *c.pendingMethods = append(*c.pendingMethods, m) }

func (c *context) drainPendingMethods() []targetast.MethodDecl {
	out := *c.pendingMethods
	*c.pendingMethods = nil
	return out
}

func (c *context) use(ns string) { c.usings[ns] = true }

func (c *context) withFlags(isStatic, isAsync bool) *context {
	cp := *c
	cp.isStatic = isStatic
	cp.isAsync = isAsync
	return &cp
}

func (c *context) loc(e ir.Expression) *diagnostics.Location {
	return c.locAt(e.Span())
}

// locAt builds a diagnostic location directly from a span, for declaration
// nodes (ir.ClassDecl, etc.) that carry one but aren't themselves an
// ir.Expression.
func (c *context) locAt(sp surface.Span) *diagnostics.Location {
	return &diagnostics.Location{File: c.module.File, Line: sp.Start.Line, Column: sp.Start.Column}
}

// Emit lowers module to a *targetast.File and returns the deterministically
// printed source text.
func Emit(module *ir.Module, sink *diagnostics.Sink) (*targetast.File, string) {
	ctx := newContext(module, sink)
	file := lowerModule(ctx, module)
	return file, Print(file)
}

func lowerModule(ctx *context, module *ir.Module) *targetast.File {
	decls := make([]targetast.Decl, 0, len(module.Statements))
	if module.IsStaticContainer {
		container := &targetast.ClassDecl{
			Name:     module.ContainerName,
			IsStatic: true,
			IsSealed: false,
		}
		for _, stmt := range module.Statements {
			appendTopLevel(ctx, container, stmt)
		}
		decls = append(decls, container)
	} else {
		for _, stmt := range module.Statements {
			decls = append(decls, lowerTopLevelDecl(ctx, stmt)...)
		}
	}

	usings := make([]string, 0, len(ctx.usings))
	for u := range ctx.usings {
		usings = append(usings, u)
	}
	sort.Strings(usings)

	return &targetast.File{
		Usings:    usings,
		Namespace: module.Namespace,
		Decls:     decls,
	}
}

// appendTopLevel folds a module-level declaration or variable statement
// into the synthesized static container class spec.md §4.9 uses for
// static-container modules (a top level of declarations and pure-literal
// variable initializers only, with no single natural class to host them).
func appendTopLevel(ctx *context, container *targetast.ClassDecl, stmt ir.Statement) {
	switch s := stmt.(type) {
	case *ir.FunctionDecl:
		container.Methods = append(container.Methods, lowerMethod(ctx, s, true))
		container.Methods = append(container.Methods, ctx.drainPendingMethods()...)
		container.Nested = append(container.Nested, ctx.drainPending()...)
	case *ir.ClassDecl:
		container.Nested = append(container.Nested, lowerClassDecl(ctx, s))
	case *ir.InterfaceDecl:
		container.Nested = append(container.Nested, lowerInterfaceDecl(ctx, s))
	case *ir.TypeAliasDecl:
		if d := lowerTypeAliasDecl(ctx, s); d != nil {
			container.Nested = append(container.Nested, d)
		}
	case *ir.EnumDecl:
		container.Nested = append(container.Nested, lowerEnumDecl(s))
	case *ir.VarStatement:
		container.Fields = append(container.Fields, targetast.FieldDecl{
			Name:       s.Name,
			Type:       lowerType(ctx, s.Type),
			IsReadonly: s.IsConst,
			IsStatic:   true,
			Init:       lowerExprOrNil(ctx, s.Init),
		})
	default:
		// Any other statement kind is not lowered and is left out of the
		// container; IrBuilder only produces declarations and variable
		// statements at module scope.
	}
}

func lowerTopLevelDecl(ctx *context, stmt ir.Statement) []targetast.Decl {
	switch s := stmt.(type) {
	case *ir.FunctionDecl:
		return []targetast.Decl{wrapFunctionAsClass(ctx, s)}
	case *ir.ClassDecl:
		return []targetast.Decl{lowerClassDecl(ctx, s)}
	case *ir.InterfaceDecl:
		return []targetast.Decl{lowerInterfaceDecl(ctx, s)}
	case *ir.TypeAliasDecl:
		if d := lowerTypeAliasDecl(ctx, s); d != nil {
			return []targetast.Decl{d}
		}
		return nil
	case *ir.EnumDecl:
		return []targetast.Decl{lowerEnumDecl(s)}
	default:
		return nil
	}
}

// wrapFunctionAsClass hosts a lone top-level function in a single-method
// static class, matching the same static-container convention a
// multi-declaration module uses. The class is suffixed so it never
// collides with the method name it hosts.
func wrapFunctionAsClass(ctx *context, fn *ir.FunctionDecl) *targetast.ClassDecl {
	method := lowerMethod(ctx, fn, true)
	methods := append([]targetast.MethodDecl{method}, ctx.drainPendingMethods()...)
	return &targetast.ClassDecl{
		Name:     fn.Name + "Module",
		IsStatic: true,
		Methods:  methods,
		Nested:   ctx.drainPending(),
	}
}
