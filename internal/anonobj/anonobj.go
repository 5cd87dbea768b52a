// Package anonobj implements spec.md §4.6: object literals with no
// contextual nominal type receive a synthesized nominal type named
// __Anon_<FileStem>_<Line>_<Col>. Identical structural shapes are
// deduplicated by a stable, total shape signature so that two literals
// with the same property names, types, optionality, and readonly flags
// share one synthesized class.
//
// There is no direct teacher analogue (funxy has no object-literal-to-
// nominal-class synthesis); this pass is built in the teacher's idiom —
// a hand-written recursive walker, deterministic naming, and a dedup key
// derived the same way internal/ir already derives one for structural
// equality (ir.StableIrTypeKey), rather than inventing a second
// serialization scheme.
package anonobj

import (
	"fmt"
	"path"
	"strings"

	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// Pass rewrites every eligible object literal's Type() in module to a
// reference to a synthesized class, appending one ClassDecl per distinct
// shape signature to module.Statements.
func Pass(module *ir.Module) {
	w := &walker{fileStem: fileStem(module.File), seen: make(map[string]*ir.IrType)}
	w.walkStmts(module.Statements, nil)
	module.Statements = append(module.Statements, w.classes...)
}

func fileStem(file string) string {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

type walker struct {
	fileStem string
	seen     map[string]*ir.IrType // shape signature -> already-synthesized reference type
	classes  []ir.Statement        // synthesized ClassDecls, in first-seen order
}

func (w *walker) walkStmts(stmts []ir.Statement, typeParams []string) {
	for _, s := range stmts {
		w.walkStmt(s, typeParams)
	}
}

func (w *walker) walkBlock(b *ir.Block, typeParams []string) {
	if b == nil {
		return
	}
	w.walkStmts(b.Stmts, typeParams)
}

func (w *walker) walkStmt(s ir.Statement, typeParams []string) {
	switch st := s.(type) {
	case *ir.Block:
		w.walkBlock(st, typeParams)
	case *ir.ExprStatement:
		w.walkExpr(st.Expr, typeParams)
	case *ir.VarStatement:
		w.walkExpr(st.Init, typeParams)
	case *ir.IfStatement:
		w.walkExpr(st.Cond, typeParams)
		w.walkBlock(st.Then, typeParams)
		if st.Else != nil {
			w.walkStmt(st.Else, typeParams)
		}
	case *ir.ForStatement:
		if st.Init != nil {
			w.walkStmt(st.Init, typeParams)
		}
		w.walkExpr(st.Cond, typeParams)
		w.walkExpr(st.Post, typeParams)
		w.walkBlock(st.Body, typeParams)
	case *ir.ForOfStatement:
		w.walkExpr(st.Iterable, typeParams)
		w.walkBlock(st.Body, typeParams)
	case *ir.WhileStatement:
		w.walkExpr(st.Cond, typeParams)
		w.walkBlock(st.Body, typeParams)
	case *ir.ReturnStatement:
		w.walkExpr(st.Value, typeParams)
	case *ir.YieldStatement:
		w.walkExpr(st.Value, typeParams)
	case *ir.ThrowStatement:
		w.walkExpr(st.Value, typeParams)
	case *ir.MatchStatement:
		w.walkExpr(st.Subject, typeParams)
		for _, arm := range st.Arms {
			w.walkExpr(arm.Predicate, typeParams)
			w.walkBlock(arm.Body, typeParams)
		}
		w.walkBlock(st.Default, typeParams)
	case *ir.FunctionDecl:
		w.walkFunction(st, typeParams)
	case *ir.ClassDecl:
		classScope := append(append([]string{}, typeParams...), st.TypeParams...)
		for _, m := range st.Methods {
			w.walkFunction(m, classScope)
		}
		if st.Ctor != nil {
			w.walkFunction(st.Ctor, classScope)
		}
	}
}

func (w *walker) walkFunction(fn *ir.FunctionDecl, outer []string) {
	scope := append(append([]string{}, outer...), fn.TypeParams...)
	for _, p := range fn.Params {
		w.walkExpr(p.Default, scope)
	}
	w.walkBlock(fn.Body, scope)
}

func (w *walker) walkExpr(e ir.Expression, typeParams []string) {
	switch ex := e.(type) {
	case nil:
		return
	case *ir.Binary:
		w.walkExpr(ex.Left, typeParams)
		w.walkExpr(ex.Right, typeParams)
	case *ir.Unary:
		w.walkExpr(ex.Operand, typeParams)
	case *ir.Assign:
		w.walkExpr(ex.Left, typeParams)
		w.walkExpr(ex.Right, typeParams)
	case *ir.Conditional:
		w.walkExpr(ex.Cond, typeParams)
		w.walkExpr(ex.Then, typeParams)
		w.walkExpr(ex.Else, typeParams)
	case *ir.Logical:
		w.walkExpr(ex.Left, typeParams)
		w.walkExpr(ex.Right, typeParams)
	case *ir.Nullish:
		w.walkExpr(ex.Left, typeParams)
		w.walkExpr(ex.Right, typeParams)
	case *ir.Call:
		w.walkExpr(ex.Callee, typeParams)
		for _, a := range ex.Args {
			w.walkExpr(a.Value, typeParams)
		}
	case *ir.New:
		w.walkExpr(ex.Callee, typeParams)
		for _, a := range ex.Args {
			w.walkExpr(a.Value, typeParams)
		}
	case *ir.Member:
		w.walkExpr(ex.Object, typeParams)
	case *ir.Index:
		w.walkExpr(ex.Object, typeParams)
		w.walkExpr(ex.Index, typeParams)
	case *ir.ObjectLiteral:
		// Children first: a nested object literal must be synthesized (and
		// its Type() rewritten to a reference) before the enclosing
		// literal's own shape signature is computed.
		for i := range ex.Properties {
			w.walkExpr(ex.Properties[i].Value, typeParams)
		}
		w.trySynthesize(ex, typeParams)
	case *ir.ArrayLiteral:
		for _, el := range ex.Elements {
			w.walkExpr(el, typeParams)
		}
	case *ir.TupleLiteral:
		for _, el := range ex.Elements {
			w.walkExpr(el, typeParams)
		}
	case *ir.Lambda:
		w.walkBlock(ex.Body, typeParams)
		w.walkExpr(ex.ExprBody, typeParams)
	case *ir.TryCast:
		w.walkExpr(ex.Value, typeParams)
	case *ir.AsCast:
		w.walkExpr(ex.Value, typeParams)
	case *ir.InstanceOf:
		w.walkExpr(ex.Value, typeParams)
	case *ir.NarrowedView:
		w.walkExpr(ex.Original, typeParams)
	case *ir.SuperCall:
		for _, a := range ex.Args {
			w.walkExpr(a.Value, typeParams)
		}
	}
}

// trySynthesize assigns lit a synthesized nominal type if its current type
// is still the plain structural shape convertObjectLiteral falls back to
// (no contextual nominal type was available at conversion time). A
// contextually-typed literal (Kind != KindObject, e.g. a KindReference to
// a declared interface/class) is left untouched.
func (w *walker) trySynthesize(lit *ir.ObjectLiteral, typeParams []string) {
	shape := lit.Type()
	if shape == nil || shape.Kind != ir.KindObject {
		return
	}

	// Re-sync each member's type with its (possibly just-synthesized)
	// property value, so the shape signature and the synthesized class's
	// own property list both see the final, post-rewrite types.
	for i := range shape.ObjectMembers {
		if i < len(lit.Properties) {
			shape.ObjectMembers[i].Type = lit.Properties[i].Value.Type()
		}
	}

	key := ir.StableIrTypeKey(shape)
	if existing, ok := w.seen[key]; ok {
		lit.SetType(existing)
		return
	}

	name := fmt.Sprintf("__Anon_%s_%d_%d", w.fileStem, lit.Span().Start.Line, lit.Span().Start.Column)
	captured := capturedTypeParams(shape, typeParams)

	properties := make([]ir.PropertyDecl, len(shape.ObjectMembers))
	for i, m := range shape.ObjectMembers {
		properties[i] = ir.PropertyDecl{Name: m.Name, Type: m.Type, Optional: m.Optional, Readonly: m.Readonly}
	}

	class := &ir.ClassDecl{Name: name, TypeParams: captured, Properties: properties}
	w.classes = append(w.classes, class)

	refArgs := make([]*ir.IrType, len(captured))
	for i, p := range captured {
		refArgs[i] = ir.NewTypeParameter(p)
	}
	ref := ir.NewReference(name, refArgs, ids.InvalidType)
	w.seen[key] = ref
	lit.SetType(ref)
}

// capturedTypeParams reports, in inScope's own order, which of the
// enclosing function's type parameters are structurally reachable from t —
// these are the ones the synthesized class must declare to stay generic.
func capturedTypeParams(t *ir.IrType, inScope []string) []string {
	if len(inScope) == 0 {
		return nil
	}
	found := make(map[string]bool)
	collectTypeParams(t, found, make(map[*ir.IrType]bool))
	var out []string
	for _, name := range inScope {
		if found[name] {
			out = append(out, name)
		}
	}
	return out
}

func collectTypeParams(t *ir.IrType, found map[string]bool, visiting map[*ir.IrType]bool) {
	if t == nil || visiting[t] {
		return
	}
	visiting[t] = true
	defer delete(visiting, t)

	switch t.Kind {
	case ir.KindTypeParameter:
		found[t.ParamName] = true
	case ir.KindReference:
		for _, a := range t.RefArgs {
			collectTypeParams(a, found, visiting)
		}
	case ir.KindArray:
		collectTypeParams(t.ElemType, found, visiting)
	case ir.KindTuple:
		for _, e := range t.TupleElems {
			collectTypeParams(e, found, visiting)
		}
	case ir.KindFunction:
		for _, p := range t.FuncParams {
			collectTypeParams(p, found, visiting)
		}
		collectTypeParams(t.FuncReturn, found, visiting)
	case ir.KindObject:
		for _, m := range t.ObjectMembers {
			collectTypeParams(m.Type, found, visiting)
		}
	case ir.KindDictionary:
		collectTypeParams(t.DictKey, found, visiting)
		collectTypeParams(t.DictValue, found, visiting)
	case ir.KindUnion, ir.KindIntersection:
		for _, m := range t.Members {
			collectTypeParams(m, found, visiting)
		}
	}
}
