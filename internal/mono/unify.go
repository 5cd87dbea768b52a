package mono

import "github.com/tsoniclang/tsonic/internal/ir"

// unify grows subst by structurally matching template (a generic
// declaration's own, pre-substitution parameter type, which may contain
// KindTypeParameter) against actual (the concrete type a call site resolved
// that argument position to). Duplicated from
// internal/typesystem/structmatch.go's structuralUnify rather than
// exported across the package boundary, the way
// irbuilder/decls.go's normalizeLambdaParamMode already duplicates
// Binding's normalizeParamMode for the same reason.
func unify(template, actual *ir.IrType, subst map[string]*ir.IrType) {
	if template == nil || actual == nil || actual.IsUnknown() {
		return
	}
	switch template.Kind {
	case ir.KindTypeParameter:
		if _, bound := subst[template.ParamName]; !bound {
			subst[template.ParamName] = actual
		}
	case ir.KindReference:
		if actual.Kind != ir.KindReference {
			return
		}
		n := minInt(len(template.RefArgs), len(actual.RefArgs))
		for i := 0; i < n; i++ {
			unify(template.RefArgs[i], actual.RefArgs[i], subst)
		}
	case ir.KindArray:
		if actual.Kind != ir.KindArray {
			return
		}
		unify(template.ElemType, actual.ElemType, subst)
	case ir.KindTuple:
		if actual.Kind != ir.KindTuple {
			return
		}
		n := minInt(len(template.TupleElems), len(actual.TupleElems))
		for i := 0; i < n; i++ {
			unify(template.TupleElems[i], actual.TupleElems[i], subst)
		}
	case ir.KindFunction:
		if actual.Kind != ir.KindFunction {
			return
		}
		n := minInt(len(template.FuncParams), len(actual.FuncParams))
		for i := 0; i < n; i++ {
			unify(template.FuncParams[i], actual.FuncParams[i], subst)
		}
		unify(template.FuncReturn, actual.FuncReturn, subst)
	case ir.KindDictionary:
		if actual.Kind != ir.KindDictionary {
			return
		}
		unify(template.DictKey, actual.DictKey, subst)
		unify(template.DictValue, actual.DictValue, subst)
	case ir.KindObject:
		if actual.Kind != ir.KindObject {
			return
		}
		byName := make(map[string]*ir.IrType, len(actual.ObjectMembers))
		for _, m := range actual.ObjectMembers {
			byName[m.Name] = m.Type
		}
		for _, m := range template.ObjectMembers {
			if at, ok := byName[m.Name]; ok {
				unify(m.Type, at, subst)
			}
		}
	case ir.KindUnion, ir.KindIntersection:
		if actual.Kind != template.Kind {
			return
		}
		n := minInt(len(template.Members), len(actual.Members))
		for i := 0; i < n; i++ {
			unify(template.Members[i], actual.Members[i], subst)
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// substType substitutes every KindTypeParameter reference in t with its
// binding in subst, rebuilding the containing structure as needed.
// Duplicated from internal/typesystem/nominal.go's applySubst for the same
// cross-package reason unify is duplicated above.
func substType(t *ir.IrType, subst map[string]*ir.IrType) *ir.IrType {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case ir.KindTypeParameter:
		if bound, ok := subst[t.ParamName]; ok {
			return bound
		}
		return t
	case ir.KindReference:
		args := make([]*ir.IrType, len(t.RefArgs))
		for i, a := range t.RefArgs {
			args[i] = substType(a, subst)
		}
		return ir.NewReference(t.RefName, args, t.RefType)
	case ir.KindArray:
		return ir.NewArray(substType(t.ElemType, subst), t.ArrayOrigin)
	case ir.KindTuple:
		elems := make([]*ir.IrType, len(t.TupleElems))
		for i, e := range t.TupleElems {
			elems[i] = substType(e, subst)
		}
		return &ir.IrType{Kind: ir.KindTuple, TupleElems: elems}
	case ir.KindFunction:
		params := make([]*ir.IrType, len(t.FuncParams))
		for i, p := range t.FuncParams {
			params[i] = substType(p, subst)
		}
		return &ir.IrType{Kind: ir.KindFunction, FuncParams: params, FuncReturn: substType(t.FuncReturn, subst)}
	case ir.KindObject:
		members := make([]ir.ObjectMember, len(t.ObjectMembers))
		for i, m := range t.ObjectMembers {
			members[i] = ir.ObjectMember{Name: m.Name, Type: substType(m.Type, subst), Optional: m.Optional, Readonly: m.Readonly}
		}
		return &ir.IrType{Kind: ir.KindObject, ObjectMembers: members}
	case ir.KindDictionary:
		return &ir.IrType{Kind: ir.KindDictionary, DictKey: substType(t.DictKey, subst), DictValue: substType(t.DictValue, subst)}
	case ir.KindUnion:
		return &ir.IrType{Kind: ir.KindUnion, Members: substTypeAll(t.Members, subst)}
	case ir.KindIntersection:
		return &ir.IrType{Kind: ir.KindIntersection, Members: substTypeAll(t.Members, subst)}
	default:
		return t
	}
}

func substTypeAll(ts []*ir.IrType, subst map[string]*ir.IrType) []*ir.IrType {
	if ts == nil {
		return nil
	}
	out := make([]*ir.IrType, len(ts))
	for i, t := range ts {
		out[i] = substType(t, subst)
	}
	return out
}
