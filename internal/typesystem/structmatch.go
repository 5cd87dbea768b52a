package typesystem

import "github.com/tsoniclang/tsonic/internal/ir"

// structuralUnify grows subst by structurally matching template against
// actual, binding any KindTypeParameter it finds in template to the
// corresponding subtree of actual. Grounded on the teacher's unify.go
// Unify/Bind, adapted from Hindley-Milner TVars (the teacher's Type/TVar/
// Subst machinery, kept alongside as unadapted reference — see DESIGN.md)
// to substitution over declared generic parameter names (spec.md §4.3
// step 4: "ignoring unknown actuals... not an error at this layer").
//
// Conflicting bindings keep the first-seen binding; this layer never
// reports an error, matching spec.md's "not an error at this layer".
func structuralUnify(template, actual *ir.IrType, subst map[string]*ir.IrType) {
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
			structuralUnify(template.RefArgs[i], actual.RefArgs[i], subst)
		}
	case ir.KindArray:
		if actual.Kind != ir.KindArray {
			return
		}
		structuralUnify(template.ElemType, actual.ElemType, subst)
	case ir.KindTuple:
		if actual.Kind != ir.KindTuple {
			return
		}
		n := minInt(len(template.TupleElems), len(actual.TupleElems))
		for i := 0; i < n; i++ {
			structuralUnify(template.TupleElems[i], actual.TupleElems[i], subst)
		}
	case ir.KindFunction:
		if actual.Kind != ir.KindFunction {
			return
		}
		n := minInt(len(template.FuncParams), len(actual.FuncParams))
		for i := 0; i < n; i++ {
			structuralUnify(template.FuncParams[i], actual.FuncParams[i], subst)
		}
		structuralUnify(template.FuncReturn, actual.FuncReturn, subst)
	case ir.KindDictionary:
		if actual.Kind != ir.KindDictionary {
			return
		}
		structuralUnify(template.DictKey, actual.DictKey, subst)
		structuralUnify(template.DictValue, actual.DictValue, subst)
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
				structuralUnify(m.Type, at, subst)
			}
		}
	case ir.KindUnion, ir.KindIntersection:
		if actual.Kind != template.Kind {
			return
		}
		n := minInt(len(template.Members), len(actual.Members))
		for i := 0; i < n; i++ {
			structuralUnify(template.Members[i], actual.Members[i], subst)
		}
	}
}

// structuralUnifyUnique unifies template against actual into a scratch
// substitution and merges only the bindings that agree with anything
// already in subst (spec.md §4.3 step 5: "a unique unification...
// exists"). A parameter that would rebind to a different actual is
// dropped rather than merged, so a non-unique match contributes nothing.
func structuralUnifyUnique(template, actual *ir.IrType, subst map[string]*ir.IrType) {
	if template == nil || actual == nil || actual.IsUnknown() {
		return
	}
	scratch := make(map[string]*ir.IrType)
	structuralUnify(template, actual, scratch)
	for name, t := range scratch {
		if existing, ok := subst[name]; ok && ir.StableIrTypeKey(existing) != ir.StableIrTypeKey(t) {
			continue
		}
		subst[name] = t
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
