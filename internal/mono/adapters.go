package mono

import (
	"fmt"

	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// adapterSynthesizer walks every FunctionDecl/ClassDecl carrying an
// object-shape type-parameter constraint (`T extends {id: number; name:
// string}`) and materializes the nominal (__Constraint_T, __Wrapper_T)
// pair spec.md §4.7 names, recording the pair on the owning declaration's
// StructuralConstraintAdapters. Dedup is by (type-parameter name, shape
// signature) — the same pairing internal/anonobj already uses for
// structural shapes, reusing ir.StableIrTypeKey as the identity rather
// than inventing a second one.
type adapterSynthesizer struct {
	seen        map[string]ir.AdapterPair // "name|shapeKey" -> already-synthesized pair
	takenNames  map[string]bool           // interface/class names already handed out
	synthesized []ir.Statement
}

func newAdapterSynthesizer() *adapterSynthesizer {
	return &adapterSynthesizer{seen: make(map[string]ir.AdapterPair), takenNames: make(map[string]bool)}
}

func (a *adapterSynthesizer) run(module *ir.Module) {
	for _, s := range module.Statements {
		a.visitStmt(s)
	}
	module.Statements = append(module.Statements, a.synthesized...)
}

func (a *adapterSynthesizer) visitStmt(s ir.Statement) {
	switch st := s.(type) {
	case *ir.FunctionDecl:
		a.applyTo(st.TypeParams, st.TypeParamConstraints, func(m map[string]ir.AdapterPair) { st.StructuralConstraintAdapters = m }, st.Name)
	case *ir.ClassDecl:
		a.applyTo(st.TypeParams, st.TypeParamConstraints, func(m map[string]ir.AdapterPair) { st.StructuralConstraintAdapters = m }, st.Name)
		for _, meth := range st.Methods {
			a.applyTo(meth.TypeParams, meth.TypeParamConstraints, func(m map[string]ir.AdapterPair) { meth.StructuralConstraintAdapters = m }, meth.Name)
		}
		if st.Ctor != nil {
			a.applyTo(st.Ctor.TypeParams, st.Ctor.TypeParamConstraints, func(m map[string]ir.AdapterPair) { st.Ctor.StructuralConstraintAdapters = m }, st.Ctor.Name)
		}
	}
}

func (a *adapterSynthesizer) applyTo(typeParams []string, constraints map[string]*ir.IrType, assign func(map[string]ir.AdapterPair), ownerName string) {
	if len(constraints) == 0 {
		return
	}
	out := make(map[string]ir.AdapterPair)
	for _, name := range typeParams {
		constraint, ok := constraints[name]
		if !ok || constraint == nil || constraint.Kind != ir.KindObject {
			continue
		}
		out[name] = a.adapterFor(name, ownerName, constraint)
	}
	if len(out) > 0 {
		assign(out)
	}
}

func (a *adapterSynthesizer) adapterFor(paramName, ownerName string, shape *ir.IrType) ir.AdapterPair {
	shapeKey := ir.StableIrTypeKey(shape)
	dedupKey := paramName + "|" + shapeKey
	if pair, ok := a.seen[dedupKey]; ok {
		return pair
	}

	ifaceName := "__Constraint_" + paramName
	wrapperName := "__Wrapper_" + paramName
	if a.takenNames[ifaceName] || a.takenNames[wrapperName] {
		// A different shape already claimed the plain `__Constraint_T` /
		// `__Wrapper_T` names for this type-parameter spelling; qualify
		// with the owning declaration's name to avoid a silent collision.
		ifaceName = fmt.Sprintf("__Constraint_%s_%s", ownerName, paramName)
		wrapperName = fmt.Sprintf("__Wrapper_%s_%s", ownerName, paramName)
	}
	a.takenNames[ifaceName] = true
	a.takenNames[wrapperName] = true

	props := make([]ir.PropertyDecl, len(shape.ObjectMembers))
	for i, m := range shape.ObjectMembers {
		props[i] = ir.PropertyDecl{Name: m.Name, Type: m.Type, Optional: m.Optional, Readonly: m.Readonly}
	}

	iface := &ir.InterfaceDecl{Name: ifaceName, Properties: clonePropsForIface(props)}
	wrapper := &ir.ClassDecl{
		Name:       wrapperName,
		Implements: []*ir.IrType{ir.NewReference(ifaceName, nil, ids.InvalidType)},
		Properties: props,
	}
	a.synthesized = append(a.synthesized, iface, wrapper)

	pair := ir.AdapterPair{ConstraintInterfaceName: ifaceName, WrapperClassName: wrapperName}
	a.seen[dedupKey] = pair
	return pair
}

// clonePropsForIface copies props so the interface and the wrapper class
// each own an independent PropertyDecl slice (the emitter's later passes
// may annotate either with its own DeclId once it runs).
func clonePropsForIface(props []ir.PropertyDecl) []ir.PropertyDecl {
	out := make([]ir.PropertyDecl, len(props))
	copy(out, props)
	return out
}
