package typesystem

import (
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
	"github.com/tsoniclang/tsonic/internal/typecatalog"
)

// nominalInfo is one class/interface's shape, as the TypeSystem needs it
// for inheritance-aware member lookup (spec.md §4.3: "the TypeSystem owns
// inheritance-aware member lookup... walks the catalog's inheritance
// chain"). This is the NominalEnv the spec refers to.
type nominalInfo struct {
	declId     ids.DeclId
	isClass    bool
	typeParams []string
	baseName   string
	baseArgs   []surface.TypeSyntax
	implements []surface.TypeSyntax
	properties []*surface.PropertyMember
	methods    []*surface.MethodMember
}

type nominalEnv struct {
	byName map[string]*nominalInfo
}

func buildNominalEnv(b *binding.Binding) *nominalEnv {
	env := &nominalEnv{byName: make(map[string]*nominalInfo)}
	for _, d := range b.Registries().AllDecls() {
		switch node := d.Node.(type) {
		case *surface.ClassDecl:
			env.byName[d.Name] = &nominalInfo{
				declId:     d.Id,
				isClass:    true,
				typeParams: typeParamNames(node.TypeParams),
				baseName:   namedTypeName(node.Extends),
				baseArgs:   namedTypeArgs(node.Extends),
				implements: node.Implements,
				properties: node.Properties,
				methods:    node.Methods,
			}
		case *surface.InterfaceDecl:
			env.byName[d.Name] = &nominalInfo{
				declId:     d.Id,
				isClass:    false,
				typeParams: typeParamNames(node.TypeParams),
				implements: node.Extends,
				properties: node.Properties,
				methods:    node.Methods,
			}
		}
	}
	return env
}

func typeParamNames(tps []*surface.TypeParam) []string {
	names := make([]string, len(tps))
	for i, tp := range tps {
		names[i] = tp.Name
	}
	return names
}

func namedTypeName(t surface.TypeSyntax) string {
	if n, ok := t.(*surface.NamedTypeSyntax); ok {
		return n.Name
	}
	return ""
}

func namedTypeArgs(t surface.TypeSyntax) []surface.TypeSyntax {
	if n, ok := t.(*surface.NamedTypeSyntax); ok {
		return n.Arguments
	}
	return nil
}

func (e *nominalEnv) typeParamsOf(name string) []typecatalog.TypeParameterInfo {
	info, ok := e.byName[name]
	if !ok {
		return nil
	}
	out := make([]typecatalog.TypeParameterInfo, len(info.typeParams))
	for i, n := range info.typeParams {
		out[i] = typecatalog.TypeParameterInfo{Name: n}
	}
	return out
}

// namedTypeFromSyntax converts a NamedTypeSyntax, handling: in-scope
// generic type parameters, utility types (Partial/Required/Readonly/Pick/
// Omit/Record/NonNullable/Exclude/Extract — spec.md §C / DESIGN.md Open
// Question resolution), and plain nominal/catalog references.
func (s *System) namedTypeFromSyntax(t *surface.NamedTypeSyntax, typeParams []string, visiting map[string]bool) *ir.IrType {
	if inSet(t.Name, typeParams) {
		return ir.NewTypeParameter(t.Name)
	}

	switch t.Name {
	case "string":
		return ir.TypeString
	case "number":
		return ir.TypeNumber
	case "int":
		return ir.TypeInt
	case "char":
		return ir.TypeChar
	case "boolean":
		return ir.TypeBoolean
	case "null":
		return ir.TypeNull
	case "undefined":
		return ir.TypeUndefined
	case "any":
		return ir.TypeAny
	case "unknown":
		return ir.TypeUnknown
	case "void":
		return ir.TypeVoid
	case "never":
		return ir.TypeNever
	}

	if expanded, ok := s.expandUtilityType(t, typeParams, visiting); ok {
		return expanded
	}

	args := make([]*ir.IrType, len(t.Arguments))
	for i, a := range t.Arguments {
		args[i] = s.typeFromSyntaxNode(a, typeParams, visiting)
	}

	typeId, _ := s.catalog.ResolveTsNameArity(t.Name, len(t.Arguments))
	ref := ir.NewReference(t.Name, args, typeId)
	if info, ok := s.nominal.byName[t.Name]; ok && !info.isClass {
		ref.IsNominalizedInterface = true
	}
	return ref
}

// --- typeOfMember -----------------------------------------------------------

// TypeOfMember implements spec.md §4.3's
// `typeOfMember(receiverType, MemberRef) → IrType`. It walks the nominal
// inheritance chain starting at receiverType, substituting the declaring
// type's parameters from its position in the chain along with receiver's
// own type arguments, and bridges primitive receivers to their canonical
// nominal companion (spec.md: "string.length via a canonical String
// nominal").
func (s *System) TypeOfMember(receiver *ir.IrType, memberName string) *ir.IrType {
	key := memberKey{receiver: ir.StableIrTypeKey(receiver), member: memberName}
	if t, ok := s.c.memberDeclaredType[key]; ok {
		return t
	}
	t := s.typeOfMemberUncached(receiver, memberName)
	s.c.memberDeclaredType[key] = t
	return t
}

func (s *System) typeOfMemberUncached(receiver *ir.IrType, memberName string) *ir.IrType {
	name, args := s.normalizeReceiverForMemberLookup(receiver)
	if name == "" {
		return ir.TypeUnknown
	}
	subst := map[string]*ir.IrType{}
	return s.lookupMemberThroughChain(name, args, memberName, subst, make(map[string]bool))
}

// normalizeReceiverForMemberLookup bridges primitive receivers onto their
// canonical nominal companion name.
func (s *System) normalizeReceiverForMemberLookup(receiver *ir.IrType) (string, []*ir.IrType) {
	if receiver == nil {
		return "", nil
	}
	switch receiver.Kind {
	case ir.KindReference:
		return receiver.RefName, receiver.RefArgs
	case ir.KindPrimitive:
		switch receiver.Primitive {
		case ir.PrimString:
			return "String", nil
		case ir.PrimChar:
			return "Char", nil
		case ir.PrimNumber:
			return "Double", nil
		case ir.PrimInt:
			return "Int32", nil
		case ir.PrimBoolean:
			return "Boolean", nil
		}
	case ir.KindArray:
		return "IList", []*ir.IrType{receiver.ElemType}
	}
	return "", nil
}

func (s *System) lookupMemberThroughChain(typeName string, receiverArgs []*ir.IrType, memberName string, subst map[string]*ir.IrType, visited map[string]bool) *ir.IrType {
	if visited[typeName] {
		return ir.TypeUnknown
	}
	visited[typeName] = true

	info, ok := s.nominal.byName[typeName]
	if !ok {
		return ir.TypeUnknown
	}

	localSubst := substFromArgs(info.typeParams, receiverArgs)

	for _, p := range info.properties {
		if p.Name == memberName {
			t := ir.TypeAny
			if p.Type != nil {
				t = s.TypeFromSyntax(s.captureOnce(p.Type), info.typeParams)
			}
			return applySubst(t, localSubst)
		}
	}
	for _, m := range info.methods {
		if m.Name == memberName {
			return applySubst(s.methodType(m, info.typeParams), localSubst)
		}
	}

	if info.baseName != "" {
		baseArgs := make([]*ir.IrType, len(info.baseArgs))
		for i, a := range info.baseArgs {
			baseArgs[i] = s.typeFromSyntaxNode(a, info.typeParams, make(map[string]bool))
			baseArgs[i] = applySubst(baseArgs[i], localSubst)
		}
		if t := s.lookupMemberThroughChain(info.baseName, baseArgs, memberName, subst, visited); !t.IsUnknown() {
			return t
		}
	}
	for _, iface := range info.implements {
		ifaceName := namedTypeName(iface)
		ifaceArgSyntax := namedTypeArgs(iface)
		ifaceArgs := make([]*ir.IrType, len(ifaceArgSyntax))
		for i, a := range ifaceArgSyntax {
			ifaceArgs[i] = applySubst(s.typeFromSyntaxNode(a, info.typeParams, make(map[string]bool)), localSubst)
		}
		if t := s.lookupMemberThroughChain(ifaceName, ifaceArgs, memberName, subst, visited); !t.IsUnknown() {
			return t
		}
	}
	return ir.TypeUnknown
}

// ResolveMemberSignature finds the SignatureId for a method call whose
// callee is a member expression (spec.md §4.3: resolveCall needs a SigId
// regardless of whether the callee was a plain identifier or obj.method).
// It walks the same nominal inheritance chain as typeOfMember but returns
// the method's own SignatureId (via Binding's DeclId reverse index)
// instead of its type.
func (s *System) ResolveMemberSignature(receiver *ir.IrType, memberName string) ids.SignatureId {
	name, _ := s.normalizeReceiverForMemberLookup(receiver)
	if name == "" {
		return ids.InvalidSignature
	}
	m := s.lookupMethodNodeThroughChain(name, memberName, make(map[string]bool))
	if m == nil {
		return ids.InvalidSignature
	}
	declId, ok := s.b.DeclIdOfNode(m)
	if !ok {
		return ids.InvalidSignature
	}
	return s.b.SignatureIdOfDecl(declId)
}

func (s *System) lookupMethodNodeThroughChain(typeName, memberName string, visited map[string]bool) *surface.MethodMember {
	if visited[typeName] {
		return nil
	}
	visited[typeName] = true

	info, ok := s.nominal.byName[typeName]
	if !ok {
		return nil
	}
	for _, m := range info.methods {
		if m.Name == memberName {
			return m
		}
	}
	if info.baseName != "" {
		if m := s.lookupMethodNodeThroughChain(info.baseName, memberName, visited); m != nil {
			return m
		}
	}
	for _, iface := range info.implements {
		if m := s.lookupMethodNodeThroughChain(namedTypeName(iface), memberName, visited); m != nil {
			return m
		}
	}
	return nil
}

func (s *System) methodType(m *surface.MethodMember, typeParams []string) *ir.IrType {
	params := make([]*ir.IrType, len(m.Params))
	for i, p := range m.Params {
		_, inner := normalizeParamModeLocal(p.Type)
		if inner != nil {
			params[i] = s.typeFromSyntaxNode(inner, typeParams, make(map[string]bool))
		} else {
			params[i] = ir.TypeAny
		}
	}
	ret := ir.TypeVoid
	if m.ReturnType != nil {
		if pred, ok := m.ReturnType.(*surface.TypePredicateSyntax); ok {
			ret = ir.TypeBoolean
			_ = pred
		} else {
			ret = s.typeFromSyntaxNode(m.ReturnType, typeParams, make(map[string]bool))
		}
	}
	return &ir.IrType{Kind: ir.KindFunction, FuncParams: params, FuncReturn: ret}
}

// captureOnce is a convenience for member lookups that only have a raw
// surface.TypeSyntax in hand (from a nominalInfo's cached property list)
// rather than an already-captured TypeSyntaxId; it captures on demand.
func (s *System) captureOnce(t surface.TypeSyntax) ids.TypeSyntaxId {
	if t == nil {
		return ids.InvalidTypeSyntax
	}
	return s.b.CaptureTypeSyntax(t)
}

func substFromArgs(paramNames []string, args []*ir.IrType) map[string]*ir.IrType {
	subst := make(map[string]*ir.IrType, len(paramNames))
	for i, name := range paramNames {
		if i < len(args) {
			subst[name] = args[i]
		}
	}
	return subst
}

// applySubst substitutes type-parameter references in t with their bound
// IrType from subst, cycle-safe via depth-based recursion over an
// immutable tree (no mutation, so no visited-set is needed beyond Go's
// own call-stack bound — type syntax trees in this language are finite
// and non-self-referential by construction).
func applySubst(t *ir.IrType, subst map[string]*ir.IrType) *ir.IrType {
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
			args[i] = applySubst(a, subst)
		}
		return ir.NewReference(t.RefName, args, t.RefType)
	case ir.KindArray:
		return ir.NewArray(applySubst(t.ElemType, subst), t.ArrayOrigin)
	case ir.KindTuple:
		elems := make([]*ir.IrType, len(t.TupleElems))
		for i, e := range t.TupleElems {
			elems[i] = applySubst(e, subst)
		}
		return &ir.IrType{Kind: ir.KindTuple, TupleElems: elems}
	case ir.KindFunction:
		params := make([]*ir.IrType, len(t.FuncParams))
		for i, p := range t.FuncParams {
			params[i] = applySubst(p, subst)
		}
		return &ir.IrType{Kind: ir.KindFunction, FuncParams: params, FuncReturn: applySubst(t.FuncReturn, subst)}
	case ir.KindObject:
		members := make([]ir.ObjectMember, len(t.ObjectMembers))
		for i, m := range t.ObjectMembers {
			members[i] = ir.ObjectMember{Name: m.Name, Type: applySubst(m.Type, subst), Optional: m.Optional, Readonly: m.Readonly}
		}
		return &ir.IrType{Kind: ir.KindObject, ObjectMembers: members}
	case ir.KindDictionary:
		return &ir.IrType{Kind: ir.KindDictionary, DictKey: applySubst(t.DictKey, subst), DictValue: applySubst(t.DictValue, subst)}
	case ir.KindUnion:
		return &ir.IrType{Kind: ir.KindUnion, Members: applySubstAll(t.Members, subst)}
	case ir.KindIntersection:
		return &ir.IrType{Kind: ir.KindIntersection, Members: applySubstAll(t.Members, subst)}
	default:
		return t
	}
}

func applySubstAll(ts []*ir.IrType, subst map[string]*ir.IrType) []*ir.IrType {
	out := make([]*ir.IrType, len(ts))
	for i, t := range ts {
		out[i] = applySubst(t, subst)
	}
	return out
}

// normalizeParamModeLocal duplicates binding.normalizeParamMode's marker
// unwrapping so internal/typesystem need not import internal/binding's
// unexported helper; both read the same ref<T>/out<T>/inref<T> convention
// directly off surface.NamedTypeSyntax.
func normalizeParamModeLocal(t surface.TypeSyntax) (surface.ParamMode, surface.TypeSyntax) {
	named, ok := t.(*surface.NamedTypeSyntax)
	if !ok || len(named.Arguments) != 1 {
		return surface.ModeValue, t
	}
	switch named.Name {
	case "ref":
		return surface.ModeRef, named.Arguments[0]
	case "out":
		return surface.ModeOut, named.Arguments[0]
	case "inref":
		return surface.ModeIn, named.Arguments[0]
	}
	return surface.ModeValue, t
}
