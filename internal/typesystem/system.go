package typesystem

import (
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
	"github.com/tsoniclang/tsonic/internal/typecatalog"
)

// System is the sole type oracle (spec.md §4.3). Every component after
// Binding/TypeCatalog consults it instead of the surface tree directly.
type System struct {
	b       *binding.Binding
	catalog *typecatalog.Catalog
	sink    *diagnostics.Sink
	c       *caches
	nominal *nominalEnv
}

// New builds a System over an already-constructed Binding and Catalog. It
// never mutates either; it only reads through them and caches its own
// derived results.
func New(b *binding.Binding, catalog *typecatalog.Catalog, sink *diagnostics.Sink) *System {
	s := &System{b: b, catalog: catalog, sink: sink, c: newCaches()}
	s.nominal = buildNominalEnv(b)
	for _, m := range b.Registries().AllMembers() {
		s.c.nominalMemberLookup[nominalLookupKey{typeName: m.OwnerType, member: m.Name}] = m.Id
	}
	return s
}

// ResolveMemberId finds the MemberId a receiver/member-name pair resolves
// to, walking the nominal inheritance chain the same way TypeOfMember does
// (a member declared on a base class or implemented interface still
// resolves through a subclass receiver). Used by internal/irbuilder to
// populate ir.Member.Member.
func (s *System) ResolveMemberId(receiver *ir.IrType, memberName string) ids.MemberId {
	name, _ := s.normalizeReceiverForMemberLookup(receiver)
	if name == "" {
		return ids.InvalidMember
	}
	return s.resolveMemberIdThroughChain(name, memberName, make(map[string]bool))
}

func (s *System) resolveMemberIdThroughChain(typeName, memberName string, visited map[string]bool) ids.MemberId {
	if visited[typeName] {
		return ids.InvalidMember
	}
	visited[typeName] = true
	if id, ok := s.c.nominalMemberLookup[nominalLookupKey{typeName: typeName, member: memberName}]; ok {
		return id
	}
	info, ok := s.nominal.byName[typeName]
	if !ok {
		return ids.InvalidMember
	}
	if info.baseName != "" {
		if id := s.resolveMemberIdThroughChain(info.baseName, memberName, visited); id.Valid() {
			return id
		}
	}
	for _, iface := range info.implements {
		if id := s.resolveMemberIdThroughChain(namedTypeName(iface), memberName, visited); id.Valid() {
			return id
		}
	}
	return ids.InvalidMember
}

// TypeOfDecl implements spec.md §4.3's `typeOfDecl(DeclId) → IrType` — the
// declared type of a declaration, derived from its captured type-node
// syntax and never from a live symbol query.
func (s *System) TypeOfDecl(id ids.DeclId) *ir.IrType {
	if t, ok := s.c.declType[id]; ok {
		return t
	}
	t := s.typeOfDeclUncached(id)
	s.c.declType[id] = t
	return t
}

func (s *System) typeOfDeclUncached(id ids.DeclId) *ir.IrType {
	info, ok := s.b.Registries().Decl(id)
	if !ok {
		return ir.TypeUnknown
	}
	switch info.Kind {
	case binding.DeclClass, binding.DeclInterface, binding.DeclEnum:
		tp := s.nominal.typeParamsOf(info.Name)
		return ir.NewReference(info.Name, refArgsFromParams(tp), ids.InvalidType)
	case binding.DeclFunction, binding.DeclMethod:
		// A function declaration's "declared type" is its signature's
		// function type; resolveCall is the real entry point callers use,
		// but typeOfDecl still answers with the unsubstituted shape.
		return s.functionTypeOfDeclSignature(id)
	}
	if !info.TypeSyntax.Valid() {
		return ir.TypeAny
	}
	return s.TypeFromSyntax(info.TypeSyntax, nil)
}

func refArgsFromParams(tp []typecatalog.TypeParameterInfo) []*ir.IrType {
	args := make([]*ir.IrType, len(tp))
	for i, p := range tp {
		args[i] = ir.NewTypeParameter(p.Name)
	}
	return args
}

func (s *System) functionTypeOfDeclSignature(declId ids.DeclId) *ir.IrType {
	sigId := s.signatureIdOfDecl(declId)
	if !sigId.Valid() {
		return ir.TypeUnknown
	}
	raw := s.rawSignatureOf(sigId)
	if raw == nil {
		return ir.TypeUnknown
	}
	return &ir.IrType{Kind: ir.KindFunction, FuncParams: raw.paramTypes, FuncReturn: raw.returnType}
}

// signatureIdOfDecl looks up the SignatureId a function/method DeclId
// owns via Binding's reverse index.
func (s *System) signatureIdOfDecl(declId ids.DeclId) ids.SignatureId {
	return s.b.SignatureIdOfDecl(declId)
}

// --- typeFromSyntax ---------------------------------------------------------

// TypeFromSyntax implements spec.md §4.3's
// `typeFromSyntax(TypeSyntaxId) → IrType`. typeParams is the set of
// generic type parameter names currently in scope (from the enclosing
// class/interface/function/signature), so a bare reference to one of them
// converts to an ir.TypeParameter rather than a failed catalog lookup.
func (s *System) TypeFromSyntax(id ids.TypeSyntaxId, typeParams []string) *ir.IrType {
	node, ok := s.b.Registries().TypeSyntax(id)
	if !ok || node == nil {
		return ir.TypeUnknown
	}
	return s.typeFromSyntaxNode(node, typeParams, make(map[string]bool))
}

func inSet(name string, set []string) bool {
	for _, n := range set {
		if n == name {
			return true
		}
	}
	return false
}

func (s *System) typeFromSyntaxNode(node surface.TypeSyntax, typeParams []string, visiting map[string]bool) *ir.IrType {
	switch t := node.(type) {
	case *surface.NamedTypeSyntax:
		return s.namedTypeFromSyntax(t, typeParams, visiting)
	case *surface.ArrayTypeSyntax:
		elem := s.typeFromSyntaxNode(t.Element, typeParams, visiting)
		return ir.NewArray(elem, "explicit")
	case *surface.TupleTypeSyntax:
		elems := make([]*ir.IrType, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = s.typeFromSyntaxNode(e, typeParams, visiting)
		}
		return &ir.IrType{Kind: ir.KindTuple, TupleElems: elems}
	case *surface.FunctionTypeSyntax:
		params := make([]*ir.IrType, len(t.Params))
		for i, p := range t.Params {
			if p.Type != nil {
				params[i] = s.typeFromSyntaxNode(p.Type, typeParams, visiting)
			} else {
				params[i] = ir.TypeAny
			}
		}
		ret := ir.TypeVoid
		if t.ReturnType != nil {
			ret = s.typeFromSyntaxNode(t.ReturnType, typeParams, visiting)
		}
		return &ir.IrType{Kind: ir.KindFunction, FuncParams: params, FuncReturn: ret}
	case *surface.ObjectTypeSyntax:
		return s.objectTypeFromSyntax(t, typeParams, visiting)
	case *surface.DictionaryTypeSyntax:
		key := s.typeFromSyntaxNode(t.Key, typeParams, visiting)
		val := s.typeFromSyntaxNode(t.Value, typeParams, visiting)
		return &ir.IrType{Kind: ir.KindDictionary, DictKey: key, DictValue: val}
	case *surface.UnionTypeSyntax:
		members := make([]*ir.IrType, len(t.Types))
		for i, m := range t.Types {
			members[i] = s.typeFromSyntaxNode(m, typeParams, visiting)
		}
		return &ir.IrType{Kind: ir.KindUnion, Members: members}
	case *surface.IntersectionTypeSyntax:
		members := make([]*ir.IrType, len(t.Types))
		for i, m := range t.Types {
			members[i] = s.typeFromSyntaxNode(m, typeParams, visiting)
		}
		return &ir.IrType{Kind: ir.KindIntersection, Members: members}
	case *surface.LiteralTypeSyntax:
		return &ir.IrType{Kind: ir.KindLiteral, LiteralValue: t.Lit.Raw}
	case *surface.TypePredicateSyntax:
		// A bare type predicate used as a value type position (should not
		// normally occur outside a return-type slot); resolve the asserted
		// type so downstream code at least gets something structural.
		return s.typeFromSyntaxNode(t.AssertedType, typeParams, visiting)
	}
	return ir.TypeUnknown
}

// IsNominalFacade reports whether name resolves in the catalog to a type
// drawn from an external binding manifest rather than user source (used by
// internal/irbuilder to classify imports per spec.md §4.4).
func (s *System) IsNominalFacade(name string) bool {
	id, ok := s.catalog.ResolveTsName(name)
	if !ok {
		return false
	}
	entry, ok := s.catalog.Entry(id)
	return ok && entry.FromManifest
}

func (s *System) objectTypeFromSyntax(t *surface.ObjectTypeSyntax, typeParams []string, visiting map[string]bool) *ir.IrType {
	members := make([]ir.ObjectMember, len(t.Members))
	for i, m := range t.Members {
		members[i] = ir.ObjectMember{
			Name:     m.Name,
			Type:     s.typeFromSyntaxNode(m.Type, typeParams, visiting),
			Optional: m.Optional,
			Readonly: m.Readonly,
		}
	}
	return &ir.IrType{Kind: ir.KindObject, ObjectMembers: members}
}
