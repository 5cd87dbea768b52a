package typesystem

import (
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
)

// utilityTypeNames are the TypeScript-style utility types spec.md §C adds
// (distillation dropped them; DESIGN.md records the Open Question
// resolution this implements: "expands structurally when concrete, falls
// through to plain reference when the argument is itself an unresolved
// type parameter").
var utilityTypeNames = map[string]bool{
	"Partial": true, "Required": true, "Readonly": true,
	"Pick": true, "Omit": true, "Record": true,
	"NonNullable": true, "Exclude": true, "Extract": true,
}

// expandUtilityType handles the named utility types. ok is false when
// t.Name does not name a utility type at all, in which case the caller
// falls through to ordinary catalog resolution.
func (s *System) expandUtilityType(t *surface.NamedTypeSyntax, typeParams []string, visiting map[string]bool) (*ir.IrType, bool) {
	if !utilityTypeNames[t.Name] {
		return nil, false
	}
	if len(t.Arguments) == 0 {
		return ir.TypeUnknown, true
	}

	shape := s.structuralShapeOf(t.Arguments[0], typeParams, visiting)
	if shape == nil {
		// The argument is itself an unresolved type parameter or otherwise
		// not reducible to a concrete object shape: fall through to a plain
		// reference, per the Open Question resolution (no diagnostic).
		args := make([]*ir.IrType, len(t.Arguments))
		for i, a := range t.Arguments {
			args[i] = s.typeFromSyntaxNode(a, typeParams, visiting)
		}
		typeId, _ := s.catalog.ResolveTsNameArity(t.Name, len(t.Arguments))
		return ir.NewReference(t.Name, args, typeId), true
	}

	switch t.Name {
	case "Partial":
		return mapMembers(shape, func(m ir.ObjectMember) ir.ObjectMember {
			m.Optional = true
			return m
		}), true
	case "Required":
		return mapMembers(shape, func(m ir.ObjectMember) ir.ObjectMember {
			m.Optional = false
			return m
		}), true
	case "Readonly":
		return mapMembers(shape, func(m ir.ObjectMember) ir.ObjectMember {
			m.Readonly = true
			return m
		}), true
	case "Pick":
		keys := s.literalKeysOf(t.Arguments, 1, typeParams, visiting)
		return filterMembers(shape, func(m ir.ObjectMember) bool { return keys[m.Name] }), true
	case "Omit":
		keys := s.literalKeysOf(t.Arguments, 1, typeParams, visiting)
		return filterMembers(shape, func(m ir.ObjectMember) bool { return !keys[m.Name] }), true
	case "Record":
		// Record<K, V> is not itself a Partial-style transform of an object
		// shape; it is a dictionary. Handled here only when Arguments[0]
		// happened to be object-shaped (a user error); ordinary Record<K,V>
		// never reaches structuralShapeOf successfully and falls through
		// above to the plain-reference branch resolved by typecatalog's
		// Record->IDictionary_2 facade.
		return nil, false
	case "NonNullable":
		return stripNullish(shape), true
	case "Exclude":
		return shape, true
	case "Extract":
		return shape, true
	}
	return nil, false
}

// structuralShapeOf resolves a type-syntax argument to its underlying
// KindObject IrType when one exists: directly for an inline object type,
// or by following an interface/type-alias/class name to its declared
// shape. Returns nil when no concrete object shape is reachable.
func (s *System) structuralShapeOf(t surface.TypeSyntax, typeParams []string, visiting map[string]bool) *ir.IrType {
	switch node := t.(type) {
	case *surface.ObjectTypeSyntax:
		return s.objectTypeFromSyntax(node, typeParams, visiting)
	case *surface.NamedTypeSyntax:
		if inSet(node.Name, typeParams) {
			return nil
		}
		if info, ok := s.nominal.byName[node.Name]; ok {
			return s.objectShapeFromNominal(info, typeParams)
		}
		if declId, ok := s.b.ResolveTopLevelName(node.Name); ok {
			if decl, ok := s.b.Registries().Decl(declId); ok {
				if alias, ok := decl.Node.(*surface.TypeAliasDecl); ok {
					return s.structuralShapeOf(alias.Value, typeParams, visiting)
				}
			}
		}
	}
	return nil
}

func (s *System) objectShapeFromNominal(info *nominalInfo, typeParams []string) *ir.IrType {
	members := make([]ir.ObjectMember, 0, len(info.properties))
	for _, p := range info.properties {
		var pt *ir.IrType = ir.TypeAny
		if p.Type != nil {
			pt = s.typeFromSyntaxNode(p.Type, info.typeParams, make(map[string]bool))
		}
		members = append(members, ir.ObjectMember{Name: p.Name, Type: pt, Optional: p.Optional, Readonly: p.Readonly})
	}
	return &ir.IrType{Kind: ir.KindObject, ObjectMembers: members}
}

func mapMembers(shape *ir.IrType, f func(ir.ObjectMember) ir.ObjectMember) *ir.IrType {
	out := make([]ir.ObjectMember, len(shape.ObjectMembers))
	for i, m := range shape.ObjectMembers {
		out[i] = f(m)
	}
	return &ir.IrType{Kind: ir.KindObject, ObjectMembers: out}
}

func filterMembers(shape *ir.IrType, keep func(ir.ObjectMember) bool) *ir.IrType {
	out := make([]ir.ObjectMember, 0, len(shape.ObjectMembers))
	for _, m := range shape.ObjectMembers {
		if keep(m) {
			out = append(out, m)
		}
	}
	return &ir.IrType{Kind: ir.KindObject, ObjectMembers: out}
}

// literalKeysOf reads string-literal-type arguments (or a union of them)
// starting at index idx, as Pick/Omit's second type argument spells member
// names (`Pick<T, "a" | "b">`).
func (s *System) literalKeysOf(args []surface.TypeSyntax, idx int, typeParams []string, visiting map[string]bool) map[string]bool {
	keys := make(map[string]bool)
	if idx >= len(args) {
		return keys
	}
	collectLiteralKeys(args[idx], keys)
	return keys
}

func collectLiteralKeys(t surface.TypeSyntax, keys map[string]bool) {
	switch node := t.(type) {
	case *surface.LiteralTypeSyntax:
		keys[unquoteLiteral(node.Lit.Raw)] = true
	case *surface.UnionTypeSyntax:
		for _, m := range node.Types {
			collectLiteralKeys(m, keys)
		}
	}
}

// unquoteLiteral strips the surrounding quotes a string-literal type's raw
// lexeme carries (`"a"` -> `a`) so it compares equal to a bare member name.
func unquoteLiteral(raw string) string {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		return raw[1 : len(raw)-1]
	}
	return raw
}

func stripNullish(shape *ir.IrType) *ir.IrType {
	if shape.Kind != ir.KindUnion {
		return shape
	}
	kept := make([]*ir.IrType, 0, len(shape.Members))
	for _, m := range shape.Members {
		if m.Kind == ir.KindPrimitive && (m.Primitive == ir.PrimNull || m.Primitive == ir.PrimUndefined) {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return &ir.IrType{Kind: ir.KindUnion, Members: kept}
}
