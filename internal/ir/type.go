// Package ir implements the pure-data intermediate representation of
// spec.md §3: a sum-typed tree of statements, expressions, and types. Every
// node is immutable once built (spec.md INV-0/INV-1/INV-2/INV-3).
//
// The shape is a direct generalization of the teacher's internal/ast
// package: a closed set of node structs implementing a shared marker
// interface, dispatched by type switch or Accept(Visitor) rather than by
// an open class hierarchy (spec.md §9 "Sum types vs inheritance").
package ir

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsoniclang/tsonic/internal/ids"
)

// TypeKind discriminates an IrType's variant, exactly as spec.md §3 lists.
type TypeKind int

const (
	KindPrimitive TypeKind = iota
	KindReference
	KindTypeParameter
	KindArray
	KindTuple
	KindFunction
	KindObject
	KindDictionary
	KindUnion
	KindIntersection
	KindLiteral
	KindAny
	KindUnknown
	KindVoid
	KindNever
)

// Primitive enumerates the IR's primitive kinds. INV-3: number and int are
// distinct and never unified.
type Primitive int

const (
	PrimString Primitive = iota
	PrimNumber
	PrimInt
	PrimChar
	PrimBoolean
	PrimNull
	PrimUndefined
)

func (p Primitive) String() string {
	switch p {
	case PrimString:
		return "string"
	case PrimNumber:
		return "number"
	case PrimInt:
		return "int"
	case PrimChar:
		return "char"
	case PrimBoolean:
		return "boolean"
	case PrimNull:
		return "null"
	case PrimUndefined:
		return "undefined"
	default:
		return "unknown-primitive"
	}
}

// IrType is the sum type for every surface type surfaced in the IR. It is
// widely shared by reference (spec.md §9 "Shared types without ownership
// cycles"); two IrType values are structurally equal iff stableIrTypeKey
// produces the same string for both.
type IrType struct {
	Kind TypeKind

	// KindPrimitive
	Primitive Primitive

	// KindReference
	RefName string
	RefArgs []*IrType
	RefType ids.TypeId // InvalidType when the reference could not be normalized
	// IsNominalizedInterface is true when this reference names a
	// user-declared (surface.InterfaceDecl) interface, which spec.md §4.9
	// nominalizes to a class rather than a real target interface. A class
	// cannot legally `implements` one (see diagnostics.CodeImplementsNominalized).
	IsNominalizedInterface bool

	// KindTypeParameter
	ParamName string

	// KindArray
	ElemType *IrType
	ArrayOrigin string // "explicit" | "inferred", per spec.md §4.9 lowering rules

	// KindTuple
	TupleElems []*IrType

	// KindFunction
	FuncParams []*IrType
	FuncReturn *IrType

	// KindObject (structural)
	ObjectMembers []ObjectMember

	// KindDictionary
	DictKey   *IrType
	DictValue *IrType

	// KindUnion / KindIntersection
	Members []*IrType

	// KindLiteral
	LiteralValue string

	// Any of KindAny/KindUnknown/KindVoid/KindNever carry no payload.
}

// ObjectMember is one property of a structural object IrType.
type ObjectMember struct {
	Name     string
	Type     *IrType
	Optional bool
	Readonly bool
}

// Well-known singletons to avoid re-allocating the no-payload kinds.
var (
	TypeString    = &IrType{Kind: KindPrimitive, Primitive: PrimString}
	TypeNumber    = &IrType{Kind: KindPrimitive, Primitive: PrimNumber}
	TypeInt       = &IrType{Kind: KindPrimitive, Primitive: PrimInt}
	TypeChar      = &IrType{Kind: KindPrimitive, Primitive: PrimChar}
	TypeBoolean   = &IrType{Kind: KindPrimitive, Primitive: PrimBoolean}
	TypeNull      = &IrType{Kind: KindPrimitive, Primitive: PrimNull}
	TypeUndefined = &IrType{Kind: KindPrimitive, Primitive: PrimUndefined}
	TypeAny       = &IrType{Kind: KindAny}
	TypeUnknown   = &IrType{Kind: KindUnknown}
	TypeVoid      = &IrType{Kind: KindVoid}
	TypeNever     = &IrType{Kind: KindNever}
)

// IsUnknown reports whether t is the poison value spec.md §1/§7 describes.
func (t *IrType) IsUnknown() bool { return t != nil && t.Kind == KindUnknown }

// IsAny reports whether t is the `any` escape hatch (only ever legitimate
// when the source said `any`; see INV in spec.md §8).
func (t *IrType) IsAny() bool { return t != nil && t.Kind == KindAny }

// NewArray builds an array IrType with an explicit origin, per spec.md
// §4.9's array lowering rule (explicit and inferred arrays both lower to
// native target arrays — Origin is retained only for diagnostics/tests).
func NewArray(elem *IrType, origin string) *IrType {
	return &IrType{Kind: KindArray, ElemType: elem, ArrayOrigin: origin}
}

// NewReference builds a nominal/generic reference type.
func NewReference(name string, args []*IrType, typeId ids.TypeId) *IrType {
	return &IrType{Kind: KindReference, RefName: name, RefArgs: args, RefType: typeId}
}

// NewTypeParameter builds a reference to an in-scope generic type
// parameter (used both for unresolved generics and for the rigid type
// parameters monomorphization substitutes away).
func NewTypeParameter(name string) *IrType {
	return &IrType{Kind: KindTypeParameter, ParamName: name}
}

// stableIrTypeKey produces a pure, total, deterministic serialization of an
// IrType (spec.md §8 universal invariant). Object member lists are sorted
// by name first so that two structurally identical but differently
// ordered object literals hash identically — this is also the backbone of
// internal/anonobj's shape-signature deduplication.
func stableIrTypeKey(t *IrType, visiting map[*IrType]bool) string {
	if t == nil {
		return "<nil>"
	}
	if visiting == nil {
		visiting = make(map[*IrType]bool)
	}
	if visiting[t] {
		return "<cycle>"
	}
	visiting[t] = true
	defer delete(visiting, t)

	switch t.Kind {
	case KindPrimitive:
		return "prim:" + t.Primitive.String()
	case KindReference:
		var b strings.Builder
		b.WriteString("ref:")
		b.WriteString(t.RefName)
		if len(t.RefArgs) > 0 {
			b.WriteString("<")
			for i, a := range t.RefArgs {
				if i > 0 {
					b.WriteString(",")
				}
				b.WriteString(stableIrTypeKey(a, visiting))
			}
			b.WriteString(">")
		}
		return b.String()
	case KindTypeParameter:
		return "tparam:" + t.ParamName
	case KindArray:
		return "array:" + stableIrTypeKey(t.ElemType, visiting)
	case KindTuple:
		parts := make([]string, len(t.TupleElems))
		for i, e := range t.TupleElems {
			parts[i] = stableIrTypeKey(e, visiting)
		}
		return "tuple:(" + strings.Join(parts, ",") + ")"
	case KindFunction:
		parts := make([]string, len(t.FuncParams))
		for i, p := range t.FuncParams {
			parts[i] = stableIrTypeKey(p, visiting)
		}
		return "fn:(" + strings.Join(parts, ",") + ")->" + stableIrTypeKey(t.FuncReturn, visiting)
	case KindObject:
		members := make([]ObjectMember, len(t.ObjectMembers))
		copy(members, t.ObjectMembers)
		sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
		var b strings.Builder
		b.WriteString("obj:{")
		for i, m := range members {
			if i > 0 {
				b.WriteString(";")
			}
			fmt.Fprintf(&b, "%s%s%s:%s", m.Name, optFlag(m.Optional), roFlag(m.Readonly), stableIrTypeKey(m.Type, visiting))
		}
		b.WriteString("}")
		return b.String()
	case KindDictionary:
		return "dict:[" + stableIrTypeKey(t.DictKey, visiting) + "]" + stableIrTypeKey(t.DictValue, visiting)
	case KindUnion:
		return joinedKeys("union", t.Members, visiting)
	case KindIntersection:
		return joinedKeys("isect", t.Members, visiting)
	case KindLiteral:
		return "lit:" + t.LiteralValue
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindVoid:
		return "void"
	case KindNever:
		return "never"
	default:
		return "invalid-kind"
	}
}

func joinedKeys(label string, members []*IrType, visiting map[*IrType]bool) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = stableIrTypeKey(m, visiting)
	}
	sort.Strings(parts)
	return label + ":[" + strings.Join(parts, "|") + "]"
}

func optFlag(b bool) string {
	if b {
		return "?"
	}
	return ""
}

func roFlag(b bool) string {
	if b {
		return "#ro"
	}
	return ""
}

// StableIrTypeKey is the exported entry point spec.md §8 names directly.
func StableIrTypeKey(t *IrType) string { return stableIrTypeKey(t, nil) }

// TypesEqual reports structural equality via StableIrTypeKey.
func TypesEqual(a, b *IrType) bool { return StableIrTypeKey(a) == StableIrTypeKey(b) }

func (t *IrType) String() string { return StableIrTypeKey(t) }
