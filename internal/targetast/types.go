// Package targetast implements spec.md §4.9's closed target-language AST:
// a strongly-typed tree mirroring TargetLang's syntax at the level of
// types, expressions, statements and declarations, with no rawType/
// rawExpression escape hatch. Every construct internal/emitter can lower
// an IrModule into has a named node here.
//
// Grounded in shape on the teacher's internal/ast package (a closed
// node set behind marker interfaces, one file per concern), generalized
// to a second AST layer for the output language rather than the input
// one. Unlike internal/ir, these nodes carry no Accept(Visitor): nothing
// but the printer walks this tree, and the printer uses the same
// hand-written type-switch idiom internal/narrowing, internal/anonobj,
// internal/mono and internal/numeric already use over internal/ir.
package targetast

// Primitive enumerates TargetLang's built-in value types (spec.md §4.9's
// lowering table: string/int/number/boolean/char -> string/int/double/
// bool/char).
type Primitive int

const (
	PrimString Primitive = iota
	PrimInt
	PrimDouble
	PrimBool
	PrimChar
	PrimVoid
	PrimObject
	PrimDynamic
)

// TypeKind discriminates a Type's variant.
type TypeKind int

const (
	TypePrimitive TypeKind = iota
	TypeNamed                // a nominal type, optionally generic: Name<Args...>
	TypeArray                // Elem[]
	TypeTuple                // (T1, T2, ...)
	TypeNullable             // Elem?
	TypeFunc                 // Action<...>/Func<...>
)

// Type is TargetLang's closed type-syntax sum.
type Type struct {
	Kind TypeKind

	Primitive Primitive // TypePrimitive

	Name string  // TypeNamed
	Args []*Type // TypeNamed (generic arguments), TypeFunc (param types then, for Func, return type last)

	Elem *Type // TypeArray, TypeNullable

	Tuple []*Type // TypeTuple

	HasReturn bool // TypeFunc: true selects Func<...,TReturn>, false selects Action<...>
}

func NamedType(name string, args ...*Type) *Type {
	return &Type{Kind: TypeNamed, Name: name, Args: args}
}

func ArrayType(elem *Type) *Type { return &Type{Kind: TypeArray, Elem: elem} }

func NullableType(elem *Type) *Type { return &Type{Kind: TypeNullable, Elem: elem} }

var (
	String  = &Type{Kind: TypePrimitive, Primitive: PrimString}
	Int     = &Type{Kind: TypePrimitive, Primitive: PrimInt}
	Double  = &Type{Kind: TypePrimitive, Primitive: PrimDouble}
	Bool    = &Type{Kind: TypePrimitive, Primitive: PrimBool}
	Char    = &Type{Kind: TypePrimitive, Primitive: PrimChar}
	Void    = &Type{Kind: TypePrimitive, Primitive: PrimVoid}
	Object  = &Type{Kind: TypePrimitive, Primitive: PrimObject}
	Dynamic = &Type{Kind: TypePrimitive, Primitive: PrimDynamic}
)
