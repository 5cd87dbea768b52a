package surface

// NamedTypeSyntax is a reference to a named type, possibly with type
// arguments (`IList<T>`, `Person`, `Partial<Foo>`).
type NamedTypeSyntax struct {
	Sp        Span
	Name      string
	Arguments []TypeSyntax
}

func (t *NamedTypeSyntax) Span() Span     { return t.Sp }
func (t *NamedTypeSyntax) typeSyntaxNode() {}

// ArrayTypeSyntax is `T[]`.
type ArrayTypeSyntax struct {
	Sp      Span
	Element TypeSyntax
}

func (t *ArrayTypeSyntax) Span() Span     { return t.Sp }
func (t *ArrayTypeSyntax) typeSyntaxNode() {}

// TupleTypeSyntax is `[T, U, ...]`.
type TupleTypeSyntax struct {
	Sp       Span
	Elements []TypeSyntax
}

func (t *TupleTypeSyntax) Span() Span     { return t.Sp }
func (t *TupleTypeSyntax) typeSyntaxNode() {}

// FunctionTypeSyntax is `(a: A, b: B) => R`.
type FunctionTypeSyntax struct {
	Sp         Span
	Params     []*Param
	ReturnType TypeSyntax
}

func (t *FunctionTypeSyntax) Span() Span     { return t.Sp }
func (t *FunctionTypeSyntax) typeSyntaxNode() {}

// ObjectTypeMember is one member of an ObjectTypeSyntax (the structural
// shape a type alias, an inline annotation, or a structural constraint
// names).
type ObjectTypeMember struct {
	Name     string
	Type     TypeSyntax
	Optional bool
	Readonly bool
}

// ObjectTypeSyntax is `{ x: number; y: string }` — a structural object
// type, the source of both anonymous object synthesis context types and
// structural-constraint type parameters.
type ObjectTypeSyntax struct {
	Sp      Span
	Members []ObjectTypeMember
}

func (t *ObjectTypeSyntax) Span() Span     { return t.Sp }
func (t *ObjectTypeSyntax) typeSyntaxNode() {}

// DictionaryTypeSyntax is `Record<K, V>` / `{ [key: K]: V }` in its
// index-signature spelling.
type DictionaryTypeSyntax struct {
	Sp    Span
	Key   TypeSyntax
	Value TypeSyntax
}

func (t *DictionaryTypeSyntax) Span() Span     { return t.Sp }
func (t *DictionaryTypeSyntax) typeSyntaxNode() {}

// UnionTypeSyntax is `A | B | C`.
type UnionTypeSyntax struct {
	Sp    Span
	Types []TypeSyntax
}

func (t *UnionTypeSyntax) Span() Span     { return t.Sp }
func (t *UnionTypeSyntax) typeSyntaxNode() {}

// IntersectionTypeSyntax is `A & B`.
type IntersectionTypeSyntax struct {
	Sp    Span
	Types []TypeSyntax
}

func (t *IntersectionTypeSyntax) Span() Span     { return t.Sp }
func (t *IntersectionTypeSyntax) typeSyntaxNode() {}

// LiteralTypeSyntax is a literal type (`"a"`, `1`, `true`).
type LiteralTypeSyntax struct {
	Sp  Span
	Lit *Literal
}

func (t *LiteralTypeSyntax) Span() Span     { return t.Sp }
func (t *LiteralTypeSyntax) typeSyntaxNode() {}

// TypePredicateSyntax is the `x is T` return-type annotation of a
// user-defined type guard.
type TypePredicateSyntax struct {
	Sp         Span
	ParamName  string
	AssertedType TypeSyntax
}

func (t *TypePredicateSyntax) Span() Span     { return t.Sp }
func (t *TypePredicateSyntax) typeSyntaxNode() {}

// GenericConstraintSyntax is a structural constraint on a type parameter
// (`T extends {id: number; name: string}`), captured verbatim as the
// TypeParam.Constraint of the owning declaration/signature.
type GenericConstraintSyntax = ObjectTypeSyntax
