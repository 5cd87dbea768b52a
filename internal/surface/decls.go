package surface

// VarDecl is `let`/`const`-style variable or constant declaration.
type VarDecl struct {
	Sp             Span
	Name           string
	Pattern        Pattern // mutually exclusive with Name, for destructuring binds
	TypeAnnotation TypeSyntax
	Init           Expr
	IsConst        bool
	Exported       bool
}

func (d *VarDecl) Span() Span { return d.Sp }
func (d *VarDecl) declNode()  {}
func (d *VarDecl) stmtNode()  {} // a var decl is also valid as a statement

// FunctionDecl is a named function declaration, including generator
// functions (IsGenerator) and trait-default-style ambient methods.
type FunctionDecl struct {
	Sp         Span
	Name       string
	TypeParams []*TypeParam
	Params     []*Param
	ReturnType TypeSyntax
	Body       *Block // nil for ambient/declare-only signatures
	IsGenerator bool
	IsAsync     bool
	Exported    bool
}

func (d *FunctionDecl) Span() Span { return d.Sp }
func (d *FunctionDecl) declNode()  {}
func (d *FunctionDecl) stmtNode()  {}

// PropertyMember is a class/interface property.
type PropertyMember struct {
	Sp       Span
	Name     string
	Type     TypeSyntax
	Optional bool
	Readonly bool
	Static   bool
}

func (m *PropertyMember) Span() Span { return m.Sp }

// MethodMember is a class/interface method.
type MethodMember struct {
	Sp         Span
	Name       string
	TypeParams []*TypeParam
	Params     []*Param
	ReturnType TypeSyntax
	Body       *Block // nil on an interface
	Static     bool
	IsGenerator bool
}

func (m *MethodMember) Span() Span { return m.Sp }

// ClassDecl is a class declaration. Implements lists the surface names of
// implemented interfaces; spec.md §4.9 requires a TSN7301 diagnostic when
// one of them was nominalized from a structural interface.
type ClassDecl struct {
	Sp         Span
	Name       string
	TypeParams []*TypeParam
	Extends    TypeSyntax // nil if no base class
	Implements []TypeSyntax
	Properties []*PropertyMember
	Methods    []*MethodMember
	Ctor       *MethodMember // nil if no explicit constructor
	Exported   bool
}

func (d *ClassDecl) Span() Span { return d.Sp }
func (d *ClassDecl) declNode()  {}
func (d *ClassDecl) stmtNode()  {}

// InterfaceDecl is a structural interface declaration.
type InterfaceDecl struct {
	Sp         Span
	Name       string
	TypeParams []*TypeParam
	Extends    []TypeSyntax
	Properties []*PropertyMember
	Methods    []*MethodMember
	Exported   bool
}

func (d *InterfaceDecl) Span() Span { return d.Sp }
func (d *InterfaceDecl) declNode()  {}
func (d *InterfaceDecl) stmtNode()  {}

// TypeAliasDecl binds a name to a type expression.
type TypeAliasDecl struct {
	Sp         Span
	Name       string
	TypeParams []*TypeParam
	Value      TypeSyntax
	Exported   bool
}

func (d *TypeAliasDecl) Span() Span { return d.Sp }
func (d *TypeAliasDecl) declNode()  {}
func (d *TypeAliasDecl) stmtNode()  {}

// EnumMember is one case of an EnumDecl.
type EnumMember struct {
	Sp    Span
	Name  string
	Value Expr // nil if auto-numbered
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	Sp       Span
	Name     string
	Members  []EnumMember
	Exported bool
}

func (d *EnumDecl) Span() Span { return d.Sp }
func (d *EnumDecl) declNode()  {}
func (d *EnumDecl) stmtNode()  {}
