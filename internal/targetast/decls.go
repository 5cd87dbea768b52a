package targetast

// Decl is a top-level or class-member declaration.
type Decl interface {
	declNode()
}

// File is one emitted compilation unit: a sorted, deduplicated using
// list (spec.md §4.9's printer requirement), a namespace, and the
// declarations it contains.
type File struct {
	Usings    []string
	Namespace string
	Decls     []Decl
}

type Param struct {
	Name     string
	Type     *Type
	Mode     ParamMode
	Optional bool
	Default  Expr
}

// TypeParamConstraint is a `where T : Bound` clause.
type TypeParamConstraint struct {
	Name   string
	Bounds []*Type
}

type ClassDecl struct {
	Name        string
	TypeParams  []string
	Constraints []TypeParamConstraint
	BaseClass   *Type
	Implements  []*Type
	IsStatic    bool
	IsSealed    bool
	IsPartial   bool
	Fields      []FieldDecl
	Properties  []PropertyDecl
	Ctors       []CtorDecl
	Methods     []MethodDecl
	Nested      []Decl // nested classes, e.g. a generator's _Generator_ wrapper
}

func (*ClassDecl) declNode() {}

type InterfaceDecl struct {
	Name       string
	TypeParams []string
	Extends    []*Type
	Properties []PropertyDecl
	Methods    []MethodSignature
}

func (*InterfaceDecl) declNode() {}

type EnumMember struct {
	Name  string
	Value Expr // nil when unspecified
}

type EnumDecl struct {
	Name    string
	Members []EnumMember
}

func (*EnumDecl) declNode() {}

// Comment is a non-code declaration: spec.md §4.9's "type aliases to
// non-structural types emit as a comment only."
type Comment struct {
	Text string
}

func (*Comment) declNode() {}

type FieldDecl struct {
	Name       string
	Type       *Type
	IsReadonly bool
	IsStatic   bool
	Init       Expr
}

// PropertyDecl is an auto-property: `{ get; }` when Readonly, `{ get;
// set; }` otherwise (spec.md §4.9: "interfaces are nominalized to
// classes with auto-properties: readonly -> get-only, optional ->
// nullable").
type PropertyDecl struct {
	Name     string
	Type     *Type
	Readonly bool
	IsStatic bool
}

// MethodSignature is an interface member: no body.
type MethodSignature struct {
	Name       string
	TypeParams []string
	Params     []Param
	ReturnType *Type
}

type MethodDecl struct {
	Name       string
	TypeParams []string
	Constraints []TypeParamConstraint
	Params     []Param
	ReturnType *Type
	Body       *Block
	IsStatic   bool
	IsAsync    bool
	IsOverride bool
}

type CtorDecl struct {
	Params   []Param
	BaseArgs []Arg // nil when no explicit base(...) call
	Body     *Block
}
