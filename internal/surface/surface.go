package surface

// Node is the base of every surface syntax node.
type Node interface {
	Span() Span
}

// Decl is a top-level or nested declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// TypeSyntax is a surface type annotation node (what gets captured as a
// TypeSyntaxId by Binding.captureTypeSyntax).
type TypeSyntax interface {
	Node
	typeSyntaxNode()
}

// Pattern is a destructuring binding pattern (`(a, b) :- pair`-style or
// `{x, y}` object patterns).
type Pattern interface {
	Node
	patternNode()
}

// --- Common fragments -------------------------------------------------

// ParamMode is the surface-level parameter passing marker, normalized by
// Binding at registration time (spec.md §4.1).
type ParamMode int

const (
	ModeValue ParamMode = iota
	ModeRef
	ModeOut
	ModeIn
)

func (m ParamMode) String() string {
	switch m {
	case ModeRef:
		return "ref"
	case ModeOut:
		return "out"
	case ModeIn:
		return "in"
	default:
		return "value"
	}
}

// TypeParam is a generic type parameter, optionally structurally
// constrained (`T extends {id: number; name: string}`).
type TypeParam struct {
	Sp         Span
	Name       string
	Constraint TypeSyntax // nil if unconstrained
}

func (t *TypeParam) Span() Span { return t.Sp }

// Param is a function/method parameter.
type Param struct {
	Sp       Span
	Name     string
	Type     TypeSyntax // nil if the parameter requires inference from context
	Mode     ParamMode  // unwrapped from ref<T>/out<T>/inref<T> by Binding
	Optional bool
	Default  Expr
}

func (p *Param) Span() Span { return p.Sp }

// Program is the root surface node for one source file, mirroring the
// teacher's ast.Program shape (package + imports + statements).
type Program struct {
	File       string
	Imports    []*ImportDecl
	Exports    map[string]bool // exported top-level names, by identifier
	Decls      []Decl
}

func (p *Program) Span() Span {
	if len(p.Decls) == 0 {
		return Span{}
	}
	return Span{Start: p.Decls[0].Span().Start, End: p.Decls[len(p.Decls)-1].Span().End}
}

// ImportDecl is a surface import statement. Binding.resolveImport resolves
// the Spec to a DeclId or nil when it targets an external nominal facade.
type ImportDecl struct {
	Sp    Span
	Spec  string // module specifier as written in source
	Names []ImportedName
}

func (i *ImportDecl) Span() Span { return i.Sp }

// ImportedName is one imported binding, with an optional local alias.
type ImportedName struct {
	Name  string
	Alias string // empty if unaliased
}
