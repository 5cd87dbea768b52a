package ir

import (
	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/surface"
)

type Block struct {
	Sp    surface.Span
	Stmts []Statement
}

func (n *Block) Accept(v Visitor) { v.VisitBlock(n) }
func (n *Block) stmtNode()        {}

type ExprStatement struct {
	Sp   surface.Span
	Expr Expression
}

func (n *ExprStatement) Accept(v Visitor) { v.VisitExprStatement(n) }
func (n *ExprStatement) stmtNode()        {}

// VarStatement is a local variable/constant declaration. Decl is the
// DeclId assigned by Binding at registration time.
type VarStatement struct {
	Sp      surface.Span
	Decl    ids.DeclId
	Name    string
	Type    *IrType
	Init    Expression
	IsConst bool
}

func (n *VarStatement) Accept(v Visitor) { v.VisitVarStatement(n) }
func (n *VarStatement) stmtNode()        {}

type IfStatement struct {
	Sp   surface.Span
	Cond Expression
	Then *Block
	Else Statement // *Block, *IfStatement, or nil
}

func (n *IfStatement) Accept(v Visitor) { v.VisitIfStatement(n) }
func (n *IfStatement) stmtNode()        {}

type ForStatement struct {
	Sp   surface.Span
	Init Statement
	Cond Expression
	Post Expression
	Body *Block
}

func (n *ForStatement) Accept(v Visitor) { v.VisitForStatement(n) }
func (n *ForStatement) stmtNode()        {}

type ForOfStatement struct {
	Sp       surface.Span
	VarDecl  ids.DeclId
	VarName  string
	ElemType *IrType
	IsConst  bool
	Iterable Expression
	Body     *Block
}

func (n *ForOfStatement) Accept(v Visitor) { v.VisitForOfStatement(n) }
func (n *ForOfStatement) stmtNode()        {}

type WhileStatement struct {
	Sp   surface.Span
	Cond Expression
	Body *Block
}

func (n *WhileStatement) Accept(v Visitor) { v.VisitWhileStatement(n) }
func (n *WhileStatement) stmtNode()        {}

type ReturnStatement struct {
	Sp    surface.Span
	Value Expression // nil for a bare return
}

func (n *ReturnStatement) Accept(v Visitor) { v.VisitReturnStatement(n) }
func (n *ReturnStatement) stmtNode()        {}

type YieldStatement struct {
	Sp       surface.Span
	Value    Expression
	Delegate bool
}

func (n *YieldStatement) Accept(v Visitor) { v.VisitYieldStatement(n) }
func (n *YieldStatement) stmtNode()        {}

type ThrowStatement struct {
	Sp    surface.Span
	Value Expression
}

func (n *ThrowStatement) Accept(v Visitor) { v.VisitThrowStatement(n) }
func (n *ThrowStatement) stmtNode()        {}

type BreakStatement struct{ Sp surface.Span }

func (n *BreakStatement) Accept(v Visitor) { v.VisitBreakStatement(n) }
func (n *BreakStatement) stmtNode()        {}

type ContinueStatement struct{ Sp surface.Span }

func (n *ContinueStatement) Accept(v Visitor) { v.VisitContinueStatement(n) }
func (n *ContinueStatement) stmtNode()        {}

type MatchArm struct {
	Predicate Expression
	Body      *Block
}

type MatchStatement struct {
	Sp      surface.Span
	Subject Expression
	Arms    []MatchArm
	Default *Block
}

func (n *MatchStatement) Accept(v Visitor) { v.VisitMatchStatement(n) }
func (n *MatchStatement) stmtNode()        {}

// --- Declarations (also Statements at module scope) ---------------------

type ParamMode int

const (
	ModeValue ParamMode = iota
	ModeRef
	ModeOut
	ModeIn
)

type Param struct {
	Decl ids.DeclId
	Name string
	Type *IrType
	Mode ParamMode
	Optional bool
	Default  Expression
}

// FunctionDecl is a top-level or method function declaration. Generators
// are represented uniformly here (IsGenerator); their four-construct
// lowering happens entirely in internal/emitter (spec.md §4.9).
type FunctionDecl struct {
	Sp          surface.Span
	Decl        ids.DeclId
	Signature   ids.SignatureId
	Name        string
	TypeParams  []string
	// TypeParamConstraints maps a TypeParams entry to its declared
	// structural/nominal bound (`T extends {...}`), when one was written;
	// a name absent from this map is unconstrained.
	TypeParamConstraints map[string]*IrType
	Params      []Param
	ReturnType  *IrType
	Body        *Block
	IsGenerator bool
	IsAsync     bool
	IsStatic    bool
	// RequiresSpecialization marks a generic call/decl the monomorphization
	// pass must specialize per concrete instantiation (spec.md §4.7).
	RequiresSpecialization bool
}

func (n *FunctionDecl) Accept(v Visitor) { v.VisitFunctionDecl(n) }
func (n *FunctionDecl) stmtNode()        {}

type PropertyDecl struct {
	Decl     ids.DeclId
	Name     string
	Type     *IrType
	Optional bool
	Readonly bool
	Static   bool
}

type ClassDecl struct {
	Sp         surface.Span
	Decl       ids.DeclId
	Name       string
	TypeParams []string
	// TypeParamConstraints maps a TypeParams entry to its declared
	// structural/nominal bound (`T extends {...}`), when one was written.
	TypeParamConstraints map[string]*IrType
	// StructuralConstraintAdapters maps a type parameter name to the
	// synthesized (__Constraint_T, __Wrapper_T) pair, when that parameter
	// carried an object-shape constraint (spec.md §4.7).
	StructuralConstraintAdapters map[string]AdapterPair
	BaseType      *IrType // nil if no base class
	Implements    []*IrType
	Properties    []PropertyDecl
	Methods       []*FunctionDecl
	Ctor          *FunctionDecl // nil if no explicit constructor
}

func (n *ClassDecl) Accept(v Visitor) { v.VisitClassDecl(n) }
func (n *ClassDecl) stmtNode()        {}

// AdapterPair names the synthesized interface/wrapper pair for one
// structurally constrained type parameter.
type AdapterPair struct {
	ConstraintInterfaceName string // "__Constraint_T"
	WrapperClassName        string // "__Wrapper_T"
}

type InterfaceDecl struct {
	Sp         surface.Span
	Decl       ids.DeclId
	Name       string
	TypeParams []string
	Extends    []*IrType
	Properties []PropertyDecl
	Methods    []*FunctionDecl
}

func (n *InterfaceDecl) Accept(v Visitor) { v.VisitInterfaceDecl(n) }
func (n *InterfaceDecl) stmtNode()        {}

type TypeAliasDecl struct {
	Sp         surface.Span
	Decl       ids.DeclId
	Name       string
	TypeParams []string
	Value      *IrType
	// IsObjectAlias marks aliases to object types, which emit as sealed
	// __Alias classes rather than a plain comment (spec.md §4.9).
	IsObjectAlias bool
}

func (n *TypeAliasDecl) Accept(v Visitor) { v.VisitTypeAliasDecl(n) }
func (n *TypeAliasDecl) stmtNode()        {}

type EnumMember struct {
	Name  string
	Value int64
}

type EnumDecl struct {
	Sp      surface.Span
	Decl    ids.DeclId
	Name    string
	Members []EnumMember
}

func (n *EnumDecl) Accept(v Visitor) { v.VisitEnumDecl(n) }
func (n *EnumDecl) stmtNode()        {}
