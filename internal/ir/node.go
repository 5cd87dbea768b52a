package ir

import "github.com/tsoniclang/tsonic/internal/surface"

// Node is the base of every IR node.
type Node interface {
	Accept(v Visitor)
}

// Statement is an IR statement node.
type Statement interface {
	Node
	stmtNode()
}

// Expression is an IR expression node. Per INV-0, InferredType is fixed by
// the IrBuilder and middle passes and is never recomputed during emission.
type Expression interface {
	Node
	exprNode()
	Type() *IrType
	SetType(*IrType)
	Span() surface.Span
	Proof() *NumericProof
	SetProof(*NumericProof)
}

// exprBase factors the InferredType/Span/NumericProof fields every
// Expression carries, matching spec.md §3's "every expression node carries
// an optional inferredType and an optional sourceSpan."
type exprBase struct {
	InferredType *IrType
	Sp           surface.Span
	proof        *NumericProof
}

func (b *exprBase) Type() *IrType            { return b.InferredType }
func (b *exprBase) SetType(t *IrType)        { b.InferredType = t }
func (b *exprBase) Span() surface.Span       { return b.Sp }
func (b *exprBase) Proof() *NumericProof     { return b.proof }
func (b *exprBase) SetProof(p *NumericProof) { b.proof = p }
func (b *exprBase) exprNode()                {}

// NumericProof is attached by internal/numeric to expressions whose
// Int32-ness it can prove (spec.md §4.8).
type NumericProof struct {
	Kind   ProofKind
	Source string // free-form provenance note, e.g. "literal 3", "param n"
}

// ProofKind enumerates the derivation rules spec.md §4.8 lists.
type ProofKind int

const (
	ProofIntegerLiteral ProofKind = iota
	ProofDeclaredParameter
	ProofRuntimeIntegerReturn
	ProofBinaryOp
	ProofUnaryOp
	ProofDeclaredNarrowing
)

// --- Modules ------------------------------------------------------------

// Module is one compiled source file's IR (IrModule in spec.md §3).
type Module struct {
	File          string
	Namespace     string // synthesized target namespace
	ContainerName string // synthesized container class name (static-container modules)
	IsStaticContainer bool
	Imports       []Import
	Statements    []Statement
}

func (m *Module) Accept(v Visitor) { v.VisitModule(m) }

// Import classifies one import the way spec.md §4.4 requires: local /
// runtime-host-API / nominal-facade.
type ImportKind int

const (
	ImportLocal ImportKind = iota
	ImportRuntimeHostAPI
	ImportNominalFacade
)

type Import struct {
	Kind ImportKind
	Spec string
	Names []string
}

// --- Visitor --------------------------------------------------------------

// Visitor dispatches over the closed IR node set, in the teacher's own
// Accept(Visitor)/VisitX idiom (internal/ast.Visitor).
type Visitor interface {
	VisitModule(*Module)

	VisitBlock(*Block)
	VisitExprStatement(*ExprStatement)
	VisitVarStatement(*VarStatement)
	VisitIfStatement(*IfStatement)
	VisitForStatement(*ForStatement)
	VisitForOfStatement(*ForOfStatement)
	VisitWhileStatement(*WhileStatement)
	VisitReturnStatement(*ReturnStatement)
	VisitYieldStatement(*YieldStatement)
	VisitThrowStatement(*ThrowStatement)
	VisitBreakStatement(*BreakStatement)
	VisitContinueStatement(*ContinueStatement)
	VisitMatchStatement(*MatchStatement)
	VisitFunctionDecl(*FunctionDecl)
	VisitClassDecl(*ClassDecl)
	VisitInterfaceDecl(*InterfaceDecl)
	VisitTypeAliasDecl(*TypeAliasDecl)
	VisitEnumDecl(*EnumDecl)

	VisitLiteral(*Literal)
	VisitIdentifierRef(*IdentifierRef)
	VisitThis(*This)
	VisitBinary(*Binary)
	VisitUnary(*Unary)
	VisitAssign(*Assign)
	VisitConditional(*Conditional)
	VisitLogical(*Logical)
	VisitNullish(*Nullish)
	VisitCall(*Call)
	VisitNew(*New)
	VisitMember(*Member)
	VisitIndex(*Index)
	VisitObjectLiteral(*ObjectLiteral)
	VisitArrayLiteral(*ArrayLiteral)
	VisitTupleLiteral(*TupleLiteral)
	VisitLambda(*Lambda)
	VisitTryCast(*TryCast)
	VisitAsCast(*AsCast)
	VisitInstanceOf(*InstanceOf)
	VisitNarrowedView(*NarrowedView)
	VisitSuperCall(*SuperCall)
	VisitSpecializedCallRef(*SpecializedCallRef)
}
