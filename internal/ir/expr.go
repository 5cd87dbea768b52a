package ir

import (
	"github.com/tsoniclang/tsonic/internal/ids"
)

// LiteralKind mirrors surface.LiteralKind but lives in the IR so that
// middle passes never need to import the surface package.
type LiteralKind int

const (
	LitInteger LiteralKind = iota
	LitFloat
	LitString
	LitBoolean
	LitNull
	LitUndefined
)

type Literal struct {
	exprBase
	Kind LiteralKind
	Raw  string
}

func (n *Literal) Accept(v Visitor) { v.VisitLiteral(n) }

// IdentifierRef resolves through Binding to a DeclId (or remains unresolved
// — Decl == ids.InvalidDecl — for a name the TypeSystem could not bind,
// which always accompanies a diagnostic).
type IdentifierRef struct {
	exprBase
	Name string
	Decl ids.DeclId
}

func (n *IdentifierRef) Accept(v Visitor) { v.VisitIdentifierRef(n) }

// This is the `this` receiver expression inside an instance method or
// constructor body. ClassName names the enclosing class (IrBuilder sets
// InferredType to that class's own nominal IrType, the same type an
// IdentifierRef bound to a local of that class would carry); it is never
// produced outside a non-static method/constructor's conversion.
type This struct {
	exprBase
	ClassName string
}

func (n *This) Accept(v Visitor) { v.VisitThis(n) }

type BinaryOp string

const (
	OpAdd        BinaryOp = "+"
	OpSub        BinaryOp = "-"
	OpMul        BinaryOp = "*"
	OpDiv        BinaryOp = "/"
	OpMod        BinaryOp = "%"
	OpPow        BinaryOp = "**"
	OpShl        BinaryOp = "<<"
	OpShr        BinaryOp = ">>"
	OpUShr       BinaryOp = ">>>"
	OpLt         BinaryOp = "<"
	OpLe         BinaryOp = "<="
	OpGt         BinaryOp = ">"
	OpGe         BinaryOp = ">="
	OpEq         BinaryOp = "=="
	OpNeq        BinaryOp = "!="
	OpStrictEq   BinaryOp = "==="
	OpStrictNe   BinaryOp = "!=="
	OpBitAnd     BinaryOp = "&"
	OpBitXor     BinaryOp = "^"
	OpBitOr      BinaryOp = "|"
	OpIn         BinaryOp = "in"
	OpInstanceOf BinaryOp = "instanceof"
)

type Binary struct {
	exprBase
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (n *Binary) Accept(v Visitor) { v.VisitBinary(n) }

type UnaryOp string

const (
	OpNeg    UnaryOp = "-"
	OpPos    UnaryOp = "+"
	OpNot    UnaryOp = "!"
	OpBitNot UnaryOp = "~"
)

type Unary struct {
	exprBase
	Op      UnaryOp
	Operand Expression
}

func (n *Unary) Accept(v Visitor) { v.VisitUnary(n) }

type Assign struct {
	exprBase
	Op    string
	Left  Expression
	Right Expression
}

func (n *Assign) Accept(v Visitor) { v.VisitAssign(n) }

type Conditional struct {
	exprBase
	Cond Expression
	Then Expression
	Else Expression
}

func (n *Conditional) Accept(v Visitor) { v.VisitConditional(n) }

// Logical is `&&` / `||`. Op distinguishes; `||` on a nullable left operand
// is rewritten by the emitter to the target's `??` (spec.md §4.9).
type Logical struct {
	exprBase
	Op    string // "&&" or "||"
	Left  Expression
	Right Expression
}

func (n *Logical) Accept(v Visitor) { v.VisitLogical(n) }

// Nullish is `a ?? b`.
type Nullish struct {
	exprBase
	Left  Expression
	Right Expression
}

func (n *Nullish) Accept(v Visitor) { v.VisitNullish(n) }

type ArgMode int

const (
	ArgModeValue ArgMode = iota
	ArgModeRef
	ArgModeOut
	ArgModeIn
)

type Arg struct {
	Value  Expression
	Spread bool
	Mode   ArgMode
}

// Call is a function/method call, resolved through TypeSystem.resolveCall
// (spec.md §4.3). Signature may be ids.InvalidSignature if resolution
// failed; ParameterModes is always len(Args) per INV-1.
type Call struct {
	exprBase
	Callee         Expression
	Signature      ids.SignatureId
	ExplicitTypeArgs []*IrType
	Args           []Arg
	ParameterTypes []*IrType
	ParameterModes []ArgMode
	// Specialized is non-nil when monomorphization rewrote this call site
	// to reference a specialized target method (spec.md §4.7).
	Specialized *SpecializedCallRef
}

func (n *Call) Accept(v Visitor) { v.VisitCall(n) }

type New struct {
	exprBase
	Callee           Expression
	Signature        ids.SignatureId
	ExplicitTypeArgs []*IrType
	Args             []Arg
	ParameterTypes   []*IrType
	ParameterModes   []ArgMode
}

func (n *New) Accept(v Visitor) { v.VisitNew(n) }

type Member struct {
	exprBase
	Object   Expression
	Property string
	Member   ids.MemberId
	Optional bool
}

func (n *Member) Accept(v Visitor) { v.VisitMember(n) }

// Index requires Object's declared class to resolve to array/string/
// dictionary and Index to carry an Int32 NumericProof once internal/numeric
// has run (spec.md §4.8); absence of that proof is reported as TSN5107.
type Index struct {
	exprBase
	Object Expression
	Index  Expression
}

func (n *Index) Accept(v Visitor) { v.VisitIndex(n) }

type ObjectProperty struct {
	Name     string
	Value    Expression
	Optional bool
	Readonly bool
}

// ObjectLiteral's Type is either the contextual nominal type the IrBuilder
// propagated in, or — after internal/anonobj has run — a KindReference to
// the synthesized `__Anon_<FileStem>_<Line>_<Col>` type.
type ObjectLiteral struct {
	exprBase
	Properties []ObjectProperty
}

func (n *ObjectLiteral) Accept(v Visitor) { v.VisitObjectLiteral(n) }

type ArrayLiteral struct {
	exprBase
	Elements []Expression
	Origin   string
}

func (n *ArrayLiteral) Accept(v Visitor) { v.VisitArrayLiteral(n) }

type TupleLiteral struct {
	exprBase
	Elements []Expression
}

func (n *TupleLiteral) Accept(v Visitor) { v.VisitTupleLiteral(n) }

// Lambda is an arrow function / function expression; its Params are
// converted with inferred parameter types as their expected types when the
// call/new two-pass protocol (spec.md §4.4) supplies them.
type Lambda struct {
	exprBase
	Params     []Param
	ReturnType *IrType
	Body       *Block     // nil when ExprBody is set
	ExprBody   Expression
	IsGenerator bool
}

func (n *Lambda) Accept(v Visitor) { v.VisitLambda(n) }

// TryCast is `trycast<T>(x)`; Type() is always `T | null`.
type TryCast struct {
	exprBase
	Target *IrType
	Value  Expression
}

func (n *TryCast) Accept(v Visitor) { v.VisitTryCast(n) }

// AsCast is `x as T`; internal/numeric validates soundness when Target is
// `int` (see DESIGN.md Open Question resolution).
type AsCast struct {
	exprBase
	Target *IrType
	Value  Expression
}

func (n *AsCast) Accept(v Visitor) { v.VisitAsCast(n) }

type InstanceOf struct {
	exprBase
	Target *IrType
	Value  Expression
}

func (n *InstanceOf) Accept(v Visitor) { v.VisitInstanceOf(n) }

// NarrowedView replaces a binding reference inside a narrowed branch with a
// structured view expression (discriminated-union `.AsN()` accessor, or a
// downcast for `instanceof`), per internal/narrowing (spec.md §4.5).
type NarrowedView struct {
	exprBase
	Original Expression
	ViewName string // e.g. "AsCircle" for a discriminated-union case
	IsDowncast bool
}

func (n *NarrowedView) Accept(v Visitor) { v.VisitNarrowedView(n) }

type SuperCall struct {
	exprBase
	Args []Arg
}

func (n *SuperCall) Accept(v Visitor) { v.VisitSuperCall(n) }

// SpecializedCallRef names the mangled target method a monomorphized call
// site was rewritten to reference (spec.md §4.7).
type SpecializedCallRef struct {
	exprBase
	OriginalName    string
	SpecializedName string
	TypeArgs        []*IrType
}

func (n *SpecializedCallRef) Accept(v Visitor) { v.VisitSpecializedCallRef(n) }
