package numeric

import (
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ir"
)

func (p *prover) walkStmts(stmts []ir.Statement) {
	for _, st := range stmts {
		p.walkStmt(st)
	}
}

func (p *prover) walkBlock(b *ir.Block) {
	if b == nil {
		return
	}
	p.walkStmts(b.Stmts)
}

func (p *prover) walkStmt(st ir.Statement) {
	switch n := st.(type) {
	case *ir.Block:
		p.walkBlock(n)
	case *ir.ExprStatement:
		p.prove(n.Expr)
	case *ir.VarStatement:
		p.prove(n.Init)
	case *ir.IfStatement:
		p.prove(n.Cond)
		p.walkBlock(n.Then)
		p.walkStmt(n.Else)
	case *ir.ForStatement:
		p.walkStmt(n.Init)
		p.prove(n.Cond)
		p.prove(n.Post)
		p.walkBlock(n.Body)
	case *ir.ForOfStatement:
		p.prove(n.Iterable)
		p.walkBlock(n.Body)
	case *ir.WhileStatement:
		p.prove(n.Cond)
		p.walkBlock(n.Body)
	case *ir.ReturnStatement:
		p.prove(n.Value)
	case *ir.YieldStatement:
		p.prove(n.Value)
	case *ir.ThrowStatement:
		p.prove(n.Value)
	case *ir.MatchStatement:
		p.prove(n.Subject)
		for _, arm := range n.Arms {
			p.prove(arm.Predicate)
			p.walkBlock(arm.Body)
		}
		p.walkBlock(n.Default)
	case *ir.FunctionDecl:
		p.walkBlock(n.Body)
	case *ir.ClassDecl:
		for _, m := range n.Methods {
			p.walkBlock(m.Body)
		}
		if n.Ctor != nil {
			p.walkBlock(n.Ctor.Body)
		}
	}
}

// prove recurses into e's subexpressions first (proof is bottom-up: a
// binary op's proof depends on its operands' proofs already being set),
// then derives and attaches e's own NumericProof when its inferred type
// is Int32 and one of spec.md §4.8's derivation rules applies. Index and
// AsCast additionally enforce their own §4.8 requirements as a side
// effect of being visited.
func (p *prover) prove(e ir.Expression) {
	if e == nil {
		return
	}
	switch ex := e.(type) {
	case *ir.Literal:
		if ex.Kind == ir.LitInteger && isIntLiteralInRange(ex.Raw) {
			ex.SetProof(&ir.NumericProof{Kind: ir.ProofIntegerLiteral, Source: "integer literal " + ex.Raw})
		}
	case *ir.IdentifierRef:
		if isInt(ex.Type()) {
			ex.SetProof(&ir.NumericProof{Kind: ir.ProofDeclaredParameter, Source: "declared identifier " + ex.Name})
		}
	case *ir.Binary:
		p.prove(ex.Left)
		p.prove(ex.Right)
		if isInt(ex.Type()) && hasProof(ex.Left) && hasProof(ex.Right) {
			ex.SetProof(&ir.NumericProof{Kind: ir.ProofBinaryOp, Source: "binary op over proven int operands"})
		}
	case *ir.Unary:
		p.prove(ex.Operand)
		if isInt(ex.Type()) && hasProof(ex.Operand) {
			ex.SetProof(&ir.NumericProof{Kind: ir.ProofUnaryOp, Source: "unary op over a proven int operand"})
		}
	case *ir.Assign:
		p.prove(ex.Left)
		p.prove(ex.Right)
	case *ir.Conditional:
		p.prove(ex.Cond)
		p.prove(ex.Then)
		p.prove(ex.Else)
		if isInt(ex.Type()) && hasProof(ex.Then) && hasProof(ex.Else) {
			ex.SetProof(&ir.NumericProof{Kind: ir.ProofDeclaredNarrowing, Source: "conditional with both branches proven"})
		}
	case *ir.Logical:
		p.prove(ex.Left)
		p.prove(ex.Right)
	case *ir.Nullish:
		p.prove(ex.Left)
		p.prove(ex.Right)
		if isInt(ex.Type()) && hasProof(ex.Right) && (ex.Left == nil || hasProof(ex.Left)) {
			ex.SetProof(&ir.NumericProof{Kind: ir.ProofDeclaredNarrowing, Source: "nullish coalescing with a proven fallback"})
		}
	case *ir.Call:
		p.prove(ex.Callee)
		for _, a := range ex.Args {
			p.prove(a.Value)
		}
		if isInt(ex.Type()) {
			ex.SetProof(&ir.NumericProof{Kind: ir.ProofRuntimeIntegerReturn, Source: "call declared to return an integer kind"})
		}
	case *ir.New:
		p.prove(ex.Callee)
		for _, a := range ex.Args {
			p.prove(a.Value)
		}
	case *ir.Member:
		p.prove(ex.Object)
		if isInt(ex.Type()) {
			ex.SetProof(&ir.NumericProof{Kind: ir.ProofRuntimeIntegerReturn, Source: "member declared to return an integer kind"})
		}
	case *ir.Index:
		p.prove(ex.Object)
		p.prove(ex.Index)
		if !hasProof(ex.Index) {
			p.sink.Report(diagnostics.New(diagnostics.SeverityError, diagnostics.CodeUnprovenIntegerIndex, p.loc(ex.Index)))
		}
		if isInt(ex.Type()) {
			ex.SetProof(&ir.NumericProof{Kind: ir.ProofRuntimeIntegerReturn, Source: "element access on a provenly integer collection"})
		}
	case *ir.ObjectLiteral:
		for _, prop := range ex.Properties {
			p.prove(prop.Value)
		}
	case *ir.ArrayLiteral:
		for _, el := range ex.Elements {
			p.prove(el)
		}
	case *ir.TupleLiteral:
		for _, el := range ex.Elements {
			p.prove(el)
		}
	case *ir.Lambda:
		p.walkBlock(ex.Body)
		p.prove(ex.ExprBody)
	case *ir.TryCast:
		p.prove(ex.Value)
	case *ir.AsCast:
		p.prove(ex.Value)
		p.proveAsCast(ex)
	case *ir.InstanceOf:
		p.prove(ex.Value)
	case *ir.NarrowedView:
		p.prove(ex.Original)
		if isInt(ex.Type()) {
			ex.SetProof(&ir.NumericProof{Kind: ir.ProofDeclaredNarrowing, Source: "declared narrowing of " + ex.ViewName})
		}
	case *ir.SuperCall:
		for _, a := range ex.Args {
			p.prove(a.Value)
		}
	case *ir.SpecializedCallRef:
		// Carries no independent value; the Call it decorates is already proved.
	}
}

// proveAsCast validates an explicit `as int` narrowing's soundness: only a
// value already typed int or number can be legitimately narrowed to int
// (spec.md §4.8's "explicit `as int` narrowings are validated for
// soundness by the same pass"). Anything else — string, boolean,
// reference, array, unknown — is an unsound narrowing and reported as
// TSN5110, the same code an implicit narrowing would use.
func (p *prover) proveAsCast(ex *ir.AsCast) {
	if !isInt(ex.Target) {
		return
	}
	src := ex.Value.Type()
	if isInt(src) || isNumber(src) {
		ex.SetProof(&ir.NumericProof{Kind: ir.ProofDeclaredNarrowing, Source: "explicit as int narrowing"})
		return
	}
	from := "unknown"
	if src != nil {
		from = src.String()
	}
	p.sink.Report(diagnostics.New(diagnostics.SeverityError, diagnostics.CodeImplicitNumericNarrow, p.loc(ex), from, "int"))
}

func isInt(t *ir.IrType) bool {
	return t != nil && t.Kind == ir.KindPrimitive && t.Primitive == ir.PrimInt
}

func isNumber(t *ir.IrType) bool {
	return t != nil && t.Kind == ir.KindPrimitive && t.Primitive == ir.PrimNumber
}

func hasProof(e ir.Expression) bool {
	return e != nil && e.Proof() != nil
}
