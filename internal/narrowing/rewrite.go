package narrowing

import (
	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// branchRewriter replaces every read of decl inside one branch's statement
// tree with build(originalRef). valid is cleared the moment the branch
// reassigns decl, since everything after that point no longer carries the
// narrowing the condition proved.
type branchRewriter struct {
	decl  ids.DeclId
	build func(ir.Expression) ir.Expression
	valid bool
}

func (r *branchRewriter) rewriteBlock(b *ir.Block) {
	if b == nil {
		return
	}
	for i, s := range b.Stmts {
		if !r.valid {
			return
		}
		b.Stmts[i] = r.rewriteStmt(s)
	}
}

func (r *branchRewriter) rewriteStmt(s ir.Statement) ir.Statement {
	if !r.valid || s == nil {
		return s
	}
	switch st := s.(type) {
	case *ir.Block:
		r.rewriteBlock(st)
	case *ir.ExprStatement:
		st.Expr = r.rewriteExpr(st.Expr)
	case *ir.VarStatement:
		st.Init = r.rewriteExpr(st.Init)
	case *ir.IfStatement:
		st.Cond = r.rewriteExpr(st.Cond)
		r.rewriteBlock(st.Then)
		st.Else = r.rewriteStmt(st.Else)
	case *ir.ForStatement:
		st.Init = r.rewriteStmt(st.Init)
		st.Cond = r.rewriteExpr(st.Cond)
		st.Post = r.rewriteExpr(st.Post)
		r.rewriteBlock(st.Body)
	case *ir.ForOfStatement:
		st.Iterable = r.rewriteExpr(st.Iterable)
		r.rewriteBlock(st.Body)
	case *ir.WhileStatement:
		st.Cond = r.rewriteExpr(st.Cond)
		r.rewriteBlock(st.Body)
	case *ir.ReturnStatement:
		st.Value = r.rewriteExpr(st.Value)
	case *ir.YieldStatement:
		st.Value = r.rewriteExpr(st.Value)
	case *ir.ThrowStatement:
		st.Value = r.rewriteExpr(st.Value)
	case *ir.MatchStatement:
		st.Subject = r.rewriteExpr(st.Subject)
		for i := range st.Arms {
			st.Arms[i].Predicate = r.rewriteExpr(st.Arms[i].Predicate)
			r.rewriteBlock(st.Arms[i].Body)
		}
		r.rewriteBlock(st.Default)
	}
	return s
}

func (r *branchRewriter) rewriteExpr(e ir.Expression) ir.Expression {
	if e == nil {
		return nil
	}
	switch ex := e.(type) {
	case *ir.IdentifierRef:
		if ex.Decl.Valid() && ex.Decl == r.decl {
			return r.build(ex)
		}
		return ex
	case *ir.Binary:
		ex.Left = r.rewriteExpr(ex.Left)
		ex.Right = r.rewriteExpr(ex.Right)
		return ex
	case *ir.Unary:
		ex.Operand = r.rewriteExpr(ex.Operand)
		return ex
	case *ir.Assign:
		ex.Right = r.rewriteExpr(ex.Right)
		if id, ok := ex.Left.(*ir.IdentifierRef); ok && id.Decl.Valid() && id.Decl == r.decl {
			// Reassigning the narrowed variable invalidates the narrowing
			// for every statement that follows in this branch.
			r.valid = false
		} else {
			ex.Left = r.rewriteExpr(ex.Left)
		}
		return ex
	case *ir.Conditional:
		ex.Cond = r.rewriteExpr(ex.Cond)
		ex.Then = r.rewriteExpr(ex.Then)
		ex.Else = r.rewriteExpr(ex.Else)
		return ex
	case *ir.Logical:
		ex.Left = r.rewriteExpr(ex.Left)
		ex.Right = r.rewriteExpr(ex.Right)
		return ex
	case *ir.Nullish:
		ex.Left = r.rewriteExpr(ex.Left)
		ex.Right = r.rewriteExpr(ex.Right)
		return ex
	case *ir.Call:
		ex.Callee = r.rewriteExpr(ex.Callee)
		for i := range ex.Args {
			ex.Args[i].Value = r.rewriteExpr(ex.Args[i].Value)
		}
		return ex
	case *ir.New:
		ex.Callee = r.rewriteExpr(ex.Callee)
		for i := range ex.Args {
			ex.Args[i].Value = r.rewriteExpr(ex.Args[i].Value)
		}
		return ex
	case *ir.Member:
		ex.Object = r.rewriteExpr(ex.Object)
		return ex
	case *ir.Index:
		ex.Object = r.rewriteExpr(ex.Object)
		ex.Index = r.rewriteExpr(ex.Index)
		return ex
	case *ir.ObjectLiteral:
		for i := range ex.Properties {
			ex.Properties[i].Value = r.rewriteExpr(ex.Properties[i].Value)
		}
		return ex
	case *ir.ArrayLiteral:
		for i := range ex.Elements {
			ex.Elements[i] = r.rewriteExpr(ex.Elements[i])
		}
		return ex
	case *ir.TupleLiteral:
		for i := range ex.Elements {
			ex.Elements[i] = r.rewriteExpr(ex.Elements[i])
		}
		return ex
	case *ir.Lambda:
		r.rewriteBlock(ex.Body)
		ex.ExprBody = r.rewriteExpr(ex.ExprBody)
		return ex
	case *ir.TryCast:
		ex.Value = r.rewriteExpr(ex.Value)
		return ex
	case *ir.AsCast:
		ex.Value = r.rewriteExpr(ex.Value)
		return ex
	case *ir.InstanceOf:
		ex.Value = r.rewriteExpr(ex.Value)
		return ex
	case *ir.NarrowedView:
		ex.Original = r.rewriteExpr(ex.Original)
		return ex
	case *ir.SuperCall:
		for i := range ex.Args {
			ex.Args[i].Value = r.rewriteExpr(ex.Args[i].Value)
		}
		return ex
	}
	return e
}
