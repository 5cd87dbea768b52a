package irbuilder

import (
	"strconv"

	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
)

func convertBlock(ctx *ProgramContext, typeParams []string, b *surface.Block) *ir.Block {
	if b == nil {
		return &ir.Block{}
	}
	stmts := make([]ir.Statement, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		stmts = append(stmts, convertStmt(ctx, typeParams, s)...)
	}
	return &ir.Block{Sp: b.Sp, Stmts: stmts}
}

// convertStmt dispatches one surface.Stmt to its IR converter. Returns a
// slice because a destructuring VarDecl statement lowers to more than one
// ir.VarStatement (see desugarPattern).
func convertStmt(ctx *ProgramContext, typeParams []string, s surface.Stmt) []ir.Statement {
	switch st := s.(type) {
	case *surface.Block:
		return []ir.Statement{convertBlock(ctx, typeParams, st)}
	case *surface.ExprStmt:
		return []ir.Statement{&ir.ExprStatement{Sp: st.Sp, Expr: convertExpr(ctx, typeParams, st.Expr)}}
	case *surface.VarDecl:
		return convertVarDeclStatement(ctx, typeParams, st)
	case *surface.IfStmt:
		return []ir.Statement{convertIfStmt(ctx, typeParams, st)}
	case *surface.ForStmt:
		return []ir.Statement{convertForStmt(ctx, typeParams, st)}
	case *surface.ForOfStmt:
		return []ir.Statement{convertForOfStmt(ctx, typeParams, st)}
	case *surface.WhileStmt:
		return []ir.Statement{&ir.WhileStatement{Sp: st.Sp, Cond: convertExpr(ctx, typeParams, st.Cond), Body: convertBlock(ctx, typeParams, st.Body)}}
	case *surface.ReturnStmt:
		return []ir.Statement{&ir.ReturnStatement{Sp: st.Sp, Value: convertOptionalExpr(ctx, typeParams, st.Value)}}
	case *surface.YieldStmt:
		return []ir.Statement{&ir.YieldStatement{Sp: st.Sp, Value: convertOptionalExpr(ctx, typeParams, st.Value), Delegate: st.Delegate}}
	case *surface.ThrowStmt:
		return []ir.Statement{&ir.ThrowStatement{Sp: st.Sp, Value: convertExpr(ctx, typeParams, st.Value)}}
	case *surface.BreakStmt:
		return []ir.Statement{&ir.BreakStatement{Sp: st.Sp}}
	case *surface.ContinueStmt:
		return []ir.Statement{&ir.ContinueStatement{Sp: st.Sp}}
	case *surface.MatchStmt:
		return []ir.Statement{convertMatchStmt(ctx, typeParams, st)}
	}
	return nil
}

// convertVarDeclStatement lowers a VarDecl to one or more ir.VarStatements.
// A plain-name VarDecl lowers to exactly one; a destructuring VarDecl (the
// IR has no destructuring-target node) lowers to a hidden holder variable
// plus one ir.VarStatement per bound leaf name, each initialized by an
// Index/Member accessor chain off the holder.
func convertVarDeclStatement(ctx *ProgramContext, typeParams []string, d *surface.VarDecl) []ir.Statement {
	init := convertOptionalExpr(ctx, typeParams, d.Init)

	if d.Pattern == nil {
		declId := declIdOf(ctx, d)
		t := declaredOrInferredType(ctx, typeParams, declId, d.TypeAnnotation, init)
		ctx.setLocalType(declId, t)
		return []ir.Statement{&ir.VarStatement{
			Sp: d.Sp, Decl: declId, Name: d.Name, Type: t, Init: init, IsConst: d.IsConst,
		}}
	}

	holderName := ctx.freshTempName()
	holder := &ir.VarStatement{Sp: d.Sp, Decl: ids.InvalidDecl, Name: holderName, Type: ir.TypeAny, Init: init, IsConst: true}

	holderRef := func() ir.Expression {
		ref := &ir.IdentifierRef{Name: holderName, Decl: ids.InvalidDecl}
		ref.Sp = d.Sp
		ref.SetType(ir.TypeAny)
		return ref
	}

	stmts := make([]ir.Statement, 0, 4)
	stmts = append(stmts, holder)
	stmts = append(stmts, desugarPattern(ctx, d.Pattern, holderRef)...)
	return stmts
}

// declaredOrInferredType answers a local's IR type: the annotation if one
// was written, else the initializer's own inferred type, else `any`.
func declaredOrInferredType(ctx *ProgramContext, typeParams []string, declId ids.DeclId, annotation surface.TypeSyntax, init ir.Expression) *ir.IrType {
	if annotation != nil {
		tsId := ctx.B.CaptureTypeSyntax(annotation)
		return ctx.Types.TypeFromSyntax(tsId, typeParams)
	}
	if init != nil && init.Type() != nil {
		return init.Type()
	}
	return ir.TypeAny
}

// desugarPattern recursively lowers one destructuring bind pattern into a
// flat list of ir.VarStatements, each bound to the leaf's own DeclId
// (registered by Binding.registerPattern) and initialized by indexing or
// member-accessing the running accessor expression.
func desugarPattern(ctx *ProgramContext, pat surface.Pattern, accessor func() ir.Expression) []ir.Statement {
	switch p := pat.(type) {
	case *surface.IdentifierPattern:
		declId := declIdOf(ctx, p)
		t := ctx.Types.TypeOfDecl(declId)
		ctx.setLocalType(declId, t)
		return []ir.Statement{&ir.VarStatement{Sp: p.Sp, Decl: declId, Name: p.Name, Type: t, Init: accessor(), IsConst: true}}
	case *surface.TuplePattern:
		var out []ir.Statement
		for i, el := range p.Elements {
			idx := i
			outerAccessor := accessor
			elAccessor := func() ir.Expression {
				lit := &ir.Literal{Kind: ir.LitInteger, Raw: strconv.Itoa(idx)}
				lit.SetType(ir.TypeInt)
				index := &ir.Index{Object: outerAccessor(), Index: lit}
				index.Sp = el.Span()
				return index
			}
			out = append(out, desugarPattern(ctx, el, elAccessor)...)
		}
		return out
	case *surface.ObjectPattern:
		var out []ir.Statement
		for _, f := range p.Fields {
			key := f.Key
			outerAccessor := accessor
			fieldAccessor := func() ir.Expression {
				member := &ir.Member{Object: outerAccessor(), Property: key}
				member.Sp = f.Binding.Span()
				return member
			}
			out = append(out, desugarPattern(ctx, f.Binding, fieldAccessor)...)
		}
		return out
	}
	return nil
}

func convertIfStmt(ctx *ProgramContext, typeParams []string, s *surface.IfStmt) *ir.IfStatement {
	stmt := &ir.IfStatement{Sp: s.Sp, Cond: convertExpr(ctx, typeParams, s.Cond), Then: convertBlock(ctx, typeParams, s.Then)}
	if s.Else != nil {
		branches := convertStmt(ctx, typeParams, s.Else)
		if len(branches) == 1 {
			stmt.Else = branches[0]
		} else if len(branches) > 1 {
			stmt.Else = &ir.Block{Stmts: branches}
		}
	}
	return stmt
}

func convertForStmt(ctx *ProgramContext, typeParams []string, s *surface.ForStmt) *ir.ForStatement {
	var init ir.Statement
	if s.Init != nil {
		if stmts := convertStmt(ctx, typeParams, s.Init); len(stmts) == 1 {
			init = stmts[0]
		} else if len(stmts) > 1 {
			// A destructuring VarDecl lowers to a holder plus one statement
			// per bound leaf; wrap them so the loop header still carries a
			// single Init statement (the holder stays scoped to the loop,
			// matching a for-loop's own init-scoping).
			init = &ir.Block{Stmts: stmts}
		}
	}
	return &ir.ForStatement{
		Sp:   s.Sp,
		Init: init,
		Cond: convertOptionalExpr(ctx, typeParams, s.Cond),
		Post: convertOptionalExpr(ctx, typeParams, s.Post),
		Body: convertBlock(ctx, typeParams, s.Body),
	}
}

// convertForOfStmt resolves the loop variable's DeclId off the ForOfStmt
// node itself: there is no separate surface node for a for-of loop
// variable, so Binding registers it keyed by the statement node (see
// Binding.registerStmt's ForOfStmt case).
func convertForOfStmt(ctx *ProgramContext, typeParams []string, s *surface.ForOfStmt) *ir.ForOfStatement {
	declId := declIdOf(ctx, s)
	iterable := convertExpr(ctx, typeParams, s.Iterable)
	elemType := elementTypeOf(iterable.Type())
	ctx.setLocalType(declId, elemType)
	return &ir.ForOfStatement{
		Sp:       s.Sp,
		VarDecl:  declId,
		VarName:  s.VarName,
		ElemType: elemType,
		IsConst:  s.IsConst,
		Iterable: iterable,
		Body:     convertBlock(ctx, typeParams, s.Body),
	}
}

func elementTypeOf(t *ir.IrType) *ir.IrType {
	if t == nil {
		return ir.TypeAny
	}
	switch t.Kind {
	case ir.KindArray:
		return t.ElemType
	case ir.KindReference:
		if t.RefName == "IList" && len(t.RefArgs) == 1 {
			return t.RefArgs[0]
		}
	}
	return ir.TypeAny
}

func convertMatchStmt(ctx *ProgramContext, typeParams []string, s *surface.MatchStmt) *ir.MatchStatement {
	arms := make([]ir.MatchArm, len(s.Cases))
	for i, c := range s.Cases {
		arms[i] = ir.MatchArm{Predicate: convertExpr(ctx, typeParams, c.Pattern), Body: convertBlock(ctx, typeParams, c.Body)}
	}
	stmt := &ir.MatchStatement{Sp: s.Sp, Subject: convertExpr(ctx, typeParams, s.Subject), Arms: arms}
	if s.Default != nil {
		stmt.Default = convertBlock(ctx, typeParams, s.Default)
	}
	return stmt
}
