package irbuilder

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
)

// TestDesugarPattern_TupleProducesHolderPlusLeafStatements exercises the
// destructuring lowering: the IR has no destructuring-target node, so a
// tuple VarDecl pattern must lower to one hidden holder plus one
// VarStatement per bound leaf name.
func TestDesugarPattern_TupleProducesHolderPlusLeafStatements(t *testing.T) {
	pattern := &surface.TuplePattern{Elements: []surface.Pattern{
		&surface.IdentifierPattern{Name: "first"},
		&surface.IdentifierPattern{Name: "second"},
	}}
	d := &surface.VarDecl{
		Pattern: pattern,
		Init:    &surface.Identifier{Name: "pair"},
		IsConst: true,
	}
	fn := &surface.FunctionDecl{
		Name:   "f",
		Params: []*surface.Param{{Name: "pair", Type: namedType("unknown")}},
		Body:   &surface.Block{Stmts: []surface.Stmt{d}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	ctx, sink := newTestContext(t, prog)

	stmts := convertVarDeclStatement(ctx, nil, d)
	if len(stmts) != 3 {
		t.Fatalf("expected holder + 2 leaf statements, got %d", len(stmts))
	}
	holder, ok := stmts[0].(*ir.VarStatement)
	if !ok {
		t.Fatalf("expected stmts[0] to be the holder VarStatement, got %T", stmts[0])
	}
	if holder.Init == nil {
		t.Error("holder statement should carry the original initializer")
	}

	first, ok := stmts[1].(*ir.VarStatement)
	if !ok || first.Name != "first" {
		t.Fatalf("expected leaf VarStatement named first, got %#v", stmts[1])
	}
	idx, ok := first.Init.(*ir.Index)
	if !ok {
		t.Fatalf("expected tuple leaf to be initialized by an Index expression, got %T", first.Init)
	}
	lit, ok := idx.Index.(*ir.Literal)
	if !ok || lit.Raw != "0" {
		t.Errorf("expected first element's index literal to be 0, got %#v", idx.Index)
	}

	second, ok := stmts[2].(*ir.VarStatement)
	if !ok || second.Name != "second" {
		t.Fatalf("expected leaf VarStatement named second, got %#v", stmts[2])
	}
	idx2 := second.Init.(*ir.Index)
	lit2 := idx2.Index.(*ir.Literal)
	if lit2.Raw != "1" {
		t.Errorf("expected second element's index literal to be 1, got %s", lit2.Raw)
	}

	if len(sink.Diagnostics()) != 0 {
		t.Errorf("expected no diagnostics, got %v", sink.Diagnostics())
	}
}

func TestDesugarPattern_ObjectUsesMemberAccessors(t *testing.T) {
	pattern := &surface.ObjectPattern{Fields: []surface.ObjectPatternField{
		{Key: "x", Binding: &surface.IdentifierPattern{Name: "x"}},
		{Key: "y", Binding: &surface.IdentifierPattern{Name: "localY"}},
	}}
	d := &surface.VarDecl{Pattern: pattern, Init: &surface.Identifier{Name: "point"}, IsConst: true}
	fn := &surface.FunctionDecl{
		Name:   "f",
		Params: []*surface.Param{{Name: "point", Type: namedType("unknown")}},
		Body:   &surface.Block{Stmts: []surface.Stmt{d}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	ctx, _ := newTestContext(t, prog)

	stmts := convertVarDeclStatement(ctx, nil, d)
	if len(stmts) != 3 {
		t.Fatalf("expected holder + 2 leaf statements, got %d", len(stmts))
	}
	localY, ok := stmts[2].(*ir.VarStatement)
	if !ok || localY.Name != "localY" {
		t.Fatalf("expected leaf VarStatement named localY (the alias, not the key), got %#v", stmts[2])
	}
	member, ok := localY.Init.(*ir.Member)
	if !ok {
		t.Fatalf("expected object leaf to be initialized by a Member expression, got %T", localY.Init)
	}
	if member.Property != "y" {
		t.Errorf("expected accessor to read property %q (the source key), got %q", "y", member.Property)
	}
}

func TestConvertForStmt_DestructuringInitWrapsInBlock(t *testing.T) {
	pattern := &surface.TuplePattern{Elements: []surface.Pattern{
		&surface.IdentifierPattern{Name: "k"},
		&surface.IdentifierPattern{Name: "v"},
	}}
	init := &surface.VarDecl{Pattern: pattern, Init: &surface.Identifier{Name: "entry"}, IsConst: true}
	forStmt := &surface.ForStmt{
		Init: init,
		Body: &surface.Block{},
	}
	fn := &surface.FunctionDecl{
		Name:   "f",
		Params: []*surface.Param{{Name: "entry", Type: namedType("unknown")}},
		Body:   &surface.Block{Stmts: []surface.Stmt{forStmt}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	ctx, _ := newTestContext(t, prog)

	got := convertForStmt(ctx, nil, forStmt)
	block, ok := got.Init.(*ir.Block)
	if !ok {
		t.Fatalf("a destructuring for-init should wrap its lowered statements in a Block so the loop header keeps a single Init, got %T", got.Init)
	}
	if len(block.Stmts) != 3 {
		t.Errorf("expected holder + 2 leaf statements inside the wrapping block, got %d", len(block.Stmts))
	}
}

func TestConvertForOfStmt_ElementTypeFromArray(t *testing.T) {
	forOf := &surface.ForOfStmt{
		VarName:  "item",
		Iterable: &surface.Identifier{Name: "items"},
		Body:     &surface.Block{},
	}
	fn := &surface.FunctionDecl{
		Name:   "f",
		Params: []*surface.Param{{Name: "items", Type: &surface.ArrayTypeSyntax{Element: namedType("string")}}},
		Body:   &surface.Block{Stmts: []surface.Stmt{forOf}},
	}
	prog := &surface.Program{File: "f.ts", Decls: []surface.Decl{fn}}
	ctx, _ := newTestContext(t, prog)

	got := convertForOfStmt(ctx, nil, forOf)
	if got.ElemType != ir.TypeString {
		t.Errorf("for (item of items: string[]): expected element type string, got %v", got.ElemType)
	}
	if !got.VarDecl.Valid() {
		t.Error("expected a valid DeclId for the for-of loop variable")
	}
}
