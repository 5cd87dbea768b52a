package binding

import (
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/surface"
)

// refMarkerNames are the surface marker type names Binding unwraps while
// normalizing parameter passing modes (spec.md §4.1).
var refMarkerNames = map[string]ParamMode{
	"ref":   surface.ModeRef,
	"out":   surface.ModeOut,
	"inref": surface.ModeIn,
}

// Binding is the sole component allowed to touch the surface program's own
// nodes directly (spec.md §2 step 2, §4.1). It walks the program once at
// construction, assigns opaque ids, and thereafter is consulted exclusively
// through resolveIdentifier/resolveImport/resolveCallSignature/
// resolveConstructorSignature/captureTypeSyntax/getSourceFilePathOfDecl.
//
// Generalizes the teacher's internal/symbols.SymbolTable scope-chain (Find
// walking s.outer) into a registry-backed, append-only-after-construction
// form: a Scope stores DeclIds, never typesystem.Type values, and every
// record a DeclId/SignatureId/MemberId/TypeSyntaxId resolves to lives in
// *Registries, never in the scope chain itself.
type Binding struct {
	regs *Registries
	sink *diagnostics.Sink

	identNodes map[surface.Expr]ids.DeclId
	callNodes  map[*surface.CallExpr]ids.SignatureId
	ctorNodes  map[*surface.NewExpr]ids.SignatureId
	importDecl map[string]ids.DeclId // import spec -> DeclId of the local module binding

	sourceFileOf map[ids.DeclId]string
	exportNames  map[string]map[string]ids.DeclId // file -> exported name -> DeclId
	sigOfDecl    map[ids.DeclId]ids.SignatureId
	topLevel     map[string]ids.DeclId // cross-module top-level name index (class/interface/alias/enum/function)
	nodeToDecl   map[surface.Node]ids.DeclId // declaration's own surface node -> the DeclId it was assigned
}

// New walks programs (already parsed by the external HostParser into
// surface.Program values, one per source file) and builds a Binding.
// Registration order follows decl order within each file and slice order
// across programs, which is what makes id assignment deterministic
// (spec.md §4.1: "the same source program produces the same IDs in the
// same order").
func New(programs []*surface.Program, sink *diagnostics.Sink) *Binding {
	b := &Binding{
		regs:         newRegistries(),
		sink:         sink,
		identNodes:   make(map[surface.Expr]ids.DeclId),
		callNodes:    make(map[*surface.CallExpr]ids.SignatureId),
		ctorNodes:    make(map[*surface.NewExpr]ids.SignatureId),
		importDecl:   make(map[string]ids.DeclId),
		sourceFileOf: make(map[ids.DeclId]string),
		exportNames:  make(map[string]map[string]ids.DeclId),
		sigOfDecl:    make(map[ids.DeclId]ids.SignatureId),
		topLevel:     make(map[string]ids.DeclId),
		nodeToDecl:   make(map[surface.Node]ids.DeclId),
	}
	for _, p := range programs {
		b.registerProgram(p)
	}
	return b
}

// Registries exposes the append-only stores for TypeSystem and IrBuilder to
// query by id; they never get a *Scope.
func (b *Binding) Registries() *Registries { return b.regs }

// addDecl records a DeclInfo in the registry and indexes its own surface
// node (if any) so DeclIdOfNode can later answer "what id did this
// declaration site get", without exposing the scope chain itself.
func (b *Binding) addDecl(info DeclInfo) ids.DeclId {
	id := b.regs.addDecl(info)
	if info.Node != nil {
		b.nodeToDecl[info.Node] = id
	}
	return id
}

// DeclIdOfNode returns the DeclId assigned to a declaration's own surface
// node (a *surface.VarDecl, *surface.Param, *surface.FunctionDecl, ...),
// for converters that need to re-associate IR nodes with the id Binding
// assigned at registration time.
func (b *Binding) DeclIdOfNode(node surface.Node) (ids.DeclId, bool) {
	id, ok := b.nodeToDecl[node]
	return id, ok
}

func (b *Binding) registerProgram(p *surface.Program) {
	global := newScope(nil)
	for _, imp := range p.Imports {
		b.registerImport(p.File, imp, global)
	}
	for _, d := range p.Decls {
		b.registerTopDecl(p.File, d, global)
	}
}

// --- Imports --------------------------------------------------------------

func (b *Binding) registerImport(file string, imp *surface.ImportDecl, scope *Scope) {
	for _, name := range imp.Names {
		local := name.Name
		if name.Alias != "" {
			local = name.Alias
		}
		id := b.addDecl(DeclInfo{
			Kind:       DeclVariable, // refined by TypeSystem once the catalog classifies the import kind
			Name:       local,
			SourceFile: file,
			Node:       imp,
		})
		b.sourceFileOf[id] = file
		scope.define(local, id)
	}
	b.importDecl[imp.Spec] = scope.names[importLocalKey(imp)]
}

// importLocalKey picks a representative local name for resolveImport's
// spec-keyed lookup: the first imported name, or its alias.
func importLocalKey(imp *surface.ImportDecl) string {
	if len(imp.Names) == 0 {
		return ""
	}
	if imp.Names[0].Alias != "" {
		return imp.Names[0].Alias
	}
	return imp.Names[0].Name
}

// --- Declarations -----------------------------------------------------------

func (b *Binding) registerTopDecl(file string, d surface.Decl, scope *Scope) {
	switch decl := d.(type) {
	case *surface.VarDecl:
		b.registerVarDecl(file, decl, scope)
	case *surface.FunctionDecl:
		b.registerFunctionDecl(file, decl, scope)
	case *surface.ClassDecl:
		b.registerClassDecl(file, decl, scope)
	case *surface.InterfaceDecl:
		b.registerInterfaceDecl(file, decl, scope)
	case *surface.TypeAliasDecl:
		b.registerTypeAliasDecl(file, decl, scope)
	case *surface.EnumDecl:
		b.registerEnumDecl(file, decl, scope)
	}
}

// registerTopLevelName indexes a top-level declaration by name for
// cross-module lookups (the TypeSystem's utility-type expansion and
// nominal-chain resolution need to find a class/interface/alias/enum by
// name without importing Binding's private scope chain).
func (b *Binding) registerTopLevelName(name string, id ids.DeclId) {
	if name == "" {
		return
	}
	if _, exists := b.topLevel[name]; !exists {
		b.topLevel[name] = id
	}
}

// ResolveTopLevelName looks up a top-level class/interface/type-alias/enum/
// function declaration by its surface name across every registered module.
func (b *Binding) ResolveTopLevelName(name string) (ids.DeclId, bool) {
	id, ok := b.topLevel[name]
	return id, ok
}

func (b *Binding) registerExported(file, name string, id ids.DeclId, exported bool) {
	if !exported {
		return
	}
	if b.exportNames[file] == nil {
		b.exportNames[file] = make(map[string]ids.DeclId)
	}
	if existing, ok := b.exportNames[file][name]; ok && existing != id {
		b.sink.Report(diagnostics.New(diagnostics.SeverityError, diagnostics.CodeFileExportNameCollision,
			&diagnostics.Location{File: file}, name))
		return
	}
	b.exportNames[file][name] = id
}

func (b *Binding) registerVarDecl(file string, d *surface.VarDecl, scope *Scope) {
	kind := DeclVariable
	if d.IsConst {
		kind = DeclConstant
	}
	var tsId ids.TypeSyntaxId
	if d.TypeAnnotation != nil {
		tsId = b.captureTypeSyntaxUnchecked(d.TypeAnnotation)
	}
	id := b.addDecl(DeclInfo{Kind: kind, Name: d.Name, SourceFile: file, Node: d, TypeSyntax: tsId, Exported: d.Exported})
	b.sourceFileOf[id] = file
	if d.Name != "" {
		scope.define(d.Name, id)
	}
	if d.Pattern != nil {
		b.registerPattern(file, d.Pattern, kind, scope)
	}
	b.registerExported(file, d.Name, id, d.Exported)
	if d.Init != nil {
		b.registerExprTree(file, d.Init, scope)
	}
}

// registerPattern walks a destructuring bind pattern and registers one
// DeclId per leaf identifier, indexed both into scope (so later
// identifier references resolve) and into nodeToDecl keyed by the
// *IdentifierPattern leaf itself (so internal/irbuilder can look the id
// back up while lowering the pattern into plain VarStatements).
func (b *Binding) registerPattern(file string, pat surface.Pattern, kind DeclKind, scope *Scope) {
	switch p := pat.(type) {
	case *surface.IdentifierPattern:
		id := b.addDecl(DeclInfo{Kind: kind, Name: p.Name, SourceFile: file, Node: p})
		b.sourceFileOf[id] = file
		scope.define(p.Name, id)
	case *surface.TuplePattern:
		for _, el := range p.Elements {
			b.registerPattern(file, el, kind, scope)
		}
	case *surface.ObjectPattern:
		for _, f := range p.Fields {
			b.registerPattern(file, f.Binding, kind, scope)
		}
	}
}

func (b *Binding) registerFunctionDecl(file string, d *surface.FunctionDecl, parent *Scope) (ids.DeclId, ids.SignatureId) {
	id := b.addDecl(DeclInfo{Kind: DeclFunction, Name: d.Name, SourceFile: file, Node: d, Exported: d.Exported})
	b.sourceFileOf[id] = file
	if d.Name != "" {
		parent.define(d.Name, id)
		b.registerTopLevelName(d.Name, id)
	}
	b.registerExported(file, d.Name, id, d.Exported)

	fnScope := newScope(parent)
	sigId := b.registerSignatureFromParams(id, d.TypeParams, d.Params, d.ReturnType, fnScope, file)

	if d.Body != nil {
		b.registerBlock(file, d.Body, fnScope)
	}
	return id, sigId
}

func (b *Binding) registerClassDecl(file string, d *surface.ClassDecl, parent *Scope) {
	id := b.addDecl(DeclInfo{Kind: DeclClass, Name: d.Name, SourceFile: file, Node: d, Exported: d.Exported})
	b.sourceFileOf[id] = file
	parent.define(d.Name, id)
	b.registerTopLevelName(d.Name, id)
	b.registerExported(file, d.Name, id, d.Exported)

	classScope := newScope(parent)
	if d.Extends != nil {
		b.captureTypeSyntaxUnchecked(d.Extends)
	}
	for _, iface := range d.Implements {
		b.captureTypeSyntaxUnchecked(iface)
	}
	for _, prop := range d.Properties {
		var tsId ids.TypeSyntaxId
		if prop.Type != nil {
			tsId = b.captureTypeSyntaxUnchecked(prop.Type)
		}
		pid := b.addDecl(DeclInfo{Kind: DeclProperty, Name: prop.Name, SourceFile: file, Node: prop, TypeSyntax: tsId})
		b.sourceFileOf[pid] = file
		b.regs.addMember(MemberInfo{OwnerType: d.Name, Name: prop.Name, TypeSyntax: tsId, Optional: prop.Optional, Readonly: prop.Readonly, Static: prop.Static})
	}
	if d.Ctor != nil {
		b.registerMethod(file, d.Name, d.Ctor, classScope)
	}
	for _, m := range d.Methods {
		b.registerMethod(file, d.Name, m, classScope)
	}
}

func (b *Binding) registerMethod(file, ownerType string, m *surface.MethodMember, parent *Scope) {
	id := b.addDecl(DeclInfo{Kind: DeclMethod, Name: m.Name, SourceFile: file, Node: m})
	b.sourceFileOf[id] = file

	methodScope := newScope(parent)
	sigId := b.registerSignatureFromParams(id, m.TypeParams, m.Params, m.ReturnType, methodScope, file)
	b.regs.addMember(MemberInfo{OwnerType: ownerType, Name: m.Name, Signature: sigId, Static: m.Static})

	if m.Body != nil {
		b.registerBlock(file, m.Body, methodScope)
	}
}

func (b *Binding) registerInterfaceDecl(file string, d *surface.InterfaceDecl, parent *Scope) {
	id := b.addDecl(DeclInfo{Kind: DeclInterface, Name: d.Name, SourceFile: file, Node: d, Exported: d.Exported})
	b.sourceFileOf[id] = file
	parent.define(d.Name, id)
	b.registerTopLevelName(d.Name, id)
	b.registerExported(file, d.Name, id, d.Exported)

	for _, ext := range d.Extends {
		b.captureTypeSyntaxUnchecked(ext)
	}
	ifaceScope := newScope(parent)
	for _, prop := range d.Properties {
		var tsId ids.TypeSyntaxId
		if prop.Type != nil {
			tsId = b.captureTypeSyntaxUnchecked(prop.Type)
		}
		b.regs.addMember(MemberInfo{OwnerType: d.Name, Name: prop.Name, TypeSyntax: tsId, Optional: prop.Optional, Readonly: prop.Readonly})
	}
	for _, m := range d.Methods {
		mid := b.addDecl(DeclInfo{Kind: DeclMethod, Name: m.Name, SourceFile: file, Node: m})
		b.sourceFileOf[mid] = file
		sigId := b.registerSignatureFromParams(mid, m.TypeParams, m.Params, m.ReturnType, newScope(ifaceScope), file)
		b.regs.addMember(MemberInfo{OwnerType: d.Name, Name: m.Name, Signature: sigId})
	}
}

func (b *Binding) registerTypeAliasDecl(file string, d *surface.TypeAliasDecl, parent *Scope) {
	var tsId ids.TypeSyntaxId
	if d.Value != nil {
		tsId = b.captureTypeSyntaxUnchecked(d.Value)
	}
	id := b.addDecl(DeclInfo{Kind: DeclTypeAlias, Name: d.Name, SourceFile: file, Node: d, TypeSyntax: tsId, Exported: d.Exported})
	b.sourceFileOf[id] = file
	parent.define(d.Name, id)
	b.registerTopLevelName(d.Name, id)
	b.registerExported(file, d.Name, id, d.Exported)
}

func (b *Binding) registerEnumDecl(file string, d *surface.EnumDecl, parent *Scope) {
	id := b.addDecl(DeclInfo{Kind: DeclEnum, Name: d.Name, SourceFile: file, Node: d, Exported: d.Exported})
	b.sourceFileOf[id] = file
	parent.define(d.Name, id)
	b.registerTopLevelName(d.Name, id)
	b.registerExported(file, d.Name, id, d.Exported)
	for _, m := range d.Members {
		if m.Value != nil {
			b.registerExprTree(file, m.Value, parent)
		}
	}
}

// registerSignatureFromParams captures one SignatureInfo, normalizing each
// parameter's passing mode by unwrapping ref<T>/out<T>/inref<T> marker
// wrapper types (spec.md §4.1) before capturing the inner TypeSyntax.
func (b *Binding) registerSignatureFromParams(owner ids.DeclId, typeParams []*surface.TypeParam, params []*surface.Param, returnType surface.TypeSyntax, scope *Scope, file string) ids.SignatureId {
	tps := make([]string, 0, len(typeParams))
	for _, tp := range typeParams {
		tps = append(tps, tp.Name)
		if tp.Constraint != nil {
			b.captureTypeSyntaxUnchecked(tp.Constraint)
		}
	}

	paramSyntax := make([]ids.TypeSyntaxId, 0, len(params))
	modes := make([]ParamMode, 0, len(params))
	optionals := make([]bool, 0, len(params))
	for _, p := range params {
		mode, inner := normalizeParamMode(p.Type)
		var tsId ids.TypeSyntaxId
		if inner != nil {
			tsId = b.captureTypeSyntaxUnchecked(inner)
		}
		paramSyntax = append(paramSyntax, tsId)
		modes = append(modes, mode)
		optionals = append(optionals, p.Optional || p.Default != nil)

		pid := b.addDecl(DeclInfo{Kind: DeclParameter, Name: p.Name, SourceFile: file, Node: p, TypeSyntax: tsId})
		b.sourceFileOf[pid] = file
		if p.Name != "" {
			scope.define(p.Name, pid)
		}
		if p.Default != nil {
			b.registerExprTree(file, p.Default, scope)
		}
	}

	var retId ids.TypeSyntaxId
	predicateParam := ""
	var predicateSyntax ids.TypeSyntaxId
	if pred, ok := returnType.(*surface.TypePredicateSyntax); ok {
		predicateParam = pred.ParamName
		predicateSyntax = b.captureTypeSyntaxUnchecked(pred.AssertedType)
	} else if returnType != nil {
		retId = b.captureTypeSyntaxUnchecked(returnType)
	}

	sigId := b.regs.addSignature(SignatureInfo{
		OwnerDecl:           owner,
		TypeParams:          tps,
		ParamTypeSyntax:     paramSyntax,
		ParamModes:          modes,
		ParamOptional:       optionals,
		ReturnTypeSyntax:    retId,
		TypePredicateParam:  predicateParam,
		TypePredicateSyntax: predicateSyntax,
	})
	b.sigOfDecl[owner] = sigId
	return sigId
}

// normalizeParamMode inspects a parameter's written type syntax for a
// ref<T>/out<T>/inref<T> marker wrapper and returns the normalized mode
// plus the unwrapped inner type syntax to actually capture. A parameter
// with no such wrapper passes by value and captures its type unchanged.
func normalizeParamMode(t surface.TypeSyntax) (ParamMode, surface.TypeSyntax) {
	named, ok := t.(*surface.NamedTypeSyntax)
	if !ok || len(named.Arguments) != 1 {
		return surface.ModeValue, t
	}
	if mode, ok := refMarkerNames[named.Name]; ok {
		return mode, named.Arguments[0]
	}
	return surface.ModeValue, t
}

// --- Statement/expression walking (for identifier + call-site registration) --

func (b *Binding) registerBlock(file string, blk *surface.Block, scope *Scope) {
	if blk == nil {
		return
	}
	blockScope := newScope(scope)
	for _, s := range blk.Stmts {
		b.registerStmt(file, s, blockScope)
	}
}

func (b *Binding) registerStmt(file string, s surface.Stmt, scope *Scope) {
	switch st := s.(type) {
	case *surface.VarDecl:
		b.registerVarDecl(file, st, scope)
	case *surface.ExprStmt:
		b.registerExprTree(file, st.Expr, scope)
	case *surface.IfStmt:
		b.registerExprTree(file, st.Cond, scope)
		b.registerStmt(file, st.Then, scope)
		if st.Else != nil {
			b.registerStmt(file, st.Else, scope)
		}
	case *surface.ForStmt:
		inner := newScope(scope)
		if st.Init != nil {
			b.registerStmt(file, st.Init, inner)
		}
		if st.Cond != nil {
			b.registerExprTree(file, st.Cond, inner)
		}
		if st.Post != nil {
			b.registerExprTree(file, st.Post, inner)
		}
		b.registerStmt(file, st.Body, inner)
	case *surface.ForOfStmt:
		inner := newScope(scope)
		id := b.addDecl(DeclInfo{Kind: DeclVariable, Name: st.VarName, SourceFile: file, Node: st})
		b.sourceFileOf[id] = file
		inner.define(st.VarName, id)
		b.registerExprTree(file, st.Iterable, inner)
		b.registerStmt(file, st.Body, inner)
	case *surface.WhileStmt:
		b.registerExprTree(file, st.Cond, scope)
		b.registerStmt(file, st.Body, scope)
	case *surface.ReturnStmt:
		if st.Value != nil {
			b.registerExprTree(file, st.Value, scope)
		}
	case *surface.YieldStmt:
		if st.Value != nil {
			b.registerExprTree(file, st.Value, scope)
		}
	case *surface.ThrowStmt:
		b.registerExprTree(file, st.Value, scope)
	case *surface.MatchStmt:
		b.registerExprTree(file, st.Subject, scope)
		for _, c := range st.Cases {
			b.registerExprTree(file, c.Pattern, scope)
			b.registerStmt(file, c.Body, scope)
		}
		if st.Default != nil {
			b.registerStmt(file, st.Default, scope)
		}
	case *surface.Block:
		b.registerBlock(file, st, scope)
	case *surface.FunctionDecl:
		b.registerFunctionDecl(file, st, scope)
	}
}

func (b *Binding) registerExprTree(file string, e surface.Expr, scope *Scope) {
	if e == nil {
		return
	}
	switch x := e.(type) {
	case *surface.Identifier:
		if id, ok := scope.find(x.Name); ok {
			b.identNodes[x] = id
		} else {
			b.sink.Report(diagnostics.New(diagnostics.SeverityError, diagnostics.CodeUnresolvedBinding,
				&diagnostics.Location{File: file}, x.Name))
		}
	case *surface.BinaryExpr:
		b.registerExprTree(file, x.Left, scope)
		b.registerExprTree(file, x.Right, scope)
	case *surface.UnaryExpr:
		b.registerExprTree(file, x.Operand, scope)
	case *surface.AssignExpr:
		b.registerExprTree(file, x.Left, scope)
		b.registerExprTree(file, x.Right, scope)
	case *surface.ConditionalExpr:
		b.registerExprTree(file, x.Cond, scope)
		b.registerExprTree(file, x.Then, scope)
		b.registerExprTree(file, x.Else, scope)
	case *surface.CallExpr:
		b.registerExprTree(file, x.Callee, scope)
		for _, ta := range x.ExplicitTypeArgs {
			b.captureTypeSyntaxUnchecked(ta)
		}
		for _, a := range x.Args {
			b.registerExprTree(file, a.Value, scope)
		}
		b.callNodes[x] = b.resolveCallSignatureOf(x.Callee, scope)
	case *surface.NewExpr:
		b.registerExprTree(file, x.Callee, scope)
		for _, ta := range x.ExplicitTypeArgs {
			b.captureTypeSyntaxUnchecked(ta)
		}
		for _, a := range x.Args {
			b.registerExprTree(file, a.Value, scope)
		}
		b.ctorNodes[x] = b.resolveCallSignatureOf(x.Callee, scope)
	case *surface.MemberExpr:
		b.registerExprTree(file, x.Object, scope)
	case *surface.IndexExpr:
		b.registerExprTree(file, x.Object, scope)
		b.registerExprTree(file, x.Index, scope)
	case *surface.ObjectLiteral:
		if x.Contextual != nil {
			b.captureTypeSyntaxUnchecked(x.Contextual)
		}
		for _, p := range x.Properties {
			b.registerExprTree(file, p.Value, scope)
		}
	case *surface.ArrayLiteral:
		for _, el := range x.Elements {
			b.registerExprTree(file, el, scope)
		}
	case *surface.TupleLiteral:
		for _, el := range x.Elements {
			b.registerExprTree(file, el, scope)
		}
	case *surface.FunctionExpr:
		fnScope := newScope(scope)
		for _, p := range x.Params {
			_, inner := normalizeParamMode(p.Type)
			var tsId ids.TypeSyntaxId
			if inner != nil {
				tsId = b.captureTypeSyntaxUnchecked(inner)
			}
			pid := b.addDecl(DeclInfo{Kind: DeclParameter, Name: p.Name, SourceFile: file, Node: p, TypeSyntax: tsId})
			b.sourceFileOf[pid] = file
			fnScope.define(p.Name, pid)
		}
		if x.ReturnType != nil {
			b.captureTypeSyntaxUnchecked(x.ReturnType)
		}
		if x.Body != nil {
			b.registerBlock(file, x.Body, fnScope)
		}
		if x.ExprBody != nil {
			b.registerExprTree(file, x.ExprBody, fnScope)
		}
	case *surface.TryCastExpr:
		b.captureTypeSyntaxUnchecked(x.Target)
		b.registerExprTree(file, x.Value, scope)
	case *surface.AsExpr:
		b.captureTypeSyntaxUnchecked(x.Target)
		b.registerExprTree(file, x.Value, scope)
	case *surface.InstanceOfExpr:
		b.captureTypeSyntaxUnchecked(x.Target)
		b.registerExprTree(file, x.Value, scope)
	case *surface.TypePredicateCallExpr:
		b.registerExprTree(file, x.Call, scope)
	case *surface.SuperCallExpr:
		for _, a := range x.Args {
			b.registerExprTree(file, a.Value, scope)
		}
	}
}

// resolveCallSignatureOf finds the SignatureId of a call/new's callee when
// it is a plain identifier resolvable through the current scope's declared
// function/method; any other callee shape, including an `obj.method`
// member reference, yields InvalidSignature. Resolution through
// inheritance and generic instantiation belongs to the TypeSystem
// (spec.md §4.3); Binding only records the syntactic callee's own
// signature when that much is locally unambiguous.
func (b *Binding) resolveCallSignatureOf(callee surface.Expr, scope *Scope) ids.SignatureId {
	ident, ok := callee.(*surface.Identifier)
	if !ok {
		return ids.InvalidSignature
	}
	declId, ok := scope.find(ident.Name)
	if !ok {
		return ids.InvalidSignature
	}
	return b.sigOfDecl[declId]
}

func (b *Binding) captureTypeSyntaxUnchecked(t surface.TypeSyntax) ids.TypeSyntaxId {
	if t == nil {
		return ids.InvalidTypeSyntax
	}
	return b.regs.addTypeSyntax(t)
}

// --- Public resolve*/capture* API (spec.md §4.1) ---------------------------

// CaptureTypeSyntax captures a surface type-syntax node and returns its id,
// available to the TypeSystem/IrBuilder for on-demand annotations not
// captured during the initial registration walk (e.g. a cast target).
func (b *Binding) CaptureTypeSyntax(t surface.TypeSyntax) ids.TypeSyntaxId {
	return b.captureTypeSyntaxUnchecked(t)
}

// ResolveIdentifier returns the DeclId an identifier expression was bound
// to during registration, or ids.InvalidDecl if resolution failed (already
// accompanied by a diagnostic at registration time).
func (b *Binding) ResolveIdentifier(node *surface.Identifier) (ids.DeclId, bool) {
	id, ok := b.identNodes[node]
	return id, ok
}

// ResolveImport returns the DeclId a local import binding introduced for
// the given module specifier.
func (b *Binding) ResolveImport(spec string) (ids.DeclId, bool) {
	id, ok := b.importDecl[spec]
	return id, ok && id.Valid()
}

// ResolveCallSignature returns the SignatureId bound to a call expression's
// callee at registration time.
func (b *Binding) ResolveCallSignature(call *surface.CallExpr) (ids.SignatureId, bool) {
	id, ok := b.callNodes[call]
	return id, ok && id.Valid()
}

// ResolveConstructorSignature returns the SignatureId bound to a `new`
// expression's callee at registration time.
func (b *Binding) ResolveConstructorSignature(n *surface.NewExpr) (ids.SignatureId, bool) {
	id, ok := b.ctorNodes[n]
	return id, ok && id.Valid()
}

// GetSourceFilePathOfDecl returns the file a DeclId was registered from.
func (b *Binding) GetSourceFilePathOfDecl(id ids.DeclId) (string, bool) {
	f, ok := b.sourceFileOf[id]
	return f, ok
}

// SignatureIdOfDecl returns the SignatureId a function/method/constructor
// DeclId owns, or ids.InvalidSignature if it owns none.
func (b *Binding) SignatureIdOfDecl(id ids.DeclId) ids.SignatureId {
	return b.sigOfDecl[id]
}
