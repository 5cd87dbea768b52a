package irbuilder

import (
	"strconv"

	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
)

// convertTopDecl dispatches one top-level surface.Decl to its IR
// declaration converter. Every branch here mirrors a case Binding's own
// registerTopDecl already switches on (spec.md §4.1/§4.4 share the same
// closed decl set). Returns a slice because a destructuring VarDecl lowers
// to more than one VarStatement (see desugarPattern).
func convertTopDecl(ctx *ProgramContext, d surface.Decl) []ir.Statement {
	switch decl := d.(type) {
	case *surface.VarDecl:
		return convertVarDeclStatement(ctx, nil, decl)
	case *surface.FunctionDecl:
		return []ir.Statement{convertFunctionDecl(ctx, nil, decl)}
	case *surface.ClassDecl:
		return []ir.Statement{convertClassDecl(ctx, decl)}
	case *surface.InterfaceDecl:
		return []ir.Statement{convertInterfaceDecl(ctx, decl)}
	case *surface.TypeAliasDecl:
		return []ir.Statement{convertTypeAliasDecl(ctx, decl)}
	case *surface.EnumDecl:
		return []ir.Statement{convertEnumDecl(ctx, decl)}
	}
	return nil
}

func typeParamNames(tps []*surface.TypeParam) []string {
	if len(tps) == 0 {
		return nil
	}
	names := make([]string, len(tps))
	for i, tp := range tps {
		names[i] = tp.Name
	}
	return names
}

// typeParamConstraints captures each declared `T extends ...` bound as an
// IrType, keyed by type-parameter name, for internal/mono's structural-
// constraint adapter synthesis (spec.md §4.7). A type parameter with no
// Constraint is simply absent from the returned map.
func typeParamConstraints(ctx *ProgramContext, tps []*surface.TypeParam, scope []string) map[string]*ir.IrType {
	var out map[string]*ir.IrType
	for _, tp := range tps {
		if tp.Constraint == nil {
			continue
		}
		if out == nil {
			out = make(map[string]*ir.IrType)
		}
		out[tp.Name] = ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(tp.Constraint), scope)
	}
	return out
}

func declIdOf(ctx *ProgramContext, node surface.Node) ids.DeclId {
	id, _ := ctx.B.DeclIdOfNode(node)
	return id
}

// normalizeLambdaParamMode unwraps a ref<T>/out<T>/inref<T> marker wrapper
// type for a lambda parameter. Lambdas never get a Binding SignatureInfo
// (registerExprTree's FunctionExpr branch only captures param type syntax,
// it never calls registerSignatureFromParams), so unlike a top-level
// function/method's params this cannot be read back off a SignatureInfo and
// must be unwrapped locally, duplicating Binding's own
// normalizeParamMode — the two packages cannot share the unexported helper.
var lambdaRefMarkerNames = map[string]ir.ParamMode{
	"ref":   ir.ModeRef,
	"out":   ir.ModeOut,
	"inref": ir.ModeIn,
}

func normalizeLambdaParamMode(t surface.TypeSyntax) (ir.ParamMode, surface.TypeSyntax) {
	named, ok := t.(*surface.NamedTypeSyntax)
	if !ok || len(named.Arguments) != 1 {
		return ir.ModeValue, t
	}
	if mode, ok := lambdaRefMarkerNames[named.Name]; ok {
		return mode, named.Arguments[0]
	}
	return ir.ModeValue, t
}

func toIrParamMode(m surface.ParamMode) ir.ParamMode {
	switch m {
	case surface.ModeRef:
		return ir.ModeRef
	case surface.ModeOut:
		return ir.ModeOut
	case surface.ModeIn:
		return ir.ModeIn
	default:
		return ir.ModeValue
	}
}

// convertSignatureParams builds ir.Param values for a function/method
// declaration's parameter list from the SignatureInfo Binding already
// captured (marker-unwrapped type syntax + normalized mode), zipped
// positionally with the surface params for Name/Default/DeclId.
func convertSignatureParams(ctx *ProgramContext, sigId ids.SignatureId, params []*surface.Param, typeParams []string) []ir.Param {
	info, ok := ctx.B.Registries().Signature(sigId)
	out := make([]ir.Param, len(params))
	for i, p := range params {
		var t *ir.IrType = ir.TypeAny
		mode := ir.ModeValue
		if ok && i < len(info.ParamTypeSyntax) {
			if info.ParamTypeSyntax[i].Valid() {
				t = ctx.Types.TypeFromSyntax(info.ParamTypeSyntax[i], typeParams)
			} else {
				ctx.Sink.Report(diagnostics.New(diagnostics.SeverityError, diagnostics.CodeMissingParamAnnotation,
					spanLoc(ctx, p.Sp), p.Name))
			}
			mode = toIrParamMode(info.ParamModes[i])
		}
		out[i] = ir.Param{
			Decl:     declIdOf(ctx, p),
			Name:     p.Name,
			Type:     t,
			Mode:     mode,
			Optional: p.Optional || p.Default != nil,
			Default:  convertOptionalExpr(ctx, typeParams, p.Default),
		}
	}
	return out
}

func spanLoc(ctx *ProgramContext, sp surface.Span) *diagnostics.Location {
	return &diagnostics.Location{File: ctx.File, Line: sp.Start.Line, Column: sp.Start.Column}
}

func convertFunctionDecl(ctx *ProgramContext, enclosingTypeParams []string, d *surface.FunctionDecl) *ir.FunctionDecl {
	declId := declIdOf(ctx, d)
	sigId := ctx.B.SignatureIdOfDecl(declId)
	tps := typeParamNames(d.TypeParams)
	allTps := append(append([]string{}, enclosingTypeParams...), tps...)

	var retType *ir.IrType = ir.TypeVoid
	if info, ok := ctx.B.Registries().Signature(sigId); ok && info.ReturnTypeSyntax.Valid() {
		retType = ctx.Types.TypeFromSyntax(info.ReturnTypeSyntax, allTps)
	}

	fn := &ir.FunctionDecl{
		Sp:          d.Sp,
		Decl:        declId,
		Signature:   sigId,
		Name:        d.Name,
		TypeParams:  tps,
		TypeParamConstraints: typeParamConstraints(ctx, d.TypeParams, allTps),
		Params:      convertSignatureParams(ctx, sigId, d.Params, allTps),
		ReturnType:  retType,
		IsGenerator: d.IsGenerator,
		IsAsync:     d.IsAsync,
		RequiresSpecialization: len(tps) > 0,
	}
	if d.Body != nil {
		fn.Body = convertBlock(ctx, allTps, d.Body)
	}
	return fn
}

func convertMethodMember(ctx *ProgramContext, classTypeParams []string, m *surface.MethodMember) *ir.FunctionDecl {
	declId := declIdOf(ctx, m)
	sigId := ctx.B.SignatureIdOfDecl(declId)
	tps := typeParamNames(m.TypeParams)
	allTps := append(append([]string{}, classTypeParams...), tps...)

	var retType *ir.IrType = ir.TypeVoid
	if info, ok := ctx.B.Registries().Signature(sigId); ok && info.ReturnTypeSyntax.Valid() {
		retType = ctx.Types.TypeFromSyntax(info.ReturnTypeSyntax, allTps)
	}

	fn := &ir.FunctionDecl{
		Sp:          m.Sp,
		Decl:        declId,
		Signature:   sigId,
		Name:        m.Name,
		TypeParams:  tps,
		TypeParamConstraints: typeParamConstraints(ctx, m.TypeParams, allTps),
		Params:      convertSignatureParams(ctx, sigId, m.Params, allTps),
		ReturnType:  retType,
		IsGenerator: m.IsGenerator,
		IsStatic:    m.Static,
		RequiresSpecialization: len(tps) > 0,
	}
	if m.Body != nil {
		prevStatic := ctx.CurrentMethodIsStatic
		ctx.CurrentMethodIsStatic = m.Static
		fn.Body = convertBlock(ctx, allTps, m.Body)
		ctx.CurrentMethodIsStatic = prevStatic
	}
	return fn
}

func convertPropertyMember(ctx *ProgramContext, typeParams []string, p *surface.PropertyMember) ir.PropertyDecl {
	declId := declIdOf(ctx, p)
	var t *ir.IrType = ir.TypeAny
	if info, ok := ctx.B.Registries().Decl(declId); ok && info.TypeSyntax.Valid() {
		t = ctx.Types.TypeFromSyntax(info.TypeSyntax, typeParams)
	}
	return ir.PropertyDecl{
		Decl:     declId,
		Name:     p.Name,
		Type:     t,
		Optional: p.Optional,
		Readonly: p.Readonly,
		Static:   p.Static,
	}
}

// selfTypeSyntax builds the NamedTypeSyntax a class's own declaration
// denotes when referenced from inside its own body: its own name applied
// to its own type parameters as arguments, so a generic class's `this`
// carries the same type parameters its methods already see (e.g. `this`
// inside `class Box<T>` types as `Box<T>`, not the unparameterized `Box`).
func selfTypeSyntax(name string, tps []string) *surface.NamedTypeSyntax {
	args := make([]surface.TypeSyntax, len(tps))
	for i, tp := range tps {
		args[i] = &surface.NamedTypeSyntax{Name: tp}
	}
	return &surface.NamedTypeSyntax{Name: name, Arguments: args}
}

func convertClassDecl(ctx *ProgramContext, d *surface.ClassDecl) *ir.ClassDecl {
	declId := declIdOf(ctx, d)
	tps := typeParamNames(d.TypeParams)

	var base *ir.IrType
	if d.Extends != nil {
		base = ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(d.Extends), tps)
	}
	implements := make([]*ir.IrType, len(d.Implements))
	for i, iface := range d.Implements {
		implements[i] = ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(iface), tps)
	}
	props := make([]ir.PropertyDecl, len(d.Properties))
	for i, p := range d.Properties {
		props[i] = convertPropertyMember(ctx, tps, p)
	}

	prevClassName, prevClassType := ctx.CurrentClassName, ctx.CurrentClassType
	ctx.CurrentClassName = d.Name
	ctx.CurrentClassType = ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(selfTypeSyntax(d.Name, tps)), tps)

	methods := make([]*ir.FunctionDecl, len(d.Methods))
	for i, m := range d.Methods {
		methods[i] = convertMethodMember(ctx, tps, m)
	}
	var ctor *ir.FunctionDecl
	if d.Ctor != nil {
		ctor = convertMethodMember(ctx, tps, d.Ctor)
	}

	ctx.CurrentClassName, ctx.CurrentClassType = prevClassName, prevClassType

	return &ir.ClassDecl{
		Sp:         d.Sp,
		Decl:       declId,
		Name:       d.Name,
		TypeParams: tps,
		TypeParamConstraints: typeParamConstraints(ctx, d.TypeParams, tps),
		BaseType:   base,
		Implements: implements,
		Properties: props,
		Methods:    methods,
		Ctor:       ctor,
	}
}

func convertInterfaceDecl(ctx *ProgramContext, d *surface.InterfaceDecl) *ir.InterfaceDecl {
	declId := declIdOf(ctx, d)
	tps := typeParamNames(d.TypeParams)

	extends := make([]*ir.IrType, len(d.Extends))
	for i, e := range d.Extends {
		extends[i] = ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(e), tps)
	}
	props := make([]ir.PropertyDecl, len(d.Properties))
	for i, p := range d.Properties {
		props[i] = convertPropertyMember(ctx, tps, p)
	}
	methods := make([]*ir.FunctionDecl, len(d.Methods))
	for i, m := range d.Methods {
		methods[i] = convertMethodMember(ctx, tps, m)
	}

	return &ir.InterfaceDecl{
		Sp:         d.Sp,
		Decl:       declId,
		Name:       d.Name,
		TypeParams: tps,
		Extends:    extends,
		Properties: props,
		Methods:    methods,
	}
}

func convertTypeAliasDecl(ctx *ProgramContext, d *surface.TypeAliasDecl) *ir.TypeAliasDecl {
	declId := declIdOf(ctx, d)
	tps := typeParamNames(d.TypeParams)
	var value *ir.IrType = ir.TypeUnknown
	if d.Value != nil {
		value = ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(d.Value), tps)
	}
	return &ir.TypeAliasDecl{
		Sp:            d.Sp,
		Decl:          declId,
		Name:          d.Name,
		TypeParams:    tps,
		Value:         value,
		IsObjectAlias: value.Kind == ir.KindObject,
	}
}

func convertEnumDecl(ctx *ProgramContext, d *surface.EnumDecl) *ir.EnumDecl {
	declId := declIdOf(ctx, d)
	members := make([]ir.EnumMember, len(d.Members))
	next := int64(0)
	for i, m := range d.Members {
		v := next
		if m.Value != nil {
			if lit, ok := evalIntLiteral(m.Value); ok {
				v = lit
			}
		}
		members[i] = ir.EnumMember{Name: m.Name, Value: v}
		next = v + 1
	}
	return &ir.EnumDecl{
		Sp:      d.Sp,
		Decl:    declId,
		Name:    d.Name,
		Members: members,
	}
}

// evalIntLiteral reads an enum member's explicit value as a compile-time
// integer constant (spec.md enums carry only auto-numbered or integer-
// literal members; any richer initializer is out of scope per spec.md §1).
func evalIntLiteral(e surface.Expr) (int64, bool) {
	switch v := e.(type) {
	case *surface.Literal:
		if v.Kind != surface.LitInteger {
			return 0, false
		}
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		return n, err == nil
	case *surface.UnaryExpr:
		if v.Op == surface.OpNeg {
			n, ok := evalIntLiteral(v.Operand)
			return -n, ok
		}
	}
	return 0, false
}
