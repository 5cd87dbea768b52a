package irbuilder

import (
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
	"github.com/tsoniclang/tsonic/internal/typesystem"
)

func convertOptionalExpr(ctx *ProgramContext, typeParams []string, e surface.Expr) ir.Expression {
	if e == nil {
		return nil
	}
	return convertExpr(ctx, typeParams, e)
}

// convertExpr dispatches one surface.Expr to its IR converter. Call/New
// follow spec.md §4.4's two-pass protocol: a first ResolveCall pass with
// nil lambda-argument entries to discover each lambda parameter's expected
// type, then argument conversion, then a second pass with the full
// argument-type list to settle the final ParameterTypes/ReturnType.
func convertExpr(ctx *ProgramContext, typeParams []string, e surface.Expr) ir.Expression {
	switch ex := e.(type) {
	case *surface.Literal:
		return convertLiteral(ex)
	case *surface.Identifier:
		return convertIdentifier(ctx, ex)
	case *surface.BinaryExpr:
		return convertBinaryExpr(ctx, typeParams, ex)
	case *surface.UnaryExpr:
		return convertUnaryExpr(ctx, typeParams, ex)
	case *surface.AssignExpr:
		return convertAssignExpr(ctx, typeParams, ex)
	case *surface.ConditionalExpr:
		return convertConditionalExpr(ctx, typeParams, ex)
	case *surface.CallExpr:
		return convertCallExpr(ctx, typeParams, ex, nil)
	case *surface.NewExpr:
		return convertNewExpr(ctx, typeParams, ex)
	case *surface.MemberExpr:
		return convertMemberExpr(ctx, typeParams, ex)
	case *surface.IndexExpr:
		idx := &ir.Index{Object: convertExpr(ctx, typeParams, ex.Object), Index: convertExpr(ctx, typeParams, ex.Index)}
		idx.Sp = ex.Sp
		idx.SetType(elementTypeOf(idx.Object.Type()))
		return idx
	case *surface.ObjectLiteral:
		return convertObjectLiteral(ctx, typeParams, ex)
	case *surface.ArrayLiteral:
		return convertArrayLiteral(ctx, typeParams, ex)
	case *surface.TupleLiteral:
		return convertTupleLiteral(ctx, typeParams, ex)
	case *surface.FunctionExpr:
		return convertFunctionExpr(ctx, typeParams, ex, nil)
	case *surface.TryCastExpr:
		return convertTryCastExpr(ctx, typeParams, ex)
	case *surface.AsExpr:
		return convertAsExpr(ctx, typeParams, ex)
	case *surface.InstanceOfExpr:
		return convertInstanceOfExpr(ctx, typeParams, ex)
	case *surface.TypePredicateCallExpr:
		return convertCallExpr(ctx, typeParams, ex.Call, nil)
	case *surface.SuperCallExpr:
		return convertSuperCallExpr(ctx, typeParams, ex)
	case *surface.ThisExpr:
		return convertThisExpr(ctx, ex)
	}
	bad := &ir.Literal{Kind: ir.LitUndefined, Raw: "undefined"}
	bad.Sp = e.Span()
	bad.SetType(ir.TypeUnknown)
	return bad
}

func convertLiteral(e *surface.Literal) ir.Expression {
	lit := &ir.Literal{Kind: ir.LiteralKind(e.Kind), Raw: e.Raw}
	lit.Sp = e.Sp
	switch e.Kind {
	case surface.LitInteger:
		lit.SetType(ir.TypeInt)
	case surface.LitFloat:
		lit.SetType(ir.TypeNumber)
	case surface.LitString:
		lit.SetType(ir.TypeString)
	case surface.LitBoolean:
		lit.SetType(ir.TypeBoolean)
	case surface.LitNull:
		lit.SetType(ir.TypeNull)
	case surface.LitUndefined:
		lit.SetType(ir.TypeUndefined)
	default:
		lit.SetType(ir.TypeUnknown)
	}
	return lit
}

func convertIdentifier(ctx *ProgramContext, e *surface.Identifier) ir.Expression {
	ref := &ir.IdentifierRef{Name: e.Name}
	ref.Sp = e.Sp
	declId, ok := ctx.B.ResolveIdentifier(e)
	if !ok {
		ctx.Sink.Report(diagnostics.New(diagnostics.SeverityError, diagnostics.CodeUnresolvedBinding, spanLoc(ctx, e.Sp), e.Name))
		ref.Decl = ids.InvalidDecl
		ref.SetType(ir.TypeUnknown)
		return ref
	}
	ref.Decl = declId
	ref.SetType(ctx.typeOfLocal(declId))
	return ref
}

// convertThisExpr lowers the `this` receiver. Outside any class, or inside
// a static method (which has no receiver to bind), it reports
// TSN7311 and falls back to `unknown` rather than fabricating a type.
func convertThisExpr(ctx *ProgramContext, e *surface.ThisExpr) ir.Expression {
	n := &ir.This{ClassName: ctx.CurrentClassName}
	n.Sp = e.Sp
	if ctx.CurrentClassName == "" || ctx.CurrentMethodIsStatic {
		ctx.Sink.Report(diagnostics.New(diagnostics.SeverityError, diagnostics.CodeThisOutsideMethod, spanLoc(ctx, e.Sp)))
		n.SetType(ir.TypeUnknown)
		return n
	}
	n.SetType(ctx.CurrentClassType)
	return n
}

var binaryOpMap = map[surface.BinaryOp]ir.BinaryOp{
	surface.OpAdd: ir.OpAdd, surface.OpSub: ir.OpSub, surface.OpMul: ir.OpMul,
	surface.OpDiv: ir.OpDiv, surface.OpMod: ir.OpMod, surface.OpPow: ir.OpPow,
	surface.OpShl: ir.OpShl, surface.OpShr: ir.OpShr, surface.OpUShr: ir.OpUShr,
	surface.OpLt: ir.OpLt, surface.OpLe: ir.OpLe, surface.OpGt: ir.OpGt, surface.OpGe: ir.OpGe,
	surface.OpEq: ir.OpEq, surface.OpNeq: ir.OpNeq,
	surface.OpStrictEq: ir.OpStrictEq, surface.OpStrictNe: ir.OpStrictNe,
	surface.OpBitAnd: ir.OpBitAnd, surface.OpBitXor: ir.OpBitXor, surface.OpBitOr: ir.OpBitOr,
	surface.OpIn: ir.OpIn, surface.OpInstanceOf: ir.OpInstanceOf,
}

// convertBinaryExpr branches &&/||/?? off to Logical/Nullish nodes: those
// three surface operators have no ir.BinaryOp equivalent (spec.md's IR
// models boolean short-circuit and nullish-coalescing as their own node
// kinds, not as a generic binary operator).
func convertBinaryExpr(ctx *ProgramContext, typeParams []string, e *surface.BinaryExpr) ir.Expression {
	left := convertExpr(ctx, typeParams, e.Left)
	right := convertExpr(ctx, typeParams, e.Right)

	switch e.Op {
	case surface.OpAnd, surface.OpOr:
		n := &ir.Logical{Op: string(e.Op), Left: left, Right: right}
		n.Sp = e.Sp
		n.SetType(ir.TypeBoolean)
		return n
	case surface.OpNullish:
		n := &ir.Nullish{Left: left, Right: right}
		n.Sp = e.Sp
		n.SetType(nonNullableOf(left.Type()))
		return n
	}

	op, ok := binaryOpMap[e.Op]
	if !ok {
		op = ir.OpAdd
	}
	n := &ir.Binary{Op: op, Left: left, Right: right}
	n.Sp = e.Sp
	n.SetType(binaryResultType(op, left.Type(), right.Type()))
	return n
}

func nonNullableOf(t *ir.IrType) *ir.IrType {
	if t == nil || t == ir.TypeNull || t == ir.TypeUndefined {
		return ir.TypeAny
	}
	if t.Kind != ir.KindUnion {
		return t
	}
	members := make([]*ir.IrType, 0, len(t.Members))
	for _, m := range t.Members {
		if m == ir.TypeNull || m == ir.TypeUndefined {
			continue
		}
		members = append(members, m)
	}
	if len(members) == 1 {
		return members[0]
	}
	return &ir.IrType{Kind: ir.KindUnion, Members: members}
}

func binaryResultType(op ir.BinaryOp, left, right *ir.IrType) *ir.IrType {
	switch op {
	case ir.OpLt, ir.OpLe, ir.OpGt, ir.OpGe, ir.OpEq, ir.OpNeq, ir.OpStrictEq, ir.OpStrictNe, ir.OpIn, ir.OpInstanceOf:
		return ir.TypeBoolean
	case ir.OpAdd:
		if left == ir.TypeString || right == ir.TypeString {
			return ir.TypeString
		}
	}
	if left == ir.TypeInt && right == ir.TypeInt {
		return ir.TypeInt
	}
	return ir.TypeNumber
}

var unaryOpMap = map[surface.UnaryOp]ir.UnaryOp{
	surface.OpNeg: ir.OpNeg, surface.OpPos: ir.OpPos, surface.OpNot: ir.OpNot, surface.OpBitNot: ir.OpBitNot,
}

func convertUnaryExpr(ctx *ProgramContext, typeParams []string, e *surface.UnaryExpr) ir.Expression {
	operand := convertExpr(ctx, typeParams, e.Operand)
	op, ok := unaryOpMap[e.Op]
	if !ok {
		op = ir.OpNeg
	}
	n := &ir.Unary{Op: op, Operand: operand}
	n.Sp = e.Sp
	if op == ir.OpNot {
		n.SetType(ir.TypeBoolean)
	} else {
		n.SetType(operand.Type())
	}
	return n
}

func convertAssignExpr(ctx *ProgramContext, typeParams []string, e *surface.AssignExpr) ir.Expression {
	left := convertExpr(ctx, typeParams, e.Left)
	right := convertExpr(ctx, typeParams, e.Right)
	n := &ir.Assign{Op: e.Op, Left: left, Right: right}
	n.Sp = e.Sp
	n.SetType(left.Type())
	return n
}

func convertConditionalExpr(ctx *ProgramContext, typeParams []string, e *surface.ConditionalExpr) ir.Expression {
	cond := convertExpr(ctx, typeParams, e.Cond)
	then := convertExpr(ctx, typeParams, e.Then)
	els := convertExpr(ctx, typeParams, e.Else)
	n := &ir.Conditional{Cond: cond, Then: then, Else: els}
	n.Sp = e.Sp
	if ir.TypesEqual(then.Type(), els.Type()) {
		n.SetType(then.Type())
	} else {
		n.SetType(&ir.IrType{Kind: ir.KindUnion, Members: []*ir.IrType{then.Type(), els.Type()}})
	}
	return n
}

var argModifierMode = map[surface.ArgModifier]ir.ArgMode{
	surface.ArgModeNone: ir.ArgModeValue, surface.ArgModeOut: ir.ArgModeOut,
	surface.ArgModeRef: ir.ArgModeRef, surface.ArgModeInref: ir.ArgModeIn,
}

func argModifierName(m surface.ArgModifier) string {
	switch m {
	case surface.ArgModeOut:
		return "out"
	case surface.ArgModeRef:
		return "ref"
	case surface.ArgModeInref:
		return "inref"
	default:
		return "value"
	}
}

func argModeName(m ir.ArgMode) string {
	switch m {
	case ir.ArgModeOut:
		return "out"
	case ir.ArgModeRef:
		return "ref"
	case ir.ArgModeIn:
		return "inref"
	default:
		return "value"
	}
}

// convertCallExpr implements spec.md §4.4's two-pass call conversion.
// expectedReturnType carries a contextual type down into ResolveCall's
// step 5 (e.g. a variable's declared type feeding a generic factory call).
func convertCallExpr(ctx *ProgramContext, typeParams []string, e *surface.CallExpr, expectedReturnType *ir.IrType) ir.Expression {
	sigId := resolveCallSigId(ctx, typeParams, e)
	explicitArgs := convertTypeArgs(ctx, typeParams, e.ExplicitTypeArgs)
	receiverType := receiverTypeOf(ctx, typeParams, e.Callee)

	// First pass: resolve with lambda arguments absent (nil) so their
	// expected parameter type can be discovered before conversion.
	firstPass := ctx.Types.ResolveCall(typesystem.CallQuery{
		SigId: sigId, ArgumentCount: len(e.Args), ReceiverType: receiverType,
		ExplicitTypeArgs: explicitArgs, ExpectedReturnType: expectedReturnType,
	})

	args := make([]ir.Arg, len(e.Args))
	argTypes := make([]*ir.IrType, len(e.Args))
	for i, a := range e.Args {
		var expected *ir.IrType
		if i < len(firstPass.ParameterTypes) {
			expected = firstPass.ParameterTypes[i]
		}
		val := convertArgValue(ctx, typeParams, a.Value, expected)
		mode, ok := argModifierMode[a.Modifier]
		if !ok {
			mode = ir.ArgModeValue
		}
		if i < len(firstPass.ParameterModes) && firstPass.ParameterModes[i] != mode && a.Modifier != surface.ArgModeNone {
			ctx.Sink.Report(diagnostics.New(diagnostics.SeverityError, diagnostics.CodeModifierConflict,
				spanLoc(ctx, a.Value.Span()), argModifierName(a.Modifier), argModeName(firstPass.ParameterModes[i])))
		}
		if i < len(firstPass.ParameterModes) {
			mode = firstPass.ParameterModes[i]
		}
		args[i] = ir.Arg{Value: val, Spread: a.Spread, Mode: mode}
		argTypes[i] = val.Type()
	}

	final := ctx.Types.ResolveCall(typesystem.CallQuery{
		SigId: sigId, ArgumentCount: len(e.Args), ReceiverType: receiverType,
		ExplicitTypeArgs: explicitArgs, ArgTypes: argTypes, ExpectedReturnType: expectedReturnType,
	})

	call := &ir.Call{
		Callee: convertExpr(ctx, typeParams, e.Callee), Signature: sigId, ExplicitTypeArgs: explicitArgs,
		Args: args, ParameterTypes: final.ParameterTypes, ParameterModes: final.ParameterModes,
	}
	call.Sp = e.Sp
	call.SetType(final.ReturnType)
	return call
}

// resolveCallSigId answers the SigId a call expression resolves to:
// Binding already recorded it at registration time for a plain-identifier
// callee; a member-expression callee (obj.method(...)) has no Binding-level
// signature (Binding only resolves syntactically unambiguous identifier
// callees — see Binding.resolveCallSignatureOf), so the TypeSystem walks
// the receiver's nominal inheritance chain instead.
func resolveCallSigId(ctx *ProgramContext, typeParams []string, e *surface.CallExpr) ids.SignatureId {
	if sigId, ok := ctx.B.ResolveCallSignature(e); ok {
		return sigId
	}
	if m, ok := e.Callee.(*surface.MemberExpr); ok {
		recv := convertExpr(ctx, typeParams, m.Object)
		return ctx.Types.ResolveMemberSignature(recv.Type(), m.Property)
	}
	return ids.InvalidSignature
}

func receiverTypeOf(ctx *ProgramContext, typeParams []string, callee surface.Expr) *ir.IrType {
	if m, ok := callee.(*surface.MemberExpr); ok {
		return convertExpr(ctx, typeParams, m.Object).Type()
	}
	return nil
}

func convertArgValue(ctx *ProgramContext, typeParams []string, e surface.Expr, expected *ir.IrType) ir.Expression {
	if fn, ok := e.(*surface.FunctionExpr); ok {
		return convertFunctionExpr(ctx, typeParams, fn, expected)
	}
	if call, ok := e.(*surface.CallExpr); ok {
		return convertCallExpr(ctx, typeParams, call, expected)
	}
	return convertExpr(ctx, typeParams, e)
}

func convertTypeArgs(ctx *ProgramContext, typeParams []string, syntaxArgs []surface.TypeSyntax) []*ir.IrType {
	if len(syntaxArgs) == 0 {
		return nil
	}
	out := make([]*ir.IrType, len(syntaxArgs))
	for i, t := range syntaxArgs {
		out[i] = ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(t), typeParams)
	}
	return out
}

func convertNewExpr(ctx *ProgramContext, typeParams []string, e *surface.NewExpr) ir.Expression {
	sigId, _ := ctx.B.ResolveConstructorSignature(e)
	explicitArgs := convertTypeArgs(ctx, typeParams, e.ExplicitTypeArgs)

	firstPass := ctx.Types.ResolveCall(typesystem.CallQuery{SigId: sigId, ArgumentCount: len(e.Args), ExplicitTypeArgs: explicitArgs})

	args := make([]ir.Arg, len(e.Args))
	argTypes := make([]*ir.IrType, len(e.Args))
	for i, a := range e.Args {
		var expected *ir.IrType
		if i < len(firstPass.ParameterTypes) {
			expected = firstPass.ParameterTypes[i]
		}
		val := convertArgValue(ctx, typeParams, a.Value, expected)
		mode := ir.ArgModeValue
		if i < len(firstPass.ParameterModes) {
			mode = firstPass.ParameterModes[i]
		}
		args[i] = ir.Arg{Value: val, Spread: a.Spread, Mode: mode}
		argTypes[i] = val.Type()
	}

	final := ctx.Types.ResolveCall(typesystem.CallQuery{SigId: sigId, ArgumentCount: len(e.Args), ExplicitTypeArgs: explicitArgs, ArgTypes: argTypes})

	n := &ir.New{
		Callee: convertExpr(ctx, typeParams, e.Callee), Signature: sigId, ExplicitTypeArgs: explicitArgs,
		Args: args, ParameterTypes: final.ParameterTypes, ParameterModes: final.ParameterModes,
	}
	n.Sp = e.Sp
	n.SetType(constructedTypeOf(ctx, typeParams, e.Callee, explicitArgs))
	return n
}

func constructedTypeOf(ctx *ProgramContext, typeParams []string, callee surface.Expr, explicitArgs []*ir.IrType) *ir.IrType {
	ident, ok := callee.(*surface.Identifier)
	if !ok {
		return ir.TypeUnknown
	}
	return ir.NewReference(ident.Name, explicitArgs, ids.InvalidType)
}

func convertMemberExpr(ctx *ProgramContext, typeParams []string, e *surface.MemberExpr) ir.Expression {
	obj := convertExpr(ctx, typeParams, e.Object)
	memberType := ctx.Types.TypeOfMember(obj.Type(), e.Property)
	memberId := ctx.Types.ResolveMemberId(obj.Type(), e.Property)
	n := &ir.Member{Object: obj, Property: e.Property, Member: memberId, Optional: e.Optional}
	n.Sp = e.Sp
	if e.Optional {
		n.SetType(&ir.IrType{Kind: ir.KindUnion, Members: []*ir.IrType{memberType, ir.TypeNull}})
	} else {
		n.SetType(memberType)
	}
	return n
}

func convertObjectLiteral(ctx *ProgramContext, typeParams []string, e *surface.ObjectLiteral) ir.Expression {
	props := make([]ir.ObjectProperty, 0, len(e.Properties))
	members := make([]ir.ObjectMember, 0, len(e.Properties))
	for _, p := range e.Properties {
		if p.IsSpread || p.Computed || p.IsMethod || p.IsAccessor {
			ctx.Sink.Report(diagnostics.New(diagnostics.SeverityError, diagnostics.CodeSynthesisIneligible, spanLoc(ctx, p.Sp), p.Key))
			continue
		}
		val := convertExpr(ctx, typeParams, p.Value)
		props = append(props, ir.ObjectProperty{Name: p.Key, Value: val, Optional: p.Optional, Readonly: p.Readonly})
		members = append(members, ir.ObjectMember{Name: p.Key, Type: val.Type(), Optional: p.Optional, Readonly: p.Readonly})
	}
	n := &ir.ObjectLiteral{Properties: props}
	n.Sp = e.Sp
	if e.Contextual != nil {
		n.SetType(ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(e.Contextual), typeParams))
	} else {
		n.SetType(&ir.IrType{Kind: ir.KindObject, ObjectMembers: members})
	}
	return n
}

func convertArrayLiteral(ctx *ProgramContext, typeParams []string, e *surface.ArrayLiteral) ir.Expression {
	elems := make([]ir.Expression, len(e.Elements))
	var elemType *ir.IrType = ir.TypeAny
	for i, el := range e.Elements {
		elems[i] = convertExpr(ctx, typeParams, el)
		if i == 0 {
			elemType = elems[i].Type()
		} else if !ir.TypesEqual(elemType, elems[i].Type()) {
			elemType = ir.TypeAny
		}
	}
	origin := e.Origin
	if origin == "" {
		origin = "explicit"
	}
	n := &ir.ArrayLiteral{Elements: elems, Origin: origin}
	n.Sp = e.Sp
	n.SetType(ir.NewArray(elemType, origin))
	return n
}

func convertTupleLiteral(ctx *ProgramContext, typeParams []string, e *surface.TupleLiteral) ir.Expression {
	elems := make([]ir.Expression, len(e.Elements))
	elemTypes := make([]*ir.IrType, len(e.Elements))
	for i, el := range e.Elements {
		elems[i] = convertExpr(ctx, typeParams, el)
		elemTypes[i] = elems[i].Type()
	}
	n := &ir.TupleLiteral{Elements: elems}
	n.Sp = e.Sp
	n.SetType(&ir.IrType{Kind: ir.KindTuple, TupleElems: elemTypes})
	return n
}

// convertFunctionExpr converts a lambda. expected, when non-nil and a
// KindFunction, supplies each annotation-free parameter's type from the
// call site it was passed to (spec.md §4.4's two-pass protocol); a lambda
// converted outside any call argument position (no expected type) falls
// back to its own ref<T>/out<T>/inref<T> marker unwrapping per parameter.
func convertFunctionExpr(ctx *ProgramContext, typeParams []string, e *surface.FunctionExpr, expected *ir.IrType) ir.Expression {
	var expectedParams []*ir.IrType
	var expectedReturn *ir.IrType
	if expected != nil {
		if fn := ctx.Types.DelegateToFunctionType(expected); fn != nil {
			expected = fn
		}
		if expected.Kind == ir.KindFunction {
			expectedParams = expected.FuncParams
			expectedReturn = expected.FuncReturn
		}
	}

	params := make([]ir.Param, len(e.Params))
	for i, p := range e.Params {
		mode, inner := normalizeLambdaParamMode(p.Type)
		var t *ir.IrType
		if inner != nil {
			t = ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(inner), typeParams)
		} else if i < len(expectedParams) {
			t = expectedParams[i]
		} else {
			t = ir.TypeAny
		}
		declId := declIdOf(ctx, p)
		ctx.setLocalType(declId, t)
		params[i] = ir.Param{
			Decl: declId, Name: p.Name, Type: t, Mode: mode,
			Optional: p.Optional || p.Default != nil, Default: convertOptionalExpr(ctx, typeParams, p.Default),
		}
	}

	var retType *ir.IrType = ir.TypeVoid
	if e.ReturnType != nil {
		retType = ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(e.ReturnType), typeParams)
	} else if expectedReturn != nil {
		retType = expectedReturn
	}

	n := &ir.Lambda{Params: params, ReturnType: retType, IsGenerator: e.IsGenerator}
	n.Sp = e.Sp
	if e.Body != nil {
		n.Body = convertBlock(ctx, typeParams, e.Body)
	} else {
		n.ExprBody = convertExpr(ctx, typeParams, e.ExprBody)
		if e.ReturnType == nil && expectedReturn == nil {
			retType = n.ExprBody.Type()
			n.ReturnType = retType
		}
	}
	n.SetType(&ir.IrType{Kind: ir.KindFunction, FuncParams: paramTypesOf(params), FuncReturn: n.ReturnType})
	return n
}

func paramTypesOf(params []ir.Param) []*ir.IrType {
	out := make([]*ir.IrType, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

func convertTryCastExpr(ctx *ProgramContext, typeParams []string, e *surface.TryCastExpr) ir.Expression {
	target := ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(e.Target), typeParams)
	n := &ir.TryCast{Target: target, Value: convertExpr(ctx, typeParams, e.Value)}
	n.Sp = e.Sp
	n.SetType(&ir.IrType{Kind: ir.KindUnion, Members: []*ir.IrType{target, ir.TypeNull}})
	return n
}

// convertAsExpr builds the AsCast node; int-narrowing soundness (DESIGN.md
// Open Question resolution #1) is validated later by internal/numeric once
// NumericProof has actually been attached to Value, not here.
func convertAsExpr(ctx *ProgramContext, typeParams []string, e *surface.AsExpr) ir.Expression {
	target := ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(e.Target), typeParams)
	val := convertExpr(ctx, typeParams, e.Value)
	n := &ir.AsCast{Target: target, Value: val}
	n.Sp = e.Sp
	n.SetType(target)
	return n
}

func convertInstanceOfExpr(ctx *ProgramContext, typeParams []string, e *surface.InstanceOfExpr) ir.Expression {
	target := ctx.Types.TypeFromSyntax(ctx.B.CaptureTypeSyntax(e.Target), typeParams)
	n := &ir.InstanceOf{Target: target, Value: convertExpr(ctx, typeParams, e.Value)}
	n.Sp = e.Sp
	n.SetType(ir.TypeBoolean)
	return n
}

func convertSuperCallExpr(ctx *ProgramContext, typeParams []string, e *surface.SuperCallExpr) ir.Expression {
	args := make([]ir.Arg, len(e.Args))
	for i, a := range e.Args {
		mode, ok := argModifierMode[a.Modifier]
		if !ok {
			mode = ir.ArgModeValue
		}
		args[i] = ir.Arg{Value: convertExpr(ctx, typeParams, a.Value), Spread: a.Spread, Mode: mode}
	}
	n := &ir.SuperCall{Args: args}
	n.Sp = e.Sp
	n.SetType(ir.TypeVoid)
	return n
}
