package typesystem

import (
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
)

// CallQuery is resolveCall's input (spec.md §4.3): `{ sigId, argumentCount,
// receiverType?, explicitTypeArgs?, argTypes?, expectedReturnType?, site? }`.
type CallQuery struct {
	SigId              ids.SignatureId
	ArgumentCount      int
	ReceiverType       *ir.IrType
	ExplicitTypeArgs   []*ir.IrType
	ArgTypes           []*ir.IrType // nil entries mean "not yet known" (lambda arg, first pass)
	ExpectedReturnType *ir.IrType
}

// ResolvedCall is resolveCall's output.
type ResolvedCall struct {
	ParameterTypes []*ir.IrType
	ParameterModes []ir.ArgMode
	ReturnType     *ir.IrType
	// TypePredicateParam/TypePredicateType are set when the signature
	// declares `x is T` as its return type.
	TypePredicateParam string
	TypePredicateType  *ir.IrType
}

// ResolveCall implements spec.md §4.3's central protocol. It always
// returns arrays sized to q.ArgumentCount (INV-1): a missing signature is
// not an error here, it is a poisoned result.
func (s *System) ResolveCall(q CallQuery) *ResolvedCall {
	raw := s.rawSignatureOf(q.SigId)
	if raw == nil {
		return poisonedCall(q.ArgumentCount)
	}

	subst := make(map[string]*ir.IrType, len(raw.typeParams))

	// Step 2: explicit type arguments seed the substitution directly.
	for i, name := range raw.typeParams {
		if i < len(q.ExplicitTypeArgs) && q.ExplicitTypeArgs[i] != nil {
			subst[name] = q.ExplicitTypeArgs[i]
		}
	}

	// Step 3: receiver position in the inheritance chain.
	if q.ReceiverType != nil {
		s.mergeReceiverSubstitution(q.ReceiverType, raw, subst)
	}

	// Step 4: unify each parameter template against its actual argument.
	if q.ArgTypes != nil {
		n := len(raw.paramTypes)
		for i := 0; i < n && i < len(q.ArgTypes); i++ {
			if q.ArgTypes[i] == nil {
				continue // lambda argument not yet converted (first pass)
			}
			structuralUnify(raw.paramTypes[i], q.ArgTypes[i], subst)
		}
	}

	// Step 5: expected return type, merged only where it agrees.
	if q.ExpectedReturnType != nil {
		structuralUnifyUnique(raw.returnType, q.ExpectedReturnType, subst)
	}

	// Step 6: apply the final substitution.
	result := &ResolvedCall{
		ParameterTypes: padTypes(applySubstAll(raw.paramTypes, subst), q.ArgumentCount),
		ParameterModes: padModes(argModesOf(raw.paramModes), q.ArgumentCount),
		ReturnType:     applySubst(raw.returnType, subst),
	}

	// Step 7: resolve any type predicate through the same substitution.
	if raw.predicateParam != "" {
		result.TypePredicateParam = raw.predicateParam
		result.TypePredicateType = applySubst(raw.predicateType, subst)
	}

	return result
}

func poisonedCall(argumentCount int) *ResolvedCall {
	types := make([]*ir.IrType, argumentCount)
	modes := make([]ir.ArgMode, argumentCount)
	for i := range types {
		types[i] = ir.TypeUnknown
		modes[i] = ir.ArgModeValue
	}
	return &ResolvedCall{ParameterTypes: types, ParameterModes: modes, ReturnType: ir.TypeUnknown}
}

func padTypes(ts []*ir.IrType, n int) []*ir.IrType {
	out := make([]*ir.IrType, n)
	for i := range out {
		if i < len(ts) && ts[i] != nil {
			out[i] = ts[i]
		} else {
			out[i] = ir.TypeUnknown
		}
	}
	return out
}

func padModes(ms []ir.ArgMode, n int) []ir.ArgMode {
	out := make([]ir.ArgMode, n)
	for i := range out {
		if i < len(ms) {
			out[i] = ms[i]
		} else {
			out[i] = ir.ArgModeValue
		}
	}
	return out
}

func argModesOf(modes []ir.ArgMode) []ir.ArgMode {
	out := make([]ir.ArgMode, len(modes))
	copy(out, modes)
	return out
}

// mergeReceiverSubstitution binds the declaring type's own parameters from
// receiverType's position in the nominal inheritance chain, per spec.md
// §4.3's "Inheritance substitution": the owning type's type parameters are
// substituted from the receiver's instantiation, not just the signature's
// own type parameters.
func (s *System) mergeReceiverSubstitution(receiverType *ir.IrType, raw *rawSignature, subst map[string]*ir.IrType) {
	if receiverType.Kind != ir.KindReference {
		return
	}
	info, ok := s.nominal.byName[receiverType.RefName]
	if !ok {
		return
	}
	for i, name := range info.typeParams {
		if i < len(receiverType.RefArgs) {
			subst[name] = receiverType.RefArgs[i]
		}
	}
}

// rawSignatureOf builds (and caches) the uninstantiated shape of a
// signature directly from Binding's captured SignatureInfo, converting
// each captured TypeSyntaxId through TypeFromSyntax with the signature's
// own type parameters in scope.
func (s *System) rawSignatureOf(sigId ids.SignatureId) *rawSignature {
	if raw, ok := s.c.signatureRaw[sigId]; ok {
		return raw
	}
	info, ok := s.b.Registries().Signature(sigId)
	if !ok {
		return nil
	}
	raw := s.buildRawSignature(info)
	s.c.signatureRaw[sigId] = raw
	return raw
}

func (s *System) buildRawSignature(info binding.SignatureInfo) *rawSignature {
	paramTypes := make([]*ir.IrType, len(info.ParamTypeSyntax))
	for i, tsId := range info.ParamTypeSyntax {
		if tsId.Valid() {
			paramTypes[i] = s.TypeFromSyntax(tsId, info.TypeParams)
		} else {
			paramTypes[i] = ir.TypeAny
		}
	}

	paramModes := make([]ir.ArgMode, len(info.ParamModes))
	for i, m := range info.ParamModes {
		paramModes[i] = toArgMode(m)
	}

	raw := &rawSignature{
		typeParams:    info.TypeParams,
		paramTypes:    paramTypes,
		paramModes:    paramModes,
		paramOptional: info.ParamOptional,
		returnType:    ir.TypeVoid,
	}
	if info.ReturnTypeSyntax.Valid() {
		raw.returnType = s.TypeFromSyntax(info.ReturnTypeSyntax, info.TypeParams)
	}
	if info.TypePredicateParam != "" {
		// `x is T` is a type-level assertion; the signature's actual
		// runtime return type is always boolean.
		raw.returnType = ir.TypeBoolean
		raw.predicateParam = info.TypePredicateParam
		raw.predicateType = ir.TypeAny
		if info.TypePredicateSyntax.Valid() {
			raw.predicateType = s.TypeFromSyntax(info.TypePredicateSyntax, info.TypeParams)
		}
	}
	return raw
}

func toArgMode(m binding.ParamMode) ir.ArgMode {
	switch m {
	case surface.ModeRef:
		return ir.ArgModeRef
	case surface.ModeOut:
		return ir.ArgModeOut
	case surface.ModeIn:
		return ir.ArgModeIn
	default:
		return ir.ArgModeValue
	}
}

// DelegateToFunctionType implements spec.md §4.3's
// `delegateToFunctionType(t) → IrType?`: turns a nominal delegate type
// into a structural function type for lambda contextual typing. A
// delegate is represented as a single-method interface whose sole method
// becomes the function signature; any other shape yields nil.
func (s *System) DelegateToFunctionType(t *ir.IrType) *ir.IrType {
	if t == nil || t.Kind != ir.KindReference {
		return nil
	}
	info, ok := s.nominal.byName[t.RefName]
	if !ok || info.isClass || len(info.methods) != 1 || len(info.properties) != 0 {
		return nil
	}
	localSubst := substFromArgs(info.typeParams, t.RefArgs)
	return applySubst(s.methodType(info.methods[0], info.typeParams), localSubst)
}
