// Package typesystem is the compiler's sole type authority (spec.md §4.3):
// typeOfDecl, typeOfMember, typeFromSyntax, resolveCall, and
// delegateToFunctionType all live here, and no other component queries
// types any other way.
//
// Grounded on the teacher's internal/typesystem package: types.go's
// Type/Apply/FreeTypeVariables interface and cycle-safe substitution
// (ApplyWithCycleCheck's visited-set recursion is the direct model for
// this package's own cycle-safe typeFromSyntax), unify.go's structural
// Unify/Bind/OccursCheck (the model for resolveCall's argument-type
// unification step), and kind_checker.go's walk-and-cache discipline. The
// Hindley-Milner type-variable machinery itself is replaced: this
// compiler's IrType is a closed, non-inferring sum type (spec.md §3), so
// there are no TVars or Kind values here, only substitution over declared
// generic parameter names.
package typesystem

import (
	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// caches mirrors spec.md §4.3's "Shared resources" list: signatureRawCache,
// memberDeclaredTypeCache, nominalMemberLookupCache, declTypeCache. All are
// mutable within a compilation, keyed by opaque ids, and never invalidated
// except at the start of a fresh compilation (a fresh *System).
type caches struct {
	signatureRaw        map[ids.SignatureId]*rawSignature
	memberDeclaredType   map[memberKey]*ir.IrType
	nominalMemberLookup  map[nominalLookupKey]ids.MemberId
	declType             map[ids.DeclId]*ir.IrType
}

type memberKey struct {
	receiver string // stableIrTypeKey of the receiver type
	member   string
}

type nominalLookupKey struct {
	typeName string
	member   string
}

// rawSignature is the uninstantiated signature shape resolveCall starts
// from before substitution (spec.md §4.3 step 1: "look up the raw
// signature").
type rawSignature struct {
	typeParams       []string
	paramTypes       []*ir.IrType
	paramModes       []ir.ArgMode
	paramOptional    []bool
	returnType       *ir.IrType
	predicateParam   string
	predicateType    *ir.IrType
}

func newCaches() *caches {
	return &caches{
		signatureRaw:       make(map[ids.SignatureId]*rawSignature),
		memberDeclaredType: make(map[memberKey]*ir.IrType),
		nominalMemberLookup: make(map[nominalLookupKey]ids.MemberId),
		declType:           make(map[ids.DeclId]*ir.IrType),
	}
}
