// Package binding implements spec.md §4.1: assigning stable opaque ids to
// every declaration, call/constructor signature, member, and captured
// type-syntax node, and the resolve*/capture* lookups the rest of the
// compiler use instead of ever touching the host parser's own symbol
// table directly.
//
// The four registries below generalize the teacher's single
// internal/symbols.SymbolTable (one flat name->Symbol map per scope) into
// four independent, append-only-during-registration record stores keyed by
// the opaque ids in internal/ids, the way spec.md §3's entity table
// requires ("Registries are append-only within a compilation and never
// mutated after IR building begins").
package binding

import (
	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/surface"
)

// ParamMode mirrors surface.ParamMode once markers have been unwrapped.
type ParamMode = surface.ParamMode

// DeclKind classifies what a DeclInfo represents.
type DeclKind int

const (
	DeclVariable DeclKind = iota
	DeclConstant
	DeclFunction
	DeclClass
	DeclInterface
	DeclTypeAlias
	DeclEnum
	DeclParameter
	DeclProperty
	DeclMethod
)

// DeclInfo is the registry record a DeclId resolves to.
type DeclInfo struct {
	Id           ids.DeclId
	Kind         DeclKind
	Name         string
	SourceFile   string
	Node         surface.Node
	TypeSyntax   ids.TypeSyntaxId // InvalidTypeSyntax if no annotation was written
	Exported     bool
}

// SignatureInfo is the registry record a SignatureId resolves to: one call
// or constructor signature.
type SignatureInfo struct {
	Id             ids.SignatureId
	OwnerDecl      ids.DeclId
	TypeParams     []string
	ParamTypeSyntax []ids.TypeSyntaxId
	ParamModes     []ParamMode
	ParamOptional  []bool
	ReturnTypeSyntax ids.TypeSyntaxId
	// TypePredicateParam/TypePredicateSyntax are set when the signature
	// declares `x is T` as its return type.
	TypePredicateParam  string
	TypePredicateSyntax ids.TypeSyntaxId
}

// MemberInfo is the registry record a MemberId resolves to.
type MemberInfo struct {
	Id         ids.MemberId
	OwnerType  string // TS-name of the declaring type
	Name       string
	TypeSyntax ids.TypeSyntaxId
	Signature  ids.SignatureId // InvalidSignature for non-callable members
	Optional   bool
	Readonly   bool
	Static     bool
}

// TypeSyntaxInfo is the registry record a TypeSyntaxId resolves to: the
// captured surface type-syntax node, retrievable only through this
// registry (spec.md §3).
type TypeSyntaxInfo struct {
	Id   ids.TypeSyntaxId
	Node surface.TypeSyntax
}

// Registries groups the four append-only stores spec.md §3 names.
type Registries struct {
	decls      []DeclInfo
	signatures []SignatureInfo
	members    []MemberInfo
	typeSyntax []TypeSyntaxInfo
}

func newRegistries() *Registries {
	return &Registries{
		decls:      []DeclInfo{{}},      // index 0 reserved: ids.InvalidDecl
		signatures: []SignatureInfo{{}}, // index 0 reserved: ids.InvalidSignature
		members:    []MemberInfo{{}},    // index 0 reserved: ids.InvalidMember
		typeSyntax: []TypeSyntaxInfo{{}},// index 0 reserved: ids.InvalidTypeSyntax
	}
}

func (r *Registries) addDecl(info DeclInfo) ids.DeclId {
	info.Id = ids.DeclId(len(r.decls))
	r.decls = append(r.decls, info)
	return info.Id
}

func (r *Registries) Decl(id ids.DeclId) (DeclInfo, bool) {
	if !id.Valid() || int(id) >= len(r.decls) {
		return DeclInfo{}, false
	}
	return r.decls[id], true
}

func (r *Registries) addSignature(info SignatureInfo) ids.SignatureId {
	info.Id = ids.SignatureId(len(r.signatures))
	r.signatures = append(r.signatures, info)
	return info.Id
}

func (r *Registries) Signature(id ids.SignatureId) (SignatureInfo, bool) {
	if !id.Valid() || int(id) >= len(r.signatures) {
		return SignatureInfo{}, false
	}
	return r.signatures[id], true
}

func (r *Registries) addMember(info MemberInfo) ids.MemberId {
	info.Id = ids.MemberId(len(r.members))
	r.members = append(r.members, info)
	return info.Id
}

func (r *Registries) Member(id ids.MemberId) (MemberInfo, bool) {
	if !id.Valid() || int(id) >= len(r.members) {
		return MemberInfo{}, false
	}
	return r.members[id], true
}

func (r *Registries) addTypeSyntax(node surface.TypeSyntax) ids.TypeSyntaxId {
	id := ids.TypeSyntaxId(len(r.typeSyntax))
	r.typeSyntax = append(r.typeSyntax, TypeSyntaxInfo{Id: id, Node: node})
	return id
}

func (r *Registries) TypeSyntax(id ids.TypeSyntaxId) (surface.TypeSyntax, bool) {
	if !id.Valid() || int(id) >= len(r.typeSyntax) {
		return nil, false
	}
	return r.typeSyntax[id].Node, true
}

// AllDecls returns every registered DeclInfo, in registration order. Used
// by internal/typesystem to build its nominal-inheritance index without
// Binding exposing its scope chain.
func (r *Registries) AllDecls() []DeclInfo {
	if len(r.decls) <= 1 {
		return nil
	}
	return r.decls[1:]
}

// AllMembers returns every registered MemberInfo, in registration order.
// Used by internal/typesystem to build its (ownerType, name) -> MemberId
// index for ir.Member.Member.
func (r *Registries) AllMembers() []MemberInfo {
	if len(r.members) <= 1 {
		return nil
	}
	return r.members[1:]
}
