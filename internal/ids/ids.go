// Package ids defines the opaque, append-only-registry-backed identifiers
// spec.md §3 requires: DeclId, SignatureId, MemberId, TypeSyntaxId, TypeId.
// Each is a small comparable value type with no exposed structure, in the
// style of the teacher's token.Token / typesystem.TVar values: plain data,
// equality by value, a String() for diagnostics.
package ids

import "fmt"

// DeclId identifies a declaration (variable, function, class, interface,
// type alias, enum, parameter, property, method).
type DeclId int32

// InvalidDecl is the zero value; no registry ever assigns it.
const InvalidDecl DeclId = 0

func (id DeclId) String() string { return fmt.Sprintf("Decl#%d", int32(id)) }
func (id DeclId) Valid() bool    { return id != InvalidDecl }

// SignatureId identifies a single call or constructor signature.
type SignatureId int32

const InvalidSignature SignatureId = 0

func (id SignatureId) String() string { return fmt.Sprintf("Sig#%d", int32(id)) }
func (id SignatureId) Valid() bool    { return id != InvalidSignature }

// MemberId identifies a member of a nominal type.
type MemberId int32

const InvalidMember MemberId = 0

func (id MemberId) String() string { return fmt.Sprintf("Member#%d", int32(id)) }
func (id MemberId) Valid() bool    { return id != InvalidMember }

// TypeSyntaxId identifies a captured surface type-syntax node, retrievable
// only through the handle registry that captured it.
type TypeSyntaxId int32

const InvalidTypeSyntax TypeSyntaxId = 0

func (id TypeSyntaxId) String() string { return fmt.Sprintf("TypeSyntax#%d", int32(id)) }
func (id TypeSyntaxId) Valid() bool    { return id != InvalidTypeSyntax }

// TypeId identifies a canonical nominal type identity in the TypeCatalog.
type TypeId int32

const InvalidType TypeId = 0

func (id TypeId) String() string { return fmt.Sprintf("Type#%d", int32(id)) }
func (id TypeId) Valid() bool    { return id != InvalidType }
