// Package typecatalog enumerates the universe of nominal types with
// canonical identities (spec.md §4.2). Each type has a TS-name (surface
// name) and a target-language fully-qualified CLR-name; the AliasTable
// performs arity-aware canonicalization between them.
//
// Grounded on the teacher's internal/typesystem: kinds.go's Kind/KArrow
// arity bookkeeping (MakeArrow building N-ary kind arrows mirrors this
// package's arity-suffix canonicalization) and dispatch.go's
// resolution-order dispatch pattern, generalized from a kind-checking
// dynamic-language oracle to a closed nominal-type registry.
package typecatalog

import (
	"fmt"

	"github.com/tsoniclang/tsonic/internal/ids"
)

// TypeParameterInfo describes one type parameter of a cataloged type.
type TypeParameterInfo struct {
	Name       string
	Constraint ids.TypeSyntaxId // InvalidTypeSyntax if unconstrained
}

// Entry is one cataloged nominal type.
type Entry struct {
	Id         ids.TypeId
	TsName     string // surface name, unqualified arity (e.g. "IList")
	ClrName    string // target fully-qualified name, arity-tagged (e.g. "System.Collections.Generic.IList_1")
	TypeParams []TypeParameterInfo
	// FromManifest is true when this entry was drawn from an external
	// binding manifest rather than user source (spec.md §4.2/§C).
	FromManifest bool
}

// Catalog is the closed universe of TypeIds, built once before IR building
// begins and never mutated after (spec.md §3's entity-lifecycle table).
type Catalog struct {
	entries []Entry
	byTs    map[string]ids.TypeId
	byClr   map[string]ids.TypeId
	aliases *AliasTable
}

// New constructs an empty Catalog with index 0 reserved for ids.InvalidType.
func New() *Catalog {
	return &Catalog{
		entries: []Entry{{}},
		byTs:    make(map[string]ids.TypeId),
		byClr:   make(map[string]ids.TypeId),
		aliases: newAliasTable(),
	}
}

// Aliases exposes the AliasTable for facade registration.
func (c *Catalog) Aliases() *AliasTable { return c.aliases }

// Register adds a nominal type to the catalog, assigning it a TypeId.
// Arity is inferred from len(TypeParams) and folded into the stored
// ClrName if the caller did not already arity-tag it (e.g. "IList" with
// one type parameter becomes "IList_1").
func (c *Catalog) Register(tsName, clrName string, typeParams []TypeParameterInfo, fromManifest bool) ids.TypeId {
	arity := len(typeParams)
	clrName = arityTag(clrName, arity)

	id := ids.TypeId(len(c.entries))
	c.entries = append(c.entries, Entry{
		Id:           id,
		TsName:       tsName,
		ClrName:      clrName,
		TypeParams:   typeParams,
		FromManifest: fromManifest,
	})
	c.byTs[tsKey(tsName, arity)] = id
	c.byClr[clrName] = id
	return id
}

// Entry resolves a TypeId to its catalog record.
func (c *Catalog) Entry(id ids.TypeId) (Entry, bool) {
	if !id.Valid() || int(id) >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[id], true
}

// resolveTsName resolves a surface name (arity implied by the number of
// type arguments the caller observed, 0 if bare) to a TypeId, trying the
// AliasTable first.
func (c *Catalog) resolveTsName(name string, arity int) (ids.TypeId, bool) {
	if id, ok := c.aliases.resolve(name, arity, c); ok {
		return id, true
	}
	if id, ok := c.byTs[tsKey(name, arity)]; ok {
		return id, true
	}
	return ids.InvalidType, false
}

// ResolveTsName implements spec.md §4.2's `resolveTsName(name) → TypeId?`
// for a bare (unapplied) surface name.
func (c *Catalog) ResolveTsName(name string) (ids.TypeId, bool) {
	return c.resolveTsName(name, 0)
}

// ResolveTsNameArity resolves a surface name applied with exactly arity
// type arguments, e.g. resolving "IList" at arity 1 to IList_1.
func (c *Catalog) ResolveTsNameArity(name string, arity int) (ids.TypeId, bool) {
	return c.resolveTsName(name, arity)
}

// ResolveClrName implements spec.md §4.2's `resolveClrName(name) → TypeId?`.
// Resolution order is AliasTable -> TS-name -> CLR-name, with a
// deterministic arity-suffix retry: if the bare name misses, each arity
// from 0 up through the largest registered arity for that base name is
// tried in turn, exactly as resolveTsName would for a caller that knows
// the argument count but is asking by CLR-qualified spelling.
func (c *Catalog) ResolveClrName(name string) (ids.TypeId, bool) {
	if id, ok := c.aliases.resolve(name, -1, c); ok {
		return id, true
	}
	if id, ok := c.byTs[tsKey(name, 0)]; ok {
		return id, true
	}
	if id, ok := c.byClr[name]; ok {
		return id, true
	}
	for arity := 1; arity <= c.maxKnownArity(); arity++ {
		if id, ok := c.byClr[arityTag(name, arity)]; ok {
			return id, true
		}
	}
	return ids.InvalidType, false
}

func (c *Catalog) maxKnownArity() int {
	max := 0
	for _, e := range c.entries {
		if len(e.TypeParams) > max {
			max = len(e.TypeParams)
		}
	}
	return max
}

// GetTypeParameters implements spec.md §4.2's
// `getTypeParameters(TypeId) → [TypeParameterInfo]`.
func (c *Catalog) GetTypeParameters(id ids.TypeId) []TypeParameterInfo {
	e, ok := c.Entry(id)
	if !ok {
		return nil
	}
	return e.TypeParams
}

func tsKey(name string, arity int) string {
	if arity == 0 {
		return name
	}
	return fmt.Sprintf("%s`%d", name, arity)
}

// arityTag appends the "_N" canonical arity suffix to a CLR name with N
// type parameters, unless it is already tagged (spec.md §4.2: "a facade
// name IList<T> maps to the arity-tagged canonical IList_1<T>").
func arityTag(clrName string, arity int) string {
	if arity == 0 {
		return clrName
	}
	suffix := fmt.Sprintf("_%d", arity)
	if len(clrName) >= len(suffix) && clrName[len(clrName)-len(suffix):] == suffix {
		return clrName
	}
	return clrName + suffix
}
