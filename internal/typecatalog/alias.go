package typecatalog

import "github.com/tsoniclang/tsonic/internal/ids"

// facadeKey pairs a facade surface name with the arity it was registered
// at (e.g. "List" at arity 1 facading onto the canonical IList_1 entry).
// Keys are looked up exactly; only a lookup at arity -1 (see resolve)
// matches a facade name at whatever arity it was registered with. There is
// no wildcard registration: RegisterFacade arity-tags the canonical name
// with the arity it is given, so a facade registered at -1 does not resolve.
type facadeKey struct {
	name  string
	arity int
}

// AliasTable performs arity-aware canonicalization of facade names onto
// catalog entries, e.g. mapping the surface spelling "List<T>" onto the
// canonical "IList_1<T>" catalog entry (spec.md §4.2).
type AliasTable struct {
	facades map[facadeKey]string // facade (name, arity) -> canonical ClrName
}

func newAliasTable() *AliasTable {
	return &AliasTable{facades: make(map[facadeKey]string)}
}

// RegisterFacade declares that surface name `facade`, used with `arity`
// type arguments, canonicalizes to the catalog entry whose ClrName is
// `canonicalClrName` (which Register will already have arity-tagged).
func (a *AliasTable) RegisterFacade(facade string, arity int, canonicalClrName string) {
	a.facades[facadeKey{facade, arity}] = arityTag(canonicalClrName, arity)
}

// resolve looks up a facade name at a known arity (or -1 to mean
// "unspecified, try any registered arity for this name") and, on a hit,
// resolves the canonical ClrName through the catalog.
func (a *AliasTable) resolve(name string, arity int, c *Catalog) (ids.TypeId, bool) {
	if arity >= 0 {
		if canon, ok := a.facades[facadeKey{name, arity}]; ok {
			id, ok := c.byClr[canon]
			return id, ok
		}
		return ids.InvalidType, false
	}
	for key, canon := range a.facades {
		if key.name == name {
			if id, ok := c.byClr[canon]; ok {
				return id, true
			}
		}
	}
	return ids.InvalidType, false
}
