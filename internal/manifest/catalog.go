package manifest

import "github.com/tsoniclang/tsonic/internal/typecatalog"

// RegisterCatalog enters every bound type a set of manifests describes into
// cat, the way Compilation.New enters every user-declared class/interface
// (spec.md §4.2/§4.3: "resolveClrName" must also see manifest-sourced
// entries, not only source-declared ones). A manifest's Type carries no
// arity information of its own (its Members are methods/properties, not
// type parameters), so every manifest-sourced entry registers at arity 0;
// a generic CLR type bound through a manifest is expected to list its
// arity-tagged name directly (e.g. "List_1") as Type.Name, the same
// convention Catalog.Register's arityTag already normalizes user-declared
// generics to.
func RegisterCatalog(cat *typecatalog.Catalog, manifests []*Manifest) {
	for _, m := range manifests {
		for _, ns := range m.Namespaces {
			for _, t := range ns.Types {
				tsName := t.Name
				if t.Alias != "" {
					tsName = t.Alias
				}
				clrName := t.Name
				if ns.Name != "" {
					clrName = ns.Name + "." + t.Name
				}
				cat.Register(tsName, clrName, nil, true)
			}
		}
	}
}
