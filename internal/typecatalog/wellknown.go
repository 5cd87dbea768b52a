package typecatalog

// SeedWellKnown registers the fixed set of target-runtime nominal types
// the compiler must always be able to resolve regardless of what any
// particular binding manifest supplies: the primitive companion nominals
// (spec.md §4.3's "primitives bridge to nominal companions, e.g.
// string.length via a canonical String nominal") and the common generic
// collection facades (spec.md §4.2's IList<T> -> IList_1<T> example).
func SeedWellKnown(c *Catalog) {
	for _, name := range []string{"String", "Int32", "Double", "Char", "Boolean", "Object"} {
		c.Register(name, "System."+name, nil, false)
	}

	c.Register("IList", "System.Collections.Generic.IList", []TypeParameterInfo{{Name: "T"}}, false)
	c.Register("IDictionary", "System.Collections.Generic.IDictionary", []TypeParameterInfo{{Name: "K"}, {Name: "V"}}, false)
	c.Register("IEnumerable", "System.Collections.Generic.IEnumerable", []TypeParameterInfo{{Name: "T"}}, false)
	c.Register("IEnumerator", "System.Collections.Generic.IEnumerator", []TypeParameterInfo{{Name: "T"}}, false)

	c.Aliases().RegisterFacade("List", 1, "System.Collections.Generic.IList")
	c.Aliases().RegisterFacade("Array", 1, "System.Collections.Generic.IList")
	c.Aliases().RegisterFacade("Record", 2, "System.Collections.Generic.IDictionary")
	c.Aliases().RegisterFacade("Map", 2, "System.Collections.Generic.IDictionary")
	c.Aliases().RegisterFacade("Iterable", 1, "System.Collections.Generic.IEnumerable")
	c.Aliases().RegisterFacade("Generator", 1, "System.Collections.Generic.IEnumerator")
}
