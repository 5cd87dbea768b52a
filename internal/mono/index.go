package mono

import (
	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// fnSite records where a generic FunctionDecl lives, so a newly synthesized
// specialization can be appended next to it: module.Statements for a
// top-level function, owner.Methods for a method (owner is nil for a
// top-level function).
type fnSite struct {
	fn    *ir.FunctionDecl
	owner *ir.ClassDecl
}

// buildIndex maps every FunctionDecl's own SignatureId (top-level
// functions, methods, and constructors) to its fnSite, so a call site's
// ir.Call.Signature can be traced back to the declaration it targets
// without re-deriving it through Binding.
func buildIndex(module *ir.Module) map[ids.SignatureId]*fnSite {
	idx := make(map[ids.SignatureId]*fnSite)
	for _, s := range module.Statements {
		indexStmt(s, idx)
	}
	return idx
}

func indexStmt(s ir.Statement, idx map[ids.SignatureId]*fnSite) {
	switch st := s.(type) {
	case *ir.FunctionDecl:
		indexFn(st, nil, idx)
	case *ir.ClassDecl:
		for _, m := range st.Methods {
			indexFn(m, st, idx)
		}
		if st.Ctor != nil {
			indexFn(st.Ctor, st, idx)
		}
	}
}

func indexFn(fn *ir.FunctionDecl, owner *ir.ClassDecl, idx map[ids.SignatureId]*fnSite) {
	if fn.Signature.Valid() {
		idx[fn.Signature] = &fnSite{fn: fn, owner: owner}
	}
}
