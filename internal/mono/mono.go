// Package mono implements spec.md §4.7: monomorphization of calls into
// generic functions/methods, and synthesis of nominal adapter pairs for
// structurally constrained type parameters.
//
// There is no direct teacher analogue — funxy resolves generics through its
// own Hindley-Milner-flavored constraint solver
// (internal/analyzer/inference_solver.go, inference_calls.go) and never
// erases a type parameter into a family of concrete target declarations.
// This pass keeps that solver's shape (walk call sites, unify a declared
// parameter template against the actual argument types, accumulate a
// substitution) but targets it at the simpler job spec.md §4.7 asks for:
// producing one specialized method per distinct instantiation rather than
// solving typeclass/instance resolution. The structural-unification
// primitive itself is duplicated from
// internal/typesystem/structmatch.go/nominal.go (see unify.go), the same
// way irbuilder/decls.go's normalizeLambdaParamMode duplicates
// Binding's normalizeParamMode across a package boundary neither side can
// export into.
package mono

import "github.com/tsoniclang/tsonic/internal/ir"

// Pass rewrites every call into a generic FunctionDecl to reference a
// specialized target method (synthesizing it on first use for that
// instantiation), and synthesizes a (__Constraint_T, __Wrapper_T) adapter
// pair for every object-shape-constrained type parameter it finds,
// mutating module in place.
func Pass(module *ir.Module) {
	idx := buildIndex(module)
	spec := newSpecializer(idx)
	spec.walkStmts(module.Statements)
	spec.appendTo(module)

	adapters := newAdapterSynthesizer()
	adapters.run(module)
}
