// Package irbuilder produces one ir.Module per source file (spec.md
// §4.4). Grounded on the teacher's internal/analyzer walker: analyzer.go's
// walker struct threading Binding-equivalent lookups, a diagnostic sink,
// and a per-analysis TypeMap is the direct model for this package's
// ProgramContext, simplified because this compiler's TypeSystem never
// infers (it only resolves structurally from already-captured syntax), so
// there is no InferenceContext/Subst/TVar machinery here, only a local
// variable type cache.
package irbuilder

import (
	"strconv"

	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ids"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/typesystem"
)

// ProgramContext carries Binding, the TypeSystem, and the diagnostic sink
// into every per-node converter, plus a type environment for locals whose
// declared type must be inferred from their initializer rather than an
// annotation (spec.md §4.4: "Expression conversion is delegated to
// per-node converters that each receive a ProgramContext").
type ProgramContext struct {
	B     *binding.Binding
	Types *typesystem.System
	Sink  *diagnostics.Sink
	File  string

	localTypes map[ids.DeclId]*ir.IrType
	tempCount  int

	// CurrentClassName/CurrentClassType are set for the duration of
	// converting one class's methods/constructor, so a `this` reference
	// inside a method body lowers with the enclosing class's own type
	// (spec.md has no inference step left to do this lazily; IrBuilder
	// fixes every expression's InferredType once, per INV-0).
	CurrentClassName       string
	CurrentClassType       *ir.IrType
	CurrentMethodIsStatic  bool
}

func newProgramContext(b *binding.Binding, types *typesystem.System, sink *diagnostics.Sink, file string) *ProgramContext {
	return &ProgramContext{
		B:          b,
		Types:      types,
		Sink:       sink,
		File:       file,
		localTypes: make(map[ids.DeclId]*ir.IrType),
	}
}

func (c *ProgramContext) setLocalType(id ids.DeclId, t *ir.IrType) {
	if id.Valid() {
		c.localTypes[id] = t
	}
}

// typeOfLocal answers a local variable/parameter's type: first the
// converter-cached inferred type (for annotation-free locals), falling
// back to TypeSystem.TypeOfDecl (which reads the captured annotation, or
// `any` if none exists — never a live re-inference).
func (c *ProgramContext) typeOfLocal(id ids.DeclId) *ir.IrType {
	if t, ok := c.localTypes[id]; ok {
		return t
	}
	return c.Types.TypeOfDecl(id)
}

// freshTempName synthesizes a compiler-internal local name for lowered
// destructuring binds (spec.md has no destructuring-target IR node, so a
// tuple/object VarDecl pattern lowers to one hidden holder var plus one
// VarStatement per bound name, the way a desugaring pass conventionally
// introduces synthetic temporaries).
func (c *ProgramContext) freshTempName() string {
	c.tempCount++
	return "__destructure_" + strconv.Itoa(c.tempCount)
}
