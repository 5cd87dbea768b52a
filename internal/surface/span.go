// Package surface declares the narrow contract the (external, out-of-scope
// per spec.md §1) host parser's surface syntax tree must satisfy for
// Binding and the IrBuilder to consume it. It plays the same
// dependency-breaking role as the teacher's internal/analyzer.ModuleLoader
// / LoadedModule interfaces: a small seam instead of a full dependency.
//
// Concrete node types are provided (not just interfaces) because Binding,
// the TypeSystem, and the IrBuilder all need a closed, pattern-matchable
// surface grammar to walk — exactly the subset of a JavaScript-family
// surface language spec.md §1 describes ("a typed structural subset").
// A real deployment swaps HostParser's own AST in behind this contract;
// nothing downstream of Binding depends on that AST directly (spec.md
// §4.1: "Binding never exposes the host parser's types in its outputs").
package surface

import "fmt"

// Pos is a 1-based source position, matching the teacher's token.Token
// Line/Column convention.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open [Start, End) source range.
type Span struct {
	Start Pos
	End   Pos
}
