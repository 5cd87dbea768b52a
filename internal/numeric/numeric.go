// Package numeric implements spec.md §4.8: the pass that walks an IrModule
// and attaches a NumericProof to every expression whose Int32-ness it can
// prove, enforcing INV-0 (deterministic typing — proof is derived once,
// here, and never recomputed by the emitter) and INV-3 (number and int
// stay distinct primitives; this pass is what makes that distinction
// actionable rather than purely nominal).
//
// Grounded in shape on the teacher's internal/typesystem/kind_checker.go: a
// dedicated walk that derives and attaches a property to existing nodes
// and reports one family of diagnostic when the derivation fails, rather
// than rejecting the program outright. The walker itself reuses the same
// hand-written statement/expression type-switch internal/narrowing,
// internal/anonobj and internal/mono already use.
package numeric

import (
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// Pass walks module, attaching a NumericProof to every expression it can
// derive one for, and reports TSN5107 at index expressions lacking a
// proof and TSN5110 at `as int` narrowings it cannot validate as sound.
func Pass(module *ir.Module, sink *diagnostics.Sink) {
	p := &prover{module: module, sink: sink}
	p.walkStmts(module.Statements)
}

type prover struct {
	module *ir.Module
	sink   *diagnostics.Sink
}

func (p *prover) loc(e ir.Expression) *diagnostics.Location {
	s := e.Span()
	return &diagnostics.Location{File: p.module.File, Line: s.Start.Line, Column: s.Start.Column}
}
