// Package diagnostics implements the closed TSN#### diagnostic taxonomy
// described in spec.md §6/§7: {code, severity, message, location, hint}.
//
// The shape is a direct generalization of funxy's internal/diagnostics
// package (phase-tagged, templated DiagnosticError values deduplicated by
// position+code) from that compiler's four ad-hoc phases to the fixed
// TSN#### code family this compiler's passes emit.
package diagnostics

import (
	"fmt"
	"sort"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Code is one member of the closed TSN#### family documented in spec.md §7.
type Code string

const (
	// Unresolvable-binding family.
	CodeUnresolvedBinding Code = "TSN4001"

	// Type mismatch / missing annotation family.
	CodeMissingParamAnnotation  Code = "TSN5201" // missing parameter type annotation
	CodeImplicitNumericNarrow   Code = "TSN5110" // implicit/unsound numeric narrowing
	CodeUnprovenIntegerIndex    Code = "TSN5107" // index expression lacks an Int32 proof
	CodeUntypedSpreadSource     Code = "TSN5215" // spread source has no type annotation
	CodeImplementsNominalized   Code = "TSN7301" // class implements a nominalized interface
	CodeSynthesisIneligible     Code = "TSN7403" // object literal not eligible for anon synthesis
	CodeFileExportNameCollision Code = "TSN2003" // file name collides with an exported declaration name
	CodeMissingClrValueBinding  Code = "TSN4004" // manifest lacks a CLR value binding
	CodeModifierConflict        Code = "TSN7444" // ref/out/in modifier conflict at a call site
	CodeInternalError            Code = "TSN6001" // internal compiler error (ICE)
	CodeNonFirstSuperCall         Code = "TSN7310" // super(...) not in first-statement position
	CodeThisOutsideMethod         Code = "TSN7311" // `this` used outside a non-static method/constructor
	CodeResumableThrowLimitation Code = "TSN7501" // generator throw() cannot resume (documented limitation)
)

var messageTemplates = map[Code]string{
	CodeUnresolvedBinding:        "unresolved binding: %s",
	CodeMissingParamAnnotation:   "parameter %q requires an explicit type annotation",
	CodeImplicitNumericNarrow:    "implicit numeric narrowing from %s to %s",
	CodeUnprovenIntegerIndex:     "index expression has no proven Int32 value; annotate or cast explicitly",
	CodeUntypedSpreadSource:      "spread source %s has no type annotation",
	CodeImplementsNominalized:    "class cannot implement %s: its members were nominalized",
	CodeSynthesisIneligible:      "object literal is not eligible for anonymous type synthesis: %s",
	CodeFileExportNameCollision: "exported declaration %q collides with the module's synthesized container name",
	CodeMissingClrValueBinding:   "binding manifest has no CLR value binding for %s",
	CodeModifierConflict:         "parameter modifier %s at call site conflicts with signature-resolved mode %s",
	CodeInternalError:            "internal compiler error: %s",
	CodeNonFirstSuperCall:        "super(...) must be the first statement of a constructor",
	CodeThisOutsideMethod:        "'this' can only be used inside a non-static method or constructor",
	CodeResumableThrowLimitation: "generator throw() terminates and throws externally; it cannot resume at the suspended yield point",
}

// Location is a source position carried by a Diagnostic. Line/Column are
// 1-based, matching the teacher's token.Token convention.
type Location struct {
	File   string
	Line   int
	Column int
}

// Diagnostic is the wire shape documented in spec.md §6.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Location *Location
	Hint     string
}

// New formats Message from the code's template and args.
func New(severity Severity, code Code, loc *Location, args ...interface{}) *Diagnostic {
	template, ok := messageTemplates[code]
	if !ok {
		template = "unregistered diagnostic code %s"
		args = []interface{}{code}
	}
	return &Diagnostic{
		Code:     code,
		Severity: severity,
		Message:  fmt.Sprintf(template, args...),
		Location: loc,
	}
}

// WithHint attaches a hint and returns the same Diagnostic for chaining.
func (d *Diagnostic) WithHint(hint string) *Diagnostic {
	d.Hint = hint
	return d
}

func (d *Diagnostic) Error() string {
	prefix := ""
	if d.Location != nil && d.Location.File != "" {
		prefix = fmt.Sprintf("%s:%d:%d: ", d.Location.File, d.Location.Line, d.Location.Column)
	}
	return fmt.Sprintf("%s%s %s: %s", prefix, d.Severity, d.Code, d.Message)
}

// Sink collects diagnostics during a pass, deduplicating by
// (file, line, column, code) exactly as the teacher's walker.addError does.
type Sink struct {
	seen  map[string]*Diagnostic
	order []string
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{seen: make(map[string]*Diagnostic)}
}

// Report records a diagnostic, keeping the first occurrence at a given key.
func (s *Sink) Report(d *Diagnostic) {
	key := dedupeKey(d)
	if _, exists := s.seen[key]; exists {
		return
	}
	s.seen[key] = d
	s.order = append(s.order, key)
}

func dedupeKey(d *Diagnostic) string {
	line, col, file := 0, 0, ""
	if d.Location != nil {
		line, col, file = d.Location.Line, d.Location.Column, d.Location.File
	}
	return fmt.Sprintf("%s:%d:%d:%s", file, line, col, d.Code)
}

// HasErrors reports whether any reported diagnostic is SeverityError.
// Per spec.md §7, any non-empty error list turns the compilation into a
// failure; partial output is not written.
func (s *Sink) HasErrors() bool {
	for _, k := range s.order {
		if s.seen[k].Severity == SeverityError {
			return true
		}
	}
	return false
}

// Diagnostics returns the full diagnostic list sorted by (file, line,
// column, code), the final-sort order spec.md §5 requires.
func (s *Sink) Diagnostics() []*Diagnostic {
	out := make([]*Diagnostic, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.seen[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		af, al, ac := locFields(a)
		bf, bl, bc := locFields(b)
		if af != bf {
			return af < bf
		}
		if al != bl {
			return al < bl
		}
		if ac != bc {
			return ac < bc
		}
		return a.Code < b.Code
	})
	return out
}

func locFields(d *Diagnostic) (file string, line, col int) {
	if d.Location == nil {
		return "", 0, 0
	}
	return d.Location.File, d.Location.Line, d.Location.Column
}
