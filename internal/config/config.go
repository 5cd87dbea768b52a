// Package config holds compiler-wide constants and the Options value that
// threads through a Compilation.
package config

// SourceFileExtensions lists the surface-language extensions the workspace
// loader recognizes when walking the source root.
var SourceFileExtensions = []string{".ts", ".tsx"}

// TargetFileExtension is the suffix written for every emitted file.
const TargetFileExtension = ".cs"

// DiagnosticTableVersion identifies the closed TSN#### code table this
// build understands; bumped whenever a code is added, renamed, or retired.
const DiagnosticTableVersion = 1

// Options configures a single compilation.
type Options struct {
	// ProjectRoot is the directory containing tsonic.workspace.json.
	ProjectRoot string
	// SourceRoot is the root of the surface-language source tree.
	SourceRoot string
	// TargetRootNamespace seeds the namespace synthesized for each module
	// from its file path (see IrBuilder, spec.md §4.4).
	TargetRootNamespace string
	// OutputRoot mirrors SourceRoot when target files are written.
	OutputRoot string
	// StrictNumericMode is set from the CLI's --strict-numeric flag. No
	// compilation stage reads it: the numeric proof pass reports TSN5110
	// (implicit numeric narrowing) as an error whether or not it is set.
	StrictNumericMode bool
	// EmitDiagnosticsJSON, when true, has the CLI shell additionally write
	// the final diagnostic list as JSON (see SPEC_FULL.md §C).
	EmitDiagnosticsJSON bool
}

// IsTestMode mirrors the teacher's config.IsTestMode flag. No code in this
// module reads it, so setting it does not change any output.
var IsTestMode bool
