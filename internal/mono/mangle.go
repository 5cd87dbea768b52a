package mono

import (
	"strings"

	"github.com/tsoniclang/tsonic/internal/ir"
)

// mangleTypeArgs builds the deterministic name suffix spec.md §4.7 calls
// for ("a distinct specialized target method whose name mangles the type
// arguments"). Each argument contributes an identifier-safe fragment;
// fragments are joined with "_" so `id<string>` and `id<int>` land on
// distinct target method names.
func mangleTypeArgs(args []*ir.IrType) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = mangleOne(a)
	}
	return strings.Join(parts, "_")
}

func mangleOne(t *ir.IrType) string {
	if t == nil {
		return "Unknown"
	}
	switch t.Kind {
	case ir.KindPrimitive:
		return capitalize(t.Primitive.String())
	case ir.KindReference:
		name := sanitizeIdent(t.RefName)
		if len(t.RefArgs) == 0 {
			return name
		}
		return name + "Of" + mangleTypeArgs(t.RefArgs)
	case ir.KindArray:
		return mangleOne(t.ElemType) + "Array"
	case ir.KindAny:
		return "Any"
	case ir.KindUnknown:
		return "Unknown"
	case ir.KindVoid:
		return "Void"
	default:
		return sanitizeIdent(ir.StableIrTypeKey(t))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sanitizeIdent collapses any run of non-alphanumeric characters (as
// StableIrTypeKey's ":", "<", ";" punctuation produces for structural
// shapes) into a single underscore, keeping the result a legal identifier
// fragment.
func sanitizeIdent(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
