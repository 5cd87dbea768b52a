package numeric

import (
	"math"
	"strconv"
)

// isIntLiteralInRange reports whether an integer literal's lexeme denotes
// a value representable in Int32, the only integer width this compiler
// targets (spec.md §4.8's "integer literal in range" proof source). A
// literal that parses but overflows Int32 is left unproven, the same
// outcome as any other unprovable integer expression: it surfaces as
// TSN5107 if used where an Int32 proof is required.
func isIntLiteralInRange(raw string) bool {
	v, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return false
	}
	return v >= math.MinInt32 && v <= math.MaxInt32
}
