package emitter

import "strconv"
import "github.com/tsoniclang/tsonic/internal/ir"
import "github.com/tsoniclang/tsonic/internal/targetast"

// lowerType implements spec.md §4.9's type lowering table: primitives map
// 1:1 (string/int/number/boolean/char -> string/int/double/bool/char),
// arrays lower to native arrays regardless of ArrayOrigin (explicit and
// inferred both emit identically — Origin exists only for diagnostics),
// tuples lower to value tuples, dictionaries to Dictionary<TKey,TValue>,
// and object/union/intersection/unknown/any all collapse to dynamic since
// by this stage every legal construct has already been nominalized by
// internal/anonobj or rejected by the type system.
func lowerType(ctx *context, t *ir.IrType) *targetast.Type {
	if t == nil {
		return targetast.Void
	}
	switch t.Kind {
	case ir.KindPrimitive:
		return lowerPrimitive(t.Primitive)
	case ir.KindReference:
		args := make([]*targetast.Type, len(t.RefArgs))
		for i, a := range t.RefArgs {
			args[i] = lowerType(ctx, a)
		}
		return targetast.NamedType(t.RefName, args...)
	case ir.KindTypeParameter:
		return targetast.NamedType(t.ParamName)
	case ir.KindArray:
		return targetast.ArrayType(lowerType(ctx, t.ElemType))
	case ir.KindTuple:
		elems := make([]*targetast.Type, len(t.TupleElems))
		for i, e := range t.TupleElems {
			elems[i] = lowerType(ctx, e)
		}
		return &targetast.Type{Kind: targetast.TypeTuple, Tuple: elems}
	case ir.KindFunction:
		args := make([]*targetast.Type, 0, len(t.FuncParams)+1)
		for _, p := range t.FuncParams {
			args = append(args, lowerType(ctx, p))
		}
		hasReturn := t.FuncReturn != nil && t.FuncReturn.Kind != ir.KindVoid
		if hasReturn {
			args = append(args, lowerType(ctx, t.FuncReturn))
			ctx.use("System")
			return &targetast.Type{Kind: targetast.TypeFunc, Name: "Func", Args: args, HasReturn: true}
		}
		ctx.use("System")
		return &targetast.Type{Kind: targetast.TypeFunc, Name: "Action", Args: args}
	case ir.KindDictionary:
		ctx.use("System.Collections.Generic")
		return targetast.NamedType("Dictionary", lowerType(ctx, t.DictKey), lowerType(ctx, t.DictValue))
	case ir.KindObject:
		// Every structural object type reaching emission has already been
		// nominalized by internal/anonobj; one surviving here (e.g. an
		// inline `{}` return annotation the pass had no synthesis site
		// for) degrades to dynamic rather than failing emission.
		return targetast.Dynamic
	case ir.KindUnion, ir.KindIntersection, ir.KindAny, ir.KindUnknown:
		return targetast.Dynamic
	case ir.KindLiteral:
		return lowerLiteralType(t)
	case ir.KindVoid:
		return targetast.Void
	case ir.KindNever:
		return targetast.Void
	default:
		return targetast.Dynamic
	}
}

func lowerLiteralType(t *ir.IrType) *targetast.Type {
	// A literal type's runtime representation is its base primitive;
	// TargetLang has no literal-type construct of its own. An integer
	// lexeme lowers to int and a floating one to double, as literal
	// expressions do; any other non-boolean literal lowers to string.
	if _, err := strconv.ParseInt(t.LiteralValue, 0, 64); err == nil {
		return targetast.Int
	}
	if v := t.LiteralValue; v != "" && (v[0] == '.' || v[0] == '-' || (v[0] >= '0' && v[0] <= '9')) {
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return targetast.Double
		}
	}
	switch {
	case t.LiteralValue == "true" || t.LiteralValue == "false":
		return targetast.Bool
	default:
		return targetast.String
	}
}

func lowerPrimitive(p ir.Primitive) *targetast.Type {
	switch p {
	case ir.PrimString:
		return targetast.String
	case ir.PrimNumber:
		return targetast.Double
	case ir.PrimInt:
		return targetast.Int
	case ir.PrimChar:
		return targetast.Char
	case ir.PrimBoolean:
		return targetast.Bool
	case ir.PrimNull, ir.PrimUndefined:
		return targetast.Object
	default:
		return targetast.Dynamic
	}
}

// isNullableType reports whether a lowered IrType can hold a target-level
// null, which governs the ||->?? rewrite (spec.md §4.9): reference types
// and Nullable<T>-wrapped value types are nullable; bare value types and
// void/never are not.
func isNullableType(t *ir.IrType) bool {
	if t == nil {
		return true
	}
	switch t.Kind {
	case ir.KindPrimitive:
		switch t.Primitive {
		case ir.PrimInt, ir.PrimNumber, ir.PrimBoolean, ir.PrimChar:
			return false
		default:
			return true
		}
	case ir.KindVoid, ir.KindNever:
		return false
	default:
		return true
	}
}
