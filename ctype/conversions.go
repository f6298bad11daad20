package ctype

import "fmt"

// ResultType implements the usual arithmetic conversions. It decays
// both operands through ConvertArray, dispatches on the
// lexicographically larger tag, and reports an error referencing the
// *original*, undecayed operand types on failure — the one place the
// reference uses a non-local jump to unwind back to a site holding both
// original types; here that's modeled as a plain (value, error) return
// to the caller instead of a longjmp.
func ResultType(op string, a, b *Ctype) (*Ctype, error) {
	origA, origB := a, b
	da, db := ConvertArray(a), ConvertArray(b)

	x, y := da, db
	if x.Kind > y.Kind {
		x, y = y, x
	}
	// x.Kind <= y.Kind now; dispatch on y (the larger tag), matching
	// the reference's "lexicographic maximum of the two type tags".
	switch {
	case y.Kind == KPtr:
		if op == "=" {
			return x, nil
		}
		if (op == "+" || op == "-") && IsInt(x) {
			return y, nil
		}
		return nil, fmt.Errorf("invalid operands to binary %s: %s, %s", op, describe(origA), describe(origB))

	case IsInt(x) && IsInt(y):
		return widerInt(x, y), nil

	case (IsInt(x) && IsFloat(y)) || (IsFloat(x) && IsInt(y)):
		if AllowDouble && (x.Kind == KDouble || y.Kind == KDouble) {
			return DoubleType, nil
		}
		return FloatType, nil

	case IsFloat(x) && IsFloat(y):
		if AllowDouble && (x.Kind == KDouble || y.Kind == KDouble) {
			return DoubleType, nil
		}
		return FloatType, nil

	case x.Kind == KArray && y.Kind == KArray:
		return ResultType(op, x.Elem, y.Elem)

	default:
		return nil, fmt.Errorf("invalid operands to binary %s: %s, %s", op, describe(origA), describe(origB))
	}
}

// widerInt returns the wider of two integral types: char and int both
// promote to int when combined with int; long wins over either.
func widerInt(x, y *Ctype) *Ctype {
	if x.Kind == KLong || y.Kind == KLong {
		return LongType
	}
	return IntType
}

func describe(c *Ctype) string {
	switch c.Kind {
	case Void:
		return "void"
	case KChar:
		return "char"
	case KInt:
		return "int"
	case KLong:
		return "long"
	case KFloat:
		return "float"
	case KDouble:
		return "double"
	case KPtr:
		return describe(c.Elem) + "*"
	case KArray:
		return describe(c.Elem) + "[]"
	case KStruct:
		if c.IsUnion {
			return "union"
		}
		return "struct"
	default:
		return "?"
	}
}
