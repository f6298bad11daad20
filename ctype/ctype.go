// Package ctype implements the compiler's internal type descriptors:
// scalars, pointers, arrays, and struct/union layouts, along with the
// usual-arithmetic-conversions and array-decay rules that the parser
// drives while building the AST.
package ctype

import (
	"fmt"
	"strings"

	"github.com/stackvm-lang/cc/container"
)

// Kind tags the variant a Ctype holds. Order matters: result-type
// dispatch picks the lexicographically larger tag of two operands, so
// this order must match the reference compiler's enum exactly,
// including the vestigial Uint tag that no constructor ever produces.
type Kind int

const (
	Void Kind = iota
	KChar
	KInt
	KLong
	KFloat
	KDouble
	Uint
	KArray
	KPtr
	KStruct
)

// AllowDouble mirrors the reference's `#ifdef ALLOW_DOUBLE` compile-time
// switch: off by default, so float literals and float arithmetic use
// Float rather than Double.
const AllowDouble = false

// Ctype is a tagged variant; only the fields relevant to Kind are
// meaningful. Size is in bytes, -1 meaning incomplete.
type Ctype struct {
	Kind Kind
	Size int

	Elem *Ctype // KPtr, KArray: pointee / element type
	Len  int    // KArray: element count, -1 if unknown

	Fields *container.Dict[*Ctype] // KStruct: ordered field name -> field ctype
	IsUnion bool

	Offset int // set only on a field-ctype copy returned from a struct/union's Fields dict
}

// Scalar singletons. Allocated once and referenced everywhere; never
// copied except into a field-ctype (see StructField).
var (
	VoidType  = &Ctype{Kind: Void, Size: 0}
	CharType  = &Ctype{Kind: KChar, Size: 1}
	IntType   = &Ctype{Kind: KInt, Size: 4}
	LongType  = &Ctype{Kind: KLong, Size: 8}
	FloatType = &Ctype{Kind: KFloat, Size: 4}
	DoubleType = &Ctype{Kind: KDouble, Size: 8}
)

// NewPtr allocates a fresh pointer-to-inner ctype. Pointer types are
// never deduplicated: two `Ptr(int)` constructions yield distinct values.
func NewPtr(inner *Ctype) *Ctype {
	return &Ctype{Kind: KPtr, Size: 8, Elem: inner}
}

// NewArray allocates a fresh array-of-elem ctype with the given length
// (-1 if not yet known, e.g. `T a[]` pending initializer inference).
func NewArray(elem *Ctype, length int) *Ctype {
	size := -1
	if length >= 0 {
		size = elem.Size * length
	}
	return &Ctype{Kind: KArray, Size: size, Elem: elem, Len: length}
}

// NewStruct builds a struct or union ctype from a precomputed fields
// dict and size; layout itself lives in layout.go.
func NewStruct(fields *container.Dict[*Ctype], size int, isUnion bool) *Ctype {
	return &Ctype{Kind: KStruct, Size: size, Fields: fields, IsUnion: isUnion}
}

// StructField returns a shallow copy of elem with Offset set, the
// mechanism by which a field's position is attached without mutating
// the element's own canonical ctype.
func StructField(elem *Ctype, offset int) *Ctype {
	cp := *elem
	cp.Offset = offset
	return &cp
}

// String renders a human-readable type name, used by diagnostics and
// by astdump; it is not part of the emitter's data contract.
func (c *Ctype) String() string {
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
	case Uint:
		return "uint"
	case KPtr:
		return c.Elem.String() + "*"
	case KArray:
		if c.Len < 0 {
			return c.Elem.String() + "[]"
		}
		return fmt.Sprintf("%s[%d]", c.Elem, c.Len)
	case KStruct:
		tag := "struct"
		if c.IsUnion {
			tag = "union"
		}
		var names []string
		for _, k := range c.Fields.Keys() {
			names = append(names, k)
		}
		return fmt.Sprintf("%s{%s}", tag, strings.Join(names, ","))
	default:
		return "?"
	}
}

// IsInt reports whether c is one of the integral scalar kinds.
func IsInt(c *Ctype) bool {
	switch c.Kind {
	case KChar, KInt, KLong:
		return true
	default:
		return false
	}
}

// IsFloat reports whether c is a floating-point scalar.
func IsFloat(c *Ctype) bool {
	if c.Kind == KFloat {
		return true
	}
	return AllowDouble && c.Kind == KDouble
}

// ConvertArray applies array-to-pointer decay: an array value becomes a
// pointer to its element type; everything else is unchanged. This must
// be applied at every point an array participates as a value.
func ConvertArray(c *Ctype) *Ctype {
	if c.Kind == KArray {
		return NewPtr(c.Elem)
	}
	return c
}
