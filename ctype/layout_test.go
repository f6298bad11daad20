package ctype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutStructNoTrailingPadding(t *testing.T) {
	fields := []FieldSpec{
		{Name: "a", Type: CharType}, // offset 0, size 1
		{Name: "b", Type: IntType},  // aligned to 4 -> offset 4, size 4
		{Name: "c", Type: CharType}, // offset 8, size 1
	}
	dict, size := LayoutStruct(fields)

	a, ok := dict.GetLocal("a")
	require.True(t, ok)
	assert.Equal(t, 0, a.Offset)

	b, ok := dict.GetLocal("b")
	require.True(t, ok)
	assert.Equal(t, 4, b.Offset)

	c, ok := dict.GetLocal("c")
	require.True(t, ok)
	assert.Equal(t, 8, c.Offset)

	// size is last offset + its field size, NOT padded to the largest
	// member's alignment (8 + 1 = 9, not 12).
	assert.Equal(t, 9, size)
}

func TestLayoutStructFieldAlignmentCapsAtMaxAlign(t *testing.T) {
	big := &Ctype{Kind: KStruct, Size: 32}
	fields := []FieldSpec{
		{Name: "x", Type: CharType},
		{Name: "y", Type: big},
	}
	dict, size := LayoutStruct(fields)
	y, _ := dict.GetLocal("y")
	assert.Equal(t, MaxAlign, y.Offset)
	assert.Equal(t, MaxAlign+32, size)
}

func TestLayoutUnionAllFieldsAtZero(t *testing.T) {
	fields := []FieldSpec{
		{Name: "i", Type: IntType},
		{Name: "l", Type: LongType},
		{Name: "c", Type: CharType},
	}
	dict, size := LayoutUnion(fields)
	for _, name := range []string{"i", "l", "c"} {
		f, ok := dict.GetLocal(name)
		require.True(t, ok)
		assert.Equal(t, 0, f.Offset)
	}
	assert.Equal(t, 8, size) // LongType.Size
}

func TestStructFieldDoesNotMutateCanonicalType(t *testing.T) {
	f := StructField(IntType, 4)
	assert.Equal(t, 4, f.Offset)
	assert.Equal(t, 0, IntType.Offset)
	assert.NotSame(t, IntType, f)
}
