package ctype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultTypeIntPromotion(t *testing.T) {
	rt, err := ResultType("+", CharType, IntType)
	require.NoError(t, err)
	assert.Equal(t, IntType, rt)
}

func TestResultTypeLongWins(t *testing.T) {
	rt, err := ResultType("+", IntType, LongType)
	require.NoError(t, err)
	assert.Equal(t, LongType, rt)
}

func TestResultTypeFloatWins(t *testing.T) {
	rt, err := ResultType("+", IntType, FloatType)
	require.NoError(t, err)
	assert.Equal(t, FloatType, rt)
}

func TestResultTypeAssignToPointerReturnsSmallerTagOperand(t *testing.T) {
	ptr := NewPtr(IntType)
	rt, err := ResultType("=", ptr, IntType)
	require.NoError(t, err)
	assert.Equal(t, IntType, rt)
}

func TestResultTypePointerArithmeticReturnsPointer(t *testing.T) {
	ptr := NewPtr(CharType)
	rt, err := ResultType("+", ptr, IntType)
	require.NoError(t, err)
	assert.Equal(t, ptr, rt)
}

func TestResultTypePointerPointerArithmeticIsError(t *testing.T) {
	_, err := ResultType("+", NewPtr(IntType), NewPtr(IntType))
	require.Error(t, err)
}

func TestResultTypeArrayDecaysToPointer(t *testing.T) {
	arr := NewArray(IntType, 4)
	rt, err := ResultType("+", arr, IntType)
	require.NoError(t, err)
	assert.Equal(t, KPtr, rt.Kind)
	assert.Equal(t, IntType, rt.Elem)
}

func TestResultTypeErrorMentionsOriginalArrayType(t *testing.T) {
	_, err := ResultType("+", NewArray(IntType, 3), NewArray(CharType, 3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "int[], char[]")
}

func TestResultTypeVoidIsInvalidOperand(t *testing.T) {
	_, err := ResultType("+", VoidType, IntType)
	require.Error(t, err)
}

func TestConvertArrayDecaysArrayOnly(t *testing.T) {
	arr := NewArray(CharType, 10)
	decayed := ConvertArray(arr)
	assert.Equal(t, KPtr, decayed.Kind)
	assert.Equal(t, CharType, decayed.Elem)
	assert.Same(t, IntType, ConvertArray(IntType))
}

func TestConvertArrayIsNotDeduplicated(t *testing.T) {
	arr := NewArray(IntType, 2)
	a := ConvertArray(arr)
	b := ConvertArray(arr)
	assert.NotSame(t, a, b)
	assert.Equal(t, a, b)
}

func TestIsIntAndIsFloat(t *testing.T) {
	assert.True(t, IsInt(CharType))
	assert.True(t, IsInt(IntType))
	assert.True(t, IsInt(LongType))
	assert.False(t, IsInt(FloatType))
	assert.True(t, IsFloat(FloatType))
	assert.False(t, IsFloat(IntType))
}
