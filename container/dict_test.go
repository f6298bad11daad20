package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictGetLocal(t *testing.T) {
	d := NewDict[int](nil)
	d.Put("a", 1)
	d.Put("b", 2)
	v, ok := d.GetLocal("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []string{"a", "b"}, d.Keys())
	assert.Equal(t, []int{1, 2}, d.Values())
}

func TestDictWalksParentChain(t *testing.T) {
	parent := NewDict[int](nil)
	parent.Put("x", 100)
	child := NewDict[int](parent)
	child.Put("y", 200)

	v, ok := child.Get("x")
	assert.True(t, ok)
	assert.Equal(t, 100, v)

	_, ok = child.GetLocal("x")
	assert.False(t, ok, "GetLocal must not walk the parent chain")
}

func TestDictChildShadowsParent(t *testing.T) {
	parent := NewDict[int](nil)
	parent.Put("x", 1)
	child := NewDict[int](parent)
	child.Put("x", 2)

	v, _ := child.Get("x")
	assert.Equal(t, 2, v)
	pv, _ := parent.Get("x")
	assert.Equal(t, 1, pv)
}

func TestDictMissingKey(t *testing.T) {
	d := NewDict[int](nil)
	_, ok := d.Get("missing")
	assert.False(t, ok)
}

func TestDictRedeclarationInSameFrameReturnsLatest(t *testing.T) {
	d := NewDict[int](nil)
	d.Put("x", 1)
	d.Put("x", 2)
	v, ok := d.GetLocal("x")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, d.Len())
}

func TestDictParentAccessor(t *testing.T) {
	parent := NewDict[int](nil)
	child := NewDict[int](parent)
	assert.Same(t, parent, child.Parent())
	assert.Nil(t, parent.Parent())
}
