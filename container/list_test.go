package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListPushTailOrder(t *testing.T) {
	l := NewList[int]()
	l.PushTail(1)
	l.PushTail(2)
	l.PushTail(3)
	assert.Equal(t, []int{1, 2, 3}, l.Slice())
	assert.Equal(t, 3, l.Len())
}

func TestListPushHeadOrder(t *testing.T) {
	l := NewList[int]()
	l.PushHead(1)
	l.PushHead(2)
	l.PushHead(3)
	assert.Equal(t, []int{3, 2, 1}, l.Slice())
}

func TestListPopTail(t *testing.T) {
	l := NewList[int]()
	l.PushTail(1)
	l.PushTail(2)
	v, ok := l.PopTail()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, []int{1}, l.Slice())
}

func TestListPopTailEmpty(t *testing.T) {
	l := NewList[int]()
	_, ok := l.PopTail()
	assert.False(t, ok)
}

func TestListReverseLeavesOriginalUntouched(t *testing.T) {
	l := NewList[int]()
	l.PushTail(1)
	l.PushTail(2)
	l.PushTail(3)
	r := l.Reverse()
	assert.Equal(t, []int{3, 2, 1}, r.Slice())
	assert.Equal(t, []int{1, 2, 3}, l.Slice())
}

func TestListIterator(t *testing.T) {
	l := NewList[int]()
	l.PushTail(10)
	l.PushTail(20)
	next := l.Iterator()
	var got []int
	for {
		v, ok := next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{10, 20}, got)
}

func TestListPopTailThenPushTailRelinks(t *testing.T) {
	l := NewList[int]()
	l.PushTail(1)
	l.PushTail(2)
	l.PopTail()
	l.PushTail(3)
	assert.Equal(t, []int{1, 3}, l.Slice())
}
