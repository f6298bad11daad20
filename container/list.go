// Package container provides the generic doubly-linked list and
// parent-chained ordered map used by the type system and parser to
// collect declarations, scopes, and struct/union fields.
package container

// List is a doubly-linked list with O(1) push at either end and O(1)
// pop at the tail.
type listNode[T any] struct {
	val        T
	prev, next *listNode[T]
}

type List[T any] struct {
	head, tail *listNode[T]
	length     int
}

// NewList returns an empty list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

func (l *List[T]) Len() int { return l.length }

// PushTail appends v at the end of the list.
func (l *List[T]) PushTail(v T) {
	n := &listNode[T]{val: v}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.length++
}

// PushHead prepends v at the start of the list.
func (l *List[T]) PushHead(v T) {
	n := &listNode[T]{val: v}
	if l.head == nil {
		l.head, l.tail = n, n
	} else {
		n.next = l.head
		l.head.prev = n
		l.head = n
	}
	l.length++
}

// PopTail removes and returns the last element. ok is false on an empty list.
func (l *List[T]) PopTail() (v T, ok bool) {
	if l.tail == nil {
		return v, false
	}
	n := l.tail
	l.tail = n.prev
	if l.tail != nil {
		l.tail.next = nil
	} else {
		l.head = nil
	}
	l.length--
	return n.val, true
}

// Slice materializes the list head-to-tail as a slice, the form every
// public AST accessor exposes downstream.
func (l *List[T]) Slice() []T {
	out := make([]T, 0, l.length)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.val)
	}
	return out
}

// Reverse returns a new list with elements in reverse order; the
// receiver is left untouched.
func (l *List[T]) Reverse() *List[T] {
	r := NewList[T]()
	for n := l.head; n != nil; n = n.next {
		r.PushHead(n.val)
	}
	return r
}

// Iterator returns a function that yields successive elements head-first;
// the second return value is false once the list is exhausted.
func (l *List[T]) Iterator() func() (T, bool) {
	cur := l.head
	return func() (v T, ok bool) {
		if cur == nil {
			return v, false
		}
		v, ok = cur.val, true
		cur = cur.next
		return v, ok
	}
}
