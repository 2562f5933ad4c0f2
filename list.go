package lineards

import (
	"bytes"
	"fmt"
)

// node is one link of the chain. data is a private copy of exactly one
// element.
type node struct {
	data []byte
	next *node
}

// listStorage keeps elements in a singly linked chain between first and
// last. There is no index arithmetic here at all: every positional
// operation seeks the collection's embedded cursor to the position and
// then runs the matching cursor primitive, so positional calls on a
// list visibly move the cursor. Repeated appends stay O(1) amortized
// because the cursor is already parked at the tail.
type listStorage struct {
	ds    *DS
	first *node
	last  *node
}

var _ storage = (*listStorage)(nil)

func (l *listStorage) insert(position int, value []byte) error {
	l.itGo(position)
	return l.itAdd(value)
}

func (l *listStorage) remove(position int, out []byte) {
	l.itGo(position)
	l.itRemove(out)
}

func (l *listStorage) get(position int, out []byte) {
	l.itGo(position)
	l.itGet(out)
}

func (l *listStorage) set(position int, value []byte) error {
	l.itGo(position)
	return l.itSet(value)
}

func (l *listStorage) clear() {
	l.free()
}

func (l *listStorage) free() {
	for n := l.first; n != nil; {
		next := n.next
		// sever the links, let the nodes be GCed
		n.data, n.next = nil, nil
		n = next
	}
	l.first, l.last = nil, nil
}

func (l *listStorage) describe() string {
	return fmt.Sprintf("kind: %s; size: %d", KindList, l.ds.size)
}

func (l *listStorage) each(fn func(position int, element []byte)) {
	i := 0
	for n := l.first; n != nil; n = n.next {
		fn(i, n.data)
		i++
	}
}

func (l *listStorage) checkConsistency() error {
	ds := l.ds
	count := 0
	var tail *node
	for n := l.first; n != nil; n = n.next {
		if len(n.data) != ds.elemSize {
			return fmt.Errorf("node %d holds %d bytes, element size is %d",
				count, len(n.data), ds.elemSize)
		}
		tail = n
		count++
		if count > ds.size {
			return fmt.Errorf("chain is longer than the recorded size %d", ds.size)
		}
	}
	if count != ds.size {
		return fmt.Errorf("chain holds %d nodes, size says %d", count, ds.size)
	}
	if tail != l.last {
		return fmt.Errorf("last does not point at the end of the chain")
	}

	it := &ds.it
	if it.position < 0 || it.position > ds.size {
		return fmt.Errorf("cursor position %d outside [0, %d]", it.position, ds.size)
	}
	cur, prev := l.first, (*node)(nil)
	for i := 0; i < it.position; i++ {
		prev = cur
		cur = cur.next
	}
	if it.current != cur || it.previous != prev {
		return fmt.Errorf("cursor pointers out of step with position %d", it.position)
	}
	return nil
}

func (l *listStorage) itReset() {
	it := &l.ds.it
	it.position = 0
	it.current = l.first
	it.previous = nil
}

// itGo walks the cursor to position. The chain only links forward, so a
// backward seek restarts from the head.
func (l *listStorage) itGo(position int) {
	it := &l.ds.it
	if position < it.position {
		l.itReset()
	}
	for it.position < position {
		l.itNext()
	}
}

func (l *listStorage) itNext() {
	it := &l.ds.it
	it.position++
	it.previous = it.current
	it.current = it.current.next
}

// itAdd links a fresh node in front of the cursor. The cursor position
// does not move; the new node becomes the current one.
func (l *listStorage) itAdd(value []byte) error {
	ds := l.ds
	data, err := ds.alloc(ds.elemSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	copy(data, value)

	it := &ds.it
	n := &node{data: data, next: it.current}
	if it.previous != nil {
		it.previous.next = n
	}
	it.current = n

	if it.position == 0 {
		l.first = n
	}
	if it.position == ds.size {
		l.last = n
	}
	ds.size++
	return nil
}

// itRemove unlinks the current node. The cursor position does not
// move; the next node slides in under it.
func (l *listStorage) itRemove(out []byte) {
	ds := l.ds
	it := &ds.it

	removed := it.current
	it.current = removed.next
	if it.previous != nil {
		it.previous.next = it.current
	}
	if l.first == removed {
		l.first = it.current
	}
	if l.last == removed {
		l.last = it.previous
	}
	if out != nil {
		copy(out, removed.data)
	}
	removed.data, removed.next = nil, nil
	ds.size--
}

func (l *listStorage) itGet(out []byte) {
	copy(out, l.ds.it.current.data)
}

func (l *listStorage) itSet(value []byte) error {
	cur := l.ds.it.current
	if bytes.Equal(cur.data, value) {
		return ErrUnchanged
	}
	copy(cur.data, value)
	return nil
}
