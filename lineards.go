// Package lineards implements a positionally indexed linear
// collection of fixed size byte elements which supports:
//  1. interchangeable backings: a growable circular buffer ("vector")
//     or a singly linked chain ("list"), chosen at construction
//  2. one embedded cursor per collection for traversal and
//     cursor-relative mutation
//  3. stack and queue views layered on the positional operations
//  4. pluggable allocation
//
// Elements are opaque byte slices of one fixed width. The collection
// copies bytes in on writes and out on reads and never retains or
// exposes caller or backing memory. Collections are not safe for
// concurrent use.
package lineards

import (
	"fmt"
	"io"
)

// DS is a linear collection. The zero value is not usable; build one
// with NewVector, NewList or NewWithConfig.
type DS struct {
	kind     Kind
	size     int
	capacity int
	elemSize int
	alloc    AllocFn
	store    storage
	it       Iterator

	debugW   io.Writer
	debugFmt DumpFormatter
}

// NewVector builds a circular buffer collection with room for
// initialCapacity elements of elementSize bytes each. The buffer
// doubles whenever an insert finds it full; a zero or negative
// initialCapacity just means the first insert allocates.
func NewVector(initialCapacity, elementSize int) (*DS, error) {
	return NewWithConfig(Config{
		Kind:            KindVector,
		InitialCapacity: initialCapacity,
		ElementSize:     elementSize,
	})
}

// NewList builds a linked chain collection holding elements of
// elementSize bytes each.
func NewList(elementSize int) (*DS, error) {
	return NewWithConfig(Config{
		Kind:        KindList,
		ElementSize: elementSize,
	})
}

// NewWithConfig builds a collection from an explicit configuration.
func NewWithConfig(c Config) (*DS, error) {
	if c.Alloc == nil {
		c.Alloc = DefaultAlloc
	}
	if c.ElementSize <= 0 {
		return nil, ErrElementSize
	}
	if c.InitialCapacity < 0 {
		c.InitialCapacity = 0
	}

	ds := &DS{
		kind:     c.Kind,
		elemSize: c.ElementSize,
		alloc:    c.Alloc,
	}
	ds.it.ds = ds

	switch c.Kind {
	case KindVector:
		buf, err := c.Alloc(c.InitialCapacity * c.ElementSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
		}
		ds.capacity = c.InitialCapacity
		ds.store = &vectorStorage{ds: ds, buf: buf}
	case KindList:
		ds.store = &listStorage{ds: ds}
	default:
		return nil, fmt.Errorf("lineards: unknown kind %d", c.Kind)
	}
	return ds, nil
}

// Insert places value at position, shifting everything from position
// on one place up. position may equal the size, which appends.
func (ds *DS) Insert(position int, value []byte) error {
	if ds == nil || value == nil {
		return ErrNilArgument
	}
	if len(value) != ds.elemSize {
		return ErrElementSize
	}
	if position < 0 || position > ds.size {
		return ErrPosition
	}
	if err := ds.store.insert(position, value); err != nil {
		return err
	}
	ds.dump("insert")
	return nil
}

// InsertLast appends value.
func (ds *DS) InsertLast(value []byte) error {
	if ds == nil {
		return ErrNilArgument
	}
	return ds.Insert(ds.size, value)
}

// Get returns a fresh copy of the element at position.
func (ds *DS) Get(position int) ([]byte, error) {
	if ds == nil {
		return nil, ErrNilArgument
	}
	if position < 0 || position >= ds.size {
		return nil, ErrPosition
	}
	out := make([]byte, ds.elemSize)
	ds.store.get(position, out)
	return out, nil
}

// GetLast returns a fresh copy of the final element.
func (ds *DS) GetLast() ([]byte, error) {
	if ds == nil {
		return nil, ErrNilArgument
	}
	return ds.Get(ds.size - 1)
}

// Set overwrites the element at position. Writing the bytes already
// stored there reports ErrUnchanged and touches nothing.
func (ds *DS) Set(position int, value []byte) error {
	if ds == nil || value == nil {
		return ErrNilArgument
	}
	if len(value) != ds.elemSize {
		return ErrElementSize
	}
	if position < 0 || position >= ds.size {
		return ErrPosition
	}
	if err := ds.store.set(position, value); err != nil {
		return err
	}
	ds.dump("set")
	return nil
}

// Remove takes out the element at position and returns its bytes.
func (ds *DS) Remove(position int) ([]byte, error) {
	if ds == nil {
		return nil, ErrNilArgument
	}
	if position < 0 || position >= ds.size {
		return nil, ErrPosition
	}
	out := make([]byte, ds.elemSize)
	ds.store.remove(position, out)
	ds.dump("remove")
	return out, nil
}

// RemoveLast takes out the final element and returns its bytes.
func (ds *DS) RemoveLast() ([]byte, error) {
	if ds == nil {
		return nil, ErrNilArgument
	}
	if ds.size == 0 {
		return nil, ErrPosition
	}
	out := make([]byte, ds.elemSize)
	ds.store.remove(ds.size-1, out)
	ds.dump("remove_last")
	return out, nil
}

// Size reports the number of elements. 0 for a nil collection.
func (ds *DS) Size() int {
	if ds == nil {
		return 0
	}
	return ds.size
}

// Capacity reports how many elements the vector backing has room for
// before it must grow. Lists and nil collections report 0.
func (ds *DS) Capacity() int {
	if ds == nil || ds.kind != KindVector {
		return 0
	}
	return ds.capacity
}

// ElementSize reports the fixed element width in bytes.
func (ds *DS) ElementSize() int {
	if ds == nil {
		return 0
	}
	return ds.elemSize
}

// Kind reports the backing behind the collection.
func (ds *DS) Kind() Kind {
	if ds == nil {
		return KindUnknown
	}
	return ds.kind
}

// IsEmpty reports whether the collection holds no elements.
func (ds *DS) IsEmpty() bool {
	return ds == nil || ds.size == 0
}

// Iterator returns the collection's embedded cursor.
func (ds *DS) Iterator() *Iterator {
	if ds == nil {
		return nil
	}
	return &ds.it
}

// Clear drops every element but keeps the vector backing allocated at
// its current capacity. The cursor comes back to rest at position 0.
func (ds *DS) Clear() error {
	if ds == nil {
		return ErrNilArgument
	}
	ds.store.clear()
	ds.size = 0
	ds.store.itReset()
	ds.dump("clear")
	return nil
}

// Free releases the backing memory. The handle stays a valid empty
// collection: a vector comes back with zero capacity and grows again
// on the next insert. The pre-release contents go to the debug sink.
func (ds *DS) Free() error {
	if ds == nil {
		return ErrNilArgument
	}
	ds.dump("free")
	ds.store.free()
	ds.size = 0
	ds.store.itReset()
	return nil
}

// CheckConsistency audits every structural invariant of the
// collection and its cursor, returning a description of the first
// violation found. It exists for tests and for tracking down misuse;
// a healthy collection always reports nil.
func (ds *DS) CheckConsistency() error {
	if ds == nil {
		return nil
	}
	if ds.kind != KindVector && ds.kind != KindList {
		return fmt.Errorf("unknown kind %d", ds.kind)
	}
	if ds.elemSize <= 0 {
		return fmt.Errorf("element size %d", ds.elemSize)
	}
	if ds.size < 0 {
		return fmt.Errorf("negative size %d", ds.size)
	}
	if ds.it.ds != ds {
		return fmt.Errorf("cursor detached from its collection")
	}
	return ds.store.checkConsistency()
}
