package lineards

// Iterator is the single stateful cursor embedded in every collection.
// It tracks a position between 0 and the collection size inclusive;
// the size itself is the one-past-the-end resting point. Obtain it
// with DS.Iterator; it is never allocated separately and survives for
// the life of the collection.
//
// On a list the cursor is the machinery the positional operations run
// on, so DS.Insert, DS.Remove, DS.Get and DS.Set move it as a side
// effect. On a vector they leave it alone, which means positional
// removals can strand it past the new end; element operations then
// return ErrPosition until Reset or Seek put it back in range.
type Iterator struct {
	ds       *DS
	position int
	current  *node
	previous *node
}

// Position reports where the cursor rests. 0 for a nil cursor.
func (it *Iterator) Position() int {
	if it == nil {
		return 0
	}
	return it.position
}

// HasNext reports whether an element lies at the cursor position.
func (it *Iterator) HasNext() bool {
	if it == nil || it.ds == nil {
		return false
	}
	return it.position < it.ds.size
}

// Next advances the cursor one element.
func (it *Iterator) Next() error {
	if it == nil || it.ds == nil {
		return ErrNilArgument
	}
	if it.position >= it.ds.size {
		return ErrPosition
	}
	it.ds.store.itNext()
	return nil
}

// Get copies out the element at the cursor.
func (it *Iterator) Get() ([]byte, error) {
	if it == nil || it.ds == nil {
		return nil, ErrNilArgument
	}
	if it.position >= it.ds.size {
		return nil, ErrPosition
	}
	out := make([]byte, it.ds.elemSize)
	it.ds.store.itGet(out)
	return out, nil
}

// Set overwrites the element at the cursor. Writing the bytes already
// stored there reports ErrUnchanged and touches nothing.
func (it *Iterator) Set(value []byte) error {
	if it == nil || it.ds == nil || value == nil {
		return ErrNilArgument
	}
	if len(value) != it.ds.elemSize {
		return ErrElementSize
	}
	if it.position >= it.ds.size {
		return ErrPosition
	}
	return it.ds.store.itSet(value)
}

// Add inserts value at the cursor position. The position does not
// move: the new element becomes the current one and everything from it
// on shifts one place down.
func (it *Iterator) Add(value []byte) error {
	if it == nil || it.ds == nil || value == nil {
		return ErrNilArgument
	}
	if len(value) != it.ds.elemSize {
		return ErrElementSize
	}
	if it.position > it.ds.size {
		return ErrPosition
	}
	return it.ds.store.itAdd(value)
}

// Remove takes out the element at the cursor and returns its bytes.
// The position does not move; the element after the removed one slides
// in under the cursor.
func (it *Iterator) Remove() ([]byte, error) {
	if it == nil || it.ds == nil {
		return nil, ErrNilArgument
	}
	if it.position >= it.ds.size {
		return nil, ErrPosition
	}
	out := make([]byte, it.ds.elemSize)
	it.ds.store.itRemove(out)
	return out, nil
}

// Reset moves the cursor back to position 0.
func (it *Iterator) Reset() error {
	if it == nil || it.ds == nil {
		return ErrNilArgument
	}
	it.ds.store.itReset()
	return nil
}

// Seek moves the cursor to position, which may be anything from 0 to
// the collection size inclusive. Seeking backward on a list restarts
// the walk from the head.
func (it *Iterator) Seek(position int) error {
	if it == nil || it.ds == nil {
		return ErrNilArgument
	}
	if position < 0 || position > it.ds.size {
		return ErrPosition
	}
	it.ds.store.itGo(position)
	return nil
}
