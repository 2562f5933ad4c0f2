package lineards

// AllocFn allocates zeroed backing memory for a collection. Operations
// surface a failed allocation as ErrAllocation and leave the collection
// untouched. Buffers handed to callers are plain make slices and never
// go through the allocator.
type AllocFn func(bytes int) ([]byte, error)

// DefaultAlloc allocates with make and never fails.
func DefaultAlloc(bytes int) ([]byte, error) {
	return make([]byte, bytes), nil
}

// storage is the backing strategy behind a collection, chosen once at
// construction. The facade validates arguments and dispatches here, so
// implementations only ever report allocation failures and unchanged
// sets. The it methods are the primitives behind the embedded cursor;
// for lists they are also what the positional operations run on.
type storage interface {
	insert(position int, value []byte) error
	remove(position int, out []byte)
	get(position int, out []byte)
	set(position int, value []byte) error
	clear()
	free()

	// describe reports the backing specific summary line used by
	// structural dumps.
	describe() string
	// each visits every element in logical order. The slice passed to
	// fn aliases backing memory and must not be retained or written.
	each(fn func(position int, element []byte))
	checkConsistency() error

	itReset()
	itGo(position int)
	itNext()
	itAdd(value []byte) error
	itRemove(out []byte)
	itGet(out []byte)
	itSet(value []byte) error
}
