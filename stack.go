package lineards

// The stack view treats position 0 as the top. On a vector both push
// and pop ride the circular buffer's head, so they stay O(1) without
// any shifting.

// Push places value on top of the stack.
func (ds *DS) Push(value []byte) error {
	return ds.Insert(0, value)
}

// Pop takes the top of the stack and returns its bytes.
func (ds *DS) Pop() ([]byte, error) {
	return ds.Remove(0)
}

// Peek returns a copy of the top of the stack without removing it.
func (ds *DS) Peek() ([]byte, error) {
	return ds.Get(0)
}
