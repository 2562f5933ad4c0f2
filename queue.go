package lineards

// The queue view appends at the back and consumes at position 0. On a
// vector both ends are O(1). On a list an unbroken run of appends is
// O(1) per element because the embedded cursor stays parked at the
// tail; a dequeue seeks it back to the front first.

// Enqueue places value at the back of the queue.
func (ds *DS) Enqueue(value []byte) error {
	return ds.InsertLast(value)
}

// Dequeue takes the front of the queue and returns its bytes.
func (ds *DS) Dequeue() ([]byte, error) {
	return ds.Remove(0)
}

// Front returns a copy of the front of the queue without removing it.
func (ds *DS) Front() ([]byte, error) {
	return ds.Get(0)
}
