package lineards

import (
	"bytes"
	"fmt"
)

// vectorStorage keeps elements in one contiguous buffer used as a
// circular queue. head is the physical slot of logical position 0,
// tail the slot one past the last element; logical position k lives in
// slot (head+k) mod capacity. Keeping both ends free-floating makes
// removals at either end O(1), which is what the stack and queue
// wrappers lean on.
type vectorStorage struct {
	ds   *DS
	buf  []byte
	head int
	tail int
}

var _ storage = (*vectorStorage)(nil)

// slot returns the byte range of physical slot i.
func (v *vectorStorage) slot(i int) []byte {
	es := v.ds.elemSize
	return v.buf[i*es : (i+1)*es]
}

func (v *vectorStorage) insert(position int, value []byte) error {
	ds := v.ds
	es := ds.elemSize

	if ds.size == ds.capacity {
		newCap := ds.capacity * 2
		if newCap == 0 {
			newCap = 1
		}
		nbuf, err := ds.alloc(newCap * es)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAllocation, err)
		}
		copy(nbuf, v.buf)
		// unwrap the low segment so the live span is contiguous again
		if v.head >= v.tail {
			copy(nbuf[ds.capacity*es:(ds.capacity+v.tail)*es], nbuf[:v.tail*es])
			v.tail = ds.capacity + v.tail
		}
		v.buf = nbuf
		ds.capacity = newCap
	}

	switch {
	case position == ds.size:
		copy(v.slot(v.tail), value)
		v.tail = (v.tail + 1) % ds.capacity
	case position == 0:
		v.head = (v.head - 1 + ds.capacity) % ds.capacity
		copy(v.slot(v.head), value)
	default:
		index := (v.head + position) % ds.capacity
		if v.tail > index {
			// open a gap by shifting [index, tail) one slot right
			copy(v.buf[(index+1)*es:(v.tail+1)*es], v.buf[index*es:v.tail*es])
		} else {
			// the gap straddles the wrap point: rotate the low
			// segment right, carry the last slot around, then
			// shift the high segment right
			copy(v.buf[es:(v.tail+1)*es], v.buf[:v.tail*es])
			copy(v.buf[:es], v.buf[(ds.capacity-1)*es:])
			copy(v.buf[(index+1)*es:ds.capacity*es], v.buf[index*es:(ds.capacity-1)*es])
		}
		copy(v.slot(index), value)
		v.tail = (v.tail + 1) % ds.capacity
	}
	ds.size++
	return nil
}

func (v *vectorStorage) remove(position int, out []byte) {
	ds := v.ds
	es := ds.elemSize

	if out != nil {
		copy(out, v.slot((v.head+position)%ds.capacity))
	}

	switch {
	case position == ds.size-1:
		v.tail = (v.tail - 1 + ds.capacity) % ds.capacity
	case position == 0:
		v.head = (v.head + 1) % ds.capacity
	default:
		index := (v.head + position) % ds.capacity
		if v.tail > index {
			// close the gap by shifting (index, tail) one slot left
			copy(v.buf[index*es:(v.tail-1)*es], v.buf[(index+1)*es:v.tail*es])
			v.tail = (v.tail - 1 + ds.capacity) % ds.capacity
		} else {
			// the removed slot sits in the high segment: shift
			// [head, index) right into it and advance head
			copy(v.buf[(v.head+1)*es:(v.head+1+position)*es], v.buf[v.head*es:(v.head+position)*es])
			v.head = (v.head + 1) % ds.capacity
		}
	}
	ds.size--
}

func (v *vectorStorage) get(position int, out []byte) {
	copy(out, v.slot((v.head+position)%v.ds.capacity))
}

func (v *vectorStorage) set(position int, value []byte) error {
	s := v.slot((v.head + position) % v.ds.capacity)
	if bytes.Equal(s, value) {
		return ErrUnchanged
	}
	copy(s, value)
	return nil
}

func (v *vectorStorage) clear() {
	v.head, v.tail = 0, 0
}

func (v *vectorStorage) free() {
	v.buf = nil
	v.head, v.tail = 0, 0
	v.ds.capacity = 0
}

func (v *vectorStorage) describe() string {
	return fmt.Sprintf("kind: %s; size: %d; capacity: %d; head: %d; tail: %d",
		KindVector, v.ds.size, v.ds.capacity, v.head, v.tail)
}

func (v *vectorStorage) each(fn func(position int, element []byte)) {
	for i := 0; i < v.ds.size; i++ {
		fn(i, v.slot((v.head+i)%v.ds.capacity))
	}
}

func (v *vectorStorage) checkConsistency() error {
	ds := v.ds
	if len(v.buf) != ds.capacity*ds.elemSize {
		return fmt.Errorf("buffer holds %d bytes, capacity %d wants %d",
			len(v.buf), ds.capacity, ds.capacity*ds.elemSize)
	}
	if ds.size > ds.capacity {
		return fmt.Errorf("size %d exceeds capacity %d", ds.size, ds.capacity)
	}
	if ds.capacity == 0 {
		if v.head != 0 || v.tail != 0 {
			return fmt.Errorf("zero capacity with head %d tail %d", v.head, v.tail)
		}
		return nil
	}
	if v.head < 0 || v.head >= ds.capacity || v.tail < 0 || v.tail >= ds.capacity {
		return fmt.Errorf("head %d or tail %d outside capacity %d", v.head, v.tail, ds.capacity)
	}
	if want := (v.head + ds.size) % ds.capacity; want != v.tail {
		return fmt.Errorf("tail is %d, head %d plus size %d wants %d", v.tail, v.head, ds.size, want)
	}
	if ds.it.current != nil || ds.it.previous != nil {
		return fmt.Errorf("cursor carries chain pointers on a vector")
	}
	return nil
}

// The cursor on a vector is nothing but a position; its primitives
// reuse the positional operations directly.

func (v *vectorStorage) itReset() {
	v.ds.it.position = 0
}

func (v *vectorStorage) itGo(position int) {
	v.ds.it.position = position
}

func (v *vectorStorage) itNext() {
	v.ds.it.position++
}

func (v *vectorStorage) itAdd(value []byte) error {
	return v.insert(v.ds.it.position, value)
}

func (v *vectorStorage) itRemove(out []byte) {
	v.remove(v.ds.it.position, out)
}

func (v *vectorStorage) itGet(out []byte) {
	v.get(v.ds.it.position, out)
}

func (v *vectorStorage) itSet(value []byte) error {
	return v.set(v.ds.it.position, value)
}
