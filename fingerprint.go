package lineards

import (
	murmur "github.com/aviddiviner/go-murmur"
)

// Fingerprint returns a 64 bit murmur2 hash over the logical contents,
// seeded with the element width. Two collections holding equal bytes at
// equal widths fingerprint identically no matter which backing they use
// or how their buffers happen to be rotated. The walk reads the backing
// directly and leaves the cursor where it was. A nil collection
// fingerprints as 0.
func (ds *DS) Fingerprint() uint64 {
	if ds == nil {
		return 0
	}
	buf := make([]byte, 0, ds.size*ds.elemSize)
	ds.store.each(func(_ int, element []byte) {
		buf = append(buf, element...)
	})
	return murmur.MurmurHash64A(buf, uint64(ds.elemSize))
}
