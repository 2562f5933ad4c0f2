package lineards

// Kind identifies the backing behind a collection.
type Kind int

const (
	KindUnknown Kind = iota
	KindVector
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindVector:
		return "vector"
	case KindList:
		return "list"
	}
	return "unknown"
}

// Config controls the construction of a collection
type Config struct {
	// Which backing to build. KindVector is a growable circular
	// buffer, KindList a singly linked chain.
	Kind Kind
	// Number of elements the vector backing starts out with room
	// for. Ignored for lists. Negative values are treated as zero.
	InitialCapacity int
	// Fixed width in bytes of every element. Must be at least 1.
	ElementSize int
	// Allocator for backing memory. Defaults to DefaultAlloc.
	Alloc AllocFn
}
