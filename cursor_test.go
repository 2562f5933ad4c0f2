package lineards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorWalk(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.name, func(t *testing.T) {
			ds := k.make(t, 4)
			for i := 0; i < 10; i++ {
				require.NoError(t, ds.InsertLast(i32(i * 11)))
			}

			it := ds.Iterator()
			require.NoError(t, it.Reset())

			var got []int
			for it.HasNext() {
				v, err := it.Get()
				require.NoError(t, err)
				got = append(got, fromI32(v))
				require.NoError(t, it.Next())
			}
			require.Len(t, got, 10)
			for i, v := range got {
				assert.Equal(t, i*11, v)
			}

			assert.Equal(t, ds.Size(), it.Position())
			assert.False(t, it.HasNext())
			assert.ErrorIs(t, it.Next(), ErrPosition)
			_, err := it.Get()
			assert.ErrorIs(t, err, ErrPosition)
		})
	}
}

// Add leaves the cursor position alone and slides the new element in
// under it, so repeated adds at position 0 build the sequence from the
// back forward
func TestCursorAddBuildsInReverse(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.name, func(t *testing.T) {
			ds := k.make(t, 4)
			it := ds.Iterator()

			for _, v := range []int{3, 2, 1} {
				require.NoError(t, it.Add(i32(v)))
				assert.Equal(t, 0, it.Position())
				assert.NoError(t, ds.CheckConsistency())
			}

			got := contents(t, ds)
			for i, want := range []int{1, 2, 3} {
				assert.Equal(t, want, fromI32(got[i]))
			}
		})
	}
}

func TestCursorAddAtEndAppends(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.name, func(t *testing.T) {
			ds := k.make(t, 4)
			require.NoError(t, ds.InsertLast(i32(1)))
			require.NoError(t, ds.InsertLast(i32(2)))

			it := ds.Iterator()
			require.NoError(t, it.Seek(ds.Size()))
			require.NoError(t, it.Add(i32(3)))

			assert.Equal(t, 2, it.Position(), "append leaves the cursor on the new element")
			v, err := it.Get()
			require.NoError(t, err)
			assert.Equal(t, 3, fromI32(v))

			last, err := ds.GetLast()
			require.NoError(t, err)
			assert.Equal(t, 3, fromI32(last))
			assert.NoError(t, ds.CheckConsistency())
		})
	}
}

func TestCursorRemoveSlidesNextIn(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.name, func(t *testing.T) {
			ds := k.make(t, 4)
			for _, v := range []int{10, 20, 30} {
				require.NoError(t, ds.InsertLast(i32(v)))
			}

			it := ds.Iterator()
			require.NoError(t, it.Seek(1))

			v, err := it.Remove()
			require.NoError(t, err)
			assert.Equal(t, 20, fromI32(v))
			assert.Equal(t, 1, it.Position())

			v, err = it.Get()
			require.NoError(t, err)
			assert.Equal(t, 30, fromI32(v), "the successor takes the removed slot")

			v, err = it.Remove()
			require.NoError(t, err)
			assert.Equal(t, 30, fromI32(v))

			// the cursor now rests at the end of a shorter collection
			assert.Equal(t, 1, it.Position())
			assert.Equal(t, 1, ds.Size())
			_, err = it.Get()
			assert.ErrorIs(t, err, ErrPosition)
			assert.NoError(t, ds.CheckConsistency())
		})
	}
}

func TestCursorSetRewritesInPlace(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.name, func(t *testing.T) {
			ds := k.make(t, 4)
			for _, v := range []int{1, 2, 3} {
				require.NoError(t, ds.InsertLast(i32(v)))
			}

			it := ds.Iterator()
			require.NoError(t, it.Seek(1))
			require.NoError(t, it.Set(i32(22)))
			assert.ErrorIs(t, it.Set(i32(22)), ErrUnchanged)
			assert.Equal(t, 1, it.Position())
			assert.Equal(t, 3, ds.Size())

			got := contents(t, ds)
			for i, want := range []int{1, 22, 3} {
				assert.Equal(t, want, fromI32(got[i]))
			}
		})
	}
}

func TestCursorSeekBounds(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.name, func(t *testing.T) {
			ds := k.make(t, 4)
			for _, v := range []int{1, 2} {
				require.NoError(t, ds.InsertLast(i32(v)))
			}
			it := ds.Iterator()

			assert.ErrorIs(t, it.Seek(-1), ErrPosition)
			assert.ErrorIs(t, it.Seek(3), ErrPosition)
			assert.NoError(t, it.Seek(2), "one past the end is the resting point")
			assert.NoError(t, it.Seek(0))
		})
	}
}

// positional removals do not touch a vector's cursor, so it can end up
// past the new end; every element operation must refuse until the
// cursor is put back in range
func TestVectorCursorStrandedPastEnd(t *testing.T) {
	ds := vectorOf(t, 4, 'a', 'b', 'c')
	it := ds.Iterator()
	require.NoError(t, it.Seek(3))

	for range [2]struct{}{} {
		_, err := ds.RemoveLast()
		require.NoError(t, err)
	}
	require.Equal(t, 1, ds.Size())
	require.Equal(t, 3, it.Position())

	_, err := it.Get()
	assert.ErrorIs(t, err, ErrPosition)
	assert.ErrorIs(t, it.Next(), ErrPosition)
	assert.ErrorIs(t, it.Set(b1('z')), ErrPosition)
	assert.ErrorIs(t, it.Add(b1('z')), ErrPosition)
	_, err = it.Remove()
	assert.ErrorIs(t, err, ErrPosition)
	assert.False(t, it.HasNext())

	require.NoError(t, it.Reset())
	v, err := it.Get()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), v[0])
	assert.NoError(t, ds.CheckConsistency())
}

func TestCursorNilSafety(t *testing.T) {
	var it *Iterator
	assert.Equal(t, 0, it.Position())
	assert.False(t, it.HasNext())
	assert.ErrorIs(t, it.Next(), ErrNilArgument)
	assert.ErrorIs(t, it.Reset(), ErrNilArgument)
	assert.ErrorIs(t, it.Seek(0), ErrNilArgument)
	assert.ErrorIs(t, it.Set(i32(1)), ErrNilArgument)
	assert.ErrorIs(t, it.Add(i32(1)), ErrNilArgument)
	_, err := it.Get()
	assert.ErrorIs(t, err, ErrNilArgument)
	_, err = it.Remove()
	assert.ErrorIs(t, err, ErrNilArgument)
}

func TestCursorNilValueAndWidth(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.name, func(t *testing.T) {
			ds := k.make(t, 4)
			require.NoError(t, ds.InsertLast(i32(1)))
			it := ds.Iterator()
			require.NoError(t, it.Reset())

			assert.ErrorIs(t, it.Add(nil), ErrNilArgument)
			assert.ErrorIs(t, it.Set(nil), ErrNilArgument)
			assert.ErrorIs(t, it.Add([]byte{1}), ErrElementSize)
			assert.ErrorIs(t, it.Set([]byte{1, 2, 3}), ErrElementSize)
			assert.Equal(t, 1, ds.Size())
		})
	}
}

// filter out every odd value in one pass, the way a caller is meant to
// mutate mid-iteration
func TestCursorFilterInOnePass(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.name, func(t *testing.T) {
			ds := k.make(t, 4)
			for i := 1; i <= 8; i++ {
				require.NoError(t, ds.InsertLast(i32(i)))
			}

			it := ds.Iterator()
			require.NoError(t, it.Reset())
			for it.HasNext() {
				v, err := it.Get()
				require.NoError(t, err)
				if fromI32(v)%2 == 1 {
					_, err = it.Remove()
					require.NoError(t, err)
				} else {
					require.NoError(t, it.Next())
				}
				assert.NoError(t, ds.CheckConsistency())
			}

			got := contents(t, ds)
			require.Len(t, got, 4)
			for i, want := range []int{2, 4, 6, 8} {
				assert.Equal(t, want, fromI32(got[i]))
			}
		})
	}
}
