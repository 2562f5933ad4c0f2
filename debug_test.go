package lineards

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intFmt(w io.Writer, element []byte) {
	fmt.Fprintf(w, "%d ", fromI32(element))
}

var dumpAction = regexp.MustCompile(`\):([a-z_]+) =`)

func dumpActions(s string) []string {
	var out []string
	for _, m := range dumpAction.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

func TestDumpFrameShape(t *testing.T) {
	ds, err := NewVector(4, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	ds.Debug(&buf, charFmt)
	require.NoError(t, ds.InsertLast(b1('a')))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 7, "one frame is five lines inside a blank line and a trailing newline")
	assert.Equal(t, "", lines[0])

	assert.Regexp(t, `^\(0x[0-9a-f]+\):insert =+$`, lines[1])
	assert.Len(t, lines[1], 80, "the banner is padded out to the frame width")
	assert.Equal(t, "kind: vector; size: 1; capacity: 4; head: 0; tail: 1", lines[2])
	assert.Equal(t, strings.Repeat("-", 80), lines[3])
	assert.Equal(t, "a ", lines[4])
	assert.Equal(t, strings.Repeat("=", 80), lines[5])
	assert.Equal(t, "", lines[6])
}

func TestDumpOnlySuccessfulMutations(t *testing.T) {
	ds := vectorOf(t, 4, 'a', 'b', 'c')

	var buf bytes.Buffer
	ds.Debug(&buf, charFmt)

	// reads are silent
	_, err := ds.Get(0)
	require.NoError(t, err)
	_, err = ds.GetLast()
	require.NoError(t, err)
	_, err = ds.Peek()
	require.NoError(t, err)
	ds.Size()
	ds.Capacity()
	ds.Fingerprint()
	require.Empty(t, buf.String())

	// failed mutations are silent too
	assert.ErrorIs(t, ds.Insert(9, b1('z')), ErrPosition)
	assert.ErrorIs(t, ds.Set(0, nil), ErrNilArgument)
	require.Empty(t, buf.String())

	require.NoError(t, ds.Insert(1, b1('x')))
	require.NoError(t, ds.InsertLast(b1('y')))
	require.NoError(t, ds.Set(0, b1('A')))
	assert.ErrorIs(t, ds.Set(0, b1('A')), ErrUnchanged)
	_, err = ds.Remove(0)
	require.NoError(t, err)
	_, err = ds.RemoveLast()
	require.NoError(t, err)
	require.NoError(t, ds.Clear())

	assert.Equal(t,
		[]string{"insert", "insert", "set", "remove", "remove_last", "clear"},
		dumpActions(buf.String()))
}

func TestDumpSilentForCursorOps(t *testing.T) {
	ds := vectorOf(t, 4, 'a', 'b')

	var buf bytes.Buffer
	ds.Debug(&buf, charFmt)

	it := ds.Iterator()
	require.NoError(t, it.Reset())
	require.NoError(t, it.Add(b1('q')))
	require.NoError(t, it.Set(b1('Q')))
	_, err := it.Remove()
	require.NoError(t, err)
	require.NoError(t, it.Next())

	assert.Empty(t, buf.String(), "cursor operations bypass the debug sink")
}

func TestDebugDetach(t *testing.T) {
	ds := vectorOf(t, 4)

	var buf bytes.Buffer
	ds.Debug(&buf, charFmt)
	require.NoError(t, ds.InsertLast(b1('a')))
	require.Equal(t, []string{"insert"}, dumpActions(buf.String()))

	ds.Debug(nil, nil)
	require.NoError(t, ds.InsertLast(b1('b')))
	assert.Equal(t, []string{"insert"}, dumpActions(buf.String()))
}

// Free reports what it is about to release, so the frame still shows
// the elements
func TestFreeDumpsPriorContents(t *testing.T) {
	ds := vectorOf(t, 4, 'a', 'b')

	var buf bytes.Buffer
	ds.Debug(&buf, charFmt)
	require.NoError(t, ds.Free())

	s := buf.String()
	assert.Equal(t, []string{"free"}, dumpActions(s))
	assert.Contains(t, s, "size: 2")
	assert.Contains(t, s, "a b ")
	assert.Equal(t, 0, ds.Size())
}

func TestClearDumpsEmptiedState(t *testing.T) {
	ds := vectorOf(t, 4, 'a', 'b')

	var buf bytes.Buffer
	ds.Debug(&buf, charFmt)
	require.NoError(t, ds.Clear())

	s := buf.String()
	assert.Equal(t, []string{"clear"}, dumpActions(s))
	assert.Contains(t, s, "size: 0")
	assert.NotContains(t, s, "a b ")
}

func TestDumpOnDemand(t *testing.T) {
	ds := listOf(t, 1, 2, 3)

	var buf bytes.Buffer
	ds.Dump(&buf, intFmt)

	s := buf.String()
	assert.Equal(t, []string{"dump"}, dumpActions(s))
	assert.Contains(t, s, "kind: list; size: 3\n")
	assert.NotContains(t, s, "head:", "a list has no slot window to report")
	assert.Contains(t, s, "1 2 3 ")
}

func TestDumpLeavesListCursorAlone(t *testing.T) {
	ds := listOf(t, 10, 20, 30)
	it := ds.Iterator()
	require.NoError(t, it.Seek(1))

	var buf bytes.Buffer
	ds.Dump(&buf, intFmt)

	assert.Equal(t, 1, it.Position())
	v, err := it.Get()
	require.NoError(t, err)
	assert.Equal(t, 20, fromI32(v))
	assert.NoError(t, ds.CheckConsistency())
}

func TestDumpNilSafety(t *testing.T) {
	var nilDS *DS
	nilDS.Debug(io.Discard, charFmt)
	nilDS.Dump(io.Discard, charFmt)

	ds := vectorOf(t, 4, 'a')
	ds.Dump(nil, charFmt)
	ds.Dump(io.Discard, nil)
}
