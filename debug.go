package lineards

import (
	"fmt"
	"io"
	"strings"
)

// DumpFormatter renders one element to a structural dump. It is handed
// a read-only view of the stored bytes and writes whatever textual
// form suits them, separators included.
type DumpFormatter func(w io.Writer, element []byte)

const dumpWidth = 80

// Debug attaches a sink that receives a structural dump after every
// mutating operation that succeeds, and one final dump of the contents
// when Free runs. Passing a nil writer or formatter detaches the sink.
// Reads never dump; use Dump for a snapshot on demand.
func (ds *DS) Debug(w io.Writer, format DumpFormatter) {
	if ds == nil {
		return
	}
	ds.debugW = w
	ds.debugFmt = format
}

// Dump writes one structural dump of the collection to w. The walk
// reads the backing directly and leaves the cursor where it was.
func (ds *DS) Dump(w io.Writer, format DumpFormatter) {
	if ds == nil || w == nil || format == nil {
		return
	}
	ds.writeDump(w, format, "dump")
}

func (ds *DS) dump(action string) {
	if ds.debugW == nil || ds.debugFmt == nil {
		return
	}
	ds.writeDump(ds.debugW, ds.debugFmt, action)
}

// writeDump emits the framed block: a banner naming the collection and
// the action, the backing summary, then every element in logical order
// through the formatter.
func (ds *DS) writeDump(w io.Writer, format DumpFormatter, action string) {
	banner := fmt.Sprintf("(%p):%s ", ds, action)
	fill := dumpWidth - len(banner)
	if fill < 0 {
		fill = 0
	}
	fmt.Fprintf(w, "\n%s%s\n", banner, strings.Repeat("=", fill))
	fmt.Fprintf(w, "%s\n", ds.store.describe())
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", dumpWidth))
	ds.store.each(func(_ int, element []byte) {
		format(w, element)
	})
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", dumpWidth))
}
