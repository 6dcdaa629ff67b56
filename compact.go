package beautify

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"pkt.systems/jpact"
)

const maxScratchCap = 64 * 1024

var compactBufPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// CompactTo streams the documents of r to w with all insignificant
// whitespace removed, one document per line. Unlike rendering with an empty
// indent, documents are not decoded: escapes and number spellings are kept
// exactly as written, and memory use does not grow with document size beyond
// one compacted document.
//
// Malformed documents are reported as ErrInvalidJSON naming the document;
// documents before it have already been written.
func CompactTo(w io.Writer, r io.Reader) error {
	d := acquireDocReader(r)
	defer releaseDocReader(d)
	buf := compactBufPool.Get().(*bytes.Buffer)
	defer releaseCompactBuf(buf)

	for n := 1; ; n++ {
		if err := d.start(); err != nil {
			if d.err != nil {
				return d.err
			}
			return nil
		}
		buf.Reset()
		if err := jpact.CompactWriter(buf, d, 0); err != nil {
			if d.err != nil {
				return d.err
			}
			return fmt.Errorf("%w: document %d: %w", ErrInvalidJSON, n, err)
		}
		buf.WriteByte('\n')
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
		d.next()
	}
}

// valueFromJSON decodes raw JSON text, as produced by a json.Marshaler.
// Empty input is null, matching a nil json.RawMessage.
func valueFromJSON(raw []byte) (Value, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Null(), nil
	}
	return Decode(bytes.NewReader(raw))
}

func releaseCompactBuf(buf *bytes.Buffer) {
	if buf.Cap() > maxScratchCap {
		return
	}
	buf.Reset()
	compactBufPool.Put(buf)
}
