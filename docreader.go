package beautify

import (
	"errors"
	"io"
)

// docReader exposes the bytes of one top-level JSON document of a stream as
// an io.Reader, stopping at the document's end so the next one can follow.
// It only tracks nesting and string state; validation is left to the
// consumer.
type docReader struct {
	scanner scanner

	started bool
	done    bool
	mode    docMode
	depth   int
	inStr   bool
	escape  bool
	pending byte
	hasPend bool
	// err is the first error returned by the underlying reader.
	err error
}

type docMode int

const (
	docScalar docMode = iota
	docString
	docContainer
)

func (d *docReader) next() {
	d.started = false
	d.done = false
	d.mode = docScalar
	d.depth = 0
	d.inStr = false
	d.escape = false
	d.hasPend = false
	d.pending = 0
}

// start positions the reader on the first byte of the next document. It
// returns io.EOF when only whitespace is left.
func (d *docReader) start() error {
	if d.started {
		return nil
	}
	b, err := d.scanner.readNonSpace()
	if err != nil {
		return d.source(err)
	}
	d.started = true
	d.pending = b
	d.hasPend = true
	switch b {
	case '{', '[':
		d.mode = docContainer
		d.depth = 1
	case '"':
		d.mode = docString
	default:
		d.mode = docScalar
	}
	return nil
}

func (d *docReader) source(err error) error {
	if err != nil && !errors.Is(err, io.EOF) && d.err == nil {
		d.err = err
	}
	return err
}

func (d *docReader) Read(p []byte) (int, error) {
	if d.done {
		return 0, io.EOF
	}
	if err := d.start(); err != nil {
		return 0, err
	}
	n := 0
	for n < len(p) {
		b, err := d.nextByte()
		if err != nil {
			if errors.Is(err, io.EOF) && n > 0 {
				return n, nil
			}
			return n, err
		}
		p[n] = b
		n++
	}
	return n, nil
}

func (d *docReader) nextByte() (byte, error) {
	if d.done {
		return 0, io.EOF
	}
	if d.hasPend {
		d.hasPend = false
		return d.pending, nil
	}

	switch d.mode {
	case docString:
		b, err := d.scanner.readByte()
		if err != nil {
			return 0, d.source(err)
		}
		switch {
		case d.escape:
			d.escape = false
		case b == '\\':
			d.escape = true
		case b == '"':
			d.done = true
		}
		return b, nil
	case docContainer:
		b, err := d.scanner.readByte()
		if err != nil {
			return 0, d.source(err)
		}
		if d.inStr {
			switch {
			case d.escape:
				d.escape = false
			case b == '\\':
				d.escape = true
			case b == '"':
				d.inStr = false
			}
			return b, nil
		}
		switch b {
		case '"':
			d.inStr = true
		case '{', '[':
			d.depth++
		case '}', ']':
			d.depth--
			if d.depth == 0 {
				d.done = true
			}
		}
		return b, nil
	default:
		b, err := d.scanner.peekByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.done = true
			}
			return 0, d.source(err)
		}
		if isTerminator(b) {
			d.done = true
			return 0, io.EOF
		}
		b, _ = d.scanner.readByte()
		return b, nil
	}
}
