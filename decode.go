package beautify

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"
)

// maxDepth bounds container nesting so hostile input cannot exhaust the
// stack.
const maxDepth = 10000

// Decode reads one JSON document from r into a Value, keeping object members
// in document order. Trailing data other than whitespace is an error.
func Decode(r io.Reader) (Value, error) {
	p := acquireParser(r)
	defer releaseParser(p)

	if err := p.scanner.skipSpace(); err != nil {
		return Value{}, p.wrap(unexpectedEOF(err))
	}
	v, err := p.parseValue(0)
	if err != nil {
		return Value{}, p.wrap(err)
	}
	switch err := p.scanner.skipSpace(); {
	case errors.Is(err, io.EOF):
		return v, nil
	case err != nil:
		return Value{}, p.wrap(err)
	}
	return Value{}, p.wrap(p.errorf("trailing data after document"))
}

// DecodeAll reads every document of a stream of concatenated or
// newline-delimited JSON values. Documents decoded before an error are
// returned with it.
func DecodeAll(r io.Reader) ([]Value, error) {
	p := acquireParser(r)
	defer releaseParser(p)

	var docs []Value
	for {
		err := p.scanner.skipSpace()
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return docs, p.wrap(err)
		}
		v, err := p.parseValue(0)
		if err != nil {
			return docs, p.wrap(err)
		}
		docs = append(docs, v)
	}
}

// parser builds Values from the bytes of a scanner. It is pooled; the
// buffers are reused between documents.
type parser struct {
	scanner    scanner
	scratch    []byte
	decodedBuf []byte
}

type syntaxError struct {
	msg    string
	offset int64
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.msg, e.offset)
}

func (p *parser) errorf(format string, args ...any) error {
	return &syntaxError{msg: fmt.Sprintf(format, args...), offset: p.scanner.off}
}

// wrap marks err as a JSON error unless it came from the reader.
func (p *parser) wrap(err error) error {
	var se *syntaxError
	if errors.As(err, &se) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return err
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (p *parser) parseValue(depth int) (Value, error) {
	b, err := p.scanner.readNonSpace()
	if err != nil {
		return Value{}, unexpectedEOF(err)
	}
	return p.parseValueWithFirst(depth, b)
}

func (p *parser) parseValueWithFirst(depth int, first byte) (Value, error) {
	switch first {
	case '{':
		return p.parseObject(depth + 1)
	case '[':
		return p.parseArray(depth + 1)
	case '"':
		s, err := p.readStringValue()
		if err != nil {
			return Value{}, err
		}
		return String(string(s)), nil
	case 't', 'f', 'n':
		return p.parseLiteral(first)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return p.parseNumber(first)
	default:
		return Value{}, p.errorf("unexpected character %q", first)
	}
}

func (p *parser) parseObject(depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, p.errorf("exceeded max depth")
	}
	b, err := p.scanner.readNonSpace()
	if err != nil {
		return Value{}, unexpectedEOF(err)
	}
	members := make([]Member, 0, 4)
	if b == '}' {
		return Value{kind: KindObject, members: members}, nil
	}

	var index map[string]int
	for {
		if b != '"' {
			return Value{}, p.errorf("expected object key")
		}
		key, err := p.readStringValue()
		if err != nil {
			return Value{}, err
		}
		m := Member{Key: string(key)}
		if err := p.expectColon(); err != nil {
			return Value{}, err
		}
		if m.Value, err = p.parseValue(depth); err != nil {
			return Value{}, err
		}
		if index == nil && len(members) >= 8 {
			index = make(map[string]int, len(members)*2)
			for i, m := range members {
				index[m.Key] = i
			}
		}
		members, index = setMember(members, index, m)

		b, err = p.scanner.readNonSpace()
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}
		switch b {
		case ',':
			if b, err = p.scanner.readNonSpace(); err != nil {
				return Value{}, unexpectedEOF(err)
			}
		case '}':
			return Value{kind: KindObject, members: members}, nil
		default:
			return Value{}, p.errorf("expected ',' or '}' after object member")
		}
	}
}

func (p *parser) parseArray(depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, p.errorf("exceeded max depth")
	}
	b, err := p.scanner.readNonSpace()
	if err != nil {
		return Value{}, unexpectedEOF(err)
	}
	elems := make([]Value, 0, 4)
	if b == ']' {
		return Value{kind: KindArray, elems: elems}, nil
	}

	for {
		v, err := p.parseValueWithFirst(depth, b)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)

		b, err = p.scanner.readNonSpace()
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}
		switch b {
		case ',':
			if b, err = p.scanner.readNonSpace(); err != nil {
				return Value{}, unexpectedEOF(err)
			}
		case ']':
			return Value{kind: KindArray, elems: elems}, nil
		default:
			return Value{}, p.errorf("expected ',' or ']' after array element")
		}
	}
}

// readStringValue decodes the string whose opening quote was consumed. The
// result aliases decodedBuf. Unpaired surrogate escapes become U+FFFD and
// raw bytes are kept as they are.
func (p *parser) readStringValue() ([]byte, error) {
	p.decodedBuf = p.decodedBuf[:0]
	var high rune
	for {
		b, err := p.scanner.readByte()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if b == '\\' {
			esc, err := p.scanner.readByte()
			if err != nil {
				return nil, unexpectedEOF(err)
			}
			if esc == 'u' {
				r, err := p.readHex4()
				if err != nil {
					return nil, err
				}
				if high != 0 {
					if utf16.IsSurrogate(r) && r >= 0xDC00 {
						p.decodedBuf = utf8.AppendRune(p.decodedBuf, utf16.DecodeRune(high, r))
						high = 0
						continue
					}
					p.decodedBuf = utf8.AppendRune(p.decodedBuf, utf8.RuneError)
					high = 0
				}
				if r >= 0xD800 && r < 0xDC00 {
					high = r
					continue
				}
				// Lone low surrogates encode as U+FFFD.
				p.decodedBuf = utf8.AppendRune(p.decodedBuf, r)
				continue
			}
			if high != 0 {
				p.decodedBuf = utf8.AppendRune(p.decodedBuf, utf8.RuneError)
				high = 0
			}
			switch esc {
			case '"', '\\', '/':
				p.decodedBuf = append(p.decodedBuf, esc)
			case 'b':
				p.decodedBuf = append(p.decodedBuf, '\b')
			case 'f':
				p.decodedBuf = append(p.decodedBuf, '\f')
			case 'n':
				p.decodedBuf = append(p.decodedBuf, '\n')
			case 'r':
				p.decodedBuf = append(p.decodedBuf, '\r')
			case 't':
				p.decodedBuf = append(p.decodedBuf, '\t')
			default:
				return nil, p.errorf("invalid escape sequence \\%c", esc)
			}
			continue
		}
		if high != 0 {
			p.decodedBuf = utf8.AppendRune(p.decodedBuf, utf8.RuneError)
			high = 0
		}
		if b == '"' {
			return p.decodedBuf, nil
		}
		if b < 0x20 {
			return nil, p.errorf("invalid control character in string")
		}
		p.decodedBuf = append(p.decodedBuf, b)
	}
}

func (p *parser) readHex4() (rune, error) {
	var val rune
	for i := 0; i < 4; i++ {
		b, err := p.scanner.readByte()
		if err != nil {
			return 0, unexpectedEOF(err)
		}
		if !isHex(b) {
			return 0, p.errorf("invalid unicode escape")
		}
		val = val<<4 | rune(fromHex(b))
	}
	return val, nil
}

func (p *parser) expectColon() error {
	b, err := p.scanner.readNonSpace()
	if err != nil {
		return unexpectedEOF(err)
	}
	if b != ':' {
		return p.errorf("expected ':' after object key")
	}
	return nil
}

func (p *parser) parseLiteral(first byte) (Value, error) {
	var lit string
	var v Value
	switch first {
	case 't':
		lit, v = "true", Bool(true)
	case 'f':
		lit, v = "false", Bool(false)
	default:
		lit, v = "null", Null()
	}
	for i := 1; i < len(lit); i++ {
		b, err := p.scanner.readByte()
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}
		if b != lit[i] {
			return Value{}, p.errorf("invalid literal")
		}
	}
	if err := p.expectTerminator(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func (p *parser) parseNumber(first byte) (Value, error) {
	state, _ := numStartState(first)
	p.scratch = append(p.scratch[:0], first)
	for {
		b, err := p.scanner.peekByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Value{}, err
		}
		if isTerminator(b) {
			break
		}
		next, ok := numNextState(state, b)
		if !ok {
			return Value{}, p.errorf("invalid number")
		}
		state = next
		_, _ = p.scanner.readByte()
		p.scratch = append(p.scratch, b)
	}
	if !numIsTerminal(state) {
		return Value{}, p.errorf("invalid number")
	}
	return numberLiteral(string(p.scratch))
}

// expectTerminator rejects literals run together with other text, such as
// "truex" or "nullnull".
func (p *parser) expectTerminator() error {
	b, err := p.scanner.peekByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if isTerminator(b) || b == '{' || b == '[' || b == '"' {
		return nil
	}
	return p.errorf("invalid literal")
}
