package beautify

import "io"

// scanner is a buffered byte reader that tracks the input offset for error
// messages.
type scanner struct {
	r   io.Reader
	buf [4096]byte
	pos int
	n   int
	off int64
}

func (s *scanner) reset(r io.Reader) {
	s.r = r
	s.pos = 0
	s.n = 0
	s.off = 0
}

func (s *scanner) fill() error {
	n, err := s.r.Read(s.buf[:])
	if n == 0 {
		if err == nil {
			return io.EOF
		}
		return err
	}
	s.pos = 0
	s.n = n
	return nil
}

func (s *scanner) readByte() (byte, error) {
	if s.pos >= s.n {
		if err := s.fill(); err != nil {
			return 0, err
		}
	}
	b := s.buf[s.pos]
	s.pos++
	s.off++
	return b, nil
}

func (s *scanner) peekByte() (byte, error) {
	if s.pos >= s.n {
		if err := s.fill(); err != nil {
			return 0, err
		}
	}
	return s.buf[s.pos], nil
}

func (s *scanner) skipSpace() error {
	for {
		b, err := s.peekByte()
		if err != nil {
			return err
		}
		if !isSpace(b) {
			return nil
		}
		s.pos++
		s.off++
	}
}

func (s *scanner) readNonSpace() (byte, error) {
	if err := s.skipSpace(); err != nil {
		return 0, err
	}
	return s.readByte()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func fromHex(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	default:
		return 0
	}
}

func isTerminator(b byte) bool {
	return isSpace(b) || b == ',' || b == '}' || b == ']'
}

// numState walks the JSON number grammar one byte at a time.
type numState int

const (
	numInvalid numState = iota
	numSign
	numZero
	numInt
	numDot
	numFrac
	numExp
	numExpSign
	numExpDigits
)

func numStartState(first byte) (numState, bool) {
	switch {
	case first == '-':
		return numSign, true
	case first == '0':
		return numZero, true
	case first >= '1' && first <= '9':
		return numInt, true
	default:
		return numInvalid, false
	}
}

func numNextState(state numState, b byte) (numState, bool) {
	digit := isDigit(b)
	switch state {
	case numSign:
		switch {
		case b == '0':
			return numZero, true
		case digit:
			return numInt, true
		}
	case numZero, numInt:
		switch {
		case b == '.':
			return numDot, true
		case b == 'e' || b == 'E':
			return numExp, true
		case digit && state == numInt:
			return numInt, true
		}
	case numDot:
		if digit {
			return numFrac, true
		}
	case numFrac:
		switch {
		case b == 'e' || b == 'E':
			return numExp, true
		case digit:
			return numFrac, true
		}
	case numExp:
		switch {
		case b == '+' || b == '-':
			return numExpSign, true
		case digit:
			return numExpDigits, true
		}
	case numExpSign, numExpDigits:
		if digit {
			return numExpDigits, true
		}
	}
	return numInvalid, false
}

func numIsTerminal(state numState) bool {
	switch state {
	case numZero, numInt, numFrac, numExpDigits:
		return true
	default:
		return false
	}
}
