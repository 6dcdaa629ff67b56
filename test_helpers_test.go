package beautify

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

var sampleJSON = []byte(`{
  "str": "hello \"world\" \\ / \b \f \n \r \t",
  "unicode": "snowman \u2603",
  "empty_obj": {},
  "empty_arr": [],
  "int": 123,
  "neg_zero": -0,
  "float": 3.14159,
  "exp": 1.23e+4,
  "bools": [true, false],
  "nil": null,
  "arr": [1, "two", {"three":3}, [4,5]],
  "obj": {"a":1, "b":{"c":[{"d":"e"}]}},
  "json_str_obj": "{\"x\":1,\"y\":[true,false,null]}"
}`)

func mustDecode(t testing.TB, s string) Value {
	t.Helper()
	v, err := Decode(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Decode(%q) failed: %v", s, err)
	}
	return v
}

func mustBeautify(t testing.TB, value, replacer, space, width any) string {
	t.Helper()
	out, err := Beautify(value, replacer, space, width)
	if err != nil {
		t.Fatalf("Beautify failed: %v", err)
	}
	return out
}

func expectText(t testing.TB, expected, actual string) {
	t.Helper()
	if actual != expected {
		t.Fatalf("unexpected output\nexpected:\n%q\nactual:\n%q", expected, actual)
	}
}

type fdWriter struct {
	buf bytes.Buffer
}

func (w *fdWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (*fdWriter) Fd() uintptr {
	return ^uintptr(0)
}

type zeroReader struct {
	called bool
}

func (r *zeroReader) Read(_ []byte) (int, error) {
	if r.called {
		return 0, io.EOF
	}
	r.called = true
	return 0, nil
}

var errRead = errors.New("read err")

type errAfterReader struct {
	data []byte
}

func (r *errAfterReader) Read(p []byte) (int, error) {
	if len(r.data) > 0 {
		n := copy(p, r.data)
		r.data = r.data[n:]
		return n, nil
	}
	return 0, errRead
}

type errWriter struct{}

func (errWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("write err")
}
