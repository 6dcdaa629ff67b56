package beautify

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestCompactTo_Stream(t *testing.T) {
	input := "{ \"a\" : [ 1 , 2 ] ,\n \"b\" : \"x\\\"y \\u00e9\" }\n  1.50 true\n[ ]\"s\"null {}"
	var buf bytes.Buffer
	if err := CompactTo(&buf, strings.NewReader(input)); err != nil {
		t.Fatalf("CompactTo failed: %v", err)
	}
	expectText(t, "{\"a\":[1,2],\"b\":\"x\\\"y \\u00e9\"}\n1.50\ntrue\n[]\n\"s\"\nnull\n{}\n", buf.String())
}

func TestCompactTo_Empty(t *testing.T) {
	for _, input := range []string{"", " \n\t "} {
		var buf bytes.Buffer
		if err := CompactTo(&buf, strings.NewReader(input)); err != nil {
			t.Fatalf("CompactTo(%q) failed: %v", input, err)
		}
		expectText(t, "", buf.String())
	}
}

func TestCompactTo_InvalidDocument(t *testing.T) {
	var buf bytes.Buffer
	err := CompactTo(&buf, strings.NewReader("[1] ]"))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
	if !strings.Contains(err.Error(), "document 2") {
		t.Fatalf("expected error to name document 2, got %v", err)
	}
	expectText(t, "[1]\n", buf.String())

	buf.Reset()
	if err := CompactTo(&buf, strings.NewReader(`{"a":`)); !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON for truncated input, got %v", err)
	}
}

func TestCompactTo_ReaderAndWriterErrors(t *testing.T) {
	var buf bytes.Buffer
	err := CompactTo(&buf, &errAfterReader{data: []byte(`{"a":`)})
	if !errors.Is(err, errRead) || errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected the reader error, got %v", err)
	}

	buf.Reset()
	err = CompactTo(&buf, &errAfterReader{data: []byte("1 ")})
	if !errors.Is(err, errRead) {
		t.Fatalf("expected the reader error after the first document, got %v", err)
	}
	expectText(t, "1\n", buf.String())

	if err := CompactTo(errWriter{}, strings.NewReader("1")); err == nil || errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected the write error, got %v", err)
	}
}

func TestCompactTo_LargeDocumentCrossesBuffers(t *testing.T) {
	var in, want strings.Builder
	in.WriteString("[\n")
	want.WriteString("[")
	for i := 0; i < 5000; i++ {
		if i > 0 {
			in.WriteString(" ,\n")
			want.WriteString(",")
		}
		in.WriteString(`  { "k" : "v" }`)
		want.WriteString(`{"k":"v"}`)
	}
	in.WriteString("\n]")
	want.WriteString("]\n")

	var buf bytes.Buffer
	if err := CompactTo(&buf, strings.NewReader(in.String())); err != nil {
		t.Fatalf("CompactTo failed: %v", err)
	}
	if buf.String() != want.String() {
		t.Fatalf("large document mismatch: got %d bytes, want %d", buf.Len(), want.Len())
	}
}
