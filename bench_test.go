package beautify

import (
	"bytes"
	"strings"
	"testing"
)

var benchDoc = buildBenchDoc()

var (
	benchRenderSink string
	benchValueSink  Value
	benchBytesSink  []byte
)

func buildBenchDoc() []byte {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < 16; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(sampleJSON)
	}
	b.WriteByte(']')
	return []byte(b.String())
}

func BenchmarkDecode(b *testing.B) {
	reader := bytes.NewReader(benchDoc)
	b.ReportAllocs()
	b.SetBytes(int64(len(benchDoc)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reader.Reset(benchDoc)
		v, err := Decode(reader)
		if err != nil {
			b.Fatal(err)
		}
		benchValueSink = v
	}
}

func BenchmarkRender_Width80(b *testing.B) {
	benchmarkRender(b, &Options{Indent: "  ", Width: 80})
}

func BenchmarkRender_Expanded(b *testing.B) {
	benchmarkRender(b, &Options{Indent: "  ", Width: 0})
}

func BenchmarkRender_Compact(b *testing.B) {
	benchmarkRender(b, compactOptions)
}

func BenchmarkRender_AllowList(b *testing.B) {
	benchmarkRender(b, &Options{Indent: "  ", Width: 80, Replacer: AllowList{"str", "arr", "obj", "a", "b", "c"}})
}

func benchmarkRender(b *testing.B, opts *Options) {
	v, err := Decode(bytes.NewReader(benchDoc))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchRenderSink = Render(v, opts)
	}
}

func BenchmarkColorize(b *testing.B) {
	v, err := Decode(bytes.NewReader(benchDoc))
	if err != nil {
		b.Fatal(err)
	}
	src := []byte(Render(v, DefaultOptions))
	pal, _ := LookupPalette("default")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchBytesSink = Colorize(src, pal)
	}
}

func BenchmarkQuote(b *testing.B) {
	plain := strings.Repeat("plain text ", 16)
	escaped := strings.Repeat("line\n\"quoted\"\u2028", 16)
	b.Run("plain", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			benchRenderSink = Quote(plain)
		}
	})
	b.Run("escaped", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			benchRenderSink = Quote(escaped)
		}
	})
}

func BenchmarkValueOf(b *testing.B) {
	type row struct {
		ID    int      `json:"id"`
		Name  string   `json:"name"`
		Tags  []string `json:"tags,omitempty"`
		Score float64  `json:"score"`
	}
	rows := make([]row, 64)
	for i := range rows {
		rows[i] = row{ID: i, Name: "row", Tags: []string{"a", "b"}, Score: float64(i) / 3}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v, err := ValueOf(rows)
		if err != nil {
			b.Fatal(err)
		}
		benchValueSink = v
	}
}
