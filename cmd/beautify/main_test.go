package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"pkt.systems/beautify"
)

func TestMain(m *testing.M) {
	// ants starts its default pool from init; those goroutines live for the
	// whole process.
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/panjf2000/ants/v2.(*poolCommon).purgeStaleWorkers"),
		goleak.IgnoreTopFunction("github.com/panjf2000/ants/v2.(*poolCommon).ticktock"),
	)
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunDefaults(t *testing.T) {
	code, out, errOut := runCLI(t, `{"a":1,"b":[1,2]}`)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "{ \"a\": 1, \"b\": [ 1, 2 ] }\n", out)
	assert.Empty(t, errOut)
}

func TestRunFlags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{
			name:  "width zero expands",
			input: `{"a":[1]}`,
			args:  []string{"-w", "0"},
			want:  "{\n  \"a\": [\n    1\n  ]\n}\n",
		},
		{
			name:  "compact",
			input: `{"a": [1, 2]}`,
			args:  []string{"--indent", "0"},
			want:  "{\"a\":[1,2]}\n",
		},
		{
			name:  "tab indent",
			input: `[1]`,
			args:  []string{"-i", "tab", "-w", "0"},
			want:  "[\n\t1\n]\n",
		},
		{
			name:  "allow list orders keys",
			input: `{"a":1,"b":2,"c":3}`,
			args:  []string{"-k", "b,a"},
			want:  "{ \"b\": 2, \"a\": 1 }\n",
		},
		{
			name:  "unwrap embedded json",
			input: `{"x":"{\"y\":1}"}`,
			args:  []string{"-u"},
			want:  "{ \"x\": { \"y\": 1 } }\n",
		},
		{
			name:  "strings kept without unwrap",
			input: `{"x":"{\"y\":1}"}`,
			want:  "{ \"x\": \"{\\\"y\\\":1}\" }\n",
		},
		{
			name:  "select nested value",
			input: `{"items":[{"name":"a","n":1},{"name":"b","n":2}]}`,
			args:  []string{"-s", "items.#.name"},
			want:  "[ \"a\", \"b\" ]\n",
		},
		{
			name:  "select skips documents without a match",
			input: "{\"a\":{\"b\":[1]}}\n{\"c\":2}",
			args:  []string{"--select", "a.b", "-w", "0"},
			want:  "[\n  1\n]\n",
		},
		{
			name:  "select then unwrap",
			input: `{"x":{"raw":"[1,2]"}}`,
			args:  []string{"-s", "x.raw", "-u"},
			want:  "[ 1, 2 ]\n",
		},
		{
			name:  "stream of documents",
			input: "1\n[1,2]\n{}",
			want:  "1\n[ 1, 2 ]\n{}\n",
		},
		{
			name:  "explicit stdin",
			input: `true`,
			args:  []string{"-"},
			want:  "true\n",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, tt.input, tt.args...)
			require.Equal(t, exitOK, code, errOut)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRunColor(t *testing.T) {
	code, out, _ := runCLI(t, `{"a":true}`, "-C")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "\x1b[")

	code, out, _ = runCLI(t, `{"a":true}`, "-C", "-M")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "{ \"a\": true }\n", out)

	code, out, _ = runCLI(t, `{"a":true}`, "-C", "-p", "none")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "{ \"a\": true }\n", out)
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	var want strings.Builder
	for i := 0; i < 20; i++ {
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("doc%02d.json", i), fmt.Sprintf(`{"n":%d}`, i)))
		fmt.Fprintf(&want, "{ \"n\": %d }\n", i)
	}
	code, out, errOut := runCLI(t, "", append([]string{"-j", "4"}, paths...)...)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, want.String(), out)
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "beautify.yaml", "width: 0\nindent: \"4\"\n")

	code, out, errOut := runCLI(t, `[1]`, "--config", cfg)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "[\n    1\n]\n", out)

	code, out, errOut = runCLI(t, `[1]`, "--config", cfg, "-w", "80")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "[ 1 ]\n", out)
}

func TestSelectDocuments(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	doc, err := beautify.Decode(strings.NewReader(`{"user":{"name":"ada","tags":["x","y"]}}`))
	require.NoError(t, err)
	docs := []document{
		{source: "a", index: 0, value: doc},
		{source: "a", index: 1, value: beautify.Int(3)},
	}

	selected, err := selectDocuments(docs, "user.tags.1", logger)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "a", selected[0].source)
	assert.Equal(t, 0, selected[0].index)
	assert.Equal(t, `"y"`, beautify.Render(selected[0].value, nil))
}

func TestRunVerboseLogs(t *testing.T) {
	code, _, errOut := runCLI(t, `1`, "-v")
	require.Equal(t, exitOK, code)
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "decoded input")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	badCfg := writeFile(t, dir, "bad.yaml", "jobs: 0\n")
	tests := []struct {
		name     string
		input    string
		args     []string
		wantCode int
		wantErr  string
	}{
		{name: "invalid json", input: `{"a":`, wantCode: exitError, wantErr: "beautify: <stdin>"},
		{name: "stray bracket", input: `]`, wantCode: exitError, wantErr: "beautify:"},
		{name: "missing file", args: []string{filepath.Join(dir, "nope.json")}, wantCode: exitError, wantErr: "nope.json"},
		{name: "unknown flag", args: []string{"--nope"}, wantCode: exitUsage, wantErr: "unknown flag: --nope"},
		{name: "bad flag value", args: []string{"-w", "wide"}, wantCode: exitUsage, wantErr: "invalid argument"},
		{name: "negative width", args: []string{"-w", "-1"}, wantCode: exitUsage, wantErr: "width"},
		{name: "unknown palette", args: []string{"-p", "neon"}, wantCode: exitUsage, wantErr: "unknown palette"},
		{name: "unknown palette without color", args: []string{"-p", "neon", "-M"}, wantCode: exitUsage, wantErr: "unknown palette"},
		{name: "unknown palette in compact mode", args: []string{"-c", "-p", "neon"}, wantCode: exitUsage, wantErr: "unknown palette"},
		{name: "invalid config", args: []string{"--config", badCfg}, wantCode: exitUsage, wantErr: "jobs"},
		{name: "missing config", args: []string{"--config", filepath.Join(dir, "none.yaml")}, wantCode: exitUsage, wantErr: "beautify:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, tt.input, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestRunUnknownFlagPrintsUsage(t *testing.T) {
	code, _, errOut := runCLI(t, "", "--nope")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "beautify: unknown flag: --nope")
	assert.Contains(t, errOut, "Usage: beautify")
}

func TestRunWritesDocumentsBeforeDecodeError(t *testing.T) {
	code, out, errOut := runCLI(t, "{\"a\":1}\n[2]\n{\"b\":")
	assert.Equal(t, exitError, code)
	assert.Equal(t, "{ \"a\": 1 }\n[ 2 ]\n", out)
	assert.Contains(t, errOut, "beautify: <stdin>:")

	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"n":1}`)
	bad := writeFile(t, dir, "bad.json", "2 nope")
	never := writeFile(t, dir, "never.json", `3`)
	code, out, errOut = runCLI(t, "", "-j", "2", good, bad, never)
	assert.Equal(t, exitError, code)
	assert.Equal(t, "{ \"n\": 1 }\n2\n", out)
	assert.Contains(t, errOut, "bad.json")
}

func TestRunCompact(t *testing.T) {
	input := "{ \"a\" : [ 1.50 , -0 ] ,\n  \"b\" : \"\\u00e9\" }\n\n[ true ]"
	code, out, errOut := runCLI(t, input, "-c", "-k", "b", "-u", "-C")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "{\"a\":[1.50,-0],\"b\":\"\\u00e9\"}\n[true]\n", out)

	dir := t.TempDir()
	cfg := writeFile(t, dir, "beautify.json", `{"compact": true}`)
	path := writeFile(t, dir, "doc.json", "[ 1 ,\n 2 ]")
	code, out, errOut = runCLI(t, "", "--config", cfg, path)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "[1,2]\n", out)

	code, out, errOut = runCLI(t, "[1] ]", "--compact")
	assert.Equal(t, exitError, code)
	assert.Equal(t, "[1]\n", out)
	assert.Contains(t, errOut, "beautify: <stdin>: ")
	assert.Contains(t, errOut, "document 2")

	code, _, errOut = runCLI(t, "", "-c", filepath.Join(dir, "missing.json"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "missing.json")
}

func TestRunListPalettes(t *testing.T) {
	code, out, _ := runCLI(t, "", "--list-palettes")
	require.Equal(t, exitOK, code)
	for _, name := range beautify.PaletteNames() {
		assert.Contains(t, out, name+"\n")
	}
}

func TestRunHelp(t *testing.T) {
	code, out, errOut := runCLI(t, "", "--help")
	assert.Equal(t, exitOK, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Usage: beautify")
}

func TestRenderAllKeepsOrder(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	docs := make([]document, 200)
	for i := range docs {
		docs[i] = document{source: "test", index: i, value: beautify.Array(beautify.Int(int64(i)), beautify.String("x"))}
	}
	opts := &beautify.Options{Indent: "  ", Width: 80, Palette: "none"}

	outputs, err := renderAll(docs, opts, 8, logger)
	require.NoError(t, err)
	require.Len(t, outputs, len(docs))
	for i, out := range outputs {
		assert.Equal(t, fmt.Sprintf("[ %d, \"x\" ]\n", i), string(out))
	}
}

func TestRenderAllReportsPaletteError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	docs := []document{
		{source: "a", value: beautify.Null()},
		{source: "b", value: beautify.Null()},
	}
	_, err := renderAll(docs, &beautify.Options{Palette: "neon"}, 2, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown palette")
}

func TestRenderAllEmpty(t *testing.T) {
	outputs, err := renderAll(nil, beautify.DefaultOptions, 4, slog.Default())
	require.NoError(t, err)
	assert.Empty(t, outputs)
}
