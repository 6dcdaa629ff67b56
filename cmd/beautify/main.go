// Command beautify reformats JSON documents, keeping arrays and objects on
// one line while they fit the configured width.
//
// Usage:
//
//	beautify [flags] [file|- ...]
//
// Input files may hold several concatenated or newline-delimited documents;
// each is written as its own block. Settings come from an optional config
// file (--config, YAML or JSON) overridden by flags. --compact strips
// whitespace without decoding, keeping escapes and number spellings. --select narrows each
// document to the value at a path; documents without a match print nothing.
//
// Exit codes: 0 on success, 1 on read, decode or write errors, 2 on usage
// errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"pkt.systems/beautify"
	"pkt.systems/beautify/internal/config"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type flagValues struct {
	configPath   string
	indent       string
	width        int
	keys         []string
	compact      bool
	selectPath   string
	unwrap       bool
	unwrapDepth  int
	palette      string
	forceColor   bool
	noColor      bool
	jobs         int
	verbose      bool
	listPalettes bool
}

func newFlagSet(stderr io.Writer, fv *flagValues) *pflag.FlagSet {
	fs := pflag.NewFlagSet("beautify", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&fv.configPath, "config", "", "read settings from a YAML or JSON file")
	fs.StringVarP(&fv.indent, "indent", "i", "", "indentation: number of spaces, \"tab\", or a literal string (\"0\" for compact output)")
	fs.IntVarP(&fv.width, "width", "w", 0, "line width a container must fit in to stay on one line (0 expands everything)")
	fs.StringSliceVarP(&fv.keys, "keys", "k", nil, "only render these object members, in this order")
	fs.BoolVarP(&fv.compact, "compact", "c", false, "strip whitespace only, keeping each document's text as written (ignores layout, keys, select and unwrap)")
	fs.StringVarP(&fv.selectPath, "select", "s", "", "render only the value at this path (gjson syntax, e.g. items.#.name)")
	fs.BoolVarP(&fv.unwrap, "unwrap", "u", false, "decode strings holding JSON objects or arrays")
	fs.IntVar(&fv.unwrapDepth, "unwrap-depth", 0, "maximum nesting of unwrapped strings")
	fs.StringVarP(&fv.palette, "palette", "p", "", "color palette (see --list-palettes)")
	fs.BoolVarP(&fv.forceColor, "color", "C", false, "force colored output")
	fs.BoolVarP(&fv.noColor, "no-color", "M", false, "disable colored output")
	fs.IntVarP(&fv.jobs, "jobs", "j", 0, "documents rendered concurrently")
	fs.BoolVarP(&fv.verbose, "verbose", "v", false, "log progress to stderr")
	fs.BoolVar(&fv.listPalettes, "list-palettes", false, "print the available palettes and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: beautify [flags] [file|- ...]\n")
		fs.PrintDefaults()
	}
	return fs
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var fv flagValues
	fs := newFlagSet(stderr, &fv)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "beautify: %v\n", err)
		fs.Usage()
		return exitUsage
	}

	if fv.listPalettes {
		fmt.Fprintln(stdout, strings.Join(beautify.PaletteNames(), "\n"))
		return exitOK
	}

	cfg, err := config.Load(fv.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "beautify: %v\n", err)
		return exitUsage
	}
	applyFlags(fs, &fv, &cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "beautify: %v\n", err)
		return exitUsage
	}
	// The palette is checked even when color ends up disabled.
	if _, err := beautify.LookupPalette(cfg.Palette); err != nil {
		fmt.Fprintf(stderr, "beautify: %v\n", err)
		return exitUsage
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	if cfg.Compact {
		return runCompact(paths, stdin, stdout, stderr, logger)
	}

	opts := renderOptions(cfg, stdout)
	logger.Debug("settings resolved",
		slog.String("indent", fmt.Sprintf("%q", opts.Indent)),
		slog.Int("width", opts.Width),
		slog.Int("jobs", cfg.Jobs),
		slog.Bool("color", opts.ForceColor))

	// Documents decoded before a read error are still written.
	docs, readErr := readDocuments(paths, stdin, logger)
	if cfg.Select != "" {
		if docs, err = selectDocuments(docs, cfg.Select, logger); err != nil {
			fmt.Fprintf(stderr, "beautify: %v\n", err)
			return exitError
		}
	}
	if cfg.Unwrap {
		for i := range docs {
			docs[i].value = beautify.Unwrap(docs[i].value, cfg.UnwrapDepth)
		}
	}

	outputs, err := renderAll(docs, opts, cfg.Jobs, logger)
	if err != nil {
		fmt.Fprintf(stderr, "beautify: %v\n", err)
		return exitError
	}
	for _, out := range outputs {
		if _, err := stdout.Write(out); err != nil {
			fmt.Fprintf(stderr, "beautify: write error: %v\n", err)
			return exitError
		}
	}
	if readErr != nil {
		fmt.Fprintf(stderr, "beautify: %v\n", readErr)
		return exitError
	}
	return exitOK
}

// runCompact streams every input through beautify.CompactTo without
// decoding it.
func runCompact(paths []string, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) int {
	for _, path := range paths {
		if err := compactPath(path, stdin, stdout); err != nil {
			fmt.Fprintf(stderr, "beautify: %s: %v\n", displayName(path), err)
			return exitError
		}
		logger.Debug("compacted input", slog.String("source", displayName(path)))
	}
	return exitOK
}

// applyFlags overrides config values with the flags given on the command
// line.
func applyFlags(fs *pflag.FlagSet, fv *flagValues, cfg *config.Config) {
	if fs.Changed("indent") {
		cfg.Indent = fv.indent
	}
	if fs.Changed("width") {
		cfg.Width = fv.width
	}
	if fs.Changed("keys") {
		cfg.Keys = fv.keys
	}
	if fs.Changed("compact") {
		cfg.Compact = fv.compact
	}
	if fs.Changed("select") {
		cfg.Select = fv.selectPath
	}
	if fs.Changed("unwrap") {
		cfg.Unwrap = fv.unwrap
	}
	if fs.Changed("unwrap-depth") {
		cfg.UnwrapDepth = fv.unwrapDepth
	}
	if fs.Changed("palette") {
		cfg.Palette = fv.palette
	}
	if fs.Changed("jobs") {
		cfg.Jobs = fv.jobs
	}
	switch {
	case fv.noColor:
		cfg.Color = config.ColorNever
	case fv.forceColor:
		cfg.Color = config.ColorAlways
	}
	if fv.verbose {
		cfg.LogLevel = "debug"
	}
}

// renderOptions turns the settings into library options. The color decision
// is made here against the real output, since documents are rendered into
// buffers.
func renderOptions(cfg config.Config, stdout io.Writer) *beautify.Options {
	opts := &beautify.Options{
		Indent:  cfg.IndentUnit(),
		Width:   cfg.Width,
		Palette: cfg.Palette,
	}
	if len(cfg.Keys) > 0 {
		opts.Replacer = beautify.AllowList(cfg.Keys)
	}
	switch cfg.Color {
	case config.ColorAlways:
		opts.ForceColor = true
	case config.ColorAuto:
		opts.ForceColor = beautify.IsTerminal(stdout) && os.Getenv("NO_COLOR") == ""
	}
	if !opts.ForceColor {
		opts.Palette = "none"
	} else if opts.Palette == "" {
		opts.Palette = "default"
	}
	return opts
}
