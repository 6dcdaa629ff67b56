// Package config loads the beautify command's settings from an optional
// YAML or JSON file. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

var (
	// ErrUnsupportedFormat reports a config file extension other than
	// .yaml, .yml or .json.
	ErrUnsupportedFormat = errors.New("config: unsupported format")

	// ErrLoadFailed reports an unreadable config file.
	ErrLoadFailed = errors.New("config: failed to load")

	// ErrParseFailed reports a config file that is not valid YAML or JSON.
	ErrParseFailed = errors.New("config: failed to parse")

	// ErrInvalid reports a setting outside its allowed range.
	ErrInvalid = errors.New("config: invalid setting")
)

// Format is the syntax of a config file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds every setting of the beautify command.
type Config struct {
	// Indent is a number of spaces, "tab", or a literal indentation string.
	Indent string `koanf:"indent"`
	// Width is the line width containers must fit in to stay on one line.
	Width int `koanf:"width"`
	// Keys is an allow-list of object member names. Empty renders all.
	Keys []string `koanf:"keys"`
	// Compact strips whitespace from the input without decoding it.
	Compact bool `koanf:"compact"`
	// Select is a path query applied to every document before rendering.
	// Documents without a match are skipped.
	Select string `koanf:"select"`
	// Unwrap decodes strings holding JSON objects or arrays.
	Unwrap      bool   `koanf:"unwrap"`
	UnwrapDepth int    `koanf:"unwrap_depth"`
	Palette     string `koanf:"palette"`
	// Color is auto, always or never.
	Color string `koanf:"color"`
	// Jobs is the number of documents rendered concurrently.
	Jobs     int    `koanf:"jobs"`
	LogLevel string `koanf:"log_level"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Indent:      "2",
		Width:       80,
		UnwrapDepth: 10,
		Palette:     "default",
		Color:       ColorAuto,
		Jobs:        1,
		LogLevel:    "warn",
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	format, err := detectFormat(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return LoadBytes(data, format)
}

// LoadBytes parses data in the given format over the defaults.
func LoadBytes(data []byte, format Format) (Config, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return cfg, nil
}

func detectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.Width < 0 {
		return fmt.Errorf("%w: width must not be negative, got %d", ErrInvalid, c.Width)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1, got %d", ErrInvalid, c.Jobs)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalid, c.Color)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// IndentUnit resolves Indent: digits are a count of spaces, "tab" is a tab,
// anything else is used literally.
func (c Config) IndentUnit() string {
	s := c.Indent
	if strings.EqualFold(s, "tab") {
		return "\t"
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return ""
		}
		return strings.Repeat(" ", n)
	}
	return s
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}
	return level, nil
}
