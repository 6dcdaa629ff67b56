// Package ansi holds the escape sequences and named palettes used to color
// rendered JSON. Palette values are derived from pkt.systems/pslog/ansi (MIT
// License), reduced to the JSON token classes.
package ansi

// Base ANSI escape codes.
const (
	Reset      = "\x1b[0m"
	Faint      = "\x1b[90m"
	Yellow     = "\x1b[33m"
	Magenta    = "\x1b[35m"
	Cyan       = "\x1b[36m"
	BrightBlue = "\x1b[1;34m"
)

// Palette assigns an escape sequence to each JSON token class. An empty field
// leaves that class unstyled.
type Palette struct {
	Key         string
	String      string
	Num         string
	Bool        string
	Nil         string
	Brackets    string
	Punctuation string
}

// PaletteJQDefault mirrors jq's default JQ_COLORS.
var PaletteJQDefault = Palette{
	Key:         "\x1b[1;34m",
	String:      "\x1b[0;32m",
	Num:         "\x1b[0;39m",
	Bool:        "\x1b[0;39m",
	Nil:         "\x1b[0;90m",
	Brackets:    "\x1b[1;39m",
	Punctuation: "\x1b[1;39m",
}

// PaletteClassic is the 16-colour friendly pslog default.
var PaletteClassic = Palette{
	Key:         Cyan,
	String:      BrightBlue,
	Num:         Magenta,
	Bool:        Yellow,
	Nil:         Faint,
	Brackets:    Faint,
	Punctuation: Faint,
}

// PaletteTokyoNight draws on Tokyo Night's neon blues and violets.
var PaletteTokyoNight = Palette{
	Key:         "\x1b[38;5;69m",
	String:      "\x1b[38;5;110m",
	Num:         "\x1b[38;5;176m",
	Bool:        "\x1b[38;5;117m",
	Nil:         "\x1b[38;5;244m",
	Brackets:    "\x1b[38;5;74m",
	Punctuation: "\x1b[38;5;244m",
}

// PaletteCatppuccinMocha follows the Catppuccin Mocha pastels.
var PaletteCatppuccinMocha = Palette{
	Key:         "\x1b[38;5;217m",
	String:      "\x1b[38;5;183m",
	Num:         "\x1b[38;5;147m",
	Bool:        "\x1b[38;5;152m",
	Nil:         "\x1b[38;5;244m",
	Brackets:    "\x1b[38;5;182m",
	Punctuation: "\x1b[38;5;244m",
}

// PaletteGruvboxLight is tuned for light terminal backgrounds.
var PaletteGruvboxLight = Palette{
	Key:         "\x1b[38;5;130m",
	String:      "\x1b[38;5;108m",
	Num:         "\x1b[38;5;66m",
	Bool:        "\x1b[38;5;142m",
	Nil:         "\x1b[38;5;180m",
	Brackets:    "\x1b[38;5;136m",
	Punctuation: "\x1b[38;5;180m",
}

// PaletteSynthwave84 uses saturated pinks and cyans.
var PaletteSynthwave84 = Palette{
	Key:         "\x1b[38;5;198m",
	String:      "\x1b[38;5;51m",
	Num:         "\x1b[38;5;207m",
	Bool:        "\x1b[38;5;219m",
	Nil:         "\x1b[38;5;102m",
	Brackets:    "\x1b[38;5;45m",
	Punctuation: "\x1b[38;5;102m",
}

// PaletteMonochrome only emphasises structure, for terminals where hue is
// unreliable.
var PaletteMonochrome = Palette{
	Key:      "\x1b[1m",
	Nil:      Faint,
	Brackets: "\x1b[1m",
}
