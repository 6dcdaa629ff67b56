package beautify

import (
	"fmt"
	"sort"
	"strings"

	"pkt.systems/beautify/internal/ansi"
)

const (
	paletteDefaultName = "default"
	paletteNoneName    = "none"
)

var paletteRegistry = map[string]ansi.Palette{
	paletteDefaultName: ansi.PaletteJQDefault,
	"jq":               ansi.PaletteJQDefault,
	"classic":          ansi.PaletteClassic,
	"catppuccin-mocha": ansi.PaletteCatppuccinMocha,
	"gruvbox-light":    ansi.PaletteGruvboxLight,
	"monochrome":       ansi.PaletteMonochrome,
	"synthwave84":      ansi.PaletteSynthwave84,
	"tokyo-night":      ansi.PaletteTokyoNight,
}

// PaletteNames returns the sorted list of palette names, including "none".
func PaletteNames() []string {
	names := make([]string, 0, len(paletteRegistry)+1)
	for name := range paletteRegistry {
		names = append(names, name)
	}
	names = append(names, paletteNoneName)
	sort.Strings(names)
	return names
}

// resolvePalette returns the ColorPalette named by opts.Palette, defaulting to
// paletteDefaultName. The name is validated even when enableColor is false,
// in which case the result is the no-color palette.
func resolvePalette(opts *Options, enableColor bool) (ColorPalette, error) {
	name := paletteDefaultName
	if opts != nil && strings.TrimSpace(opts.Palette) != "" {
		name = strings.ToLower(strings.TrimSpace(opts.Palette))
	}

	if name == paletteNoneName {
		return NoColorPalette(), nil
	}

	ap, ok := paletteRegistry[name]
	if !ok {
		return ColorPalette{}, fmt.Errorf("unknown palette %q (use one of: %s)", name, strings.Join(PaletteNames(), ", "))
	}

	if !enableColor {
		return NoColorPalette(), nil
	}
	return colorPaletteFromAnsi(ap), nil
}

// LookupPalette returns the palette registered under name.
func LookupPalette(name string) (ColorPalette, error) {
	return resolvePalette(&Options{Palette: name}, true)
}

func colorPaletteFromAnsi(ap ansi.Palette) ColorPalette {
	brackets := ap.Brackets
	if brackets == "" {
		brackets = ap.Nil
	}
	punct := ap.Punctuation
	if punct == "" {
		punct = brackets
	}

	return ColorPalette{
		Key:         ap.Key,
		String:      ap.String,
		Number:      ap.Num,
		True:        ap.Bool,
		False:       ap.Bool,
		Null:        ap.Nil,
		Brackets:    brackets,
		Punctuation: punct,
	}
}

// NoColorPalette disables all styling.
func NoColorPalette() ColorPalette {
	return ColorPalette{}
}
