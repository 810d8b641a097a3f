// Package theme maps a theme selector to the background/text color pair
// applied to a generated deck.
package theme

import (
	"regexp"
	"strconv"

	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

// CustomName is the selector name that enables the two-hex-color form.
const CustomName = "custom"

var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// palettes holds the built-in background/text pairs.
var palettes = map[string]types.ThemeStyle{
	"light": {
		BackgroundColor: types.RGB{Red: 1, Green: 1, Blue: 1},
		TextColor:       types.RGB{Red: 0, Green: 0, Blue: 0},
	},
	"dark": {
		BackgroundColor: types.RGB{Red: 0.12, Green: 0.12, Blue: 0.12},
		TextColor:       types.RGB{Red: 1, Green: 1, Blue: 1},
	},
	"navy-white": {
		BackgroundColor: types.RGB{Red: 0.07, Green: 0.13, Blue: 0.30},
		TextColor:       types.RGB{Red: 1, Green: 1, Blue: 1},
	},
	"navy-yellow": {
		BackgroundColor: types.RGB{Red: 0.07, Green: 0.13, Blue: 0.30},
		TextColor:       types.RGB{Red: 1, Green: 0.84, Blue: 0.25},
	},
	"darkgray-white": {
		BackgroundColor: types.RGB{Red: 0.25, Green: 0.25, Blue: 0.27},
		TextColor:       types.RGB{Red: 1, Green: 1, Blue: 1},
	},
	"darkgreen-white": {
		BackgroundColor: types.RGB{Red: 0.04, Green: 0.27, Blue: 0.16},
		TextColor:       types.RGB{Red: 1, Green: 1, Blue: 1},
	},
	"lavenderpurple-black": {
		BackgroundColor: types.RGB{Red: 0.80, Green: 0.75, Blue: 0.93},
		TextColor:       types.RGB{Red: 0, Green: 0, Blue: 0},
	},
}

// Resolve maps a selector to a concrete style. It is total: unknown
// palette names, a missing selector and malformed custom hex values all
// fall back to the light palette instead of failing.
func Resolve(selector types.ThemeSelector) types.ThemeStyle {
	if selector.Name == CustomName {
		bg, okBG := parseHex(selector.BackgroundHex)
		text, okText := parseHex(selector.TextHex)
		if okBG && okText {
			return types.ThemeStyle{BackgroundColor: bg, TextColor: text}
		}
		return palettes["light"]
	}

	if style, ok := palettes[selector.Name]; ok {
		return style
	}
	return palettes["light"]
}

// PaletteNames returns the built-in palette ids.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	return names
}

// parseHex converts a 6-digit hex color to 0..1 channels.
func parseHex(s string) (types.RGB, bool) {
	if !hexPattern.MatchString(s) {
		return types.RGB{}, false
	}
	r, _ := strconv.ParseUint(s[0:2], 16, 8)
	g, _ := strconv.ParseUint(s[2:4], 16, 8)
	b, _ := strconv.ParseUint(s[4:6], 16, 8)
	return types.RGB{
		Red:   float64(r) / 255,
		Green: float64(g) / 255,
		Blue:  float64(b) / 255,
	}, true
}
