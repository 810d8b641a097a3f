package types

// RGB is a color with channels in the 0..1 range, matching the Slides
// API's RgbColor representation.
type RGB struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// ThemeSelector names the visual style for a run: either one of the
// built-in palettes, or "custom" with two 6-digit hex colors.
type ThemeSelector struct {
	Name          string `json:"name"`
	BackgroundHex string `json:"background_hex,omitempty"`
	TextHex       string `json:"text_hex,omitempty"`
}

// ThemeStyle is the resolved style applied uniformly to every slide of
// a run (unless a background image overrides the fill).
type ThemeStyle struct {
	BackgroundColor RGB `json:"background_color"`
	TextColor       RGB `json:"text_color"`
}
