package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

func TestResolve_KnownPalettes(t *testing.T) {
	light := Resolve(types.ThemeSelector{Name: "light"})
	assert.Equal(t, types.RGB{Red: 1, Green: 1, Blue: 1}, light.BackgroundColor)
	assert.Equal(t, types.RGB{Red: 0, Green: 0, Blue: 0}, light.TextColor)

	// Every palette must resolve to a visually distinct pair.
	seen := map[types.ThemeStyle]string{}
	for _, name := range PaletteNames() {
		style := Resolve(types.ThemeSelector{Name: name})
		if prev, dup := seen[style]; dup {
			t.Fatalf("palettes %q and %q resolve to the same style", prev, name)
		}
		seen[style] = name
		assert.NotEqual(t, style.BackgroundColor, style.TextColor, "palette %s", name)
	}
}

func TestResolve_CustomHex(t *testing.T) {
	style := Resolve(types.ThemeSelector{
		Name:          CustomName,
		BackgroundHex: "000000",
		TextHex:       "ffffff",
	})
	assert.Equal(t, types.RGB{Red: 0, Green: 0, Blue: 0}, style.BackgroundColor)
	assert.Equal(t, types.RGB{Red: 1, Green: 1, Blue: 1}, style.TextColor)

	mid := Resolve(types.ThemeSelector{
		Name:          CustomName,
		BackgroundHex: "FF8000",
		TextHex:       "336699",
	})
	assert.InDelta(t, 1.0, mid.BackgroundColor.Red, 0.001)
	assert.InDelta(t, 128.0/255, mid.BackgroundColor.Green, 0.001)
	assert.InDelta(t, 0, mid.BackgroundColor.Blue, 0.001)
	assert.InDelta(t, 0x33/255.0, mid.TextColor.Red, 0.001)
}

func TestResolve_FallsBackToLight(t *testing.T) {
	light := Resolve(types.ThemeSelector{Name: "light"})

	cases := []types.ThemeSelector{
		{},
		{Name: "neon-zebra"},
		{Name: CustomName},
		{Name: CustomName, BackgroundHex: "12345", TextHex: "ffffff"},
		{Name: CustomName, BackgroundHex: "gggggg", TextHex: "ffffff"},
		{Name: CustomName, BackgroundHex: "#12345", TextHex: "ffffff"},
		{Name: CustomName, BackgroundHex: "112233", TextHex: "11223"},
	}
	for _, selector := range cases {
		assert.Equal(t, light, Resolve(selector), "selector %+v", selector)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	selector := types.ThemeSelector{Name: "navy-yellow"}
	first := Resolve(selector)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Resolve(selector))
	}
}
