package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"spreadsheet_id": "sheet-1",
		"template": "timeline",
		"theme": "dark",
		"database_url": "postgres://localhost/decks"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sheet-1", cfg.SpreadsheetID)
	assert.Equal(t, "timeline", cfg.Template)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "postgres://localhost/decks", cfg.DatabaseURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "{not json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
	assert.NoError(t, (&Config{Template: "photo"}).Validate())
	assert.Error(t, (&Config{Template: "fancy"}).Validate())

	assert.NoError(t, (&Config{Theme: "custom", BackgroundHex: "ffffff"}).Validate())
	assert.Error(t, (&Config{Theme: "dark", BackgroundHex: "ffffff"}).Validate())

	assert.Error(t, (&Config{BackgroundImg: filepath.Join(t.TempDir(), "missing.png")}).Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Template: "basic"}
	merged := cfg.MergeWithDefaults(Config{Template: "timeline", Theme: "navy-white", ListenAddr: ":8080"})

	assert.Equal(t, "basic", merged.Template, "explicit value wins")
	assert.Equal(t, "navy-white", merged.Theme)
	assert.Equal(t, ":8080", merged.ListenAddr)
}

func TestThemeSelector(t *testing.T) {
	cfg := Config{Theme: "custom", BackgroundHex: "112233", TextHex: "ffffff"}
	sel := cfg.ThemeSelector()
	assert.Equal(t, "custom", sel.Name)
	assert.Equal(t, "112233", sel.BackgroundHex)
	assert.Equal(t, "ffffff", sel.TextHex)
}
