// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

// Config is the CLI configuration loadable from a JSON file. All
// fields are optional; missing values use defaults or must be provided
// via CLI flags.
type Config struct {
	// Google access
	AccessToken   string `json:"access_token,omitempty"`   // OAuth bearer token for the Google APIs
	SpreadsheetID string `json:"spreadsheet_id,omitempty"` // Spreadsheet holding the experience records

	// Generation defaults
	Template      string `json:"template,omitempty"`       // basic, timeline or photo
	Theme         string `json:"theme,omitempty"`          // palette name or "custom"
	BackgroundHex string `json:"background_hex,omitempty"` // custom theme background, 6 hex digits
	TextHex       string `json:"text_hex,omitempty"`       // custom theme text color, 6 hex digits
	Title         string `json:"title,omitempty"`          // deck title
	BackgroundImg string `json:"background_img,omitempty"` // path to an image stretched across all slides

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	ListenAddr string `json:"listen_addr,omitempty"` // HTTP listen address for serve mode
	JWTSecret  string `json:"jwt_secret,omitempty"`  // enables request auth on the server when set
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required
// fields are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Template != "" {
		if _, err := types.ParseTemplateKind(c.Template); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if (c.BackgroundHex != "" || c.TextHex != "") && c.Theme != "custom" {
		return fmt.Errorf("config error: 'background_hex'/'text_hex' require theme \"custom\"")
	}

	if c.BackgroundImg != "" {
		if _, err := os.Stat(c.BackgroundImg); os.IsNotExist(err) {
			return fmt.Errorf("config error: background image not found: %s", c.BackgroundImg)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.AccessToken == "" {
		result.AccessToken = defaults.AccessToken
	}
	if result.SpreadsheetID == "" {
		result.SpreadsheetID = defaults.SpreadsheetID
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Theme == "" {
		result.Theme = defaults.Theme
	}
	if result.BackgroundHex == "" {
		result.BackgroundHex = defaults.BackgroundHex
	}
	if result.TextHex == "" {
		result.TextHex = defaults.TextHex
	}
	if result.Title == "" {
		result.Title = defaults.Title
	}
	if result.BackgroundImg == "" {
		result.BackgroundImg = defaults.BackgroundImg
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}

	// Bool fields cannot distinguish unset from false, so CLI flags
	// always win for those.

	return result
}

// ThemeSelector builds the theme selector from the merged config.
func (c *Config) ThemeSelector() types.ThemeSelector {
	return types.ThemeSelector{
		Name:          c.Theme,
		BackgroundHex: c.BackgroundHex,
		TextHex:       c.TextHex,
	}
}
