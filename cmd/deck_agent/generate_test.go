package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withoutEnv(cmd *exec.Cmd, key string) {
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, key+"=") {
			env = append(env, e)
		}
	}
	cmd.Env = env
}

func TestGenerateCommand_MissingAccessToken(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "generate", "--spreadsheet", "sheet-1")
	withoutEnv(cmd, "GOOGLE_ACCESS_TOKEN")

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "GOOGLE_ACCESS_TOKEN environment variable or --access-token flag is required")
}

func TestGenerateCommand_MissingSpreadsheet(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "generate", "--access-token", "dummy-token")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--spreadsheet is required")
}

func TestGenerateCommand_BadTemplate(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "generate",
		"--access-token", "dummy-token",
		"--spreadsheet", "sheet-1",
		"--template", "fancy")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown template")
}

func TestGenerateCommand_ConfigFile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "config.json")
	cfgJSON := `{
  "spreadsheet_id": "sheet-1",
  "template": "timeline"
}`
	_ = os.WriteFile(cfgFile, []byte(cfgJSON), 0644)

	cmd := exec.Command(binaryPath, "generate",
		"--config", cfgFile,
		"--access-token", "dummy-token")
	output, err := cmd.CombinedOutput()

	// The token is fake, so the spreadsheet read fails, but only after
	// config loading and merging succeeded.
	assert.Error(t, err)
	assert.NotContains(t, string(output), "--spreadsheet is required")
	assert.Contains(t, string(output), "Step 1/3: Loading experiences from spreadsheet sheet-1")
}
