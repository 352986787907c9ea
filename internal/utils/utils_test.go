package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "INV-000001.pdf", SanitizeFileName("INV-000001.pdf"))
	assert.Equal(t, "INV_42Sept.pdf", SanitizeFileName("INV 42/Sept.pdf"))
	assert.Equal(t, "", SanitizeFileName("#/?"))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"short"}, WrapText("short", 10))
	assert.Equal(t,
		[]string{"Access community", "res and social", "(02 Sep 2025)"},
		WrapText("Access community res and social (02 Sep 2025)", 16))
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cli.log")
	logger, err := NewLogger(LoggerConfig{Level: "info", OutputPath: path, Format: "json"})
	require.NoError(t, err)

	logger.Info("profile saved")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"profile saved"`)
}
