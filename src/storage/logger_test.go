package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := NewLogger(path, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("report written", zap.String("path", "report/salary_report.xlsx"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "report written", entry["msg"])
	assert.Equal(t, "report/salary_report.xlsx", entry["path"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := NewLogger("", "loud")
	assert.Error(t, err)
}
