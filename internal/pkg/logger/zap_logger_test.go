package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.log")
	l := NewIsolatedLogger(path)

	l.Debug("QUIZ", "dropped below info", nil)
	l.Info("QUIZ", "quiz finalized", map[string]interface{}{"questions": 5})
	l.Error("INGEST", "extract failed", map[string]interface{}{"error": "bad pdf"})
	require.NoError(t, l.Sync())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}

	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "QUIZ", entries[0]["module"])
	assert.Equal(t, "quiz finalized", entries[0]["message"])
	assert.Equal(t, "bad pdf", entries[1]["error_ref"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("ANY", "ignored", nil)
	assert.NoError(t, l.Sync())
}
