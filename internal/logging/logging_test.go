package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestSetup_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pfsearch.log")
	logger, cleanup, err := Setup(Config{
		Level:    "info",
		FilePath: path,
	})
	require.NoError(t, err)

	logger.Info("search completed", "repo", "haiti", "results", 3)
	logger.Debug("should be filtered")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "search completed", entry["msg"])
	assert.Equal(t, "haiti", entry["repo"])
	assert.Equal(t, float64(3), entry["results"])
}

func TestSetup_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "pfsearch.log")
	_, cleanup, err := Setup(Config{Level: "info", FilePath: path})
	require.NoError(t, err)
	cleanup()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSetup_NoFilePath(t *testing.T) {
	logger, cleanup, err := Setup(Config{Level: "debug"})
	require.NoError(t, err)
	defer cleanup()
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
}

func TestRotatingWriter_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pfsearch.log")
	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	defer w.Close()

	chunk := bytes.Repeat([]byte("x"), 700*1024)
	_, err = w.Write(chunk)
	require.NoError(t, err)
	// The second write would exceed 1MB, so the first chunk rotates out.
	_, err = w.Write(chunk)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(chunk)), info.Size())

	rotated, err := os.Stat(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, int64(len(chunk)), rotated.Size())
}

func TestRotatingWriter_RetentionWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pfsearch.log")
	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	defer w.Close()

	chunk := bytes.Repeat([]byte("x"), 700*1024)
	for range 4 {
		_, err = w.Write(chunk)
		require.NoError(t, err)
	}

	// With maxFiles=2 only .1 and .2 survive.
	for _, name := range []string{path, path + ".1", path + ".2"} {
		_, err := os.Stat(name)
		assert.NoError(t, err, name)
	}
	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))
}

func TestRotatingWriter_AppendsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pfsearch.log")

	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}
