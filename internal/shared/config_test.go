package shared

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearServerEnv(t *testing.T) {
	for _, k := range []string{"PORT", "NOTES_DB_PATH", "NOTES_STORE", "NOTES_STATIC_DIR", "NOTES_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	clearServerEnv(t)

	c, err := LoadServerConfig("")
	require.NoError(t, err)
	assert.Equal(t, 3000, c.Port)
	assert.Equal(t, ":3000", c.Addr())
	assert.Equal(t, "./db/db.json", c.DBPath)
	assert.Equal(t, StoreFile, c.Store)
	assert.Equal(t, 5, c.ShutdownSeconds)
}

func TestLoadServerConfig_FileThenEnv(t *testing.T) {
	clearServerEnv(t)
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8080\ndb_path: /tmp/notes.db\nstore: SQLite\nlog_level: debug\n"), 0600))

	c, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, "/tmp/notes.db", c.DBPath)
	assert.Equal(t, StoreSQLite, c.Store)
	assert.Equal(t, "debug", c.LogLevel)

	t.Setenv("PORT", "4000")
	t.Setenv("NOTES_STORE", "file")
	c, err = LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4000, c.Port)
	assert.Equal(t, StoreFile, c.Store)
	assert.Equal(t, "/tmp/notes.db", c.DBPath)
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	clearServerEnv(t)

	t.Setenv("PORT", "abc")
	_, err := LoadServerConfig("")
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = LoadServerConfig("")
	assert.Error(t, err)

	t.Setenv("PORT", "")
	t.Setenv("NOTES_STORE", "postgres")
	_, err = LoadServerConfig("")
	assert.Error(t, err)

	_, err = LoadServerConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestClientConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")

	c, err := LoadClientConfig(path)
	require.NoError(t, err, "missing file means defaults")
	assert.Equal(t, "http://localhost:3000", c.ServerURL)
	assert.Equal(t, 20, c.TimeoutSeconds)

	c.ServerURL = "http://notes.internal:8080"
	require.NoError(t, SaveClientConfig(path, c))

	got, err := LoadClientConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf, "debug")
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger = NewLogger(&buf, "nonsense")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}
