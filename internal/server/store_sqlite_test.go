package server

import (
	"context"
	"path/filepath"
	"testing"

	"notetaker/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, RunMigrations(db))
	return NewSQLiteStore(db)
}

func TestSQLiteStore_LoadBeforeInit(t *testing.T) {
	s := newTestSQLiteStore(t)
	_, err := s.LoadAll(context.Background())
	assert.ErrorIs(t, err, ErrStorageRead)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)
	require.NoError(t, s.Init(ctx))

	notes, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	in := []shared.Note{
		shared.NewNote("1", map[string]any{"title": "a"}),
		shared.NewNote("2", map[string]any{"title": "b"}),
	}
	require.NoError(t, s.SaveAll(ctx, in))

	// Init must not reset an existing document
	require.NoError(t, s.Init(ctx))

	out, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "b", out[1].Fields["title"])

	var body string
	require.NoError(t, s.DB.QueryRow(`SELECT body FROM documents WHERE name = ?`, notesDocument).Scan(&body))
	assert.JSONEq(t, `[{"title":"a","id":"1"},{"title":"b","id":"2"}]`, body)
}

func TestSQLiteStore_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)
	require.NoError(t, s.Init(ctx))

	_, err := s.DB.Exec(`UPDATE documents SET body = 'not json' WHERE name = ?`, notesDocument)
	require.NoError(t, err)

	_, err = s.LoadAll(ctx)
	assert.ErrorIs(t, err, ErrStorageFormat)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, kind := range []string{shared.StoreFile, shared.StoreSQLite} {
		t.Run(kind, func(t *testing.T) {
			cfg := shared.DefaultServerConfig()
			cfg.Store = kind
			cfg.DBPath = filepath.Join(dir, kind, "notes.data")

			store, closeStore, err := OpenStore(cfg)
			require.NoError(t, err)
			defer closeStore()

			require.NoError(t, store.Init(ctx))
			svc := NewNoteService(store)
			_, err = svc.Create(ctx, map[string]any{"title": kind})
			require.NoError(t, err)

			n, err := svc.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}

	_, _, err := OpenStore(&shared.ServerConfig{Store: "redis", DBPath: filepath.Join(dir, "x")})
	assert.Error(t, err)
}
