package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"notetaker/internal/server"
	"notetaker/internal/shared"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, initStore bool) *Client {
	t.Helper()
	store := server.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	if initStore {
		require.NoError(t, store.Init(context.Background()))
	}
	static, err := server.NewStatic("")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := &server.API{Notes: server.NewNoteService(store), Log: logger}

	ts := httptest.NewServer(server.NewRouter(api, static, logger))
	t.Cleanup(ts.Close)

	return New(&shared.ClientConfig{ServerURL: ts.URL + "/", TimeoutSeconds: 5})
}

func TestClient_CreateListDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestServer(t, true)

	raw, err := c.List(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	a, err := c.Create(ctx, map[string]any{"title": "first", "id": "ignored"})
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", a.ID)
	b, err := c.Create(ctx, map[string]any{"text": "no title"})
	require.NoError(t, err)

	raw, err = c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, Column(raw, "id"))
	assert.Equal(t, []string{"first", ""}, Column(raw, "title"))

	msg, err := c.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.NoteDeletedMessage, msg)

	raw, err = c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, Column(raw, "id"))
}

func TestClient_ServerError(t *testing.T) {
	c := newTestServer(t, false)

	_, err := c.List(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Internal server error", apiErr.Message)

	_, err = c.Create(context.Background(), map[string]any{"title": "x"})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Failed to read notes", apiErr.Message)
}

func TestColumn_DottedField(t *testing.T) {
	raw := []byte(`[{"a.b":"dotted","id":"1"},{"a":{"b":"nested"},"id":"2"}]`)
	assert.Equal(t, []string{"dotted", ""}, Column(raw, "a.b"))
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields([]string{"title=hello", "text=a=b", "tag=x", "tag=y", "tag=z", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"title": "hello",
		"text":  "a=b",
		"tag":   []any{"x", "y", "z"},
		"empty": "",
	}, fields)

	_, err = ParseFields([]string{"novalue"})
	assert.Error(t, err)
	_, err = ParseFields([]string{"=x"})
	assert.Error(t, err)
}
