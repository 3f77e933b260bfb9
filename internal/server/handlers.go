package server

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"notetaker/internal/shared"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const maxBodyBytes = 2 << 20

type API struct {
	Notes *NoteService
	Log   *slog.Logger
}

func (a *API) ListNotes(c *gin.Context) {
	notes, err := a.Notes.List(c.Request.Context())
	if err != nil {
		a.Log.Error("error reading notes", "err", err)
		writeError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if notes == nil {
		notes = []shared.Note{}
	}
	writeJSON(c, http.StatusOK, notes)
}

func (a *API) CreateNote(c *gin.Context) {
	fields, err := readFields(c.Request)
	if err != nil {
		a.Log.Debug("bad note body", "err", err)
		writeError(c, http.StatusBadRequest, "Invalid note body")
		return
	}

	note, err := a.Notes.Create(c.Request.Context(), fields)
	if err != nil {
		if errors.Is(err, ErrStorageWrite) {
			a.Log.Error("error saving note", "err", err)
			writeError(c, http.StatusInternalServerError, "Failed to save note")
			return
		}
		a.Log.Error("error reading notes", "err", err)
		writeError(c, http.StatusInternalServerError, "Failed to read notes")
		return
	}
	a.Log.Debug("note created", "id", note.ID)
	writeJSON(c, http.StatusOK, note)
}

func (a *API) DeleteNote(c *gin.Context) {
	id := c.Param("id")
	if err := a.Notes.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrStorageWrite) {
			a.Log.Error("error deleting note", "id", id, "err", err)
			writeError(c, http.StatusInternalServerError, "Failed to delete note")
			return
		}
		a.Log.Error("error reading notes for deletion", "id", id, "err", err)
		writeError(c, http.StatusInternalServerError, "Failed to read notes for deletion")
		return
	}
	a.Log.Debug("note deleted", "id", id)
	writeJSON(c, http.StatusOK, shared.MessageResponse{Message: shared.NoteDeletedMessage})
}

// readFields accepts a JSON object or an urlencoded form. Other content
// types, and empty bodies, yield no fields.
func readFields(r *http.Request) (map[string]any, error) {
	if r.Body == nil {
		return map[string]any{}, nil
	}
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, errors.Wrap(err, "parse form")
		}
		fields := make(map[string]any, len(values))
		for k, vs := range values {
			if len(vs) == 1 {
				fields[k] = vs[0]
				continue
			}
			list := make([]any, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			fields[k] = list
		}
		return fields, nil
	case mediaType == "", mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return shared.DecodeFields(body)
	default:
		return map[string]any{}, nil
	}
}

// writeJSON renders v without HTML escaping. Successful responses carry a
// weak ETag and GET/HEAD honour If-None-Match.
func writeJSON(c *gin.Context, code int, v any) {
	body, err := shared.MarshalCompact(v)
	if err != nil {
		c.Data(http.StatusInternalServerError, "application/json; charset=utf-8", []byte(`{"error":"Internal server error"}`))
		return
	}
	if code == http.StatusOK {
		etag := weakETag(body)
		c.Header("ETag", etag)
		m := c.Request.Method
		if (m == http.MethodGet || m == http.MethodHead) && etagMatches(c.GetHeader("If-None-Match"), etag) {
			c.Status(http.StatusNotModified)
			c.Writer.WriteHeaderNow()
			return
		}
	}
	c.Data(code, "application/json; charset=utf-8", body)
}

func writeError(c *gin.Context, code int, msg string) {
	writeJSON(c, code, shared.ErrorResponse{Error: msg})
}

func weakETag(body []byte) string {
	return fmt.Sprintf(`W/"%x-%x"`, len(body), xxhash.Sum64(body))
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}
