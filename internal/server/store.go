package server

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"notetaker/internal/shared"

	"github.com/pkg/errors"
)

var (
	ErrStorageRead   = errors.New("storage read failed")
	ErrStorageFormat = errors.New("storage format invalid")
	ErrStorageWrite  = errors.New("storage write failed")
)

// Store owns the backing document: one JSON array of notes.
// Every call reads or writes the whole document.
type Store interface {
	// Init creates an empty document if none exists yet.
	Init(ctx context.Context) error
	LoadAll(ctx context.Context) ([]shared.Note, error)
	SaveAll(ctx context.Context, notes []shared.Note) error
}

// OpenStore opens the store kind named in the config. The returned close
// func is never nil.
func OpenStore(cfg *shared.ServerConfig) (Store, func() error, error) {
	switch cfg.Store {
	case shared.StoreSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return nil, nil, errors.Wrapf(err, "create db dir %s", dir)
			}
		}
		db, err := OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open db %s", cfg.DBPath)
		}
		if err := RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, errors.Wrap(err, "migrations failed")
		}
		return NewSQLiteStore(db), db.Close, nil
	case shared.StoreFile, "":
		return NewFileStore(cfg.DBPath), func() error { return nil }, nil
	default:
		return nil, nil, errors.Errorf("unknown store %q", cfg.Store)
	}
}

func decodeNotes(data []byte) ([]shared.Note, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.Wrap(ErrStorageFormat, "document is not a JSON array")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, errors.Wrapf(ErrStorageFormat, "parse document: %v", err)
	}

	notes := make([]shared.Note, 0, len(raw))
	for i, r := range raw {
		n, err := shared.DecodeNote(r)
		if err != nil {
			return nil, errors.Wrapf(ErrStorageFormat, "record %d: %v", i, err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// encodeNotes renders the document with two-space indentation.
func encodeNotes(notes []shared.Note) ([]byte, error) {
	if notes == nil {
		notes = []shared.Note{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(notes); err != nil {
		return nil, errors.Wrapf(ErrStorageWrite, "encode document: %v", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
