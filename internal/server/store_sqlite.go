package server

import (
	"context"
	"database/sql"
	"time"

	"notetaker/internal/shared"

	"github.com/pkg/errors"
)

const notesDocument = "notes"

// SQLiteStore keeps the same JSON array document as a single row of the
// documents table.
type SQLiteStore struct {
	DB   *sql.DB
	Name string
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db, Name: notesDocument}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT OR IGNORE INTO documents (name, body, updated_at) VALUES (?, '[]', ?)`,
		s.Name, time.Now().Unix(),
	)
	if err != nil {
		return errors.Wrapf(ErrStorageWrite, "init document %q: %v", s.Name, err)
	}
	return nil
}

func (s *SQLiteStore) LoadAll(ctx context.Context) ([]shared.Note, error) {
	var body string
	err := s.DB.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE name = ?`, s.Name,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(ErrStorageRead, "document %q does not exist", s.Name)
		}
		return nil, errors.Wrapf(ErrStorageRead, "load document %q: %v", s.Name, err)
	}
	return decodeNotes([]byte(body))
}

func (s *SQLiteStore) SaveAll(ctx context.Context, notes []shared.Note) error {
	data, err := encodeNotes(notes)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		s.Name, string(data), time.Now().Unix(),
	)
	if err != nil {
		return errors.Wrapf(ErrStorageWrite, "save document %q: %v", s.Name, err)
	}
	return nil
}
