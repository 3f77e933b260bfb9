package server

import (
	"context"
	"sync"

	"notetaker/internal/shared"

	"github.com/google/uuid"
)

// NoteService runs list/create/delete against a Store. Each call re-reads
// the whole document; mutations hold the write lock for the full
// read-modify-write cycle.
type NoteService struct {
	store Store
	mu    sync.RWMutex
	newID func() string
}

func NewNoteService(store Store) *NoteService {
	return &NoteService{store: store, newID: uuid.NewString}
}

func (s *NoteService) List(ctx context.Context) ([]shared.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.LoadAll(ctx)
}

// Create stores a new note made of fields plus a fresh id and returns it.
func (s *NoteService) Create(ctx context.Context, fields map[string]any) (shared.Note, error) {
	note := shared.NewNote(s.newID(), fields)

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.store.LoadAll(ctx)
	if err != nil {
		return shared.Note{}, err
	}
	notes = append(notes, note)
	if err := s.store.SaveAll(ctx, notes); err != nil {
		return shared.Note{}, err
	}
	return note, nil
}

// Delete removes every note with the given id. A missing id is not an error.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	kept := notes[:0]
	for _, n := range notes {
		if n.ID == "" || n.ID != id {
			kept = append(kept, n)
		}
	}
	return s.store.SaveAll(ctx, kept)
}

func (s *NoteService) Count(ctx context.Context) (int, error) {
	notes, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(notes), nil
}
