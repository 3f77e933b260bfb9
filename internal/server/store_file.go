package server

import (
	"context"
	"os"
	"path/filepath"

	"notetaker/internal/shared"

	"github.com/pkg/errors"
)

const tempFilePrefix = ".notes-tmp-"

// FileStore keeps the notes document as a JSON file on disk.
type FileStore struct {
	Path string
	Perm os.FileMode
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, Perm: 0644}
}

func (s *FileStore) Init(ctx context.Context) error {
	_, err := os.Stat(s.Path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return errors.Wrapf(ErrStorageRead, "stat %s: %v", s.Path, err)
	}
	if dir := filepath.Dir(s.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(ErrStorageWrite, "create dir %s: %v", dir, err)
		}
	}
	return s.SaveAll(ctx, nil)
}

func (s *FileStore) LoadAll(ctx context.Context) ([]shared.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(ErrStorageRead, "read %s: %v", s.Path, err)
	}
	return decodeNotes(data)
}

func (s *FileStore) SaveAll(ctx context.Context, notes []shared.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeNotes(notes)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.Path, data, s.Perm); err != nil {
		return errors.Wrapf(ErrStorageWrite, "write %s: %v", s.Path, err)
	}
	return nil
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it over filename, so readers see either the old or the new document.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return errors.Wrap(err, "chmod temp file")
	}
	return os.Rename(tmp.Name(), filename)
}
