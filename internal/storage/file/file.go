package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"staff_portal/internal/models"
	"staff_portal/internal/storage"
)

// Store keeps the snapshot in a single JSON file.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the whole document. A file that does not exist yet reads as an empty document.
func (s *Store) Load(_ context.Context) (*models.Snapshot, error) {
	const op = "storage.file.Load"

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.Empty(), nil
		}

		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrIO, err)
	}

	snap, err := storage.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return snap, nil
}

// Save replaces the document through a temp file and rename, so readers see either the old or the new version.
func (s *Store) Save(_ context.Context, snap *models.Snapshot) error {
	const op = "storage.file.Save"

	data, err := storage.Encode(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s: %w: %w", op, storage.ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, storage.ErrIO, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w: %w", op, storage.ErrIO, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w: %w", op, storage.ErrIO, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w: %w", op, storage.ErrIO, err)
	}

	return nil
}
