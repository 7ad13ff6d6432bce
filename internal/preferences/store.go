package preferences

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// File is the TOML layout of the preferences file.
type File struct {
	Review ReviewSection `toml:"review"`
}

// ReviewSection holds review related preferences.
type ReviewSection struct {
	Mode string `toml:"mode"`
}

// FileStore persists preferences in a TOML file. It implements
// review.ModeStore.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("preferences path is empty")
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the preferences. Missing file is not an error.
func (s *FileStore) Load() (File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (File, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to stat preferences: %w", err)
	}
	var f File
	if _, err := toml.DecodeFile(s.path, &f); err != nil {
		return File{}, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return f, nil
}

// Update applies fn to the current preferences and writes them back.
func (s *FileStore) Update(fn func(*File)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return err
	}
	fn(&f)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	// Write to a temp file first so a crash never leaves a truncated file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace preferences: %w", err)
	}
	return nil
}

// LoadReviewMode returns the saved review mode, "" when unset.
func (s *FileStore) LoadReviewMode(ctx context.Context) (string, error) {
	f, err := s.Load()
	if err != nil {
		return "", err
	}
	return f.Review.Mode, nil
}

// SaveReviewMode saves the review mode.
func (s *FileStore) SaveReviewMode(ctx context.Context, mode string) error {
	return s.Update(func(f *File) {
		f.Review.Mode = mode
	})
}
