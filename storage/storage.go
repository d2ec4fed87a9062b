package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// Store writes extraction outputs below a base directory.
type Store struct {
	baseDir string
	mu      sync.Mutex
}

// New creates a new Store instance with the given base directory.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Path resolves name against the base directory. Absolute names are kept.
func (s *Store) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.baseDir, name)
}

// WriteJSON encodes v with two-space indentation and no trailing newline.
// It returns the path written.
func (s *Store) WriteJSON(name string, v any) (string, error) {
	data, err := MarshalIndent(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	return s.write(name, data)
}

// WriteText writes text as-is and returns the path written.
func (s *Store) WriteText(name, text string) (string, error) {
	return s.write(name, []byte(text))
}

// write replaces the target atomically through a temp file in the same
// directory. Errors are the underlying filesystem errors.
func (s *Store) write(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return path, nil
}

// MarshalIndent encodes v with two-space indentation, without HTML escaping
// and without a trailing newline.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
