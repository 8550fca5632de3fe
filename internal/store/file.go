package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// FileStore implements Store over a plain JSON file: one object mapping keys
// to raw JSON values. Suited to a single-user local install with no SQLite
// available.
type FileStore struct {
	gateway
	path string
}

// NewFile creates a FileStore writing to the given path. The parent
// directory is created on demand.
func NewFile(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, eris.Wrap(err, "filestore: create directory")
	}
	s := &FileStore{path: path}
	s.gateway.kv = s
	return s, nil
}

func (s *FileStore) Migrate(context.Context) error { return nil }

func (s *FileStore) Close() error { return nil }

func (s *FileStore) get(_ context.Context, key string) ([]byte, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc[key], nil
}

func (s *FileStore) put(_ context.Context, key string, value []byte) error {
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[key] = json.RawMessage(value)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "filestore: marshal")
	}

	// Write-then-rename keeps a crashed write from truncating the store.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return eris.Wrap(err, "filestore: write temp")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return eris.Wrap(err, "filestore: rename")
	}
	return nil
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "filestore: read")
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		// Unreadable file behaves like an empty store.
		return map[string]json.RawMessage{}, nil
	}
	return doc, nil
}
