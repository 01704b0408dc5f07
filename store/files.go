package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStorer is the blob-store boundary: persist raw bytes, get back a
// URL other components can reference.
type FileStorer interface {
	Save(name string, data []byte) (string, error)
}

// LocalFileStore keeps uploaded files on disk and serves them through the
// static file route.
type LocalFileStore struct {
	dir     string
	baseURL string
}

func NewLocalFileStore(dir, baseURL string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalFileStore{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalFileStore) Save(name string, data []byte) (string, error) {
	name = filepath.Base(name)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("save file %s: %w", name, err)
	}
	return s.baseURL + "/" + name, nil
}

// Dir returns the directory backing the store, for static serving.
func (s *LocalFileStore) Dir() string {
	return s.dir
}
