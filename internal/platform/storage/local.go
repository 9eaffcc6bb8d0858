// Package storage persists uploaded item images on local disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// URLPrefix is the route prefix the image directory is served under.
const URLPrefix = "/images"

// LocalStore writes image files into a single directory and derives their
// public URLs. The reference system keeps the client's file name, so
// collisions overwrite (last write wins); only the base name is used to
// keep writes inside the directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the image directory if needed and returns a store.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes data under the base of filename and returns the public URL
// path ("/images/<name>").
func (s *LocalStore) Save(filename string, data []byte) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("invalid file name %q", filename)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing image file: %w", err)
	}
	return URLPrefix + "/" + name, nil
}
