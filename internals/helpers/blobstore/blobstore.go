// Package blobstore menyimpan byte file resource di luar database.
// Database hanya memegang key opaque.
package blobstore

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store interface {
	Save(originalName string, r io.Reader) (key string, err error)
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
}

// LocalStore implementasi disk lokal. Key = uuid + ekstensi asli, jadi
// nama file user tidak pernah menyentuh filesystem.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{Dir: dir}, nil
}

func (s *LocalStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	key := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.Dir, key))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

func (s *LocalStore) Open(key string) (io.ReadCloser, error) {
	// Tolak key yang mencoba keluar dari direktori store.
	if key != filepath.Base(key) {
		return nil, os.ErrNotExist
	}
	return os.Open(filepath.Join(s.Dir, key))
}

func (s *LocalStore) Delete(key string) error {
	if key != filepath.Base(key) {
		return os.ErrNotExist
	}
	return os.Remove(filepath.Join(s.Dir, key))
}
