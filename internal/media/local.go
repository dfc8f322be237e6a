package media

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes uploads under a base directory on disk.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Save(_ context.Context, relPath, _ string, r io.Reader, size int64) error {
	full := filepath.Join(s.baseDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	defer f.Close()

	// LimitReader guards against a lying Content-Length.
	_, err = io.Copy(f, io.LimitReader(r, size))
	return err
}

func (s *LocalStore) Remove(_ context.Context, relPath string) error {
	return os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(relPath)))
}
