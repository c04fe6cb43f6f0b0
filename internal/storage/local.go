package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrKeyOutsideRoot is returned for object keys whose resolved path would
// escape the store directory.
var ErrKeyOutsideRoot = errors.New("object key escapes the store root")

// LocalStore writes objects to a directory on disk. Used in development and
// single-host deployments where no bucket is configured; the router serves
// the directory under /uploads/.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: filepath.Clean(dir), baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// resolve maps a key to its on-disk path. Keys arrive from the wire, so a
// key whose cleaned path lands outside the store directory is rejected.
func (s *LocalStore) resolve(key string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if path == s.dir || !strings.HasPrefix(path, s.dir+string(filepath.Separator)) {
		return "", ErrKeyOutsideRoot
	}
	return path, nil
}

// Put writes the object to disk. Keys contain slashes; the nested
// directories are created on demand.
func (s *LocalStore) Put(_ context.Context, key, _ string, r io.Reader) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes the object file; a missing file is not an error.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
