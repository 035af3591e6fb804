package storage

import (
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/reactor/internal/errors"
)

// FileStore keeps one file per key in a directory of an afero filesystem.
type FileStore struct {
	mu      sync.RWMutex
	fs      afero.Fs
	dir     string
	backend string
	closed  bool
}

// NewFileStore stores files under dir on the host filesystem.
func NewFileStore(dir string) (*FileStore, error) {
	return newFileStore(afero.NewOsFs(), dir, "file")
}

// NewMemoryStore returns a store that lives only as long as the process.
func NewMemoryStore() *FileStore {
	s, _ := newFileStore(afero.NewMemMapFs(), "/", "memory")
	return s
}

func newFileStore(fs afero.Fs, dir, backend string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewStorageError("cannot create store directory", err).WithBackend(backend)
	}
	return &FileStore{fs: fs, dir: dir, backend: backend}, nil
}

// path maps a key to a file name; keys may contain separators.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key))
}

func (s *FileStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, s.closedError(key)
	}
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("key", key).WithCause(err)
		}
		return nil, errors.NewStorageError("get failed", err).WithBackend(s.backend).WithKey(key)
	}
	return data, nil
}

func (s *FileStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.closedError(key)
	}
	if err := afero.WriteFile(s.fs, s.path(key), value, 0o600); err != nil {
		return errors.NewStorageError("put failed", err).WithBackend(s.backend).WithKey(key)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.closedError(key)
	}
	if err := s.fs.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.NewStorageError("delete failed", err).WithBackend(s.backend).WithKey(key)
	}
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *FileStore) closedError(key string) error {
	return errors.NewStorageError("store is closed", errors.ErrStorageClosed).WithBackend(s.backend).WithKey(key)
}
