// Package storage persists small values by key for the state effects.
//
// Values are opaque bytes; callers choose the encoding. Every backend
// reports a missing key as an error matching ErrNotFound.
package storage

import (
	"github.com/Iron-Ham/reactor/internal/config"
	"github.com/Iron-Ham/reactor/internal/errors"
	"github.com/Iron-Ham/reactor/internal/logging"
)

// ErrNotFound is matched by errors returned from Get for a missing key.
var ErrNotFound = errors.ErrKeyNotFound

// Store is a key-value store. Implementations are safe for concurrent use.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Open opens the backend named by cfg.
func Open(cfg config.StorageConfig, logger *logging.Logger) (Store, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithComponent("storage")

	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case "bolt":
		s, err = NewBoltStore(cfg.ResolvePath(), Options{})
	case "file":
		s, err = NewFileStore(cfg.ResolvePath())
	case "memory":
		s = NewMemoryStore()
	default:
		return nil, errors.NewStorageError("cannot open store", errors.ErrUnknownBackend).WithBackend(cfg.Backend)
	}
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.Backend, "error", err.Error())
		return nil, err
	}
	logger.Debug("store opened", "backend", cfg.Backend)
	return s, nil
}
