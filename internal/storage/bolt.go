package storage

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Iron-Ham/reactor/internal/errors"
)

const bucketState = "state"

// Options configures a BoltStore.
type Options struct {
	// Timeout bounds the wait for the database file lock. Zero means one second.
	Timeout time.Duration
}

// BoltStore keeps every key in one bbolt bucket.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens or creates the database file at path.
func NewBoltStore(path string, opts Options) (*BoltStore, error) {
	if opts.Timeout == 0 {
		opts.Timeout = time.Second
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.NewStorageError("cannot create store directory", err).WithBackend("bolt")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: opts.Timeout})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errors.NewTimeoutError("open "+path, opts.Timeout).WithCause(err)
		}
		return nil, errors.NewStorageError("cannot open database", err).WithBackend("bolt")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketState))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.NewStorageError("cannot initialize bucket", err).WithBackend("bolt")
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketState)).Get([]byte(key))
		if v == nil {
			return errors.NewNotFoundError("key", key)
		}
		value = append([]byte(nil), v...)
		return nil
	})
	return value, s.wrap(err, "get", key)
}

func (s *BoltStore) Put(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketState)).Put([]byte(key), value)
	})
	return s.wrap(err, "put", key)
}

func (s *BoltStore) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketState)).Delete([]byte(key))
	})
	return s.wrap(err, "delete", key)
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) wrap(err error, op, key string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return err
	case errors.Is(err, bolt.ErrDatabaseNotOpen):
		return errors.NewStorageError(op+" failed", errors.ErrStorageClosed).WithBackend("bolt").WithKey(key)
	default:
		return errors.NewStorageError(op+" failed", err).WithBackend("bolt").WithKey(key)
	}
}
