package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Iron-Ham/reactor/internal/config"
	"github.com/Iron-Ham/reactor/internal/errors"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	bolt, err := NewBoltStore(filepath.Join(dir, "state.db"), Options{})
	if err != nil {
		t.Fatalf("NewBoltStore() error = %v", err)
	}
	file, err := NewFileStore(filepath.Join(dir, "files"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return map[string]Store{
		"bolt":   bolt,
		"file":   file,
		"memory": NewMemoryStore(),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
			}

			if err := s.Put("reader/read", []byte(`["a","b"]`)); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			got, err := s.Get("reader/read")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != `["a","b"]` {
				t.Errorf("Get() = %s", got)
			}

			if err := s.Put("reader/read", []byte(`[]`)); err != nil {
				t.Fatalf("Put() overwrite error = %v", err)
			}
			if got, _ := s.Get("reader/read"); string(got) != `[]` {
				t.Errorf("Get() after overwrite = %s", got)
			}

			if err := s.Delete("reader/read"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := s.Get("reader/read"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
			}
			if err := s.Delete("never-set"); err != nil {
				t.Errorf("Delete(missing) error = %v", err)
			}
		})
	}
}

func TestStore_Closed(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}
			err := s.Put("k", []byte("v"))
			if !errors.Is(err, errors.ErrStorageClosed) {
				t.Errorf("Put() after Close error = %v, want ErrStorageClosed", err)
			}
			var se *errors.StorageError
			if !errors.As(err, &se) || se.Key != "k" {
				t.Errorf("error %v is not a StorageError for key k", err)
			}
		})
	}
}

func TestBoltStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := NewBoltStore(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = NewBoltStore(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if got, err := s.Get("k"); err != nil || string(got) != "v" {
		t.Errorf("Get() = %q, %v after reopen", got, err)
	}
}

func TestBoltStore_LockTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := NewBoltStore(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	_, err = NewBoltStore(path, Options{Timeout: 50 * time.Millisecond})
	if !errors.Is(err, errors.ErrTimeout) {
		t.Errorf("second open error = %v, want ErrTimeout", err)
	}
	if !errors.IsRetryable(err) {
		t.Error("lock timeout should be retryable")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     config.StorageConfig
		wantErr error
	}{
		{"bolt", config.StorageConfig{Backend: "bolt", Path: filepath.Join(dir, "s.db")}, nil},
		{"file", config.StorageConfig{Backend: "file", Path: filepath.Join(dir, "files")}, nil},
		{"memory", config.StorageConfig{Backend: "memory"}, nil},
		{"unknown", config.StorageConfig{Backend: "redis"}, errors.ErrUnknownBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.cfg, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer s.Close()
			if err := s.Put("k", []byte("v")); err != nil {
				t.Errorf("Put() error = %v", err)
			}
		})
	}
}
