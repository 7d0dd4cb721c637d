package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryDelay is how often a blocked lock attempt is retried.
const lockRetryDelay = 10 * time.Millisecond

// FileStore keeps every key in a single JSON object on disk, the same shape a
// browser's local storage would have. Readers take a shared lock and writers
// an exclusive one on "<path>.lock", so several processes can share the file.
// Writes go through a temp file and rename, so a reader never sees a partial
// document.
type FileStore struct {
	// mu serialises goroutines sharing this store; the flock only excludes
	// other processes since a Flock held by this handle reports success again.
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

// NewFileStore creates a FileStore at path, creating parent directories.
// The file itself is created on first Put.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

// Path returns the store file location.
func (f *FileStore) Path() string {
	return f.path
}

// Get returns the raw JSON stored under key.
func (f *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.rlock(ctx); err != nil {
		return nil, err
	}
	defer f.lock.Unlock()

	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

// Put stores value under key. value must be valid JSON.
func (f *FileStore) Put(ctx context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	return f.update(ctx, func(doc map[string]json.RawMessage) {
		v := make(json.RawMessage, len(value))
		copy(v, value)
		doc[key] = v
	})
}

// Delete removes key.
func (f *FileStore) Delete(ctx context.Context, key string) error {
	return f.update(ctx, func(doc map[string]json.RawMessage) {
		delete(doc, key)
	})
}

// Close releases the lock handle.
func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lock.Close()
}

func (f *FileStore) rlock(ctx context.Context) error {
	ok, err := f.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire read lock on %s: %w", f.path, err)
	}
	if !ok {
		return fmt.Errorf("failed to acquire read lock on %s", f.path)
	}
	return nil
}

func (f *FileStore) wlock(ctx context.Context) error {
	ok, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", f.path, err)
	}
	if !ok {
		return fmt.Errorf("failed to acquire lock on %s", f.path)
	}
	return nil
}

// update runs a read-modify-write cycle under the exclusive lock.
func (f *FileStore) update(ctx context.Context, mutate func(map[string]json.RawMessage)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.wlock(ctx); err != nil {
		return err
	}
	defer f.lock.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	mutate(doc)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	return atomicWrite(f.path, data)
}

// read loads the document; a missing or empty file is an empty document.
func (f *FileStore) read() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", f.path, err)
	}
	return doc, nil
}

// atomicWrite writes data to a temp file in the target directory and renames
// it over path. On failure the previous file is left untouched.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	// Renamed into place; skip cleanup
	tempFile = nil
	return nil
}
