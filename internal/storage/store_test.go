package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/wellnest/internal/config"
)

// exerciseKV runs the behaviour every backend must share.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Put(ctx, "a", []byte(`{"stress":3}`)))
	got, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"stress":3}`, string(got))

	require.NoError(t, kv.Put(ctx, "a", []byte(`{"stress":6}`)))
	got, err = kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"stress":6}`, string(got))

	require.NoError(t, kv.Put(ctx, "b", []byte(`[1,2]`)))
	require.NoError(t, kv.Delete(ctx, "a"))
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err = kv.Get(ctx, "b")
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(got))

	// Deleting a missing key is not an error
	assert.NoError(t, kv.Delete(ctx, "never-set"))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	exerciseKV(t, store)
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	value := []byte(`{"mood":1}`)
	require.NoError(t, store.Put(ctx, "k", value))
	value[2] = 'X'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"mood":1}`, string(got))

	got[2] = 'Y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"mood":1}`, string(again))
}

func TestMemoryStore_Closed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Close())

	_, err := store.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, store.Put(ctx, "k", []byte(`1`)))
	assert.Error(t, store.Delete(ctx, "k"))
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Put(ctx, "k", []byte(`1`)), context.Canceled)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StorageConfig
		want    any
		wantErr bool
	}{
		{
			name: "file backend",
			cfg:  config.StorageConfig{Backend: config.BackendFile, Path: filepath.Join(dir, "store.json")},
			want: &FileStore{},
		},
		{
			name: "sqlite backend",
			cfg:  config.StorageConfig{Backend: config.BackendSQLite, Path: filepath.Join(dir, "wellnest.db")},
			want: &SQLiteStore{},
		},
		{
			name: "memory backend",
			cfg:  config.StorageConfig{Backend: config.BackendMemory},
			want: &MemoryStore{},
		},
		{
			name:    "redis backend with bad url",
			cfg:     config.StorageConfig{Backend: config.BackendRedis, RedisURL: "not-a-url"},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			cfg:     config.StorageConfig{Backend: "etcd"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, err := Open(context.Background(), tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer kv.Close()
			assert.IsType(t, tt.want, kv)
		})
	}
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("WELLNEST_TEST_REDIS_URL")
	if url == "" {
		t.Skip("WELLNEST_TEST_REDIS_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	prefix := "wellnest-test:" + time.Now().Format("150405.000000") + ":"
	store, err := NewRedisStore(ctx, url, prefix)
	require.NoError(t, err)
	defer store.Close()

	defer func() {
		_ = store.Delete(context.Background(), "b")
	}()
	exerciseKV(t, store)
}

func TestRedisStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := NewRedisStore(ctx, "redis://127.0.0.1:1/0", "x:")
	assert.Error(t, err)
}
