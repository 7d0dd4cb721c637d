package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteStore(t *testing.T) {
	tests := []struct {
		name    string
		dbPath  string
		wantErr bool
	}{
		{
			name:   "creates database successfully",
			dbPath: filepath.Join(t.TempDir(), "test.db"),
		},
		{
			name:   "handles in-memory database",
			dbPath: ":memory:",
		},
		{
			name:   "creates parent directories if needed",
			dbPath: filepath.Join(t.TempDir(), "nested", "dir", "test.db"),
		},
		{
			name:    "rejects empty path",
			dbPath:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewSQLiteStore(tt.dbPath)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, store)
			defer store.Close()

			version, err := store.GetLatestVersion()
			require.NoError(t, err)
			assert.Equal(t, len(migrations), version)
			assert.Equal(t, tt.dbPath, store.dbPath)
		})
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer store.Close()

	exerciseKV(t, store)
}

func TestSQLiteStore_Path(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, path, store.Path())
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "k", []byte(`{"mood":9}`)))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"mood":9}`, string(got))

	version, err := reopened.GetLatestVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.ApplyMigrations(context.Background()))
	require.NoError(t, store.ApplyMigrations(context.Background()))

	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count))
	assert.Equal(t, len(migrations), count)

	var index string
	err = store.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_kv_updated_at'`).Scan(&index)
	require.NoError(t, err)
	assert.Equal(t, "idx_kv_updated_at", index)
}

func TestSQLiteStore_CloseNil(t *testing.T) {
	store := &SQLiteStore{}
	assert.NoError(t, store.Close())
}
