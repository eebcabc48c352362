package backend

import (
	"context"
	"path/filepath"
	"testing"

	"staff_portal/internal/config"
	"staff_portal/internal/models"
	"staff_portal/internal/storage/file"
	"staff_portal/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	store, closeFn, err := Open(context.Background(), config.Storage{Kind: config.StorageFile, FilePath: path})
	require.NoError(t, err)
	defer closeFn()

	fs, ok := store.(*file.Store)
	require.True(t, ok)
	assert.Equal(t, path, fs.Path())

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	snap.Users = append(snap.Users, models.User{Email: "a@x", Role: models.RoleAdmin})
	require.NoError(t, store.Save(context.Background(), snap))

	again, err := file.New(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, again.Users, 1)
}

func TestOpen_Memory(t *testing.T) {
	store, closeFn, err := Open(context.Background(), config.Storage{Kind: config.StorageMemory})
	require.NoError(t, err)
	defer closeFn()

	_, ok := store.(*memory.Store)
	assert.True(t, ok)
}

func TestOpen_UnknownKind(t *testing.T) {
	_, _, err := Open(context.Background(), config.Storage{Kind: "sqlite"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}
