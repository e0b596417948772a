package localstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaulT-G/skateshop/internal/domain"
)

func TestSaveLoadClear(t *testing.T) {
	store := New(t.TempDir())

	identity := &domain.Identity{
		ID:       "u-1",
		Email:    "ana@example.com",
		FullName: "Ana Torres",
		Username: "ana",
		Role:     domain.RoleBuyer,
	}

	require.NoError(t, store.Save(identity))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, identity, loaded)

	require.NoError(t, store.Clear())

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadWithoutSnapshot(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveOverwrites(t *testing.T) {
	store := New(t.TempDir())

	require.NoError(t, store.Save(&domain.Identity{ID: "u-1", Username: "ana", Role: domain.RoleBuyer}))
	require.NoError(t, store.Save(&domain.Identity{ID: "u-2", Username: "luis", Role: domain.RoleAdmin}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "u-2", loaded.ID)
	assert.Equal(t, domain.RoleAdmin, loaded.Role)
}

func TestClearTwice(t *testing.T) {
	store := New(t.TempDir())

	require.NoError(t, store.Save(&domain.Identity{ID: "u-1"}))
	require.NoError(t, store.Clear())
	assert.NoError(t, store.Clear())
}
