package diskv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state", "kv")

	store, err := NewStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.BasePath())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_SetGetRemove(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.Get(domain.KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(domain.KeyTheme, "dark"))
	val, ok, err := store.Get(domain.KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", val)

	require.NoError(t, store.Set(domain.KeyTheme, "light"))
	val, _, _ = store.Get(domain.KeyTheme)
	assert.Equal(t, "light", val)

	require.NoError(t, store.Remove(domain.KeyTheme))
	require.NoError(t, store.Remove(domain.KeyTheme))
	_, ok, err = store.Get(domain.KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_KeysWithUnsafeCharacters(t *testing.T) {
	store := newTestStore(t)
	keys := []string{"autosave_form_x1", "autosave_../etc/passwd", "autosave_a b/c"}
	for _, k := range keys {
		require.NoError(t, store.Set(k, "{}"))
	}
	require.NoError(t, store.Set(domain.KeySidebarCollapsed, "true"))

	got, err := store.Keys(domain.AutosavePrefix)

	require.NoError(t, err)
	assert.Equal(t, []string{"autosave_../etc/passwd", "autosave_a b/c", "autosave_form_x1"}, got)

	entries, err := os.ReadDir(store.BasePath())
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestStore_KeysIgnoresForeignFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(domain.KeyTheme, "dark"))
	require.NoError(t, os.WriteFile(filepath.Join(store.BasePath(), "notes.txt!"), []byte("x"), 0o600))

	keys, err := store.Keys("")

	require.NoError(t, err)
	assert.Equal(t, []string{domain.KeyTheme}, keys)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("autosave_new-item", `{"name":"Hex bolt"}`))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	val, ok, err := second.Get("autosave_new-item")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"Hex bolt"}`, val)
}

func TestStore_Closed(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Close())

	_, _, err := store.Get(domain.KeyTheme)
	assert.ErrorIs(t, err, domain.ErrStoreClosed)
	assert.ErrorIs(t, store.Set(domain.KeyTheme, "dark"), domain.ErrStoreClosed)
	assert.ErrorIs(t, store.Remove(domain.KeyTheme), domain.ErrStoreClosed)
	_, err = store.Keys("")
	assert.ErrorIs(t, err, domain.ErrStoreClosed)
}
