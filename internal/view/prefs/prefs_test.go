package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmtable/sheet-api/internal/view/prefs"
)

func newStore(t *testing.T) (*prefs.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.json")
	store, err := prefs.NewStore(&prefs.Config{Path: path})
	require.NoError(t, err)
	return store, path
}

func TestLoadMissingFile(t *testing.T) {
	store, _ := newStore(t)
	p, err := store.Load()
	require.NoError(t, err)
	assert.Zero(t, p.ActiveTemplateID)
}

func TestSaveAndLoad(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Save(&prefs.Prefs{ActiveTemplateID: 42}))

	p, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ActiveTemplateID)
}

func TestSetActiveTemplate(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.SetActiveTemplate(7))

	p, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ActiveTemplateID)

	require.NoError(t, store.SetActiveTemplate(0))
	p, err = store.Load()
	require.NoError(t, err)
	assert.Zero(t, p.ActiveTemplateID)
}

func TestCorruptFile(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.Load()
	assert.Error(t, err)
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.json")
	store, err := prefs.NewStore(&prefs.Config{Path: path})
	require.NoError(t, err)

	require.NoError(t, store.Save(&prefs.Prefs{ActiveTemplateID: 1}))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestConfigValidate(t *testing.T) {
	_, err := prefs.NewStore(&prefs.Config{})
	assert.Error(t, err)
}
