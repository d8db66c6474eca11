package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManager_OpenSave(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(nil)

	require.ErrorIs(t, mgr.Save(), ErrNoPath)

	doc, err := mgr.Open(filepath.Join(dir, "tf2"))
	require.NoError(t, err)
	require.True(t, doc.IsNew)
	require.Equal(t, filepath.Join(dir, "tf2.json"), mgr.Path())

	doc.AddAddon()
	require.NoError(t, mgr.Save())

	other := NewManager(nil)
	reopened, err := other.Open(filepath.Join(dir, "tf2.json"))
	require.NoError(t, err)
	require.False(t, reopened.IsNew)
	require.Len(t, reopened.Addons, 1)
	require.Same(t, reopened, other.Doc())
}

func TestManager_OpenFailureKeepsCurrent(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(nil)

	first, err := mgr.Open(filepath.Join(dir, "a.json"))
	require.NoError(t, err)

	bad := filepath.Join(dir, "b.json")
	require.NoError(t, os.Mkdir(bad, 0755))

	_, err = mgr.Open(bad)
	require.Error(t, err)
	require.Same(t, first, mgr.Doc())
	require.Equal(t, filepath.Join(dir, "a.json"), mgr.Path())
}
