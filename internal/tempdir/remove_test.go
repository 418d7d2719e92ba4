package tempdir

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveRecursiveFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("data"), 0o400))

	require.NoError(t, RemoveRecursive(file))
	assert.NoFileExists(t, file)
}

func TestRemoveRecursiveMissingPath(t *testing.T) {
	err := RemoveRecursive(filepath.Join(t.TempDir(), "missing"))

	assert.ErrorIs(t, err, ErrRemoval)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRemoveRecursiveTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tree")

	for _, dir := range []string{"a/b/c", "a/d", "e"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	for _, file := range []string{"a/b/c/1.txt", "a/b/2.txt", "a/d/3.txt", "4.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, file), []byte(file), 0o644))
	}

	require.NoError(t, RemoveRecursive(root))
	assert.NoDirExists(t, root)
}

func TestRemoveRecursiveRestrictedModes(t *testing.T) {
	root := filepath.Join(t.TempDir(), "restricted")
	nested := filepath.Join(root, "locked", "deeper")

	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "file.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readonly.txt"), nil, 0o644))

	require.NoError(t, os.Chmod(filepath.Join(root, "readonly.txt"), 0o400))
	require.NoError(t, os.Chmod(nested, 0o500))
	require.NoError(t, os.Chmod(filepath.Join(root, "locked"), 0o000))
	require.NoError(t, os.Chmod(root, 0o500))

	require.NoError(t, RemoveRecursive(root))
	assert.NoDirExists(t, root)
}

func TestRemoveRecursiveSymlinkPath(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "target")
	link := filepath.Join(base, "link")

	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "file.txt"), []byte("keep"), 0o644))
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, RemoveRecursive(link))

	_, err := os.Lstat(link)
	assert.True(t, os.IsNotExist(err))
	assert.FileExists(t, filepath.Join(target, "file.txt"))
}

func TestRemoveRecursiveFs(t *testing.T) {
	t.Run("in-memory tree", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, fsys.MkdirAll("/tmp/tree/a/b", 0o755))
		require.NoError(t, afero.WriteFile(fsys, "/tmp/tree/a/b/file.txt", []byte("data"), 0o644))
		require.NoError(t, afero.WriteFile(fsys, "/tmp/tree/top.txt", []byte("data"), 0o644))

		require.NoError(t, RemoveRecursiveFs(fsys, "/tmp/tree"))

		exists, err := afero.Exists(fsys, "/tmp/tree")
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = afero.DirExists(fsys, "/tmp")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("read-only filesystem", func(t *testing.T) {
		base := afero.NewMemMapFs()
		require.NoError(t, base.MkdirAll("/tmp/tree", 0o755))
		require.NoError(t, afero.WriteFile(base, "/tmp/tree/file.txt", []byte("data"), 0o644))

		err := RemoveRecursiveFs(afero.NewReadOnlyFs(base), "/tmp/tree")
		assert.ErrorIs(t, err, ErrRemoval)

		exists, statErr := afero.Exists(base, "/tmp/tree/file.txt")
		require.NoError(t, statErr)
		assert.True(t, exists)
	})
}
