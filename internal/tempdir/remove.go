package tempdir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const ownerAccess = 0o700

// RemoveRecursive deletes path and everything below it on the OS filesystem,
// the equivalent of `rm -r`. See RemoveRecursiveFs.
func RemoveRecursive(path string) error {
	return RemoveRecursiveFs(afero.NewOsFs(), path)
}

// RemoveRecursiveFs deletes path on fsys. Files and symbolic links are
// unlinked directly; directories are emptied children first and then
// removed. Links are never followed, so link targets outside the tree are
// left alone.
//
// Directories missing owner rwx bits are chmodded before they are read, so
// restrictive modes set by the owner do not block removal. On failure the
// tree may be partially removed.
func RemoveRecursiveFs(fsys afero.Fs, path string) error {
	info, err := lstat(fsys, path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRemoval, err)
	}

	if !info.IsDir() {
		if err := fsys.Remove(path); err != nil {
			return fmt.Errorf("%w: %w", ErrRemoval, err)
		}
		return nil
	}

	if err := removeTree(fsys, path, info); err != nil {
		return fmt.Errorf("%w: %w", ErrRemoval, err)
	}

	return nil
}

func removeTree(fsys afero.Fs, dir string, info os.FileInfo) error {
	if err := ensureOwnerAccess(fsys, dir, info); err != nil {
		return err
	}

	// Readdir reports entries as Lstat would, so a link to a directory is
	// not a directory here.
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if err := removeTree(fsys, child, entry); err != nil {
				return err
			}
			continue
		}

		if err := fsys.Remove(child); err != nil {
			return err
		}
	}

	return fsys.Remove(dir)
}

func ensureOwnerAccess(fsys afero.Fs, dir string, info os.FileInfo) error {
	perm := info.Mode().Perm()
	if perm&ownerAccess == ownerAccess {
		return nil
	}
	return fsys.Chmod(dir, perm|ownerAccess)
}

func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}
