// Package tempdir provides uniquely named temporary directories whose
// lifetime is bound to a Handle.
//
// A Handle creates its directory eagerly in New and removes the whole tree
// in Close. Go has no destructors, so Close must always be called; a handle
// that is never closed leaks its directory on disk. Prefer With, which
// closes the handle on every exit path including panics.
package tempdir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/op/go-logging"
	"github.com/spf13/afero"
)

const (
	baseDirMode = 0o777
	rootDirMode = 0o700

	separators = "/" + string(filepath.Separator)
)

// Handle owns a single temporary directory tree.
type Handle struct {
	name   string
	subdir string
	root   string

	fs     afero.Fs
	logger *logging.Logger

	closeOnce sync.Once
}

// New derives a unique directory name from the name hint and creates the
// directory under the system temporary directory.
func New(name string, opts ...Option) (*Handle, error) {
	o := newOptions(opts)

	h := &Handle{
		name:   name,
		subdir: DeriveSubdir(name, o.clock.Now()),
		fs:     o.fs,
		logger: o.logger,
	}

	root, err := allocateRoot(o.fs, o.tempBase, h.subdir)
	if err != nil {
		return nil, err
	}
	h.root = root

	h.logger.Debugf("===> Created temporary directory [%s]", root)

	return h, nil
}

// With creates a handle, passes it to fn and closes it once fn returns or panics.
// Errors from fn and from removal are joined.
func With(name string, fn func(*Handle) error, opts ...Option) (err error) {
	h, err := New(name, opts...)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := h.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	return fn(h)
}

// Name returns the hint the handle was created with.
func (h *Handle) Name() string {
	return h.name
}

// Subdir returns the derived directory token.
func (h *Handle) Subdir() string {
	return h.subdir
}

// Root returns the absolute path of the temporary directory.
func (h *Handle) Root() string {
	return h.root
}

// Path returns the absolute path of subfolder inside the root.
//
// Leading and trailing separators are stripped. Any ".." in subfolder is
// rejected with ErrInvalidPath; this is a substring check, not a full
// canonicalisation. Path does no I/O and does not check that the target exists.
func (h *Handle) Path(subfolder string) (string, error) {
	subfolder = strings.Trim(subfolder, separators)

	if strings.Contains(subfolder, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, subfolder)
	}

	if subfolder == "" {
		return h.root, nil
	}

	return h.root + string(filepath.Separator) + subfolder, nil
}

// Close removes the directory tree. Only the first call does any work.
// A root that no longer exists is not reported as an error.
func (h *Handle) Close() error {
	var err error
	h.closeOnce.Do(func() {
		err = h.destroy()
	})
	return err
}

func (h *Handle) destroy() error {
	err := RemoveRecursiveFs(h.fs, h.root)
	if err == nil {
		h.logger.Debugf("===> Removed temporary directory [%s]", h.root)
		return nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		if exists, statErr := afero.Exists(h.fs, h.root); statErr == nil && !exists {
			h.logger.Debugf("Temporary directory [%s] was already removed", h.root)
			return nil
		}
	}

	h.logger.Errorf("Failed to remove temporary directory %s: %v", h.root, err)
	return err
}

// allocateRoot creates the first free directory among base/subdir,
// base/subdir_1, base/subdir_2, ... and returns its path.
func allocateRoot(fsys afero.Fs, base, subdir string) (string, error) {
	base, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCreation, err)
	}

	if err := ensureBase(fsys, base); err != nil {
		return "", fmt.Errorf("%w: %w", ErrCreation, err)
	}

	candidate := base + string(filepath.Separator) + subdir

	for n := 0; ; n++ {
		path := candidate
		if n > 0 {
			path = fmt.Sprintf("%s_%d", candidate, n)
		}

		exists, err := afero.Exists(fsys, path)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrCreation, err)
		}
		if exists {
			continue
		}

		// Mkdir is exclusive, so losing a race to another process surfaces
		// as ErrExist and the next suffix is tried.
		err = fsys.Mkdir(path, rootDirMode)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %w", ErrCreation, err)
		}
	}
}

func ensureBase(fsys afero.Fs, base string) error {
	exists, err := afero.DirExists(fsys, base)
	if err != nil || exists {
		return err
	}
	return fsys.MkdirAll(base, baseDirMode)
}
