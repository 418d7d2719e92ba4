package testutils

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/op/go-logging"
	"github.com/shini4i/tempdirectory/internal/tempdir"
)

// TempDirFixture is a tempdir.Handle scoped to a single test.
type TempDirFixture struct {
	t   testing.TB
	dir *tempdir.Handle
}

// NewTempDirFixture creates a temporary directory named after the test and
// removes it when the test finishes.
func NewTempDirFixture(t testing.TB, opts ...tempdir.Option) *TempDirFixture {
	t.Helper()

	opts = append([]tempdir.Option{tempdir.WithLogger(DiscardLogger("fixture"))}, opts...)

	dir, err := tempdir.New(t.Name(), opts...)
	if err != nil {
		t.Fatalf("Error making temp dir: %v", err)
	}

	f := &TempDirFixture{t: t, dir: dir}
	t.Cleanup(f.TearDown)

	return f
}

// DiscardLogger returns a logger for the module whose output is dropped.
func DiscardLogger(module string) *logging.Logger {
	logger := logging.MustGetLogger(module)
	backend := logging.AddModuleLevel(logging.NewLogBackend(io.Discard, "", 0))
	logger.SetBackend(backend)
	return logger
}

func (f *TempDirFixture) T() testing.TB {
	return f.t
}

func (f *TempDirFixture) Path() string {
	return f.dir.Root()
}

func (f *TempDirFixture) JoinPath(path ...string) string {
	p := []string{f.Path()}
	p = append(p, path...)
	return filepath.Join(p...)
}

func (f *TempDirFixture) WriteFile(path string, contents string) {
	fullPath := f.JoinPath(path)
	f.MkdirAll(filepath.Dir(path))
	if err := os.WriteFile(fullPath, []byte(contents), 0o644); err != nil {
		f.t.Fatal(err)
	}
}

func (f *TempDirFixture) MkdirAll(path string) {
	if err := os.MkdirAll(f.JoinPath(path), 0o755); err != nil {
		f.t.Fatal(err)
	}
}

func (f *TempDirFixture) Symlink(target, link string) {
	if err := os.Symlink(target, f.JoinPath(link)); err != nil {
		f.t.Fatal(err)
	}
}

func (f *TempDirFixture) Chmod(path string, mode os.FileMode) {
	if err := os.Chmod(f.JoinPath(path), mode); err != nil {
		f.t.Fatal(err)
	}
}

// TearDown removes the directory. It is safe to call more than once.
func (f *TempDirFixture) TearDown() {
	if err := f.dir.Close(); err != nil {
		f.t.Fatal(err)
	}
}
