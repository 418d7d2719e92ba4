package tempdir

import "errors"

var (
	// ErrInvalidPath is returned by Path when the subfolder tries to escape the root.
	ErrInvalidPath = errors.New("subfolder must not contain \"..\"")

	// ErrCreation wraps any failure to create the temporary directory.
	ErrCreation = errors.New("failed to create temporary directory")

	// ErrRemoval wraps any failure during recursive removal.
	ErrRemoval = errors.New("failed to remove temporary directory")
)
