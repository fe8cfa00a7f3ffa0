package types

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// UnsupportedFormatError is returned when a file is not one of the
// supported container formats.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when the container structure is invalid.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// TagReadError is returned when a file exists but its metadata container
// cannot be parsed.
type TagReadError struct {
	Path string
	Err  error
}

func (e *TagReadError) Error() string {
	return fmt.Sprintf("%s: read tags: %v", e.Path, e.Err)
}

func (e *TagReadError) Unwrap() error {
	return e.Err
}

// WriteErrorKind distinguishes the failure modes of a tag write.
type WriteErrorKind int

const (
	// WriteIO is a transient I/O failure during the write.
	WriteIO WriteErrorKind = iota
	// WritePermission means the file is not writable.
	WritePermission
	// WriteCorrupt means the container structure is invalid for safe editing.
	WriteCorrupt
)

// String returns a short name for the kind.
func (k WriteErrorKind) String() string {
	switch k {
	case WritePermission:
		return "permission"
	case WriteCorrupt:
		return "corrupt"
	default:
		return "io"
	}
}

// WriteError is returned when a tag writer fails. The original audio file
// is guaranteed untouched: writers stage changes in a temp file and only
// rename it over the original on success.
type WriteError struct {
	Path string
	Kind WriteErrorKind
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: write tags (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ClassifyWriteError wraps err in a WriteError with the appropriate kind.
//
// Permission and file-lock failures map to WritePermission, structural
// parse failures to WriteCorrupt, everything else to WriteIO. A nil err
// returns nil.
func ClassifyWriteError(path string, err error) error {
	if err == nil {
		return nil
	}

	var we *WriteError
	if errors.As(err, &we) {
		return err
	}

	kind := WriteIO
	var corrupted *CorruptedFileError
	var unsupported *UnsupportedFormatError
	switch {
	case os.IsPermission(err), errors.Is(err, fs.ErrPermission):
		kind = WritePermission
	case errors.As(err, &corrupted), errors.As(err, &unsupported):
		kind = WriteCorrupt
	}

	return &WriteError{Path: path, Kind: kind, Err: err}
}
