package lrcembed

import (
	"github.com/lrcembed/lrcembed/internal/types"
)

// Error types re-exported from internal/types.
type (
	// UnsupportedFormatError reports a file outside the supported formats.
	UnsupportedFormatError = types.UnsupportedFormatError
	// CorruptedFileError reports an invalid container structure.
	CorruptedFileError = types.CorruptedFileError
	// TagReadError reports metadata that exists but cannot be parsed.
	TagReadError = types.TagReadError
	// WriteError reports a failed tag write; the original file is intact.
	WriteError = types.WriteError
	// WriteErrorKind distinguishes write failure modes.
	WriteErrorKind = types.WriteErrorKind
)

// Write failure kinds.
const (
	WriteIO         = types.WriteIO
	WritePermission = types.WritePermission
	WriteCorrupt    = types.WriteCorrupt
)
