package lrcembed

import (
	"github.com/lrcembed/lrcembed/internal/types"
)

// Format identifies a supported audio container format.
type Format = types.Format

// Supported formats.
const (
	FormatUnknown = types.FormatUnknown
	FormatFLAC    = types.FormatFLAC
	FormatMP3     = types.FormatMP3
	FormatM4A     = types.FormatM4A
)

// DetectFormat classifies a file by its extension, case-insensitively.
// Content is not inspected; use WithSniff to cross-check extensions
// against magic bytes during processing.
func DetectFormat(path string) Format {
	return types.DetectFormat(path)
}
