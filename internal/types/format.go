package types

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/lrcembed/lrcembed/internal/binary"
)

// Format represents the container format of an audio file.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatFLAC represents FLAC audio files.
	FormatFLAC
	// FormatMP3 represents MP3 audio files.
	FormatMP3
	// FormatM4A represents M4A/MP4 audio files.
	FormatM4A
)

// String returns the conventional name of the format.
func (f Format) String() string {
	switch f {
	case FormatFLAC:
		return "FLAC"
	case FormatMP3:
		return "MP3"
	case FormatM4A:
		return "M4A"
	default:
		return "Unknown"
	}
}

// Extensions returns the file extensions mapped to this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatFLAC:
		return []string{".flac"}
	case FormatMP3:
		return []string{".mp3"}
	case FormatM4A:
		return []string{".m4a", ".mp4"}
	default:
		return nil
	}
}

// DetectFormat classifies a path by its extension, case-insensitively.
//
// Unknown extensions return FormatUnknown; the caller's directory walk may
// contain arbitrary files, so this is not an error.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac":
		return FormatFLAC
	case ".mp3":
		return FormatMP3
	case ".m4a", ".mp4":
		return FormatM4A
	default:
		return FormatUnknown
	}
}

// Sniff determines the format by examining magic bytes.
//
// Detection is based on file signatures at the beginning of the file:
// "fLaC" for FLAC, "ID3" or an MPEG frame sync for MP3, and an ftyp atom
// with a known brand for M4A. Sniffing does not validate the full
// container structure.
func Sniff(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "file magic bytes"); err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	if string(magic) == "fLaC" {
		return FormatFLAC, nil
	}

	if string(magic[:3]) == "ID3" {
		return FormatMP3, nil
	}

	// MPEG frame sync catches MP3 files without an ID3 tag.
	if magic[0] == 0xFF && (magic[1]&0xE0) == 0xE0 {
		return FormatMP3, nil
	}

	// MP4-family files start with an ftyp atom: size, "ftyp", major brand.
	if size >= 12 {
		atomType, err := binary.Read[uint32](sr, 4, "ftyp atom type")
		if err == nil && atomType == 0x66747970 { // "ftyp"
			brand := make([]byte, 4)
			if err := sr.ReadAt(brand, 8, "major brand"); err == nil {
				switch string(brand) {
				case "M4A ", "M4B ", "mp42", "isom", "iso2":
					return FormatM4A, nil
				}
			}
			return FormatUnknown, &UnsupportedFormatError{
				Path:   path,
				Reason: "unsupported file brand",
			}
		}
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unsupported file format",
	}
}
