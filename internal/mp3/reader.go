// Package mp3 reads and writes lyric frames of ID3v2 tags in MP3 files.
package mp3

import (
	"bytes"
	gobinary "encoding/binary"
	"fmt"
	"os"
	"unicode/utf16"

	"github.com/lrcembed/lrcembed/internal/binary"
	"github.com/lrcembed/lrcembed/internal/types"
)

// ReadLyrics probes an MP3 file for an embedded lyric frame without
// mutating it.
//
// Both USLT (unsynchronized) and SYLT (synchronized) frames count as
// present; the returned text comes from the USLT frame. A valid MP3 with
// no ID3v2 tag at all is Absent, which is the common case for fresh rips.
func ReadLyrics(path string) types.TagState {
	f, err := os.Open(path)
	if err != nil {
		return types.Unreadable(err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return types.Unreadable(err)
	}
	size := stat.Size()

	sr := binary.NewSafeReader(f, size, path)

	header := make([]byte, 10)
	if err := sr.ReadAt(header, 0, "ID3v2 header"); err != nil {
		return types.Unreadable(&types.CorruptedFileError{
			Path:   path,
			Offset: 0,
			Reason: fmt.Sprintf("file too small for a tag header: %v", err),
		})
	}

	if string(header[0:3]) != "ID3" {
		// No tag. An MPEG frame sync means a valid but untagged file.
		if header[0] == 0xFF && (header[1]&0xE0) == 0xE0 {
			return types.Absent()
		}
		return types.Unreadable(&types.CorruptedFileError{
			Path:   path,
			Offset: 0,
			Reason: "neither ID3v2 tag nor MPEG frame sync",
		})
	}

	version := header[3]
	if version != 3 && version != 4 {
		return types.Unreadable(&types.UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("unsupported ID3v2 version: 2.%d", version),
		})
	}
	flags := header[5]
	tagSize := decodeSynchsafe(header[6:10])

	offset := int64(10)
	tagEnd := int64(10 + tagSize)
	if tagEnd > size {
		return types.Unreadable(&types.CorruptedFileError{
			Path:   path,
			Offset: 0,
			Reason: "tag size exceeds file size",
		})
	}

	// Skip the extended header when present.
	if flags&0x40 != 0 {
		extBuf := make([]byte, 4)
		if err := sr.ReadAt(extBuf, offset, "extended header size"); err != nil {
			return types.Unreadable(err)
		}
		if version == 4 {
			offset += int64(decodeSynchsafe(extBuf))
		} else {
			offset += int64(gobinary.BigEndian.Uint32(extBuf)) + 4
		}
	}

	for offset+10 <= tagEnd {
		frameHeader := make([]byte, 10)
		if err := sr.ReadAt(frameHeader, offset, "frame header"); err != nil {
			break
		}

		// Null bytes mark the start of padding.
		if frameHeader[0] == 0 {
			break
		}

		frameID := string(frameHeader[0:4])
		var frameSize uint32
		if version == 4 {
			frameSize = decodeSynchsafe(frameHeader[4:8])
		} else {
			frameSize = gobinary.BigEndian.Uint32(frameHeader[4:8])
		}
		if offset+10+int64(frameSize) > tagEnd {
			return types.Unreadable(&types.CorruptedFileError{
				Path:   path,
				Offset: offset,
				Reason: fmt.Sprintf("frame %s overruns tag", frameID),
			})
		}

		switch frameID {
		case "USLT":
			frameData := make([]byte, frameSize)
			if err := sr.ReadAt(frameData, offset+10, "USLT frame data"); err != nil {
				return types.Unreadable(err)
			}
			return types.Present(decodeLyricFrame(frameData))
		case "SYLT":
			// Synchronized lyrics carry binary timestamps; presence is all
			// the embedding decision needs.
			return types.Present("")
		}

		offset += 10 + int64(frameSize)
	}

	return types.Absent()
}

// decodeLyricFrame extracts the lyric text from a USLT frame body:
// [encoding][language(3)][descriptor\0][text].
func decodeLyricFrame(data []byte) string {
	if len(data) < 4 {
		return ""
	}

	encoding := data[0]
	body := data[4:] // after encoding byte and 3-byte language code

	nullIdx := findNullTerminator(body, encoding)
	if nullIdx < 0 {
		return decodeText(body, encoding)
	}
	return decodeText(body[nullIdx+terminatorSize(encoding):], encoding)
}

// decodeSynchsafe decodes a synchsafe integer (7 bits per byte).
func decodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// decodeText decodes text based on the ID3v2 encoding byte.
func decodeText(data []byte, encoding byte) string {
	if len(data) == 0 {
		return ""
	}

	switch encoding {
	case 0: // ISO-8859-1
		return string(data)
	case 1: // UTF-16 with BOM
		return decodeUTF16(data)
	case 2: // UTF-16BE (ID3v2.4)
		return decodeUTF16BE(data)
	case 3: // UTF-8 (ID3v2.4)
		return string(data)
	default:
		return string(data)
	}
}

// decodeUTF16 decodes UTF-16 with a byte order mark.
func decodeUTF16(data []byte) string {
	if len(data) < 2 {
		return ""
	}

	if data[0] == 0xFF && data[1] == 0xFE {
		return decodeUTF16LE(data[2:])
	}
	if data[0] == 0xFE && data[1] == 0xFF {
		return decodeUTF16BE(data[2:])
	}

	// No BOM - assume big-endian
	return decodeUTF16BE(data)
}

func decodeUTF16LE(data []byte) string {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}

	u16 := make([]uint16, len(data)/2)
	for i := range u16 {
		u16[i] = uint16(data[i*2]) | uint16(data[i*2+1])<<8
	}

	return string(utf16.Decode(u16))
}

func decodeUTF16BE(data []byte) string {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}

	u16 := make([]uint16, len(data)/2)
	for i := range u16 {
		u16[i] = uint16(data[i*2])<<8 | uint16(data[i*2+1])
	}

	return string(utf16.Decode(u16))
}

// findNullTerminator finds the null terminator based on the encoding.
func findNullTerminator(data []byte, encoding byte) int {
	switch encoding {
	case 1, 2: // UTF-16 (double-byte null)
		for i := 0; i < len(data)-1; i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return i
			}
		}
		return -1
	default: // ISO-8859-1, UTF-8 (single-byte null)
		return bytes.IndexByte(data, 0)
	}
}

// terminatorSize returns the size of the null terminator for the encoding.
func terminatorSize(encoding byte) int {
	switch encoding {
	case 1, 2: // UTF-16
		return 2
	default: // ISO-8859-1, UTF-8
		return 1
	}
}
