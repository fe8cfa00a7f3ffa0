// Package flac reads and writes the LYRICS field of FLAC Vorbis comment
// blocks.
package flac

import (
	"fmt"
	"os"
	"strings"

	"github.com/lrcembed/lrcembed/internal/binary"
	"github.com/lrcembed/lrcembed/internal/types"
)

// Metadata block types
const (
	blockTypeStreamInfo    = 0
	blockTypePadding       = 1
	blockTypeVorbisComment = 4
	blockTypePicture       = 6
)

// Comment keys treated as the lyric field. UNSYNCEDLYRICS is a common
// alias written by foobar2000 and several taggers.
var lyricKeys = []string{"LYRICS", "UNSYNCEDLYRICS"}

// ReadLyrics probes a FLAC file for an embedded lyric field without
// mutating it.
//
// A file with no Vorbis comment block, or one whose comments carry no
// lyric key, is Absent. Invalid magic bytes or a truncated block
// structure make the file Unreadable.
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

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "FLAC magic bytes"); err != nil {
		return types.Unreadable(err)
	}
	if string(magic) != "fLaC" {
		return types.Unreadable(&types.CorruptedFileError{
			Path:   path,
			Offset: 0,
			Reason: "invalid FLAC magic bytes",
		})
	}

	// Walk metadata blocks after the magic.
	offset := int64(4)
	for offset < size {
		header, err := binary.Read[uint32](sr, offset, "metadata block header")
		if err != nil {
			return types.Unreadable(&types.CorruptedFileError{
				Path:   path,
				Offset: offset,
				Reason: fmt.Sprintf("truncated metadata block header: %v", err),
			})
		}

		isLast := (header >> 31) == 1
		blockType := uint8((header >> 24) & 0x7F)
		blockLength := int64(header & 0x00FFFFFF)
		offset += 4

		if offset+blockLength > size {
			return types.Unreadable(&types.CorruptedFileError{
				Path:   path,
				Offset: offset,
				Reason: "metadata block overruns file",
			})
		}

		if blockType == blockTypeVorbisComment {
			text, found, err := scanVorbisComment(sr, offset, blockLength)
			if err != nil {
				return types.Unreadable(err)
			}
			if found {
				return types.Present(text)
			}
			return types.Absent()
		}

		offset += blockLength
		if isLast {
			break
		}
	}

	return types.Absent()
}

// scanVorbisComment walks a VORBIS_COMMENT block looking for a lyric key.
func scanVorbisComment(sr *binary.SafeReader, offset, blockLength int64) (string, bool, error) {
	end := offset + blockLength

	// Vendor string length and the count that follows are little-endian.
	vendorLength, err := binary.ReadLE[uint32](sr, offset, "vendor string length")
	if err != nil {
		return "", false, err
	}
	offset += 4 + int64(vendorLength)

	numComments, err := binary.ReadLE[uint32](sr, offset, "number of comments")
	if err != nil {
		return "", false, err
	}
	offset += 4

	for i := uint32(0); i < numComments && offset < end; i++ {
		commentLength, err := binary.ReadLE[uint32](sr, offset, "comment length")
		if err != nil {
			return "", false, fmt.Errorf("read comment %d length: %w", i, err)
		}
		offset += 4

		commentData := make([]byte, commentLength)
		if err := sr.ReadAt(commentData, offset, fmt.Sprintf("comment %d", i)); err != nil {
			return "", false, fmt.Errorf("read comment %d: %w", i, err)
		}
		offset += int64(commentLength)

		if text, ok := matchLyricComment(string(commentData)); ok {
			return text, true, nil
		}
	}

	return "", false, nil
}

// matchLyricComment parses a "KEY=VALUE" comment and reports whether the
// key is one of the lyric keys. Vorbis comment keys are case-insensitive.
func matchLyricComment(comment string) (string, bool) {
	eq := strings.IndexByte(comment, '=')
	if eq < 0 {
		return "", false
	}
	key := comment[:eq]
	for _, want := range lyricKeys {
		if strings.EqualFold(key, want) {
			return comment[eq+1:], true
		}
	}
	return "", false
}
