package m4a

import (
	"errors"
	"fmt"
	"io/fs"

	mp4tag "github.com/zhaarey/go-mp4tag"

	"github.com/lrcembed/lrcembed/internal/types"
)

// WriteLyrics sets the lyric atom of an M4A file to text, replacing any
// existing lyrics. All other ilst atoms and the media data are preserved.
//
// The rewrite is staged in a temp file next to the original and renamed
// over it on success.
func WriteLyrics(path, text string) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return types.ClassifyWriteError(path, err)
		}
		return types.ClassifyWriteError(path, &types.CorruptedFileError{
			Path:   path,
			Reason: fmt.Sprintf("parse MP4 container: %v", err),
		})
	}
	defer mp4.Close()

	tags := &mp4tag.MP4Tags{Lyrics: text}
	return types.ClassifyWriteError(path, classifyMP4Error(path, mp4.Write(tags, []string{})))
}

// classifyMP4Error maps the tag library's structural errors (missing
// required boxes, bad magic, malformed chunk offsets) to corrupt-file
// errors. Anything else passes through unchanged.
func classifyMP4Error(path string, err error) error {
	if err == nil {
		return nil
	}

	var (
		boxErr   *mp4tag.ErrBoxNotPresent
		ftypErr  *mp4tag.ErrUnsupportedFtyp
		stcoErr  *mp4tag.ErrInvalidStcoSize
		magicErr *mp4tag.ErrInvalidMagic
	)
	if errors.As(err, &boxErr) || errors.As(err, &ftypErr) ||
		errors.As(err, &stcoErr) || errors.As(err, &magicErr) {
		return &types.CorruptedFileError{
			Path:   path,
			Reason: fmt.Sprintf("MP4 structure: %v", err),
		}
	}
	return err
}
