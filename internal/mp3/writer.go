package mp3

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	id3v2 "github.com/bogem/id3v2/v2"

	"github.com/lrcembed/lrcembed/internal/types"
)

// WriteLyrics sets the USLT frame of an MP3 file to text, replacing any
// existing lyric frames. The frame is written UTF-8 with an "eng" language
// code and an empty content descriptor. All other frames and the audio
// stream are preserved; a file with no ID3v2 tag gets one prepended.
func WriteLyrics(path, text string) error {
	// The tag library parses a declared tag size without checking it
	// against the file, so overruns are caught here first.
	if err := checkTagBounds(path); err != nil {
		return types.ClassifyWriteError(path, err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return types.ClassifyWriteError(path, err)
		}
		return types.ClassifyWriteError(path, &types.CorruptedFileError{
			Path:   path,
			Reason: fmt.Sprintf("parse ID3v2 tag: %v", err),
		})
	}
	defer tag.Close()

	// Full replacement: drop any existing lyric frames first.
	lyricID := tag.CommonID("Unsynchronised lyrics/text transcription")
	tag.DeleteFrames(lyricID)

	tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          id3v2.EncodingUTF8,
		Language:          "eng",
		ContentDescriptor: "",
		Lyrics:            text,
	})

	// Save stages the rewrite in a temp file in the same directory and
	// renames it over the original.
	return types.ClassifyWriteError(path, tag.Save())
}

// checkTagBounds rejects a file whose ID3v2 header declares a tag larger
// than the file itself. Files without a tag pass.
func checkTagBounds(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return err
	}

	header := make([]byte, 10)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil
	}
	if string(header[:3]) != "ID3" {
		return nil
	}

	tagEnd := int64(10 + decodeSynchsafe(header[6:10]))
	if tagEnd > stat.Size() {
		return &types.CorruptedFileError{
			Path:   path,
			Reason: "tag size exceeds file size",
		}
	}
	return nil
}
