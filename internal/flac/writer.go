package flac

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"

	"github.com/lrcembed/lrcembed/internal/types"
)

// WriteLyrics sets the LYRICS field of a FLAC file to text, replacing any
// existing lyric entries. All other metadata blocks (pictures, padding,
// other Vorbis fields) and the audio frame stream are preserved. A Vorbis
// comment block is created when the file has none.
//
// The rewrite is staged in a temp file in the same directory and renamed
// over the original, so a failure mid-write leaves the original intact.
func WriteLyrics(path, text string) error {
	f, err := parseFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return types.ClassifyWriteError(path, err)
		}
		return types.ClassifyWriteError(path, &types.CorruptedFileError{
			Path:   path,
			Reason: fmt.Sprintf("parse FLAC container: %v", err),
		})
	}

	cmts, idx, err := findVorbisComment(f)
	if err != nil {
		return types.ClassifyWriteError(path, &types.CorruptedFileError{
			Path:   path,
			Reason: fmt.Sprintf("parse Vorbis comment block: %v", err),
		})
	}
	if cmts == nil {
		cmts = flacvorbis.New()
	}

	// Full replacement: strip any existing lyric entries first.
	cmts.Comments = dropLyricComments(cmts.Comments)
	if err := cmts.Add("LYRICS", text); err != nil {
		return types.ClassifyWriteError(path, err)
	}

	block := cmts.Marshal()
	if idx >= 0 {
		f.Meta[idx] = &block
	} else {
		f.Meta = append(f.Meta, &block)
	}

	return types.ClassifyWriteError(path, saveAtomic(f, path))
}

// parseFile guards goflac.ParseFile, which panics instead of returning an
// error when the stream is truncated right after the metadata blocks.
func parseFile(path string) (f *goflac.File, err error) {
	defer func() {
		if r := recover(); r != nil {
			f = nil
			err = fmt.Errorf("parse FLAC stream: %v", r)
		}
	}()
	return goflac.ParseFile(path)
}

// findVorbisComment returns the parsed Vorbis comment block and its index
// in the metadata list, or (nil, -1) when the file has none.
func findVorbisComment(f *goflac.File) (*flacvorbis.MetaDataBlockVorbisComment, int, error) {
	for i, m := range f.Meta {
		if m.Type != goflac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*m)
		if err != nil {
			return nil, -1, err
		}
		return cmts, i, nil
	}
	return nil, -1, nil
}

// dropLyricComments filters out existing lyric entries from a raw
// "KEY=VALUE" comment list.
func dropLyricComments(comments []string) []string {
	kept := comments[:0]
	for _, c := range comments {
		if _, isLyric := matchLyricComment(c); isLyric {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// saveAtomic writes the FLAC container to a temp file and renames it over
// the original path.
func saveAtomic(f *goflac.File, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lrcembed-*.flac")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := f.Save(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp to original: %w", err)
	}

	return nil
}
