package m4a

import (
	"errors"
	"fmt"
	"os"

	"github.com/lrcembed/lrcembed/internal/binary"
	"github.com/lrcembed/lrcembed/internal/types"
)

// ReadLyrics probes an M4A file for an embedded lyric atom without
// mutating it.
//
// The probe walks moov > udta > meta > ilst looking for the iTunes lyric
// atom. A file missing any link of that chain is Absent; a file whose
// atom tree cannot be walked is Unreadable.
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

	moov, err := findAtom(sr, 0, size, "moov")
	if err != nil {
		if errors.Is(err, errAtomNotFound) {
			err = &types.CorruptedFileError{
				Path:   path,
				Reason: "no moov atom",
			}
		}
		return types.Unreadable(err)
	}

	// Each link below moov is optional; a missing one means no lyrics.
	offset, end := moov.DataOffset(), moov.End()
	udta, err := findAtom(sr, offset, end, "udta")
	if err != nil {
		return absentOrUnreadable(err)
	}

	meta, err := findAtom(sr, udta.DataOffset(), udta.End(), "meta")
	if err != nil {
		return absentOrUnreadable(err)
	}

	// The meta atom is a full box: 4 bytes of version and flags precede
	// its children.
	ilst, err := findAtom(sr, meta.DataOffset()+4, meta.End(), "ilst")
	if err != nil {
		return absentOrUnreadable(err)
	}

	lyr, err := findAtom(sr, ilst.DataOffset(), ilst.End(), lyricAtom)
	if err != nil {
		return absentOrUnreadable(err)
	}

	text, err := readLyricData(sr, lyr)
	if err != nil {
		return types.Unreadable(err)
	}
	return types.Present(text)
}

// readLyricData extracts the text from the data atom inside a lyric atom.
// The data payload starts with 4 bytes of version and flags and 4
// reserved bytes.
func readLyricData(sr *binary.SafeReader, lyr *atom) (string, error) {
	data, err := findAtom(sr, lyr.DataOffset(), lyr.End(), "data")
	if err != nil {
		if errors.Is(err, errAtomNotFound) {
			return "", &types.CorruptedFileError{
				Path:   sr.Path(),
				Offset: lyr.Offset,
				Reason: "lyric atom has no data atom",
			}
		}
		return "", err
	}

	start := data.DataOffset() + 8
	length := data.End() - start
	if length < 0 {
		return "", &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: data.Offset,
			Reason: "data atom too small for its header",
		}
	}
	if length == 0 {
		// An empty text payload may end exactly at EOF.
		return "", nil
	}

	buf := make([]byte, length)
	if err := sr.ReadAt(buf, start, fmt.Sprintf("%q data payload", lyricAtom)); err != nil {
		return "", err
	}
	return string(buf), nil
}

// absentOrUnreadable maps a missing metadata atom to Absent and any
// structural failure to Unreadable.
func absentOrUnreadable(err error) types.TagState {
	if errors.Is(err, errAtomNotFound) {
		return types.Absent()
	}
	return types.Unreadable(err)
}
