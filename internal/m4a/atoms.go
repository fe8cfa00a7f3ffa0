// Package m4a reads and writes the lyric atom of MP4/M4A containers.
package m4a

import (
	"errors"
	"fmt"

	"github.com/lrcembed/lrcembed/internal/binary"
	"github.com/lrcembed/lrcembed/internal/types"
)

// lyricAtom is the iTunes lyric atom type, "\xA9lyr".
const lyricAtom = "\xA9lyr"

// errAtomNotFound reports a child atom missing from a well-formed parent.
// A missing atom on the metadata path means no lyrics, not a corrupt file.
var errAtomNotFound = errors.New("atom not found")

// atom is an MP4 box header.
type atom struct {
	Size     uint64 // total size including header
	Type     string // 4-character type code
	Offset   int64  // position in file
	Extended bool   // 64-bit extended size
}

// DataOffset returns the file offset where the atom's payload starts.
func (a *atom) DataOffset() int64 {
	if a.Extended {
		return a.Offset + 16
	}
	return a.Offset + 8
}

// End returns the file offset just past the atom.
func (a *atom) End() int64 {
	return a.Offset + int64(a.Size)
}

// readAtomHeader reads an atom header at the given offset. A size of 1
// means a 64-bit size follows the type code.
func readAtomHeader(sr *binary.SafeReader, offset int64) (*atom, error) {
	size32, err := binary.Read[uint32](sr, offset, "atom size")
	if err != nil {
		return nil, err
	}

	typeBytes := make([]byte, 4)
	if err := sr.ReadAt(typeBytes, offset+4, "atom type"); err != nil {
		return nil, err
	}

	a := &atom{
		Type:   string(typeBytes),
		Offset: offset,
	}

	if size32 == 1 {
		size64, err := binary.Read[uint64](sr, offset+8, "extended atom size")
		if err != nil {
			return nil, err
		}
		a.Size = size64
		a.Extended = true
	} else {
		a.Size = uint64(size32)
	}

	if a.Size < 8 {
		return nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: fmt.Sprintf("invalid atom size %d (minimum is 8)", a.Size),
		}
	}

	return a, nil
}

// findAtom scans [start, end) for the first atom of the given type.
// Returns errAtomNotFound when the range is well-formed but has no such
// atom.
func findAtom(sr *binary.SafeReader, start, end int64, atomType string) (*atom, error) {
	offset := start

	for offset+8 <= end {
		a, err := readAtomHeader(sr, offset)
		if err != nil {
			return nil, err
		}

		if a.Type == atomType {
			return a, nil
		}

		if a.End() <= offset {
			return nil, &types.CorruptedFileError{
				Path:   sr.Path(),
				Offset: offset,
				Reason: "atom does not advance",
			}
		}
		offset = a.End()
	}

	return nil, fmt.Errorf("%w: %q in [%d, %d)", errAtomNotFound, atomType, start, end)
}
