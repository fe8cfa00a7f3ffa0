// Package lrc locates and manages sidecar .lrc lyric files.
package lrc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FailedSuffix is appended to a sidecar that could not be embedded, so a
// later run can retry it and nothing is silently lost.
const FailedSuffix = ".failed"

// Payload is the lyric text loaded from a sidecar file, paired with the
// sidecar's path so the file can be discarded or marked after embedding.
type Payload struct {
	Text string
	Path string
}

// SidecarPath returns the expected .lrc path for an audio file: the same
// directory and stem with the extension swapped.
func SidecarPath(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return strings.TrimSuffix(audioPath, ext) + ".lrc"
}

// Load reads the sidecar .lrc next to audioPath. A missing sidecar
// returns (nil, nil); it is the caller's signal to skip the file.
func Load(audioPath string) (*Payload, error) {
	path := SidecarPath(audioPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sidecar %s: %w", path, err)
	}
	return &Payload{Text: string(data), Path: path}, nil
}

// Discard deletes the sidecar file. Called only after a verified
// successful embed.
func (p *Payload) Discard() error {
	if err := os.Remove(p.Path); err != nil {
		return fmt.Errorf("remove sidecar %s: %w", p.Path, err)
	}
	return nil
}

// MarkFailed renames the sidecar to <name>.lrc.failed. The text is kept
// on disk; a failed embed never destroys the source lyrics.
func (p *Payload) MarkFailed() error {
	failed := p.Path + FailedSuffix
	if err := os.Rename(p.Path, failed); err != nil {
		return fmt.Errorf("mark sidecar failed %s: %w", p.Path, err)
	}
	return nil
}
