package lrcembed

import (
	"github.com/lrcembed/lrcembed/internal/lrc"
)

// Payload is the lyric text loaded from a sidecar .lrc file.
type Payload = lrc.Payload

// LoadLRC reads the sidecar .lrc next to an audio file. A missing
// sidecar returns (nil, nil); Process turns a nil payload into a skip.
func LoadLRC(audioPath string) (*Payload, error) {
	return lrc.Load(audioPath)
}
