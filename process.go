package lrcembed

import (
	"context"
	"fmt"
	"os"

	dhowden "github.com/dhowden/tag"
	"go.uber.org/zap"

	"github.com/lrcembed/lrcembed/internal/flac"
	"github.com/lrcembed/lrcembed/internal/m4a"
	"github.com/lrcembed/lrcembed/internal/mp3"
	"github.com/lrcembed/lrcembed/internal/types"
)

// Policy controls how Process treats each file.
type Policy struct {
	// SkipIfPresent leaves files that already carry embedded lyrics alone.
	// When false, existing lyrics are replaced.
	SkipIfPresent bool
	// DryRun reports what would be embedded without writing anything.
	// Sidecars are left untouched regardless of DeleteLRC.
	DryRun bool
	// DeleteLRC removes the sidecar .lrc after a successful embed.
	DeleteLRC bool
}

// Processor embeds lyric payloads into audio files.
type Processor struct {
	log      *zap.Logger
	sniff    bool
	validate bool
}

// NewProcessor builds a Processor with the given options.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process embeds one sidecar payload into one audio file under the given
// policy. It never returns an error: every failure is folded into the
// Result so a batch driver can keep going. A nil payload means no sidecar
// exists and yields a skip.
//
// On a failed write, the sidecar is renamed to .lrc.failed so the text
// survives for a retry; it is never deleted on failure. Failures before
// the write (unreadable tags, a sniff mismatch) leave the sidecar at its
// original path. Cancellation via ctx fails the file without touching
// anything.
func (p *Processor) Process(ctx context.Context, audioPath string, payload *Payload, policy Policy) Result {
	if err := ctx.Err(); err != nil {
		return failed(audioPath, err)
	}

	if payload == nil {
		p.log.Debug("no sidecar", zap.String("path", audioPath))
		return skipped(audioPath, ReasonNoLRC)
	}

	format := DetectFormat(audioPath)
	if format == FormatUnknown {
		p.log.Debug("unsupported format", zap.String("path", audioPath))
		return skipped(audioPath, ReasonUnsupportedFormat)
	}

	if p.sniff {
		if err := sniffCheck(audioPath, format); err != nil {
			err = &types.TagReadError{Path: audioPath, Err: err}
			p.log.Warn("embed failed", zap.String("path", audioPath), zap.Error(err))
			return failed(audioPath, err)
		}
	}

	state := readLyrics(format, audioPath)
	if state.Status == types.LyricsUnreadable {
		err := &types.TagReadError{Path: audioPath, Err: state.Err}
		p.log.Warn("embed failed", zap.String("path", audioPath), zap.Error(err))
		return failed(audioPath, err)
	}

	if state.Status == types.LyricsPresent && policy.SkipIfPresent {
		p.log.Debug("already has lyrics", zap.String("path", audioPath))
		return skipped(audioPath, ReasonHasLyrics)
	}

	if policy.DryRun {
		p.log.Info("would embed",
			zap.String("path", audioPath),
			zap.String("format", format.String()),
			zap.Bool("replacing", state.Status == types.LyricsPresent))
		return embedded(audioPath)
	}

	if err := writeLyrics(format, audioPath, payload.Text); err != nil {
		return p.fail(audioPath, payload, err)
	}

	if p.validate {
		if err := validateWrite(audioPath, payload.Text); err != nil {
			return p.fail(audioPath, payload, err)
		}
	}

	if policy.DeleteLRC {
		if err := payload.Discard(); err != nil {
			// The embed itself succeeded; surface the leftover sidecar.
			p.log.Warn("embed succeeded but sidecar removal failed",
				zap.String("path", audioPath), zap.Error(err))
			return failed(audioPath, err)
		}
	}

	p.log.Info("embedded",
		zap.String("path", audioPath),
		zap.String("format", format.String()))
	return embedded(audioPath)
}

// fail handles a failed write: the sidecar is renamed to .lrc.failed and
// err is folded into a Result.
func (p *Processor) fail(audioPath string, payload *Payload, err error) Result {
	p.log.Warn("embed failed", zap.String("path", audioPath), zap.Error(err))
	if markErr := payload.MarkFailed(); markErr != nil {
		p.log.Warn("could not mark sidecar failed",
			zap.String("sidecar", payload.Path), zap.Error(markErr))
	}
	return failed(audioPath, err)
}

// readLyrics dispatches the read-only probe for the format.
func readLyrics(format Format, path string) types.TagState {
	switch format {
	case FormatFLAC:
		return flac.ReadLyrics(path)
	case FormatMP3:
		return mp3.ReadLyrics(path)
	case FormatM4A:
		return m4a.ReadLyrics(path)
	default:
		return types.Unreadable(&types.UnsupportedFormatError{
			Path:   path,
			Reason: "no reader for format",
		})
	}
}

// writeLyrics dispatches the writer strategy for the format.
func writeLyrics(format Format, path, text string) error {
	switch format {
	case FormatFLAC:
		return flac.WriteLyrics(path, text)
	case FormatMP3:
		return mp3.WriteLyrics(path, text)
	case FormatM4A:
		return m4a.WriteLyrics(path, text)
	default:
		return &types.UnsupportedFormatError{
			Path:   path,
			Reason: "no writer for format",
		}
	}
}

// sniffCheck compares magic bytes against the extension-detected format.
func sniffCheck(path string, want Format) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return err
	}

	got, err := types.Sniff(f, stat.Size(), path)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("content is %s but extension says %s", got, want)
	}
	return nil
}

// validateWrite re-reads the file through an independent parser and
// checks the lyrics landed.
func validateWrite(path, want string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("validation reopen: %w", err)
	}
	defer f.Close()

	m, err := dhowden.ReadFrom(f)
	if err != nil {
		return fmt.Errorf("validation parse: %w", err)
	}
	if m.Lyrics() != want {
		return fmt.Errorf("validation: lyrics missing after write")
	}
	return nil
}
