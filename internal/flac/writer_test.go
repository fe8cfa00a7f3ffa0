package flac

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/lrcembed/lrcembed/internal/types"
)

func TestWriteLyricsRoundTrip(t *testing.T) {
	path := writeTestFile(t, buildFLAC([]string{"ARTIST=Someone", "TITLE=Song"}, true))

	const text = "[00:12.00]first line\n[00:15.50]second line"
	if err := WriteLyrics(path, text); err != nil {
		t.Fatalf("WriteLyrics: %v", err)
	}

	state := ReadLyrics(path)
	if state.Status != types.LyricsPresent {
		t.Fatalf("status = %v after write (err: %v)", state.Status, state.Err)
	}
	if state.Lyrics != text {
		t.Errorf("lyrics = %q, want %q", state.Lyrics, text)
	}

	// Other comments survive the rewrite.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("ARTIST=Someone")) {
		t.Error("ARTIST comment lost during rewrite")
	}
}

func TestWriteLyricsReplacesExisting(t *testing.T) {
	path := writeTestFile(t, buildFLAC([]string{
		"LYRICS=stale text",
		"UNSYNCEDLYRICS=staler text",
	}, true))

	if err := WriteLyrics(path, "fresh text"); err != nil {
		t.Fatalf("WriteLyrics: %v", err)
	}

	state := ReadLyrics(path)
	if state.Status != types.LyricsPresent || state.Lyrics != "fresh text" {
		t.Fatalf("state = %+v, want fresh text", state)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("stale")) {
		t.Error("old lyric entries survived the replacement")
	}
}

func TestWriteLyricsCreatesVorbisBlock(t *testing.T) {
	path := writeTestFile(t, buildFLAC(nil, false))

	if err := WriteLyrics(path, "brand new"); err != nil {
		t.Fatalf("WriteLyrics: %v", err)
	}

	state := ReadLyrics(path)
	if state.Status != types.LyricsPresent || state.Lyrics != "brand new" {
		t.Fatalf("state = %+v", state)
	}
}

func TestWriteLyricsCorruptFile(t *testing.T) {
	path := writeTestFile(t, []byte("definitely not a flac file"))
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	writeErr := WriteLyrics(path, "text")
	if writeErr == nil {
		t.Fatal("expected an error for a corrupt file")
	}

	var we *types.WriteError
	if !errors.As(writeErr, &we) {
		t.Fatalf("expected *types.WriteError, got %T", writeErr)
	}
	if we.Kind != types.WriteCorrupt {
		t.Errorf("kind = %s, want corrupt", we.Kind)
	}

	// The original file must be untouched after a failed write.
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("failed write modified the original file")
	}
}

func TestWriteLyricsTruncatedAfterMetadata(t *testing.T) {
	// Stream ends right after the last metadata block, with no audio
	// frames. Must report a corrupt-write error, not crash.
	data := []byte("fLaC")
	data = append(data, metadataBlock(true, blockTypeStreamInfo, make([]byte, 34))...)
	path := writeTestFile(t, data)

	writeErr := WriteLyrics(path, "text")
	if writeErr == nil {
		t.Fatal("expected an error for a metadata-only stream")
	}

	var we *types.WriteError
	if !errors.As(writeErr, &we) {
		t.Fatalf("expected *types.WriteError, got %T", writeErr)
	}
	if we.Kind != types.WriteCorrupt {
		t.Errorf("kind = %s, want corrupt", we.Kind)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, after) {
		t.Error("failed write modified the original file")
	}
}

func TestDropLyricComments(t *testing.T) {
	in := []string{"ARTIST=a", "LYRICS=x", "TITLE=t", "unsyncedlyrics=y"}
	got := dropLyricComments(in)

	want := []string{"ARTIST=a", "TITLE=t"}
	if len(got) != len(want) {
		t.Fatalf("kept %d comments, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("comment %d = %q, want %q", i, got[i], want[i])
		}
	}
}
