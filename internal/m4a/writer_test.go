package m4a

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/lrcembed/lrcembed/internal/types"
)

// buildWritableM4A assembles a container with the full box tree a tag
// rewrite walks: mdat ahead of moov, a trak chain down to an empty stco,
// and udta > meta > ilst for the tags.
func buildWritableM4A(ilstChildren ...[]byte) []byte {
	data := ftypAtom()
	data = append(data, atomBytes("mdat")...)
	trak := atomBytes("trak",
		atomBytes("mdia",
			atomBytes("minf",
				atomBytes("stbl",
					atomBytes("stco", []byte{0, 0, 0, 0, 0, 0, 0, 0})))))
	moov := atomBytes("moov",
		trak,
		atomBytes("udta",
			metaAtom(
				atomBytes("ilst", ilstChildren...))))
	return append(data, moov...)
}

func TestWriteLyricsRoundTrip(t *testing.T) {
	path := writeTestFile(t, buildWritableM4A(atomBytes("\xA9nam", dataAtom("Song"))))

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

	// Other ilst entries survive the rewrite.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("Song")) {
		t.Error("title atom lost during rewrite")
	}
}

func TestWriteLyricsReplacesExisting(t *testing.T) {
	path := writeTestFile(t, buildWritableM4A(
		atomBytes("\xA9nam", dataAtom("Song")),
		atomBytes(lyricAtom, dataAtom("stale text")),
	))

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
		t.Error("old lyric atom survived the replacement")
	}
	if !bytes.Contains(data, []byte("Song")) {
		t.Error("title atom lost during replacement")
	}
}

func TestWriteLyricsMissingRequiredBoxes(t *testing.T) {
	// The container opens fine but lacks mdat and the trak chain, so the
	// rewrite must fail as corrupt without touching the file.
	path := writeTestFile(t, buildM4A(atomBytes("\xA9nam", dataAtom("Song"))))
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	writeErr := WriteLyrics(path, "text")
	if writeErr == nil {
		t.Fatal("expected an error for a container missing required boxes")
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
	if !bytes.Equal(before, after) {
		t.Error("failed write modified the original file")
	}
}

func TestWriteLyricsCorruptFile(t *testing.T) {
	path := writeTestFile(t, []byte("definitely not an mp4 container"))
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

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("failed write modified the original file")
	}
}

func TestWriteLyricsMissingFile(t *testing.T) {
	err := WriteLyrics(t.TempDir()+"/nope.m4a", "text")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}

	var we *types.WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected *types.WriteError, got %T", err)
	}
}
