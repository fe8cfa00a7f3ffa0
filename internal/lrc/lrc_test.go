package lrc

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSidecarPath(t *testing.T) {
	tests := []struct {
		audio string
		want  string
	}{
		{"song.flac", "song.lrc"},
		{"/music/album/01 - track.mp3", "/music/album/01 - track.lrc"},
		{"song.with.dots.m4a", "song.with.dots.lrc"},
		{"noext", "noext.lrc"},
	}

	for _, tt := range tests {
		if got := SidecarPath(tt.audio); got != tt.want {
			t.Errorf("SidecarPath(%q) = %q, want %q", tt.audio, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "song.flac")
	lrcPath := filepath.Join(dir, "song.lrc")

	const text = "[00:01.00]hello\n[00:03.50]world"
	if err := os.WriteFile(lrcPath, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(audioPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p == nil {
		t.Fatal("expected a payload")
	}
	if p.Text != text {
		t.Errorf("text = %q, want %q", p.Text, text)
	}
	if p.Path != lrcPath {
		t.Errorf("path = %q, want %q", p.Path, lrcPath)
	}
}

func TestLoadMissing(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "song.flac")

	p, err := Load(audioPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil payload, got %+v", p)
	}
}

func TestDiscard(t *testing.T) {
	dir := t.TempDir()
	lrcPath := filepath.Join(dir, "song.lrc")
	if err := os.WriteFile(lrcPath, []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(filepath.Join(dir, "song.flac"))
	if err != nil || p == nil {
		t.Fatalf("Load: %v, %v", p, err)
	}

	if err := p.Discard(); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if _, err := os.Stat(lrcPath); !os.IsNotExist(err) {
		t.Error("sidecar still exists after Discard")
	}
}

func TestMarkFailed(t *testing.T) {
	dir := t.TempDir()
	lrcPath := filepath.Join(dir, "song.lrc")
	const text = "the lyrics"
	if err := os.WriteFile(lrcPath, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(filepath.Join(dir, "song.flac"))
	if err != nil || p == nil {
		t.Fatalf("Load: %v, %v", p, err)
	}

	if err := p.MarkFailed(); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	if _, err := os.Stat(lrcPath); !os.IsNotExist(err) {
		t.Error("original sidecar still exists after MarkFailed")
	}

	// The text survives under the .failed name.
	moved, err := os.ReadFile(lrcPath + FailedSuffix)
	if err != nil {
		t.Fatalf("read failed sidecar: %v", err)
	}
	if string(moved) != text {
		t.Errorf("failed sidecar text = %q, want %q", moved, text)
	}
}
