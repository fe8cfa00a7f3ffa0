// Package lrcembed embeds sidecar .lrc lyric files into the metadata of
// the matching audio files.
//
// Three container formats are supported, each through its native lyric
// field: FLAC (LYRICS Vorbis comment), MP3 (ID3v2 USLT frame) and
// M4A (iTunes lyric atom). The engine never touches audio data: writers
// stage the rewritten file in a temp file next to the original and
// rename it over on success, so a crash or failure mid-write leaves the
// original byte-identical.
//
// The sole entry point is Processor.Process, which applies one sidecar
// payload to one audio file under a Policy and returns a Result. Results
// feed a concurrency-safe Stats aggregate. Each file is processed in
// isolation: a failure marks its sidecar as .lrc.failed and never stops
// the batch.
package lrcembed
