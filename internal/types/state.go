package types

// LyricStatus reports whether a file already carries an embedded lyric field.
type LyricStatus int

const (
	// LyricsAbsent means the file has no lyric field. Files with no tag
	// container at all are Absent, not an error.
	LyricsAbsent LyricStatus = iota
	// LyricsPresent means the file carries a lyric field.
	LyricsPresent
	// LyricsUnreadable means the metadata container could not be parsed.
	LyricsUnreadable
)

// TagState is the result of a read-only lyric probe. It is produced by a
// format reader and consumed immediately by the embedding decision; it is
// not retained.
type TagState struct {
	Status LyricStatus
	// Lyrics holds the existing lyric text when Status is LyricsPresent.
	Lyrics string
	// Err holds the parse failure when Status is LyricsUnreadable.
	Err error
}

// Present builds a TagState for a file that already has lyrics.
func Present(text string) TagState {
	return TagState{Status: LyricsPresent, Lyrics: text}
}

// Absent builds a TagState for a file with no lyric field.
func Absent() TagState {
	return TagState{Status: LyricsAbsent}
}

// Unreadable builds a TagState for a file whose metadata cannot be parsed.
func Unreadable(err error) TagState {
	return TagState{Status: LyricsUnreadable, Err: err}
}
