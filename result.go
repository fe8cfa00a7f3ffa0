package lrcembed

// Outcome is the terminal state of processing one audio file.
type Outcome int

const (
	// OutcomeEmbedded means the lyrics were written (or would have been,
	// under DryRun).
	OutcomeEmbedded Outcome = iota
	// OutcomeSkipped means the file was deliberately left alone.
	OutcomeSkipped
	// OutcomeFailed means an error occurred; the audio file is unchanged
	// and the sidecar was renamed to .lrc.failed.
	OutcomeFailed
)

// String returns a short name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeEmbedded:
		return "embedded"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reason explains a skip.
type Reason string

const (
	// ReasonNoLRC means no sidecar .lrc exists for the file.
	ReasonNoLRC Reason = "no matching lrc"
	// ReasonUnsupportedFormat means the extension is not a supported format.
	ReasonUnsupportedFormat Reason = "unsupported format"
	// ReasonHasLyrics means the file already carries lyrics and the policy
	// skips such files.
	ReasonHasLyrics Reason = "already has lyrics"
)

// Result reports what happened to one audio file.
type Result struct {
	Path    string
	Outcome Outcome
	// Reason is set when Outcome is OutcomeSkipped.
	Reason Reason
	// Err is set when Outcome is OutcomeFailed.
	Err error
}

func embedded(path string) Result {
	return Result{Path: path, Outcome: OutcomeEmbedded}
}

func skipped(path string, reason Reason) Result {
	return Result{Path: path, Outcome: OutcomeSkipped, Reason: reason}
}

func failed(path string, err error) Result {
	return Result{Path: path, Outcome: OutcomeFailed, Err: err}
}
