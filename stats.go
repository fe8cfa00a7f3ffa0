package lrcembed

import (
	"sync"
)

// Stats aggregates Results across a batch. Safe for concurrent Record
// calls from a worker pool. The zero value is ready to use.
type Stats struct {
	mu          sync.Mutex
	embedded    int
	skipped     int
	failed      int
	failedPaths []string
}

// Record folds one Result into the totals.
func (s *Stats) Record(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Outcome {
	case OutcomeEmbedded:
		s.embedded++
	case OutcomeSkipped:
		s.skipped++
	case OutcomeFailed:
		s.failed++
		s.failedPaths = append(s.failedPaths, r.Path)
	}
}

// Embedded returns the number of successful embeds.
func (s *Stats) Embedded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.embedded
}

// Skipped returns the number of skipped files.
func (s *Stats) Skipped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

// Failed returns the number of failed files.
func (s *Stats) Failed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Total returns the number of recorded results.
func (s *Stats) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.embedded + s.skipped + s.failed
}

// FailedPaths returns a copy of the paths that failed, in record order.
func (s *Stats) FailedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.failedPaths))
	copy(out, s.failedPaths)
	return out
}

// SuccessRate returns embedded files as a fraction of attempted files
// (embedded plus failed). Skips do not count against it. Returns 1 when
// nothing was attempted.
func (s *Stats) SuccessRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempted := s.embedded + s.failed
	if attempted == 0 {
		return 1
	}
	return float64(s.embedded) / float64(attempted)
}
