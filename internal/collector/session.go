package collector

import "jobharvest/pkg/models"

// Session is the process-wide mutable state for one crawl invocation: the
// set of already-seen canonical URLs, the recorded rows in discovery order
// and the hard row cap. It is touched only by the single sequential crawl
// flow, so no locking is needed.
type Session struct {
	seenURLs   map[string]struct{}
	rows       []models.JobRecord
	totalLimit int
}

// NewSession creates a fresh session with the given global row limit.
func NewSession(totalLimit int) *Session {
	return &Session{
		seenURLs:   make(map[string]struct{}),
		totalLimit: totalLimit,
	}
}

// ShouldProcess reports whether the canonical URL has not been seen this
// run, marking it seen as a side effect so duplicates across pages and
// terms collapse to one record.
func (s *Session) ShouldProcess(url string) bool {
	if _, seen := s.seenURLs[url]; seen {
		return false
	}
	s.seenURLs[url] = struct{}{}
	return true
}

// HasBudget reports whether another row may still be recorded.
func (s *Session) HasBudget() bool {
	return len(s.rows) < s.totalLimit
}

// Record appends a row. Callers must check HasBudget first; the pair acts
// as one unit per candidate.
func (s *Session) Record(row models.JobRecord) {
	s.rows = append(s.rows, row)
}

// Rows returns the recorded rows in discovery order.
func (s *Session) Rows() []models.JobRecord {
	return s.rows
}

// Count returns the number of recorded rows.
func (s *Session) Count() int {
	return len(s.rows)
}
