package runner

import "sync/atomic"

// Progress holds live sweep counters. It is written by the runner and may be
// read from other goroutines.
type Progress struct {
	total     atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
	skipped   atomic.Int64
	filtered  atomic.Int64
}

// ProgressSnapshot is a point-in-time copy of Progress.
type ProgressSnapshot struct {
	Total     int64 `json:"total"`
	Done      int64 `json:"done"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
	Skipped   int64 `json:"skipped"`
	Filtered  int64 `json:"filtered"`
}

func (p *Progress) reset(total int) {
	p.total.Store(int64(total))
	p.succeeded.Store(0)
	p.failed.Store(0)
	p.skipped.Store(0)
	p.filtered.Store(0)
}

func (p *Progress) record(s Status) {
	switch s {
	case StatusSucceeded:
		p.succeeded.Add(1)
	case StatusFailed:
		p.failed.Add(1)
	case StatusSkipped:
		p.skipped.Add(1)
	case StatusFiltered:
		p.filtered.Add(1)
	}
}

// Snapshot returns the current counters.
func (p *Progress) Snapshot() ProgressSnapshot {
	s := ProgressSnapshot{
		Total:     p.total.Load(),
		Succeeded: p.succeeded.Load(),
		Failed:    p.failed.Load(),
		Skipped:   p.skipped.Load(),
		Filtered:  p.filtered.Load(),
	}
	s.Done = s.Succeeded + s.Failed + s.Skipped + s.Filtered
	return s
}
