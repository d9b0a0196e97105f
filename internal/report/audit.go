package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/specialistvlad/adaptgrid/internal/domain"
)

// AuditLog writes one line per processed pair. Evaluated pairs are rendered
// as their full parameter list, e.g. "[--test-dir, /data/x, ...]".
type AuditLog struct {
	w   io.Writer
	err error
}

// NewAuditLog returns an AuditLog writing to w.
func NewAuditLog(w io.Writer) *AuditLog {
	return &AuditLog{w: w}
}

// Params records the parameters of a pair about to be evaluated.
func (a *AuditLog) Params(_ domain.EvaluationPair, params domain.RunParameters) {
	a.printf("[%s]\n", strings.Join(params, ", "))
}

// Skip records an unrunnable pair.
func (a *AuditLog) Skip(pair domain.EvaluationPair, reason error) {
	a.printf("SKIP %s (%s): %v\n", pair, pair.Validity, reason)
}

// Failure records a failed evaluation.
func (a *AuditLog) Failure(pair domain.EvaluationPair, err error) {
	a.printf("FAIL %s (%s): %v\n", pair, pair.Validity, err)
}

// Err returns the first write error, if any.
func (a *AuditLog) Err() error { return a.err }

func (a *AuditLog) printf(format string, args ...any) {
	if a.err != nil {
		return
	}
	if _, err := fmt.Fprintf(a.w, format, args...); err != nil {
		a.err = fmt.Errorf("writing audit log: %w", err)
	}
}

// AuditFileName returns the audit log name for a sweep started at t, e.g.
// "feda_20250102T150405.txt".
func AuditFileName(prefix string, t time.Time) string {
	return prefix + t.Format("20060102T150405") + ".txt"
}
