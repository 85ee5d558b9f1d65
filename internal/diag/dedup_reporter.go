package diag

import "tcab/internal/token"

type dedupKey struct {
	code Code
	sev  Severity
	file string
	line uint32
	msg  string
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same code, severity, position and message.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, tok *token.Token, msg, hint string, notes []Note) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, sev: sev, msg: msg}
	if tok != nil {
		key.file = tok.File
		key.line = tok.Line
	}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, tok, msg, hint, notes)
	}
}
