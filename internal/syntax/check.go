package syntax

import (
	"tcab/internal/diag"
	"tcab/internal/token"
)

// Pass is one validation over the expanded stream. A pass may rewrite the
// stream (class headers drop redundant separators) and reports problems
// through r instead of stopping.
type Pass func(ts token.Stream, r diag.Reporter) token.Stream

// passes run in order; all of them run even when an earlier one reported.
// Function-header and identifier-naming rules are expected to join here.
var passes = []Pass{
	CheckClassHeaders,
	func(ts token.Stream, r diag.Reporter) token.Stream {
		CheckBrackets(ts, r)
		return ts
	},
}

// Check runs every pass over ts.
func Check(ts token.Stream, r diag.Reporter) token.Stream {
	for _, pass := range passes {
		ts = pass(ts, r)
	}
	return ts
}
