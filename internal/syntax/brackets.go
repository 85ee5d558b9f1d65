package syntax

import (
	"fmt"

	"tcab/internal/diag"
	"tcab/internal/token"
)

var closerText = map[token.Kind]string{
	token.RParen:   ")",
	token.RBrace:   "}",
	token.RBracket: "]",
}

// CheckBrackets pairs (), {} and [] with a stack. Every stray closer,
// mismatched pair and unclosed opener is reported once.
func CheckBrackets(ts token.Stream, r diag.Reporter) {
	var stack []token.Token
	for _, tok := range ts {
		switch {
		case tok.Kind.IsOpener():
			stack = append(stack, tok)
		case tok.Kind.IsCloser():
			at := tok
			if len(stack) == 0 {
				diag.ReportError(r, diag.SynUnexpectedCloser, &at,
					fmt.Sprintf("Unexpected %q with nothing to close...", tok.Text)).
					WithHint(fmt.Sprintf("Remove the %q or add its opening bracket.", tok.Text)).
					Emit()
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if want := open.Kind.Closer(); want != tok.Kind {
				diag.ReportError(r, diag.SynBracketMismatch, &at,
					fmt.Sprintf("Expected %q to close %q but found %q...", closerText[want], open.Text, tok.Text)).
					WithHint(fmt.Sprintf("Replace %q with %q.", tok.Text, closerText[want])).
					WithNote(&open, "opened here").
					Emit()
			}
		}
	}
	for i := range stack {
		open := stack[i]
		want := closerText[open.Kind.Closer()]
		diag.ReportError(r, diag.SynUnclosedBracket, &open,
			fmt.Sprintf("%q is never closed...", open.Text)).
			WithHint(fmt.Sprintf("Add the matching %q.", want)).
			Emit()
	}
}
