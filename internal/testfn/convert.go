// Package testfn turns inline test blocks into test entry points.
//
// A test block `$ { ... }` follows the body of the function it tests. For
// every such block a copy of the function's signature, with '$' in front of
// the function name, is declared right before the function:
//
//	fn ( a , b ) { ... } $ { ... }
//
// becomes
//
//	$ fn ( a , b ) ; fn ( a , b ) { ... } $ { ... }
package testfn

import (
	"tcab/internal/diag"
	"tcab/internal/token"
)

// Convert processes every test block of ts in order. A block that is not
// attached to a function is reported and left as is.
func Convert(ts token.Stream, r diag.Reporter) token.Stream {
	out := make(token.Stream, 0, len(ts))
	for i, tok := range ts {
		if tok.Kind == token.Dollar && i+1 < len(ts) && ts[i+1].Kind == token.LBrace {
			out = attach(out, tok, r)
		}
		out = append(out, tok)
	}
	return out
}

// attach inserts the test signature for the marker into out, which holds
// everything before the marker.
func attach(out token.Stream, marker token.Token, r diag.Reporter) token.Stream {
	end := len(out)
	for end > 0 && out[end-1].Kind == token.Semicolon {
		end--
	}

	body, ok := bodyOpen(out[:end])
	if !ok {
		reportDetached(r, marker, "Expected a function before the test block...",
			"Place the test block directly after a function body.")
		return out
	}
	start, paren := signature(out, body)
	if paren < 0 {
		if body > 0 && out[body-1].Kind == token.Dollar {
			reportDetached(r, marker, "You cannot make a test function of a test function...",
				"Remove one of the test functions.")
		} else {
			reportDetached(r, marker, "Expected a function before the test block...",
				"Place the test block directly after a function body.")
		}
		return out
	}

	dollarAt := max(paren-1, start)
	decl := make(token.Stream, 0, body-start+2)
	for j := start; j < body; j++ {
		if j == dollarAt {
			decl = append(decl, marker.Synth("$"))
		}
		decl = append(decl, out[j])
	}
	decl = append(decl, marker.Synth(";"))

	res := make(token.Stream, 0, len(out)+len(decl))
	res = append(res, out[:start]...)
	res = append(res, decl...)
	res = append(res, out[start:end]...)
	return res
}

// bodyOpen finds the '{' matching the '}' that ends ts.
func bodyOpen(ts token.Stream) (int, bool) {
	if len(ts) == 0 || ts[len(ts)-1].Kind != token.RBrace {
		return 0, false
	}
	depth := 0
	for k := len(ts) - 1; k >= 0; k-- {
		switch ts[k].Kind {
		case token.RBrace:
			depth++
		case token.LBrace:
			depth--
			if depth == 0 {
				return k, true
			}
		}
	}
	return 0, false
}

// signature walks back from the body brace to the previous statement
// boundary. It returns the first index of the signature and the index of the
// '(' of the last parameter list before the body, or -1.
func signature(ts token.Stream, body int) (start, paren int) {
	paren = -1
	depth := 0
	k := body - 1
	for ; k >= 0; k-- {
		switch ts[k].Kind {
		case token.RParen:
			depth++
		case token.LParen:
			if depth > 0 {
				depth--
				if depth == 0 && paren < 0 {
					paren = k
				}
			}
		case token.Semicolon, token.LBrace, token.RBrace:
			if depth == 0 {
				return k + 1, paren
			}
		}
	}
	return 0, paren
}

func reportDetached(r diag.Reporter, marker token.Token, msg, hint string) {
	at := marker
	diag.ReportError(r, diag.SynTestWithoutParams, &at, msg).WithHint(hint).Emit()
}
