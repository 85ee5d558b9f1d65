package syntax

import (
	"tcab/internal/diag"
	"tcab/internal/token"
)

// CheckClassHeaders validates `<access> class Name` headers.
//
// The token before 'class' must be an access specifier, or ';' right after
// one (that ';' is dropped). Separators right after 'class' are dropped, and
// the class must be named.
func CheckClassHeaders(ts token.Stream, r diag.Reporter) token.Stream {
	out := make(token.Stream, 0, len(ts))
	for i := 0; i < len(ts); i++ {
		tok := ts[i]
		if tok.Kind != token.KwClass {
			out = append(out, tok)
			continue
		}

		n := len(out)
		switch {
		case n > 0 && out[n-1].Kind.IsAccessSpecifier():
		case n > 1 && out[n-1].Kind == token.Semicolon && out[n-2].Kind.IsAccessSpecifier():
			out = out[:n-1]
		default:
			at := tok
			diag.ReportError(r, diag.SynClassPredecessor, &at, "Expected an access specifier before 'class'...").
				WithHint("Put public, private or protected directly before 'class'.").
				Emit()
		}
		out = append(out, tok)

		for i+1 < len(ts) && ts[i+1].Kind == token.Semicolon {
			i++
		}
		if i+1 < len(ts) && ts[i+1].Kind == token.LBrace {
			at := ts[i+1]
			diag.ReportError(r, diag.SynClassBrace, &at, "Expected a class name after 'class'...").
				WithHint("Name the class before opening its body.").
				Emit()
		}
	}
	return out
}
