// Package cond resolves #if/#elif/#else/#endif directives against the
// compile-time variables. Directive tokens never reach the output; ordinary
// tokens are kept only inside active branches.
package cond

import (
	"tcab/internal/buildvar"
	"tcab/internal/diag"
	"tcab/internal/token"
)

// Compile returns the stream with every directive resolved.
// A *diag.FatalError is returned for a stray #elif/#else/#endif or an
// uninferable literal; other problems are reported through r.
func Compile(ts token.Stream, vars *buildvar.Set, r diag.Reporter) (token.Stream, error) {
	out := make(token.Stream, 0, len(ts))
	var stack frameStack

	for i := 0; i < len(ts); i++ {
		tok := ts[i]
		if tok.Kind != token.Hash || i+1 >= len(ts) || !ts[i+1].Kind.IsDirectiveKeyword() {
			if stack.Active() {
				out = append(out, tok)
			}
			continue
		}

		kw := ts[i+1]
		switch kw.Kind {
		case token.KwIf:
			expr, end := directiveBody(ts, i+2)
			i = end
			result := false
			if stack.Active() {
				var err error
				if result, err = Evaluate(kw, expr, vars, r); err != nil {
					return nil, err
				}
			}
			stack.Push(result, tok)

		case token.KwElif:
			if stack.Empty() {
				return nil, diag.ReportError(r, diag.SynElifWithoutIf, &kw, "'#elif' without a preceding '#if'").
					WithHint("Open the chain with '#if'.").Fatal()
			}
			expr, end := directiveBody(ts, i+2)
			i = end
			result := false
			if stack.Pending() {
				var err error
				if result, err = Evaluate(kw, expr, vars, r); err != nil {
					return nil, err
				}
			}
			stack.Elif(result)

		case token.KwElse:
			if stack.Empty() {
				return nil, diag.ReportError(r, diag.SynElseWithoutIf, &kw, "'#else' without a preceding '#if'").
					WithHint("Open the chain with '#if'.").Fatal()
			}
			extra, end := directiveBody(ts, i+2)
			i = end
			if len(extra) > 0 {
				diag.ReportError(r, diag.SynTokensAfterElse, &extra[0], "'#else' takes no condition").
					WithHint("Use '#elif' for a conditional branch.").Emit()
			}
			stack.Else()

		case token.KwEndif:
			if stack.Empty() {
				return nil, diag.ReportError(r, diag.SynEndifWithoutIf, &kw, "'#endif' without a preceding '#if'").
					WithHint("Remove the '#endif' or add the matching '#if'.").Fatal()
			}
			i++
			if i+1 < len(ts) && ts[i+1].Kind == token.Semicolon {
				i++
			}
			stack.Pop()
		}
	}

	for _, f := range stack.frames {
		open := f.open
		diag.ReportError(r, diag.SynUnclosedIf, &open, "'#if' is never closed").
			WithHint("Close the chain with '#endif'.").Emit()
	}
	return out, nil
}

// directiveBody collects the tokens after a directive keyword up to the
// terminating ';'. It returns them and the index of the ';' (or the last token).
func directiveBody(ts token.Stream, from int) (token.Stream, int) {
	i := from
	for i < len(ts) && ts[i].Kind != token.Semicolon {
		i++
	}
	body := ts[from:min(i, len(ts))]
	if i >= len(ts) {
		i = len(ts) - 1
	}
	return body, i
}
