package imports

import (
	"tcab/internal/token"
)

// Wrap nests body into `protected class <segment> { ... } ;` blocks, one per
// segment of modulePath, outermost first. Synthetic tokens take the
// provenance of at.
func Wrap(modulePath string, body token.Stream, at token.Token) token.Stream {
	segs := Segments(modulePath)
	out := make(token.Stream, 0, len(body)+len(segs)*6)
	for _, seg := range segs {
		out = append(out,
			at.Synth("protected"),
			at.Synth("class"),
			at.Synth(seg),
			at.Synth("{"),
		)
	}
	out = append(out, body...)
	for range segs {
		out = append(out, at.Synth("}"), at.Synth(";"))
	}
	return out
}
