package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tcab/internal/diag"
	"tcab/internal/source"
	"tcab/internal/token"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, hint, gutter, caret, msg *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		hint:   color.New(color.FgGreen),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		msg:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.hint, p.gutter, p.caret, p.msg} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждой диагностики печатает:
//
//	ERROR SYN2404: <Message>
//	  --> lib/a.tcab:4
//	   |
//	 4 | ( ]
//	   |   ^
//	   = hint: ...
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	fmt.Fprintf(w, "%s %s\n",
		pal.severity(d.Severity).Sprintf("%s %s:", d.Severity, d.Code.ID()),
		pal.msg.Sprint(clip(d.Message, opts.Width)))

	if d.Token == nil {
		fmt.Fprintf(w, "  %s <cli>\n", pal.gutter.Sprint("-->"))
	} else {
		fmt.Fprintf(w, "  %s %s:%d\n", pal.gutter.Sprint("-->"), displayPath(d.Token.File, fs, opts.PathMode), d.Token.Line)
		snippet(w, fs, d.Token, opts, pal)
	}

	if (opts.ShowHints || opts.ShowNotes) && d.Hint != "" {
		fmt.Fprintf(w, "   %s %s\n", pal.gutter.Sprint("="), pal.hint.Sprint("hint: "+d.Hint))
	}
	if !opts.ShowNotes || d.Code == diag.ObsTimings {
		return
	}
	for _, n := range d.Notes {
		where := "<cli>"
		if n.Token != nil {
			where = displayPath(n.Token.File, fs, opts.PathMode) + ":" + strconv.FormatUint(uint64(n.Token.Line), 10)
		}
		fmt.Fprintf(w, "   %s %s %s: %s\n", pal.gutter.Sprint("="), pal.note.Sprint("note:"), where, n.Msg)
	}
}

// snippet prints the source line of tok with context and a caret under the
// first occurrence of the token text.
func snippet(w io.Writer, fs *source.FileSet, tok *token.Token, opts PrettyOpts, pal palette) {
	line, ok := sourceLine(fs, tok.File, tok.Line)
	if !ok {
		return
	}
	ctx := uint32(max(opts.Context, 0))
	first := tok.Line - min(ctx, tok.Line-1)
	last := tok.Line + ctx

	gutterWidth := len(strconv.FormatUint(uint64(last), 10))
	pad := strings.Repeat(" ", gutterWidth)
	fmt.Fprintf(w, " %s %s\n", pad, pal.gutter.Sprint("|"))

	for n := first; n <= last; n++ {
		text, ok := sourceLine(fs, tok.File, n)
		if !ok {
			break
		}
		num := fmt.Sprintf("%*d", gutterWidth, n)
		fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), clip(expandTabs(text), opts.Width))
		if n != tok.Line {
			continue
		}
		col, width := caretSpan(line, tok.Text)
		if width == 0 {
			continue
		}
		fmt.Fprintf(w, " %s %s %s%s\n", pad, pal.gutter.Sprint("|"),
			strings.Repeat(" ", col), pal.caret.Sprint("^"+strings.Repeat("~", width-1)))
	}
}

// caretSpan returns the display column and width of text within line.
func caretSpan(line, text string) (int, int) {
	if text == "" || text == "\n" {
		return 0, 0
	}
	idx := strings.Index(line, text)
	if idx < 0 {
		return 0, 0
	}
	col := runewidth.StringWidth(expandTabs(line[:idx]))
	width := max(runewidth.StringWidth(expandTabs(text)), 1)
	return col, width
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// clip truncates s to width display cells; 0 disables clipping.
func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "...")
}

// Short prints one line per diagnostic, hints included.
func Short(w io.Writer, bag *diag.Bag, includeNotes bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Items(), includeNotes))
}
