package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"tcab/internal/token"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Message  string
	Hint     string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files. Entries are sorted deterministically
// and returned as a single string (empty when nothing remains).
func FormatGoldenDiagnostics(diags []Diagnostic, includeNotes bool) string {
	return formatDiagnostics(diags, includeNotes, false)
}

// FormatShortDiagnostics renders the same single-line form followed by the hint,
// intended for CLI short output.
func FormatShortDiagnostics(diags []Diagnostic, includeNotes bool) string {
	return formatDiagnostics(diags, includeNotes, true)
}

func formatDiagnostics(diags []Diagnostic, includeNotes, withHints bool) string {
	if len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Message)
		if withHints && d.Hint != "" {
			fmt.Fprintf(&b, " (hint: %s)", d.Hint)
		}
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []goldenDiagnostic, d *Diagnostic, includeNotes bool) []goldenDiagnostic {
	path, line := resolveToken(d.Token)
	out = append(out, goldenDiagnostic{
		Severity: severityLabel(d.Severity),
		Code:     d.Code.ID(),
		Path:     path,
		Line:     line,
		Message:  sanitizeMessage(d.Message),
		Hint:     sanitizeMessage(d.Hint),
	})

	if includeNotes {
		for _, note := range d.Notes {
			npath, nline := resolveToken(note.Token)
			out = append(out, goldenDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     npath,
				Line:     nline,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}
	return out
}

func resolveToken(tok *token.Token) (string, uint32) {
	if tok == nil {
		return "<cli>", 0
	}
	return trimModulePrefix(tok.File), tok.Line
}

func trimModulePrefix(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
