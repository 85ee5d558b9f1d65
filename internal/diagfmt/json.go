package diagfmt

import (
	"encoding/json"
	"io"

	"tcab/internal/diag"
	"tcab/internal/source"
	"tcab/internal/token"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File string `json:"file"`
	Line uint32 `json:"line,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Category string       `json:"category"`
	Message  string       `json:"message"`
	Hint     string       `json:"hint,omitempty"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(tok *token.Token, fs *source.FileSet, pathMode PathMode) LocationJSON {
	if tok == nil {
		return LocationJSON{File: "<cli>"}
	}
	return LocationJSON{
		File: displayPath(tok.File, fs, pathMode),
		Line: tok.Line,
	}
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	if bag == nil {
		return DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	}
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for _, d := range items[:maxItems] {
		diagJSON := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Category: d.Code.Category().String(),
			Message:  d.Message,
			Hint:     d.Hint,
			Location: makeLocation(d.Token, fs, opts.PathMode),
		}

		// тайминги живут в заметках, поэтому их не отрезаем
		includeNotes := opts.IncludeNotes || d.Code == diag.ObsTimings
		if includeNotes && len(d.Notes) > 0 {
			diagJSON.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				diagJSON.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Token, fs, opts.PathMode),
				}
			}
		}
		diagnostics = append(diagnostics, diagJSON)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
