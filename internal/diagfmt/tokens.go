package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"tcab/internal/token"
)

type TokenOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	File string `json:"file"`
	Line uint32 `json:"line"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens token.Stream) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-12s %-8q at %s\n", i+1, tok.Kind.String(), tok.Text, tok.Pos()); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens token.Stream) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			File: tok.File,
			Line: tok.Line,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
