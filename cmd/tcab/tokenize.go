package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tcab/internal/diagfmt"
	"tcab/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.tcab",
	Short: "Tokenize a tcab source file",
	Long:  `Tokenize prints the lexer output of a single file, normalized unless --raw is given`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|stream)")
	tokenizeCmd.Flags().Bool("raw", false, "keep comments and skip the normalizer")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return fmt.Errorf("failed to get raw flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	// Выполняем токенизацию
	result, err := driver.Tokenize(filePath, raw, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		color, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     color,
			Context:   1,
			ShowHints: true,
		})
		fmt.Fprintln(os.Stderr)
	}

	// Выводим токены в выбранном формате
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(os.Stdout, result.Tokens)
	case "json":
		err = diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	case "stream":
		_, err = fmt.Fprintln(os.Stdout, result.Tokens.String())
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errFailed{}
	}
	return nil
}
