// Package main implements the tcab CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tcab/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "tcab",
	Short:         "tcab front end: lexer, preprocessor and import resolver",
	Long:          `tcab turns a .tcab entry file and its imports into one checked token stream`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errFailed signals that diagnostics were already printed and the process must exit 1.
type errFailed struct{}

func (errFailed) Error() string { return "compilation failed" }

// main регистрирует команды и глобальные флаги и запускает корневую команду.
// Любая ошибка выполнения завершает процесс с кодом 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(importsCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return setupTracing(cmd)
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, _ []string) {
		closeTracing(cmd, false)
	}

	if err := rootCmd.Execute(); err != nil {
		var failed errFailed
		if !errors.As(err, &failed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		closeTracing(rootCmd, true)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color against the terminal state of f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return isTerminal(f), nil
	}
}
