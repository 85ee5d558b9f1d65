package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on", "yes", "true":
		return uiModeOn, nil
	case "off", "no", "false":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI resolves auto: the progress view needs an interactive stdout.
func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout) && os.Getenv("TERM") != "dumb" && os.Getenv("CI") == ""
	}
}
