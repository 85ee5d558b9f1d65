package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tcab/internal/version"
)

type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
	color       bool
}

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowHash bool
	versionShowMsg  bool
	versionShowDate bool
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowMsg, "message", false, "include git commit message")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show tcab build information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		color, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		opts := versionOptions{
			format:      strings.ToLower(versionFormat),
			showHash:    versionShowHash || versionShowFull,
			showMessage: versionShowMsg || versionShowFull,
			showDate:    versionShowDate || versionShowFull,
			color:       color,
		}
		switch opts.format {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), opts)
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), opts)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(out io.Writer, opts versionOptions) {
	fmt.Fprintf(out, "tcab %s\n", version.Colored(opts.color))
	if opts.showHash {
		fmt.Fprintf(out, "commit:  %s\n", valueOrUnknown(version.GitCommit))
	}
	if opts.showMessage {
		fmt.Fprintf(out, "message: %s\n", valueOrUnknown(version.GitMessage))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:   %s\n", valueOrUnknown(version.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "tcab",
		Version: strings.TrimSpace(version.Version),
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
	}
	if opts.showMessage {
		payload.GitMessage = valueOrUnknown(version.GitMessage)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
