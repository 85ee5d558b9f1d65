package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the tcab CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.3.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Version with major, minor and patch in separate colors.
// Pre-release and build suffixes stay uncolored.
func Colored(enabled bool) string {
	core, suffix := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	for i, p := range parts {
		c := *partColors[i]
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		parts[i] = c.Sprint(p)
	}
	return strings.Join(parts, ".") + suffix
}

// String renders the version line with the optional build metadata.
func String(colored bool) string {
	var b strings.Builder
	b.WriteString("tcab ")
	b.WriteString(Colored(colored))
	if GitCommit != "" {
		b.WriteString(" (")
		b.WriteString(GitCommit)
		if GitMessage != "" {
			b.WriteString(": ")
			b.WriteString(GitMessage)
		}
		b.WriteString(")")
	}
	if BuildDate != "" {
		b.WriteString(" built ")
		b.WriteString(BuildDate)
	}
	return b.String()
}
