package main

import (
	"fmt"
	"io"
	"time"

	"tcab/internal/buildpipeline"
	"tcab/internal/observ"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	for _, stage := range buildpipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%-10s %.1f ms\n", stage, toMillis(timings.Duration(stage)))
	}
	total := timings.Sum(buildpipeline.Stages...)
	fmt.Fprintf(out, "%-10s %.1f ms\n", "total", toMillis(total))
}

// printPhaseReport prints the per-pass phases collected by the driver.
func printPhaseReport(out io.Writer, report *observ.Report) {
	if out == nil || report == nil {
		return
	}
	for _, p := range report.Phases {
		line := fmt.Sprintf("  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  // " + p.Note
		}
		fmt.Fprintln(out, line)
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
