package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tcab/internal/trace"
)

// activeTracer is the tracer installed by setupTracing for the running command.
var activeTracer trace.Tracer = trace.Nop

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context.
func setupTracing(cmd *cobra.Command) error {
	root := cmd.Root()

	// Read trace configuration from flags
	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	levelGiven := root.PersistentFlags().Changed("trace-level")
	if !levelGiven && verboseRequested(cmd) {
		level = trace.LevelDetail
	} else if !levelGiven && traceOutput != "" {
		level = trace.LevelPhase
	}

	// Трассировка выключена
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	return nil
}

func verboseRequested(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup("verbose")
	return f != nil && f.Value.String() == "true"
}

// closeTracing flushes the tracer. After a failure the ring buffer, if any,
// is dumped to stderr.
func closeTracing(cmd *cobra.Command, failed bool) {
	tracer := activeTracer
	activeTracer = trace.Nop
	if failed {
		if ring, ok := trace.FindRing(tracer); ok {
			fmt.Fprintln(os.Stderr, "trace: last events before failure")
			if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
	}
	if err := tracer.Flush(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
	}
	if err := tracer.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
	}
}
