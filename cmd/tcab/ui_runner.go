package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tcab/internal/buildpipeline"
	"tcab/internal/driver"
	"tcab/internal/ui"
)

type checkOutcome struct {
	results []driver.CheckResult
	err     error
}

// runCheckWithUI runs driver.CheckDir while a Bubble Tea view renders its
// progress events.
func runCheckWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options, jobs int) ([]driver.CheckResult, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		buildpipeline.EmitQueued(optsCopy.Progress, files)
		res, err := driver.CheckDir(ctx, dir, optsCopy, jobs)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
