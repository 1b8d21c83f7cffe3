package main

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ccdriver/internal/driver"
	"ccdriver/internal/runner"
	"ccdriver/internal/ui"
)

type runOutcome struct {
	timings runner.Timings
	err     error
}

// runWithUI executes cmds while a Bubble Tea program renders progress.
// Process output is discarded so it does not tear the view.
func runWithUI(ctx context.Context, title string, cmds []*driver.Command, opts runner.Options) (runner.Timings, error) {
	events := make(chan runner.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = runner.ChannelSink{Ch: events}
		optsCopy.PrintCommands = false
		optsCopy.Stdout = io.Discard
		timings, err := runner.Run(ctx, cmds, optsCopy)
		outcomeCh <- runOutcome{timings: timings, err: err}
		close(events)
	}()

	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, runner.JobName(c))
	}
	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.timings, uiErr
	}
	return outcome.timings, outcome.err
}
