package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"longconv/internal/pipeline"
	"longconv/internal/ui"
)

type batchOutcome struct {
	results []pipeline.Result
	err     error
}

func runBatchWithUI(ctx context.Context, title string, jobs []pipeline.Job, opts pipeline.BatchOptions) ([]pipeline.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Batch(ctx, jobs, optsCopy)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	files := make([]string, len(jobs))
	for i, job := range jobs {
		files[i] = job.Input
	}
	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		for range events {
		}
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
