package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"abilink/internal/linkpipeline"
	"abilink/internal/ui"
)

type linkOutcome struct {
	result linkpipeline.Result
	err    error
}

func runLinkWithUI(ctx context.Context, out io.Writer, title string, req *linkpipeline.Request) (linkpipeline.Result, error) {
	if req == nil {
		return linkpipeline.Result{}, fmt.Errorf("missing link request")
	}
	events := make(chan linkpipeline.Event, 256)
	outcomeCh := make(chan linkOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = linkpipeline.MultiSink{req.Progress, linkpipeline.ChannelSink{Ch: events}}
		res, err := linkpipeline.Link(ctx, &reqCopy)
		outcomeCh <- linkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Inputs, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// The view may quit before the pipeline does.
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err != nil {
		return outcome.result, outcome.err
	}
	return outcome.result, uiErr
}
