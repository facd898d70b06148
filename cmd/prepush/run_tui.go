package main

import (
	"context"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voxelforge/prepush/internal/lane"
	"github.com/voxelforge/prepush/internal/orchestrator"
	"github.com/voxelforge/prepush/internal/tui"
)

// runWithTUI runs the lanes behind the live display. It returns after the
// orchestrator has finished, including when the user aborts.
func runWithTUI(ctx context.Context, cancel context.CancelFunc, orch *orchestrator.Orchestrator, lanes []*lane.Lane) error {
	// Suppress log output while TUI is active (it corrupts the display)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	infos := make([]tui.LaneInfo, 0, len(lanes))
	for _, l := range lanes {
		infos = append(infos, tui.LaneInfo{Name: l.Name, Color: l.Color, Checks: len(l.Checks)})
	}
	program, _ := tui.NewProgram(infos)

	orchDone := make(chan struct{})
	go func() {
		orch.Run(ctx, lanes)
		close(orchDone)
	}()
	go forwardEvents(program, orch.Events())

	finalModel, runErr := program.Run()
	model, _ := finalModel.(*tui.Model)
	if runErr != nil || (model != nil && model.Aborted()) {
		cancel()
	}
	<-orchDone
	return runErr
}

// forwardEvents converts orchestrator events to TUI messages. When the
// event channel closes it tells the display the run is over.
func forwardEvents(program *tea.Program, events <-chan orchestrator.Event) {
	for event := range events {
		program.Send(tui.RunEventMsg{
			Type:   string(event.Type),
			Lane:   event.Lane,
			Check:  event.Check,
			Status: event.Status.String(),
			Done:   event.Done,
			Total:  event.Total,
			Failed: event.Failed,
		})
	}
	program.Send(tui.RunDoneMsg{})
}
