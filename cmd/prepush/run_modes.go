package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/voxelforge/prepush/internal/lane"
	"github.com/voxelforge/prepush/internal/orchestrator"
)

// runHeadless executes the run while printing plain event lines, and
// returns once the event stream is drained.
func runHeadless(ctx context.Context, orch *orchestrator.Orchestrator, lanes []*lane.Lane) {
	done := make(chan struct{})
	go func() {
		consumeEventsHeadless(orch.Events())
		close(done)
	}()
	orch.Run(ctx, lanes)
	<-done
}

// consumeEventsHeadless prints orchestrator events to stdout.
func consumeEventsHeadless(events <-chan orchestrator.Event) {
	for event := range events {
		switch event.Type {
		case orchestrator.EventLaneStarted:
			fmt.Printf("[LANE] %s started (%d checks)\n", event.Lane, event.Total)
		case orchestrator.EventCheckStarted:
			fmt.Printf("[RUN ] %s: %s\n", event.Lane, event.Check)
		case orchestrator.EventCheckFinished:
			fmt.Printf("[%s] %s: %s\n", statusTag(event.Status), event.Lane, event.Check)
		case orchestrator.EventLaneFinished:
			if event.Failed {
				fmt.Printf("[%s] %s (%d/%d)\n", color.RedString("FAIL"), event.Lane, event.Done, event.Total)
			} else {
				fmt.Printf("[%s] %s (%d/%d)\n", color.GreenString("DONE"), event.Lane, event.Done, event.Total)
			}
		}
	}
}

// statusTag maps a check status to its colored tag.
func statusTag(s lane.Status) string {
	switch s {
	case lane.StatusPassed:
		return color.GreenString("PASS")
	case lane.StatusFailed:
		return color.RedString("FAIL")
	case lane.StatusWarned:
		return color.YellowString("WARN")
	case lane.StatusSkipped:
		return "SKIP"
	default:
		return s.String()
	}
}
