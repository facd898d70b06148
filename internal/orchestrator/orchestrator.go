package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/voxelforge/prepush/internal/config"
	"github.com/voxelforge/prepush/internal/exec"
	"github.com/voxelforge/prepush/internal/git"
	"github.com/voxelforge/prepush/internal/lane"
)

// Orchestrator owns one verification run: it fans the lanes out to worker
// goroutines, applies the custom sequencing of the quick and bench lanes,
// and publishes progress events for the display layer.
type Orchestrator struct {
	cfg    *config.Config
	runner exec.CommandRunner
	git    git.Runner
	logger *DebugLogger
	runID  string
	events chan Event
}

// New creates an orchestrator for one run. gitr may be nil when no
// repository is available; baseline entries then record an "unknown"
// commit. logger may be nil to disable debug logging.
func New(cfg *config.Config, runner exec.CommandRunner, gitr git.Runner, logger *DebugLogger) *Orchestrator {
	if logger == nil {
		logger = NopLogger()
	}
	return &Orchestrator{
		cfg:    cfg,
		runner: runner,
		git:    gitr,
		logger: logger,
		runID:  uuid.New().String()[:8],
		events: make(chan Event, 100),
	}
}

// RunID returns the short identifier correlating this run's events and
// debug log lines.
func (o *Orchestrator) RunID() string {
	return o.runID
}

// Events returns a read-only channel of scheduler events.
// The channel is closed when Run returns.
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}

// Run executes the given lanes concurrently, one worker per lane, and
// blocks until every lane finishes. Lanes share no mutable state; each
// worker only mutates its own Lane.
func (o *Orchestrator) Run(ctx context.Context, lanes []*lane.Lane) {
	o.logger.Log("run %s: starting %d lanes", o.runID, len(lanes))

	var wg sync.WaitGroup
	for _, l := range lanes {
		wg.Add(1)
		go func(l *lane.Lane) {
			defer wg.Done()
			o.runLane(ctx, l)
		}(l)
	}
	wg.Wait()
	close(o.events)

	o.logger.Log("run %s: all lanes finished", o.runID)
}

// runLane dispatches one lane to its runner and brackets it with events.
func (o *Orchestrator) runLane(ctx context.Context, l *lane.Lane) {
	o.emitEvent(Event{Type: EventLaneStarted, Lane: l.Name, Total: len(l.Checks)})
	o.logger.Log("lane %s: started (%d checks)", l.Name, len(l.Checks))

	switch l.Name {
	case LaneQuick:
		o.runQuickLane(ctx, l)
	case LaneBench:
		o.runBenchLane(ctx, l)
	default:
		l.Run(ctx, o.runner, o.notify(l))
	}

	o.emitEvent(Event{
		Type:   EventLaneFinished,
		Lane:   l.Name,
		Done:   doneChecks(l),
		Total:  len(l.Checks),
		Failed: l.Failed,
	})
	o.logger.Log("lane %s: finished in %s (failed=%v)", l.Name, l.Elapsed.Round(time.Millisecond), l.Failed)
}

// notify adapts a lane's check transitions into scheduler events.
func (o *Orchestrator) notify(l *lane.Lane) lane.Notify {
	return func(c *lane.Check) {
		typ := EventCheckFinished
		if c.Status == lane.StatusRunning {
			typ = EventCheckStarted
		}
		o.emitEvent(Event{
			Type:   typ,
			Lane:   l.Name,
			Check:  c.Name,
			Status: c.Status,
			Done:   doneChecks(l),
			Total:  len(l.Checks),
			Failed: l.Failed,
		})
		if typ == EventCheckFinished {
			o.logger.Log("lane %s: %s: %s (%s)", l.Name, c.Name, c.Status, c.Elapsed.Round(time.Millisecond))
		}
	}
}

// emitEvent stamps and sends an event to the events channel.
func (o *Orchestrator) emitEvent(ev Event) {
	ev.RunID = o.runID
	ev.Timestamp = time.Now()
	select {
	case o.events <- ev:
	default:
		// Channel full, drop event to avoid blocking
	}
}

// doneChecks counts the lane's checks that reached a terminal status.
func doneChecks(l *lane.Lane) int {
	n := 0
	for _, c := range l.Checks {
		switch c.Status {
		case lane.StatusPassed, lane.StatusFailed, lane.StatusWarned, lane.StatusSkipped:
			n++
		}
	}
	return n
}
