// Package orchestrator builds the verification lanes and runs them
// concurrently, one worker per lane.
package orchestrator

import (
	"time"

	"github.com/voxelforge/prepush/internal/lane"
)

// EventType represents the type of scheduler event.
type EventType string

const (
	// EventLaneStarted indicates a lane's worker has started.
	EventLaneStarted EventType = "lane_started"
	// EventCheckStarted indicates a check began executing.
	EventCheckStarted EventType = "check_started"
	// EventCheckFinished indicates a check reached a terminal status.
	EventCheckFinished EventType = "check_finished"
	// EventLaneFinished indicates a lane's worker has finished.
	EventLaneFinished EventType = "lane_finished"
)

// Event is emitted by the scheduler as lanes and checks progress.
// The TUI and the headless printer consume these to render live status.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// RunID correlates events from one run in the debug log.
	RunID string
	// Lane is the name of the lane the event belongs to.
	Lane string
	// Check is the display name of the related check, if applicable.
	Check string
	// Status is the check's status at the time of the event.
	Status lane.Status
	// Done is the number of checks in the lane that have reached a
	// terminal status.
	Done int
	// Total is the number of checks in the lane.
	Total int
	// Failed reports whether the lane has failed so far.
	Failed bool
	// Timestamp is when the event occurred.
	Timestamp time.Time
}
