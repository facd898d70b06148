// Package lane models the independent verification lanes and their checks.
package lane

import (
	"context"
	"time"

	"github.com/voxelforge/prepush/internal/bench"
	"github.com/voxelforge/prepush/internal/exec"
)

// Status describes the lifecycle state of a check.
type Status int

const (
	// StatusPending indicates the check has not started.
	StatusPending Status = iota
	// StatusRunning indicates the check is executing.
	StatusRunning
	// StatusPassed indicates the check succeeded.
	StatusPassed
	// StatusFailed indicates the check failed.
	StatusFailed
	// StatusWarned indicates the check completed with a warning.
	StatusWarned
	// StatusSkipped indicates the check was skipped after an earlier failure.
	StatusSkipped
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusWarned:
		return "warned"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Check is one named command within a lane.
type Check struct {
	// Name is the display name, e.g. "cargo check (default)". Custom lane
	// logic may rewrite it to annotate the result.
	Name string
	// Argv is the command vector. A nil Argv marks a check executed by
	// custom lane logic rather than a plain subprocess.
	Argv []string
	// Status is the check's lifecycle state.
	Status Status
	// Elapsed is how long the check ran.
	Elapsed time.Duration
	// Output is the combined output of the check's command.
	Output string
}

// Lane is an ordered sequence of checks executed by one worker. Checks run
// sequentially and the first failure short-circuits the rest.
type Lane struct {
	// Name identifies the lane, e.g. "Native".
	Name string
	// Color is the display color name used by renderers.
	Color string
	// Dir is the working directory checks run in.
	Dir string
	// Checks are the lane's checks in execution order.
	Checks []*Check
	// Elapsed is the lane's total wall-clock time.
	Elapsed time.Duration
	// Failed is set when any check failed.
	Failed bool
	// Bench holds the benchmark lane's post-processing results. Nil until
	// that post-processing ran, and always nil on other lanes.
	Bench *bench.Report
}

// Notify observes check status changes. Implementations must be fast; they
// run on the lane's worker goroutine.
type Notify func(*Check)

// Run executes the lane's checks in order. The first failure marks the lane
// failed, the remaining checks skipped, and stops execution. notify may be
// nil.
func (l *Lane) Run(ctx context.Context, runner exec.CommandRunner, notify Notify) {
	if notify == nil {
		notify = func(*Check) {}
	}

	start := time.Now()
	defer func() { l.Elapsed = time.Since(start) }()

	for _, c := range l.Checks {
		c.Status = StatusRunning
		notify(c)

		res := runner.Run(ctx, l.Dir, c.Argv[0], c.Argv[1:]...)
		c.Elapsed = res.Elapsed
		c.Output = res.Output

		if res.Ok() {
			c.Status = StatusPassed
			notify(c)
			continue
		}

		c.Status = StatusFailed
		l.Failed = true
		notify(c)
		l.SkipPending(notify)
		break
	}
}

// SkipPending marks every still-pending check skipped. Custom lane logic
// calls this after deciding the lane cannot continue.
func (l *Lane) SkipPending(notify Notify) {
	for _, c := range l.Checks {
		if c.Status == StatusPending {
			c.Status = StatusSkipped
			if notify != nil {
				notify(c)
			}
		}
	}
}
