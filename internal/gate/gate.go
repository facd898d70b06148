// Package gate runs the formatting gate that precedes lane execution.
package gate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voxelforge/prepush/internal/exec"
)

// Status describes how the gate concluded.
type Status int

const (
	// StatusOK indicates the tree was already formatted.
	StatusOK Status = iota
	// StatusAutoFixed indicates the formatter rewrote files and the
	// re-check passed.
	StatusAutoFixed
	// StatusSkipped indicates the gate did not run.
	StatusSkipped
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAutoFixed:
		return "auto-fixed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ConvergenceError is returned when the formatter cannot produce a clean
// tree: the fix run itself failed, or the re-check still found violations.
// It is the only failure that aborts a run before the lanes start.
type ConvergenceError struct {
	Msg string
}

// Error returns the error message.
func (e *ConvergenceError) Error() string {
	return e.Msg
}

// Gate verifies formatting and repairs it in place. Check is the command
// that reports violations through its exit status, Fix the command that
// rewrites files.
type Gate struct {
	Dir   string
	Check []string
	Fix   []string
}

// Run executes the gate: verify, auto-fix when dirty, verify again. The fix
// is attempted once; a tree that is still dirty afterwards yields a
// *ConvergenceError.
func (g *Gate) Run(ctx context.Context, runner exec.CommandRunner) (Status, time.Duration, error) {
	start := time.Now()

	check := runner.Run(ctx, g.Dir, g.Check[0], g.Check[1:]...)
	if check.Ok() {
		return StatusOK, time.Since(start), nil
	}

	fix := runner.Run(ctx, g.Dir, g.Fix[0], g.Fix[1:]...)
	if !fix.Ok() {
		err := &ConvergenceError{
			Msg: fmt.Sprintf("%s failed:\n%s", strings.Join(g.Fix, " "), fix.Output),
		}
		return 0, time.Since(start), err
	}

	recheck := runner.Run(ctx, g.Dir, g.Check[0], g.Check[1:]...)
	if !recheck.Ok() {
		err := &ConvergenceError{
			Msg: fmt.Sprintf("%s still fails after auto-fix", strings.Join(g.Check, " ")),
		}
		return 0, time.Since(start), err
	}

	return StatusAutoFixed, time.Since(start), nil
}
