// Package exec provides an interface for running verification commands.
package exec

import (
	"context"
	"time"
)

// Result holds the outcome of a single command invocation.
type Result struct {
	// Output is the combined stdout/stderr of the command. When the command
	// could not be started it carries the launch error text instead, and when
	// the command was killed by the deadline it carries a TIMEOUT marker.
	Output string
	// Elapsed is the wall-clock duration of the invocation.
	Elapsed time.Duration
	// Err is non-nil when the command exited non-zero, timed out, or could
	// not be started.
	Err error
	// TimedOut reports whether the command was killed by the deadline.
	TimedOut bool
}

// Ok reports whether the command ran to completion with exit status zero.
func (r Result) Ok() bool {
	return r.Err == nil
}

// CommandRunner defines the interface for running external commands.
// This abstraction allows faking command execution in tests.
type CommandRunner interface {
	// Run executes a command and captures combined stdout/stderr output.
	// The working directory is set to workDir if non-empty.
	Run(ctx context.Context, workDir string, name string, args ...string) Result

	// LookPath searches for an executable in PATH, as exec.LookPath does.
	// Lane builders use it to probe for optional tooling.
	LookPath(name string) (string, error)
}
