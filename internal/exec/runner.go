package exec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ExecRunner implements CommandRunner using os/exec. Every command is killed
// once the configured timeout elapses.
type ExecRunner struct {
	timeout time.Duration
}

// NewRunner creates an ExecRunner whose commands are killed after timeout.
func NewRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{timeout: timeout}
}

// Run executes a command and captures combined stdout/stderr output.
func (r *ExecRunner) Run(ctx context.Context, workDir string, name string, args ...string) Result {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{Elapsed: time.Since(start)}

	// Combine stdout and stderr
	var combined strings.Builder
	if stdout.Len() > 0 {
		combined.WriteString(stdout.String())
	}
	if stderr.Len() > 0 {
		if combined.Len() > 0 {
			combined.WriteString("\n")
		}
		combined.WriteString(stderr.String())
	}
	res.Output = combined.String()

	if runCtx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		res.Err = runCtx.Err()
		res.Output = fmt.Sprintf("TIMEOUT (%d min)", int(r.timeout.Minutes()))
		return res
	}

	if err != nil {
		res.Err = err
		if _, ok := err.(*exec.ExitError); !ok {
			// Command failed to start; the error text is all we have.
			res.Output = err.Error()
		}
	}

	return res
}

// LookPath searches for an executable in PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Verify ExecRunner implements CommandRunner at compile time.
var _ CommandRunner = (*ExecRunner)(nil)
