package exec

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExecRunner_Run_CapturesOutput(t *testing.T) {
	r := NewRunner(time.Minute)

	res := r.Run(context.Background(), "", "sh", "-c", "echo hello")
	if !res.Ok() {
		t.Fatalf("Run() error = %v, want success", res.Err)
	}
	if got := strings.TrimSpace(res.Output); got != "hello" {
		t.Errorf("Output = %q, want %q", got, "hello")
	}
	if res.Elapsed <= 0 {
		t.Error("Elapsed should be positive")
	}
}

func TestExecRunner_Run_CombinesStderr(t *testing.T) {
	r := NewRunner(time.Minute)

	res := r.Run(context.Background(), "", "sh", "-c", "echo out; echo err >&2")
	if !res.Ok() {
		t.Fatalf("Run() error = %v, want success", res.Err)
	}
	if !strings.Contains(res.Output, "out") || !strings.Contains(res.Output, "err") {
		t.Errorf("Output = %q, want both streams captured", res.Output)
	}
}

func TestExecRunner_Run_ExitError(t *testing.T) {
	r := NewRunner(time.Minute)

	res := r.Run(context.Background(), "", "sh", "-c", "echo broken; exit 3")
	if res.Ok() {
		t.Fatal("Run() should fail for a non-zero exit")
	}
	if res.TimedOut {
		t.Error("TimedOut should be false for an exit failure")
	}
	if !strings.Contains(res.Output, "broken") {
		t.Errorf("Output = %q, want command output preserved", res.Output)
	}
}

func TestExecRunner_Run_LaunchError(t *testing.T) {
	r := NewRunner(time.Minute)

	res := r.Run(context.Background(), "", "definitely-not-a-real-binary-xyz")
	if res.Ok() {
		t.Fatal("Run() should fail when the binary does not exist")
	}
	if res.Output == "" {
		t.Error("Output should carry the launch error text")
	}
}

func TestExecRunner_Run_Timeout(t *testing.T) {
	r := NewRunner(100 * time.Millisecond)

	res := r.Run(context.Background(), "", "sleep", "5")
	if res.Ok() {
		t.Fatal("Run() should fail on timeout")
	}
	if !res.TimedOut {
		t.Error("TimedOut should be true")
	}
	if !strings.HasPrefix(res.Output, "TIMEOUT (") {
		t.Errorf("Output = %q, want TIMEOUT marker", res.Output)
	}
}

func TestExecRunner_Run_WorkDir(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "exec-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	marker := filepath.Join(tmpDir, "marker.txt")
	if err := os.WriteFile(marker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create marker file: %v", err)
	}

	r := NewRunner(time.Minute)
	res := r.Run(context.Background(), tmpDir, "ls")
	if !res.Ok() {
		t.Fatalf("Run() error = %v, want success", res.Err)
	}
	if !strings.Contains(res.Output, "marker.txt") {
		t.Errorf("Output = %q, want listing of workDir", res.Output)
	}
}

func TestExecRunner_LookPath(t *testing.T) {
	r := NewRunner(time.Minute)

	if _, err := r.LookPath("sh"); err != nil {
		t.Errorf("LookPath(sh) error = %v", err)
	}
	if _, err := r.LookPath("definitely-not-a-real-binary-xyz"); err == nil {
		t.Error("LookPath should fail for a missing binary")
	}
}
