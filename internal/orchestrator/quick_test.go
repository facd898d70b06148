package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/voxelforge/prepush/internal/config"
	"github.com/voxelforge/prepush/internal/exec"
	"github.com/voxelforge/prepush/internal/lane"
)

func writeParitySource(t *testing.T, root string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, "tools"), 0o755); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(root, "tools", "check_api_parity.rs")
	if err := os.WriteFile(src, []byte("fn main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return src
}

func TestQuickLane_VersionMismatch(t *testing.T) {
	root := t.TempDir()
	writeManifests(t, root, "0.1.0", "0.2.0")

	cfg := config.Default(root)
	runner := &fakeRunner{}
	o := New(cfg, runner, nil, nil)

	l := BuildQuickLane(cfg)
	o.runQuickLane(context.Background(), l)

	if !l.Failed {
		t.Error("lane should fail on version mismatch")
	}
	vc := l.Checks[0]
	if vc.Status != lane.StatusFailed {
		t.Errorf("expected failed version check, got %s", vc.Status)
	}
	if vc.Name != "version mismatch (0.1.0 vs 0.2.0)" {
		t.Errorf("unexpected check name %q", vc.Name)
	}
	if vc.Output != "Cargo.toml=0.1.0  pyproject.toml=0.2.0" {
		t.Errorf("unexpected output %q", vc.Output)
	}
	if l.Checks[1].Status != lane.StatusSkipped {
		t.Errorf("parity check should be skipped, got %s", l.Checks[1].Status)
	}
	if len(runner.calls) != 0 {
		t.Errorf("no commands should run on mismatch, got %v", runner.calls)
	}
}

func TestQuickLane_CompilerUnavailable(t *testing.T) {
	root := t.TempDir()
	writeManifests(t, root, "1.0.0", "1.0.0")
	writeParitySource(t, root)

	cfg := config.Default(root)
	// The rustc invocation produces no binary, as if rustc were missing.
	runner := &fakeRunner{}
	o := New(cfg, runner, nil, nil)

	l := BuildQuickLane(cfg)
	o.runQuickLane(context.Background(), l)

	if l.Failed {
		t.Error("missing compiler must not fail the lane")
	}
	vc := l.Checks[0]
	if vc.Status != lane.StatusPassed {
		t.Errorf("expected passed version check, got %s", vc.Status)
	}
	if vc.Name != "version consistency (1.0.0)" {
		t.Errorf("unexpected version check name %q", vc.Name)
	}
	ap := l.Checks[1]
	if ap.Status != lane.StatusWarned {
		t.Errorf("expected warned parity check, got %s", ap.Status)
	}
	if ap.Name != "API parity (compiler unavailable)" {
		t.Errorf("unexpected parity name %q", ap.Name)
	}
}

func TestQuickLane_ParityCompileAndRun(t *testing.T) {
	root := t.TempDir()
	writeManifests(t, root, "1.0.0", "1.0.0")
	writeParitySource(t, root)
	if err := os.MkdirAll(filepath.Join(root, "target"), 0o755); err != nil {
		t.Fatal(err)
	}
	bin := filepath.Join(root, "target", "check_api_parity")

	runner := &fakeRunner{
		run: func(name string, args []string) exec.Result {
			switch name {
			case "rustc":
				if err := os.WriteFile(bin, []byte("bin"), 0o755); err != nil {
					t.Fatal(err)
				}
				return exec.Result{}
			case bin:
				return exec.Result{Output: "parity ok"}
			default:
				t.Errorf("unexpected command %s", name)
				return exec.Result{}
			}
		},
	}

	cfg := config.Default(root)
	o := New(cfg, runner, nil, nil)
	l := BuildQuickLane(cfg)
	o.runQuickLane(context.Background(), l)

	if l.Failed {
		t.Error("lane should pass")
	}
	ap := l.Checks[1]
	if ap.Status != lane.StatusPassed {
		t.Errorf("expected passed parity check, got %s", ap.Status)
	}
	if ap.Output != "parity ok" {
		t.Errorf("unexpected parity output %q", ap.Output)
	}
	if len(runner.calls) != 2 {
		t.Errorf("expected rustc then the harness, got %v", runner.calls)
	}
}

func TestQuickLane_FreshBinarySkipsCompile(t *testing.T) {
	root := t.TempDir()
	writeManifests(t, root, "1.0.0", "1.0.0")
	src := writeParitySource(t, root)
	if err := os.MkdirAll(filepath.Join(root, "target"), 0o755); err != nil {
		t.Fatal(err)
	}
	bin := filepath.Join(root, "target", "check_api_parity")
	if err := os.WriteFile(bin, []byte("bin"), 0o755); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(src, old, old); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{
		run: func(name string, args []string) exec.Result {
			if name == "rustc" {
				t.Error("binary is fresh, rustc should not run")
			}
			return exec.Result{}
		},
	}

	cfg := config.Default(root)
	o := New(cfg, runner, nil, nil)
	l := BuildQuickLane(cfg)
	o.runQuickLane(context.Background(), l)

	if l.Checks[1].Status != lane.StatusPassed {
		t.Errorf("expected passed parity check, got %s", l.Checks[1].Status)
	}
	if len(runner.calls) != 1 {
		t.Errorf("expected only the harness invocation, got %v", runner.calls)
	}
}

func TestQuickLane_ParityFailure(t *testing.T) {
	root := t.TempDir()
	writeManifests(t, root, "1.0.0", "1.0.0")
	if err := os.MkdirAll(filepath.Join(root, "target"), 0o755); err != nil {
		t.Fatal(err)
	}
	bin := filepath.Join(root, "target", "check_api_parity")
	if err := os.WriteFile(bin, []byte("bin"), 0o755); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{
		run: func(name string, args []string) exec.Result {
			return exec.Result{Err: errors.New("exit status 1"), Output: "missing: Region::merge"}
		},
	}

	cfg := config.Default(root)
	o := New(cfg, runner, nil, nil)
	l := BuildQuickLane(cfg)
	o.runQuickLane(context.Background(), l)

	if !l.Failed {
		t.Error("a failing parity harness must fail the lane")
	}
	ap := l.Checks[1]
	if ap.Status != lane.StatusFailed {
		t.Errorf("expected failed parity check, got %s", ap.Status)
	}
	if ap.Output != "missing: Region::merge" {
		t.Errorf("harness output should be kept, got %q", ap.Output)
	}
}
