package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/voxelforge/prepush/internal/lane"
	"github.com/voxelforge/prepush/internal/project"
)

// runQuickLane executes the fast consistency lane. Its checks are not plain
// subprocesses: version consistency reads the two manifests directly, and
// API parity compiles and runs a small harness with a staleness cache.
func (o *Orchestrator) runQuickLane(ctx context.Context, l *lane.Lane) {
	start := time.Now()
	notify := o.notify(l)

	vc := l.Checks[0]
	vc.Status = lane.StatusRunning
	notify(vc)

	vcStart := time.Now()
	cv := project.CargoVersion(l.Dir)
	pv := project.PyprojectVersion(l.Dir)
	vc.Elapsed = time.Since(vcStart)
	if cv == pv {
		vc.Name = fmt.Sprintf("version consistency (%s)", cv)
		vc.Status = lane.StatusPassed
		notify(vc)
	} else {
		vc.Name = fmt.Sprintf("version mismatch (%s vs %s)", cv, pv)
		vc.Output = fmt.Sprintf("Cargo.toml=%s  pyproject.toml=%s", cv, pv)
		vc.Status = lane.StatusFailed
		l.Failed = true
		notify(vc)
		l.SkipPending(notify)
		l.Elapsed = time.Since(start)
		return
	}

	ap := l.Checks[1]
	ap.Status = lane.StatusRunning
	notify(ap)

	apStart := time.Now()
	src := filepath.Join(l.Dir, "tools", "check_api_parity.rs")
	bin := filepath.Join(l.Dir, "target", "check_api_parity")
	if parityNeedsCompile(src, bin) {
		// Compile result ignored; a missing binary downgrades the check below.
		o.runner.Run(ctx, l.Dir, "rustc", src, "-o", bin)
	}

	if fileExists(bin) {
		res := o.runner.Run(ctx, l.Dir, bin)
		ap.Elapsed = time.Since(apStart)
		ap.Output = res.Output
		if res.Ok() {
			ap.Status = lane.StatusPassed
		} else {
			ap.Status = lane.StatusFailed
			l.Failed = true
		}
	} else {
		ap.Elapsed = time.Since(apStart)
		ap.Status = lane.StatusWarned
		ap.Name = "API parity (compiler unavailable)"
	}
	notify(ap)

	l.Elapsed = time.Since(start)
}

// parityNeedsCompile reports whether the parity harness must be rebuilt:
// the source exists and the binary is missing or older than the source.
func parityNeedsCompile(src, bin string) bool {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false
	}
	binInfo, err := os.Stat(bin)
	if err != nil {
		return true
	}
	return srcInfo.ModTime().After(binInfo.ModTime())
}
