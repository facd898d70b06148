package orchestrator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/voxelforge/prepush/internal/config"
	"github.com/voxelforge/prepush/internal/exec"
	"github.com/voxelforge/prepush/internal/lane"
)

// Lane names. The quick and bench lanes get custom execution in the
// scheduler; all others run through the standard sequential path.
const (
	LaneNative = "Native"
	LaneWASM   = "WASM"
	LaneQuick  = "Quick"
	LaneBench  = "Bench"
)

// BuildNativeLane assembles the native compilation and test lane. The
// maturin packaging check is included only when maturin is installed.
func BuildNativeLane(cfg *config.Config, runner exec.CommandRunner) *lane.Lane {
	l := &lane.Lane{Name: LaneNative, Color: "cyan", Dir: cfg.RootDir}
	l.Checks = []*lane.Check{
		{Name: "cargo check (default)", Argv: []string{"cargo", "check"}},
		{Name: "cargo check (simulation)", Argv: []string{"cargo", "check", "--features", "simulation"}},
		{Name: "cargo check (ffi+meshing)", Argv: []string{"cargo", "check", "--features", "ffi,meshing"}},
		{Name: "cargo check (ffi+simulation)", Argv: []string{"cargo", "check", "--features", "ffi,simulation"}},
		{Name: "cargo check (python+simulation)", Argv: []string{"cargo", "check", "--features", "python,simulation"}},
		{Name: "cargo check (python+meshing)", Argv: []string{"cargo", "check", "--features", "python,meshing"}},
		{Name: "cargo test (default)", Argv: []string{"cargo", "test"}},
		{Name: "cargo test (simulation)", Argv: []string{"cargo", "test", "--features", "simulation"}},
		{Name: "cargo test (insign IO)", Argv: []string{"cargo", "test", "--lib", "--features", "simulation", "typed_executor::insign_io"}},
	}

	if _, err := runner.LookPath("maturin"); err == nil {
		l.Checks = append(l.Checks, &lane.Check{
			Name: "maturin build",
			Argv: []string{"maturin", "build", "--features", "python,simulation"},
		})
	}

	appendExtraChecks(l, cfg)
	return l
}

// BuildWASMLane assembles the web-target lane. The wrapper script and node
// test checks are included only when their files exist in the workspace.
func BuildWASMLane(cfg *config.Config) *lane.Lane {
	l := &lane.Lane{Name: LaneWASM, Color: "magenta", Dir: cfg.RootDir}
	l.Checks = []*lane.Check{
		{
			Name: "cargo check (wasm+simulation)",
			Argv: []string{"cargo", "check", "--target", "wasm32-unknown-unknown", "--features", "wasm,simulation"},
		},
	}

	if fileExists(filepath.Join(cfg.RootDir, "build-wasm.sh")) {
		l.Checks = append(l.Checks, &lane.Check{Name: "build-wasm.sh", Argv: []string{"./build-wasm.sh"}})
	}
	if fileExists(filepath.Join(cfg.RootDir, "tests", "node_wasm_test.js")) {
		l.Checks = append(l.Checks, &lane.Check{Name: "node WASM tests", Argv: []string{"node", "tests/node_wasm_test.js"}})
	}

	appendExtraChecks(l, cfg)
	return l
}

// BuildQuickLane assembles the fast consistency lane. Both checks are
// pseudo-checks without a command, executed by the scheduler itself.
func BuildQuickLane(cfg *config.Config) *lane.Lane {
	return &lane.Lane{
		Name:  LaneQuick,
		Color: "yellow",
		Dir:   cfg.RootDir,
		Checks: []*lane.Check{
			{Name: "version consistency"},
			{Name: "API parity"},
		},
	}
}

// BuildBenchLane assembles the benchmark lane.
func BuildBenchLane(cfg *config.Config) *lane.Lane {
	return &lane.Lane{
		Name:  LaneBench,
		Color: "blue",
		Dir:   cfg.RootDir,
		Checks: []*lane.Check{
			{Name: "cargo bench (snapshot)", Argv: []string{"cargo", "bench", "--bench", "snapshot_bench"}},
			{Name: "cargo bench (region)", Argv: []string{"cargo", "bench", "--bench", "region_bench"}},
		},
	}
}

// BuildLanes constructs the lane set for one run. benchLane is nil when
// skipBench is set; lanes is empty when benchOnly is set. The bench lane is
// kept separate because the summary counts it apart from the others.
func BuildLanes(cfg *config.Config, runner exec.CommandRunner, skipBench, benchOnly bool) (lanes []*lane.Lane, benchLane *lane.Lane) {
	if !benchOnly {
		lanes = append(lanes, BuildNativeLane(cfg, runner))
		lanes = append(lanes, BuildWASMLane(cfg))
		lanes = append(lanes, BuildQuickLane(cfg))
	}
	if !skipBench {
		benchLane = BuildBenchLane(cfg)
	}
	return lanes, benchLane
}

// appendExtraChecks adds the project manifest's extra checks declared for
// this lane.
func appendExtraChecks(l *lane.Lane, cfg *config.Config) {
	for _, ec := range cfg.ExtraChecks {
		if strings.EqualFold(ec.Lane, l.Name) {
			l.Checks = append(l.Checks, &lane.Check{Name: ec.Name, Argv: ec.Command})
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
