package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/voxelforge/prepush/internal/config"
	"github.com/voxelforge/prepush/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Check required tools and create a project config template",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	root, err := project.FindRoot(cwd)
	if err != nil {
		return err
	}

	fmt.Printf("Checking tools for %s...\n\n", root)

	ok := true
	for _, tool := range []string{"cargo", "rustc", "git"} {
		if _, err := exec.LookPath(tool); err != nil {
			printStatus("✗", tool+" not found", color.FgRed)
			ok = false
		} else {
			printStatus("✓", tool+" found", color.FgGreen)
		}
	}

	for _, tool := range []string{"maturin", "node"} {
		if _, err := exec.LookPath(tool); err != nil {
			printStatus("⚠", tool+" not found (its checks will be skipped)", color.FgYellow)
		} else {
			printStatus("✓", tool+" found", color.FgGreen)
		}
	}

	probes := []struct {
		path string
		desc string
	}{
		{"build-wasm.sh", "wasm bundle build"},
		{"tests/node_wasm_test.js", "node wasm tests"},
		{"tools/check_api_parity.rs", "API parity check"},
	}
	for _, probe := range probes {
		if _, err := os.Stat(filepath.Join(root, probe.path)); err != nil {
			printStatus("⚠", probe.path+" missing ("+probe.desc+" will be skipped)", color.FgYellow)
		} else {
			printStatus("✓", probe.path+" present", color.FgGreen)
		}
	}

	fmt.Println()
	if err := writeProjectTemplate(root); err != nil {
		return err
	}
	fmt.Println("User config: " + config.GetUserConfigPath())

	if !ok {
		return fmt.Errorf("required tools missing")
	}
	fmt.Println("Ready. Run 'prepush' before pushing.")
	return nil
}

// writeProjectTemplate creates a commented-out .prepush.yaml at the
// workspace root unless one already exists.
func writeProjectTemplate(root string) error {
	path := filepath.Join(root, config.ProjectFileName)
	if _, err := os.Stat(path); err == nil {
		printStatus("✓", config.ProjectFileName+" exists", color.FgGreen)
		return nil
	}

	template := `# prepush project configuration.
# Extra checks are appended to the named lane (native or wasm).
# checks:
#   - lane: native
#     name: "cargo clippy"
#     command: ["cargo", "clippy", "--", "-D", "warnings"]
`
	if err := os.WriteFile(path, []byte(template), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.ProjectFileName, err)
	}
	printStatus("✓", "Created "+config.ProjectFileName+" template", color.FgGreen)
	return nil
}

func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}
