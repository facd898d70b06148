// Package project locates the target workspace and reads the version
// numbers it publishes.
package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// versionRe matches the first version assignment in a TOML manifest.
var versionRe = regexp.MustCompile(`^version\s*=\s*"([^"]+)"`)

// FindRoot walks upward from start until it finds a directory containing
// Cargo.toml and returns it.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "Cargo.toml")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no Cargo.toml found above %s", start)
}

// CargoVersion reads the crate version from Cargo.toml at root. Returns
// "unknown" when the file is missing or carries no version line.
func CargoVersion(root string) string {
	return manifestVersion(filepath.Join(root, "Cargo.toml"))
}

// PyprojectVersion reads the package version from pyproject.toml at root.
// Returns "unknown" when the file is missing or carries no version line.
func PyprojectVersion(root string) string {
	return manifestVersion(filepath.Join(root, "pyproject.toml"))
}

// manifestVersion scans a TOML file for the first line-leading version
// assignment. Quoted values inside other sections do not match because the
// pattern is anchored to the line start.
func manifestVersion(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "unknown"
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := versionRe.FindStringSubmatch(scanner.Text()); m != nil {
			return m[1]
		}
	}
	return "unknown"
}
