package git

import (
	"os"
	"os/exec"
	"testing"
)

// initRepo creates a git repository with one commit and returns its path.
func initRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	tmpDir, err := os.MkdirTemp("", "git-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	cmds := [][]string{
		{"init"},
		{"-c", "user.email=test@example.com", "-c", "user.name=test", "commit", "--allow-empty", "-m", "initial"},
	}
	for _, args := range cmds {
		cmd := exec.Command("git", args...)
		cmd.Dir = tmpDir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v: %s", args, err, out)
		}
	}
	return tmpDir
}

func TestExecRunner_ShortHead(t *testing.T) {
	repo := initRepo(t)

	head, err := NewRunner(repo).ShortHead()
	if err != nil {
		t.Fatalf("ShortHead() error = %v", err)
	}
	if len(head) < 6 {
		t.Errorf("ShortHead() = %q, want an abbreviated hash", head)
	}
}

func TestExecRunner_ShortHead_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	tmpDir, err := os.MkdirTemp("", "git-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	if _, err := NewRunner(tmpDir).ShortHead(); err == nil {
		t.Error("ShortHead() should fail outside a repository")
	}
}
