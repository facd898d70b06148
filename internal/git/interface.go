// Package git provides the few git operations the verifier needs.
package git

// Runner reads repository state for baseline recording.
type Runner interface {
	// ShortHead returns the abbreviated commit hash of HEAD.
	ShortHead() (string, error)
}
