package git

import (
	"bytes"
	"os/exec"
)

// Runner executes a git command in dir and returns captured stdout/stderr.
// The default runner shells out to the git binary; tests install a fake.
type Runner interface {
	Run(dir string, args ...string) (stdout string, stderr string, err error)
}

type execRunner struct{}

func (execRunner) Run(dir string, args ...string) (string, string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

var defaultRunner Runner = execRunner{}

// DefaultRunner returns the runner used by all GitRepo operations.
func DefaultRunner() Runner {
	return defaultRunner
}

// SetDefaultRunner replaces the process-wide runner. Passing nil restores
// the exec-based runner.
func SetDefaultRunner(r Runner) {
	if r == nil {
		defaultRunner = execRunner{}
		return
	}
	defaultRunner = r
}
