package git

import (
	"strings"
	"testing"
)

type stubCall struct {
	prefix string
	stdout string
	stderr string
	err    error
}

// fakeRunner matches commands by argument prefix. Stubs are consumed in
// the order they were added, so the same command can be stubbed twice with
// different results.
type fakeRunner struct {
	stubs []stubCall
	calls []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{}
}

func (f *fakeRunner) stub(prefix, stdout string, err error) {
	f.stubs = append(f.stubs, stubCall{prefix: prefix, stdout: stdout, err: err})
}

func (f *fakeRunner) stubWithStderr(prefix, stdout, stderr string, err error) {
	f.stubs = append(f.stubs, stubCall{prefix: prefix, stdout: stdout, stderr: stderr, err: err})
}

func (f *fakeRunner) Run(dir string, args ...string) (string, string, error) {
	call := strings.Join(args, " ")
	f.calls = append(f.calls, call)

	for i, s := range f.stubs {
		if strings.HasPrefix(call, s.prefix) {
			f.stubs = append(f.stubs[:i], f.stubs[i+1:]...)
			return s.stdout, s.stderr, s.err
		}
	}
	return "", "", nil
}

func useRunner(t *testing.T, runner Runner) {
	t.Helper()
	prev := DefaultRunner()
	SetDefaultRunner(runner)
	t.Cleanup(func() {
		SetDefaultRunner(prev)
	})
}
