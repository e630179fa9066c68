// pkg/testutil/runner.go

package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/execute"
)

// Call is one command seen by a FakeRunner.
type Call struct {
	Command string
	Args    []string
	Dir     string
	Env     []string
}

// Line renders the call as a single command line.
func (c Call) Line() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Args, " ")
}

type hook struct {
	prefix string
	fn     func(execute.Options) (string, error)
}

// FakeRunner records commands instead of executing them. Hooks registered
// with On are matched by command-line prefix in registration order.
type FakeRunner struct {
	mu    sync.Mutex
	calls []Call
	hooks []hook
}

var _ execute.Runner = (*FakeRunner)(nil)

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{}
}

// On registers fn for every command whose line starts with prefix.
func (f *FakeRunner) On(prefix string, fn func(execute.Options) (string, error)) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks = append(f.hooks, hook{prefix: prefix, fn: fn})
	return f
}

// Fail makes every command starting with prefix fail with err and output.
func (f *FakeRunner) Fail(prefix, output string, err error) *FakeRunner {
	return f.On(prefix, func(execute.Options) (string, error) {
		return output, &execute.CommandError{Command: prefix, Code: 1, Output: output, Err: err}
	})
}

// Respond makes every command starting with prefix succeed with output.
func (f *FakeRunner) Respond(prefix, output string) *FakeRunner {
	return f.On(prefix, func(execute.Options) (string, error) {
		return output, nil
	})
}

func (f *FakeRunner) Run(_ context.Context, opts execute.Options) (string, error) {
	call := Call{Command: opts.Command, Args: append([]string(nil), opts.Args...), Dir: opts.Dir, Env: opts.Env}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	hooks := append([]hook(nil), f.hooks...)
	f.mu.Unlock()

	line := call.Line()
	for _, h := range hooks {
		if strings.HasPrefix(line, h.prefix) {
			return h.fn(opts)
		}
	}
	return "", nil
}

// Calls returns a copy of the recorded calls.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Lines returns the recorded calls as command lines.
func (f *FakeRunner) Lines() []string {
	calls := f.Calls()
	lines := make([]string, 0, len(calls))
	for _, c := range calls {
		lines = append(lines, c.Line())
	}
	return lines
}

// Ran reports whether any recorded command line starts with prefix.
func (f *FakeRunner) Ran(prefix string) bool {
	for _, l := range f.Lines() {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

// Index returns the position of the first command starting with prefix, or -1.
func (f *FakeRunner) Index(prefix string) int {
	for i, l := range f.Lines() {
		if strings.HasPrefix(l, prefix) {
			return i
		}
	}
	return -1
}
