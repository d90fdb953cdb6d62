// Package fakesigntool provides a scripted signing tool runner for tests.
package fakesigntool

import (
	"context"
	"sync"

	"github.com/togglepad/winsign/core"
)

// Call records one Run invocation.
type Call struct {
	Path string
	Args []string
}

// Response scripts one Run result.
type Response struct {
	Output   string
	ExitCode int
	Err      error
}

// Runner is a core.Runner that replays scripted responses and records
// every call. A zero-value Runner reports success with no output.
type Runner struct {
	mu        sync.Mutex
	calls     []Call
	responses []Response
}

var _ core.Runner = (*Runner)(nil)

// New returns a Runner replaying the given responses in order. The last
// response repeats once the script is exhausted.
func New(responses ...Response) *Runner {
	return &Runner{responses: responses}
}

// Run implements core.Runner.
func (r *Runner) Run(_ context.Context, path string, args []string) ([]byte, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Call{Path: path, Args: append([]string(nil), args...)})

	if len(r.responses) == 0 {
		return nil, 0, nil
	}
	resp := r.responses[0]
	if len(r.responses) > 1 {
		r.responses = r.responses[1:]
	}
	return []byte(resp.Output), resp.ExitCode, resp.Err
}

// Calls returns the recorded invocations.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}
