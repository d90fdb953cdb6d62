package signtool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"

	"github.com/togglepad/winsign/core"
)

// ExecRunner runs the tool as a subprocess, capturing its combined output.
// When Mirror is set, output also streams there as the tool produces it,
// so operators see the tool's own text verbatim and live.
type ExecRunner struct {
	// Mirror receives a live copy of the tool's combined output. Optional.
	Mirror io.Writer
}

var _ core.Runner = (*ExecRunner)(nil)

// Run implements core.Runner. A non-zero exit from the tool is reported
// through exitCode, not err; err means the tool could not be run at all.
func (r *ExecRunner) Run(ctx context.Context, path string, args []string) ([]byte, int, error) {
	var buf bytes.Buffer
	out := io.Writer(&buf)
	if r.Mirror != nil {
		out = io.MultiWriter(&buf, r.Mirror)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return buf.Bytes(), -1, fmt.Errorf("`%s` interrupted: %w", redactedLine(path, args), ctxErr)
	}
	if err == nil {
		return buf.Bytes(), 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return buf.Bytes(), exitErr.ExitCode(), nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return nil, -1, fmt.Errorf("%w: %s", core.ErrToolNotFound, path)
	}
	return nil, -1, fmt.Errorf("`%s` failed to start: %w", redactedLine(path, args), err)
}

func redactedLine(path string, args []string) string {
	return core.Invocation{Path: path, Args: args}.String()
}
