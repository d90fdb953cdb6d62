package winsign

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/togglepad/winsign/core"
	"github.com/togglepad/winsign/internal/signtool"
)

// Invocation records a single run of the external tool.
// Re-exported from core package.
type Invocation = core.Invocation

// Client drives the external signing tool.
type Client struct {
	runner  core.Runner
	locator core.Locator
	logger  *slog.Logger

	// configuration passed to the tool layer
	toolPath  string
	extraArgs []string
	output    io.Writer
}

// NewClient creates a new winsign client.
//
// By default the tool is discovered through the WINSIGN_SIGNTOOL
// environment variable, PATH, and on Windows the installed Windows Kits
// roots. Use WithSigntool to pin a binary. Tool output is captured on
// results but not streamed anywhere unless WithOutput is set.
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	// Wire up default implementations
	if c.runner == nil {
		c.runner = &signtool.ExecRunner{Mirror: c.output}
	}
	if c.locator == nil {
		c.locator = &signtool.Locator{Explicit: c.toolPath}
	}

	return c, nil
}

// Locate resolves the signing tool binary without running it.
// Returns ErrToolNotFound when discovery exhausts every location.
func (c *Client) Locate() (string, error) {
	return c.tool()
}

// tool resolves the signing tool binary.
func (c *Client) tool() (string, error) {
	path, err := c.locator.Locate()
	if err != nil {
		return "", err
	}
	c.logger.Debug("resolved signing tool", "path", path)
	return path, nil
}

// run executes one tool invocation and records it.
func (c *Client) run(ctx context.Context, path string, args []string) (core.Invocation, error) {
	c.logger.Debug("running signing tool", "cmd", core.Invocation{Path: path, Args: args}.String())

	start := time.Now()
	out, code, err := c.runner.Run(ctx, path, args)
	inv := core.Invocation{
		Path:     path,
		Args:     args,
		ExitCode: code,
		Output:   out,
		Duration: time.Since(start),
	}
	if err != nil {
		return inv, err
	}

	c.logger.Debug("signing tool exited", "code", code, "duration", inv.Duration)
	return inv, nil
}
