package winsign

import (
	"context"

	"github.com/togglepad/winsign/core"
	"github.com/togglepad/winsign/internal/signtool"
)

// VerifyResult describes a successful verify invocation.
// Re-exported from core package.
type VerifyResult = core.VerifyResult

// Verify checks target's signature against the default Authenticode
// policy with verbose output.
//
// The tool's exit status decides the outcome. Failures surface as a
// *ToolError unwrapping to ErrNoSignature when the target carries no
// signature, or ErrVerifyFailed otherwise; the tool's full output rides
// along on both results and errors.
func (c *Client) Verify(ctx context.Context, target string, opts ...VerifyOption) (*VerifyResult, error) {
	cfg := &verifyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if target == "" {
		return nil, core.ErrNoTarget
	}

	tool, err := c.tool()
	if err != nil {
		return nil, err
	}

	cmd := signtool.NewVerify()
	cmd.SetDefaultAuthenticodePolicy()
	cmd.SetVerbose()
	if cfg.allSignatures {
		cmd.SetAllSignatures()
	}
	cmd.SetExtra(c.extraArgs...)

	inv, err := c.run(ctx, tool, cmd.Build(target))
	if err != nil {
		return nil, err
	}
	if inv.ExitCode != 0 {
		return nil, signtool.Classify(signtool.OpVerify, inv)
	}

	return &VerifyResult{
		Invocation: inv,
		Target:     target,
		Signatures: signtool.ParseVerifiedCount(inv.Output),
	}, nil
}
