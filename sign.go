package winsign

import (
	"context"
	"fmt"
	"os"

	"github.com/opencontainers/go-digest"

	"github.com/togglepad/winsign/core"
	"github.com/togglepad/winsign/internal/backup"
	"github.com/togglepad/winsign/internal/signtool"
)

// Identity selects the signing certificate: a subject name resolved
// against the local store, or a PFX file with its password.
// Re-exported from core package.
type Identity = core.Identity

// Timestamp configures RFC 3161 trusted timestamping.
// Re-exported from core package.
type Timestamp = core.Timestamp

// SignResult describes a successful sign invocation.
// Re-exported from core package.
type SignResult = core.SignResult

// Sign signs target in place with the given identity and, when ts is
// configured, an RFC 3161 trusted timestamp. The file digest defaults to
// SHA-256; so does the timestamp digest.
//
// Sign validates only the identity selection locally. Everything else,
// including a missing target, an unreadable PFX, a wrong password, or an
// unreachable timestamp authority, is the tool's call: its exit status
// decides, and its output is retained verbatim on the result or error.
// Re-signing an already-signed target succeeds; the tool replaces the
// primary signature unless WithAppend is given.
func (c *Client) Sign(ctx context.Context, target string, id Identity, ts Timestamp, opts ...SignOption) (*SignResult, error) {
	// Apply options
	cfg := &signConfig{
		fileDigest: DigestSHA256, // default
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if target == "" {
		return nil, core.ErrNoTarget
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tool, err := c.tool()
	if err != nil {
		return nil, err
	}

	var backupPath string
	if cfg.backup {
		backupPath, err = backup.Create(target, cfg.backupCompress)
		if err != nil {
			return nil, fmt.Errorf("backup target: %w", err)
		}
		c.logger.Debug("backed up target", "path", backupPath)
	}

	cmd := signtool.NewSign()
	switch id.Kind() {
	case core.IdentityPFX:
		cmd.SetPFX(id.PFXPath, id.Password)
	case core.IdentitySubject:
		cmd.SetSubject(id.Subject)
	}
	cmd.SetFileDigest(cfg.fileDigest)
	if ts.Enabled() {
		cmd.SetTimestamp(ts.URL, ts.Digest)
	}
	cmd.SetDescription(cfg.description, cfg.descriptionURL)
	if cfg.appendSig {
		cmd.SetAppendSignature()
	}
	cmd.SetExtra(c.extraArgs...)

	inv, err := c.run(ctx, tool, cmd.Build(target))
	if err != nil {
		return nil, err
	}
	if inv.ExitCode != 0 {
		return nil, signtool.Classify(signtool.OpSign, inv)
	}

	res := &SignResult{
		Invocation: inv,
		Target:     target,
		Backup:     backupPath,
	}
	// The tool already reported success; the digest is best-effort reporting.
	if err := fillDigest(res); err != nil {
		c.logger.Debug("digest after signing failed", "error", err)
	}
	return res, nil
}

// fillDigest records the canonical digest and size of the signed target.
func fillDigest(res *SignResult) error {
	f, err := os.Open(res.Target)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}
	dgst, err := digest.Canonical.FromReader(f)
	if err != nil {
		return err
	}

	res.Size = st.Size()
	res.Digest = dgst.String()
	return nil
}
