package winsign

import (
	"github.com/togglepad/winsign/core"
	"github.com/togglepad/winsign/internal/pecoff"
	"github.com/togglepad/winsign/internal/pfx"
)

// TargetInfo summarizes a PE image read locally.
// Re-exported from core package.
type TargetInfo = core.TargetInfo

// PFXInfo summarizes the signing certificate inside a PFX file.
// Re-exported from core package.
type PFXInfo = core.PFXInfo

// Inspect reads the PE image at target locally and reports its machine,
// bitness, certificate table presence, and canonical digest. The tool is
// not invoked; a populated certificate table says nothing about validity.
// Returns ErrNotPE when the file is not a PE image.
func (c *Client) Inspect(target string) (*TargetInfo, error) {
	if target == "" {
		return nil, core.ErrNoTarget
	}

	info, err := pecoff.Info(target)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("inspected target",
		"path", target, "machine", info.Machine, "signed", info.Signed)
	return info, nil
}

// InspectPFX decodes the PFX at path and summarizes its leaf certificate.
// An incorrect password returns ErrBadPassword.
func (c *Client) InspectPFX(path, password string) (*PFXInfo, error) {
	if path == "" {
		return nil, core.ErrNoTarget
	}

	return pfx.Inspect(path, password)
}

// VerifyPinned checks target's Authenticode signature against a pinned
// signer certificate (PEM), timestamp included, without invoking the
// tool. Policy-chain verification belongs to Verify; this is a local aid
// for release auditing.
func (c *Client) VerifyPinned(target, certPath string) (bool, error) {
	return pecoff.VerifyPinned(target, certPath)
}
