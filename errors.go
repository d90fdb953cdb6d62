package winsign

import "github.com/togglepad/winsign/core"

// Sentinel errors for common failure conditions.
// Re-exported from core package.
var (
	// ErrToolNotFound indicates the signing tool could not be located.
	ErrToolNotFound = core.ErrToolNotFound

	// ErrIdentityConflict indicates both a subject name and a PFX file were set.
	ErrIdentityConflict = core.ErrIdentityConflict

	// ErrNoIdentity indicates no signing identity was selected.
	ErrNoIdentity = core.ErrNoIdentity

	// ErrNoTarget indicates no target file was given.
	ErrNoTarget = core.ErrNoTarget

	// ErrUnknownDigest indicates an unrecognized digest algorithm name.
	ErrUnknownDigest = core.ErrUnknownDigest

	// ErrSignFailed indicates the tool's sign invocation returned non-zero.
	ErrSignFailed = core.ErrSignFailed

	// ErrVerifyFailed indicates the tool's verify invocation returned non-zero.
	ErrVerifyFailed = core.ErrVerifyFailed

	// ErrNoSignature indicates the target carries no Authenticode signature.
	ErrNoSignature = core.ErrNoSignature

	// ErrBadPassword indicates the PFX password is incorrect.
	ErrBadPassword = core.ErrBadPassword

	// ErrNotPE indicates the file is not a PE image.
	ErrNotPE = core.ErrNotPE
)

// ToolError wraps a failed tool invocation with its exit code and output.
// Re-exported from core package.
type ToolError = core.ToolError
