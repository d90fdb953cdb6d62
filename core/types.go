// Package core provides the shared types and interfaces for winsign.
//
// This package exists to break import cycles between the root winsign package
// and internal implementation packages. The winsign package re-exports all
// public types from this package, so external users should import winsign
// directly, not winsign/core.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for common failure conditions.
var (
	// ErrToolNotFound indicates the signing tool could not be located.
	ErrToolNotFound = errors.New("winsign: signing tool not found")

	// ErrIdentityConflict indicates both a subject name and a PFX file were set.
	ErrIdentityConflict = errors.New("winsign: subject and pfx are mutually exclusive")

	// ErrNoIdentity indicates no signing identity was selected.
	ErrNoIdentity = errors.New("winsign: no signing identity")

	// ErrNoTarget indicates no target file was given.
	ErrNoTarget = errors.New("winsign: no target file")

	// ErrUnknownDigest indicates an unrecognized digest algorithm name.
	ErrUnknownDigest = errors.New("winsign: unknown digest algorithm")

	// ErrSignFailed indicates the tool's sign invocation returned non-zero.
	ErrSignFailed = errors.New("winsign: sign failed")

	// ErrVerifyFailed indicates the tool's verify invocation returned non-zero.
	ErrVerifyFailed = errors.New("winsign: verify failed")

	// ErrNoSignature indicates the target carries no Authenticode signature.
	ErrNoSignature = errors.New("winsign: no signature")

	// ErrBadPassword indicates the PFX password is incorrect.
	ErrBadPassword = errors.New("winsign: incorrect pfx password")

	// ErrNotPE indicates the file is not a PE image.
	ErrNotPE = errors.New("winsign: not a pe image")
)

// IdentityKind discriminates which certificate selector an Identity carries.
type IdentityKind int

const (
	// IdentityNone means no selector is set.
	IdentityNone IdentityKind = iota
	// IdentitySubject selects a certificate from the signer's store by subject name.
	IdentitySubject
	// IdentityPFX selects a certificate from a PFX (PKCS #12) file.
	IdentityPFX
)

// Identity selects the signing certificate. Exactly one of Subject or
// PFXPath must be set; the two modes are mutually exclusive.
type Identity struct {
	// Subject is a substring of the certificate subject name, resolved
	// against the local certificate store by the tool.
	Subject string
	// PFXPath is the path to a PFX file holding the certificate and
	// private key.
	PFXPath string
	// Password unlocks the PFX file. May be empty; ignored unless
	// PFXPath is set.
	Password string
}

// Kind reports which selector the identity carries. When both are set,
// Kind prefers the PFX; Validate reports the conflict.
func (id Identity) Kind() IdentityKind {
	switch {
	case id.PFXPath != "":
		return IdentityPFX
	case id.Subject != "":
		return IdentitySubject
	}
	return IdentityNone
}

// Validate checks that exactly one selector is set.
// Returns ErrIdentityConflict when both are set, ErrNoIdentity when
// neither is (a bare password does not select an identity).
func (id Identity) Validate() error {
	switch {
	case id.Subject != "" && id.PFXPath != "":
		return ErrIdentityConflict
	case id.Subject == "" && id.PFXPath == "":
		if id.Password != "" {
			return fmt.Errorf("%w: password given without a pfx file", ErrNoIdentity)
		}
		return ErrNoIdentity
	}
	return nil
}

// Timestamp configures RFC 3161 trusted timestamping.
type Timestamp struct {
	// URL is the timestamp authority endpoint. Empty disables timestamping.
	URL string
	// Digest is the timestamp digest algorithm. The zero value means SHA-256.
	Digest Digest
}

// Enabled reports whether a timestamp authority is configured.
func (t Timestamp) Enabled() bool { return t.URL != "" }

// Invocation records a single run of the external tool.
type Invocation struct {
	// Path is the tool binary that was executed.
	Path string
	// Args is the exact argument vector passed to the tool.
	Args []string
	// ExitCode is the tool's exit status.
	ExitCode int
	// Output is the combined stdout and stderr of the tool.
	Output []byte
	// Duration is the wall-clock time the tool ran.
	Duration time.Duration
}

// String renders the invocation as a command line with the PFX password
// redacted. Safe for logs and error messages.
func (inv Invocation) String() string {
	return strings.Join(append([]string{inv.Path}, RedactArgs(inv.Args)...), " ")
}

// RedactArgs returns a copy of args with the value following a /p flag
// masked, so PFX passwords never reach logs or error text.
func RedactArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if strings.EqualFold(out[i], "/p") {
			out[i+1] = "***"
		}
	}
	return out
}

// ToolError wraps a failed tool invocation. It unwraps to the sentinel
// classifying the failure (ErrSignFailed, ErrVerifyFailed, ErrNoSignature,
// ErrBadPassword) so callers can branch with errors.Is while still reaching
// the tool's exit code and output.
type ToolError struct {
	// Op is the tool operation that failed ("sign" or "verify").
	Op string
	// Invocation is the failed run, output included.
	Invocation Invocation
	// Sentinel classifies the failure.
	Sentinel error
}

// Error renders the failure with the redacted command line.
func (e *ToolError) Error() string {
	return fmt.Sprintf("`%s` failed: exit status %d", e.Invocation.String(), e.Invocation.ExitCode)
}

// Unwrap returns the classification sentinel.
func (e *ToolError) Unwrap() error { return e.Sentinel }

// ExitCode returns the tool's exit status, for process exit propagation.
func (e *ToolError) ExitCode() int { return e.Invocation.ExitCode }

// SignResult describes a successful sign invocation.
type SignResult struct {
	Invocation

	// Target is the file that was signed in place.
	Target string
	// Digest is the canonical digest of the target after signing (sha256:...).
	Digest string
	// Size is the target size in bytes after signing.
	Size int64
	// Backup is the path of the pre-sign backup, empty when none was taken.
	Backup string
}

// VerifyResult describes a successful verify invocation.
type VerifyResult struct {
	Invocation

	// Target is the file that was verified.
	Target string
	// Signatures is the number of signatures the tool reported as
	// successfully verified, 0 when the count could not be parsed.
	Signatures int
}

// TargetInfo summarizes a PE image read locally, without the tool.
type TargetInfo struct {
	// Path is the inspected file.
	Path string
	// Size is the file size in bytes.
	Size int64
	// Digest is the canonical digest of the file (sha256:...).
	Digest string
	// Machine is the PE machine name ("amd64", "386", "arm64").
	Machine string
	// Is64Bit reports whether the image uses the PE32+ optional header.
	Is64Bit bool
	// Signed reports whether the certificate table data directory is populated.
	Signed bool
	// SignatureSize is the certificate table size in bytes, 0 when unsigned.
	SignatureSize int64
}

// PFXInfo summarizes the signing certificate inside a PFX file.
type PFXInfo struct {
	// Path is the inspected PFX file.
	Path string
	// Subject is the leaf certificate subject.
	Subject string
	// Issuer is the leaf certificate issuer.
	Issuer string
	// Serial is the leaf certificate serial number, decimal.
	Serial string
	// NotBefore and NotAfter bound the certificate validity window.
	NotBefore time.Time
	NotAfter  time.Time
	// CAChain is the number of CA certificates bundled with the leaf.
	CAChain int
}

// Runner executes the external signing tool.
// This interface is implemented by internal/signtool.
type Runner interface {
	// Run executes path with args, blocking until the process exits.
	// Output is the combined stdout and stderr. A non-zero exit is not an
	// error at this layer: err is reserved for failing to run the tool at
	// all (missing binary, canceled context).
	Run(ctx context.Context, path string, args []string) (output []byte, exitCode int, err error)
}

// Locator resolves the path of the external signing tool.
// This interface is implemented by internal/signtool.
type Locator interface {
	// Locate returns the path of the tool binary.
	// Returns ErrToolNotFound when no candidate exists.
	Locate() (string, error)
}
