package winsign

import (
	"io"
	"log/slog"

	"github.com/togglepad/winsign/core"
)

// ClientOption configures a Client.
type ClientOption func(*Client) error

// SignOption configures a Sign operation.
type SignOption func(*signConfig)

// VerifyOption configures a Verify operation.
type VerifyOption func(*verifyConfig)

// Digest identifies a hash algorithm accepted by the signing tool.
// Re-exported from core package.
type Digest = core.Digest

// Digest algorithms understood by the tool. SHA-256 is the default for
// both the file digest and the timestamp digest.
const (
	DigestSHA1   = core.DigestSHA1
	DigestSHA256 = core.DigestSHA256
	DigestSHA384 = core.DigestSHA384
	DigestSHA512 = core.DigestSHA512
)

// ParseDigest converts a case-insensitive algorithm name to a Digest.
// Re-exported from core package.
func ParseDigest(s string) (Digest, error) { return core.ParseDigest(s) }

// DigestNames lists the accepted algorithm names, for flag completion.
// Re-exported from core package.
func DigestNames() []string { return core.DigestNames() }

// signConfig holds configuration for Sign operations.
type signConfig struct {
	fileDigest     Digest
	description    string
	descriptionURL string
	appendSig      bool
	backup         bool
	backupCompress bool
}

// verifyConfig holds configuration for Verify operations.
type verifyConfig struct {
	allSignatures bool
}

// WithAllSignatures verifies every signature in the file, not just the
// primary one.
func WithAllSignatures() VerifyOption {
	return func(c *verifyConfig) {
		c.allSignatures = true
	}
}

// WithAppend appends the new signature instead of replacing the primary one.
func WithAppend() SignOption {
	return func(c *signConfig) {
		c.appendSig = true
	}
}

// WithBackup copies the target aside before the tool mutates it.
func WithBackup() SignOption {
	return func(c *signConfig) {
		c.backup = true
	}
}

// WithCompressedBackup is WithBackup with zstd compression.
func WithCompressedBackup() SignOption {
	return func(c *signConfig) {
		c.backup = true
		c.backupCompress = true
	}
}

// WithDescription attaches a content description and URL to the signature.
func WithDescription(desc, url string) SignOption {
	return func(c *signConfig) {
		c.description = desc
		c.descriptionURL = url
	}
}

// WithExtraArgs appends passthrough arguments to every tool invocation,
// placed before the target path.
func WithExtraArgs(args ...string) ClientOption {
	return func(c *Client) error {
		c.extraArgs = append(c.extraArgs, args...)
		return nil
	}
}

// WithFileDigest sets the file digest algorithm. Defaults to SHA-256.
func WithFileDigest(d Digest) SignOption {
	return func(c *signConfig) {
		c.fileDigest = d
	}
}

// WithLocator sets a custom tool locator. Primarily for tests.
func WithLocator(l core.Locator) ClientOption {
	return func(c *Client) error {
		c.locator = l
		return nil
	}
}

// WithLogger sets a logger for the client. By default, logging is disabled.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithOutput streams the tool's combined output to w as the tool runs,
// in addition to capturing it on results.
func WithOutput(w io.Writer) ClientOption {
	return func(c *Client) error {
		c.output = w
		return nil
	}
}

// WithRunner sets a custom tool runner. Primarily for tests.
func WithRunner(r core.Runner) ClientOption {
	return func(c *Client) error {
		c.runner = r
		return nil
	}
}

// WithSigntool pins the signing tool binary, skipping discovery.
func WithSigntool(path string) ClientOption {
	return func(c *Client) error {
		c.toolPath = path
		return nil
	}
}
