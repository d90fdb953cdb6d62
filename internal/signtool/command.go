// Package signtool adapts the external Authenticode signing tool:
// locating the binary, building argument vectors, running it, and
// classifying its output.
package signtool

import (
	"github.com/togglepad/winsign/core"
)

// Tool operations.
const (
	OpSign   = "sign"
	OpVerify = "verify"
)

// Command is an argument vector for the signing tool under construction.
type Command []string

// NewSign returns a Command for the tool's sign operation.
func NewSign() Command {
	return Command{OpSign}
}

// NewVerify returns a Command for the tool's verify operation.
func NewVerify() Command {
	return Command{OpVerify}
}

// SetSubject selects the signing certificate by subject name from the
// local certificate store (/n).
func (c *Command) SetSubject(subject string) {
	*c = append(*c, "/n", subject)
}

// SetPFX selects the signing certificate from a PFX file (/f) unlocked by
// password (/p). The password flag is always emitted, even when empty, so
// the tool never falls back to an interactive prompt.
func (c *Command) SetPFX(path, password string) {
	*c = append(*c, "/f", path, "/p", password)
}

// SetFileDigest selects the file digest algorithm (/fd).
func (c *Command) SetFileDigest(d core.Digest) {
	*c = append(*c, "/fd", d.Arg())
}

// SetTimestamp requests an RFC 3161 trusted timestamp from url (/tr)
// digested with d (/td).
func (c *Command) SetTimestamp(url string, d core.Digest) {
	*c = append(*c, "/tr", url, "/td", d.Arg())
}

// SetDescription attaches the signed content description (/d) and its
// URL (/du). Empty values are skipped.
func (c *Command) SetDescription(desc, url string) {
	if desc != "" {
		*c = append(*c, "/d", desc)
	}
	if url != "" {
		*c = append(*c, "/du", url)
	}
}

// SetAppendSignature appends the new signature instead of replacing the
// primary one (/as).
func (c *Command) SetAppendSignature() {
	*c = append(*c, "/as")
}

// SetDefaultAuthenticodePolicy verifies against the default Authenticode
// policy instead of the Windows driver policy (/pa).
func (c *Command) SetDefaultAuthenticodePolicy() {
	*c = append(*c, "/pa")
}

// SetVerbose asks the tool to print full verification details (/v).
func (c *Command) SetVerbose() {
	*c = append(*c, "/v")
}

// SetAllSignatures verifies every signature in the file, not just the
// primary one (/all).
func (c *Command) SetAllSignatures() {
	*c = append(*c, "/all")
}

// SetExtra appends operator-supplied passthrough arguments verbatim.
func (c *Command) SetExtra(args ...string) {
	*c = append(*c, args...)
}

// Build finalizes the argument vector with the target file.
func (c *Command) Build(target string) []string {
	return append(*c, target)
}
