package core

import (
	"fmt"
	"strings"
)

// Digest identifies a hash algorithm accepted by the signing tool.
type Digest string

// Digest algorithms understood by signtool-class tools. SHA-256 is the
// default for both the file digest and the timestamp digest.
const (
	DigestSHA1   Digest = "sha1"
	DigestSHA256 Digest = "sha256"
	DigestSHA384 Digest = "sha384"
	DigestSHA512 Digest = "sha512"
)

// DigestNames lists the accepted algorithm names, for flag completion.
func DigestNames() []string {
	return []string{string(DigestSHA1), string(DigestSHA256), string(DigestSHA384), string(DigestSHA512)}
}

// ParseDigest converts a case-insensitive algorithm name to a Digest.
// The empty string selects SHA-256, the default.
func ParseDigest(s string) (Digest, error) {
	switch strings.ToLower(s) {
	case "", "sha256":
		return DigestSHA256, nil
	case "sha1":
		return DigestSHA1, nil
	case "sha384":
		return DigestSHA384, nil
	case "sha512":
		return DigestSHA512, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDigest, s)
}

// Arg renders the digest the way the tool expects it on the command line.
func (d Digest) Arg() string {
	if d == "" {
		d = DigestSHA256
	}
	return strings.ToUpper(string(d))
}

// String returns the lower-case algorithm name.
func (d Digest) String() string {
	if d == "" {
		d = DigestSHA256
	}
	return string(d)
}
