// Package pfx reads signing certificates out of PFX (PKCS #12) files.
//
// The signing tool does its own PFX handling during sign operations; this
// package exists for local inspection only, so operators can check which
// certificate a file carries before shipping it to the tool.
package pfx

import (
	"errors"
	"fmt"
	"os"

	gop12 "software.sslmate.com/src/go-pkcs12"

	"github.com/togglepad/winsign/core"
)

// Inspect decodes the PFX at path and summarizes its leaf certificate.
// An incorrect password maps to core.ErrBadPassword.
func Inspect(path, password string) (*core.PFXInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pfx: %w", err)
	}

	_, leaf, caCerts, err := gop12.DecodeChain(data, password)
	if err != nil {
		return nil, mapError(err)
	}
	if leaf == nil {
		return nil, fmt.Errorf("pfx %s holds no certificate", path)
	}

	return &core.PFXInfo{
		Path:      path,
		Subject:   leaf.Subject.String(),
		Issuer:    leaf.Issuer.String(),
		Serial:    leaf.SerialNumber.String(),
		NotBefore: leaf.NotBefore,
		NotAfter:  leaf.NotAfter,
		CAChain:   len(caCerts),
	}, nil
}

// mapError converts go-pkcs12 errors to winsign sentinel errors.
func mapError(err error) error {
	if errors.Is(err, gop12.ErrIncorrectPassword) {
		return core.ErrBadPassword
	}
	return fmt.Errorf("decode pfx: %w", err)
}
