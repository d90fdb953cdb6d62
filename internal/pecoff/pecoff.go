// Package pecoff inspects PE/COFF images locally: header identity, the
// Authenticode certificate table, and file digests. Policy evaluation of
// signatures stays with the external tool; this package only reads.
package pecoff

import (
	"debug/pe"
	"fmt"
	"os"

	"github.com/foxboron/go-uefi/authenticode"
	"github.com/foxboron/go-uefi/efi/util"
	"github.com/foxboron/go-uefi/pkcs7"
	"github.com/opencontainers/go-digest"

	"github.com/togglepad/winsign/core"
)

// Info summarizes the PE image at path without invoking the tool.
// Returns core.ErrNotPE when the file does not parse as a PE image.
func Info(path string) (*core.TargetInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open target: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat target: %w", err)
	}

	img, err := pe.NewFile(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrNotPE, path)
	}
	defer img.Close()

	info := &core.TargetInfo{
		Path:    path,
		Size:    st.Size(),
		Machine: machineName(img.Machine),
	}

	switch oh := img.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		fillSecurityDir(info, oh.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_SECURITY])
	case *pe.OptionalHeader64:
		info.Is64Bit = true
		fillSecurityDir(info, oh.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_SECURITY])
	}

	dgst, err := digest.Canonical.FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("digest target: %w", err)
	}
	info.Digest = dgst.String()

	return info, nil
}

// fillSecurityDir records the certificate table presence and size. The
// security directory entry holds a file offset, not an RVA; nonzero
// offset and size mean the image carries an Authenticode blob.
func fillSecurityDir(info *core.TargetInfo, dir pe.DataDirectory) {
	info.Signed = dir.VirtualAddress > 0 && dir.Size > 0
	info.SignatureSize = int64(dir.Size)
}

// VerifyPinned checks the image's Authenticode signature against a pinned
// signer certificate (PEM), timestamp included. This is a local
// inspection aid; policy-based verification belongs to the external tool.
func VerifyPinned(path, certPath string) (bool, error) {
	x509Cert, err := util.ReadCertFromFile(certPath)
	if err != nil {
		return false, fmt.Errorf("read cert: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open target: %w", err)
	}
	defer f.Close()

	bin, err := authenticode.Parse(f)
	if err != nil {
		return false, fmt.Errorf("parse authenticode: %w", err)
	}

	ok, err := bin.Verify(x509Cert, pkcs7.VerifyTimestamp(nil))
	if err != nil {
		return false, fmt.Errorf("verify signature: %w", err)
	}
	return ok, nil
}

func machineName(m uint16) string {
	switch m {
	case pe.IMAGE_FILE_MACHINE_AMD64:
		return "amd64"
	case pe.IMAGE_FILE_MACHINE_I386:
		return "386"
	case pe.IMAGE_FILE_MACHINE_ARM64:
		return "arm64"
	}
	return fmt.Sprintf("unknown(0x%04x)", m)
}
