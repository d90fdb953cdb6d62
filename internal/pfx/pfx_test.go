package pfx

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gop12 "software.sslmate.com/src/go-pkcs12"

	"github.com/togglepad/winsign/core"
)

// makePFX writes a PFX holding a code-signing leaf issued by a test CA.
func makePFX(t *testing.T, password string) string {
	t.Helper()

	caKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	caTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Toggle Root CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	caDER, err := x509.CreateCertificate(rand.Reader, caTmpl, caTmpl, &caKey.PublicKey, caKey)
	require.NoError(t, err)
	caCert, err := x509.ParseCertificate(caDER)
	require.NoError(t, err)

	leafKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	leafTmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1337),
		Subject:      pkix.Name{CommonName: "Toggle Software, Inc."},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageCodeSigning},
	}
	leafDER, err := x509.CreateCertificate(rand.Reader, leafTmpl, caCert, &leafKey.PublicKey, caKey)
	require.NoError(t, err)
	leafCert, err := x509.ParseCertificate(leafDER)
	require.NoError(t, err)

	data, err := gop12.Modern2023.Encode(leafKey, leafCert, []*x509.Certificate{caCert}, password)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "release.pfx")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestInspect(t *testing.T) {
	t.Parallel()

	path := makePFX(t, "hunter2")

	info, err := Inspect(path, "hunter2")
	require.NoError(t, err)

	assert.Equal(t, path, info.Path)
	assert.Contains(t, info.Subject, "Toggle Software, Inc.")
	assert.Contains(t, info.Issuer, "Toggle Root CA")
	assert.Equal(t, "1337", info.Serial)
	assert.Equal(t, 1, info.CAChain)
	assert.True(t, info.NotBefore.Before(time.Now()))
	assert.True(t, info.NotAfter.After(time.Now()))
}

func TestInspectBlankPassword(t *testing.T) {
	t.Parallel()

	path := makePFX(t, "")

	info, err := Inspect(path, "")
	require.NoError(t, err)
	assert.Contains(t, info.Subject, "Toggle Software, Inc.")
}

func TestInspectWrongPassword(t *testing.T) {
	t.Parallel()

	path := makePFX(t, "hunter2")

	_, err := Inspect(path, "wrong")
	assert.ErrorIs(t, err, core.ErrBadPassword)
}

func TestInspectMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Inspect(filepath.Join(t.TempDir(), "absent.pfx"), "pw")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestInspectNotAPFX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "garbage.pfx")
	require.NoError(t, os.WriteFile(path, []byte("not a pfx"), 0o600))

	_, err := Inspect(path, "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrBadPassword)
}
