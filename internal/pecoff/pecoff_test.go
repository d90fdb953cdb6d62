package pecoff

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"debug/pe"
	"encoding/binary"
	"encoding/pem"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/togglepad/winsign/core"
)

// writePE64 builds a header-only PE32+ image. A nonzero sigSize populates
// the security data directory as if a certificate table were attached.
func writePE64(t *testing.T, sigSize uint32) string {
	t.Helper()

	var buf bytes.Buffer

	dos := make([]byte, 0x40)
	dos[0], dos[1] = 'M', 'Z'
	binary.LittleEndian.PutUint32(dos[0x3c:], 0x40)
	buf.Write(dos)
	buf.WriteString("PE\x00\x00")

	fh := pe.FileHeader{
		Machine:              pe.IMAGE_FILE_MACHINE_AMD64,
		SizeOfOptionalHeader: 240,
		Characteristics:      0x0022,
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, fh))

	var oh pe.OptionalHeader64
	oh.Magic = 0x20b
	oh.NumberOfRvaAndSizes = 16
	if sigSize > 0 {
		oh.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_SECURITY] = pe.DataDirectory{
			VirtualAddress: 0x600,
			Size:           sigSize,
		}
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, oh))

	path := filepath.Join(t.TempDir(), "app.exe")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o755))
	return path
}

func writePE32(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer

	dos := make([]byte, 0x40)
	dos[0], dos[1] = 'M', 'Z'
	binary.LittleEndian.PutUint32(dos[0x3c:], 0x40)
	buf.Write(dos)
	buf.WriteString("PE\x00\x00")

	fh := pe.FileHeader{
		Machine:              pe.IMAGE_FILE_MACHINE_I386,
		SizeOfOptionalHeader: 224,
		Characteristics:      0x0102,
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, fh))

	var oh pe.OptionalHeader32
	oh.Magic = 0x10b
	oh.NumberOfRvaAndSizes = 16
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, oh))

	path := filepath.Join(t.TempDir(), "app32.exe")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o755))
	return path
}

func TestInfoUnsigned(t *testing.T) {
	t.Parallel()

	path := writePE64(t, 0)

	info, err := Info(path)
	require.NoError(t, err)

	assert.Equal(t, path, info.Path)
	assert.Equal(t, "amd64", info.Machine)
	assert.True(t, info.Is64Bit)
	assert.False(t, info.Signed)
	assert.Zero(t, info.SignatureSize)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(raw)), info.Size)
	assert.Equal(t, digest.Canonical.FromBytes(raw).String(), info.Digest)
}

func TestInfoSigned(t *testing.T) {
	t.Parallel()

	path := writePE64(t, 0x1200)

	info, err := Info(path)
	require.NoError(t, err)

	assert.True(t, info.Signed)
	assert.Equal(t, int64(0x1200), info.SignatureSize)
}

func TestInfoPE32(t *testing.T) {
	t.Parallel()

	path := writePE32(t)

	info, err := Info(path)
	require.NoError(t, err)

	assert.Equal(t, "386", info.Machine)
	assert.False(t, info.Is64Bit)
	assert.False(t, info.Signed)
}

func TestInfoNotPE(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	_, err := Info(path)
	assert.ErrorIs(t, err, core.ErrNotPE)
}

func TestInfoMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Info(filepath.Join(t.TempDir(), "absent.exe"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func writeCertPEM(t *testing.T) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(7),
		Subject:      pkix.Name{CommonName: "Toggle Software, Inc."},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "signer.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestVerifyPinnedMissingCert(t *testing.T) {
	t.Parallel()

	path := writePE64(t, 0)

	_, err := VerifyPinned(path, filepath.Join(t.TempDir(), "absent.pem"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read cert")
}

func TestVerifyPinnedNotPE(t *testing.T) {
	t.Parallel()

	certPath := writeCertPEM(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	_, err := VerifyPinned(path, certPath)
	require.Error(t, err)
}
