package backup

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTarget(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.exe")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

func TestCreate(t *testing.T) {
	t.Parallel()

	target := writeTarget(t, "MZ original bytes")

	path, err := Create(target, false)
	require.NoError(t, err)
	assert.Equal(t, target+".bak", path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "MZ original bytes", string(got))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o755), st.Mode().Perm())
}

func TestCreateNumbersExistingBackups(t *testing.T) {
	t.Parallel()

	target := writeTarget(t, "v2")
	require.NoError(t, os.WriteFile(target+".bak", []byte("v1"), 0o644))

	path, err := Create(target, false)
	require.NoError(t, err)
	assert.Equal(t, target+".bak.1", path)

	// The earlier backup is untouched.
	old, err := os.ReadFile(target + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(old))
}

func TestCreateCompressed(t *testing.T) {
	t.Parallel()

	target := writeTarget(t, "MZ compress me")

	path, err := Create(target, true)
	require.NoError(t, err)
	assert.Equal(t, target+".bak.zst", path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()

	got, err := io.ReadAll(dec)
	require.NoError(t, err)
	assert.Equal(t, "MZ compress me", string(got))
}

func TestCreateMissingTarget(t *testing.T) {
	t.Parallel()

	_, err := Create(filepath.Join(t.TempDir(), "absent.exe"), false)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
