// Package backup copies sign targets aside before the tool mutates them.
package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/klauspost/compress/zstd"
)

// maxBackups caps the numbered suffixes tried before giving up.
const maxBackups = 100

// Create copies target to a sibling backup file and returns its path.
// Existing backups are never overwritten; a numeric suffix is added
// instead. With compress set, the copy is zstd-compressed.
func Create(target string, compress bool) (string, error) {
	src, err := os.Open(target)
	if err != nil {
		return "", fmt.Errorf("open target: %w", err)
	}
	defer src.Close()

	st, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("stat target: %w", err)
	}

	ext := ".bak"
	if compress {
		ext = ".bak.zst"
	}
	path, err := freePath(target, ext)
	if err != nil {
		return "", err
	}

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, st.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	if err := copyInto(dst, src, compress); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close backup: %w", err)
	}
	return path, nil
}

func copyInto(dst io.Writer, src io.Reader, compress bool) error {
	if !compress {
		_, err := io.Copy(dst, src)
		return err
	}

	enc, err := zstd.NewWriter(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(enc, src); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// freePath picks the first unused backup name: <target><ext>, then
// <target><ext>.1 and so on.
func freePath(target, ext string) (string, error) {
	for i := 0; i <= maxBackups; i++ {
		path := target + ext
		if i > 0 {
			path = fmt.Sprintf("%s%s.%d", target, ext, i)
		}
		if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
	}
	return "", fmt.Errorf("too many backups for %s", target)
}
