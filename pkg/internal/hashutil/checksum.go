package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// CalculateChecksum calculates the SHA256 checksum of everything read from r
func CalculateChecksum(r io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}

// FileHasher computes file checksums on a filesystem
type FileHasher struct {
	fs afero.Fs
}

// NewFileHasher creates a hasher reading from fs
func NewFileHasher(fs afero.Fs) *FileHasher {
	return &FileHasher{fs: fs}
}

// Checksum calculates the SHA256 checksum of the file at path
func (h *FileHasher) Checksum(path string) (string, error) {
	file, err := h.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	return CalculateChecksum(file)
}
