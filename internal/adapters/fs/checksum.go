package fs

import (
	"crypto/sha1" //nolint:gosec // archive pins are SHA-1 digests
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"

	"github.com/zeebo/blake3"
	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/zerr"
)

func newDigest(algo domain.ChecksumAlgorithm) (hash.Hash, error) {
	switch algo {
	case domain.ChecksumSHA1:
		return sha1.New(), nil //nolint:gosec // see import
	case domain.ChecksumSHA256:
		return sha256.New(), nil
	case domain.ChecksumBLAKE3:
		return blake3.New(), nil
	default:
		return nil, zerr.With(domain.ErrUnsupportedChecksum, "algorithm", string(algo))
	}
}

// FileChecksum digests the file at path with algo and returns the hex sum.
func FileChecksum(path string, algo domain.ChecksumAlgorithm) (string, error) {
	h, err := newDigest(algo)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path) //nolint:gosec // path is the archive cache entry
	if err != nil {
		return "", fsError(err, "failed to open archive", path)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := io.Copy(h, f); err != nil {
		return "", fsError(err, "failed to read archive", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// verifyChecksum compares the file at path against want. A mismatching file
// is removed so the next run downloads it again.
func verifyChecksum(path string, want domain.Checksum) error {
	got, err := FileChecksum(path, want.Algorithm)
	if err != nil {
		return err
	}
	if got == want.Hex {
		return nil
	}

	_ = os.Remove(path)

	mismatch := zerr.With(domain.ErrChecksumMismatch, "path", path)
	mismatch = zerr.With(mismatch, "expected", want.String())
	return zerr.With(mismatch, "actual", string(want.Algorithm)+":"+got)
}
