package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes deterministic digests of materialized trees.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeTreeHash implements ports.Hasher. Every entry contributes its
// relative path, type, permission bits and either its content or its link
// text. Timestamps are ignored.
func (h *Hasher) ComputeTreeHash(root string) (string, int, error) {
	hasher := xxhash.New()
	count := 0

	for entry, err := range h.walker.Walk(root, nil) {
		if err != nil {
			return "", 0, zerr.With(zerr.Wrap(err, "failed to walk tree"), "path", entry.Path)
		}
		if err := h.hashEntry(root, entry, hasher); err != nil {
			return "", 0, err
		}
		count++
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), count, nil
}

func (h *Hasher) hashEntry(root string, entry Entry, hasher *xxhash.Digest) error {
	rel, err := filepath.Rel(root, entry.Path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", entry.Path)
	}
	info, err := os.Lstat(entry.Path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat entry"), "path", entry.Path)
	}

	_, _ = hasher.WriteString(rel)
	_, _ = hasher.Write([]byte{0})
	_ = binary.Write(hasher, binary.LittleEndian, uint32(info.Mode()))

	switch {
	case entry.IsSymlink():
		target, err := os.Readlink(entry.Path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read symlink"), "path", entry.Path)
		}
		_, _ = hasher.WriteString(target)
	case info.Mode().IsRegular():
		sum, err := h.ComputeFileHash(entry.Path)
		if err != nil {
			return err
		}
		if err := binary.Write(hasher, binary.LittleEndian, sum); err != nil {
			return zerr.Wrap(err, "failed to write hash to digest")
		}
	}
	_, _ = hasher.Write([]byte{0})
	return nil
}
