package domain

import (
	"encoding/hex"
	"strings"

	"go.trai.ch/zerr"
)

// ChecksumAlgorithm names a supported archive digest.
type ChecksumAlgorithm string

const (
	// ChecksumSHA1 is the default algorithm for bare hex checksums.
	ChecksumSHA1 ChecksumAlgorithm = "sha1"
	// ChecksumSHA256 selects SHA-256.
	ChecksumSHA256 ChecksumAlgorithm = "sha256"
	// ChecksumBLAKE3 selects 256-bit BLAKE3.
	ChecksumBLAKE3 ChecksumAlgorithm = "blake3"
)

var digestSizes = map[ChecksumAlgorithm]int{
	ChecksumSHA1:   20,
	ChecksumSHA256: 32,
	ChecksumBLAKE3: 32,
}

// Checksum is a pinned archive digest.
type Checksum struct {
	Algorithm ChecksumAlgorithm
	// Hex is the lower-case hex encoding of the digest.
	Hex string
}

// String renders the checksum as "algo:hex".
func (c Checksum) String() string {
	return string(c.Algorithm) + ":" + c.Hex
}

// ParseChecksum parses "hex" (SHA-1) or "algo:hex".
func ParseChecksum(s string) (Checksum, error) {
	algo, digest := ChecksumSHA1, strings.TrimSpace(s)
	if before, after, found := strings.Cut(digest, ":"); found {
		algo, digest = ChecksumAlgorithm(strings.ToLower(before)), after
	}

	size, ok := digestSizes[algo]
	if !ok {
		return Checksum{}, zerr.With(ErrUnsupportedChecksum, "algorithm", string(algo))
	}

	digest = strings.ToLower(digest)
	raw, err := hex.DecodeString(digest)
	if err != nil || len(raw) != size {
		return Checksum{}, zerr.With(zerr.With(ErrInvalidConfig, "reason", "malformed checksum"), "checksum", s)
	}

	return Checksum{Algorithm: algo, Hex: digest}, nil
}

// ArchiveDescriptor pins a remote tar archive and how to place it in a tree.
type ArchiveDescriptor struct {
	// URL is where the archive is downloaded from when not cached.
	URL string

	// Checksum must match the archive content before anything is extracted.
	Checksum Checksum

	// StripPrefix is the member path prefix replaced by the mountpoint.
	// Members outside it are ignored.
	StripPrefix string

	// Exclude lists rewritten path prefixes that are not extracted.
	Exclude []string

	// CachePath is the local file the download is cached in.
	CachePath string
}
