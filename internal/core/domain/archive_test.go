package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mkroot/internal/core/domain"
)

func TestParseChecksum(t *testing.T) {
	sha1Hex := strings.Repeat("ab", 20)
	sha256Hex := strings.Repeat("cd", 32)

	tests := []struct {
		name     string
		input    string
		expected domain.Checksum
	}{
		{"bare hex is sha1", sha1Hex, domain.Checksum{Algorithm: domain.ChecksumSHA1, Hex: sha1Hex}},
		{"upper case is normalized", strings.ToUpper(sha1Hex), domain.Checksum{Algorithm: domain.ChecksumSHA1, Hex: sha1Hex}},
		{"sha256 prefix", "sha256:" + sha256Hex, domain.Checksum{Algorithm: domain.ChecksumSHA256, Hex: sha256Hex}},
		{"blake3 prefix", "BLAKE3:" + sha256Hex, domain.Checksum{Algorithm: domain.ChecksumBLAKE3, Hex: sha256Hex}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseChecksum(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseChecksum_Errors(t *testing.T) {
	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := domain.ParseChecksum("md5:" + strings.Repeat("00", 16))
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrUnsupportedChecksum.Error())
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := domain.ParseChecksum("sha256:" + strings.Repeat("00", 20))
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrInvalidConfig.Error())
	})

	t.Run("not hex", func(t *testing.T) {
		_, err := domain.ParseChecksum(strings.Repeat("zz", 20))
		require.Error(t, err)
	})
}

func TestChecksum_String(t *testing.T) {
	c := domain.Checksum{Algorithm: domain.ChecksumSHA1, Hex: "00"}
	assert.Equal(t, "sha1:00", c.String())
}
