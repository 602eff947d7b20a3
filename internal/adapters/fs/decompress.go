package fs

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Compression identifies an archive stream codec.
type Compression string

const (
	CompressionNone  Compression = "none"
	CompressionGzip  Compression = "gzip"
	CompressionBzip2 Compression = "bzip2"
	CompressionXZ    Compression = "xz"
	CompressionZstd  Compression = "zstd"
	CompressionLZ4   Compression = "lz4"
)

var magics = []struct {
	magic []byte
	kind  Compression
}{
	{[]byte{0x1f, 0x8b}, CompressionGzip},
	{[]byte("BZh"), CompressionBzip2},
	{[]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, CompressionXZ},
	{[]byte{0x28, 0xb5, 0x2f, 0xfd}, CompressionZstd},
	{[]byte{0x04, 0x22, 0x4d, 0x18}, CompressionLZ4},
}

// DetectCompression sniffs the codec of a stream from its leading bytes.
func DetectCompression(header []byte) Compression {
	for _, m := range magics {
		if bytes.HasPrefix(header, m.magic) {
			return m.kind
		}
	}
	return CompressionNone
}

// decompress wraps r with the decoder matching its magic bytes.
func decompress(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, CompressionNone, err
	}

	kind := DetectCompression(header)
	switch kind {
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, kind, err
		}
		return zr, kind, nil
	case CompressionBzip2:
		return io.NopCloser(bzip2.NewReader(br)), kind, nil
	case CompressionXZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, kind, err
		}
		return io.NopCloser(xr), kind, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, kind, err
		}
		return zr.IOReadCloser(), kind, nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(br)), kind, nil
	default:
		return io.NopCloser(br), kind, nil
	}
}
