// Package compression provides transparent decompression of compressed image files.
package compression

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/palettegen/internal/security"
	"github.com/ulikunitz/xz"
)

// DefaultMaxDecompressedSize caps how much data a compressed image may expand to.
const DefaultMaxDecompressedSize = 256 * 1024 * 1024

// Format identifies a stream compression format.
type Format string

const (
	FormatNone  Format = ""
	FormatGzip  Format = "gzip"
	FormatXz    Format = "xz"
	FormatBzip2 Format = "bzip2"
)

var extensions = map[string]Format{
	".gz":  FormatGzip,
	".xz":  FormatXz,
	".bz2": FormatBzip2,
}

// DetectFormat returns the compression format implied by a file name, and
// the name with that extension removed ("photo.png.xz" → xz, "photo.png").
func DetectFormat(name string) (Format, string) {
	ext := strings.ToLower(filepath.Ext(name))
	if f, ok := extensions[ext]; ok {
		return f, strings.TrimSuffix(name, filepath.Ext(name))
	}
	return FormatNone, name
}

// NewReader wraps r so reads return decompressed data for the given format.
// The decompressed stream is limited to maxBytes; exceeding it fails with
// security.ErrSizeLimitExceeded. A maxBytes of zero uses the default.
func NewReader(r io.Reader, format Format, maxBytes int64) (io.Reader, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDecompressedSize
	}

	var dr io.Reader
	switch format {
	case FormatNone:
		return r, nil
	case FormatGzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		dr = gzr
	case FormatXz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		dr = xzr
	case FormatBzip2:
		dr = bzip2.NewReader(r)
	default:
		return nil, fmt.Errorf("unsupported compression format: %s", format)
	}

	return security.NewLimitedReader(dr, maxBytes), nil
}
