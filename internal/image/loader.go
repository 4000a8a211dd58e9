// Package image provides utilities for loading and processing images.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "github.com/gen2brain/avif" // Register AVIF format
	_ "golang.org/x/image/webp"   // Register WebP format

	"github.com/jmylchreest/palettegen/internal/compression"
	"github.com/jmylchreest/palettegen/internal/security"
	httputil "github.com/jmylchreest/palettegen/internal/util/http"
	"github.com/jmylchreest/palettegen/internal/util/imagecache"
)

// ErrEmptyPath is returned when no image path was given.
var ErrEmptyPath = errors.New("image path cannot be empty")

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// Decode decodes an image in any registered format and returns the format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, format, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, format, nil
}

// DecodeNamed decodes an image whose name may carry a compression suffix
// such as ".xz"; the stream is decompressed before decoding.
func DecodeNamed(r io.Reader, name string, maxBytes int64) (image.Image, string, error) {
	format, _ := compression.DetectFormat(name)
	dr, err := compression.NewReader(r, format, maxBytes)
	if err != nil {
		return nil, "", err
	}
	return Decode(dr)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct {
	// MaxDecompressedBytes limits compressed images. Zero uses the default.
	MaxDecompressedBytes int64
}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, AVIF, optionally wrapped in xz, gzip or bzip2.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, _, err := DecodeNamed(file, path, l.MaxDecompressedBytes)
	return img, err
}

// ValidateImagePath checks that path is an HTTP(S) URL or an existing file
// whose header decodes as a supported image.
func ValidateImagePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if security.IsURL(path) {
		// Fetching happens once, at load time.
		return security.ValidateImageURL(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	format, _ := compression.DetectFormat(path)
	r, err := compression.NewReader(file, format, 0)
	if err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	if _, _, err := image.DecodeConfig(r); err != nil {
		if !IsImageFile(path) {
			return fmt.Errorf("unsupported image format (supported: %s): %w",
				strings.Join(SupportedImageExtensions(), ", "), err)
		}
		return fmt.Errorf("invalid image file: %w", err)
	}

	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif"}
}

// IsImageFile reports whether path has a supported image extension, looking
// through one compression suffix.
func IsImageFile(path string) bool {
	_, name := compression.DetectFormat(path)
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader

	// CacheDir, when set, stores downloaded images on disk and reuses them.
	CacheDir string

	// Fetch configures remote downloads.
	Fetch httputil.FetchOptions
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(path string) (image.Image, error) {
	return l.LoadContext(context.Background(), path)
}

// LoadContext is Load with a context governing remote fetches.
func (l *SmartLoader) LoadContext(ctx context.Context, path string) (image.Image, error) {
	if !security.IsURL(path) {
		return l.fileLoader.Load(path)
	}

	if l.CacheDir != "" {
		cached, err := imagecache.DownloadAndCache(ctx, path, imagecache.CacheOptions{
			CacheDir: l.CacheDir,
			Fetch:    l.Fetch,
		})
		if err != nil {
			return nil, err
		}
		return l.fileLoader.Load(cached)
	}

	return l.loadFromURL(ctx, path)
}

// loadFromURL fetches and decodes an image from an HTTP(S) URL.
func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	data, err := httputil.Fetch(ctx, url, l.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	img, _, err := DecodeNamed(bytes.NewReader(data), urlPath(url), l.fileLoader.MaxDecompressedBytes)
	return img, err
}

// urlPath strips any query or fragment so the extension can be inspected.
func urlPath(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		return url[:i]
	}
	return url
}
