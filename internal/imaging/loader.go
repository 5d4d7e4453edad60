package imaging

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultLoadTimeout is the fixed delay after which a sample that has not
// finished loading is replaced by the placeholder.
const DefaultLoadTimeout = time.Second

// ErrNotImage is returned when a selected file is not an image.
var ErrNotImage = errors.New("please select an image file")

// ImageCache provides thread-safe caching of loaded images to avoid redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. Once an image
// is loaded, subsequent Load() calls for the same path return the cached copy without
// disk I/O.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict().
// A new upload of the same path should Evict first so the fresh bytes are decoded.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. The image is
// cached under the exact path string provided.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ValidateImageFile reports whether path names an image file, the way a
// browser file input filters on "image/*".
//
// The first 512 bytes are sniffed; when sniffing is inconclusive the
// extension's registered MIME type decides. It returns the detected MIME type,
// ErrNotImage for non-image content, or the underlying I/O error when the
// file cannot be read at all.
func ValidateImageFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	sniffed := http.DetectContentType(head[:n])
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed, nil
	}

	byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if strings.HasPrefix(byExt, "image/") && sniffed == "application/octet-stream" {
		return byExt, nil
	}

	return "", fmt.Errorf("%w: %s is %s", ErrNotImage, filepath.Base(path), sniffed)
}

// Source describes where a loaded sample came from.
type Source struct {
	Path     string `json:"path,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	Fallback bool   `json:"fallback"`
	Reason   string `json:"reason,omitempty"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Loader loads sample images with the widget fallback policy.
type Loader struct {
	Cache  *ImageCache
	Logger *slog.Logger

	// Timeout is the fixed delay after which a pending load is abandoned.
	// Zero means DefaultLoadTimeout.
	Timeout time.Duration

	// Placeholder produces the image substituted for a failed load.
	// Nil means ZoomPlaceholder.
	Placeholder func() *image.RGBA
}

// Load reads path through the cache, falling back to the placeholder when
// the source is missing, broken, or does not finish loading within Timeout.
//
// Only ErrNotImage is returned to the caller; it means the selection must be
// rejected without touching any widget state. All other failures are logged
// and produce the placeholder. An empty path yields the placeholder directly.
func (l *Loader) Load(ctx context.Context, path string) (image.Image, *Source, error) {
	if path == "" {
		l.Logger.Info("creating default image")
		return l.fallback(path, "no source configured")
	}

	mimeType, err := ValidateImageFile(path)
	if errors.Is(err, ErrNotImage) {
		return nil, nil, err
	}
	if err != nil {
		l.Logger.Warn("error loading image, creating default", "path", path, "error", err)
		return l.fallback(path, err.Error())
	}

	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type loaded struct {
		img image.Image
		err error
	}
	done := make(chan loaded, 1)
	go func() {
		img, err := l.Cache.Load(path)
		done <- loaded{img: img, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			l.Logger.Warn("error loading image, creating default", "path", path, "error", res.err)
			return l.fallback(path, res.err.Error())
		}
		b := res.img.Bounds()
		l.Logger.Debug("image loaded", "path", path, "width", b.Dx(), "height", b.Dy())
		return res.img, &Source{
			Path:     path,
			MimeType: mimeType,
			Width:    b.Dx(),
			Height:   b.Dy(),
		}, nil
	case <-ctx.Done():
		l.Logger.Warn("image didn't load in time, creating default", "path", path, "timeout", timeout)
		return l.fallback(path, ctx.Err().Error())
	}
}

func (l *Loader) fallback(path, reason string) (image.Image, *Source, error) {
	gen := l.Placeholder
	if gen == nil {
		gen = ZoomPlaceholder
	}
	img := gen()
	b := img.Bounds()
	return img, &Source{
		Path:     path,
		MimeType: "image/png",
		Fallback: true,
		Reason:   reason,
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}
