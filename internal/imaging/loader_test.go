package imaging

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestLoader() *Loader {
	return &Loader{
		Cache:   NewImageCache(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Timeout: time.Second,
	}
}

// createTestImage creates a simple test image file and returns its path.
// The file lives in the test's temp dir and is removed automatically.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return path
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})

	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	bounds := img1.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}

	// Second load should return cached image
	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(imgPath)

	cache.mu.RLock()
	_, exists := cache.images[imgPath]
	cache.mu.RUnlock()

	if exists {
		t.Error("Evict did not remove image from cache")
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestValidateImageFile(t *testing.T) {
	pngPath := createTestImage(t, 4, 4, color.RGBA{1, 2, 3, 255})

	mimeType, err := ValidateImageFile(pngPath)
	if err != nil {
		t.Fatalf("ValidateImageFile failed: %v", err)
	}
	if mimeType != "image/png" {
		t.Errorf("mime: got %s, want image/png", mimeType)
	}
}

func TestValidateImageFile_Rejections(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"plain text", "notes.txt", []byte("hello, screens")},
		{"text with image extension", "fake.png", []byte("not an image")},
		{"html", "page.html", []byte("<!DOCTYPE html><html></html>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, tt.file, tt.data)
			_, err := ValidateImageFile(path)
			if !errors.Is(err, ErrNotImage) {
				t.Errorf("got %v, want ErrNotImage", err)
			}
		})
	}
}

func TestValidateImageFile_Missing(t *testing.T) {
	_, err := ValidateImageFile("/nonexistent/image.png")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrNotImage) {
		t.Error("missing file must not be reported as a non-image selection")
	}
}

func TestLoader_Load(t *testing.T) {
	imgPath := createTestImage(t, 64, 48, color.RGBA{10, 20, 30, 255})

	img, src, err := newTestLoader().Load(context.Background(), imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if src.Fallback {
		t.Errorf("unexpected fallback: %s", src.Reason)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Errorf("dimensions: got %v", img.Bounds())
	}
	if src.Width != 64 || src.Height != 48 {
		t.Errorf("source dimensions: got %dx%d", src.Width, src.Height)
	}
}

func TestLoader_Load_Missing(t *testing.T) {
	img, src, err := newTestLoader().Load(context.Background(), "/nonexistent/sample-image.jpg")
	if err != nil {
		t.Fatalf("missing source must fall back, got %v", err)
	}
	if !src.Fallback {
		t.Error("expected fallback for missing file")
	}
	if img.Bounds().Dx() != ZoomPlaceholderWidth || img.Bounds().Dy() != ZoomPlaceholderHeight {
		t.Errorf("fallback dimensions: got %v", img.Bounds())
	}
}

func TestLoader_Load_Broken(t *testing.T) {
	// PNG signature followed by garbage sniffs as an image but cannot decode.
	data := append([]byte("\x89PNG\r\n\x1a\n"), []byte("garbage garbage garbage")...)
	path := writeTempFile(t, "broken.png", data)

	_, src, err := newTestLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("broken source must fall back, got %v", err)
	}
	if !src.Fallback {
		t.Error("expected fallback for broken image")
	}
}

func TestLoader_Load_NotImage(t *testing.T) {
	path := writeTempFile(t, "readme.txt", []byte("just text"))

	img, src, err := newTestLoader().Load(context.Background(), path)
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("got %v, want ErrNotImage", err)
	}
	if img != nil || src != nil {
		t.Error("rejected selection must not produce an image")
	}
}

func TestLoader_Load_TimeoutFallsBack(t *testing.T) {
	// Noisy pixels keep the PNG from compressing to nothing, so decoding
	// takes far longer than the deadline.
	img := image.NewRGBA(image.Rect(0, 0, 2000, 2000))
	for i := range img.Pix {
		img.Pix[i] = uint8(i*31 + i/7)
	}
	path := filepath.Join(t.TempDir(), "large.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("failed to encode image: %v", err)
	}
	f.Close()

	l := newTestLoader()
	l.Timeout = time.Nanosecond

	got, src, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("timeout must not be an error, got %v", err)
	}
	if !src.Fallback {
		t.Fatal("expected placeholder after timeout")
	}
	if !strings.Contains(src.Reason, "deadline exceeded") {
		t.Errorf("reason: got %q", src.Reason)
	}
	if src.Path != path {
		t.Errorf("path: got %q, want %q", src.Path, path)
	}
	b := got.Bounds()
	if b.Dx() != ZoomPlaceholderWidth || b.Dy() != ZoomPlaceholderHeight {
		t.Errorf("placeholder size: got %dx%d", b.Dx(), b.Dy())
	}
}

func TestLoader_Load_EmptyPathUsesPlaceholder(t *testing.T) {
	l := newTestLoader()
	l.Placeholder = ResolutionPlaceholder

	img, src, err := l.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !src.Fallback {
		t.Error("empty path should report a fallback source")
	}
	if img.Bounds().Dx() != ResolutionPlaceholderWidth {
		t.Errorf("expected the configured placeholder, got %v", img.Bounds())
	}
}
