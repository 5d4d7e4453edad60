package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestEncodePNG_RoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(1, 1, color.RGBA{10, 200, 30, 255})

	res, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if res.Width != 3 || res.Height != 2 {
		t.Errorf("dimensions: got %dx%d, want 3x2", res.Width, res.Height)
	}
	if res.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", res.MimeType)
	}

	decoded, err := DecodePNG(res)
	if err != nil {
		t.Fatalf("DecodePNG failed: %v", err)
	}
	r, g, b, _ := decoded.At(1, 1).RGBA()
	if uint8(r>>8) != 10 || uint8(g>>8) != 200 || uint8(b>>8) != 30 {
		t.Errorf("pixel (1,1): got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestDecodePNG_BadBase64(t *testing.T) {
	if _, err := DecodePNG(&ImageResult{ImageBase64: "!!!"}); err == nil {
		t.Error("DecodePNG should reject invalid base64")
	}
}
