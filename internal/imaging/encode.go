package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
)

// ImageResult carries a rendered frame to the client as base64 PNG.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as base64 PNG.
func EncodePNG(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	return &ImageResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// DecodePNG reverses EncodePNG. It is mainly useful to clients and tests that
// need to inspect returned frames.
func DecodePNG(r *ImageResult) (image.Image, error) {
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode png: %w", err)
	}
	return img, nil
}
