package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// TesseractProvider is the general-purpose OCR fallback, backed by a local
// tesseract installation through gosseract.
type TesseractProvider struct{}

func NewTesseractProvider() *TesseractProvider {
	return &TesseractProvider{}
}

func (p *TesseractProvider) Name() string {
	return "tesseract"
}

func (p *TesseractProvider) Recognize(_ context.Context, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to load image into tesseract: %w", err)
	}
	return client.Text()
}
