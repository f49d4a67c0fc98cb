package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"time"
)

// TrOCRProvider sends page images to a TrOCR inference endpoint, which
// handles handwriting far better than a classic OCR engine. It is tried
// first in the provider chain; with no endpoint configured every call fails
// fast and the chain moves on.
type TrOCRProvider struct {
	endpoint string
	client   *http.Client
}

func NewTrOCRProvider(endpoint string) *TrOCRProvider {
	return &TrOCRProvider{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *TrOCRProvider) Name() string {
	return "trocr"
}

func (p *TrOCRProvider) Recognize(ctx context.Context, img image.Image) (string, error) {
	if p.endpoint == "" {
		return "", errors.New("trocr endpoint not configured")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "image/png")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("trocr inference returned %d: %s", resp.StatusCode, body)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode trocr response: %w", err)
	}
	return out.Text, nil
}
