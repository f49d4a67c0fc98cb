package datasource

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOcrProvider struct {
	name string
	text string
	err  error
}

func (p *stubOcrProvider) Name() string { return p.name }

func (p *stubOcrProvider) Recognize(_ context.Context, _ image.Image) (string, error) {
	return p.text, p.err
}

type stubRenderer struct {
	pages int
	err   error
}

func (r *stubRenderer) ToImages(_ []byte) ([]image.Image, error) {
	if r.err != nil {
		return nil, r.err
	}
	images := make([]image.Image, r.pages)
	for i := range images {
		images[i] = image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return images, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func TestExtractPlainText(t *testing.T) {
	te := NewTextExtractor(nil)

	text, source := te.Extract(context.Background(), []byte("hello world"), "text/plain")
	assert.Equal(t, "hello world", text)
	assert.Equal(t, "text", source)
}

func TestExtractUnknownContentTypeAsText(t *testing.T) {
	te := NewTextExtractor(nil)

	text, source := te.Extract(context.Background(), []byte("raw bytes"), "")
	assert.Equal(t, "raw bytes", text)
	assert.Equal(t, "text", source)
}

func TestExtractInvalidUTF8YieldsEmpty(t *testing.T) {
	te := NewTextExtractor(nil)

	text, _ := te.Extract(context.Background(), []byte{0xff, 0xfe, 0xfd}, "application/octet-stream")
	assert.Empty(t, text)
}

func TestExtractImageProviderFallback(t *testing.T) {
	te := NewTextExtractor(nil,
		&stubOcrProvider{name: "primary", err: errors.New("model unavailable")},
		&stubOcrProvider{name: "fallback", text: "recognized"},
	)

	text, source := te.Extract(context.Background(), pngBytes(t), "image/png")
	assert.Equal(t, "recognized", text)
	assert.Equal(t, "ocr", source)
}

func TestExtractImageChainExhausted(t *testing.T) {
	te := NewTextExtractor(nil,
		&stubOcrProvider{name: "primary", err: errors.New("down")},
		&stubOcrProvider{name: "fallback", err: errors.New("also down")},
	)

	text, source := te.Extract(context.Background(), pngBytes(t), "image/png")
	assert.Empty(t, text)
	assert.Equal(t, "ocr", source)
}

func TestExtractCorruptImageYieldsEmpty(t *testing.T) {
	te := NewTextExtractor(nil, &stubOcrProvider{name: "primary", text: "never reached"})

	text, _ := te.Extract(context.Background(), []byte("not an image"), "image/png")
	assert.Empty(t, text)
}

func TestExtractPDFJoinsPagesWithBlankLine(t *testing.T) {
	te := NewTextExtractor(&stubRenderer{pages: 2}, &stubOcrProvider{name: "ocr", text: "page text"})

	text, source := te.Extract(context.Background(), []byte("%PDF-"), "application/pdf")
	assert.Equal(t, "page text\n\npage text", text)
	assert.Equal(t, "pdf", source)
}

func TestExtractPDFPlaceholderWhenNothingWorks(t *testing.T) {
	// rendering fails and the bytes carry no parseable text layer
	te := NewTextExtractor(&stubRenderer{err: errors.New("mupdf not available")})

	text, _ := te.Extract(context.Background(), []byte("garbage"), "application/pdf")
	assert.Equal(t, PDFPlaceholderText, text)
}
