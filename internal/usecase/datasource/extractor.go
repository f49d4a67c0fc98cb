package datasource

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// PDFPlaceholderText is stored when no PDF extraction strategy is available.
const PDFPlaceholderText = "[pdf text extraction not available in this environment]"

// OcrProvider recognizes text in an image. Providers are tried in priority
// order; any error means "try the next one".
type OcrProvider interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// PdfRenderer rasterizes a PDF into one image per page.
type PdfRenderer interface {
	ToImages(data []byte) ([]image.Image, error)
}

type TextExtractor struct {
	renderer PdfRenderer
	ocr      []OcrProvider
}

func NewTextExtractor(renderer PdfRenderer, ocr ...OcrProvider) *TextExtractor {
	return &TextExtractor{renderer: renderer, ocr: ocr}
}

// Extract converts raw uploaded bytes into text. It never returns an error:
// exhausted provider chains degrade to empty text, which the pipeline treats
// as a valid outcome. The second return value tags the extraction method for
// chunk metadata.
func (te *TextExtractor) Extract(ctx context.Context, content []byte, contentType string) (string, string) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return te.extractFromImage(ctx, content), "ocr"
	case contentType == "application/pdf":
		return te.extractFromPDF(ctx, content), "pdf"
	default:
		if utf8.Valid(content) {
			return string(content), "text"
		}
		return "", "text"
	}
}

func (te *TextExtractor) extractFromImage(ctx context.Context, content []byte) string {
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		log.Printf("failed to decode image: %v", err)
		return ""
	}
	return te.recognize(ctx, img)
}

// recognize runs the OCR provider chain. First success wins, exhaustion
// yields empty text.
func (te *TextExtractor) recognize(ctx context.Context, img image.Image) string {
	for _, p := range te.ocr {
		text, err := p.Recognize(ctx, img)
		if err != nil {
			log.Printf("ocr provider %s failed: %v", p.Name(), err)
			continue
		}
		return text
	}
	return ""
}

func (te *TextExtractor) extractFromPDF(ctx context.Context, content []byte) string {
	if te.renderer != nil {
		pages, err := te.renderer.ToImages(content)
		if err == nil {
			texts := make([]string, len(pages))
			for i, page := range pages {
				texts[i] = te.recognize(ctx, page)
			}
			return strings.Join(texts, "\n\n")
		}
		log.Printf("pdf rendering failed, trying plain text extraction: %v", err)
	}

	text, err := extractPDFText(content)
	if err != nil {
		log.Printf("pdf plain text extraction failed: %v", err)
		return PDFPlaceholderText
	}
	return text
}

// extractPDFText pulls embedded text out of a PDF directly, for documents
// that carry a text layer. Pages that fail to parse are skipped.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var fullText string
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		fullText += text + "\n"
	}

	return fullText, nil
}
