package datasource

import "strings"

// DefaultChunkSize bounds chunk text length in characters.
const DefaultChunkSize = 500

type Chunker struct {
	maxChars int
}

// NewChunker creates a new chunker
func NewChunker(maxChars int) *Chunker {
	if maxChars <= 0 {
		maxChars = DefaultChunkSize
	}
	return &Chunker{maxChars: maxChars}
}

// Split cuts text into chunks of at most maxChars characters. Paragraphs
// (separated by blank lines) are kept intact when they fit; oversized
// paragraphs are hard-sliced into consecutive fixed-length pieces. Limits
// are counted in runes so multi-byte scripts are not cut mid-character.
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		runes := []rune(p)
		for len(runes) > c.maxChars {
			chunks = append(chunks, string(runes[:c.maxChars]))
			runes = runes[c.maxChars:]
		}
		if len(runes) > 0 {
			chunks = append(chunks, string(runes))
		}
	}

	// no paragraphs found at all: slice the whole text
	if len(chunks) == 0 {
		runes := []rune(text)
		for i := 0; i < len(runes); i += c.maxChars {
			end := i + c.maxChars
			if end > len(runes) {
				end = len(runes)
			}
			chunks = append(chunks, string(runes[i:end]))
		}
	}

	return chunks
}
