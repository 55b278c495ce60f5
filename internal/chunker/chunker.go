// Package chunker splits cleaned pages into fixed-size word windows.
package chunker

import (
	"strings"
	"unicode/utf8"

	"papertutor/internal/models"
)

const (
	defaultChunkSize = 350 // words per window
	defaultMinChars  = 150
)

// Options control the window size and the short-chunk filter.
type Options struct {
	ChunkSize int // words per chunk
	MinChars  int // minimum chunk length in characters
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = defaultChunkSize
	}
	if o.MinChars <= 0 {
		o.MinChars = defaultMinChars
	}
	return o
}

// Split cuts each page independently into non-overlapping windows of
// ChunkSize words, rejoined with single spaces. Windows shorter than MinChars
// are dropped without recovery, so short trailing windows silently disappear.
// Chunk order is page order, then window order within the page; this order
// becomes the row order of the vector index.
func Split(pages []models.Page, opts Options) []models.Chunk {
	opts = opts.withDefaults()

	var chunks []models.Chunk
	for _, page := range pages {
		words := strings.Fields(page.Text)
		for i := 0; i < len(words); i += opts.ChunkSize {
			end := min(i+opts.ChunkSize, len(words))
			content := strings.Join(words[i:end], " ")
			if utf8.RuneCountInString(content) < opts.MinChars {
				continue
			}
			chunks = append(chunks, models.Chunk{
				PageNumber: page.PageNumber,
				Content:    content,
			})
		}
	}
	return chunks
}
