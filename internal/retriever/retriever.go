// Package retriever maps a query to the most relevant chunks of the indexed
// document.
package retriever

import (
	"context"
	"fmt"

	"papertutor/internal/embedding"
	"papertutor/internal/models"
	"papertutor/internal/vectorindex"
)

const (
	defaultTopK = 3
	// maxSnippetChars caps retrieved content before it reaches a prompt.
	maxSnippetChars = 800
)

// Retrieve embeds the query, searches the index, and assembles ranked
// results in ascending-distance order. Row-to-chunk lookup is safe because
// the index owns the chunk sequence it was built with.
func Retrieve(ctx context.Context, embedder embedding.Embedder, index *vectorindex.Index, query string, topK int) ([]models.RetrievalResult, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	queryVector, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := index.Search(queryVector, topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	results := make([]models.RetrievalResult, 0, len(hits))
	for rank, hit := range hits {
		chunk := index.Chunk(hit.Row)
		results = append(results, models.RetrievalResult{
			Rank:       rank + 1,
			Content:    truncate(chunk.Content, maxSnippetChars),
			PageNumber: chunk.PageNumber,
			Distance:   hit.Distance,
		})
	}
	return results, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
