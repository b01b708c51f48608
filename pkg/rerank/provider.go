package rerank

import "context"

// Reranker scores each document's relevance to the query with a
// cross-encoder. Scores come back aligned to the input order; higher
// means more relevant. Scores are not comparable across models.
type Reranker interface {
	Rank(ctx context.Context, query string, documents []string) ([]float64, error)
}
