package pipeline

import (
	"context"
	"sort"

	"stakeholder-rag-be/internal/apperrors"
	"stakeholder-rag-be/internal/constant"
	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/internal/repository/contract"
)

// runRerank rescores the retrieved candidates against the original question
// with the cross-encoder and keeps the best few. Ties keep retrieval order.
func (p *Pipeline) runRerank(ctx context.Context, question string, scored []*contract.ScoredDocumentChunk) ([]*entity.DocumentChunk, error) {
	stageCtx, cancel := p.stageContext(ctx)
	defer cancel()

	documents := make([]string, len(scored))
	for i, s := range scored {
		documents[i] = s.Chunk.Content
	}

	scores, err := p.reranker.Rank(stageCtx, question, documents)
	if err != nil {
		return nil, apperrors.NewGeneration("reranking failed", err)
	}
	if len(scores) != len(scored) {
		return nil, apperrors.NewGeneration("reranker returned mismatched score count", nil)
	}

	order := make([]int, len(scored))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	limit := constant.RerankTopN
	if len(order) < limit {
		limit = len(order)
	}
	top := make([]*entity.DocumentChunk, 0, limit)
	for _, idx := range order[:limit] {
		top = append(top, scored[idx].Chunk)
	}
	return top, nil
}
