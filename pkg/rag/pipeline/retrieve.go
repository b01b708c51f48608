package pipeline

import (
	"context"

	"stakeholder-rag-be/internal/apperrors"
	"stakeholder-rag-be/internal/constant"
	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/internal/repository/contract"
	"stakeholder-rag-be/pkg/embedding"
)

// runRetrieve embeds the search query and pulls the nearest chunks from this
// session's collection only. An empty collection is a hard failure, not an
// empty answer.
func (p *Pipeline) runRetrieve(ctx context.Context, session *entity.ChatSession, searchQuery string) ([]*contract.ScoredDocumentChunk, error) {
	stageCtx, cancel := p.stageContext(ctx)
	defer cancel()

	resp, err := p.embedder.Generate(stageCtx, searchQuery, embedding.TaskQuery)
	if err != nil {
		return nil, apperrors.NewRetrieval("failed to embed search query", err)
	}

	scored, err := p.chunks.SearchSimilar(stageCtx, session.Id, resp.Embedding.Values, constant.RetrievalTopK)
	if err != nil {
		return nil, apperrors.NewRetrieval("similarity search failed", err)
	}
	if len(scored) == 0 {
		p.logger.Warn("rag.pipeline", "no chunks retrieved for session", map[string]interface{}{
			"chat_session_id": session.Id.String(),
		})
		return nil, apperrors.NewRetrieval("no documents available for this session", nil)
	}

	return scored, nil
}
