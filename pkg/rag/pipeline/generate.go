package pipeline

import (
	"context"
	"strings"

	"stakeholder-rag-be/internal/apperrors"
	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/pkg/rag/prompt"
)

// runGenerate produces the grounded answer from the reranked chunks.
func (p *Pipeline) runGenerate(ctx context.Context, session *entity.ChatSession, question string, chunks []*entity.DocumentChunk) (string, error) {
	stageCtx, cancel := p.stageContext(ctx)
	defer cancel()

	reply, err := p.llm.Chat(stageCtx, prompt.GenerationMessages(question, session.Role, chunks))
	if err != nil {
		p.logger.Error("rag.pipeline", "answer generation failed", map[string]interface{}{
			"chat_session_id": session.Id.String(),
			"error":           err.Error(),
		})
		return "", apperrors.NewGeneration("failed to generate answer", err)
	}

	answer := strings.TrimSpace(reply)
	if answer == "" {
		return "", apperrors.NewGeneration("model returned an empty answer", nil)
	}
	return answer, nil
}
