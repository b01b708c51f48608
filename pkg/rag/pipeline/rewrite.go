package pipeline

import (
	"context"
	"strings"

	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/pkg/rag/prompt"
)

// runRewrite reformulates the question into role-specific search phrasing.
// This stage is best-effort: on failure or an empty reply the original
// question is used unchanged.
func (p *Pipeline) runRewrite(ctx context.Context, session *entity.ChatSession, question string) string {
	stageCtx, cancel := p.stageContext(ctx)
	defer cancel()

	reply, err := p.llm.Chat(stageCtx, prompt.RewriteMessages(question, session.Role))
	if err != nil {
		p.logger.Warn("rag.pipeline", "query rewrite failed, using original question", map[string]interface{}{
			"chat_session_id": session.Id.String(),
			"error":           err.Error(),
		})
		return question
	}

	rewritten := strings.Trim(strings.TrimSpace(reply), `"`)
	if rewritten == "" {
		return question
	}
	return rewritten
}
