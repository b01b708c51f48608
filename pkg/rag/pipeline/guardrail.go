package pipeline

import (
	"context"
	"fmt"
	"strings"

	"stakeholder-rag-be/internal/apperrors"
	"stakeholder-rag-be/internal/constant"
	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/pkg/rag/prompt"
)

type guardrailVerdict struct {
	Relevant bool
	Reason   string
}

// runGuardrail asks the dispatcher which role the question best fits and
// compares the prediction against the session's role. Any other predicted
// role (or an unparseable reply) rejects the question.
func (p *Pipeline) runGuardrail(ctx context.Context, session *entity.ChatSession, question string) (*guardrailVerdict, error) {
	stageCtx, cancel := p.stageContext(ctx)
	defer cancel()

	reply, err := p.llm.Chat(stageCtx, prompt.GuardrailMessages(question))
	if err != nil {
		p.logger.Error("rag.pipeline", "guardrail call failed", map[string]interface{}{
			"chat_session_id": session.Id.String(),
			"error":           err.Error(),
		})
		return nil, apperrors.NewGeneration("guardrail check failed", err)
	}

	predicted, ok := parsePredictedRole(reply)
	if ok && predicted == session.Role {
		return &guardrailVerdict{Relevant: true}, nil
	}

	reason := fmt.Sprintf("This question does not seem relevant to your role as a %s.", session.Role)
	if ok {
		reason = fmt.Sprintf("%s It appears to be better suited for the %s role.", reason, predicted)
	}
	p.logger.Debug("rag.pipeline", "guardrail verdict", map[string]interface{}{
		"chat_session_id": session.Id.String(),
		"predicted_role":  reply,
		"session_role":    session.Role.String(),
	})
	return &guardrailVerdict{Relevant: false, Reason: reason}, nil
}

// parsePredictedRole matches the model's free-text reply against the known
// role titles, tolerating surrounding punctuation or chatter.
func parsePredictedRole(reply string) (constant.Role, bool) {
	cleaned := strings.TrimSpace(reply)
	if role, err := constant.ParseRole(cleaned); err == nil {
		return role, true
	}
	lowered := strings.ToLower(cleaned)
	for _, role := range constant.AllRoles {
		if strings.Contains(lowered, strings.ToLower(role.String())) {
			return role, true
		}
	}
	return "", false
}
