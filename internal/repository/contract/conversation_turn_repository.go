package contract

import (
	"context"

	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationTurnRepository interface {
	Create(ctx context.Context, turn *entity.ConversationTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// NextSeq returns the next append sequence number for a session.
	NextSeq(ctx context.Context, sessionId uuid.UUID) (int, error)
}
