package mapper

import (
	"encoding/json"

	"stakeholder-rag-be/internal/constant"
	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var filenames []string
	if len(s.Filenames) > 0 {
		// stored by us, so a decode failure means a corrupted row; surface as empty
		_ = json.Unmarshal(s.Filenames, &filenames)
	}

	return &entity.ChatSession{
		Id:        s.Id,
		Role:      constant.Role(s.Role),
		Filenames: filenames,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	filenames, _ := json.Marshal(s.Filenames)

	return &model.ChatSession{
		Id:        s.Id,
		Role:      s.Role.String(),
		Filenames: datatypes.JSON(filenames),
		CreatedAt: s.CreatedAt,
	}
}

// Turn Mappers

func (m *ChatMapper) TurnToEntity(t *model.ConversationTurn) *entity.ConversationTurn {
	if t == nil {
		return nil
	}

	var sources []entity.Source
	if len(t.Sources) > 0 {
		_ = json.Unmarshal(t.Sources, &sources)
	}

	return &entity.ConversationTurn{
		Id:            t.Id,
		ChatSessionId: t.ChatSessionId,
		Role:          t.Role,
		Content:       t.Content,
		Sources:       sources,
		Seq:           t.Seq,
		CreatedAt:     t.CreatedAt,
	}
}

func (m *ChatMapper) TurnToModel(t *entity.ConversationTurn) *model.ConversationTurn {
	if t == nil {
		return nil
	}

	var sources datatypes.JSON
	if t.Sources != nil {
		raw, _ := json.Marshal(t.Sources)
		sources = datatypes.JSON(raw)
	}

	return &model.ConversationTurn{
		Id:            t.Id,
		ChatSessionId: t.ChatSessionId,
		Role:          t.Role,
		Content:       t.Content,
		Sources:       sources,
		Seq:           t.Seq,
		CreatedAt:     t.CreatedAt,
	}
}
