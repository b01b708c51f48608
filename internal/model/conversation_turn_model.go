package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConversationTurn struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index:idx_turn_session_seq,priority:1"`
	Role          string         `gorm:"type:varchar(16);not null"` // "user" | "assistant"
	Content       string         `gorm:"type:text;not null"`
	Sources       datatypes.JSON `gorm:"type:jsonb"` // assistant turns only
	Seq           int            `gorm:"not null;index:idx_turn_session_seq,priority:2"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}
