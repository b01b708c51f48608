package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatSession struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Role      string         `gorm:"type:varchar(64);not null"`
	Filenames datatypes.JSON `gorm:"type:jsonb;not null"` // ordered list of ingested filenames
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
