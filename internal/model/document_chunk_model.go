package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentChunk struct {
	Id            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID       `gorm:"type:uuid;not null;index"`
	Content       string          `gorm:"type:text;not null"`
	SourceFile    string          `gorm:"type:varchar(255);not null"`
	DocType       string          `gorm:"type:varchar(64);not null"`
	DocTypeScore  float64         `gorm:"not null"`
	ChunkIndex    int             `gorm:"default:0"` // 0-based order within the source file
	Embedding     pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text / jina-v2-base are 768-dim
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
