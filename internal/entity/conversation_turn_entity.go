package entity

import (
	"time"

	"github.com/google/uuid"
)

// Source is a provenance record for one answer, derived from the chunks
// selected during reranking.
type Source struct {
	SourceFile   string  `json:"source_file"`
	DocType      string  `json:"doc_type"`
	DocTypeScore float64 `json:"doc_type_score"`
}

// ConversationTurn is one user message or one assistant response.
// Turns are append-only; Seq fixes their order within a session.
type ConversationTurn struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	Sources       []Source
	Seq           int
	CreatedAt     time.Time
}
