package dto

import (
	"time"

	"github.com/google/uuid"
)

// SourceDTO is the citation attached to an assistant answer.
type SourceDTO struct {
	SourceFile   string  `json:"source_file"`
	DocType      string  `json:"doc_type"`
	DocTypeScore float64 `json:"doc_type_score"`
}

type UploadedFileDTO struct {
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
}

type SkippedFileDTO struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

type CreateSessionResponse struct {
	Id           uuid.UUID         `json:"id"`
	Role         string            `json:"role"`
	Files        []UploadedFileDTO `json:"files"`
	SkippedFiles []SkippedFileDTO  `json:"skipped_files,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

type SessionSummaryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Filenames []string  `json:"filenames"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	ChatSessionId uuid.UUID
	Message       string `json:"message" validate:"required,min=1"`
}

type SendMessageResponse struct {
	Answer  string      `json:"answer"`
	Sources []SourceDTO `json:"sources"`
}

type ConversationTurnResponse struct {
	Id        uuid.UUID   `json:"id"`
	Role      string      `json:"role"`
	Content   string      `json:"content"`
	Sources   []SourceDTO `json:"sources,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type HistoryResponse struct {
	ChatSessionId uuid.UUID                  `json:"chat_session_id"`
	Turns         []ConversationTurnResponse `json:"turns"`
}
