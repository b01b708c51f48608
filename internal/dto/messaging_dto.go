package dto

import "github.com/google/uuid"

// FileUpload carries one uploaded file through the ingestion flow.
type FileUpload struct {
	Filename string
	Data     []byte
}

// PublishSessionIngestedMessage is the payload posted to the ingestion
// report topic after a session's documents are stored.
type PublishSessionIngestedMessage struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	Role          string    `json:"role"`
	Filenames     []string  `json:"filenames"`
	ChunkCount    int       `json:"chunk_count"`
}
