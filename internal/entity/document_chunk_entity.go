package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is the unit of retrieval: one segment of ingested document
// text with its classification metadata. Chunks belong to exactly one session
// and are never mutated after ingestion.
type DocumentChunk struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Content       string
	SourceFile    string
	DocType       string
	DocTypeScore  float64
	ChunkIndex    int
	Embedding     []float32
	CreatedAt     time.Time
}

// Source derives the provenance record carried on assistant turns.
func (c *DocumentChunk) Source() Source {
	return Source{
		SourceFile:   c.SourceFile,
		DocType:      c.DocType,
		DocTypeScore: c.DocTypeScore,
	}
}
