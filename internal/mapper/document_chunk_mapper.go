package mapper

import (
	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}
	return &entity.DocumentChunk{
		Id:            c.Id,
		ChatSessionId: c.ChatSessionId,
		Content:       c.Content,
		SourceFile:    c.SourceFile,
		DocType:       c.DocType,
		DocTypeScore:  c.DocTypeScore,
		ChunkIndex:    c.ChunkIndex,
		Embedding:     c.Embedding.Slice(),
		CreatedAt:     c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}
	return &model.DocumentChunk{
		Id:            c.Id,
		ChatSessionId: c.ChatSessionId,
		Content:       c.Content,
		SourceFile:    c.SourceFile,
		DocType:       c.DocType,
		DocTypeScore:  c.DocTypeScore,
		ChunkIndex:    c.ChunkIndex,
		Embedding:     pgvector.NewVector(c.Embedding),
		CreatedAt:     c.CreatedAt,
	}
}
