package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stakeholder-rag-be/internal/apperrors"
	"stakeholder-rag-be/internal/constant"
	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/internal/pkg/logger"
	"stakeholder-rag-be/internal/repository/contract"
	"stakeholder-rag-be/pkg/embedding"
	"stakeholder-rag-be/pkg/llm"
)

type mockLLM struct {
	chatFn func(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error)
}

func (m *mockLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return m.chatFn(ctx, history, options...)
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return m.chatFn(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type mockEmbedder struct {
	generateFn func(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error)
}

func (m *mockEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return m.generateFn(ctx, text, taskType)
}

type mockReranker struct {
	rankFn func(ctx context.Context, query string, documents []string) ([]float64, error)
}

func (m *mockReranker) Rank(ctx context.Context, query string, documents []string) ([]float64, error) {
	return m.rankFn(ctx, query, documents)
}

type mockSearcher struct {
	searchFn func(ctx context.Context, chatSessionId uuid.UUID, queryEmbedding []float32, limit int) ([]*contract.ScoredDocumentChunk, error)
}

func (m *mockSearcher) SearchSimilar(ctx context.Context, chatSessionId uuid.UUID, queryEmbedding []float32, limit int) ([]*contract.ScoredDocumentChunk, error) {
	return m.searchFn(ctx, chatSessionId, queryEmbedding, limit)
}

func testSession(role constant.Role) *entity.ChatSession {
	return &entity.ChatSession{
		Id:        uuid.New(),
		Role:      role,
		Filenames: []string{"report.pdf"},
		CreatedAt: time.Now(),
	}
}

func scoredChunk(sessionId uuid.UUID, content, file string, idx int) *contract.ScoredDocumentChunk {
	return &contract.ScoredDocumentChunk{
		Chunk: &entity.DocumentChunk{
			Id:            uuid.New(),
			ChatSessionId: sessionId,
			Content:       content,
			SourceFile:    file,
			DocType:       "financial_report",
			DocTypeScore:  0.91,
			ChunkIndex:    idx,
		},
		Similarity: 1.0 - float64(idx)*0.05,
	}
}

// isDispatcherCall distinguishes the guardrail prompt from rewrite and
// generation by its system message.
func isDispatcherCall(history []llm.Message) bool {
	return strings.Contains(history[0].Content, "expert dispatcher")
}

func isRewriteCall(history []llm.Message) bool {
	return strings.Contains(history[0].Content, "query rewriter")
}

func TestExecute_GuardrailRejectsOffRoleQuestion(t *testing.T) {
	session := testSession(constant.RoleProductLead)
	searched := false

	p := NewPipeline(
		&mockLLM{chatFn: func(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
			require.True(t, isDispatcherCall(history), "only the guardrail should run")
			return string(constant.RoleTechLead), nil
		}},
		&mockEmbedder{generateFn: func(context.Context, string, string) (*embedding.EmbeddingResponse, error) {
			t.Fatal("retrieval must not run after rejection")
			return nil, nil
		}},
		&mockReranker{rankFn: func(context.Context, string, []string) ([]float64, error) {
			t.Fatal("rerank must not run after rejection")
			return nil, nil
		}},
		&mockSearcher{searchFn: func(context.Context, uuid.UUID, []float32, int) ([]*contract.ScoredDocumentChunk, error) {
			searched = true
			return nil, nil
		}},
		logger.NopLogger{},
		time.Minute,
	)

	result, err := p.Execute(context.Background(), session, "Why is the payments API latency so high?")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, result.Status)
	assert.Contains(t, result.Answer, "Product Lead")
	assert.Contains(t, result.Answer, "Tech Lead")
	assert.Empty(t, result.Sources)
	assert.False(t, searched)
}

func TestExecute_GuardrailToleratesNoisyRoleReply(t *testing.T) {
	session := testSession(constant.RoleProductLead)

	p := NewPipeline(
		&mockLLM{chatFn: func(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
			if isDispatcherCall(history) {
				return "The best role here is: Product Lead.", nil
			}
			if isRewriteCall(history) {
				return "transaction limit for basic tier users", nil
			}
			return "The basic tier limit is **$15,000**.", nil
		}},
		&mockEmbedder{generateFn: func(context.Context, string, string) (*embedding.EmbeddingResponse, error) {
			return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2}}}, nil
		}},
		&mockReranker{rankFn: func(_ context.Context, _ string, docs []string) ([]float64, error) {
			scores := make([]float64, len(docs))
			for i := range scores {
				scores[i] = 0.5
			}
			return scores, nil
		}},
		&mockSearcher{searchFn: func(_ context.Context, sessionId uuid.UUID, _ []float32, _ int) ([]*contract.ScoredDocumentChunk, error) {
			return []*contract.ScoredDocumentChunk{scoredChunk(sessionId, "basic tier limit is 15,000", "q3.pdf", 0)}, nil
		}},
		logger.NopLogger{},
		time.Minute,
	)

	result, err := p.Execute(context.Background(), session, "What is the transaction limit for basic users?")
	require.NoError(t, err)
	assert.Equal(t, StatusAnswered, result.Status)
	assert.Contains(t, result.Answer, "15,000")
}

func TestExecute_GuardrailUnparseableReplyRejects(t *testing.T) {
	session := testSession(constant.RoleComplianceLead)

	p := NewPipeline(
		&mockLLM{chatFn: func(context.Context, []llm.Message, ...llm.Option) (string, error) {
			return "I am not sure what you mean.", nil
		}},
		&mockEmbedder{},
		&mockReranker{},
		&mockSearcher{},
		logger.NopLogger{},
		time.Minute,
	)

	result, err := p.Execute(context.Background(), session, "gibberish")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, result.Status)
	assert.Contains(t, result.Answer, "Compliance Lead")
	assert.NotContains(t, result.Answer, "better suited")
}

func TestExecute_GuardrailErrorIsGenerationError(t *testing.T) {
	session := testSession(constant.RoleProductLead)

	p := NewPipeline(
		&mockLLM{chatFn: func(context.Context, []llm.Message, ...llm.Option) (string, error) {
			return "", errors.New("connection refused")
		}},
		&mockEmbedder{},
		&mockReranker{},
		&mockSearcher{},
		logger.NopLogger{},
		time.Minute,
	)

	result, err := p.Execute(context.Background(), session, "roadmap?")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.KindGeneration, apperrors.KindOf(err))
}

func TestExecute_RewriteFailureFallsBackToOriginalQuestion(t *testing.T) {
	session := testSession(constant.RoleBankAllianceLead)
	question := "What uptime does the partner bank SLA guarantee?"
	var embeddedText string

	p := NewPipeline(
		&mockLLM{chatFn: func(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
			if isDispatcherCall(history) {
				return string(constant.RoleBankAllianceLead), nil
			}
			if isRewriteCall(history) {
				return "", errors.New("model overloaded")
			}
			return "The SLA guarantees **99.9%** uptime.", nil
		}},
		&mockEmbedder{generateFn: func(_ context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
			embeddedText = text
			assert.Equal(t, embedding.TaskQuery, taskType)
			return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1}}}, nil
		}},
		&mockReranker{rankFn: func(_ context.Context, _ string, docs []string) ([]float64, error) {
			return make([]float64, len(docs)), nil
		}},
		&mockSearcher{searchFn: func(_ context.Context, sessionId uuid.UUID, _ []float32, _ int) ([]*contract.ScoredDocumentChunk, error) {
			return []*contract.ScoredDocumentChunk{scoredChunk(sessionId, "partner SLA: 99.9% uptime", "sla.pdf", 0)}, nil
		}},
		logger.NopLogger{},
		time.Minute,
	)

	result, err := p.Execute(context.Background(), session, question)
	require.NoError(t, err)
	assert.Equal(t, StatusAnswered, result.Status)
	assert.Equal(t, question, embeddedText)
}

func TestExecute_EmptyCollectionIsRetrievalError(t *testing.T) {
	session := testSession(constant.RoleProductLead)

	p := NewPipeline(
		&mockLLM{chatFn: func(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
			if isDispatcherCall(history) {
				return string(constant.RoleProductLead), nil
			}
			return "transaction limit for basic users", nil
		}},
		&mockEmbedder{generateFn: func(context.Context, string, string) (*embedding.EmbeddingResponse, error) {
			return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1}}}, nil
		}},
		&mockReranker{},
		&mockSearcher{searchFn: func(context.Context, uuid.UUID, []float32, int) ([]*contract.ScoredDocumentChunk, error) {
			return nil, nil
		}},
		logger.NopLogger{},
		time.Minute,
	)

	_, err := p.Execute(context.Background(), session, "What is the transaction limit for basic users?")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindRetrieval, apperrors.KindOf(err))
}

func TestExecute_RerankFailureIsGenerationError(t *testing.T) {
	session := testSession(constant.RoleProductLead)

	p := NewPipeline(
		&mockLLM{chatFn: func(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
			if isDispatcherCall(history) {
				return string(constant.RoleProductLead), nil
			}
			return "transaction limit", nil
		}},
		&mockEmbedder{generateFn: func(context.Context, string, string) (*embedding.EmbeddingResponse, error) {
			return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1}}}, nil
		}},
		&mockReranker{rankFn: func(context.Context, string, []string) ([]float64, error) {
			return nil, errors.New("reranker down")
		}},
		&mockSearcher{searchFn: func(_ context.Context, sessionId uuid.UUID, _ []float32, _ int) ([]*contract.ScoredDocumentChunk, error) {
			return []*contract.ScoredDocumentChunk{scoredChunk(sessionId, "some content", "a.txt", 0)}, nil
		}},
		logger.NopLogger{},
		time.Minute,
	)

	_, err := p.Execute(context.Background(), session, "What is the transaction limit for basic users?")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindGeneration, apperrors.KindOf(err))
}

func TestExecute_RerankKeepsTopFourWithStableTies(t *testing.T) {
	session := testSession(constant.RoleProductLead)
	var generationContext string

	p := NewPipeline(
		&mockLLM{chatFn: func(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
			if isDispatcherCall(history) {
				return string(constant.RoleProductLead), nil
			}
			if isRewriteCall(history) {
				return "transaction limit", nil
			}
			generationContext = history[1].Content
			return "answer", nil
		}},
		&mockEmbedder{generateFn: func(context.Context, string, string) (*embedding.EmbeddingResponse, error) {
			return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1}}}, nil
		}},
		&mockReranker{rankFn: func(_ context.Context, _ string, docs []string) ([]float64, error) {
			// chunk-5 wins outright, chunk-0/1/2 tie above the rest
			scores := []float64{0.8, 0.8, 0.8, 0.1, 0.1, 0.9}
			return scores[:len(docs)], nil
		}},
		&mockSearcher{searchFn: func(_ context.Context, sessionId uuid.UUID, _ []float32, limit int) ([]*contract.ScoredDocumentChunk, error) {
			assert.Equal(t, constant.RetrievalTopK, limit)
			chunks := make([]*contract.ScoredDocumentChunk, 6)
			for i := range chunks {
				chunks[i] = scoredChunk(sessionId, fmt.Sprintf("chunk-%d", i), fmt.Sprintf("doc-%d.txt", i), i)
			}
			return chunks, nil
		}},
		logger.NopLogger{},
		time.Minute,
	)

	result, err := p.Execute(context.Background(), session, "What is the transaction limit for basic users?")
	require.NoError(t, err)
	assert.Equal(t, StatusAnswered, result.Status)

	// Winner plus the tied trio in retrieval order; the low scorers are cut.
	for _, want := range []string{"chunk-5", "chunk-0", "chunk-1", "chunk-2"} {
		assert.Contains(t, generationContext, want)
	}
	assert.NotContains(t, generationContext, "chunk-3")
	assert.NotContains(t, generationContext, "chunk-4")
	assert.True(t, strings.Index(generationContext, "chunk-5") < strings.Index(generationContext, "chunk-0"))
	assert.True(t, strings.Index(generationContext, "chunk-0") < strings.Index(generationContext, "chunk-1"))

	require.Len(t, result.Sources, 4)
	assert.Equal(t, "doc-5.txt", result.Sources[0].SourceFile)
}

func TestExecute_SourcesDedupedBySourceFile(t *testing.T) {
	session := testSession(constant.RoleProductLead)

	p := NewPipeline(
		&mockLLM{chatFn: func(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
			if isDispatcherCall(history) {
				return string(constant.RoleProductLead), nil
			}
			return "answer", nil
		}},
		&mockEmbedder{generateFn: func(context.Context, string, string) (*embedding.EmbeddingResponse, error) {
			return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1}}}, nil
		}},
		&mockReranker{rankFn: func(_ context.Context, _ string, docs []string) ([]float64, error) {
			return make([]float64, len(docs)), nil
		}},
		&mockSearcher{searchFn: func(_ context.Context, sessionId uuid.UUID, _ []float32, _ int) ([]*contract.ScoredDocumentChunk, error) {
			return []*contract.ScoredDocumentChunk{
				scoredChunk(sessionId, "a", "report.pdf", 0),
				scoredChunk(sessionId, "b", "report.pdf", 1),
				scoredChunk(sessionId, "c", "notes.txt", 2),
			}, nil
		}},
		logger.NopLogger{},
		time.Minute,
	)

	result, err := p.Execute(context.Background(), session, "What is the transaction limit for basic users?")
	require.NoError(t, err)
	require.Len(t, result.Sources, 2)
	assert.Equal(t, "report.pdf", result.Sources[0].SourceFile)
	assert.Equal(t, "notes.txt", result.Sources[1].SourceFile)
}

func TestExecute_MismatchedRerankScoresFail(t *testing.T) {
	session := testSession(constant.RoleProductLead)

	p := NewPipeline(
		&mockLLM{chatFn: func(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
			if isDispatcherCall(history) {
				return string(constant.RoleProductLead), nil
			}
			return "transaction limit", nil
		}},
		&mockEmbedder{generateFn: func(context.Context, string, string) (*embedding.EmbeddingResponse, error) {
			return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1}}}, nil
		}},
		&mockReranker{rankFn: func(context.Context, string, []string) ([]float64, error) {
			return []float64{0.5}, nil
		}},
		&mockSearcher{searchFn: func(_ context.Context, sessionId uuid.UUID, _ []float32, _ int) ([]*contract.ScoredDocumentChunk, error) {
			return []*contract.ScoredDocumentChunk{
				scoredChunk(sessionId, "a", "a.txt", 0),
				scoredChunk(sessionId, "b", "b.txt", 1),
			}, nil
		}},
		logger.NopLogger{},
		time.Minute,
	)

	_, err := p.Execute(context.Background(), session, "What is the transaction limit for basic users?")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindGeneration, apperrors.KindOf(err))
}
