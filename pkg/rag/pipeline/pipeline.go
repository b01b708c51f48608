package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/internal/pkg/logger"
	"stakeholder-rag-be/internal/repository/contract"
	"stakeholder-rag-be/pkg/embedding"
	"stakeholder-rag-be/pkg/llm"
	"stakeholder-rag-be/pkg/rerank"
)

// ChunkSearcher is the slice of the chunk repository the pipeline needs for
// retrieval. Satisfied by contract.DocumentChunkRepository.
type ChunkSearcher interface {
	SearchSimilar(ctx context.Context, chatSessionId uuid.UUID, queryEmbedding []float32, limit int) ([]*contract.ScoredDocumentChunk, error)
}

type Status string

const (
	StatusAnswered Status = "answered"
	StatusRejected Status = "rejected"
)

// Result is the outcome of a full pipeline run. A rejected result carries the
// guardrail's explanation in Answer and no sources.
type Result struct {
	Status  Status
	Answer  string
	Sources []entity.Source
}

type Pipeline struct {
	llm          llm.LLMProvider
	embedder     embedding.EmbeddingProvider
	reranker     rerank.Reranker
	chunks       ChunkSearcher
	logger       logger.ILogger
	stageTimeout time.Duration
}

func NewPipeline(
	llmProvider llm.LLMProvider,
	embedder embedding.EmbeddingProvider,
	reranker rerank.Reranker,
	chunks ChunkSearcher,
	log logger.ILogger,
	stageTimeout time.Duration,
) *Pipeline {
	if stageTimeout <= 0 {
		stageTimeout = 120 * time.Second
	}
	return &Pipeline{
		llm:          llmProvider,
		embedder:     embedder,
		reranker:     reranker,
		chunks:       chunks,
		logger:       log,
		stageTimeout: stageTimeout,
	}
}

// Execute runs the five stages in order against the session's own collection.
// Stages after the guardrail are skipped entirely when the question is
// off-role.
func (p *Pipeline) Execute(ctx context.Context, session *entity.ChatSession, question string) (*Result, error) {
	verdict, err := p.runGuardrail(ctx, session, question)
	if err != nil {
		return nil, err
	}
	if !verdict.Relevant {
		p.logger.Info("rag.pipeline", "question rejected by guardrail", map[string]interface{}{
			"chat_session_id": session.Id.String(),
			"role":            session.Role.String(),
		})
		return &Result{Status: StatusRejected, Answer: verdict.Reason}, nil
	}

	searchQuery := p.runRewrite(ctx, session, question)

	scored, err := p.runRetrieve(ctx, session, searchQuery)
	if err != nil {
		return nil, err
	}

	top, err := p.runRerank(ctx, question, scored)
	if err != nil {
		return nil, err
	}

	answer, err := p.runGenerate(ctx, session, question, top)
	if err != nil {
		return nil, err
	}

	return &Result{
		Status:  StatusAnswered,
		Answer:  answer,
		Sources: collectSources(top),
	}, nil
}

// collectSources dedupes by source file, keeping rank order of first
// appearance.
func collectSources(chunks []*entity.DocumentChunk) []entity.Source {
	seen := make(map[string]bool, len(chunks))
	sources := make([]entity.Source, 0, len(chunks))
	for _, c := range chunks {
		if seen[c.SourceFile] {
			continue
		}
		seen[c.SourceFile] = true
		sources = append(sources, c.Source())
	}
	return sources
}

func (p *Pipeline) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.stageTimeout)
}
