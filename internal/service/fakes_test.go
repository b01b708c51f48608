package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/internal/repository/contract"
	"stakeholder-rag-be/internal/repository/specification"
	"stakeholder-rag-be/internal/repository/unitofwork"
)

// In-memory unit of work shared by the service tests. Specifications are
// interpreted by type since there is no SQL to apply them to.

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUow struct {
	sessions *fakeSessionRepo
	turns    *fakeTurnRepo
	chunks   *fakeChunkRepo

	commits   int
	rollbacks int
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		sessions: &fakeSessionRepo{byId: map[uuid.UUID]*entity.ChatSession{}},
		turns:    &fakeTurnRepo{},
		chunks:   &fakeChunkRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { u.commits++; return nil }
func (u *fakeUow) Rollback() error                 { u.rollbacks++; return nil }

func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return u.sessions
}

func (u *fakeUow) ConversationTurnRepository() contract.ConversationTurnRepository {
	return u.turns
}

func (u *fakeUow) DocumentChunkRepository() contract.DocumentChunkRepository {
	return u.chunks
}

type fakeSessionRepo struct {
	byId map[uuid.UUID]*entity.ChatSession
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.byId[session.Id] = session
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return r.byId[byId.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	sessions := make([]*entity.ChatSession, 0, len(r.byId))
	for _, s := range r.byId {
		sessions = append(sessions, s)
	}
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			if s.Field != "created_at" {
				continue
			}
			desc := s.Desc
			sort.Slice(sessions, func(i, j int) bool {
				if desc {
					return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
				}
				return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
			})
		case specification.Pagination:
			if s.Offset >= len(sessions) {
				sessions = nil
				continue
			}
			sessions = sessions[s.Offset:]
			if s.Limit < len(sessions) {
				sessions = sessions[:s.Limit]
			}
		}
	}
	return sessions, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.byId)), nil
}

type fakeTurnRepo struct {
	turns []*entity.ConversationTurn
}

func (r *fakeTurnRepo) Create(ctx context.Context, turn *entity.ConversationTurn) error {
	r.turns = append(r.turns, turn)
	return nil
}

func (r *fakeTurnRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error) {
	var result []*entity.ConversationTurn
	sessionFilter := uuid.Nil
	for _, spec := range specs {
		if bySession, ok := spec.(specification.ByChatSessionID); ok {
			sessionFilter = bySession.ChatSessionID
		}
	}
	for _, turn := range r.turns {
		if sessionFilter == uuid.Nil || turn.ChatSessionId == sessionFilter {
			result = append(result, turn)
		}
	}
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "seq" {
			sort.Slice(result, func(i, j int) bool {
				if order.Desc {
					return result[i].Seq > result[j].Seq
				}
				return result[i].Seq < result[j].Seq
			})
		}
	}
	return result, nil
}

func (r *fakeTurnRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, err := r.FindAll(ctx, specs...)
	return int64(len(found)), err
}

func (r *fakeTurnRepo) NextSeq(ctx context.Context, sessionId uuid.UUID) (int, error) {
	next := 0
	for _, turn := range r.turns {
		if turn.ChatSessionId == sessionId && turn.Seq >= next {
			next = turn.Seq + 1
		}
	}
	return next, nil
}

type fakeChunkRepo struct {
	chunks []*entity.DocumentChunk
}

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	r.chunks = append(r.chunks, chunks...)
	return nil
}

func (r *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	sessionFilter := uuid.Nil
	for _, spec := range specs {
		if bySession, ok := spec.(specification.ByChatSessionID); ok {
			sessionFilter = bySession.ChatSessionID
		}
	}
	var result []*entity.DocumentChunk
	for _, c := range r.chunks {
		if sessionFilter == uuid.Nil || c.ChatSessionId == sessionFilter {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, err := r.FindAll(ctx, specs...)
	return int64(len(found)), err
}

func (r *fakeChunkRepo) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	var kept []*entity.DocumentChunk
	for _, c := range r.chunks {
		if c.ChatSessionId != sessionId {
			kept = append(kept, c)
		}
	}
	r.chunks = kept
	return nil
}

func (r *fakeChunkRepo) SearchSimilar(ctx context.Context, sessionId uuid.UUID, queryEmbedding []float32, limit int) ([]*contract.ScoredDocumentChunk, error) {
	var result []*contract.ScoredDocumentChunk
	for _, c := range r.chunks {
		if c.ChatSessionId != sessionId {
			continue
		}
		result = append(result, &contract.ScoredDocumentChunk{Chunk: c, Similarity: 1})
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

