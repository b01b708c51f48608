package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"stakeholder-rag-be/internal/apperrors"
	"stakeholder-rag-be/internal/constant"
	"stakeholder-rag-be/internal/dto"
	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/internal/pkg/logger"
	"stakeholder-rag-be/internal/repository/specification"
	"stakeholder-rag-be/internal/repository/unitofwork"
	"stakeholder-rag-be/pkg/events"
	pktNats "stakeholder-rag-be/pkg/nats"
	"stakeholder-rag-be/pkg/rag/pipeline"
)

type IChatService interface {
	GetAllSessions(ctx context.Context, limit, offset int) ([]*dto.SessionSummaryResponse, error)
	GetHistory(ctx context.Context, sessionId uuid.UUID) (*dto.HistoryResponse, error)
	SendChat(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	pipeline       *pipeline.Pipeline
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger

	// Session metadata is immutable after creation, safe to cache.
	sessionCache *cache.Cache
	sessionLocks sync.Map
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	ragPipeline *pipeline.Pipeline,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		pipeline:       ragPipeline,
		eventPublisher: eventPublisher,
		logger:         log,
		sessionCache:   cache.New(30*time.Minute, 10*time.Minute),
	}
}

// GetAllSessions lists sessions newest first. A limit of 0 returns the
// full list.
func (cs *chatService) GetAllSessions(ctx context.Context, limit, offset int) ([]*dto.SessionSummaryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.SessionSummaryResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		response = append(response, &dto.SessionSummaryResponse{
			Id:        s.Id,
			Role:      s.Role.String(),
			Filenames: s.Filenames,
			CreatedAt: s.CreatedAt,
		})
	}

	return response, nil
}

// GetHistory returns a session's conversation turns in append order.
func (cs *chatService) GetHistory(ctx context.Context, sessionId uuid.UUID) (*dto.HistoryResponse, error) {
	if _, err := cs.getSession(ctx, sessionId); err != nil {
		return nil, err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.ConversationTurnRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "seq", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.HistoryResponse{
		ChatSessionId: sessionId,
		Turns:         make([]dto.ConversationTurnResponse, 0, len(turns)),
	}
	for _, turn := range turns {
		resp.Turns = append(resp.Turns, dto.ConversationTurnResponse{
			Id:        turn.Id,
			Role:      turn.Role,
			Content:   turn.Content,
			Sources:   mapSources(turn.Sources),
			CreatedAt: turn.CreatedAt,
		})
	}
	return resp, nil
}

// SendChat runs the full question pipeline for the session and appends the
// user and assistant turns to its history. The pipeline itself runs without
// any cross-session locking, only the final history append is serialized per
// session.
func (cs *chatService) SendChat(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	sess, err := cs.getSession(ctx, request.ChatSessionId)
	if err != nil {
		return nil, err
	}

	result, err := cs.pipeline.Execute(ctx, sess, request.Message)
	if err != nil {
		return nil, err
	}

	if err := cs.appendTurnPair(ctx, sess.Id, request.Message, result); err != nil {
		return nil, err
	}

	if cs.eventPublisher != nil {
		evt := events.NewMessageAnswered(sess.Id, result.Status == pipeline.StatusRejected)
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("service.chat", "failed to publish message event", map[string]interface{}{
				"chat_session_id": sess.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	return &dto.SendMessageResponse{
		Answer:  result.Answer,
		Sources: mapSources(result.Sources),
	}, nil
}

// appendTurnPair stores the question and its answer as two consecutive turns.
// The per-session lock keeps concurrent sends from interleaving their pairs.
func (cs *chatService) appendTurnPair(ctx context.Context, sessionId uuid.UUID, question string, result *pipeline.Result) error {
	lock := cs.lockFor(sessionId)
	lock.Lock()
	defer lock.Unlock()

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	seq, err := uow.ConversationTurnRepository().NextSeq(ctx, sessionId)
	if err != nil {
		return err
	}

	now := time.Now()
	userTurn := entity.ConversationTurn{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.TurnRoleUser,
		Content:       question,
		Seq:           seq,
		CreatedAt:     now,
	}
	assistantTurn := entity.ConversationTurn{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.TurnRoleAssistant,
		Content:       result.Answer,
		Sources:       result.Sources,
		Seq:           seq + 1,
		CreatedAt:     now,
	}

	if err := uow.ConversationTurnRepository().Create(ctx, &userTurn); err != nil {
		return err
	}
	if err := uow.ConversationTurnRepository().Create(ctx, &assistantTurn); err != nil {
		return err
	}
	return uow.Commit()
}

// getSession resolves session metadata through the cache.
func (cs *chatService) getSession(ctx context.Context, sessionId uuid.UUID) (*entity.ChatSession, error) {
	if cached, found := cs.sessionCache.Get(sessionId.String()); found {
		return cached.(*entity.ChatSession), nil
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperrors.NewNotFound("chat session not found")
	}

	cs.sessionCache.Set(sessionId.String(), sess, cache.DefaultExpiration)
	return sess, nil
}

func (cs *chatService) lockFor(sessionId uuid.UUID) *sync.Mutex {
	lock, _ := cs.sessionLocks.LoadOrStore(sessionId, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func mapSources(sources []entity.Source) []dto.SourceDTO {
	mapped := make([]dto.SourceDTO, 0, len(sources))
	for _, s := range sources {
		mapped = append(mapped, dto.SourceDTO{
			SourceFile:   s.SourceFile,
			DocType:      s.DocType,
			DocTypeScore: s.DocTypeScore,
		})
	}
	return mapped
}
