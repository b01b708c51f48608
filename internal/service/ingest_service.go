package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stakeholder-rag-be/internal/apperrors"
	"stakeholder-rag-be/internal/constant"
	"stakeholder-rag-be/internal/dto"
	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/internal/pkg/logger"
	"stakeholder-rag-be/internal/repository/unitofwork"
	"stakeholder-rag-be/pkg/classify"
	"stakeholder-rag-be/pkg/embedding"
	"stakeholder-rag-be/pkg/events"
	"stakeholder-rag-be/pkg/ingest"
	pktNats "stakeholder-rag-be/pkg/nats"
	"stakeholder-rag-be/pkg/utils"
)

type IIngestService interface {
	CreateSession(ctx context.Context, role string, files []dto.FileUpload) (*dto.CreateSessionResponse, error)
}

type ingestService struct {
	uowFactory        unitofwork.RepositoryFactory
	parsers           *ingest.Registry
	classifier        classify.Classifier
	embeddingProvider embedding.EmbeddingProvider
	publisherService  IPublisherService
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewIngestService(
	uowFactory unitofwork.RepositoryFactory,
	parsers *ingest.Registry,
	classifier classify.Classifier,
	embeddingProvider embedding.EmbeddingProvider,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IIngestService {
	return &ingestService{
		uowFactory:        uowFactory,
		parsers:           parsers,
		classifier:        classifier,
		embeddingProvider: embeddingProvider,
		publisherService:  publisherService,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

// ingestedFile is one successfully processed upload, ready to persist.
type ingestedFile struct {
	filename string
	chunks   []*entity.DocumentChunk
}

// CreateSession parses, classifies, chunks and embeds the uploaded files and
// stores everything under a brand-new session. Files that cannot be processed
// are skipped and reported; the request only fails when nothing at all could
// be ingested.
func (s *ingestService) CreateSession(ctx context.Context, role string, files []dto.FileUpload) (*dto.CreateSessionResponse, error) {
	parsedRole, err := constant.ParseRole(role)
	if err != nil {
		return nil, apperrors.NewIngestion(err.Error(), err)
	}
	if len(files) == 0 {
		return nil, apperrors.NewIngestion("no files uploaded", nil)
	}

	sessionId := uuid.New()
	now := time.Now()

	var ingested []ingestedFile
	var skipped []dto.SkippedFileDTO
	for _, file := range files {
		result, err := s.processFile(ctx, sessionId, file, now)
		if err != nil {
			s.logger.Warn("service.ingest", "skipping file", map[string]interface{}{
				"filename": file.Filename,
				"error":    err.Error(),
			})
			skipped = append(skipped, dto.SkippedFileDTO{Filename: file.Filename, Reason: err.Error()})
			continue
		}
		ingested = append(ingested, *result)
	}

	if len(ingested) == 0 {
		return nil, apperrors.NewIngestion("no ingestible content in uploaded files", nil)
	}

	filenames := make([]string, 0, len(ingested))
	var allChunks []*entity.DocumentChunk
	for _, f := range ingested {
		filenames = append(filenames, f.filename)
		allChunks = append(allChunks, f.chunks...)
	}

	chatSession := entity.ChatSession{
		Id:        sessionId,
		Role:      parsedRole,
		Filenames: filenames,
		CreatedAt: now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, &chatSession); err != nil {
		return nil, err
	}
	if err := uow.DocumentChunkRepository().CreateBulk(ctx, allChunks); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.reportIngestion(ctx, &chatSession, len(allChunks))

	resp := &dto.CreateSessionResponse{
		Id:           chatSession.Id,
		Role:         chatSession.Role.String(),
		SkippedFiles: skipped,
		CreatedAt:    chatSession.CreatedAt,
	}
	for _, f := range ingested {
		resp.Files = append(resp.Files, dto.UploadedFileDTO{
			Filename:   f.filename,
			ChunkCount: len(f.chunks),
		})
	}
	return resp, nil
}

// processFile runs the per-file part of the pipeline: extract text, classify
// the document type, split into chunks and embed each chunk.
func (s *ingestService) processFile(ctx context.Context, sessionId uuid.UUID, file dto.FileUpload, now time.Time) (*ingestedFile, error) {
	parser, ok := s.parsers.For(file.Filename)
	if !ok {
		return nil, fmt.Errorf("unsupported file type")
	}

	text, err := parser.Parse(file.Filename, file.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	docType, docTypeScore := s.classifyDocument(ctx, file.Filename, text)

	pieces := utils.SplitText(text, constant.ChunkSize, constant.ChunkOverlap)
	if len(pieces) == 0 {
		return nil, fmt.Errorf("document produced no chunks")
	}

	chunks := make([]*entity.DocumentChunk, 0, len(pieces))
	for i, piece := range pieces {
		resp, err := s.embeddingProvider.Generate(ctx, piece, embedding.TaskDocument)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		chunks = append(chunks, &entity.DocumentChunk{
			Id:            uuid.New(),
			ChatSessionId: sessionId,
			Content:       piece,
			SourceFile:    file.Filename,
			DocType:       docType,
			DocTypeScore:  docTypeScore,
			ChunkIndex:    i,
			Embedding:     resp.Embedding.Values,
			CreatedAt:     now,
		})
	}
	return &ingestedFile{filename: file.Filename, chunks: chunks}, nil
}

// classifyDocument tags the document from its leading text. Classification is
// auxiliary metadata, a failure falls back to an unknown label.
func (s *ingestService) classifyDocument(ctx context.Context, filename, text string) (string, float64) {
	sample := utils.Truncate(text, constant.ClassifyMaxRunes)
	result, err := s.classifier.Classify(ctx, sample)
	if err != nil {
		s.logger.Warn("service.ingest", "document classification failed", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		return "unknown", 0
	}
	return result.Label, result.Score
}

// reportIngestion posts the ingestion report to the internal topic and, when
// a NATS connection is configured, broadcasts the session lifecycle event.
// Both are auxiliary and never fail the request.
func (s *ingestService) reportIngestion(ctx context.Context, session *entity.ChatSession, chunkCount int) {
	report := dto.PublishSessionIngestedMessage{
		ChatSessionId: session.Id,
		Role:          session.Role.String(),
		Filenames:     session.Filenames,
		ChunkCount:    chunkCount,
	}
	payload, err := json.Marshal(report)
	if err == nil {
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.logger.Warn("service.ingest", "failed to publish ingestion report", map[string]interface{}{
				"chat_session_id": session.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewSessionCreated(session.Id, session.Role.String(), len(session.Filenames))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("service.ingest", "failed to publish session event", map[string]interface{}{
				"chat_session_id": session.Id.String(),
				"error":           err.Error(),
			})
		}
	}
}
