package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"stakeholder-rag-be/internal/dto"
	"stakeholder-rag-be/internal/pkg/logger"
	"stakeholder-rag-be/internal/repository/specification"
	"stakeholder-rag-be/internal/repository/unitofwork"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService audits ingestion reports from the internal topic. It
// cross-checks the reported chunk count against what actually landed in the
// store and logs the result.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var report dto.PublishSessionIngestedMessage
	if err := json.Unmarshal(msg.Payload, &report); err != nil {
		cs.logger.Error("service.consumer", "failed to unmarshal ingestion report", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.DocumentChunkRepository().Count(ctx,
		specification.ByChatSessionID{ChatSessionID: report.ChatSessionId},
	)
	if err != nil {
		cs.logger.Error("service.consumer", "failed to count stored chunks", map[string]interface{}{
			"chat_session_id": report.ChatSessionId.String(),
			"error":           err.Error(),
		})
		msg.Nack()
		return
	}

	details := map[string]interface{}{
		"chat_session_id": report.ChatSessionId.String(),
		"role":            report.Role,
		"file_count":      len(report.Filenames),
		"reported_chunks": report.ChunkCount,
		"stored_chunks":   stored,
	}
	if int(stored) != report.ChunkCount {
		cs.logger.Warn("service.consumer", "ingestion report mismatch", details)
	} else {
		cs.logger.Info("service.consumer", "session ingestion verified", details)
	}
	msg.Ack()
}
