package bootstrap

import (
	"log"

	"stakeholder-rag-be/internal/config"
	"stakeholder-rag-be/internal/controller"
	"stakeholder-rag-be/internal/pkg/logger"
	"stakeholder-rag-be/internal/repository/implementation"
	"stakeholder-rag-be/internal/repository/unitofwork"
	"stakeholder-rag-be/internal/service"
	"stakeholder-rag-be/pkg/classify"
	classifyHf "stakeholder-rag-be/pkg/classify/huggingface"
	"stakeholder-rag-be/pkg/embedding"
	"stakeholder-rag-be/pkg/embedding/jina"
	"stakeholder-rag-be/pkg/ingest"
	llmFactory "stakeholder-rag-be/pkg/llm/factory"
	"stakeholder-rag-be/pkg/rag/pipeline"
	rerankFactory "stakeholder-rag-be/pkg/rerank/factory"

	pktNats "stakeholder-rag-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Collaborators
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Ai.JinaAPIKey)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	}

	llmProvider, err := llmFactory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFaceAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	reranker, err := rerankFactory.NewReranker(
		cfg.Ai.RerankerProvider,
		cfg.Ai.TEIBaseURL,
		cfg.Ai.JinaAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Reranker: %v", err)
	}
	log.Printf("[INFO] Using Reranker Provider: %s", cfg.Ai.RerankerProvider)

	var classifier classify.Classifier = classifyHf.NewHuggingFaceClassifier(
		cfg.Ai.HuggingFaceAPIKey,
		"",
		cfg.Ai.ClassifierModel,
	)

	// 4. Infrastructure
	// NATS is auxiliary, a missing broker must not block startup
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 5. Pipeline
	// The searcher runs outside any transaction, reads go straight to db
	chunkSearcher := implementation.NewDocumentChunkRepository(db)
	ragPipeline := pipeline.NewPipeline(
		llmProvider,
		embeddingProvider,
		reranker,
		chunkSearcher,
		sysLogger,
		cfg.Ai.StageTimeout,
	)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Topics.SessionIngested, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.SessionIngested,
		uowFactory,
		sysLogger,
	)

	ingestService := service.NewIngestService(
		uowFactory,
		ingest.DefaultRegistry(),
		classifier,
		embeddingProvider,
		publisherService,
		natsPub,
		sysLogger,
	)
	chatService := service.NewChatService(
		uowFactory,
		ragPipeline,
		natsPub,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		ChatController:  controller.NewChatController(ingestService, chatService),
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
