package bootstrap

import (
	"log"

	"ai-quickdoc-be/internal/config"
	"ai-quickdoc-be/internal/controller"
	"ai-quickdoc-be/internal/pkg/logger"
	"ai-quickdoc-be/internal/repository/unitofwork"
	"ai-quickdoc-be/internal/service"
	"ai-quickdoc-be/pkg/cache"
	"ai-quickdoc-be/pkg/embedding"
	"ai-quickdoc-be/pkg/embedding/jina"
	"ai-quickdoc-be/pkg/ingest"
	"ai-quickdoc-be/pkg/llm/factory"
	"ai-quickdoc-be/pkg/rag"
	"ai-quickdoc-be/pkg/vectorstore/pgvector"

	pkgNats "ai-quickdoc-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// The pipeline trace goes to its own file so the main log stays readable.
	ragLogger := logger.NewIsolatedLogger("logs/rag.log")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Identical texts hit the provider once within the cache window.
	embeddingProvider = embedding.NewCachedProvider(embeddingProvider)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.Groq,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	var answerCache cache.AnswerCache
	if cfg.App.RedisURL != "" {
		redisCache, err := cache.NewRedisAnswerCache(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to Redis answer cache: %v", err)
		} else {
			answerCache = redisCache
		}
	}

	// 5. Domain Pipelines
	vectorIndex := pgvector.NewIndex(uowFactory, cfg.Index.Dimension)

	ingestPipeline := ingest.NewPipeline(embeddingProvider, vectorIndex, sysLogger, ingest.Config{
		ChunkSize: ingest.DefaultChunkSize,
		Overlap:   ingest.DefaultOverlap,
	})

	ragPipeline := rag.NewPipeline(embeddingProvider, vectorIndex, llmProvider, answerCache, ragLogger, rag.Config{
		Namespace:   cfg.Index.Namespace,
		TopK:        cfg.Index.TopK,
		StepTimeout: cfg.Ai.CallTimeout,
	})

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		uowFactory,
		ingestPipeline,
		natsPub,
	)

	chatService := service.NewChatService(ragPipeline)
	documentService := service.NewDocumentService(uowFactory, publisherService, cfg.Index.Namespace)

	// 7. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService, sysLogger),
		DocumentController: controller.NewDocumentController(documentService),

		ConsumerService: consumerService,
	}
}
