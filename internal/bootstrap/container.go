package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"quiz-generation-be/internal/config"
	"quiz-generation-be/internal/controller"
	"quiz-generation-be/internal/pkg/logger"
	"quiz-generation-be/internal/repository/unitofwork"
	"quiz-generation-be/internal/service"
	"quiz-generation-be/pkg/embedding"
	"quiz-generation-be/pkg/events"
	"quiz-generation-be/pkg/llm"
	"quiz-generation-be/pkg/llm/factory"
	"quiz-generation-be/pkg/mcq"
	pktNats "quiz-generation-be/pkg/nats"
	"quiz-generation-be/pkg/rag/quizgen"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HealthController   controller.IHealthController
	DocumentController controller.IDocumentController
	SearchController   controller.ISearchController
	QuizController     controller.IQuizController
	LibraryController  controller.ILibraryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 2. Event Bus (embedding backfill)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	rdb := newRedis(cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var eventPublisher events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, cfg.Keys.EventsSubject)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 4. Model handles
	embeddingProvider := newEmbeddingProvider(cfg)
	var queryCache redis.Cmdable
	if rdb != nil {
		queryCache = rdb
	}
	gateway := embedding.NewGateway(embedding.NewCachedProvider(
		embeddingProvider,
		fmt.Sprintf("%s/%s/%d", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel, cfg.Ai.EmbeddingDimensions),
		queryCache,
		time.Duration(cfg.Ai.QueryCacheTTLMins)*time.Minute,
	))

	llmProvider, err := factory.NewLLMProvider(context.Background(), factory.Settings{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		OpenAIKey:     cfg.Keys.OpenAI,
		GeminiKey:     cfg.Keys.GoogleGemini,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	c.addCloser(llmProvider)

	limited := llm.NewRateLimitedProvider(llmProvider, cfg.Ai.RequestsPerSecond, 1)
	generator := mcq.NewGenerator(limited, cfg.Ai.Temperature, cfg.Ai.MaxTokens)
	orchestrator := quizgen.NewOrchestrator(generator, sysLogger, cfg.Quiz.RetryFactor)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.BackfillTopic)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Keys.BackfillTopic,
		uowFactory,
		gateway,
		logger.NewIsolatedLogger("logs/backfill.log"),
	)

	documentService := service.NewDocumentService(
		uowFactory,
		gateway,
		cfg.Ingest,
		cfg.App.UploadDir,
		publisherService,
		eventPublisher,
		sysLogger,
	)
	searchService := service.NewSearchService(uowFactory, gateway, cfg.Quiz, sysLogger)
	quizService := service.NewQuizService(uowFactory, searchService, orchestrator, cfg.Quiz, eventPublisher, sysLogger)
	libraryService := service.NewLibraryService(uowFactory, eventPublisher, sysLogger)

	// 6. Controllers
	c.HealthController = controller.NewHealthController()
	c.DocumentController = controller.NewDocumentController(documentService, int64(cfg.App.MaxUploadMB)<<20)
	c.SearchController = controller.NewSearchController(searchService)
	c.QuizController = controller.NewQuizController(quizService)
	c.LibraryController = controller.NewLibraryController(libraryService)

	return c
}

// Close releases broker and cache connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

// addCloser registers v for Close when it holds a connection, e.g. the gemini client.
func (c *Container) addCloser(v interface{}) {
	closer, ok := v.(io.Closer)
	if !ok {
		return
	}
	c.closers = append(c.closers, func() {
		if err := closer.Close(); err != nil {
			log.Printf("[WARN] Failed to close %T: %v", v, err)
		}
	})
}

func newEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	switch cfg.Ai.EmbeddingProvider {
	case "gemini":
		log.Printf("[INFO] Using Embedding Provider: GEMINI (%s)", cfg.Ai.EmbeddingModel)
		return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel)
	case "openai":
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%d dims)", cfg.Ai.EmbeddingDimensions)
		return embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingDimensions)
	case "mock":
		log.Printf("[WARN] Using Embedding Provider: MOCK (no semantic signal)")
		return embedding.NewMockProvider(cfg.Ai.EmbeddingDimensions)
	default:
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	}
}

// newRedis returns nil when no URL is configured or the server is unreachable.
func newRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, query cache stays in-process: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
