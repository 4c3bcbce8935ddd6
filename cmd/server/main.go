package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/adapter/api"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/adapter/classifier"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/adapter/client"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/adapter/store"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/config"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/repository"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/knowledge"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/logging"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/usecase"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogToFile)
	ctx := context.Background()

	kb := knowledge.Build()

	// Local pipeline. The trained classifier is built eagerly here so
	// concurrent first requests never race on initialization.
	trained := classifier.NewTrainedClassifier()
	lexical := classifier.NewLexicalScorer(kb)
	composer := usecase.NewComposer(kb)

	gemini, err := client.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTemperature, cfg.GeminiMaxTokens)
	if err != nil {
		log.Fatalf("failed to init gemini client: %v", err)
	}
	if gemini.IsAvailable() {
		log.Infof("Gemini enabled with model %s", cfg.GeminiModel)
	} else {
		log.Warn("GEMINI_API_KEY not set, running fully local")
	}

	// Semantic reply cache (optional, needs both Qdrant and Gemini).
	var replyCache repository.ReplyCache
	if cfg.QdrantHost != "" && gemini.IsAvailable() {
		qClient, err := qdrant.NewClient(&qdrant.Config{
			Host: cfg.QdrantHost,
			Port: cfg.QdrantPort,
		})
		if err != nil {
			log.Fatalf("failed to connect to qdrant: %v", err)
		}
		embedder := client.NewEmbedderFromClient(gemini.Raw(), cfg.EmbeddingModel)
		cache := store.NewQdrantCache(qClient, cfg.QdrantCollection, embedder, float32(cfg.CacheThreshold))
		if err := cache.InitCollection(ctx, 768); err != nil {
			log.Fatalf("failed to init qdrant collection: %v", err)
		}
		replyCache = cache
	}

	// Per-session message limiter (optional).
	var limiter repository.MessageLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		limiter = store.NewRedisLimiter(rdb, cfg.SessionMessageLimit)
	}

	// Conversation storage: durable when a database path is configured.
	var convStore repository.ConversationStore
	if cfg.AnalyticsDBPath != "" {
		sqliteStore, err := store.NewSQLiteStore(cfg.AnalyticsDBPath)
		if err != nil {
			log.Fatalf("failed to open analytics store: %v", err)
		}
		defer sqliteStore.Close()
		convStore = sqliteStore
	} else {
		log.Warn("ANALYTICS_DB_PATH not set, conversation history is kept in memory")
		convStore = store.NewMemoryStore()
	}

	orchestrator := usecase.NewOrchestrator(gemini, trained, lexical, composer, replyCache)
	analytics := usecase.NewAnalytics(convStore)
	comparer := usecase.NewComparer(gemini, trained, composer)

	settings := entity.GeneratorSettings{
		IsEnabled:       gemini.IsAvailable(),
		Model:           cfg.GeminiModel,
		Temperature:     cfg.GeminiTemperature,
		MaxTokens:       cfg.GeminiMaxTokens,
		FallbackEnabled: cfg.FallbackEnabled,
	}

	app := fiber.New(fiber.Config{
		AppName: "Amethyst Kombucha Chatbot",
	})

	handler := api.NewChatHandler(orchestrator, analytics, comparer, gemini, limiter, settings)
	api.SetupRouter(app, handler)

	log.Infof("chatbot backend running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
