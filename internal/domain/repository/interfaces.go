package repository

import (
	"context"
	"time"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
)

// AIProvider is the external generative collaborator. Both calls are single
// attempts; a failure triggers the local fallback chain, never a retry.
type AIProvider interface {
	IsAvailable() bool
	ClassifyIntent(ctx context.Context, text string) (entity.Classification, error)
	GenerateReply(ctx context.Context, text, contextHint string, intent entity.Intent) (entity.GeneratedReply, error)
}

// Classifier is the shared contract of the local classifiers (trained model
// and lexical scorer).
type Classifier interface {
	Classify(text string) entity.Classification
}

// ConversationStore persists append-only log records and per-session
// aggregates, and serves the paginated analytics reads.
type ConversationStore interface {
	AppendLog(ctx context.Context, rec *entity.ConversationLog) error
	RecordMessage(ctx context.Context, sessionID string, confidence float64, meta entity.RequesterMeta, at time.Time) error
	EndSession(ctx context.Context, sessionID string, at time.Time) error
	Logs(ctx context.Context, limit, offset int) ([]entity.ConversationLog, int, error)
	Sessions(ctx context.Context, limit, offset int) ([]entity.Session, int, error)
	Summary(ctx context.Context) (*entity.AnalyticsSummary, error)
}

// ReplyCache is the semantic cache consulted before the external generator.
// Errors degrade to a miss.
type ReplyCache interface {
	Lookup(ctx context.Context, message string) (*entity.CachedReply, error)
	Store(ctx context.Context, message string, res entity.ChatResult) error
}

// MessageLimiter bounds how many messages a single session may send.
type MessageLimiter interface {
	Allow(ctx context.Context, sessionID string) (bool, error)
	Increment(ctx context.Context, sessionID string) error
}

// Embedder turns text into a vector for the semantic cache.
type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}
