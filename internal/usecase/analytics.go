package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/repository"
)

// Analytics records conversations and serves the aggregate reads. Callers on
// the chat path invoke it fire-and-forget; its errors must never reach the
// user-facing response.
type Analytics struct {
	store repository.ConversationStore
}

func NewAnalytics(store repository.ConversationStore) *Analytics {
	return &Analytics{store: store}
}

// LogConversation appends one log record and folds the message into its
// session aggregate. Returns the new log id.
func (a *Analytics) LogConversation(ctx context.Context, sessionID, message, response string, cls entity.Classification, meta entity.RequesterMeta) (string, error) {
	now := time.Now()
	rec := &entity.ConversationLog{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Message:    message,
		Response:   response,
		Intent:     cls.Intent,
		Confidence: cls.Confidence,
		Timestamp:  now,
		UserAgent:  meta.UserAgent,
		IPAddress:  meta.IPAddress,
	}

	if err := a.store.AppendLog(ctx, rec); err != nil {
		return "", fmt.Errorf("append conversation log: %w", err)
	}
	if err := a.store.RecordMessage(ctx, sessionID, cls.Confidence, meta, now); err != nil {
		return "", fmt.Errorf("update session aggregate: %w", err)
	}
	return rec.ID, nil
}

// EndSession stamps the session's end time. Calling it on an already-ended or
// unknown session is not an error; repeated calls keep the latest timestamp.
func (a *Analytics) EndSession(ctx context.Context, sessionID string) error {
	return a.store.EndSession(ctx, sessionID, time.Now())
}

// Sessions returns one page of session aggregates with their computed
// duration in minutes.
func (a *Analytics) Sessions(ctx context.Context, limit, offset int) ([]entity.SessionView, int, error) {
	sessions, total, err := a.store.Sessions(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	views := make([]entity.SessionView, len(sessions))
	for i, s := range sessions {
		views[i] = entity.SessionView{Session: s, Duration: s.DurationMinutes()}
	}
	return views, total, nil
}

// Logs returns one page of log records, newest first.
func (a *Analytics) Logs(ctx context.Context, limit, offset int) ([]entity.ConversationLog, int, error) {
	return a.store.Logs(ctx, limit, offset)
}

func (a *Analytics) Summary(ctx context.Context) (*entity.AnalyticsSummary, error) {
	return a.store.Summary(ctx)
}
