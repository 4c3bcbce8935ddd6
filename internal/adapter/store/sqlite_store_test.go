package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "analytics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_RecordMessageAggregates(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)
	meta := entity.RequesterMeta{UserAgent: "test-agent", IPAddress: "127.0.0.1"}

	confidences := []float64{0.9, 0.5, 0.7}
	for i, c := range confidences {
		require.NoError(t, s.RecordMessage(ctx, "s1", c, meta, base.Add(time.Duration(i)*time.Minute)))
	}

	sessions, total, err := s.Sessions(ctx, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, sessions, 1)

	sess := sessions[0]
	assert.Equal(t, "s1", sess.ID)
	assert.Equal(t, 3, sess.MessageCount)
	assert.InDelta(t, (0.9+0.5+0.7)/3, sess.AvgConfidence, 1e-9)
	assert.Equal(t, "test-agent", sess.UserAgent)
	require.NotNil(t, sess.EndTime)
	assert.InDelta(t, 2, sess.EndTime.Sub(sess.StartTime).Minutes(), 1e-9)
}

func TestSQLiteStore_EndSession(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, s.RecordMessage(ctx, "s1", 0.8, entity.RequesterMeta{}, base))

	end := base.Add(10 * time.Minute)
	require.NoError(t, s.EndSession(ctx, "s1", end))
	require.NoError(t, s.EndSession(ctx, "s1", end))
	require.NoError(t, s.EndSession(ctx, "ghost", end))

	sessions, _, err := s.Sessions(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].EndTime)
	assert.True(t, sessions[0].EndTime.Equal(end))
}

func TestSQLiteStore_LogsPagination(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 4; i++ {
		require.NoError(t, s.AppendLog(ctx, &entity.ConversationLog{
			ID:         fmt.Sprintf("log-%d", i),
			SessionID:  "s1",
			Message:    fmt.Sprintf("pesan %d", i),
			Response:   "jawaban",
			Intent:     entity.IntentFAQ,
			Confidence: 0.8,
			Timestamp:  base.Add(time.Duration(i) * time.Second),
		}))
	}

	logs, total, err := s.Logs(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, logs, 2)
	assert.Equal(t, "log-3", logs[0].ID)
	assert.Equal(t, "log-2", logs[1].ID)

	logs, _, err = s.Logs(ctx, 2, 3)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "log-0", logs[0].ID)
}

func TestSQLiteStore_DuplicateLogID(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	rec := &entity.ConversationLog{
		ID: "dup", SessionID: "s1", Message: "halo", Response: "halo juga",
		Intent: entity.IntentGreeting, Confidence: 0.9, Timestamp: time.Now(),
	}
	require.NoError(t, s.AppendLog(ctx, rec))
	assert.Error(t, s.AppendLog(ctx, rec))
}

func TestSQLiteStore_Summary(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	add := func(id, msg string, intent entity.Intent, confidence float64) {
		require.NoError(t, s.AppendLog(ctx, &entity.ConversationLog{
			ID: id, SessionID: "s1", Message: msg, Response: "ok",
			Intent: intent, Confidence: confidence, Timestamp: now,
		}))
	}
	add("1", "halo", entity.IntentGreeting, 0.9)
	add("2", "HALO", entity.IntentGreeting, 0.7)
	add("3", "berapa harga", entity.IntentFAQ, 0.8)
	require.NoError(t, s.RecordMessage(ctx, "s1", 0.8, entity.RequesterMeta{}, now))

	sum, err := s.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.TotalMessages)
	assert.Equal(t, 1, sum.TotalSessions)
	assert.InDelta(t, (0.9+0.7+0.8)/3, sum.AvgConfidence, 1e-9)

	require.NotEmpty(t, sum.TopIntents)
	assert.Equal(t, entity.IntentGreeting, sum.TopIntents[0].Intent)
	assert.Equal(t, 2, sum.TopIntents[0].Count)

	require.NotEmpty(t, sum.CommonQuestions)
	assert.Equal(t, "halo", sum.CommonQuestions[0].Question)
	assert.Equal(t, 2, sum.CommonQuestions[0].Count)

	require.Len(t, sum.DailyStats, 7)
}
