package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
)

func TestMemoryStore_IncrementalAverage(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	confidences := []float64{0.9, 0.5, 0.7, 1.0}
	for i, c := range confidences {
		require.NoError(t, m.RecordMessage(ctx, "s1", c, entity.RequesterMeta{}, base.Add(time.Duration(i)*time.Minute)))
	}

	sessions, total, err := m.Sessions(ctx, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, 4, s.MessageCount)
	assert.InDelta(t, (0.9+0.5+0.7+1.0)/4, s.AvgConfidence, 1e-9)
	assert.Equal(t, base, s.StartTime)
	require.NotNil(t, s.EndTime)
	assert.InDelta(t, 3, s.DurationMinutes(), 1e-9)
}

func TestMemoryStore_EndSession(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, m.RecordMessage(ctx, "s1", 0.8, entity.RequesterMeta{}, base))

	end := base.Add(5 * time.Minute)
	require.NoError(t, m.EndSession(ctx, "s1", end))
	// Idempotent: a second call just moves the timestamp.
	later := base.Add(7 * time.Minute)
	require.NoError(t, m.EndSession(ctx, "s1", later))

	// Ending an unknown session is not an error.
	require.NoError(t, m.EndSession(ctx, "ghost", later))

	sessions, _, err := m.Sessions(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].EndTime)
	assert.True(t, sessions[0].EndTime.Equal(later))
}

func TestMemoryStore_LogsNewestFirst(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, m.AppendLog(ctx, &entity.ConversationLog{
			ID:        fmt.Sprintf("log-%d", i),
			SessionID: "s1",
			Message:   fmt.Sprintf("pesan %d", i),
			Intent:    entity.IntentGeneral,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	logs, total, err := m.Logs(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, logs, 2)
	assert.Equal(t, "log-4", logs[0].ID)
	assert.Equal(t, "log-3", logs[1].ID)

	logs, _, err = m.Logs(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "log-0", logs[0].ID)

	logs, _, err = m.Logs(ctx, 2, 99)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestMemoryStore_NegativePagination(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, m.AppendLog(ctx, &entity.ConversationLog{ID: "log-0", SessionID: "s1", Timestamp: now}))
	require.NoError(t, m.RecordMessage(ctx, "s1", 0.8, entity.RequesterMeta{}, now))

	// Hostile query values must page to nothing, never panic.
	logs, total, err := m.Logs(ctx, -1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, logs)

	logs, _, err = m.Logs(ctx, 10, -5)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "log-0", logs[0].ID)

	sessions, _, err := m.Sessions(ctx, -1, -1)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestMemoryStore_SessionsInsertionOrder(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, m.RecordMessage(ctx, id, 0.5, entity.RequesterMeta{}, base))
	}
	require.NoError(t, m.RecordMessage(ctx, "a", 0.5, entity.RequesterMeta{}, base))

	sessions, total, err := m.Sessions(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, sessions, 3)
	assert.Equal(t, "a", sessions[0].ID)
	assert.Equal(t, "c", sessions[2].ID)
	assert.Equal(t, 2, sessions[0].MessageCount)

	sessions, _, err = m.Sessions(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "c", sessions[0].ID)
}

func TestMemoryStore_Summary(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	add := func(msg string, intent entity.Intent, confidence float64) {
		require.NoError(t, m.AppendLog(ctx, &entity.ConversationLog{
			ID: msg, SessionID: "s1", Message: msg,
			Intent: intent, Confidence: confidence, Timestamp: now,
		}))
	}
	add("halo", entity.IntentGreeting, 0.9)
	add("Halo", entity.IntentGreeting, 0.7)
	add("berapa harga", entity.IntentFAQ, 0.8)
	require.NoError(t, m.RecordMessage(ctx, "s1", 0.8, entity.RequesterMeta{}, now))

	sum, err := m.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.TotalMessages)
	assert.Equal(t, 1, sum.TotalSessions)
	assert.InDelta(t, (0.9+0.7+0.8)/3, sum.AvgConfidence, 1e-9)

	require.NotEmpty(t, sum.TopIntents)
	assert.Equal(t, entity.IntentGreeting, sum.TopIntents[0].Intent)
	assert.Equal(t, 2, sum.TopIntents[0].Count)

	// Questions are case-folded before grouping.
	require.NotEmpty(t, sum.CommonQuestions)
	assert.Equal(t, "halo", sum.CommonQuestions[0].Question)
	assert.Equal(t, 2, sum.CommonQuestions[0].Count)
	assert.InDelta(t, 0.8, sum.CommonQuestions[0].AvgConfidence, 1e-9)

	require.Len(t, sum.DailyStats, 7)
	today := sum.DailyStats[6]
	assert.Equal(t, now.Format("2006-01-02"), today.Date)
	assert.Equal(t, 3, today.Messages)
	assert.Equal(t, 1, today.Sessions)
}

func TestMemoryStore_SummaryEmpty(t *testing.T) {
	m := NewMemoryStore()

	sum, err := m.Summary(context.Background())
	require.NoError(t, err)

	assert.Zero(t, sum.TotalMessages)
	assert.Zero(t, sum.TotalSessions)
	assert.Zero(t, sum.AvgConfidence)
	assert.Len(t, sum.DailyStats, 7)
}
