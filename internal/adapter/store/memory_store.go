package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
)

// MemoryStore keeps conversation logs and session aggregates in process
// memory. It backs tests and deployments without a database path configured.
type MemoryStore struct {
	mu       sync.RWMutex
	logs     []entity.ConversationLog
	sessions map[string]*entity.Session
	order    []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*entity.Session)}
}

func (m *MemoryStore) AppendLog(_ context.Context, rec *entity.ConversationLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, *rec)
	return nil
}

func (m *MemoryStore) RecordMessage(_ context.Context, sessionID string, confidence float64, meta entity.RequesterMeta, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		s = &entity.Session{
			ID:        sessionID,
			StartTime: at,
			UserAgent: meta.UserAgent,
			IPAddress: meta.IPAddress,
		}
		m.sessions[sessionID] = s
		m.order = append(m.order, sessionID)
	}
	s.ApplyMessage(confidence, at)
	return nil
}

func (m *MemoryStore) EndSession(_ context.Context, sessionID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		end := at
		s.EndTime = &end
	}
	return nil
}

func (m *MemoryStore) Logs(_ context.Context, limit, offset int) ([]entity.ConversationLog, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sorted := make([]entity.ConversationLog, len(m.logs))
	copy(sorted, m.logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	return pageLogs(sorted, limit, offset), len(m.logs), nil
}

func (m *MemoryStore) Sessions(_ context.Context, limit, offset int) ([]entity.Session, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]entity.Session, 0, len(m.order))
	for _, id := range m.order {
		all = append(all, *m.sessions[id])
	}
	return pageSessions(all, limit, offset), len(all), nil
}

func (m *MemoryStore) Summary(_ context.Context) (*entity.AnalyticsSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary := &entity.AnalyticsSummary{
		TotalMessages: len(m.logs),
		TotalSessions: len(m.sessions),
	}

	intentCounts := make(map[entity.Intent]int)
	type questionAgg struct {
		count int
		total float64
	}
	questions := make(map[string]*questionAgg)

	var confidenceSum float64
	for _, rec := range m.logs {
		confidenceSum += rec.Confidence
		intentCounts[rec.Intent]++

		q := strings.ToLower(rec.Message)
		agg, ok := questions[q]
		if !ok {
			agg = &questionAgg{}
			questions[q] = agg
		}
		agg.count++
		agg.total += rec.Confidence
	}
	if len(m.logs) > 0 {
		summary.AvgConfidence = confidenceSum / float64(len(m.logs))
	}

	for intent, count := range intentCounts {
		summary.TopIntents = append(summary.TopIntents, entity.IntentCount{Intent: intent, Count: count})
	}
	sort.SliceStable(summary.TopIntents, func(i, j int) bool {
		return summary.TopIntents[i].Count > summary.TopIntents[j].Count
	})
	if len(summary.TopIntents) > 10 {
		summary.TopIntents = summary.TopIntents[:10]
	}

	for q, agg := range questions {
		summary.CommonQuestions = append(summary.CommonQuestions, entity.QuestionStat{
			Question:      q,
			Count:         agg.count,
			AvgConfidence: agg.total / float64(agg.count),
		})
	}
	sort.SliceStable(summary.CommonQuestions, func(i, j int) bool {
		return summary.CommonQuestions[i].Count > summary.CommonQuestions[j].Count
	})
	if len(summary.CommonQuestions) > 10 {
		summary.CommonQuestions = summary.CommonQuestions[:10]
	}

	summary.DailyStats = m.dailyStats()
	return summary, nil
}

// dailyStats covers the last 7 days, oldest first.
func (m *MemoryStore) dailyStats() []entity.DailyStat {
	now := time.Now()
	stats := make([]entity.DailyStat, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		stat := entity.DailyStat{Date: date}
		for _, rec := range m.logs {
			if rec.Timestamp.Format("2006-01-02") == date {
				stat.Messages++
			}
		}
		for _, s := range m.sessions {
			if s.StartTime.Format("2006-01-02") == date {
				stat.Sessions++
			}
		}
		stats = append(stats, stat)
	}
	return stats
}

func pageLogs(logs []entity.ConversationLog, limit, offset int) []entity.ConversationLog {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(logs) {
		return nil
	}
	end := offset + limit
	if end > len(logs) {
		end = len(logs)
	}
	return logs[offset:end]
}

func pageSessions(sessions []entity.Session, limit, offset int) []entity.Session {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(sessions) {
		return nil
	}
	end := offset + limit
	if end > len(sessions) {
		end = len(sessions)
	}
	return sessions[offset:end]
}
