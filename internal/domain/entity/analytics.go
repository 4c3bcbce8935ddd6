package entity

import "time"

// RequesterMeta is the optional request metadata attached to log records
// and session aggregates.
type RequesterMeta struct {
	UserAgent string `json:"userAgent,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
}

// ConversationLog is one append-only record per inbound message. Records are
// never updated or deleted.
type ConversationLog struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	Message    string    `json:"message"`
	Response   string    `json:"response"`
	Intent     Intent    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
	UserAgent  string    `json:"userAgent,omitempty"`
	IPAddress  string    `json:"ipAddress,omitempty"`
}

// Session is the running aggregate for one chat session. It is created on the
// first message and mutated incrementally afterwards; never deleted.
type Session struct {
	ID            string     `json:"id"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	MessageCount  int        `json:"messageCount"`
	AvgConfidence float64    `json:"avgConfidence"`
	UserAgent     string     `json:"userAgent,omitempty"`
	IPAddress     string     `json:"ipAddress,omitempty"`
}

// ApplyMessage folds one message into the aggregate. The running mean must be
// updated with the incremental formula avg' = (avg*(n-1)+c)/n, in arrival
// order; callers must not substitute a stored-sum batch mean.
func (s *Session) ApplyMessage(confidence float64, at time.Time) {
	s.MessageCount++
	s.AvgConfidence = (s.AvgConfidence*float64(s.MessageCount-1) + confidence) / float64(s.MessageCount)
	end := at
	s.EndTime = &end
}

// DurationMinutes is the first-to-last message span. Zero when the session
// has no end timestamp yet.
func (s *Session) DurationMinutes() float64 {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Minutes()
}

// SessionView is a Session plus its computed duration, as returned by the
// analytics listing endpoint.
type SessionView struct {
	Session
	Duration float64 `json:"duration"`
}

type IntentCount struct {
	Intent Intent `json:"intent"`
	Count  int    `json:"count"`
}

type DailyStat struct {
	Date     string `json:"date"`
	Messages int    `json:"messages"`
	Sessions int    `json:"sessions"`
}

type QuestionStat struct {
	Question      string  `json:"question"`
	Count         int     `json:"count"`
	AvgConfidence float64 `json:"avgConfidence"`
}

// AnalyticsSummary is the aggregate view over all recorded conversations.
type AnalyticsSummary struct {
	TotalMessages   int            `json:"totalMessages"`
	TotalSessions   int            `json:"totalSessions"`
	AvgConfidence   float64        `json:"avgConfidence"`
	TopIntents      []IntentCount  `json:"topIntents"`
	DailyStats      []DailyStat    `json:"dailyStats"`
	CommonQuestions []QuestionStat `json:"commonQuestions"`
}
