package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
)

// SQLiteStore is the durable ConversationStore. Log records are append-only;
// session aggregates are upserted in place.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS chat_logs (
    id          TEXT PRIMARY KEY,
    session_id  TEXT NOT NULL,
    message     TEXT NOT NULL,
    response    TEXT NOT NULL,
    intent      TEXT NOT NULL,
    confidence  REAL NOT NULL,
    timestamp   TIMESTAMP NOT NULL,
    user_agent  TEXT,
    ip_address  TEXT
);
CREATE INDEX IF NOT EXISTS idx_chat_logs_timestamp ON chat_logs(timestamp);
CREATE INDEX IF NOT EXISTS idx_chat_logs_session ON chat_logs(session_id);

CREATE TABLE IF NOT EXISTS chat_sessions (
    id             TEXT PRIMARY KEY,
    start_time     TIMESTAMP NOT NULL,
    end_time       TIMESTAMP,
    message_count  INTEGER NOT NULL DEFAULT 0,
    avg_confidence REAL NOT NULL DEFAULT 0,
    user_agent     TEXT,
    ip_address     TEXT
);`

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping analytics database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create analytics tables: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) AppendLog(ctx context.Context, rec *entity.ConversationLog) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO chat_logs (id, session_id, message, response, intent, confidence, timestamp, user_agent, ip_address)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SessionID, rec.Message, rec.Response, string(rec.Intent),
		rec.Confidence, rec.Timestamp, rec.UserAgent, rec.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("insert chat log: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecordMessage(ctx context.Context, sessionID string, confidence float64, meta entity.RequesterMeta, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session update: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        INSERT OR IGNORE INTO chat_sessions (id, start_time, message_count, avg_confidence, user_agent, ip_address)
        VALUES (?, ?, 0, 0, ?, ?)`,
		sessionID, at, meta.UserAgent, meta.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	// SET expressions read the pre-update row, so this is exactly the
	// incremental mean avg' = (avg*(n-1)+c)/n with n = message_count+1.
	_, err = tx.ExecContext(ctx, `
        UPDATE chat_sessions SET
            avg_confidence = (avg_confidence * message_count + ?) / (message_count + 1),
            message_count  = message_count + 1,
            end_time       = ?
        WHERE id = ?`,
		confidence, at, sessionID,
	)
	if err != nil {
		return fmt.Errorf("update session aggregate: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) EndSession(ctx context.Context, sessionID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE chat_sessions SET end_time = ? WHERE id = ?`, at, sessionID)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Logs(ctx context.Context, limit, offset int) ([]entity.ConversationLog, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_logs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count chat logs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, session_id, message, response, intent, confidence, timestamp, user_agent, ip_address
        FROM chat_logs ORDER BY timestamp DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query chat logs: %w", err)
	}
	defer rows.Close()

	var logs []entity.ConversationLog
	for rows.Next() {
		var rec entity.ConversationLog
		var intent string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Message, &rec.Response, &intent,
			&rec.Confidence, &rec.Timestamp, &rec.UserAgent, &rec.IPAddress); err != nil {
			return nil, 0, fmt.Errorf("scan chat log: %w", err)
		}
		rec.Intent = entity.Intent(intent)
		logs = append(logs, rec)
	}
	return logs, total, rows.Err()
}

func (s *SQLiteStore) Sessions(ctx context.Context, limit, offset int) ([]entity.Session, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_sessions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, start_time, end_time, message_count, avg_confidence, user_agent, ip_address
        FROM chat_sessions ORDER BY start_time ASC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []entity.Session
	for rows.Next() {
		var sess entity.Session
		var end sql.NullTime
		if err := rows.Scan(&sess.ID, &sess.StartTime, &end, &sess.MessageCount,
			&sess.AvgConfidence, &sess.UserAgent, &sess.IPAddress); err != nil {
			return nil, 0, fmt.Errorf("scan session: %w", err)
		}
		if end.Valid {
			t := end.Time
			sess.EndTime = &t
		}
		sessions = append(sessions, sess)
	}
	return sessions, total, rows.Err()
}

func (s *SQLiteStore) Summary(ctx context.Context) (*entity.AnalyticsSummary, error) {
	summary := &entity.AnalyticsSummary{}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(confidence), 0) FROM chat_logs`,
	).Scan(&summary.TotalMessages, &summary.AvgConfidence)
	if err != nil {
		return nil, fmt.Errorf("aggregate chat logs: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_sessions`).Scan(&summary.TotalSessions); err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT intent, COUNT(*) AS n FROM chat_logs
        GROUP BY intent ORDER BY n DESC LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("aggregate intents: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ic entity.IntentCount
		var intent string
		if err := rows.Scan(&intent, &ic.Count); err != nil {
			return nil, fmt.Errorf("scan intent count: %w", err)
		}
		ic.Intent = entity.Intent(intent)
		summary.TopIntents = append(summary.TopIntents, ic)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	qrows, err := s.db.QueryContext(ctx, `
        SELECT LOWER(message), COUNT(*) AS n, AVG(confidence) FROM chat_logs
        GROUP BY LOWER(message) ORDER BY n DESC LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("aggregate questions: %w", err)
	}
	defer qrows.Close()
	for qrows.Next() {
		var qs entity.QuestionStat
		if err := qrows.Scan(&qs.Question, &qs.Count, &qs.AvgConfidence); err != nil {
			return nil, fmt.Errorf("scan question stat: %w", err)
		}
		summary.CommonQuestions = append(summary.CommonQuestions, qs)
	}
	if err := qrows.Err(); err != nil {
		return nil, err
	}

	daily, err := s.dailyStats(ctx)
	if err != nil {
		return nil, err
	}
	summary.DailyStats = daily
	return summary, nil
}

func (s *SQLiteStore) dailyStats(ctx context.Context) ([]entity.DailyStat, error) {
	messages, err := s.countByDay(ctx, `SELECT DATE(timestamp), COUNT(*) FROM chat_logs GROUP BY DATE(timestamp)`)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily messages: %w", err)
	}
	sessions, err := s.countByDay(ctx, `SELECT DATE(start_time), COUNT(*) FROM chat_sessions GROUP BY DATE(start_time)`)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily sessions: %w", err)
	}

	now := time.Now()
	stats := make([]entity.DailyStat, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		stats = append(stats, entity.DailyStat{
			Date:     date,
			Messages: messages[date],
			Sessions: sessions[date],
		})
	}
	return stats, nil
}

func (s *SQLiteStore) countByDay(ctx context.Context, query string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var date string
		var n int
		if err := rows.Scan(&date, &n); err != nil {
			return nil, err
		}
		counts[date] = n
	}
	return counts, rows.Err()
}
