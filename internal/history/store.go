package history

import (
	"database/sql"
	"fmt"

	"github.com/quizforge/backend/internal/models"
)

// Store archives graded quiz sessions.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Record(entry models.HistoryEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO quiz_history (session_id, topic, question_count, score, total_marks, graded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.SessionID, entry.Topic, entry.QuestionCount, entry.Score, entry.TotalMarks, entry.GradedAt,
	)
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

func (s *Store) List(limit, offset int) ([]models.HistoryEntry, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM quiz_history`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, topic, question_count, score, total_marks, graded_at
		 FROM quiz_history
		 ORDER BY graded_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Topic, &e.QuestionCount, &e.Score, &e.TotalMarks, &e.GradedAt); err != nil {
			return nil, 0, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}

	return entries, total, nil
}
