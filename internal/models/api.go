package models

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

// ── Session API types ─────────────────────────────────────

type RecordAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// SessionView is the session snapshot the UI renders from.
type SessionView struct {
	ID         string       `json:"id"`
	State      SessionState `json:"state"`
	Questions  Quiz         `json:"questions,omitempty"`
	Attempted  int          `json:"attempted"`
	Percentage float64      `json:"percentage"`
	Score      float64      `json:"score"`
	TotalMarks float64      `json:"total_marks"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// ── Settings API types ────────────────────────────────────

type SaveCredentialRequest struct {
	Provider Provider `json:"id"`
	APIKey   string   `json:"apiKey"`
}

// ── History API types ─────────────────────────────────────

type HistoryEntry struct {
	ID            int64     `json:"id"`
	SessionID     string    `json:"session_id"`
	Topic         string    `json:"topic"`
	QuestionCount int       `json:"question_count"`
	Score         float64   `json:"score"`
	TotalMarks    float64   `json:"total_marks"`
	GradedAt      time.Time `json:"graded_at"`
}

type HistoryListResponse struct {
	Entries  []HistoryEntry `json:"entries"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}
