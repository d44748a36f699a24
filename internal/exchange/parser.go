package exchange

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizforge/backend/internal/models"
)

// InvalidResponseError means the model's output could not be read as
// the expected JSON shape even after fence stripping.
type InvalidResponseError struct {
	Reason string
	Err    error
}

func (e *InvalidResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid model response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid model response: %s", e.Reason)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// ParseQuizResponse turns raw model text into a Quiz. The top-level
// value must be a JSON array; per-question shape is not validated, so
// malformed entries pass through rather than failing the whole quiz.
func ParseQuizResponse(raw string) (models.Quiz, error) {
	cleaned := stripCodeFences(raw)

	var quiz models.Quiz
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		return nil, &InvalidResponseError{Reason: "expected a JSON array of questions", Err: err}
	}
	// JSON null unmarshals into a slice as nil without error.
	if quiz == nil {
		return nil, &InvalidResponseError{Reason: "expected a JSON array of questions"}
	}

	return quiz, nil
}

// ParseGradeResponse turns raw model text into a GradeResult. Length,
// order, and score consistency are trusted to the model.
func ParseGradeResponse(raw string) (*models.GradeResult, error) {
	cleaned := stripCodeFences(raw)

	var result models.GradeResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &InvalidResponseError{Reason: "expected a JSON grading object", Err: err}
	}

	return &result, nil
}

// stripCodeFences removes an optional surrounding markdown code fence
// (``` with an optional language tag). Text without a fence is returned
// trimmed and otherwise untouched.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
