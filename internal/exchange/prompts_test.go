package exchange

import (
	"strings"
	"testing"

	"github.com/quizforge/backend/internal/models"
)

func TestBuildQuizPrompt(t *testing.T) {
	req := models.GenerationRequest{
		Topic:      "World War 2",
		Difficulty: models.DifficultyMedium,
		Pattern:    models.PatternMixed,
		Count:      10,
	}
	prompt := BuildQuizPrompt(req)

	required := []string{
		"quiz master", "World War 2", "medium", "exactly 10 questions",
		"ONLY with valid JSON", "exactly 4 options", "serial number",
		"correctAnswer", "userAnswer", "explanation", "markdown",
	}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("quiz prompt missing keyword %q", keyword)
		}
	}
}

func TestBuildQuizPrompt_PatternInstructions(t *testing.T) {
	tests := []struct {
		pattern models.Pattern
		want    string
	}{
		{models.PatternOnlyMCQ, "'mcq'"},
		{models.PatternOnlySAQ, "'saq'"},
		{models.PatternOnlyLong, "'long'"},
		{models.PatternMixed, "Mix the question types"},
	}

	for _, tt := range tests {
		req := models.GenerationRequest{
			Topic:      "basic chemistry",
			Difficulty: models.DifficultyEasy,
			Pattern:    tt.pattern,
			Count:      3,
		}
		prompt := BuildQuizPrompt(req)
		if !strings.Contains(prompt, tt.want) {
			t.Errorf("pattern %q: prompt missing %q", tt.pattern, tt.want)
		}
	}
}

func TestBuildGradingPrompt(t *testing.T) {
	quizJSON := `[{"id":"1","question":"q","type":"mcq","marks":1,"userAnswer":"DNS"}]`
	prompt := BuildGradingPrompt(quizJSON)

	required := []string{
		"Grade this quiz submission", "userAnswer", "blank",
		"full marks", "accuracy and completeness", "totalMarks",
		"score", "explanation", quizJSON, "ONLY with valid JSON",
	}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("grading prompt missing keyword %q", keyword)
		}
	}

	// The submitted quiz must come after the rubric so the shape example
	// doesn't get confused with the payload.
	if strings.Index(prompt, "The submitted quiz is:") > strings.Index(prompt, quizJSON) {
		t.Error("quiz payload should follow its marker")
	}
}
