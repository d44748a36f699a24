package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/quizforge/backend/internal/models"
)

// MockClient returns deterministic canned responses for local
// development and tests. No network, no key required.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

var countPattern = regexp.MustCompile(`exactly (\d+) questions`)

func (m *MockClient) Complete(ctx context.Context, prompt string, apiKey string) (string, error) {
	if strings.HasPrefix(prompt, "Grade this quiz submission") {
		return m.gradeResponse(prompt)
	}

	count := 5
	if match := countPattern.FindStringSubmatch(prompt); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil && n > 0 {
			count = n
		}
	}

	return m.quizResponse(count)
}

func (m *MockClient) quizResponse(count int) (string, error) {
	topics := []string{
		"the water cycle", "basic electricity", "plate tectonics",
		"photosynthesis", "the solar system", "simple machines",
	}

	quiz := make(models.Quiz, count)
	for i := 0; i < count; i++ {
		topic := topics[i%len(topics)]
		q := models.Question{
			ID:         strconv.Itoa(i + 1),
			Difficulty: models.DifficultyMedium,
			Marks:      1,
		}

		switch i % 3 {
		case 0:
			q.Type = models.TypeMCQ
			q.Question = fmt.Sprintf("[Mock] Which statement about %s is accurate?", topic)
			q.Options = []string{
				fmt.Sprintf("[Mock] The accurate statement about %s.", topic),
				"[Mock] A plausible but wrong statement.",
				"[Mock] Another plausible but wrong statement.",
				"[Mock] A clearly wrong statement.",
			}
			q.CorrectAnswer = q.Options[0]
		case 1:
			q.Type = models.TypeSAQ
			q.Question = fmt.Sprintf("[Mock] Briefly describe %s.", topic)
			q.Marks = 2
		case 2:
			q.Type = models.TypeLong
			q.Question = fmt.Sprintf("[Mock] Discuss %s in detail, covering its key mechanisms.", topic)
			q.Marks = 5
		}

		quiz[i] = q
	}

	data, err := json.Marshal(quiz)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// gradeResponse grades deterministically: MCQ by exact match against
// correctAnswer, non-blank free-form answers get half marks, blanks
// score zero.
func (m *MockClient) gradeResponse(prompt string) (string, error) {
	marker := strings.Index(prompt, "The submitted quiz is:")
	if marker < 0 {
		return "", fmt.Errorf("no quiz payload in grading prompt")
	}
	payload := prompt[marker:]
	start := strings.Index(payload, "[")
	end := strings.LastIndex(payload, "]")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no quiz payload in grading prompt")
	}

	var quiz models.Quiz
	if err := json.Unmarshal([]byte(payload[start:end+1]), &quiz); err != nil {
		return "", fmt.Errorf("parse quiz payload: %w", err)
	}

	result := models.GradeResult{Questions: quiz}
	for i := range result.Questions {
		q := &result.Questions[i]
		result.TotalMarks += q.Marks

		var awarded float64
		switch {
		case q.UserAnswer == "":
			q.Explanation = "[Mock] No answer was given, so no marks were awarded."
		case q.Type == models.TypeMCQ && q.UserAnswer == q.CorrectAnswer:
			awarded = q.Marks
			q.Explanation = "[Mock] Correct — this is the right option."
		case q.Type == models.TypeMCQ:
			q.Explanation = fmt.Sprintf("[Mock] Incorrect — the right answer is %q.", q.CorrectAnswer)
		default:
			awarded = q.Marks / 2
			q.Explanation = "[Mock] A reasonable answer covering some of the key points."
		}
		result.Score += awarded
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
