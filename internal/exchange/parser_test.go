package exchange

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/quizforge/backend/internal/models"
)

func validQuizJSON(t *testing.T, count int) string {
	t.Helper()

	quiz := make(models.Quiz, count)
	for i := 0; i < count; i++ {
		quiz[i] = models.Question{
			ID:            strconv.Itoa(i + 1),
			Question:      "Which protocol translates domain names into IP addresses?",
			Type:          models.TypeMCQ,
			Difficulty:    models.DifficultyEasy,
			Marks:         1,
			Options:       []string{"HTTP", "FTP", "DNS", "SMTP"},
			CorrectAnswer: "DNS",
		}
	}

	data, err := json.Marshal(quiz)
	if err != nil {
		t.Fatalf("marshal quiz: %v", err)
	}
	return string(data)
}

func TestParseQuizResponse_PlainJSON(t *testing.T) {
	quiz, err := ParseQuizResponse(validQuizJSON(t, 3))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(quiz) != 3 {
		t.Errorf("expected 3 questions, got %d", len(quiz))
	}
	for i, q := range quiz {
		if q.ID != strconv.Itoa(i+1) {
			t.Errorf("question %d: id %q, want %q", i+1, q.ID, strconv.Itoa(i+1))
		}
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
	}
}

func TestParseQuizResponse_MarkdownFences(t *testing.T) {
	inner := validQuizJSON(t, 2)

	direct, err := ParseQuizResponse(inner)
	if err != nil {
		t.Fatalf("direct parse failed: %v", err)
	}

	fenced, err := ParseQuizResponse("```json\n" + inner + "\n```")
	if err != nil {
		t.Fatalf("fenced parse failed: %v", err)
	}

	if !reflect.DeepEqual(direct, fenced) {
		t.Error("fenced parse should yield the same quiz as direct parse")
	}
}

func TestParseQuizResponse_FenceWithoutLanguageTag(t *testing.T) {
	quiz, err := ParseQuizResponse("```\n" + validQuizJSON(t, 1) + "\n```")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(quiz) != 1 {
		t.Errorf("expected 1 question, got %d", len(quiz))
	}
}

func TestParseQuizResponse_NotAnArray(t *testing.T) {
	_, err := ParseQuizResponse(`{"id": "1"}`)
	if err == nil {
		t.Fatal("expected error for non-array response")
	}

	var respErr *InvalidResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected InvalidResponseError, got %T", err)
	}
}

func TestParseQuizResponse_NullValue(t *testing.T) {
	for _, raw := range []string{"null", "```json\nnull\n```"} {
		_, err := ParseQuizResponse(raw)
		if err == nil {
			t.Fatalf("expected error for %q", raw)
		}

		var respErr *InvalidResponseError
		if !errors.As(err, &respErr) {
			t.Fatalf("expected InvalidResponseError for %q, got %T", raw, err)
		}
	}
}

func TestParseQuizResponse_Garbage(t *testing.T) {
	_, err := ParseQuizResponse("Sure! Here is your quiz: first question...")
	if err == nil {
		t.Fatal("expected error for non-JSON response")
	}

	var respErr *InvalidResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected InvalidResponseError, got %T", err)
	}
}

// Malformed entries pass through: a question missing its options should
// parse, not fail the whole quiz.
func TestParseQuizResponse_PermissiveShape(t *testing.T) {
	raw := `[{"id":"1","question":"What does CPU stand for?","type":"mcq","difficulty":"easy","marks":1,"userAnswer":"","explanation":""}]`

	quiz, err := ParseQuizResponse(raw)
	if err != nil {
		t.Fatalf("expected no error for missing options, got: %v", err)
	}
	if len(quiz) != 1 {
		t.Fatalf("expected 1 question, got %d", len(quiz))
	}
	if quiz[0].Options != nil {
		t.Errorf("expected nil options, got %v", quiz[0].Options)
	}
}

func TestParseGradeResponse_PlainJSON(t *testing.T) {
	raw := `{
		"questions": [
			{"id":"1","question":"q","type":"saq","difficulty":"medium","marks":2,"userAnswer":"an answer","explanation":"Partial credit."}
		],
		"score": 1.5,
		"totalMarks": 2
	}`

	result, err := ParseGradeResponse(raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Score != 1.5 {
		t.Errorf("score = %v, want 1.5", result.Score)
	}
	if result.TotalMarks != 2 {
		t.Errorf("totalMarks = %v, want 2", result.TotalMarks)
	}
	if len(result.Questions) != 1 || result.Questions[0].Explanation == "" {
		t.Error("expected one graded question with an explanation")
	}
}

func TestParseGradeResponse_MarkdownFences(t *testing.T) {
	raw := "```json\n" + `{"questions":[],"score":0,"totalMarks":0}` + "\n```"

	result, err := ParseGradeResponse(raw)
	if err != nil {
		t.Fatalf("expected no error with markdown fences, got: %v", err)
	}
	if result.Score != 0 {
		t.Errorf("score = %v, want 0", result.Score)
	}
}

func TestParseGradeResponse_Garbage(t *testing.T) {
	_, err := ParseGradeResponse("The student did quite well overall.")
	if err == nil {
		t.Fatal("expected error for non-JSON response")
	}

	var respErr *InvalidResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected InvalidResponseError, got %T", err)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fence", `[1, 2]`, `[1, 2]`},
		{"json fence", "```json\n[1, 2]\n```", `[1, 2]`},
		{"bare fence", "```\n[1, 2]\n```", `[1, 2]`},
		{"surrounding whitespace", "  \n```json\n[1, 2]\n```\n  ", `[1, 2]`},
		{"unclosed fence", "```json\n[1, 2]", `[1, 2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.input); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
