package models

type QuestionType string

const (
	TypeMCQ  QuestionType = "mcq"
	TypeSAQ  QuestionType = "saq"
	TypeLong QuestionType = "long"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// Pattern selects which question types a generated quiz contains.
type Pattern string

const (
	PatternOnlyMCQ  Pattern = "only mcq"
	PatternOnlySAQ  Pattern = "only saq"
	PatternOnlyLong Pattern = "only long"
	PatternMixed    Pattern = "mixed"
)

var ValidPatterns = map[Pattern]bool{
	PatternOnlyMCQ:  true,
	PatternOnlySAQ:  true,
	PatternOnlyLong: true,
	PatternMixed:    true,
}

// Question is one quiz item. The JSON tags are the wire contract shared
// with the model prompts; they must not change independently of the
// prompt text.
type Question struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Difficulty    Difficulty   `json:"difficulty"`
	Marks         float64      `json:"marks"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
	UserAnswer    string       `json:"userAnswer"`
	Explanation   string       `json:"explanation"`
}

// Quiz is an ordered question set. Insertion order is display order and
// grading order; length is fixed once generated.
type Quiz []Question

// GradeResult is the graded echo of a submitted quiz. TotalMarks is the
// sum of per-question marks and Score the sum of awarded marks, both
// reported by the model rather than recomputed here.
type GradeResult struct {
	Questions  []Question `json:"questions"`
	Score      float64    `json:"score"`
	TotalMarks float64    `json:"totalMarks"`
}

type SessionState string

const (
	StateEmpty      SessionState = "empty"
	StateGenerating SessionState = "generating"
	StateReady      SessionState = "ready"
	StateGrading    SessionState = "grading"
	StateGraded     SessionState = "graded"
)

// GenerationRequest carries the user-supplied quiz parameters.
type GenerationRequest struct {
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Pattern    Pattern    `json:"pattern"`
	Count      int        `json:"count"`
}
