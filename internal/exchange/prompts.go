package exchange

import (
	"fmt"

	"github.com/quizforge/backend/internal/models"
)

var patternInstructions = map[models.Pattern]string{
	models.PatternOnlyMCQ:  "Every question must be of type 'mcq'.",
	models.PatternOnlySAQ:  "Every question must be of type 'saq'.",
	models.PatternOnlyLong: "Every question must be of type 'long'.",
	models.PatternMixed:    "Mix the question types: include 'mcq', 'saq', and 'long' questions.",
}

// BuildQuizPrompt renders the generation instruction. The JSON shape it
// dictates is the wire contract ParseQuizResponse expects back.
func BuildQuizPrompt(req models.GenerationRequest) string {
	return fmt.Sprintf(`Suppose you are a quiz master. Generate a %s level quiz about %s with exactly %d questions.
%s

IMPORTANT: Respond ONLY with valid JSON. Don't send any extra content along with it. Your response must be a JSON array where each element has this exact shape:
{
  "id": "1",
  "question": "...",
  "type": "mcq" | "saq" | "long",
  "difficulty": "easy" | "medium" | "hard",
  "marks": 1,
  "options": ["...", "...", "...", "..."],
  "correctAnswer": "...",
  "userAnswer": "",
  "explanation": ""
}

Points to be noted:
- Each question must have a unique id which is none other than the serial number of the question, as a string, starting at "1".
- options must be provided only for mcq type questions.
- correctAnswer must be provided only for mcq type questions.
- For MCQ: always provide exactly 4 options with one correct answer.
- For SAQ and Long: omit options and correctAnswer entirely.
- marks must be a positive number reflecting the weight of the question.
- userAnswer must be a blank string for every question.
- explanation must be a blank string for every question.
- No explanations outside the JSON — ONLY return the JSON array.
- Don't use any markdown formatting like code blocks or quotes.`,
		req.Difficulty, req.Topic, req.Count, patternInstructions[req.Pattern])
}

// BuildGradingPrompt renders the grading instruction around the
// serialized submitted quiz.
func BuildGradingPrompt(quizJSON string) string {
	return fmt.Sprintf(`Grade this quiz submission. The user took a quiz and provided answers in the "userAnswer" field of each question. If a userAnswer is blank, the user did not answer that question: mark it blank and give 0 marks.

Grading rules:
- MCQ: full marks of that question for a correct answer, 0 for an incorrect one.
- SAQ: 0 up to the marks of that question, based on accuracy and completeness.
- Long answer: 0 up to the marks of that question, based on key points covered and quality.
- A blank userAnswer always scores 0.
- Write a constructive explanation for EVERY question in its "explanation" field, whether the answer was right or wrong. For wrong answers, explain why the answer is incorrect and what the right answer should be.
- totalMarks must be the sum of the marks of all questions.
- score must be the total marks awarded to the user, and must equal the sum of the per-question awards.

Your response must be only a valid JSON object with this exact shape, echoing every question in the same order with the same ids and userAnswer values:
{
  "questions": [ ...graded questions... ],
  "score": 0,
  "totalMarks": 0
}

The submitted quiz is:
%s

IMPORTANT: Respond ONLY with valid JSON. Don't send any extra content along with it. Don't use any markdown formatting like code blocks or quotes.`,
		quizJSON)
}
