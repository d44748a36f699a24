package quiz

import (
	"time"

	"github.com/quizforge/backend/internal/models"
)

// Session is one end-to-end quiz attempt: generation through optional
// grading through reset. All mutation happens through Service methods
// under the service lock; Session itself performs no I/O.
type Session struct {
	ID         string
	State      models.SessionState
	Questions  models.Quiz
	Topic      string
	Score      float64
	TotalMarks float64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// attempted is monotonic: a question stays attempted even if the
	// user later clears the field back to empty.
	attempted map[string]struct{}

	// epoch is bumped by reset and by each new generation request so a
	// gateway response that lands after a reset can be discarded.
	epoch uint64
}

func newSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		State:     models.StateEmpty,
		attempted: make(map[string]struct{}),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) beginGeneration(topic string) uint64 {
	s.State = models.StateGenerating
	s.Topic = topic
	s.epoch++
	s.touch()
	return s.epoch
}

func (s *Session) completeGeneration(quiz models.Quiz) {
	s.Questions = quiz
	s.State = models.StateReady
	s.touch()
}

func (s *Session) failGeneration() {
	s.Questions = nil
	s.Topic = ""
	s.State = models.StateEmpty
	s.touch()
}

func (s *Session) recordAnswer(questionID, answer string) error {
	found := false
	for i := range s.Questions {
		if s.Questions[i].ID == questionID {
			s.Questions[i].UserAnswer = answer
			found = true
			break
		}
	}
	if !found {
		return &ValidationError{Message: "unknown question id: " + questionID}
	}

	s.attempted[questionID] = struct{}{}
	s.touch()
	return nil
}

func (s *Session) beginGrading() uint64 {
	s.State = models.StateGrading
	s.touch()
	return s.epoch
}

func (s *Session) completeGrading(result *models.GradeResult) {
	s.Questions = result.Questions
	s.Score = result.Score
	s.TotalMarks = result.TotalMarks
	for _, q := range s.Questions {
		s.attempted[q.ID] = struct{}{}
	}
	s.State = models.StateGraded
	s.touch()
}

func (s *Session) failGrading() {
	// Answers already entered are preserved untouched.
	s.State = models.StateReady
	s.touch()
}

func (s *Session) reset() {
	s.Questions = nil
	s.Topic = ""
	s.Score = 0
	s.TotalMarks = 0
	s.attempted = make(map[string]struct{})
	s.State = models.StateEmpty
	s.epoch++
	s.touch()
}

// percentage is the completion ratio while answering; a graded session
// always reports 100 because grading marks every question attempted.
func (s *Session) percentage() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	p := float64(len(s.attempted)) / float64(len(s.Questions)) * 100
	if p > 100 {
		p = 100
	}
	return p
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

func (s *Session) view() models.SessionView {
	questions := append(models.Quiz(nil), s.Questions...)
	for i := range questions {
		questions[i].Options = append([]string(nil), questions[i].Options...)
	}

	return models.SessionView{
		ID:         s.ID,
		State:      s.State,
		Questions:  questions,
		Attempted:  len(s.attempted),
		Percentage: s.percentage(),
		Score:      s.Score,
		TotalMarks: s.TotalMarks,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
