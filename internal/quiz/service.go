package quiz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/quizforge/backend/internal/exchange"
	"github.com/quizforge/backend/internal/models"
)

const (
	minTopicLength = 6
	defaultCount   = 5
	maxCount       = 50
)

var ErrSessionNotFound = errors.New("session not found")

// ValidationError is a user-input failure caught before any provider
// call; the session is left unchanged.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// CredentialSource supplies the stored provider credentials and the
// currently selected provider.
type CredentialSource interface {
	Settings() (models.ModelSettings, error)
}

// Archiver records graded sessions. Archiving is best-effort: a
// failure must not fail the grade.
type Archiver interface {
	Record(entry models.HistoryEntry) error
}

// Service owns every live session and drives the session lifecycle.
// The mutex guards the session map and all session mutation; gateway
// calls run with the lock released and their results are applied only
// if the session's epoch still matches.
type Service struct {
	mu sync.RWMutex
	// sessions grow for the life of the process; there is no eviction
	// or idle expiry. TODO: sweep sessions idle past a TTL.
	sessions map[string]*Session

	gateway *exchange.Gateway
	creds   CredentialSource
	archive Archiver
}

func NewService(gateway *exchange.Gateway, creds CredentialSource, archive Archiver) *Service {
	return &Service{
		sessions: make(map[string]*Session),
		gateway:  gateway,
		creds:    creds,
		archive:  archive,
	}
}

func (s *Service) Create() models.SessionView {
	sess := newSession(uuid.NewString())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	view := sess.view()
	s.mu.Unlock()

	return view
}

func (s *Service) Get(sessionID string) (models.SessionView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return models.SessionView{}, ErrSessionNotFound
	}
	return sess.view(), nil
}

// StartGeneration validates the request, delegates to the gateway, and
// moves the session empty → generating → ready. Every precondition
// failure is a distinct validation error raised before any provider
// call; on gateway failure the session returns to empty.
func (s *Service) StartGeneration(ctx context.Context, sessionID string, req models.GenerationRequest) (models.SessionView, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return models.SessionView{}, &ValidationError{Message: "please enter a topic for the quiz"}
	}
	if utf8.RuneCountInString(req.Topic) < minTopicLength {
		return models.SessionView{}, &ValidationError{Message: fmt.Sprintf("topic must be at least %d characters", minTopicLength)}
	}
	if req.Pattern == "" {
		return models.SessionView{}, &ValidationError{Message: "please select a question pattern"}
	}
	if !models.ValidPatterns[req.Pattern] {
		return models.SessionView{}, &ValidationError{Message: "invalid question pattern: " + string(req.Pattern)}
	}
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyMedium
	}
	if !models.ValidDifficulties[req.Difficulty] {
		return models.SessionView{}, &ValidationError{Message: "difficulty must be 'easy', 'medium', or 'hard'"}
	}
	if req.Count <= 0 {
		req.Count = defaultCount
	}
	if req.Count > maxCount {
		req.Count = maxCount
	}

	cred, err := s.selectedCredential()
	if err != nil {
		return models.SessionView{}, err
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return models.SessionView{}, ErrSessionNotFound
	}
	if sess.State != models.StateEmpty {
		view := sess.view()
		s.mu.Unlock()
		return view, &ValidationError{Message: "a quiz is already active for this session"}
	}
	epoch := sess.beginGeneration(req.Topic)
	s.mu.Unlock()

	quiz, genErr := s.gateway.Generate(ctx, req, cred)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.epoch != epoch || sess.State != models.StateGenerating {
		log.Printf("session %s: discarding stale generation response (epoch %d)", sess.ID, epoch)
		return sess.view(), nil
	}

	if genErr != nil {
		sess.failGeneration()
		return sess.view(), genErr
	}

	sess.completeGeneration(quiz)
	return sess.view(), nil
}

// RecordAnswer overwrites a question's answer while the session is
// ready. The attempted set only grows; re-answering or clearing a
// question never lowers the completion percentage.
func (s *Service) RecordAnswer(sessionID, questionID, answer string) (models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return models.SessionView{}, ErrSessionNotFound
	}
	if sess.State != models.StateReady {
		return sess.view(), &ValidationError{Message: "answers can only be changed while a quiz is in progress"}
	}

	if err := sess.recordAnswer(questionID, answer); err != nil {
		return sess.view(), err
	}
	return sess.view(), nil
}

// SubmitForGrading delegates the full quiz to the gateway and moves the
// session ready → grading → graded. On gateway failure the session
// returns to ready with every entered answer intact. A reset that lands
// while the call is in flight bumps the epoch, and the late response is
// discarded.
func (s *Service) SubmitForGrading(ctx context.Context, sessionID string) (models.SessionView, error) {
	cred, err := s.selectedCredential()
	if err != nil {
		return models.SessionView{}, err
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return models.SessionView{}, ErrSessionNotFound
	}
	if sess.State != models.StateReady {
		view := sess.view()
		s.mu.Unlock()
		return view, &ValidationError{Message: "no quiz is ready for submission"}
	}
	if len(sess.attempted) != len(sess.Questions) {
		view := sess.view()
		s.mu.Unlock()
		return view, &ValidationError{Message: "all questions must be attempted before submission"}
	}
	submitted := append(models.Quiz(nil), sess.Questions...)
	epoch := sess.beginGrading()
	s.mu.Unlock()

	result, gradeErr := s.gateway.Grade(ctx, submitted, cred)

	s.mu.Lock()
	if sess.epoch != epoch || sess.State != models.StateGrading {
		log.Printf("session %s: discarding stale grading response (epoch %d)", sess.ID, epoch)
		view := sess.view()
		s.mu.Unlock()
		return view, nil
	}

	if gradeErr != nil {
		sess.failGrading()
		view := sess.view()
		s.mu.Unlock()
		return view, gradeErr
	}

	sess.completeGrading(result)
	view := sess.view()
	entry := models.HistoryEntry{
		SessionID:     sess.ID,
		Topic:         sess.Topic,
		QuestionCount: len(sess.Questions),
		Score:         sess.Score,
		TotalMarks:    sess.TotalMarks,
		GradedAt:      sess.UpdatedAt,
	}
	s.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.Record(entry); err != nil {
			log.Printf("session %s: failed to archive graded result: %v", sessionID, err)
		}
	}

	return view, nil
}

// Reset returns the session to empty. It is rejected while a generation
// call is outstanding; a reset during grading is allowed, and the epoch
// bump makes the in-flight response a no-op.
func (s *Service) Reset(sessionID string) (models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return models.SessionView{}, ErrSessionNotFound
	}
	if sess.State == models.StateGenerating {
		return sess.view(), &ValidationError{Message: "cannot reset while a quiz is being generated"}
	}

	sess.reset()
	return sess.view(), nil
}

func (s *Service) selectedCredential() (models.ModelCredential, error) {
	settings, err := s.creds.Settings()
	if err != nil {
		return models.ModelCredential{}, fmt.Errorf("load model settings: %w", err)
	}
	if settings.Selected == "" {
		return models.ModelCredential{}, &ValidationError{Message: "please select an AI model first"}
	}
	for _, c := range settings.Credentials {
		if c.Provider == settings.Selected {
			return c, nil
		}
	}
	return models.ModelCredential{}, &ValidationError{Message: "no API key configured for model " + string(settings.Selected)}
}
