package quiz

import (
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Session owns the state of one player's run and applies actions one at a
// time.
type Session struct {
	id     uuid.UUID
	mu     sync.Mutex
	quiz   *Quiz
	state  State
	logger interfaces.Logger
}

// SessionOption customises NewSession.
type SessionOption func(*Session)

// WithSessionID overrides the generated session id.
func WithSessionID(id uuid.UUID) SessionOption {
	return func(s *Session) {
		if id != uuid.Nil {
			s.id = id
		}
	}
}

// WithSessionLogger attaches a logger for session events.
func WithSessionLogger(logger interfaces.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logging.OrNoOp(logger)
	}
}

// NewSession starts a run of q.
func NewSession(q *Quiz, opts ...SessionOption) *Session {
	s := &Session{
		id:     uuid.New(),
		quiz:   q,
		state:  q.Start(),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.WithFields(s.logger, map[string]any{
		"session_id": s.id.String(),
	})
	return s
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Select records option for the current question.
func (s *Session) Select(option int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.state.Select(option)
	fields := map[string]any{
		"question": s.state.Index(),
		"option":   option,
	}
	if !ok {
		logging.WithFields(s.logger, fields).Debug("quiz.session.select_rejected")
		return false
	}
	s.state = next
	logging.WithFields(s.logger, fields).Debug("quiz.session.option_selected")
	return true
}

// Advance moves past the current question.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.state.Advance()
	if !ok {
		logging.WithFields(s.logger, map[string]any{
			"question": s.state.Index(),
			"status":   s.state.Status().String(),
		}).Debug("quiz.session.advance_rejected")
		return false
	}
	s.state = next
	if next.Completed() {
		logging.WithFields(s.logger, map[string]any{
			"score": next.Score(),
			"total": next.Total(),
		}).Info("quiz.session.completed")
	}
	return true
}

// Reset starts the run over.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.quiz.Start()
}

// Result summarises the current state.
func (s *Session) Result() Result {
	return s.State().Result()
}
