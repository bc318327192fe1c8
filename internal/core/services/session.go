package services

import (
	"sync"

	"github.com/custodia-labs/sitechat/internal/core/domain"
)

// MaxSessionMessages bounds the stored history per session.
// Older messages are dropped once the bound is exceeded.
const MaxSessionMessages = 20

// SessionStore keeps per-session conversation state in memory.
// Sessions are created lazily on first use and live for the process
// lifetime. All methods are safe for concurrent use; the store lock
// is never held across network calls.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*domain.Session),
	}
}

// Snapshot returns a copy of the session's history, oldest first.
// An unknown id yields an empty history.
func (s *SessionStore) Snapshot(id string) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	history := make([]domain.ChatMessage, len(sess.History))
	copy(history, sess.History)
	return history
}

// AppendAndTrim appends the messages to the session's history, drops
// everything but the newest MaxSessionMessages, and adds tokensDelta
// to the session's cumulative usage. The session is created if absent.
// It returns the new cumulative token count.
func (s *SessionStore) AppendAndTrim(id string, msgs []domain.ChatMessage, tokensDelta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &domain.Session{ID: id}
		s.sessions[id] = sess
	}

	sess.History = append(sess.History, msgs...)
	if len(sess.History) > MaxSessionMessages {
		sess.History = sess.History[len(sess.History)-MaxSessionMessages:]
	}
	sess.TokensUsed += tokensDelta
	return sess.TokensUsed
}

// TokensUsed returns the session's cumulative token usage.
// An unknown id yields zero.
func (s *SessionStore) TokensUsed(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return 0
	}
	return sess.TokensUsed
}
