package storage

import (
	"sync"
	"time"

	"github.com/aceyai/acey-backend/internal/models"
)

// SessionStore keeps all live interview sessions in memory. It also tracks
// the id of the most recently created session so clients that predate
// per-session routing keep working, and a pending job analysis that the
// next session bootstrap consumes.
//
// Readers get snapshot copies, never the stored pointer: all mutation goes
// through the store's methods under the lock, so handlers can read a
// returned session without racing a concurrent AppendFrameNote or
// SetRateLimited.
type SessionStore struct {
	sessions map[string]*models.InterviewSession
	latestID string
	pending  *models.JobAnalysis
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.InterviewSession),
	}
}

// cloneSession copies the session and its frame-note slice. Custom and
// JobAnalysis are never mutated after bootstrap, so those pointers are
// shared.
func cloneSession(session *models.InterviewSession) *models.InterviewSession {
	copied := *session
	if session.FrameNotes != nil {
		copied.FrameNotes = append([]string(nil), session.FrameNotes...)
	}
	return &copied
}

func (s *SessionStore) Get(sessionID string) (*models.InterviewSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}
	return cloneSession(session), true
}

func (s *SessionStore) Set(sessionID string, session *models.InterviewSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = cloneSession(session)
	s.latestID = sessionID
}

// Latest returns the most recently created session, for requests that do
// not name one.
func (s *SessionStore) Latest() (*models.InterviewSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[s.latestID]
	if !exists {
		return nil, false
	}
	return cloneSession(session), true
}

// Resolve returns the session with the given id, or the latest session when
// the id is empty.
func (s *SessionStore) Resolve(sessionID string) (*models.InterviewSession, bool) {
	if sessionID == "" {
		return s.Latest()
	}
	return s.Get(sessionID)
}

func (s *SessionStore) GetAll() map[string]*models.InterviewSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.InterviewSession, len(s.sessions))
	for k, v := range s.sessions {
		result[k] = cloneSession(v)
	}
	return result
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// AppendFrameNote records one body-language note for the session.
func (s *SessionStore) AppendFrameNote(sessionID, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, exists := s.sessions[sessionID]; exists {
		session.FrameNotes = append(session.FrameNotes, note)
	}
}

// ClearFrameNotes drops all accumulated notes for the session.
func (s *SessionStore) ClearFrameNotes(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, exists := s.sessions[sessionID]; exists {
		session.FrameNotes = nil
	}
}

// SetRateLimited flips the session's quota circuit breaker.
func (s *SessionStore) SetRateLimited(sessionID string, limited bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, exists := s.sessions[sessionID]; exists {
		session.RateLimited = limited
	}
}

// MarkStarted stamps the call start time once.
func (s *SessionStore) MarkStarted(sessionID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, exists := s.sessions[sessionID]; exists && session.StartedAt.IsZero() {
		session.StartedAt = at
	}
}

// SetPendingJobAnalysis stores the latest job analysis for the next
// session bootstrap to pick up.
func (s *SessionStore) SetPendingJobAnalysis(analysis *models.JobAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = analysis
}

// TakePendingJobAnalysis returns and clears the stored job analysis.
func (s *SessionStore) TakePendingJobAnalysis() *models.JobAnalysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	analysis := s.pending
	s.pending = nil
	return analysis
}

// PendingJobAnalysis returns the stored job analysis without consuming it.
func (s *SessionStore) PendingJobAnalysis() *models.JobAnalysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}
