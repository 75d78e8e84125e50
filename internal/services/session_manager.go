package services

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/formflow/forms-service/internal/models"
)

// SessionManager keeps the live wizard collectors, one per respondent
// session. Sessions are in-memory only; a restart drops in-progress wizards
// but never recorded submissions.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Collector
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Collector)}
}

// Create starts a new collector over the form and returns its session id.
func (m *SessionManager) Create(form *models.Form, recorder SubmissionRecorder, logger *slog.Logger) (string, *Collector) {
	id := uuid.NewString()
	collector := NewCollector(form, recorder, logger.With("session_id", id))

	m.mu.Lock()
	m.sessions[id] = collector
	m.mu.Unlock()

	return id, collector
}

// Get returns the collector for a session id.
func (m *SessionManager) Get(id string) (*Collector, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	collector, ok := m.sessions[id]
	return collector, ok
}

// Delete drops a session. Unknown ids are a no-op.
func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len reports the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
