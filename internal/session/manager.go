package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"workgen/domain/core"
	"workgen/internal"
	"workgen/ports"
)

// Manager owns every live session
type Manager struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*Session
	archive  ports.SessionArchive
	logger   *internal.Logger
	now      func() time.Time
}

// NewManager creates a session manager. archive may be nil.
func NewManager(archive ports.SessionArchive) *Manager {
	return &Manager{
		sessions: make(map[core.SessionID]*Session),
		archive:  archive,
		logger:   internal.DefaultLogger.Named("Sessions"),
		now:      time.Now,
	}
}

// Create starts a new empty session
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	s := newSession(core.NewSessionID(), m.now().UTC())

	if m.archive != nil {
		if err := m.archive.SaveSession(ctx, s.ID, s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to archive session: %w", err)
		}
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("created session %s", s.ID)
	return s, nil
}

// Get looks up a live session
func (m *Manager) Get(id core.SessionID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, core.NewSessionNotFoundError(id)
	}
	return s, nil
}

// Delete purges a session's archive and then ends it. When the purge fails
// the session stays live so the delete can be retried.
func (m *Manager) Delete(ctx context.Context, id core.SessionID) error {
	if _, err := m.Get(id); err != nil {
		return err
	}

	if m.archive != nil {
		if err := m.archive.DeleteSession(ctx, id); err != nil {
			return fmt.Errorf("failed to purge archived session: %w", err)
		}
	}

	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return core.NewSessionNotFoundError(id)
	}

	m.logger.Debug("deleted session %s", id)
	return nil
}

// Sweep drops sessions idle for longer than idle and returns their IDs.
// Archived data is kept.
func (m *Manager) Sweep(idle time.Duration) []core.SessionID {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	var expired []core.SessionID
	for id, s := range m.sessions {
		if s.idleSince(now) > idle {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}

	if len(expired) > 0 {
		m.logger.Info("expired %d idle sessions", len(expired))
	}
	return expired
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
