package session

import (
	"sync"
	"time"

	"workgen/domain/chart"
	"workgen/domain/core"
	"workgen/domain/insight"
	"workgen/domain/project"
	"workgen/domain/table"
)

// State is everything a session owns. It is only reachable through
// Session.Update and Session.View, which hold the session lock.
type State struct {
	Table     *table.Table
	Charts    chart.IdentitySet
	Report    insight.Report
	Dashboard []insight.DashboardEntry
	EDARun    bool

	projects     []*project.Project
	projectNames map[string]struct{}
}

func newState() *State {
	return &State{
		Charts:       make(chart.IdentitySet),
		projectNames: make(map[string]struct{}),
	}
}

// HasProject reports whether a project name is taken
func (s *State) HasProject(name string) bool {
	_, ok := s.projectNames[name]
	return ok
}

// AddProject registers a project. The registry is insert-only.
func (s *State) AddProject(p *project.Project) {
	s.projects = append(s.projects, p)
	s.projectNames[p.Name] = struct{}{}
}

// Projects returns projects in creation order
func (s *State) Projects() []*project.Project {
	out := make([]*project.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Session is one user's workspace
type Session struct {
	ID        core.SessionID
	CreatedAt time.Time

	mu         sync.Mutex
	state      *State
	lastActive time.Time
}

func newSession(id core.SessionID, now time.Time) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  now,
		state:      newState(),
		lastActive: now,
	}
}

// Update runs fn with exclusive access to the session state. fn must leave
// the state unchanged when it returns an error.
func (s *Session) Update(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	return fn(s.state)
}

// View runs fn with the session lock held. fn must not modify the state.
func (s *Session) View(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	fn(s.state)
}

// LastActive returns when the session was last used
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(s.LastActive())
}
