package app

import (
	"context"

	"workgen/domain/chart"
	"workgen/domain/core"
	"workgen/internal"
	"workgen/internal/session"
	"workgen/ports"
)

// EDAService runs the automated exploratory pass over a session's table
type EDAService struct {
	sessions *session.Manager
	engine   ports.EDAEngine
	logger   *internal.Logger
}

// NewEDAService creates an EDA service
func NewEDAService(sessions *session.Manager, engine ports.EDAEngine) *EDAService {
	return &EDAService{
		sessions: sessions,
		engine:   engine,
		logger:   internal.DefaultLogger.Named("EDA"),
	}
}

// Run analyzes the current table. No insight text is produced on this path.
func (s *EDAService) Run(ctx context.Context, id core.SessionID) ([]chart.Figure, error) {
	t, err := currentTable(s.sessions, id)
	if err != nil {
		return nil, err
	}

	figures, err := s.engine.Analyze(ctx, t)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if err := sess.Update(func(st *session.State) error {
		// a re-upload during analysis leaves the new table unanalyzed
		if st.Table == t {
			st.EDARun = true
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("session %s auto-EDA produced %d figures", id, len(figures))
	return figures, nil
}

// Status reports whether auto-EDA has run on the session's current table
func (s *EDAService) Status(ctx context.Context, id core.SessionID) (bool, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return false, err
	}

	var ran bool
	sess.View(func(st *session.State) {
		ran = st.EDARun
	})
	return ran, nil
}
