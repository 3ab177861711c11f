package app

import (
	"context"
	"fmt"
	"strings"

	"workgen/domain/core"
	"workgen/domain/project"
	"workgen/domain/table"
	"workgen/internal"
	"workgen/internal/session"
	"workgen/ports"
)

// ProjectService allocates eligible employees into named projects
type ProjectService struct {
	sessions *session.Manager
	rng      ports.RNGPort
	archive  ports.SessionArchive
	rule     project.Rule
	logger   *internal.Logger
}

// NewProjectService creates a project service using project.DefaultRule.
// archive may be nil.
func NewProjectService(sessions *session.Manager, rng ports.RNGPort, archive ports.SessionArchive) *ProjectService {
	return &ProjectService{
		sessions: sessions,
		rng:      rng,
		archive:  archive,
		rule:     project.DefaultRule(),
		logger:   internal.DefaultLogger.Named("Projects"),
	}
}

// WithRule overrides the eligibility rule
func (s *ProjectService) WithRule(rule project.Rule) *ProjectService {
	s.rule = rule
	return s
}

// CreateProject samples size distinct eligible employees into a new project.
// Checks run in order and the first failure wins: no table, missing columns,
// duplicate name, too few eligible employees. On any error the session's
// projects are unchanged.
func (s *ProjectService) CreateProject(ctx context.Context, id core.SessionID, name string, size int) (*project.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, core.NewInvalidInputError("project name", "must not be blank")
	}
	if size < 1 {
		return nil, core.NewInvalidInputError("project size", fmt.Sprintf("must be at least 1, got %d", size))
	}

	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	var created *project.Project
	err = sess.Update(func(st *session.State) error {
		if st.Table == nil {
			return core.ErrNoData
		}
		if !st.Table.HasColumns(s.rule.IDField, s.rule.SatisfactionField) {
			return core.NewMissingColumnsError(s.rule.IDField, s.rule.SatisfactionField)
		}
		if st.HasProject(name) {
			return core.NewDuplicateProjectError(name)
		}

		pool := s.eligible(st.Table)
		if len(pool) < size {
			return core.NewInsufficientPoolError(len(pool), size)
		}

		rng, err := s.rng.Stream(ctx, id.String(), "project", name)
		if err != nil {
			return fmt.Errorf("failed to create sampling stream: %w", err)
		}
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		p := project.New(name, pool[:size:size])
		if s.archive != nil {
			if err := s.archive.SaveProject(ctx, id, p); err != nil {
				return fmt.Errorf("failed to archive project: %w", err)
			}
		}

		st.AddProject(p)
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session %s created project %q with %d members", id, created.Name, created.Size())
	return created, nil
}

// ListProjects returns the session's projects in creation order
func (s *ProjectService) ListProjects(ctx context.Context, id core.SessionID) ([]*project.Project, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	var projects []*project.Project
	sess.View(func(st *session.State) {
		projects = st.Projects()
	})
	return projects, nil
}

// eligible returns the IDs of records whose satisfaction meets the rule.
// Missing or non-numeric scores are not eligible.
func (s *ProjectService) eligible(t *table.Table) []string {
	ids, _ := t.Column(s.rule.IDField)
	scores, _ := t.Column(s.rule.SatisfactionField)

	pool := make([]string, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		score, ok := scores.Float(i)
		if ok && s.rule.Eligible(score) {
			pool = append(pool, ids.Values[i])
		}
	}
	return pool
}
