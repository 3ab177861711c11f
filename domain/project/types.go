package project

import (
	"time"

	"workgen/domain/core"
)

// Default eligibility contract
const (
	DefaultIDField           = "EmpID"
	DefaultSatisfactionField = "JobSatisfaction"
	DefaultMinSatisfaction   = 3.0
)

// Rule decides which records may be sampled into a project
type Rule struct {
	IDField           string  `json:"id_field"`
	SatisfactionField string  `json:"satisfaction_field"`
	MinSatisfaction   float64 `json:"min_satisfaction"`
}

// DefaultRule returns the EmpID / JobSatisfaction >= 3 rule
func DefaultRule() Rule {
	return Rule{
		IDField:           DefaultIDField,
		SatisfactionField: DefaultSatisfactionField,
		MinSatisfaction:   DefaultMinSatisfaction,
	}
}

// Eligible reports whether a satisfaction score qualifies
func (r Rule) Eligible(score float64) bool {
	return score >= r.MinSatisfaction
}

// Project is an immutable named group of employee identifiers
type Project struct {
	ID        core.ProjectID `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Members   []string       `json:"members" db:"-"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// New creates a project with a fresh identifier
func New(name string, members []string) *Project {
	return &Project{
		ID:        core.NewProjectID(),
		Name:      name,
		Members:   members,
		CreatedAt: time.Now().UTC(),
	}
}

// Size returns the member count
func (p *Project) Size() int {
	return len(p.Members)
}
