package chart

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"workgen/domain/core"
)

// Kind identifies a chart type
type Kind string

const (
	KindBar   Kind = "bar"
	KindPie   Kind = "pie"
	KindDonut Kind = "donut"

	// Kinds produced only by the auto-EDA engine
	KindHistogram Kind = "histogram"
	KindHeatmap   Kind = "heatmap"
)

// DonutHole is the hole ratio used for donut charts
const DonutHole = 0.4

// ParseKind accepts both short names and the dashboard labels
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bar", "bar chart":
		return KindBar, nil
	case "pie", "pie chart":
		return KindPie, nil
	case "donut", "donut chart", "doughnut":
		return KindDonut, nil
	}
	return "", core.NewInvalidInputError("chart kind", fmt.Sprintf("%q is not one of bar, pie, donut", s))
}

// Request is a user chart request. Bar charts use X and Y; pie and donut
// charts use Column.
type Request struct {
	Kind   Kind   `json:"kind"`
	X      string `json:"x,omitempty"`
	Y      string `json:"y,omitempty"`
	Column string `json:"column,omitempty"`
}

// Validate checks that the fields required by the chart kind are set
func (r Request) Validate() error {
	switch r.Kind {
	case KindBar:
		if r.X == "" || r.Y == "" {
			return core.NewInvalidInputError("bar chart", "requires both x and y fields")
		}
	case KindPie, KindDonut:
		if r.Column == "" {
			return core.NewInvalidInputError(string(r.Kind)+" chart", "requires a categorical column")
		}
	default:
		return core.NewInvalidInputError("chart kind", fmt.Sprintf("%q is not supported", r.Kind))
	}
	return nil
}

// Fields returns the selected fields keyed by role
func (r Request) Fields() map[string]string {
	switch r.Kind {
	case KindBar:
		return map[string]string{"x": r.X, "y": r.Y}
	default:
		return map[string]string{"column": r.Column}
	}
}

// Identity returns the de-duplication key for the request
func (r Request) Identity() Identity {
	return NewIdentity(r.Kind, r.Fields())
}

// Identity is the canonical key of a chart configuration. Two identities are
// equal when kind and role-tagged fields are equal, regardless of map order.
// Field values are quoted so column names containing separators cannot
// collide.
type Identity struct {
	Kind Kind
	key  string
}

// NewIdentity builds an identity from a kind and role->field selection
func NewIdentity(kind Kind, fields map[string]string) Identity {
	roles := make([]string, 0, len(fields))
	for role := range fields {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	var b strings.Builder
	b.WriteString(string(kind))
	for _, role := range roles {
		b.WriteString("|")
		b.WriteString(role)
		b.WriteString("=")
		b.WriteString(strconv.Quote(fields[role]))
	}
	return Identity{Kind: kind, key: b.String()}
}

// Key returns the canonical string form
func (id Identity) Key() string {
	return id.key
}

func (id Identity) String() string {
	return id.key
}

// IdentitySet is the set of chart identities already generated
type IdentitySet map[string]struct{}

// Has reports whether the identity is in the set
func (s IdentitySet) Has(id Identity) bool {
	_, ok := s[id.Key()]
	return ok
}

// Add inserts the identity
func (s IdentitySet) Add(id Identity) {
	s[id.Key()] = struct{}{}
}

// Trace is one data series of a figure, serialized in Plotly's shape
type Trace struct {
	Type   string      `json:"type"`
	Name   string      `json:"name,omitempty"`
	X      []string    `json:"x,omitempty"`
	Y      []float64   `json:"y,omitempty"`
	Labels []string    `json:"labels,omitempty"`
	Values []float64   `json:"values,omitempty"`
	Z      [][]float64 `json:"z,omitempty"`
	Hole   float64     `json:"hole,omitempty"`
}

// Layout holds figure-level presentation hints
type Layout struct {
	Title      string `json:"title"`
	XAxisTitle string `json:"xaxis_title,omitempty"`
	YAxisTitle string `json:"yaxis_title,omitempty"`
	ColorScale string `json:"color_scale,omitempty"`
	ShowLegend bool   `json:"showlegend"`
}

// Figure is a renderable chart description handed to the browser
type Figure struct {
	Kind     Kind    `json:"kind"`
	Identity string  `json:"identity,omitempty"`
	Data     []Trace `json:"data"`
	Layout   Layout  `json:"layout"`
}
