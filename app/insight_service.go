package app

import (
	"context"
	"encoding/json"
	"fmt"

	"workgen/domain/chart"
	"workgen/domain/core"
	"workgen/domain/insight"
	"workgen/domain/table"
	"workgen/internal"
	"workgen/internal/session"
	"workgen/ports"
)

const (
	barInsightFormat = "It appears that high values in %s are associated with %s variations. " +
		"Some notable patterns are that the highest value in %s corresponds to %s in %s. " +
		"This might indicate a trend worth further analysis."

	pieInsightFormat = "It appears that the highest frequency in %s is for '%s', with %d occurrences. " +
		"This may highlight a dominant category that could warrant further focus."
)

// InsightService renders charts and writes one insight per new chart
type InsightService struct {
	sessions *session.Manager
	renderer ports.ChartRenderer
	archive  ports.SessionArchive
	logger   *internal.Logger
}

// ChartResult is the outcome of a chart request. Skipped is set when the
// same chart was already generated in the session.
type ChartResult struct {
	Identity string              `json:"identity"`
	Skipped  bool                `json:"skipped"`
	Figure   *chart.Figure       `json:"figure,omitempty"`
	Insight  *insight.ReportLine `json:"insight,omitempty"`
}

// ChartOptions lists the columns each chart control may offer
type ChartOptions struct {
	BarX []string `json:"bar_x"`
	BarY []string `json:"bar_y"`
	Pie  []string `json:"pie"`
}

// NewInsightService creates an insight service. archive may be nil.
func NewInsightService(sessions *session.Manager, renderer ports.ChartRenderer, archive ports.SessionArchive) *InsightService {
	return &InsightService{
		sessions: sessions,
		renderer: renderer,
		archive:  archive,
		logger:   internal.DefaultLogger.Named("Insights"),
	}
}

// BarInsight names the x category at the first row holding the maximum of y
func (s *InsightService) BarInsight(t *table.Table, x, y string) (string, error) {
	xCol, ok := t.Column(x)
	if !ok {
		return "", core.NewSchemaError(fmt.Sprintf("column %q not found", x))
	}
	yCol, ok := t.Column(y)
	if !ok {
		return "", core.NewSchemaError(fmt.Sprintf("column %q not found", y))
	}
	if !yCol.IsNumeric() {
		return "", core.NewSchemaError(fmt.Sprintf("column %q is not numeric", y))
	}

	best := -1
	var top float64
	for i := 0; i < yCol.Len(); i++ {
		v, ok := yCol.Float(i)
		if !ok {
			continue
		}
		if best < 0 || v > top {
			best, top = i, v
		}
	}
	if best < 0 {
		return "", core.NewEmptyColumnError(y)
	}

	category := xCol.Values[best]
	if table.IsMissing(category) {
		category = "nan"
	}
	return fmt.Sprintf(barInsightFormat, y, x, y, category, x), nil
}

// PieInsight names the most frequent value of a non-numeric column; ties go
// to the value seen first
func (s *InsightService) PieInsight(t *table.Table, column string) (string, error) {
	col, ok := t.Column(column)
	if !ok {
		return "", core.NewSchemaError(fmt.Sprintf("column %q not found", column))
	}
	if col.IsNumeric() {
		return "", core.NewSchemaError(fmt.Sprintf("column %q is numeric, pie charts need a categorical column", column))
	}

	value, count, ok := col.Mode()
	if !ok {
		return "", core.NewEmptyColumnError(column)
	}
	return fmt.Sprintf(pieInsightFormat, column, value, count), nil
}

func (s *InsightService) insightFor(t *table.Table, req chart.Request) (string, error) {
	if req.Kind == chart.KindBar {
		return s.BarInsight(t, req.X, req.Y)
	}
	return s.PieInsight(t, req.Column)
}

// GenerateChart renders a chart and appends its insight to the report.
// A chart already generated in the session is skipped without changes.
// The identity, report line and dashboard entry are committed together.
func (s *InsightService) GenerateChart(ctx context.Context, id core.SessionID, req chart.Request) (*ChartResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	identity := req.Identity()
	result := &ChartResult{Identity: identity.Key()}

	err = sess.Update(func(st *session.State) error {
		if st.Table == nil {
			return core.ErrNoData
		}
		if st.Charts.Has(identity) {
			result.Skipped = true
			return nil
		}

		fig, err := s.renderer.Render(ctx, st.Table, req)
		if err != nil {
			return err
		}
		if _, err := json.Marshal(fig); err != nil {
			return core.NewSchemaError(fmt.Sprintf("chart data cannot be encoded: %v", err))
		}
		text, err := s.insightFor(st.Table, req)
		if err != nil {
			return err
		}

		line := st.Report.Next(identity.Key(), text)
		if s.archive != nil {
			if err := s.archive.SaveReportLine(ctx, id, line); err != nil {
				return fmt.Errorf("failed to archive insight: %w", err)
			}
		}

		st.Charts.Add(identity)
		st.Report.Commit(line)
		st.Dashboard = append(st.Dashboard, insight.DashboardEntry{Figure: fig, Insight: line})

		result.Figure = fig
		result.Insight = &line
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Skipped {
		s.logger.Debug("session %s skipped duplicate chart %s", id, identity)
	} else {
		s.logger.Info("session %s generated chart %s", id, identity)
	}
	return result, nil
}

// Dashboard returns the generated charts paired with their insights
func (s *InsightService) Dashboard(ctx context.Context, id core.SessionID) ([]insight.DashboardEntry, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	var entries []insight.DashboardEntry
	sess.View(func(st *session.State) {
		entries = make([]insight.DashboardEntry, len(st.Dashboard))
		copy(entries, st.Dashboard)
	})
	return entries, nil
}

// ChartOptions returns the columns usable for each chart control: any column
// on the bar x axis, numeric columns on the bar y axis and non-numeric
// columns for pie and donut charts
func (s *InsightService) ChartOptions(ctx context.Context, id core.SessionID) (*ChartOptions, error) {
	t, err := currentTable(s.sessions, id)
	if err != nil {
		return nil, err
	}

	opts := &ChartOptions{BarX: t.ColumnNames(), BarY: []string{}, Pie: []string{}}
	for _, col := range t.Columns() {
		if col.IsNumeric() {
			opts.BarY = append(opts.BarY, col.Name)
		} else {
			opts.Pie = append(opts.Pie, col.Name)
		}
	}
	return opts, nil
}
