package charts

import (
	"context"
	"fmt"

	"workgen/domain/chart"
	"workgen/domain/core"
	"workgen/domain/table"
)

// Bar charts use a continuous scale when colored by a numeric axis
const barColorScale = "Plasma"

// PlotlyRenderer builds Plotly-shaped figure descriptions
type PlotlyRenderer struct{}

// NewPlotlyRenderer creates a renderer
func NewPlotlyRenderer() *PlotlyRenderer {
	return &PlotlyRenderer{}
}

// Render implements ports.ChartRenderer
func (r *PlotlyRenderer) Render(ctx context.Context, t *table.Table, req chart.Request) (*chart.Figure, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		fig *chart.Figure
		err error
	)
	switch req.Kind {
	case chart.KindBar:
		fig, err = r.bar(t, req.X, req.Y)
	case chart.KindPie:
		fig, err = r.pie(t, req.Column, 0)
	case chart.KindDonut:
		fig, err = r.pie(t, req.Column, chart.DonutHole)
	}
	if err != nil {
		return nil, err
	}

	fig.Kind = req.Kind
	fig.Identity = req.Identity().Key()
	return fig, nil
}

// bar draws one trace per x category so each category gets its own color
func (r *PlotlyRenderer) bar(t *table.Table, x, y string) (*chart.Figure, error) {
	xCol, ok := t.Column(x)
	if !ok {
		return nil, core.NewSchemaError(fmt.Sprintf("column %q not found", x))
	}
	yCol, ok := t.Column(y)
	if !ok {
		return nil, core.NewSchemaError(fmt.Sprintf("column %q not found", y))
	}
	if !yCol.IsNumeric() {
		return nil, core.NewSchemaError(fmt.Sprintf("column %q is not numeric", y))
	}

	order := make([]string, 0)
	traces := make(map[string]*chart.Trace)
	for i := 0; i < t.NumRows(); i++ {
		v, ok := yCol.Float(i)
		if !ok {
			continue
		}
		category := xCol.Values[i]
		tr, exists := traces[category]
		if !exists {
			tr = &chart.Trace{Type: "bar", Name: category}
			traces[category] = tr
			order = append(order, category)
		}
		tr.X = append(tr.X, category)
		tr.Y = append(tr.Y, v)
	}

	fig := &chart.Figure{
		Data: make([]chart.Trace, 0, len(order)),
		Layout: chart.Layout{
			Title:      fmt.Sprintf("%s by %s", y, x),
			XAxisTitle: x,
			YAxisTitle: y,
			ShowLegend: true,
		},
	}
	if xCol.IsNumeric() {
		fig.Layout.ColorScale = barColorScale
	}
	for _, category := range order {
		fig.Data = append(fig.Data, *traces[category])
	}
	return fig, nil
}

// pie counts non-missing values of a non-numeric column in first-seen order
func (r *PlotlyRenderer) pie(t *table.Table, column string, hole float64) (*chart.Figure, error) {
	col, ok := t.Column(column)
	if !ok {
		return nil, core.NewSchemaError(fmt.Sprintf("column %q not found", column))
	}
	if col.IsNumeric() {
		return nil, core.NewSchemaError(fmt.Sprintf("column %q is numeric, pie charts need a categorical column", column))
	}

	labels, counts := col.ValueCounts()
	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
	}

	return &chart.Figure{
		Data: []chart.Trace{{
			Type:   "pie",
			Labels: labels,
			Values: values,
			Hole:   hole,
		}},
		Layout: chart.Layout{
			Title:      fmt.Sprintf("Distribution of %s", column),
			ShowLegend: true,
		},
	}, nil
}
