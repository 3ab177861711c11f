package charts

import (
	"context"
	"errors"
	"testing"

	"workgen/domain/chart"
	"workgen/domain/core"
	"workgen/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		[]string{"Dept", "Score", "Level"},
		[][]string{
			{"Eng", "10", "A"},
			{"Sales", "25", "A"},
			{"Eng", "12", "B"},
			{"HR", "", ""},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestRenderBar(t *testing.T) {
	fig, err := NewPlotlyRenderer().Render(context.Background(), sampleTable(t), chart.Request{Kind: chart.KindBar, X: "Dept", Y: "Score"})
	require.NoError(t, err)

	assert.Equal(t, chart.KindBar, fig.Kind)
	assert.Equal(t, `bar|x="Dept"|y="Score"`, fig.Identity)
	require.Len(t, fig.Data, 2, "HR has no score and gets no trace")
	assert.Equal(t, "Eng", fig.Data[0].Name)
	assert.Equal(t, []float64{10, 12}, fig.Data[0].Y)
	assert.Equal(t, []string{"Sales"}, fig.Data[1].X)
	assert.Equal(t, "Score by Dept", fig.Layout.Title)
}

func TestRenderBarRequiresNumericY(t *testing.T) {
	_, err := NewPlotlyRenderer().Render(context.Background(), sampleTable(t), chart.Request{Kind: chart.KindBar, X: "Score", Y: "Dept"})
	assert.True(t, errors.Is(err, core.ErrSchema))

	_, err = NewPlotlyRenderer().Render(context.Background(), sampleTable(t), chart.Request{Kind: chart.KindBar, X: "Missing", Y: "Score"})
	assert.True(t, errors.Is(err, core.ErrSchema))
}

func TestRenderPieAndDonut(t *testing.T) {
	r := NewPlotlyRenderer()

	pie, err := r.Render(context.Background(), sampleTable(t), chart.Request{Kind: chart.KindPie, Column: "Dept"})
	require.NoError(t, err)
	require.Len(t, pie.Data, 1)
	assert.Equal(t, []string{"Eng", "Sales", "HR"}, pie.Data[0].Labels)
	assert.Equal(t, []float64{2, 1, 1}, pie.Data[0].Values)
	assert.Zero(t, pie.Data[0].Hole)

	donut, err := r.Render(context.Background(), sampleTable(t), chart.Request{Kind: chart.KindDonut, Column: "Level"})
	require.NoError(t, err)
	assert.Equal(t, chart.DonutHole, donut.Data[0].Hole)
	assert.Equal(t, []string{"A", "B"}, donut.Data[0].Labels)
	assert.Equal(t, `donut|column="Level"`, donut.Identity)
}

func TestRenderPieRejectsNumericColumn(t *testing.T) {
	_, err := NewPlotlyRenderer().Render(context.Background(), sampleTable(t), chart.Request{Kind: chart.KindDonut, Column: "Score"})
	assert.True(t, errors.Is(err, core.ErrSchema))
}
