package eda

import (
	"context"
	"fmt"
	"testing"

	"workgen/domain/chart"
	"workgen/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		[]string{"Age", "Salary", "Dept", "Notes"},
		[][]string{
			{"25", "50000", "Eng", "a"},
			{"35", "70000", "Sales", "b"},
			{"45", "90000", "Eng", "c"},
			{"55", "110000", "HR", "d"},
			{"30", "", "Eng", "e"},
			{"40", "80000", "Sales", "f"},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestAnalyze_FiguresInColumnOrder(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	figs, err := engine.Analyze(context.Background(), sampleTable(t))
	require.NoError(t, err)

	// Age, Salary histograms; Dept and Notes value counts; heatmap last
	require.Len(t, figs, 5)
	assert.Equal(t, chart.KindHistogram, figs[0].Kind)
	assert.Equal(t, "Distribution of Age", figs[0].Layout.Title)
	assert.Equal(t, chart.KindHistogram, figs[1].Kind)
	assert.Equal(t, "Distribution of Salary", figs[1].Layout.Title)
	assert.Equal(t, chart.KindBar, figs[2].Kind)
	assert.Equal(t, "Value counts of Dept", figs[2].Layout.Title)
	assert.Equal(t, "Value counts of Notes", figs[3].Layout.Title)
	assert.Equal(t, chart.KindHeatmap, figs[4].Kind)
}

func TestAnalyze_RespectsColumnCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCols = 1
	engine := NewEngine(cfg)

	figs, err := engine.Analyze(context.Background(), sampleTable(t))
	require.NoError(t, err)
	require.Len(t, figs, 1)
	assert.Equal(t, "Distribution of Age", figs[0].Layout.Title)
}

func TestAnalyze_SkipsHighCardinality(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCategories = 3
	engine := NewEngine(cfg)

	figs, err := engine.Analyze(context.Background(), sampleTable(t))
	require.NoError(t, err)

	for _, f := range figs {
		assert.NotEqual(t, "Value counts of Notes", f.Layout.Title)
	}
}

func TestAnalyze_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(DefaultConfig()).Analyze(ctx, sampleTable(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHistogram_CountsEveryValue(t *testing.T) {
	values := make([]string, 100)
	for i := range values {
		values[i] = fmt.Sprint(i)
	}
	col := &table.Column{Name: "n", Type: table.TypeNumeric, Values: values}

	fig := Histogram(col)
	require.NotNil(t, fig)
	// Sturges: ceil(log2(100)) + 1 = 8
	require.Len(t, fig.Data[0].X, 8)

	total := 0.0
	for _, c := range fig.Data[0].Y {
		total += c
	}
	assert.Equal(t, 100.0, total)
}

func TestHistogram_ConstantColumn(t *testing.T) {
	col := &table.Column{Name: "c", Type: table.TypeNumeric, Values: []string{"7", "7", "7"}}

	fig := Histogram(col)
	require.NotNil(t, fig)
	assert.Equal(t, []float64{3}, fig.Data[0].Y)
}

func TestHistogram_EmptyColumn(t *testing.T) {
	col := &table.Column{Name: "e", Type: table.TypeNumeric, Values: []string{"", ""}}
	assert.Nil(t, Histogram(col))
}

func TestHistogram_RangeOverflow(t *testing.T) {
	col := &table.Column{Name: "wide", Type: table.TypeNumeric, Values: []string{"-1e308", "0", "1e308"}}
	assert.Nil(t, Histogram(col))
}

func TestAnalyze_InfinityCells(t *testing.T) {
	tbl, err := table.New([]string{"score"}, [][]string{{"1"}, {"2"}, {"inf"}})
	require.NoError(t, err)

	figs, err := NewEngine(DefaultConfig()).Analyze(context.Background(), tbl)
	require.NoError(t, err)
	require.Len(t, figs, 1)
	assert.Equal(t, chart.KindBar, figs[0].Kind, "a column holding inf is treated as categorical")
}

func TestCorrelationHeatmap(t *testing.T) {
	cols := []table.Column{
		{Name: "a", Type: table.TypeNumeric, Values: []string{"1", "2", "3", "4"}},
		{Name: "b", Type: table.TypeNumeric, Values: []string{"2", "4", "6", "8"}},
		{Name: "c", Type: table.TypeNumeric, Values: []string{"4", "3", "2", "1"}},
		{Name: "k", Type: table.TypeNumeric, Values: []string{"5", "5", "5", "5"}},
	}

	fig := CorrelationHeatmap(cols)
	require.NotNil(t, fig)

	z := fig.Data[0].Z
	assert.Equal(t, []string{"a", "b", "c", "k"}, fig.Data[0].X)
	assert.InDelta(t, 1.0, z[0][1], 1e-9)
	assert.InDelta(t, -1.0, z[0][2], 1e-9)
	assert.Equal(t, z[0][2], z[2][0])
	// zero variance is reported as 0 instead of NaN
	assert.Equal(t, 0.0, z[0][3])
	assert.Equal(t, 1.0, z[3][3])
}

func TestCorrelationHeatmap_NeedsTwoNumericColumns(t *testing.T) {
	cols := []table.Column{
		{Name: "a", Type: table.TypeNumeric, Values: []string{"1", "2"}},
		{Name: "d", Type: table.TypeText, Values: []string{"x", "y"}},
	}
	assert.Nil(t, CorrelationHeatmap(cols))
}
