package profiling

import (
	"encoding/json"
	"testing"

	"workgen/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeNumeric(t *testing.T) {
	s := DescribeNumeric("Score", []float64{1, 2, 3, 4})

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-9)
	assert.InDelta(t, 1.2909944, s.StdDev, 1e-6)
	assert.Equal(t, 1.0, s.Min)
	assert.InDelta(t, 1.75, s.Q25, 1e-9)
	assert.InDelta(t, 2.5, s.Median, 1e-9)
	assert.InDelta(t, 3.25, s.Q75, 1e-9)
	assert.Equal(t, 4.0, s.Max)
	assert.InDelta(t, 0, s.Skewness, 1e-9)
}

func TestDescribeNumericSmallSamples(t *testing.T) {
	empty := DescribeNumeric("x", nil)
	assert.Equal(t, 0, empty.Count)
	assert.Zero(t, empty.Mean)

	single := DescribeNumeric("x", []float64{7})
	assert.Equal(t, 7.0, single.Median)
	assert.Zero(t, single.StdDev)
}

func TestDescribeNumericOverflow(t *testing.T) {
	s := DescribeNumeric("x", []float64{1e308, 1e308, -1e308})

	assert.Equal(t, 1e308, s.Max)
	assert.Equal(t, -1e308, s.Min)
	_, err := json.Marshal(s)
	assert.NoError(t, err)
}

func TestDescribeTable(t *testing.T) {
	tbl, err := table.New(
		[]string{"EmpID", "Dept", "Score"},
		[][]string{
			{"1", "Eng", "10"},
			{"2", "Sales", "25"},
			{"3", "Eng", ""},
		},
	)
	require.NoError(t, err)

	d := Describe(tbl)
	assert.Equal(t, 3, d.Rows)
	assert.Equal(t, 3, d.Columns)
	require.Len(t, d.Numeric, 2)
	assert.Equal(t, "Score", d.Numeric[1].Column)
	assert.Equal(t, 2, d.Numeric[1].Count)

	require.Len(t, d.Categorical, 1)
	assert.Equal(t, CategoricalSummary{Column: "Dept", Count: 3, Unique: 2, Top: "Eng", Freq: 2}, d.Categorical[0])

	_, err = json.Marshal(d)
	assert.NoError(t, err)
}

func TestNewPreview(t *testing.T) {
	tbl, err := table.New([]string{"a"}, [][]string{{"1"}, {"2"}, {"3"}})
	require.NoError(t, err)

	p := NewPreview(tbl, 2)
	assert.Equal(t, [][]string{{"1"}, {"2"}}, p.Rows)
	assert.Equal(t, 3, p.TotalRows)
	assert.Len(t, p.Columns, 1)
}
