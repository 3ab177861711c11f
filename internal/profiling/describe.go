package profiling

import (
	"math"
	"sort"

	"workgen/domain/table"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// NumericSummary mirrors a numeric column of a describe() table
type NumericSummary struct {
	Column   string  `json:"column"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std"`
	Min      float64 `json:"min"`
	Q25      float64 `json:"q25"`
	Median   float64 `json:"median"`
	Q75      float64 `json:"q75"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
}

// CategoricalSummary mirrors a non-numeric column of a describe() table
type CategoricalSummary struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Unique int    `json:"unique"`
	Top    string `json:"top"`
	Freq   int    `json:"freq"`
}

// Description is the summary of every column of a table
type Description struct {
	Rows        int                  `json:"rows"`
	Columns     int                  `json:"columns"`
	Numeric     []NumericSummary     `json:"numeric"`
	Categorical []CategoricalSummary `json:"categorical"`
}

// Describe summarizes each column. Numeric columns get count, mean, sample
// standard deviation, min, quartiles and max; the rest get count, unique,
// most frequent value and its frequency.
func Describe(t *table.Table) Description {
	d := Description{Rows: t.NumRows(), Columns: t.NumColumns()}

	cols := t.Columns()
	for i := range cols {
		col := &cols[i]
		if col.IsNumeric() {
			d.Numeric = append(d.Numeric, DescribeNumeric(col.Name, col.Floats()))
		} else {
			d.Categorical = append(d.Categorical, DescribeCategorical(col))
		}
	}
	return d
}

// DescribeNumeric computes summary statistics for one numeric series.
// Statistics that are undefined for the sample size, or that overflow, are
// left at zero so the summary stays JSON-encodable.
func DescribeNumeric(name string, data []float64) NumericSummary {
	s := NumericSummary{Column: name, Count: len(data)}
	if len(data) == 0 {
		return s
	}

	s.Mean, _ = stats.Mean(data)
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	if len(data) > 1 {
		s.StdDev, _ = stats.StandardDeviationSample(data)
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	s.Q25 = quantile(0.25, sorted)
	s.Median = quantile(0.5, sorted)
	s.Q75 = quantile(0.75, sorted)

	if len(data) > 2 && s.StdDev > 0 {
		s.Skewness = stat.Skew(data, nil)
	}

	// finite inputs can still overflow, e.g. the mean of 1e308 and 1e308
	for _, v := range []*float64{&s.Mean, &s.StdDev, &s.Min, &s.Q25, &s.Median, &s.Q75, &s.Max, &s.Skewness} {
		if math.IsInf(*v, 0) || math.IsNaN(*v) {
			*v = 0
		}
	}
	return s
}

// quantile uses linear interpolation between closest ranks, as pandas does
func quantile(p float64, sorted []float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// DescribeCategorical counts values of a non-numeric column. Ties for the
// top value go to the value seen first.
func DescribeCategorical(col *table.Column) CategoricalSummary {
	labels, counts := col.ValueCounts()
	s := CategoricalSummary{Column: col.Name, Unique: len(labels)}
	for _, c := range counts {
		s.Count += c
	}
	if top, freq, ok := col.Mode(); ok {
		s.Top, s.Freq = top, freq
	}
	return s
}

// Preview is the first rows of a table together with column metadata
type Preview struct {
	Columns     []table.Column `json:"columns"`
	Rows        [][]string     `json:"rows"`
	TotalRows   int            `json:"total_rows"`
	Description Description    `json:"description"`
}

// NewPreview builds a preview with up to n rows
func NewPreview(t *table.Table, n int) Preview {
	return Preview{
		Columns:     t.Columns(),
		Rows:        t.Head(n),
		TotalRows:   t.NumRows(),
		Description: Describe(t),
	}
}
