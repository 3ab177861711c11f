package eda

import (
	"context"
	"fmt"
	"math"
	"sort"

	"workgen/domain/chart"
	"workgen/domain/table"
	"workgen/internal"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Config bounds the automated pass
type Config struct {
	MaxRows       int `json:"max_rows"`
	MaxCols       int `json:"max_cols"`
	MaxCategories int `json:"max_categories"`
	Workers       int `json:"workers"`
}

// DefaultConfig returns the analysis limits used by the dashboard
func DefaultConfig() Config {
	return Config{
		MaxRows:       150000,
		MaxCols:       30,
		MaxCategories: 50,
		Workers:       4,
	}
}

// Engine implements ports.EDAEngine: one figure per column plus a correlation
// heatmap over the numeric columns
type Engine struct {
	config Config
	logger *internal.Logger
}

// NewEngine creates an EDA engine
func NewEngine(config Config) *Engine {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &Engine{config: config, logger: internal.DefaultLogger.Named("EDA")}
}

// Analyze implements ports.EDAEngine. Figures come back in column order with
// the heatmap last.
func (e *Engine) Analyze(ctx context.Context, t *table.Table) ([]chart.Figure, error) {
	view := t.Limit(e.config.MaxRows, e.config.MaxCols)
	cols := view.Columns()

	perColumn := make([]*chart.Figure, len(cols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)

	for i := range cols {
		col := &cols[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if col.IsNumeric() {
				perColumn[i] = Histogram(col)
			} else {
				perColumn[i] = e.valueCounts(col)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("eda analysis cancelled: %w", err)
	}

	figures := make([]chart.Figure, 0, len(cols)+1)
	for _, fig := range perColumn {
		if fig != nil {
			figures = append(figures, *fig)
		}
	}
	if heat := CorrelationHeatmap(cols); heat != nil {
		figures = append(figures, *heat)
	}

	e.logger.Info("analyzed %d rows x %d columns into %d figures", view.NumRows(), len(cols), len(figures))
	return figures, nil
}

// Histogram bins a numeric column using Sturges' rule. Columns without
// values, or whose range is not finite, produce no figure.
func Histogram(col *table.Column) *chart.Figure {
	data := col.Floats()
	if len(data) == 0 {
		return nil
	}
	sort.Float64s(data)

	bins := int(math.Ceil(math.Log2(float64(len(data))))) + 1
	lo, hi := data[0], data[len(data)-1]
	if math.IsInf(hi-lo, 0) || math.IsNaN(hi-lo) {
		return nil
	}
	if lo == hi {
		bins = 1
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, data, nil)

	labels := make([]string, bins)
	for i := 0; i < bins; i++ {
		labels[i] = fmt.Sprintf("[%.4g, %.4g)", dividers[i], dividers[i+1])
	}

	return &chart.Figure{
		Kind:     chart.KindHistogram,
		Identity: chart.NewIdentity(chart.KindHistogram, map[string]string{"column": col.Name}).Key(),
		Data:     []chart.Trace{{Type: "bar", Name: col.Name, X: labels, Y: counts}},
		Layout: chart.Layout{
			Title:      fmt.Sprintf("Distribution of %s", col.Name),
			XAxisTitle: col.Name,
			YAxisTitle: "count",
		},
	}
}

// valueCounts draws category frequencies, most frequent first. High
// cardinality columns are skipped.
func (e *Engine) valueCounts(col *table.Column) *chart.Figure {
	labels, counts := col.ValueCounts()
	if len(labels) == 0 || len(labels) > e.config.MaxCategories {
		return nil
	}

	order := make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] > counts[order[b]] })

	x := make([]string, len(order))
	y := make([]float64, len(order))
	for i, idx := range order {
		x[i] = labels[idx]
		y[i] = float64(counts[idx])
	}

	return &chart.Figure{
		Kind:     chart.KindBar,
		Identity: chart.NewIdentity(chart.KindBar, map[string]string{"counts": col.Name}).Key(),
		Data:     []chart.Trace{{Type: "bar", Name: col.Name, X: x, Y: y}},
		Layout: chart.Layout{
			Title:      fmt.Sprintf("Value counts of %s", col.Name),
			XAxisTitle: col.Name,
			YAxisTitle: "count",
		},
	}
}

// CorrelationHeatmap computes pairwise Pearson correlation between numeric
// columns over rows where both values are present. Undefined coefficients
// are reported as 0.
func CorrelationHeatmap(cols []table.Column) *chart.Figure {
	var numeric []*table.Column
	for i := range cols {
		if cols[i].IsNumeric() {
			numeric = append(numeric, &cols[i])
		}
	}
	if len(numeric) < 2 {
		return nil
	}

	names := make([]string, len(numeric))
	z := make([][]float64, len(numeric))
	for i, a := range numeric {
		names[i] = a.Name
		z[i] = make([]float64, len(numeric))
		for j, b := range numeric {
			switch {
			case i == j:
				z[i][j] = 1
			case j < i:
				z[i][j] = z[j][i]
			default:
				z[i][j] = pairwiseCorrelation(a, b)
			}
		}
	}

	return &chart.Figure{
		Kind:     chart.KindHeatmap,
		Identity: chart.NewIdentity(chart.KindHeatmap, map[string]string{"columns": fmt.Sprint(names)}).Key(),
		Data:     []chart.Trace{{Type: "heatmap", X: names, Labels: names, Z: z}},
		Layout:   chart.Layout{Title: "Correlation between numeric columns"},
	}
}

func pairwiseCorrelation(a, b *table.Column) float64 {
	var xs, ys []float64
	for i := 0; i < a.Len(); i++ {
		x, okX := a.Float(i)
		y, okY := b.Float(i)
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
