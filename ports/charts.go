package ports

import (
	"context"

	"workgen/domain/chart"
	"workgen/domain/table"
)

// ChartRenderer turns a chart request into a renderable figure
type ChartRenderer interface {
	Render(ctx context.Context, t *table.Table, req chart.Request) (*chart.Figure, error)
}

// EDAEngine runs an automated exploratory pass over a whole table
type EDAEngine interface {
	Analyze(ctx context.Context, t *table.Table) ([]chart.Figure, error)
}
