package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"workgen/adapters/charts"
	"workgen/adapters/eda"
	"workgen/adapters/excel"
	"workgen/adapters/rng"
	"workgen/app"
	"workgen/domain/chart"
	"workgen/domain/core"
	"workgen/internal/profiling"
	"workgen/internal/session"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "workgen-cli",
		Short: "WorkGen CLI for profiling spreadsheets, allocating projects and generating insights",
	}

	rootCmd.AddCommand(
		newDescribeCmd(),
		newProjectCmd(),
		newInsightCmd(),
		newEDACmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// workspace is a throwaway in-memory session with the file already loaded
type workspace struct {
	sessions *session.Manager
	id       core.SessionID
	preview  *profiling.Preview
}

func openWorkspace(ctx context.Context, path, sheet string, previewRows int) (*workspace, error) {
	sessions := session.NewManager(nil)
	sess, err := sessions.Create(ctx)
	if err != nil {
		return nil, err
	}

	config := excel.DefaultConfig()
	config.SheetName = sheet
	upload := app.NewUploadService(sessions, excel.NewDataReader(config), previewRows)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	preview, err := upload.Upload(ctx, sess.ID, filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	return &workspace{sessions: sessions, id: sess.ID, preview: preview}, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newDescribeCmd() *cobra.Command {
	var sheet string
	var rows int

	cmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "Preview a CSV or Excel file with summary statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), args[0], sheet, rows)
			if err != nil {
				return err
			}
			return printJSON(ws.preview)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Excel sheet name (default: first sheet)")
	cmd.Flags().IntVar(&rows, "rows", app.DefaultPreviewRows, "Number of preview rows")
	return cmd
}

func newProjectCmd() *cobra.Command {
	var (
		sheet string
		name  string
		size  int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "project FILE",
		Short: "Sample satisfied employees (JobSatisfaction >= 3) into a project",
		Long: `Sample employees with JobSatisfaction >= 3 into a named project.

Example: workgen-cli project employees.csv --name Apollo --size 5 --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), args[0], sheet, 0)
			if err != nil {
				return err
			}

			svc := app.NewProjectService(ws.sessions, rng.NewAdapter(seed), nil)
			p, err := svc.CreateProject(cmd.Context(), ws.id, name, size)
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Excel sheet name (default: first sheet)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().IntVar(&size, "size", 1, "Number of employees")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = time-seeded)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newInsightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Generate a chart and its insight sentence",
	}
	cmd.AddCommand(newInsightBarCmd(), newInsightPieCmd())
	return cmd
}

func runChart(ctx context.Context, path, sheet string, req chart.Request, withFigure bool) error {
	ws, err := openWorkspace(ctx, path, sheet, 0)
	if err != nil {
		return err
	}

	svc := app.NewInsightService(ws.sessions, charts.NewPlotlyRenderer(), nil)
	result, err := svc.GenerateChart(ctx, ws.id, req)
	if err != nil {
		return err
	}

	if withFigure {
		return printJSON(result)
	}
	fmt.Println(result.Insight.Text)
	return nil
}

func newInsightBarCmd() *cobra.Command {
	var sheet, x, y string
	var withFigure bool

	cmd := &cobra.Command{
		Use:   "bar FILE",
		Short: "Bar chart of a numeric column by category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd.Context(), args[0], sheet, chart.Request{Kind: chart.KindBar, X: x, Y: y}, withFigure)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Excel sheet name (default: first sheet)")
	cmd.Flags().StringVar(&x, "x", "", "Category column")
	cmd.Flags().StringVar(&y, "y", "", "Numeric column")
	cmd.Flags().BoolVar(&withFigure, "figure", false, "Print the figure JSON as well")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}

func newInsightPieCmd() *cobra.Command {
	var sheet, column string
	var donut, withFigure bool

	cmd := &cobra.Command{
		Use:   "pie FILE",
		Short: "Pie or donut chart of a categorical column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := chart.KindPie
			if donut {
				kind = chart.KindDonut
			}
			return runChart(cmd.Context(), args[0], sheet, chart.Request{Kind: kind, Column: column}, withFigure)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Excel sheet name (default: first sheet)")
	cmd.Flags().StringVar(&column, "column", "", "Categorical column")
	cmd.Flags().BoolVar(&donut, "donut", false, "Draw a donut instead of a pie")
	cmd.Flags().BoolVar(&withFigure, "figure", false, "Print the figure JSON as well")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func newEDACmd() *cobra.Command {
	var sheet string
	config := eda.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "eda FILE",
		Short: "Run the automated exploratory analysis and print figure JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), args[0], sheet, 0)
			if err != nil {
				return err
			}

			figures, err := app.NewEDAService(ws.sessions, eda.NewEngine(config)).Run(cmd.Context(), ws.id)
			if err != nil {
				return err
			}
			return printJSON(figures)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Excel sheet name (default: first sheet)")
	cmd.Flags().IntVar(&config.MaxRows, "max-rows", config.MaxRows, "Maximum rows analyzed")
	cmd.Flags().IntVar(&config.MaxCols, "max-cols", config.MaxCols, "Maximum columns analyzed")
	cmd.Flags().IntVar(&config.Workers, "workers", config.Workers, "Parallel column workers")
	return cmd
}
