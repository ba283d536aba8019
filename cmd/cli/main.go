package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"corrlens/adapters/csvfile"
	"corrlens/adapters/excel"
	"corrlens/adapters/stats/engine"
	"corrlens/adapters/stats/profile"
	"corrlens/adapters/stats/temporal"
	"corrlens/app"
	"corrlens/domain/correlation"
	"corrlens/domain/table"
	"corrlens/internal/analyze"
	"corrlens/internal/report"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "corrlens",
		Short: "Correlation analysis for tabular datasets",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSeriesCmd(),
		newProfileCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var method string
	var showAll bool
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Compute the correlation matrix for a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(args[0])
			if err != nil {
				return err
			}

			m, err := correlation.ParseMethod(method)
			if err != nil {
				return err
			}

			service := app.NewAnalysisService(engine.NewLocalSource(), nil, nil)
			result, err := service.Analyze(context.Background(), app.AnalysisRequest{
				Table:    t,
				FilePath: args[0],
				Method:   m,
				ShowAll:  showAll,
			})
			if err != nil {
				return err
			}

			if asMarkdown {
				fmt.Println(report.Markdown(result))
				return nil
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&method, "method", "pearson", "correlation method (pearson|spearman)")
	cmd.Flags().BoolVar(&showAll, "show-all", false, "include variables with no significant correlations")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "print a markdown report instead of JSON")
	return cmd
}

func newSeriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series [file] [var1] [var2]",
		Short: "Compute the aligned time series for a variable pair",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(args[0])
			if err != nil {
				return err
			}

			service := app.NewTimeSeriesService(nil)
			points := service.Series(context.Background(), app.SeriesRequest{
				Table:          t,
				Classification: analyze.Classify(t),
				Pair:           correlation.VariablePair{Var1: args[1], Var2: args[2]},
			})
			return printJSON(temporal.CapForPresentation(points))
		},
	}
	return cmd
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [file]",
		Short: "Summarize the numeric columns of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(args[0])
			if err != nil {
				return err
			}

			classification := analyze.Classify(t)
			return printJSON(profile.Columns(t, classification.Numeric))
		},
	}
	return cmd
}

func loadTable(path string) (*table.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return excel.NewDataReader(path).ReadTable()
	}
	return csvfile.ReadFile(path)
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
