package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"datastory/adapters/tabular"
	appsvc "datastory/app"
	"datastory/internal"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datastory",
		Short: "Analyze tabular files from the command line",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newNarrativeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var columns string
	var analysisType string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Run the full analysis pipeline and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runPipeline(cmd.Context(), args[0], columns, analysisType)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		},
	}

	cmd.Flags().StringVar(&columns, "columns", "", "comma-separated column names to analyze (default all)")
	cmd.Flags().StringVar(&analysisType, "type", "", "analysis type hint for chart synthesis")
	return cmd
}

func newNarrativeCmd() *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "narrative <file>",
		Short: "Print the generated data story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runPipeline(cmd.Context(), args[0], "", "")
			if err != nil {
				return err
			}

			reports := appsvc.NewReportService(internal.DefaultLogger)
			report := reports.RenderReport(result)
			if asHTML {
				report = reports.RenderHTML(report)
			}
			fmt.Println(report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "render the narrative as HTML")
	return cmd
}

func runPipeline(ctx context.Context, path, columns, analysisType string) (*appsvc.AnalysisResult, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	ds, err := tabular.BuildDataset(table, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	req := appsvc.AnalysisRequest{AnalysisType: analysisType}
	if columns != "" {
		for _, c := range strings.Split(columns, ",") {
			if trimmed := strings.TrimSpace(c); trimmed != "" {
				req.SelectedColumns = append(req.SelectedColumns, trimmed)
			}
		}
	}

	service := appsvc.NewAnalysisService(internal.DefaultLogger)
	return service.Run(ctx, ds, req)
}
