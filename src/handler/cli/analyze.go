package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codesage/src/controller"
	"codesage/src/util"
)

func (h *Handler) analyzeCmd() *cobra.Command {
	var (
		path      string
		outputDir string
		format    string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a directory tree for quality issues",
		Long:  "Runs all enabled detectors against a source tree and generates a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return fmt.Errorf("--path is required")
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			util.Info("Analyzing: %s (timeout: %v)", path, timeout)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			// Run analysis
			analysisCtrl := controller.NewAnalysisController(h.cfg)
			report, err := analysisCtrl.Analyze(ctx, controller.AnalyzeRequest{
				Path: path,
			})
			if err != nil {
				util.Error("Analysis failed: %v", err)
				return fmt.Errorf("analysis failed: %w", err)
			}

			// Output results
			if outputDir != "" {
				// Set output directory from flag
				h.cfg.Output.OutputDir = outputDir
				if format != "" {
					h.cfg.Output.Formats = []string{format}
				}

				// Generate report files
				reportCtrl := controller.NewReportController(h.cfg)
				paths, err := reportCtrl.GenerateReports(report)
				if err != nil {
					return fmt.Errorf("generating reports: %w", err)
				}
				for _, p := range paths {
					fmt.Printf("Report written to %s\n", p)
				}
			} else {
				// Output to stdout
				reportCtrl := controller.NewReportController(h.cfg)
				outputFormat := format
				if outputFormat == "" {
					outputFormat = "json"
				}

				output, err := reportCtrl.GenerateToString(report, outputFormat)
				if err != nil {
					// Fallback to raw JSON
					data, _ := json.MarshalIndent(report, "", "  ")
					fmt.Println(string(data))
				} else {
					fmt.Println(output)
				}
			}

			// Print summary to stderr
			fmt.Fprintf(os.Stderr, "\nAnalysis complete:\n")
			fmt.Fprintf(os.Stderr, "  Files analyzed: %d (%d skipped)\n",
				report.Summary.FilesAnalyzed, report.Summary.FilesSkipped)
			fmt.Fprintf(os.Stderr, "  Total issues: %d\n", report.Summary.TotalIssues)
			fmt.Fprintf(os.Stderr, "  Maintainability: %.1f/100\n", report.Maintainability)
			fmt.Fprintf(os.Stderr, "  Estimated debt: %dm\n", report.DebtMinutes)

			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Directory to analyze (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory path")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (json, markdown, sarif)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Analysis timeout")

	cmd.MarkFlagRequired("path")

	return cmd
}
