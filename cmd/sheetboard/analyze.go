package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/foxzi/sheetboard/internal/analyze"
	"github.com/foxzi/sheetboard/internal/sheets"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the spreadsheet structure",
	Long: `Connect to the configured spreadsheet and print a report of its
sheets, detected column types and sample rows.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw analysis as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := sheets.NewClient(&cfg.Sheets)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	analyzer := analyze.New(client, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	analysis, err := analyzer.Analyze(ctx)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		return printJSON(os.Stdout, analysis)
	}

	fmt.Print(analyze.MarkdownReport(analysis))
	return nil
}
