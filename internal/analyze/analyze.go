// Package analyze inspects the backing spreadsheet's structure: sheet
// dimensions, headers, sample rows and guessed column types. The result
// backs the analyze-sheet endpoint and the CLI report.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/foxzi/sheetboard/internal/sheets"
)

const (
	sampleRange = "A1:Z100"
	sampleRows  = 5
)

// SheetSource is the slice of the sheets client the analyzer needs
type SheetSource interface {
	SpreadsheetID() string
	Metadata(ctx context.Context) (*sheets.SpreadsheetInfo, error)
	Values(ctx context.Context, a1Range string) ([][]string, error)
}

// SheetInfo describes one sheet tab's structure
type SheetInfo struct {
	Name        string            `json:"name"`
	RowCount    int               `json:"rowCount"`
	ColumnCount int               `json:"columnCount"`
	Headers     []string          `json:"headers"`
	SampleData  [][]string        `json:"sampleData"`
	DataTypes   map[string]string `json:"dataTypes"`
}

// Analysis is the whole-spreadsheet structure report
type Analysis struct {
	SpreadsheetID string      `json:"spreadsheetId"`
	Title         string      `json:"title"`
	Sheets        []SheetInfo `json:"sheets"`
	TotalSheets   int         `json:"totalSheets"`
}

// Analyzer fetches and classifies spreadsheet structure
type Analyzer struct {
	source SheetSource
	logger *slog.Logger
}

// New creates an analyzer
func New(source SheetSource, logger *slog.Logger) *Analyzer {
	return &Analyzer{source: source, logger: logger}
}

// Analyze fetches metadata and samples every sheet. A sheet that fails to
// fetch is reported with empty headers instead of failing the whole run.
func (a *Analyzer) Analyze(ctx context.Context) (*Analysis, error) {
	meta, err := a.source.Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("analyze spreadsheet: %w", err)
	}

	analysis := &Analysis{
		SpreadsheetID: a.source.SpreadsheetID(),
		Title:         meta.Title,
		Sheets:        []SheetInfo{},
		TotalSheets:   len(meta.Sheets),
	}

	for _, props := range meta.Sheets {
		info := SheetInfo{
			Name:        props.Title,
			RowCount:    props.RowCount,
			ColumnCount: props.ColumnCount,
			Headers:     []string{},
			SampleData:  [][]string{},
			DataTypes:   map[string]string{},
		}

		values, err := a.source.Values(ctx, props.Title+"!"+sampleRange)
		if err != nil {
			a.logger.Error("failed to sample sheet", "sheet", props.Title, "error", err)
			analysis.Sheets = append(analysis.Sheets, info)
			continue
		}

		if len(values) > 0 {
			info.Headers = values[0]
			rows := values[1:]
			if len(rows) > sampleRows {
				rows = rows[:sampleRows]
			}
			info.SampleData = rows
			info.DataTypes = classifyColumns(info.Headers, rows)
		}

		analysis.Sheets = append(analysis.Sheets, info)
	}

	return analysis, nil
}

var (
	isoDate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDate = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	urlValue = regexp.MustCompile(`^https?://`)
)

// DetectType guesses the type of a single cell value
func DetectType(value string) string {
	switch {
	case value == "":
		return "empty"
	case isNumber(value):
		return "number"
	case isoDate.MatchString(value) || slashDate.MatchString(value):
		return "date"
	case strings.Contains(value, "@"):
		return "email"
	case urlValue.MatchString(value):
		return "url"
	case strings.Contains(value, ","):
		return "comma-separated"
	default:
		return "text"
	}
}

func isNumber(value string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return err == nil
}

// classifyColumns decides each column's type by the most common guess
// among its non-empty sample values. Columns with no samples are empty.
func classifyColumns(headers []string, rows [][]string) map[string]string {
	types := make(map[string]string, len(headers))
	for i, header := range headers {
		counts := map[string]int{}
		var order []string
		for _, row := range rows {
			if i >= len(row) || row[i] == "" {
				continue
			}
			t := DetectType(row[i])
			if counts[t] == 0 {
				order = append(order, t)
			}
			counts[t]++
		}

		if len(counts) == 0 {
			types[header] = "empty"
			continue
		}

		best := order[0]
		for _, t := range order {
			if counts[t] > counts[best] {
				best = t
			}
		}
		types[header] = best
	}
	return types
}
