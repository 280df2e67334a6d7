package analyze

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownReport renders the analysis as a human-readable markdown
// document: per-sheet column tables, sample rows and a summary.
func MarkdownReport(a *Analysis) string {
	var b strings.Builder

	b.WriteString("# Google Spreadsheet Structure Analysis\n\n")
	fmt.Fprintf(&b, "**Spreadsheet:** %s\n", a.Title)
	fmt.Fprintf(&b, "**Spreadsheet ID:** `%s`\n", a.SpreadsheetID)
	fmt.Fprintf(&b, "**Total Sheets:** %d\n", a.TotalSheets)
	fmt.Fprintf(&b, "**Analysis Date:** %s\n\n", time.Now().UTC().Format("2006-01-02"))
	b.WriteString("---\n\n")

	for i, sheet := range a.Sheets {
		fmt.Fprintf(&b, "## %d. Sheet: %q\n\n", i+1, sheet.Name)
		fmt.Fprintf(&b, "**Dimensions:** %d rows × %d columns\n\n", sheet.RowCount, sheet.ColumnCount)

		if len(sheet.Headers) == 0 {
			b.WriteString("*No data found in this sheet*\n\n---\n\n")
			continue
		}

		b.WriteString("### Column Structure\n\n")
		b.WriteString("| Column | Header | Data Type | Sample Values |\n")
		b.WriteString("|--------|--------|-----------|---------------|\n")
		for col, header := range sheet.Headers {
			dataType := sheet.DataTypes[header]
			if dataType == "" {
				dataType = "unknown"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				columnLetter(col), header, dataType, sampleValues(sheet.SampleData, col))
		}

		b.WriteString("\n### Sample Data (First 5 Rows)\n\n")
		fmt.Fprintf(&b, "| %s |\n", strings.Join(sheet.Headers, " | "))
		b.WriteString("|" + strings.Repeat("---|", len(sheet.Headers)) + "\n")
		for _, row := range sheet.SampleData {
			padded := make([]string, len(sheet.Headers))
			copy(padded, row)
			fmt.Fprintf(&b, "| %s |\n", strings.Join(padded, " | "))
		}

		b.WriteString("\n---\n\n")
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "This spreadsheet contains %d sheet(s):\n\n", a.TotalSheets)
	for _, sheet := range a.Sheets {
		fmt.Fprintf(&b, "- **%s**: %d columns, %d rows\n", sheet.Name, len(sheet.Headers), sheet.RowCount)
	}

	return b.String()
}

// sampleValues joins up to two non-empty sample cells for a column
func sampleValues(rows [][]string, col int) string {
	var samples []string
	for _, row := range rows {
		if col < len(row) && row[col] != "" {
			samples = append(samples, row[col])
			if len(samples) == 2 {
				break
			}
		}
	}
	if len(samples) == 0 {
		return "N/A"
	}
	return strings.Join(samples, ", ")
}

// columnLetter converts a 0-based column index to its A1 letter(s)
func columnLetter(col int) string {
	letter := ""
	for col >= 0 {
		letter = string(rune('A'+col%26)) + letter
		col = col/26 - 1
	}
	return letter
}
