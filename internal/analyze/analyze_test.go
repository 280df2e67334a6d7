package analyze

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/foxzi/sheetboard/internal/sheets"
)

// mockSource implements SheetSource for testing
type mockSource struct {
	info   *sheets.SpreadsheetInfo
	values map[string][][]string
	errs   map[string]error
}

func (m *mockSource) SpreadsheetID() string { return "sheet-1" }

func (m *mockSource) Metadata(ctx context.Context) (*sheets.SpreadsheetInfo, error) {
	if m.info == nil {
		return nil, errors.New("metadata unavailable")
	}
	return m.info, nil
}

func (m *mockSource) Values(ctx context.Context, a1Range string) ([][]string, error) {
	name := strings.SplitN(a1Range, "!", 2)[0]
	if err := m.errs[name]; err != nil {
		return nil, err
	}
	return m.values[name], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", "empty"},
		{"42", "number"},
		{"3.14", "number"},
		{"2024-01-02", "date"},
		{"01/02/2024", "date"},
		{"a@b.c", "email"},
		{"https://example.com", "url"},
		{"http://example.com", "url"},
		{"seo, gaming", "comma-separated"},
		{"hello world", "text"},
	}

	for _, tt := range tests {
		if got := DetectType(tt.value); got != tt.want {
			t.Errorf("DetectType(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestAnalyze(t *testing.T) {
	src := &mockSource{
		info: &sheets.SpreadsheetInfo{
			Title: "Outreach Tracker",
			Sheets: []sheets.SheetProperties{
				{Title: "Websites", RowCount: 100, ColumnCount: 6},
				{Title: "Broken", RowCount: 10, ColumnCount: 2},
			},
		},
		values: map[string][][]string{
			"Websites": {
				{"Website URL", "Contact Email", "Keywords"},
				{"https://a.example", "a@a.example", "seo, tech"},
				{"https://b.example", "b@b.example", "gaming, mods"},
			},
		},
		errs: map[string]error{"Broken": errors.New("range not found")},
	}

	analysis, err := New(src, testLogger()).Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if analysis.Title != "Outreach Tracker" || analysis.TotalSheets != 2 {
		t.Errorf("analysis = %+v", analysis)
	}
	if len(analysis.Sheets) != 2 {
		t.Fatalf("len(Sheets) = %d, want 2", len(analysis.Sheets))
	}

	ws := analysis.Sheets[0]
	if len(ws.Headers) != 3 || len(ws.SampleData) != 2 {
		t.Errorf("Websites sheet = %+v", ws)
	}
	if ws.DataTypes["Website URL"] != "url" {
		t.Errorf("Website URL type = %q, want url", ws.DataTypes["Website URL"])
	}
	if ws.DataTypes["Contact Email"] != "email" {
		t.Errorf("Contact Email type = %q, want email", ws.DataTypes["Contact Email"])
	}
	if ws.DataTypes["Keywords"] != "comma-separated" {
		t.Errorf("Keywords type = %q, want comma-separated", ws.DataTypes["Keywords"])
	}

	// Failed sheet is reported empty rather than failing the run
	broken := analysis.Sheets[1]
	if broken.Name != "Broken" || len(broken.Headers) != 0 {
		t.Errorf("broken sheet = %+v, want empty report", broken)
	}
}

func TestAnalyzeMetadataError(t *testing.T) {
	src := &mockSource{}
	if _, err := New(src, testLogger()).Analyze(context.Background()); err == nil {
		t.Error("Analyze() error = nil, want metadata error")
	}
}

func TestMarkdownReport(t *testing.T) {
	analysis := &Analysis{
		SpreadsheetID: "sheet-1",
		Title:         "Outreach Tracker",
		TotalSheets:   1,
		Sheets: []SheetInfo{
			{
				Name:        "Websites",
				RowCount:    100,
				ColumnCount: 2,
				Headers:     []string{"Website URL", "Status"},
				SampleData:  [][]string{{"https://a.example", "pending"}},
				DataTypes:   map[string]string{"Website URL": "url", "Status": "text"},
			},
		},
	}

	report := MarkdownReport(analysis)

	for _, want := range []string{
		"# Google Spreadsheet Structure Analysis",
		"**Spreadsheet:** Outreach Tracker",
		"| A | Website URL | url | https://a.example |",
		"| B | Status | text | pending |",
		"- **Websites**: 2 columns, 100 rows",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{0, "A"}, {1, "B"}, {25, "Z"}, {26, "AA"}, {27, "AB"},
	}
	for _, tt := range tests {
		if got := columnLetter(tt.col); got != tt.want {
			t.Errorf("columnLetter(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}
