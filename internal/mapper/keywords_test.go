package mapper

import (
	"reflect"
	"testing"

	"github.com/foxzi/sheetboard/internal/sheets"
)

func TestKeywords(t *testing.T) {
	records := []sheets.Record{
		{ID: 1, Fields: map[string]string{"date": "2024-01-01", "keywords": "SEO, gaming, outreach"}},
		{ID: 2, Fields: map[string]string{"date": "", "keywords": "dropped"}},
		{ID: 3, Fields: map[string]string{"date": "2024-01-02", "keywords": ""}},
		{ID: 4, Fields: map[string]string{"date": "2024-01-03", "keywords": " tech , , blogs "}},
	}

	got := Keywords(records)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (incomplete rows dropped)", len(got))
	}

	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("IDs = %d, %d, want renumbered over survivors", got[0].ID, got[1].ID)
	}

	wantList := []string{"SEO", "gaming", "outreach"}
	if !reflect.DeepEqual(got[0].KeywordsList, wantList) {
		t.Errorf("KeywordsList = %v, want %v", got[0].KeywordsList, wantList)
	}
	if got[0].Keywords != "SEO, gaming, outreach" {
		t.Errorf("Keywords = %q, raw string must be preserved", got[0].Keywords)
	}

	wantList = []string{"tech", "blogs"}
	if !reflect.DeepEqual(got[1].KeywordsList, wantList) {
		t.Errorf("KeywordsList = %v, want trimmed %v without empty fragments", got[1].KeywordsList, wantList)
	}
}

func TestAnalytics(t *testing.T) {
	records := []sheets.Record{
		{ID: 1, Fields: map[string]string{
			"date":         "2024-02-01",
			"requests":     "100",
			"delivered":    "95",
			"bounces":      "5",
			"opens":        "40",
			"unique_opens": "30",
			"clicks":       "12",
			"unique_clicks": "9",
			"spam_reports": "1",
			"unsubscribes": "2",
			"blocks":       "0",
		}},
		{ID: 2, Fields: map[string]string{"requests": "50"}}, // no date
	}

	got := Analytics(records)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (dateless row dropped)", len(got))
	}

	a := got[0]
	if a.Requests != 100 || a.Delivered != 95 || a.UniqueOpens != 30 || a.UniqueClicks != 9 {
		t.Errorf("counters = %+v", a)
	}
	if a.ID != 1 {
		t.Errorf("ID = %d, want 1", a.ID)
	}
}

func TestDashboardMetrics(t *testing.T) {
	records := []sheets.Record{
		{ID: 1, Fields: map[string]string{"metric": "Total Websites", "value": "128", "last_updated": "2024-02-01"}},
		{ID: 2, Fields: map[string]string{"metric": "Orphan", "value": ""}},
		{ID: 3, Fields: map[string]string{"value": "9"}},
	}

	got := DashboardMetrics(records)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Metric != "Total Websites" || got[0].Value != "128" {
		t.Errorf("metric = %+v", got[0])
	}
}
