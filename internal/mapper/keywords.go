package mapper

import (
	"strings"

	"github.com/foxzi/sheetboard/internal/sheets"
)

// KeywordData is one keyword research entry. KeywordsList is derived from
// the raw comma-separated cell.
type KeywordData struct {
	ID           int      `json:"id"`
	Date         string   `json:"date"`
	Keywords     string   `json:"keywords"`
	KeywordsList []string `json:"keywordsList"`
}

// Keywords maps raw records to keyword entries. Rows missing either date
// or keywords are excluded; surviving rows are renumbered.
func Keywords(records []sheets.Record) []KeywordData {
	out := make([]KeywordData, 0, len(records))
	for _, r := range records {
		date := r.Get("date")
		raw := r.Get("keywords")
		if date == "" || raw == "" {
			continue
		}

		out = append(out, KeywordData{
			ID:           len(out) + 1,
			Date:         date,
			Keywords:     raw,
			KeywordsList: SplitKeywords(raw),
		})
	}
	return out
}

// SplitKeywords splits a comma-separated keyword cell, trimming each
// fragment and dropping empty ones.
func SplitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			list = append(list, k)
		}
	}
	return list
}
