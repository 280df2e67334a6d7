package sheets

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Record is one sheet row keyed by normalized column names. ID is the
// 1-based row position within the fetch; it is not stable across refreshes
// if row order changes.
type Record struct {
	ID     int
	Fields map[string]string
}

// Get returns the value for a normalized field key, or "" if absent
func (r Record) Get(key string) string {
	return r.Fields[key]
}

// NormalizeHeader converts a header cell into a field key: lowercased,
// whitespace runs collapsed to single underscores. An empty header stays
// empty; its column still occupies its position.
func NormalizeHeader(h string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(h), "_")
}

// Records converts raw sheet values into records. The first row is the
// header row; remaining rows map cell values to normalized keys. Rows
// shorter than the header are padded with empty strings. Duplicate headers
// collapse, last column wins.
func Records(values [][]string) []Record {
	if len(values) == 0 {
		return []Record{}
	}

	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		headers[i] = NormalizeHeader(h)
	}

	records := make([]Record, 0, len(values)-1)
	for i, row := range values[1:] {
		fields := make(map[string]string, len(headers))
		for j, key := range headers {
			if j < len(row) {
				fields[key] = row[j]
			} else {
				fields[key] = ""
			}
		}
		records = append(records, Record{ID: i + 1, Fields: fields})
	}
	return records
}
