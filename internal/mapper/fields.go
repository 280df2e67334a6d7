// Package mapper transforms normalized sheet records into the typed
// collections the dashboard serves. Mapping is policy, not I/O: each
// logical field tries an ordered list of candidate source columns, first
// non-empty wins, else a stated default. Numeric parsing is best effort
// and never drops a row.
package mapper

import (
	"strconv"
	"strings"
	"time"

	"github.com/foxzi/sheetboard/internal/sheets"
)

// field is one logical field's mapping rule: candidate source keys in
// priority order plus the default used when all candidates are empty.
type field struct {
	keys     []string
	fallback string
}

func (f field) pick(r sheets.Record) string {
	for _, k := range f.keys {
		if v := r.Get(k); v != "" {
			return v
		}
	}
	return f.fallback
}

// pickInt resolves candidates like pick and parses the winner as a
// non-negative integer. Unparseable or negative input yields 0.
func pickInt(r sheets.Record, keys ...string) int {
	for _, k := range keys {
		v := strings.TrimSpace(r.Get(k))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
	return 0
}

// NormalizeStatus maps a raw contact status onto the fixed vocabulary.
// Anything unrecognized is pending.
func NormalizeStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "email_sent":
		return "processed"
	case "failed":
		return "failed"
	default:
		return "pending"
	}
}

// today is the date default for rows without one
func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
