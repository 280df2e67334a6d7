package mapper

import (
	"testing"

	"github.com/foxzi/sheetboard/internal/sheets"
)

// rec builds a record for tests
func rec(fields map[string]string) sheets.Record {
	return sheets.Record{ID: 1, Fields: fields}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"email_sent", "processed"},
		{"EMAIL_SENT", "processed"},
		{"pending", "pending"},
		{"failed", "failed"},
		{"Contacted", "pending"},
		{"in progress", "pending"},
		{"", "pending"},
	}

	for _, tt := range tests {
		if got := NormalizeStatus(tt.raw); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFieldPick(t *testing.T) {
	r := rec(map[string]string{"url": "", "website": "b.example"})

	f := field{keys: []string{"website_url", "url", "website"}}
	if got := f.pick(r); got != "b.example" {
		t.Errorf("pick() = %q, want first non-empty candidate b.example", got)
	}

	f = field{keys: []string{"missing"}, fallback: "default"}
	if got := f.pick(r); got != "default" {
		t.Errorf("pick() = %q, want default", got)
	}
}

func TestPickInt(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		keys   []string
		want   int
	}{
		{"plain number", map[string]string{"sent": "42"}, []string{"emails_sent", "sent"}, 42},
		{"padded", map[string]string{"sent": " 7 "}, []string{"sent"}, 7},
		{"empty cell", map[string]string{"sent": ""}, []string{"sent"}, 0},
		{"junk", map[string]string{"sent": "n/a"}, []string{"sent"}, 0},
		{"negative clamps", map[string]string{"sent": "-3"}, []string{"sent"}, 0},
		{"missing", map[string]string{}, []string{"sent"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickInt(rec(tt.fields), tt.keys...); got != tt.want {
				t.Errorf("pickInt() = %d, want %d", got, tt.want)
			}
		})
	}
}
