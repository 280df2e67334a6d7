package mapper

import "github.com/foxzi/sheetboard/internal/sheets"

// EmailData is one outreach email. DateSent is nil until the email has
// actually gone out.
type EmailData struct {
	ID       int     `json:"id"`
	Email    string  `json:"email"`
	Website  string  `json:"website"`
	Status   string  `json:"status"`
	DateSent *string `json:"dateSent"`
	Response string  `json:"response"`
	Subject  string  `json:"subject"`
}

// Emails maps raw records to outreach emails. Rows are never dropped.
func Emails(records []sheets.Record) []EmailData {
	out := make([]EmailData, 0, len(records))
	for i, r := range records {
		var dateSent *string
		if v := r.Get("date_sent"); v != "" {
			dateSent = &v
		}

		out = append(out, EmailData{
			ID:       i + 1,
			Email:    r.Get("email"),
			Website:  r.Get("website"),
			Status:   field{keys: []string{"status"}, fallback: "pending"}.pick(r),
			DateSent: dateSent,
			Response: field{keys: []string{"response"}, fallback: "none"}.pick(r),
			Subject:  r.Get("subject"),
		})
	}
	return out
}
