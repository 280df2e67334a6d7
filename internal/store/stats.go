package store

import (
	"fmt"
	"strings"

	"github.com/foxzi/sheetboard/internal/mapper"
)

// Stats are the aggregate numbers the dashboard cards display. Rates are
// formatted with one decimal for display.
type Stats struct {
	TotalWebsites   int `json:"totalWebsites"`
	WithEmail       int `json:"withEmail"`
	EmailsSent      int `json:"emailsSent"`
	PendingContacts int `json:"pendingContacts"`

	TotalEmailsSent int    `json:"totalEmailsSent"`
	TotalOpened     int    `json:"totalOpened"`
	TotalClicked    int    `json:"totalClicked"`
	TotalResponded  int    `json:"totalResponded"`
	OpenRate        string `json:"openRate"`
	ClickRate       string `json:"clickRate"`
	ResponseRate    string `json:"responseRate"`

	KeywordEntries int `json:"keywordEntries"`
	TotalKeywords  int `json:"totalKeywords"`
}

// ComputeStats derives the dashboard aggregates from the collections
func ComputeStats(websites []mapper.WebsiteDetailData, keywords []mapper.KeywordData, campaigns []mapper.CampaignData) Stats {
	st := Stats{TotalWebsites: len(websites), KeywordEntries: len(keywords)}

	for _, w := range websites {
		if strings.TrimSpace(w.ContactEmail) != "" {
			st.WithEmail++
		}
		switch strings.ToLower(w.ContactStatus) {
		case "email_sent":
			st.EmailsSent++
		case "pending":
			st.PendingContacts++
		}
	}

	for _, c := range campaigns {
		st.TotalEmailsSent += c.EmailsSent
		st.TotalOpened += c.Opened
		st.TotalClicked += c.Clicked
		st.TotalResponded += c.Responded
	}
	st.OpenRate = rate(st.TotalOpened, st.TotalEmailsSent)
	st.ClickRate = rate(st.TotalClicked, st.TotalEmailsSent)
	st.ResponseRate = rate(st.TotalResponded, st.TotalEmailsSent)

	for _, k := range keywords {
		st.TotalKeywords += len(k.KeywordsList)
	}

	return st
}

// FilterWebsites applies the dashboard's search and status filtering.
// search matches url, title, contact email or contact name, case
// insensitive; status "all" or "" matches everything.
func FilterWebsites(websites []mapper.WebsiteDetailData, search, status string) []mapper.WebsiteDetailData {
	search = strings.ToLower(strings.TrimSpace(search))
	status = strings.ToLower(strings.TrimSpace(status))

	out := make([]mapper.WebsiteDetailData, 0, len(websites))
	for _, w := range websites {
		if search != "" &&
			!strings.Contains(strings.ToLower(w.URL), search) &&
			!strings.Contains(strings.ToLower(w.Title), search) &&
			!strings.Contains(strings.ToLower(w.ContactEmail), search) &&
			!strings.Contains(strings.ToLower(w.ContactName), search) {
			continue
		}
		if status != "" && status != "all" && strings.ToLower(w.ContactStatus) != status {
			continue
		}
		out = append(out, w)
	}
	return out
}

func rate(part, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}
