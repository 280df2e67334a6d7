package mapper

import "github.com/foxzi/sheetboard/internal/sheets"

// CampaignData is one outreach campaign with its engagement counters
type CampaignData struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	EmailsSent  int    `json:"emailsSent"`
	Opened      int    `json:"opened"`
	Clicked     int    `json:"clicked"`
	Responded   int    `json:"responded"`
	DateCreated string `json:"dateCreated"`
}

var (
	campaignName   = field{keys: []string{"name", "campaign_name"}}
	campaignStatus = field{keys: []string{"status"}, fallback: "active"}
)

// Campaigns maps raw records to campaigns. Counter columns parse best
// effort; empty or junk cells become 0, rows are never dropped.
func Campaigns(records []sheets.Record) []CampaignData {
	out := make([]CampaignData, 0, len(records))
	for i, r := range records {
		dateCreated := field{keys: []string{"date_created", "date"}, fallback: today()}

		out = append(out, CampaignData{
			ID:          i + 1,
			Name:        campaignName.pick(r),
			Status:      campaignStatus.pick(r),
			EmailsSent:  pickInt(r, "emails_sent", "sent"),
			Opened:      pickInt(r, "opened", "opens"),
			Clicked:     pickInt(r, "clicked", "clicks"),
			Responded:   pickInt(r, "responded", "responses"),
			DateCreated: dateCreated.pick(r),
		})
	}
	return out
}
