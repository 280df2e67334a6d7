package mapper

import "github.com/foxzi/sheetboard/internal/sheets"

// WebsiteData is the summary row shown on the websites overview
type WebsiteData struct {
	ID              int    `json:"id"`
	URL             string `json:"url"`
	Title           string `json:"title"`
	Category        string `json:"category"`
	DateFound       string `json:"dateFound"`
	EmailsExtracted int    `json:"emailsExtracted"`
	Status          string `json:"status"`
}

// WebsiteDetailData carries the full contact-tracking columns
type WebsiteDetailData struct {
	ID            int    `json:"id"`
	URL           string `json:"url"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	DateFound     string `json:"dateFound"`
	ContactStatus string `json:"contactStatus"`
	ContactEmail  string `json:"contactEmail"`
	ContactName   string `json:"contactName"`
	SocialLinks   string `json:"socialLinks"`
	KeywordsUsed  string `json:"keywordsUsed"`
	Platform      string `json:"platform"`
}

var (
	websiteURL      = field{keys: []string{"website_url", "url", "website"}}
	websiteTitle    = field{keys: []string{"title", "name"}}
	websiteCategory = field{keys: []string{"keywords_used", "category"}, fallback: "Uncategorized"}
)

// Websites maps raw records to website summary rows. Rows are never
// dropped; missing fields get defaults.
func Websites(records []sheets.Record) []WebsiteData {
	out := make([]WebsiteData, 0, len(records))
	for i, r := range records {
		dateFound := field{keys: []string{"discovery_date", "date_found", "date"}, fallback: today()}

		extracted := 0
		if r.Get("contact_email") != "" {
			extracted = 1
		}

		out = append(out, WebsiteData{
			ID:              i + 1,
			URL:             websiteURL.pick(r),
			Title:           websiteTitle.pick(r),
			Category:        websiteCategory.pick(r),
			DateFound:       dateFound.pick(r),
			EmailsExtracted: extracted,
			Status:          NormalizeStatus(r.Get("contact_status")),
		})
	}
	return out
}

// WebsitesDetail maps raw records to the detail rows. Unlike the summary
// mapping, only the primary column names are consulted.
func WebsitesDetail(records []sheets.Record) []WebsiteDetailData {
	out := make([]WebsiteDetailData, 0, len(records))
	for i, r := range records {
		out = append(out, WebsiteDetailData{
			ID:            i + 1,
			URL:           r.Get("website_url"),
			Title:         r.Get("title"),
			Description:   truncate(r.Get("description"), 100) + "...",
			Category:      field{keys: []string{"keywords_used"}, fallback: "Uncategorized"}.pick(r),
			DateFound:     r.Get("discovery_date"),
			ContactStatus: field{keys: []string{"contact_status"}, fallback: "Pending"}.pick(r),
			ContactEmail:  r.Get("contact_email"),
			ContactName:   r.Get("contact_name"),
			SocialLinks:   r.Get("social_links"),
			KeywordsUsed:  r.Get("keywords_used"),
			Platform:      r.Get("platform"),
		})
	}
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
