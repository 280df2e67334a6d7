package api

import "github.com/foxzi/sheetboard/internal/mapper"

// Fallback payloads served when the spreadsheet is unreachable. The
// campaign and email feeds keep the dashboard demo-usable offline; the
// remaining feeds degrade to empty lists.

func fallbackCampaigns() []mapper.CampaignData {
	return []mapper.CampaignData{
		{
			ID:          1,
			Name:        "Tech Outreach Q1",
			Status:      "active",
			EmailsSent:  250,
			Opened:      85,
			Clicked:     42,
			Responded:   18,
			DateCreated: "2024-01-01",
		},
		{
			ID:          2,
			Name:        "Gaming Industry Campaign",
			Status:      "active",
			EmailsSent:  180,
			Opened:      62,
			Clicked:     28,
			Responded:   12,
			DateCreated: "2024-01-10",
		},
	}
}

func fallbackEmails() []mapper.EmailData {
	sent := "2024-01-15"
	return []mapper.EmailData{
		{
			ID:       1,
			Email:    "tech@company1.com",
			Website:  "company1.com",
			Status:   "sent",
			DateSent: &sent,
			Response: "pending",
			Subject:  "Partnership Opportunity",
		},
		{
			ID:       2,
			Email:    "info@startup2.com",
			Website:  "startup2.com",
			Status:   "pending",
			DateSent: nil,
			Response: "none",
			Subject:  "Collaboration Proposal",
		},
	}
}
