package dto

import "time"

type LeadRequest struct {
	Phone          string `json:"phone"`
	City           string `json:"city"`
	Summary        string `json:"summary"`
	Consent        bool   `json:"consent"`
	UtmSource      string `json:"utm_source"`
	UtmMedium      string `json:"utm_medium"`
	UtmCampaign    string `json:"utm_campaign"`
	UtmTerm        string `json:"utm_term"`
	UtmContent     string `json:"utm_content"`
	Gclid          string `json:"gclid"`
	TurnstileToken string `json:"turnstileToken"`
}

type LeadView struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Phone       string    `json:"phone"`
	City        string    `json:"city"`
	Summary     string    `json:"summary"`
	UtmSource   string    `json:"utm_source,omitempty"`
	UtmMedium   string    `json:"utm_medium,omitempty"`
	UtmCampaign string    `json:"utm_campaign,omitempty"`
	UtmTerm     string    `json:"utm_term,omitempty"`
	UtmContent  string    `json:"utm_content,omitempty"`
	Gclid       string    `json:"gclid,omitempty"`
}

type LeadListResponse struct {
	Leads []LeadView `json:"leads"`
}
