package domain

import "time"

// Lead is an append-only record of a form submission. Rows are never
// mutated or deleted by this service.
type Lead struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
	Phone       string    `gorm:"not null" json:"phone"`
	City        string    `gorm:"not null" json:"city"`
	Summary     string    `gorm:"not null" json:"summary"`
	Consent     bool      `json:"consent"`
	UtmSource   string    `json:"utm_source"`
	UtmMedium   string    `json:"utm_medium"`
	UtmCampaign string    `json:"utm_campaign"`
	UtmTerm     string    `json:"utm_term"`
	UtmContent  string    `json:"utm_content"`
	Gclid       string    `json:"gclid"`
}

func (Lead) TableName() string { return "leads" }
