package domain

import "time"

// Route maps a city to one or more notification recipients. CityKey is the
// lowercased city name and is the conflict target for upserts, so the same
// city in any casing resolves to one row. Emails holds the de-duplicated
// recipient list joined with commas; it is never empty once stored.
type Route struct {
	CityKey   string    `gorm:"primaryKey"`
	City      string    `gorm:"not null"`
	Emails    string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Route) TableName() string { return "routes" }

// Setting is a single key/value pair. The only key in use is
// "default_email", the routing fallback recipient.
type Setting struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Setting) TableName() string { return "settings" }

const SettingDefaultEmail = "default_email"
