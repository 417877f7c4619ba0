package domain

import "time"

// User is an admin panel account. Usernames are normalized to lowercase
// before storage so uniqueness is case-insensitive. The superuser identity
// is configured externally and never appears in this table.
type User struct {
	ID        UserID    `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex:ux_users_username;not null" json:"username"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
