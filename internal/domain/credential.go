package domain

import "time"

type PasswordCredential struct {
	ID          CredentialID `gorm:"type:uuid;primaryKey"`
	UserID      UserID       `gorm:"type:uuid;uniqueIndex:ux_pwd_user"`
	Algo        string       `gorm:"not null"`
	Hash        []byte       `gorm:"not null"`
	Salt        []byte       `gorm:"not null"`
	ParamsJSON  []byte       `gorm:"not null"`
	PasswordVer int          `gorm:"not null;default:1"`
	CreatedAt   time.Time    `gorm:"not null"`
	UpdatedAt   time.Time    `gorm:"not null"`
}

func (PasswordCredential) TableName() string { return "password_credentials" }
