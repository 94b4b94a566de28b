package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
	ProviderGitHub   = "github"
)

type User struct {
	ID              uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email           string    `gorm:"uniqueIndex;not null"`
	Username        string    `gorm:"uniqueIndex;not null"`
	Password        string    // empty for OAuth users
	Provider        string    `gorm:"size:20;default:'password';index:idx_users_provider_subject"`
	ProviderSubject *string   `gorm:"size:255;index:idx_users_provider_subject"`
	FirstName       string
	LastName        string
	Avatar          string
	Role            string `gorm:"default:'user'"` // user, admin
	IsActive        bool   `gorm:"default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (User) TableName() string {
	return "users"
}

// IsOAuthUser true when the account was created through Google/GitHub
func (u *User) IsOAuthUser() bool {
	return u.Provider == ProviderGoogle || u.Provider == ProviderGitHub
}
