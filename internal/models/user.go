package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles.
const (
	RoleOwner     = "owner"
	RoleManager   = "manager"
	RoleCaretaker = "caretaker"
	RoleViewer    = "viewer"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:'owner'"`
	Active       bool   `gorm:"default:false"`
}

// UserVerificationToken is a one-shot email verification token. Issuing a new
// token for a user marks all of that user's prior unused tokens used.
type UserVerificationToken struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index"`
	Token     string `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// Consumed reports whether the token has already been used.
func (t *UserVerificationToken) Consumed() bool {
	return t.UsedAt != nil
}

// Expired reports whether the token expiry has passed at the given instant.
func (t *UserVerificationToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
