package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordResetToken is a single-use reset credential for an admin account.
// Only the SHA-256 hash of the token is stored; the raw token travels in the
// emailed reset link.
type PasswordResetToken struct {
	gorm.Model
	Email     string    `gorm:"index;not null" json:"email"`
	UserType  string    `gorm:"type:varchar(16);not null" json:"user_type"` // bank_admin | branch_admin
	TokenHash string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
}
