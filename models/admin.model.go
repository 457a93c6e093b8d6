package models

import (
	"time"

	"gorm.io/gorm"
)

// BankAdmin is a bank-scoped administrator account
type BankAdmin struct {
	gorm.Model
	FullName     string     `gorm:"not null" json:"full_name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string     `gorm:"default:''" json:"phone"`
	PasswordHash string     `gorm:"not null" json:"-"`
	BankID       uint       `gorm:"not null;index" json:"bank_id"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`

	BankName string `gorm:"-" json:"bank_name,omitempty"`
}

// BranchAdmin is a branch-scoped administrator account created by a bank admin
type BranchAdmin struct {
	gorm.Model
	FullName     string     `gorm:"not null" json:"full_name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string     `gorm:"default:''" json:"phone"`
	PasswordHash string     `gorm:"not null" json:"-"`
	BankID       uint       `gorm:"not null;index" json:"bank_id"`
	BranchID     uint       `gorm:"not null;index" json:"branch_id"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`

	BankName   string `gorm:"-" json:"bank_name,omitempty"`
	BranchName string `gorm:"-" json:"branch_name,omitempty"`
}
