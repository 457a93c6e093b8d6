package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tenant user statuses
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusPending   = "pending"
	UserStatusTraining  = "training"
	UserStatusSuspended = "suspended"
)

// TenantUser is an appraiser or admin account scoped to a bank and
// optionally a branch
type TenantUser struct {
	gorm.Model
	UserCode     string                                   `gorm:"not null;index" json:"user_id"`
	FullName     string                                   `gorm:"not null" json:"full_name"`
	Email        string                                   `gorm:"default:''" json:"email"`
	Phone        string                                   `gorm:"default:''" json:"phone"`
	EmployeeID   string                                   `gorm:"default:''" json:"employee_id"`
	Designation  string                                   `gorm:"default:''" json:"designation"`
	Role         Role                                     `gorm:"type:varchar(32);default:'gold_appraiser'" json:"user_role"`
	Status       string                                   `gorm:"type:varchar(16);default:'active'" json:"status"`
	BankID       uint                                     `gorm:"not null;index" json:"bank_id"`
	BranchID     *uint                                    `gorm:"index" json:"branch_id"`
	FaceEncoding string                                   `gorm:"type:text;default:''" json:"-"`
	ImageData    string                                   `gorm:"type:text;default:''" json:"image_data,omitempty"`
	Permissions  datatypes.JSONType[PermissionOverrides]  `json:"permissions"`
	IsActive     bool                                     `gorm:"default:true" json:"is_active"`
	LastLogin    *time.Time                               `json:"last_login"`

	// Populated from joins, not stored
	BankName   string `gorm:"-" json:"bank_name,omitempty"`
	BranchName string `gorm:"-" json:"branch_name,omitempty"`
}
