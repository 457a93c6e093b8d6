package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DayHours is the open/close window for one weekday. Empty strings mean closed.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OperationalHours holds per-weekday open/close windows
type OperationalHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

// Branch belongs to exactly one Bank
type Branch struct {
	gorm.Model
	BankID           uint                                  `gorm:"not null;index" json:"bank_id"`
	Bank             Bank                                  `gorm:"foreignKey:BankID" json:"-"`
	BranchCode       string                                `gorm:"not null" json:"branch_code"`
	BranchName       string                                `gorm:"not null" json:"branch_name"`
	BranchAddress    string                                `gorm:"default:''" json:"branch_address"`
	BranchCity       string                                `gorm:"default:''" json:"branch_city"`
	BranchState      string                                `gorm:"default:''" json:"branch_state"`
	BranchPincode    string                                `gorm:"default:''" json:"branch_pincode"`
	ContactEmail     string                                `gorm:"default:''" json:"contact_email"`
	ContactPhone     string                                `gorm:"default:''" json:"contact_phone"`
	ManagerName      string                                `gorm:"default:''" json:"manager_name"`
	Latitude         float64                               `json:"latitude"`
	Longitude        float64                               `json:"longitude"`
	OperationalHours datatypes.JSONType[OperationalHours]  `json:"operational_hours"`
	IsActive         bool                                  `gorm:"default:true" json:"is_active"`

	// Populated from joins, not stored
	BankName string `gorm:"-" json:"bank_name,omitempty"`
}
