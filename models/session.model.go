package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Appraisal session statuses
const (
	SessionStatusInProgress      = "in_progress"
	SessionStatusPurityCompleted = "purity_completed"
	SessionStatusCompleted       = "completed"
)

// AppraisalSession accumulates workflow data keyed by an opaque session id.
// Each stage writes its own JSON blob; later stages key everything by
// SessionID.
type AppraisalSession struct {
	gorm.Model
	SessionID          string         `gorm:"uniqueIndex;not null" json:"session_id"`
	Status             string         `gorm:"type:varchar(32);default:'in_progress'" json:"status"`
	AppraiserData      datatypes.JSON `json:"appraiser_data"`
	CustomerFrontImage string         `gorm:"type:text;default:''" json:"customer_front_image"`
	CustomerSideImage  string         `gorm:"type:text;default:''" json:"customer_side_image"`
	RBICompliance      datatypes.JSON `json:"rbi_compliance"`
	JewelleryItems     datatypes.JSON `json:"jewellery_items"`
	TotalItems         int            `gorm:"default:0" json:"total_items"`
	PurityResults      datatypes.JSON `json:"purity_results"`
	GPSData            datatypes.JSON `json:"gps_data"`
	BankID             *uint          `gorm:"index" json:"bank_id"`
	BranchID           *uint          `gorm:"index" json:"branch_id"`
}
