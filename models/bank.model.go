package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SystemConfiguration holds per-bank loan parameters
type SystemConfiguration struct {
	MaxLoanAmount    float64 `json:"max_loan_amount"`
	MinLoanAmount    float64 `json:"min_loan_amount"`
	LTVRatio         float64 `json:"ltv_ratio"`
	InterestRateMin  float64 `json:"interest_rate_min"`
	InterestRateMax  float64 `json:"interest_rate_max"`
	AppraisalTimeout int     `json:"appraisal_timeout_minutes"`
}

// TenantSettings holds per-bank feature flags
type TenantSettings struct {
	FacialRecognitionEnabled bool `json:"facial_recognition_enabled"`
	GPSRequired              bool `json:"gps_required"`
	RBIComplianceRequired    bool `json:"rbi_compliance_required"`
	PurityTestingRequired    bool `json:"purity_testing_required"`
	PhotoAuditEnabled        bool `json:"photo_audit_enabled"`
}

// Bank is the top-level tenant. One bank owns many branches.
type Bank struct {
	gorm.Model
	BankCode             string                                    `gorm:"uniqueIndex;not null" json:"bank_code"`
	BankName             string                                    `gorm:"not null" json:"bank_name"`
	BankShortName        string                                    `gorm:"default:''" json:"bank_short_name"`
	HeadquartersAddress  string                                    `gorm:"default:''" json:"headquarters_address"`
	ContactEmail         string                                    `gorm:"default:''" json:"contact_email"`
	ContactPhone         string                                    `gorm:"default:''" json:"contact_phone"`
	RBILicenseNumber     string                                    `gorm:"default:''" json:"rbi_license_number"`
	IsActive             bool                                      `gorm:"default:true" json:"is_active"`
	SystemConfiguration  datatypes.JSONType[SystemConfiguration]   `json:"system_configuration"`
	TenantSettings       datatypes.JSONType[TenantSettings]        `json:"tenant_settings"`
}
