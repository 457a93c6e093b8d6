package models

import (
	"gorm.io/gorm"
)

// Appraiser is a registered appraiser identity used by the facial
// identification flow. The face embedding lives in the recognition sidecar;
// the encoding column mirrors it for export and migration.
type Appraiser struct {
	gorm.Model
	Name                string `gorm:"not null" json:"name"`
	AppraiserCode       string `gorm:"uniqueIndex;not null" json:"appraiser_id"`
	Email               string `gorm:"default:''" json:"email"`
	Phone               string `gorm:"default:''" json:"phone"`
	Bank                string `gorm:"default:''" json:"bank"`
	Branch              string `gorm:"default:''" json:"branch"`
	Department          string `gorm:"default:''" json:"department"`
	Certification       string `gorm:"default:''" json:"certification"`
	ImageData           string `gorm:"type:text;default:''" json:"image_data"`
	FaceEncoding        string `gorm:"type:text;default:''" json:"-"`
	RegisteredAt        string `gorm:"default:''" json:"timestamp"`
	AppraisalsCompleted int    `gorm:"default:0" json:"appraisals_completed"`
}
