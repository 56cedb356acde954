package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Testimonial struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email" gorm:"not null"`
	Phone   string `json:"phone"`
	Message string `json:"message" gorm:"type:text;not null"`
	Rating  int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5;index"`

	// nil = awaiting moderation, true/false = decided
	IsApproved *bool `json:"isApproved" gorm:"index"`

	ValidationMetadata ValidationMetadata `json:"validationMetadata" gorm:"embedded;embeddedPrefix:validation_"`
}

// ValidationMetadata records the gatekeeper verdict at submission time. An
// admin status update later does not recompute it.
type ValidationMetadata struct {
	AutoApproved   bool           `json:"autoApproved" gorm:"default:false;index"`
	QualityScore   int            `json:"qualityScore"`
	FailedChecks   datatypes.JSON `json:"failedChecks"`
	ApprovalReason string         `json:"approvalReason"`
	ValidatedAt    time.Time      `json:"validatedAt"`
}
