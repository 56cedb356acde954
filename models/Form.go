package models

import "gorm.io/gorm"

// Form is a contact-form message left by a site visitor.
type Form struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email" gorm:"not null;index"`
	Phone   string `json:"phone"`
	Message string `json:"message" gorm:"type:text;not null"`
}
