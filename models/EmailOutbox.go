package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// EmailOutbox decouples user-facing requests from SMTP availability. Handlers
// enqueue a row; the dispatcher delivers it with retry and backoff and records
// the outcome.
type EmailOutbox struct {
	gorm.Model
	To            string     `json:"to" gorm:"not null"`
	Subject       string     `json:"subject" gorm:"not null"`
	Body          string     `json:"body" gorm:"type:text"`
	Status        string     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Attempts      int        `json:"attempts" gorm:"default:0"`
	NextAttemptAt time.Time  `json:"nextAttemptAt" gorm:"index"`
	LastError     string     `json:"lastError" gorm:"type:text"`
	SentAt        *time.Time `json:"sentAt"`
}
