package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

type Appointment struct {
	gorm.Model
	PropertyID uint     `json:"propertyId" gorm:"not null;index:idx_appointments_property_date"`
	Property   Property `json:"property" gorm:"foreignKey:PropertyID"`
	UserID     uint     `json:"userId" gorm:"not null;index:idx_appointments_user_date"`
	User       User     `json:"user" gorm:"foreignKey:UserID"`

	Date time.Time `json:"date" gorm:"not null;index:idx_appointments_property_date;index:idx_appointments_user_date"`
	Time string    `json:"time" gorm:"not null"`

	Status          string `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Visited         bool   `json:"visited" gorm:"default:false"`
	MeetingLink     string `json:"meetingLink"`
	MeetingPlatform string `json:"meetingPlatform" gorm:"type:varchar(20);default:'other'"` // zoom, google-meet, teams, other
	Notes           string `json:"notes" gorm:"type:text"`
	CancelReason    string `json:"cancelReason"`
	ReminderSent    bool   `json:"reminderSent" gorm:"default:false"`

	FeedbackRating  *int   `json:"feedbackRating"`
	FeedbackComment string `json:"feedbackComment" gorm:"type:text"`

	Payment AppointmentPayment `json:"payment" gorm:"embedded;embeddedPrefix:payment_"`
}

// AppointmentPayment is the deposit sub-record attached to an appointment.
// Status only moves to completed after the viewing was marked visited and the
// gateway signature checked out.
type AppointmentPayment struct {
	OrderID   string     `json:"orderId"`
	PaymentID string     `json:"paymentId"`
	Signature string     `json:"signature"`
	Amount    int64      `json:"amount"`
	Status    string     `json:"status" gorm:"type:varchar(20);default:'pending'"`
	PaidAt    *time.Time `json:"paidAt"`
}
