package models

import (
	"time"
)

// AuditAction names an admin mutation recorded in the audit trail.
type AuditAction string

const (
	AuditPropertyCreate        AuditAction = "property.create"
	AuditPropertyUpdate        AuditAction = "property.update"
	AuditPropertyDelete        AuditAction = "property.delete"
	AuditPropertyBlock         AuditAction = "property.block"
	AuditPropertyUnblock       AuditAction = "property.unblock"
	AuditPropertyVerifyPayment AuditAction = "property.verify-payment"
	AuditPropertyBook          AuditAction = "property.book"
	AuditPropertyCancelBooking AuditAction = "property.cancel-booking"
	AuditAppointmentSchedule   AuditAction = "appointment.schedule"
	AuditAppointmentCancel     AuditAction = "appointment.cancel"
	AuditAppointmentStatus     AuditAction = "appointment.status"
	AuditPaymentVerify         AuditAction = "payment.verify"
	AuditTestimonialStatus     AuditAction = "testimonial.status"
	AuditTestimonialDelete     AuditAction = "testimonial.delete"
	AuditUserDelete            AuditAction = "user.delete"
	AuditFormDelete            AuditAction = "form.delete"
)

// AuditLog is one entry in the back-office audit trail. Before and after
// snapshots are stored as JSON so the activity feed can diff mutations.
type AuditLog struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	AdminUserID  uint        `json:"adminUserID" gorm:"index;not null"`
	Action       AuditAction `json:"action" gorm:"size:64;index"`
	ResourceType string      `json:"resourceType" gorm:"size:64;index"`
	ResourceID   uint        `json:"resourceID" gorm:"index"`
	BeforeJSON   string      `json:"beforeJSON" gorm:"type:text"`
	AfterJSON    string      `json:"afterJSON" gorm:"type:text"`
	IPAddress    string      `json:"ipAddress" gorm:"size:64"`
	CreatedAt    time.Time   `json:"createdAt"`
}
