package models

import "testing"

// The action column is varchar(64) and the activity feed groups on the
// resource prefix, so every action must be short and unique.
func TestAuditActions(t *testing.T) {
	actions := []AuditAction{
		AuditPropertyCreate, AuditPropertyUpdate, AuditPropertyDelete,
		AuditPropertyBlock, AuditPropertyUnblock, AuditPropertyVerifyPayment,
		AuditPropertyBook, AuditPropertyCancelBooking,
		AuditAppointmentSchedule, AuditAppointmentCancel, AuditAppointmentStatus,
		AuditPaymentVerify,
		AuditTestimonialStatus, AuditTestimonialDelete,
		AuditUserDelete, AuditFormDelete,
	}

	seen := make(map[AuditAction]bool, len(actions))
	for _, action := range actions {
		if action == "" || len(action) > 64 {
			t.Errorf("action %q must be non-empty and fit the column", action)
		}
		if seen[action] {
			t.Errorf("duplicate action %q", action)
		}
		seen[action] = true
	}
}
