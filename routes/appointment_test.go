package routes

import (
	"strings"
	"testing"
	"time"

	"buildestate-server/models"

	"golang.org/x/exp/slices"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{models.AppointmentPending, models.AppointmentConfirmed, true},
		{models.AppointmentPending, models.AppointmentCancelled, true},
		{models.AppointmentPending, models.AppointmentCompleted, false},
		{models.AppointmentConfirmed, models.AppointmentCompleted, true},
		{models.AppointmentConfirmed, models.AppointmentCancelled, true},
		{models.AppointmentConfirmed, models.AppointmentPending, false},
		{models.AppointmentCancelled, models.AppointmentPending, false},
		{models.AppointmentCancelled, models.AppointmentConfirmed, false},
		{models.AppointmentCompleted, models.AppointmentCancelled, false},
		{models.AppointmentCompleted, models.AppointmentConfirmed, false},
		{"unknown", models.AppointmentConfirmed, false},
		{models.AppointmentPending, "unknown", false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// A confirmed, visited, unpaid appointment must stay on the upcoming list no
// matter how old its date is; the date cutoff only applies to the
// pending/confirmed branch.
func TestUpcomingFilterKeepsVisitedUnpaid(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cond, args := upcomingFilter(today)

	if !strings.Contains(cond, "visited = ?") || !strings.Contains(cond, "payment_status <> ?") {
		t.Fatalf("upcoming filter lost the visited-unpaid branch: %q", cond)
	}
	if !strings.Contains(cond, " OR ") {
		t.Fatalf("upcoming filter must be two alternatives, got %q", cond)
	}

	statuses, ok := args[0].([]string)
	if !ok || !slices.Contains(statuses, models.AppointmentPending) || !slices.Contains(statuses, models.AppointmentConfirmed) {
		t.Fatalf("unexpected dated-branch statuses: %v", args[0])
	}
	if args[2] != models.AppointmentConfirmed || args[3] != true {
		t.Fatalf("visited-unpaid branch must match confirmed+visited, got %v, %v", args[2], args[3])
	}
	if args[4] != models.PaymentCompleted {
		t.Fatalf("visited-unpaid branch must exclude completed payments, got %v", args[4])
	}
}

// The date clause of the past filter only captures paid appointments. An
// unpaid one with a past date is not over; it belongs to upcoming.
func TestPastFilterDateBranchRequiresPayment(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cond, args := pastFilter(today)

	if !strings.Contains(cond, "date < ? AND payment_status = ?") {
		t.Fatalf("past filter date branch must require a completed payment: %q", cond)
	}

	statuses, ok := args[0].([]string)
	if !ok {
		t.Fatalf("expected status list, got %v", args[0])
	}
	for _, s := range []string{models.AppointmentCompleted, models.AppointmentCancelled} {
		if !slices.Contains(statuses, s) {
			t.Errorf("terminal status %s missing from past filter", s)
		}
	}
	if slices.Contains(statuses, models.AppointmentPending) || slices.Contains(statuses, models.AppointmentConfirmed) {
		t.Errorf("past filter must not blanket-include open statuses: %v", statuses)
	}
	if args[2] != models.PaymentCompleted {
		t.Fatalf("date branch payment status must be completed, got %v", args[2])
	}
}
