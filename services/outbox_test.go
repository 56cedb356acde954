package services

import (
	"testing"
	"time"
)

func TestNextAttemptBackoff(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		attempts int
		want     time.Duration
	}{
		{1, time.Minute},
		{2, 2 * time.Minute},
		{3, 4 * time.Minute},
		{4, 8 * time.Minute},
	}

	for _, tc := range cases {
		got := NextAttempt(now, tc.attempts)
		if got.Sub(now) != tc.want {
			t.Errorf("NextAttempt after %d attempts = +%v, want +%v", tc.attempts, got.Sub(now), tc.want)
		}
	}
}
