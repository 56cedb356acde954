package services

import (
	"testing"

	"golang.org/x/exp/slices"
)

func passingTestimonial() TestimonialInput {
	return TestimonialInput{
		Name:    "Ravi Kumar",
		Email:   "ravi.kumar@gmail.com",
		Rating:  5,
		Message: "The team helped us find our dream home quickly and the entire process was transparent and smooth from start to finish.",
	}
}

func TestShouldAutoApproveHighQuality(t *testing.T) {
	decision := ShouldAutoApprove(passingTestimonial())

	if !decision.AutoApprove {
		t.Fatalf("expected auto-approval, got failed checks %v", decision.FailedChecks)
	}
	if decision.Score != 8 {
		t.Fatalf("expected score 8, got %d", decision.Score)
	}
	if len(decision.FailedChecks) != 0 {
		t.Fatalf("expected no failed checks, got %v", decision.FailedChecks)
	}
}

func TestShouldAutoApproveLowRatingShortMessage(t *testing.T) {
	in := passingTestimonial()
	in.Rating = 2
	in.Message = "Good service."

	decision := ShouldAutoApprove(in)

	if decision.AutoApprove {
		t.Fatal("expected manual review")
	}
	for _, check := range []string{CheckLength, CheckRating, CheckUnique} {
		if !slices.Contains(decision.FailedChecks, check) {
			t.Errorf("expected %s in failed checks, got %v", check, decision.FailedChecks)
		}
	}
}

func TestShouldAutoApproveSingleCheckFlips(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*TestimonialInput)
		wantCheck string
	}{
		{
			name:      "rating below threshold",
			mutate:    func(in *TestimonialInput) { in.Rating = 3 },
			wantCheck: CheckRating,
		},
		{
			name:      "untrusted email domain",
			mutate:    func(in *TestimonialInput) { in.Email = "ravi@company.co.in" },
			wantCheck: CheckEmail,
		},
		{
			name: "embedded url",
			mutate: func(in *TestimonialInput) {
				in.Message = "The team helped us find our dream home quickly, see https://example.com for photos of the place."
			},
			wantCheck: CheckNoPatterns,
		},
		{
			name: "spam keyword",
			mutate: func(in *TestimonialInput) {
				in.Message = "The team helped us find our dream home quickly, no fake promises and the process felt honest throughout."
			},
			wantCheck: CheckSpamFree,
		},
		{
			name:      "name too short",
			mutate:    func(in *TestimonialInput) { in.Name = "R" },
			wantCheck: CheckName,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := passingTestimonial()
			tc.mutate(&in)

			decision := ShouldAutoApprove(in)
			if decision.AutoApprove {
				t.Fatal("expected manual review")
			}
			if len(decision.FailedChecks) != 1 || decision.FailedChecks[0] != tc.wantCheck {
				t.Fatalf("expected only %s to fail, got %v", tc.wantCheck, decision.FailedChecks)
			}
			if decision.Score != 7 {
				t.Fatalf("expected score 7, got %d", decision.Score)
			}
		})
	}
}

func TestCapsPercentage(t *testing.T) {
	if got := capsPercentage("abcd"); got != 0 {
		t.Fatalf("expected 0 for lowercase, got %f", got)
	}
	if got := capsPercentage("ABCD"); got != 1 {
		t.Fatalf("expected 1 for uppercase, got %f", got)
	}
	if got := capsPercentage("AbCd"); got != 0.5 {
		t.Fatalf("expected 0.5 for mixed, got %f", got)
	}
	if got := capsPercentage("1234 !!"); got != 0 {
		t.Fatalf("expected 0 for no letters, got %f", got)
	}
}

func TestUniqueWordCount(t *testing.T) {
	// Words of length <= 2 and repeats are discounted.
	if got := uniqueWordCount("the the THE an it go"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := uniqueWordCount("Lovely home, great area; great value overall!"); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
}

func TestAutoApprovalConfig(t *testing.T) {
	config := AutoApprovalConfig()
	for _, key := range []string{"minLength", "maxLength", "minRating", "maxRating", "spamKeywords", "trustedEmailDomains", "maxCapsPercentage", "minUniqueWords"} {
		if _, ok := config[key]; !ok {
			t.Errorf("missing config key %s", key)
		}
	}
}
