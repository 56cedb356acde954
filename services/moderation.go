package services

import (
	"regexp"
	"strings"

	"golang.org/x/exp/slices"
)

// Auto-approval criteria for submitted testimonials. A testimonial publishes
// without human moderation only when every check passes.
const (
	minMessageLength  = 20
	maxMessageLength  = 500
	minAutoRating     = 4
	maxAutoRating     = 5
	maxCapsPercentage = 0.3
	minUniqueWords    = 5
	minNameLength     = 2
	maxNameLength     = 50
)

var spamKeywords = []string{
	"spam", "fake", "test", "check", "verify", "click here",
	"buy now", "free money", "make money fast", "work from home",
	"earn money", "get rich", "lottery", "winner", "prize",
}

var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://\S+`),                                   // URLs
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), // email addresses
	regexp.MustCompile(`\b\d{10,}\b`),                                    // long numbers (phone/ID)
	regexp.MustCompile(`\b[A-Z]{5,}\b`),                                  // all caps words
}

var trustedEmailDomains = []string{
	"gmail.com", "yahoo.com", "hotmail.com", "outlook.com",
	"icloud.com", "protonmail.com", "aol.com",
}

// Check names, in evaluation order. These are stable identifiers stored in
// validation metadata and surfaced to the admin panel.
const (
	CheckLength     = "length"
	CheckRating     = "rating"
	CheckSpamFree   = "spamFree"
	CheckNoPatterns = "noSuspiciousPatterns"
	CheckEmail      = "trustedEmail"
	CheckCaps       = "capsPercentage"
	CheckUnique     = "uniqueWords"
	CheckName       = "validName"
)

// TestimonialInput is the subset of a testimonial the gatekeeper inspects.
type TestimonialInput struct {
	Name    string
	Email   string
	Message string
	Rating  int
}

// ApprovalDecision is the gatekeeper verdict for one submission.
type ApprovalDecision struct {
	AutoApprove  bool
	Reason       string
	Score        int
	FailedChecks []string
}

// ShouldAutoApprove runs the eight quality checks and approves only when all
// of them pass. It is a pure function: no I/O, no clock beyond the caller's.
func ShouldAutoApprove(t TestimonialInput) ApprovalDecision {
	checks := []struct {
		name string
		pass bool
	}{
		{CheckLength, len(t.Message) >= minMessageLength && len(t.Message) <= maxMessageLength},
		{CheckRating, t.Rating >= minAutoRating && t.Rating <= maxAutoRating},
		{CheckSpamFree, !containsSpamKeywords(t.Message)},
		{CheckNoPatterns, !hasSuspiciousPatterns(t.Message)},
		{CheckEmail, isTrustedEmailDomain(t.Email)},
		{CheckCaps, capsPercentage(t.Message) <= maxCapsPercentage},
		{CheckUnique, uniqueWordCount(t.Message) >= minUniqueWords},
		{CheckName, validName(t.Name)},
	}

	decision := ApprovalDecision{}
	for _, c := range checks {
		if c.pass {
			decision.Score++
		} else {
			decision.FailedChecks = append(decision.FailedChecks, c.name)
		}
	}

	if len(decision.FailedChecks) == 0 {
		decision.AutoApprove = true
		decision.Reason = "High-quality testimonial meets all criteria"
	} else {
		decision.Reason = "Manual review required: Failed checks - " + strings.Join(decision.FailedChecks, ", ")
	}

	return decision
}

// AutoApprovalConfig is the criteria dump exposed to the admin panel.
func AutoApprovalConfig() map[string]interface{} {
	return map[string]interface{}{
		"minLength":           minMessageLength,
		"maxLength":           maxMessageLength,
		"minRating":           minAutoRating,
		"maxRating":           maxAutoRating,
		"spamKeywords":        spamKeywords,
		"trustedEmailDomains": trustedEmailDomains,
		"maxCapsPercentage":   maxCapsPercentage,
		"minUniqueWords":      minUniqueWords,
	}
}

func isTrustedEmailDomain(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	return slices.Contains(trustedEmailDomains, domain)
}

func containsSpamKeywords(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range spamKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func hasSuspiciousPatterns(message string) bool {
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(message) {
			return true
		}
	}
	return false
}

func capsPercentage(message string) float64 {
	totalLetters := 0
	capsLetters := 0
	for _, r := range message {
		switch {
		case r >= 'A' && r <= 'Z':
			totalLetters++
			capsLetters++
		case r >= 'a' && r <= 'z':
			totalLetters++
		}
	}
	if totalLetters == 0 {
		return 0
	}
	return float64(capsLetters) / float64(totalLetters)
}

var nonWordChars = regexp.MustCompile(`[^\w\s]`)

func uniqueWordCount(message string) int {
	cleaned := nonWordChars.ReplaceAllString(strings.ToLower(message), "")
	seen := map[string]struct{}{}
	for _, word := range strings.Fields(cleaned) {
		if len(word) > 2 {
			seen[word] = struct{}{}
		}
	}
	return len(seen)
}

func validName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len(trimmed) >= minNameLength && len(trimmed) <= maxNameLength
}
