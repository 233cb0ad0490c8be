package detection

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stoik/phishing-detector/internal/lexicon"
)

// displayNameTLDs are the domain-like tokens looked for in a display name
var displayNameTLDs = []string{".com", ".org", ".net"}

// HeaderAnalyzer detects pressure tactics in the subject and display name spoofing
type HeaderAnalyzer struct{}

// NewHeaderAnalyzer creates a new subject and display name analyzer
func NewHeaderAnalyzer() *HeaderAnalyzer {
	return &HeaderAnalyzer{}
}

// Name returns the analyzer name
func (a *HeaderAnalyzer) Name() string {
	return "Subject and Display Name"
}

// Category returns the header category
func (a *HeaderAnalyzer) Category() domain.Category {
	return domain.CategoryHeader
}

// Analyze scores the subject line and the sender's display name
func (a *HeaderAnalyzer) Analyze(email domain.Email, context *DetectionContext) domain.DetectionResult {
	score := 0
	indicators := make([]string, 0)
	subject := email.Subject

	if keyword, ok := firstContained(strings.ToLower(subject), context.list(lexicon.PhishingKeywords)); ok {
		score += 15
		indicators = append(indicators, fmt.Sprintf("Subject contains phishing keyword %q", keyword))
	}

	if count := strings.Count(subject, "!"); count > 0 {
		score += 5 * count
		indicators = append(indicators, fmt.Sprintf("Subject contains %d exclamation marks", count))
	}

	if subject == strings.ToUpper(subject) && utf8.RuneCountInString(subject) > 10 {
		score += 20
		indicators = append(indicators, "Subject is written entirely in uppercase")
	}

	if displayName, senderDomain, ok := splitDisplayName(email.Sender); ok {
		lowerName := strings.ToLower(displayName)
		if containsAny(lowerName, displayNameTLDs) && !strings.Contains(lowerName, strings.ToLower(senderDomain)) {
			score += 40
			indicators = append(indicators, fmt.Sprintf("Display name %q names a domain other than %s", displayName, senderDomain))
		}
	}

	return newResult(a.Category(), score, indicators)
}

// splitDisplayName parses a "Name <local@domain>" sender.
// ok is false when the sender has no bracketed address or the address has no @.
func splitDisplayName(sender string) (displayName, senderDomain string, ok bool) {
	open := strings.Index(sender, "<")
	end := strings.Index(sender, ">")
	if open < 0 || end <= open {
		return "", "", false
	}

	address := strings.TrimSpace(sender[open+1 : end])
	at := strings.LastIndex(address, "@")
	if at < 0 {
		return "", "", false
	}

	return strings.TrimSpace(sender[:open]), address[at+1:], true
}
