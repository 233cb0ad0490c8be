package detection

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stoik/phishing-detector/internal/lexicon"
)

// LinkAnalyzer detects insecure, raw-IP, throwaway and lookalike links
//
// Each link is scored on its own; the detector score is the highest link score.
type LinkAnalyzer struct{}

// NewLinkAnalyzer creates a new link analyzer
func NewLinkAnalyzer() *LinkAnalyzer {
	return &LinkAnalyzer{}
}

// Name returns the analyzer name
func (a *LinkAnalyzer) Name() string {
	return "Suspicious Links"
}

// Category returns the link category
func (a *LinkAnalyzer) Category() domain.Category {
	return domain.CategoryLink
}

// Analyze returns the maximum per-link score, 0 when the email has no links
func (a *LinkAnalyzer) Analyze(email domain.Email, context *DetectionContext) domain.DetectionResult {
	highest := 0
	indicators := make([]string, 0)

	for _, link := range email.Links {
		score, found := a.scoreLink(link, context)
		highest = max(highest, score)
		indicators = append(indicators, found...)
	}

	return newResult(a.Category(), highest, indicators)
}

// scoreLink scores a single link and lists what it matched
func (a *LinkAnalyzer) scoreLink(link string, context *DetectionContext) (int, []string) {
	score := 0
	indicators := make([]string, 0)

	if strings.HasPrefix(link, "http:") {
		score += 25
		indicators = append(indicators, fmt.Sprintf("Link %s uses unsecured HTTP", link))
	}

	if ipv4Pattern.MatchString(link) {
		score += 50
		indicators = append(indicators, fmt.Sprintf("Link %s points at an IP address instead of a domain name", link))
	}

	authority, ok := extractAuthority(link)
	if !ok {
		// Unparsable links are a signal of their own
		score += 20
		indicators = append(indicators, fmt.Sprintf("Link %s is malformed", link))
		return score, indicators
	}
	lowerAuthority := strings.ToLower(authority)

	if suspicious, ok := firstContained(lowerAuthority, context.list(lexicon.SuspiciousDomains)); ok {
		score += 25
		indicators = append(indicators, fmt.Sprintf("Link %s contains known suspicious domain %s", link, suspicious))
	}

	// Substring based: short legitimate entries can flag unrelated hosts
	for _, legitimate := range context.list(lexicon.LegitimateDomains) {
		if legitimate == "" || !strings.Contains(lowerAuthority, legitimate) {
			continue
		}
		if lowerAuthority != legitimate && !strings.HasSuffix(lowerAuthority, "."+legitimate) {
			score += 40
			indicators = append(indicators, fmt.Sprintf("Link %s may be mimicking %s", link, legitimate))
			break
		}
	}

	if utf8.RuneCountInString(authority) > 30 {
		score += 10
		indicators = append(indicators, fmt.Sprintf("Link %s has an unusually long domain name", link))
	}

	if count := countSpecialCharacters(link); count > 5 {
		score += 15
		indicators = append(indicators, fmt.Sprintf("Link %s contains %d special characters", link, count))
	}

	return score, indicators
}

// countSpecialCharacters counts runes outside letters, digits and :/.-
func countSpecialCharacters(link string) int {
	count := 0
	for _, r := range link {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ':', r == '/', r == '.', r == '-':
		default:
			count++
		}
	}
	return count
}
