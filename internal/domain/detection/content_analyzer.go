package detection

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stoik/phishing-detector/internal/lexicon"
)

var (
	// sensitiveInfoPatterns tolerate case changes and inserted whitespace
	sensitiveInfoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(password|passcode)\b`),
		regexp.MustCompile(`(?i)\b(credit\s*card|card\s*number)\b`),
		regexp.MustCompile(`(?i)\b(bank\s*account)\b`),
		regexp.MustCompile(`(?i)\b(login|sign\s*in)\b`),
		regexp.MustCompile(`(?i)\b(verify your)\b`),
	}

	uppercaseRunPattern = regexp.MustCompile(`[A-Z]{10,}`)
)

// ContentAnalyzer detects phishing language and requests for sensitive information
type ContentAnalyzer struct{}

// NewContentAnalyzer creates a new content language analyzer
func NewContentAnalyzer() *ContentAnalyzer {
	return &ContentAnalyzer{}
}

// Name returns the analyzer name
func (a *ContentAnalyzer) Name() string {
	return "Phishing Language"
}

// Category returns the content category
func (a *ContentAnalyzer) Category() domain.Category {
	return domain.CategoryContent
}

// Analyze scores keywords in the subject and body, sensitive requests and shouting
func (a *ContentAnalyzer) Analyze(email domain.Email, context *DetectionContext) domain.DetectionResult {
	score := 0
	indicators := make([]string, 0)
	keywords := context.list(lexicon.PhishingKeywords)

	if keyword, ok := firstContained(strings.ToLower(email.Subject), keywords); ok {
		score += 20
		indicators = append(indicators, fmt.Sprintf("Subject contains phishing keyword %q", keyword))
	}

	// Each distinct keyword adds 8, up to 40
	matched := matchedKeywords(strings.ToLower(email.Body), keywords)
	score += min(40, len(matched)*8)
	for _, keyword := range matched {
		indicators = append(indicators, fmt.Sprintf("Body contains suspicious phrase %q", keyword))
	}

	for _, pattern := range sensitiveInfoPatterns {
		if found := pattern.FindString(email.Body); found != "" {
			score += 15
			indicators = append(indicators, fmt.Sprintf("Body requests sensitive information (%s)", found))
			break
		}
	}

	if count := strings.Count(email.Body, "!"); count > 3 {
		score += 10
		indicators = append(indicators, fmt.Sprintf("Body contains %d exclamation marks", count))
	}

	if run := uppercaseRunPattern.FindString(email.Body); run != "" {
		score += 10
		indicators = append(indicators, fmt.Sprintf("Body contains an all-caps run (%s)", run))
	}

	return newResult(a.Category(), score, indicators)
}
