package detection

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stoik/phishing-detector/internal/domain"
)

var (
	// urlPattern matches http, https and bare www. links followed by a domain-and-path tail
	urlPattern = regexp.MustCompile(`(https?://|www\.)[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_\+.~#?&//=]*)`)

	// attachmentMentionPattern matches a mention keyword followed by a short token, e.g. "attached invoice.pdf"
	attachmentMentionPattern = regexp.MustCompile(`(?i)(attached|attachment|file|document|pdf|doc|xlsx|zip)\s+([^\s,;:!?]{1,50})`)

	// mentionedExtensions are the extensions that turn a mention into an attachment
	mentionedExtensions = []string{".pdf", ".doc", ".xls", ".zip", ".exe"}

	genericSalutations = []string{
		"Dear Customer",
		"Dear User",
		"Dear Sir",
		"Dear Madam",
		"Dear Account Holder",
	}
)

// BodyAnalyzer extracts links and attachment mentions from the body and scores its phrasing
//
// Extract must run before any other analyzer reads the email: the link and
// attachment analyzers score the collections it fills.
type BodyAnalyzer struct{}

// NewBodyAnalyzer creates a new body extraction and phrasing analyzer
func NewBodyAnalyzer() *BodyAnalyzer {
	return &BodyAnalyzer{}
}

// Name returns the analyzer name
func (a *BodyAnalyzer) Name() string {
	return "Body Phrasing"
}

// Category returns the body category
func (a *BodyAnalyzer) Category() domain.Category {
	return domain.CategoryBody
}

// Extract appends every link found in the body, duplicates included, and every
// mentioned filename with a recognized extension that is not already attached
func (a *BodyAnalyzer) Extract(email *domain.Email) {
	for _, link := range urlPattern.FindAllString(email.Body, -1) {
		email.AddLink(link)
	}

	for _, match := range attachmentMentionPattern.FindAllStringSubmatch(email.Body, -1) {
		filename := strings.TrimRight(match[2], ".")
		if _, ok := firstSuffix(strings.ToLower(filename), mentionedExtensions); ok {
			email.AddAttachment(filename)
		}
	}
}

// Analyze scores the body's phrasing. It does not extract.
func (a *BodyAnalyzer) Analyze(email domain.Email, context *DetectionContext) domain.DetectionResult {
	score := 0
	indicators := make([]string, 0)
	body := email.Body

	if strings.Contains(body, "your account") && strings.Contains(body, "needs updates") {
		score += 15
		indicators = append(indicators, "Body claims your account needs updates")
	}

	// Leftover markdown-style emphasis markers from templated mass mail
	if strings.Contains(body, "_") && strings.Contains(body, "*") {
		score += 5
		indicators = append(indicators, "Body mixes _ and * formatting markers")
	}

	for _, salutation := range genericSalutations {
		if strings.HasPrefix(body, salutation) {
			score += 15
			indicators = append(indicators, fmt.Sprintf("Body opens with a generic salutation (%s)", salutation))
			break
		}
	}

	return newResult(a.Category(), score, indicators)
}
