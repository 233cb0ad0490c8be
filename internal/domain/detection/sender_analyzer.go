package detection

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stoik/phishing-detector/internal/lexicon"
)

// senderPattern is a permissive local-part@domain check on the raw sender
var senderPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// SenderAnalyzer detects malformed, throwaway or lookalike sender addresses
type SenderAnalyzer struct{}

// NewSenderAnalyzer creates a new sender address analyzer
func NewSenderAnalyzer() *SenderAnalyzer {
	return &SenderAnalyzer{}
}

// Name returns the analyzer name
func (a *SenderAnalyzer) Name() string {
	return "Sender Address"
}

// Category returns the sender category
func (a *SenderAnalyzer) Category() domain.Category {
	return domain.CategorySender
}

// Analyze validates the sender address and scores its domain
//
// A sender that fails validation scores 50 and no other check runs. The check
// applies to the raw string, so "Name <addr>" senders land here too.
func (a *SenderAnalyzer) Analyze(email domain.Email, context *DetectionContext) domain.DetectionResult {
	if !senderPattern.MatchString(email.Sender) {
		return newResult(a.Category(), 50, []string{
			fmt.Sprintf("Sender %q is not a plain email address", email.Sender),
		})
	}

	score := 0
	indicators := make([]string, 0)
	senderDomain := email.Sender[strings.LastIndex(email.Sender, "@")+1:]
	lowerDomain := strings.ToLower(senderDomain)

	for _, suspicious := range context.list(lexicon.SuspiciousDomains) {
		if lowerDomain == suspicious || strings.HasSuffix(lowerDomain, "."+suspicious) {
			score += 60
			indicators = append(indicators, fmt.Sprintf("Sender domain %s is a known suspicious domain (%s)", senderDomain, suspicious))
			break
		}
	}

	// Digits often mark throwaway domains, e.g. 10minutemail.com
	if strings.ContainsAny(senderDomain, "0123456789") {
		score += 15
		indicators = append(indicators, fmt.Sprintf("Sender domain %s contains digits", senderDomain))
	}

	if utf8.RuneCountInString(senderDomain) > 30 {
		score += 10
		indicators = append(indicators, fmt.Sprintf("Sender domain %s is unusually long", senderDomain))
	}

	return newResult(a.Category(), score, indicators)
}
