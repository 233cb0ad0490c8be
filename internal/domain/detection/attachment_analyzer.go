package detection

import (
	"fmt"
	"strings"

	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stoik/phishing-detector/internal/lexicon"
)

// AttachmentAnalyzer detects dangerous attachment types
//
// Attack pattern: malicious attachments are the #1 malware delivery method
type AttachmentAnalyzer struct{}

// NewAttachmentAnalyzer creates a new attachment type analyzer
func NewAttachmentAnalyzer() *AttachmentAnalyzer {
	return &AttachmentAnalyzer{}
}

// Name returns the analyzer name
func (a *AttachmentAnalyzer) Name() string {
	return "Suspicious Attachments"
}

// Category returns the attachment category
func (a *AttachmentAnalyzer) Category() domain.Category {
	return domain.CategoryAttachment
}

// Analyze returns the maximum per-attachment score, 0 when nothing is attached
func (a *AttachmentAnalyzer) Analyze(email domain.Email, context *DetectionContext) domain.DetectionResult {
	highest := 0
	indicators := make([]string, 0)

	for _, name := range email.Attachments {
		filename := strings.ToLower(name)
		score := 0

		// HIGH RISK: executables and scripts run arbitrary code.
		// MEDIUM RISK: macro documents and archives hide payloads.
		if ext, ok := firstSuffix(filename, context.list(lexicon.HighRiskExtensions)); ok {
			score = 80
			indicators = append(indicators, fmt.Sprintf("Attachment %s has a high-risk extension (%s)", name, ext))
		} else if ext, ok := firstSuffix(filename, context.list(lexicon.MediumRiskExtensions)); ok {
			score = 40
			indicators = append(indicators, fmt.Sprintf("Attachment %s has a medium-risk extension (%s)", name, ext))
		}

		// Double extension trick, e.g. invoice.pdf.exe
		if hasDoubleExtension(filename) {
			score += 15
			indicators = append(indicators, fmt.Sprintf("Attachment %s uses a double extension", name))
		}

		highest = max(highest, score)
	}

	return newResult(a.Category(), highest, indicators)
}
