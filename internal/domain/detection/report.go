package detection

import (
	"github.com/stoik/phishing-detector/internal/domain"
)

// findingSummaries are the per-category headlines shown with each finding
var findingSummaries = map[domain.Category]string{
	domain.CategorySender:     "Sender issues detected",
	domain.CategoryHeader:     "Subject line contains suspicious language",
	domain.CategoryBody:       "Body text uses common phishing phrasing",
	domain.CategoryContent:    "Content contains suspicious language or requests",
	domain.CategoryLink:       "Suspicious links detected",
	domain.CategoryAttachment: "Potentially dangerous attachments detected",
}

// buildFindings turns detector results into findings, in category order.
// Detectors that scored 0 produce no finding.
func buildFindings(results []domain.DetectionResult) []domain.Finding {
	byCategory := make(map[domain.Category]domain.DetectionResult, len(results))
	for _, result := range results {
		byCategory[result.Category] = result
	}

	findings := make([]domain.Finding, 0, len(results))
	for _, category := range domain.Categories {
		result, ok := byCategory[category]
		if !ok || result.Score == 0 {
			continue
		}
		findings = append(findings, domain.Finding{
			Category:   category,
			Score:      result.Score,
			Summary:    findingSummaries[category],
			Indicators: dedupe(result.Indicators),
		})
	}
	return findings
}

// dedupe keeps the first occurrence of each string
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if seen[value] {
			continue
		}
		seen[value] = true
		unique = append(unique, value)
	}
	return unique
}
