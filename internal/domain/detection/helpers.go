package detection

import (
	"regexp"
	"strings"

	"github.com/stoik/phishing-detector/internal/domain"
)

// ipv4Pattern matches an IPv4-shaped substring anywhere in a string
var ipv4Pattern = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

// newResult caps the score at 100 and never returns nil indicators
func newResult(category domain.Category, score int, indicators []string) domain.DetectionResult {
	if indicators == nil {
		indicators = []string{}
	}
	return domain.DetectionResult{
		Category:   category,
		Score:      clampScore(score),
		Indicators: indicators,
	}
}

// clampScore bounds a score to [0, 100]
func clampScore(score int) int {
	return max(0, min(score, 100))
}

// containsAny checks if text contains any of the keywords
func containsAny(text string, keywords []string) bool {
	_, ok := firstContained(text, keywords)
	return ok
}

// firstContained returns the first keyword that text contains
func firstContained(text string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(text, keyword) {
			return keyword, true
		}
	}
	return "", false
}

// firstSuffix returns the first suffix that text ends with
func firstSuffix(text string, suffixes []string) (string, bool) {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(text, suffix) {
			return suffix, true
		}
	}
	return "", false
}

// matchedKeywords returns the distinct keywords that appear in text, in list order
func matchedKeywords(text string, keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	matched := make([]string, 0)
	for _, keyword := range keywords {
		if keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true
		if strings.Contains(text, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

// hasDoubleExtension reports whether a filename still contains a dot once its
// final extension is removed, e.g. invoice.pdf.exe
func hasDoubleExtension(filename string) bool {
	last := strings.LastIndex(filename, ".")
	if last <= 0 {
		return false
	}
	return strings.Contains(filename[:last], ".")
}

// extractAuthority returns the host part of a link: scheme stripped, path and
// port dropped. ok is false when nothing is left.
func extractAuthority(link string) (authority string, ok bool) {
	rest := link
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+len("://"):]
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.Index(rest, ":"); i >= 0 {
		rest = rest[:i]
	}
	return rest, rest != ""
}
