package application

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/stoik/phishing-detector/internal/domain"
)

// ErrInvalidRequest is returned when a request is rejected before analysis
var ErrInvalidRequest = errors.New("invalid request")

// AnalyzeRequest is a single email submitted for scoring
type AnalyzeRequest struct {
	Sender      string   `json:"sender"`
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments"`
}

// Validate rejects requests with a blank sender, subject or body
func (r AnalyzeRequest) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"sender", r.Sender},
		{"subject", r.Subject},
		{"body", r.Body},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidRequest, f.field)
		}
	}
	return nil
}

// AnalyzeResponse is the scored outcome of an AnalyzeRequest
type AnalyzeResponse struct {
	Sender         string                  `json:"sender"`
	Subject        string                  `json:"subject"`
	BodyLength     int                     `json:"body_length"`
	Links          []string                `json:"links"`
	Attachments    []string                `json:"attachments"`
	FinalScore     int                     `json:"final_score"`
	AssessmentTier domain.Assessment       `json:"assessment_tier"`
	Assessment     string                  `json:"assessment"`
	EscalationTier domain.EscalationTier   `json:"escalation_tier"`
	Multiplier     domain.MultiplierRule   `json:"multiplier"`
	Scores         map[domain.Category]int `json:"scores"`
	Findings       []domain.Finding        `json:"findings"`
	Cached         bool                    `json:"cached"`
}

func newAnalyzeResponse(req AnalyzeRequest, result domain.CompositeResult, links, attachments []string) *AnalyzeResponse {
	return &AnalyzeResponse{
		Sender:         req.Sender,
		Subject:        req.Subject,
		BodyLength:     utf8.RuneCountInString(req.Body),
		Links:          uniqueLinks(links),
		Attachments:    append([]string{}, attachments...),
		FinalScore:     result.FinalScore,
		AssessmentTier: result.Assessment,
		Assessment:     result.Assessment.Description(),
		EscalationTier: result.Escalation,
		Multiplier:     result.Multiplier,
		Scores:         result.Scores,
		Findings:       result.Findings,
	}
}

// uniqueLinks drops repeated links, keeping first-occurrence order
func uniqueLinks(links []string) []string {
	seen := make(map[string]bool, len(links))
	unique := make([]string, 0, len(links))
	for _, link := range links {
		if seen[link] {
			continue
		}
		seen[link] = true
		unique = append(unique, link)
	}
	return unique
}
