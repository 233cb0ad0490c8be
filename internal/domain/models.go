package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category identifies one of the six detectors that score an email
type Category string

const (
	CategorySender     Category = "sender"
	CategoryHeader     Category = "header"
	CategoryBody       Category = "body"
	CategoryContent    Category = "content"
	CategoryLink       Category = "link"
	CategoryAttachment Category = "attachment"
)

// Categories lists every detector category in reporting order
var Categories = []Category{
	CategorySender,
	CategoryHeader,
	CategoryBody,
	CategoryContent,
	CategoryLink,
	CategoryAttachment,
}

// Email is the subject of a single analysis pass
//
// Links and Attachments are append-only while the analysis runs: the body
// extraction step adds to them, no detector ever removes an entry. Links may
// contain duplicates (one entry per occurrence in the body); attachments never
// hold the same literal filename twice.
type Email struct {
	Sender      string   `json:"sender"`
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	Links       []string `json:"links"`
	Attachments []string `json:"attachments"`
}

// NewEmail builds an email from caller-supplied fields
func NewEmail(sender, subject, body string, attachments []string) *Email {
	email := &Email{
		Sender:      sender,
		Subject:     subject,
		Body:        body,
		Links:       make([]string, 0),
		Attachments: make([]string, 0, len(attachments)),
	}
	for _, attachment := range attachments {
		email.AddAttachment(attachment)
	}
	return email
}

// AddLink appends a link, duplicates included
func (e *Email) AddLink(link string) {
	e.Links = append(e.Links, link)
}

// AddAttachment appends an attachment unless the same filename is already present.
// Returns true when the attachment was added.
func (e *Email) AddAttachment(name string) bool {
	for _, existing := range e.Attachments {
		if existing == name {
			return false
		}
	}
	e.Attachments = append(e.Attachments, name)
	return true
}

// DetectionResult is the raw output of a single detector
type DetectionResult struct {
	Category   Category `json:"category"`
	Score      int      `json:"score"`      // 0 to 100
	Indicators []string `json:"indicators"` // Human-readable specifics, e.g. a flagged domain
}

// EscalationTier names the risk floor applied to the weighted score
type EscalationTier string

const (
	EscalationNone     EscalationTier = "none"
	EscalationCritical EscalationTier = "critical" // max raw score >= 85, floor 75
	EscalationHigh     EscalationTier = "high"     // max raw score >= 70, floor 60
	EscalationElevated EscalationTier = "elevated" // max raw score >= 50, floor 45
)

// MultiplierRule names the combination multiplier applied to the escalated score
type MultiplierRule string

const (
	MultiplierNone                   MultiplierRule = "none"
	MultiplierAttachmentAndSensitive MultiplierRule = "dangerous_attachment_and_sensitive_request" // x1.4
	MultiplierLinkAndSensitive       MultiplierRule = "suspicious_link_and_sensitive_request"      // x1.3
	MultiplierDangerousAttachment    MultiplierRule = "dangerous_attachment"                       // x1.2
)

// Finding is one entry of the presentation-ready findings list
type Finding struct {
	Category   Category `json:"category"`
	Score      int      `json:"score"`
	Summary    string   `json:"summary"`
	Indicators []string `json:"indicators"`
}

// CompositeResult is the outcome of running every detector over an email
type CompositeResult struct {
	FinalScore    int               `json:"final_score"`    // 0 to 100
	WeightedScore int               `json:"weighted_score"` // Before escalation and multiplier
	Scores        map[Category]int  `json:"scores"`
	Results       []DetectionResult `json:"results"`
	Escalation    EscalationTier    `json:"escalation_tier"`
	Multiplier    MultiplierRule    `json:"multiplier"`
	Assessment    Assessment        `json:"assessment"`
	Findings      []Finding         `json:"findings"`
}

// Assessment is the categorical verdict derived from a final score
type Assessment string

const (
	AssessmentSafe       Assessment = "SAFE"
	AssessmentSuspicious Assessment = "SUSPICIOUS"
	AssessmentModerate   Assessment = "MODERATE"
	AssessmentHigh       Assessment = "HIGH"
)

// AssessmentFor converts a final score to its assessment tier
func AssessmentFor(score int) Assessment {
	switch {
	case score >= 60:
		return AssessmentHigh
	case score >= 40:
		return AssessmentModerate
	case score >= 15:
		return AssessmentSuspicious
	default:
		return AssessmentSafe
	}
}

// Description returns the human-readable sentence for an assessment
func (a Assessment) Description() string {
	switch a {
	case AssessmentHigh:
		return "This email is HIGHLY SUSPICIOUS and likely a phishing attempt. Do not click links, download attachments, or respond with personal information."
	case AssessmentModerate:
		return "This email is MODERATELY SUSPICIOUS and may be a phishing attempt. Verify before taking any action."
	case AssessmentSuspicious:
		return "This email has SOME SUSPICIOUS elements but is likely legitimate. Proceed with caution."
	default:
		return "This email appears to be SAFE. No significant phishing indicators detected."
	}
}

// Submission represents an email received for analysis by the batch pipeline
//
// Simplification: only the fields the detectors read are kept. Raw MIME and
// full header sets stay with the source that produced the submission.
type Submission struct {
	ID          uuid.UUID  `json:"id"`
	Source      string     `json:"source"`
	SourceRef   string     `json:"source_ref"` // e.g. file name or message ID within the source
	Sender      string     `json:"sender"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	Attachments []string   `json:"attachments,omitempty"`
	ReceivedAt  time.Time  `json:"received_at"`
	IngestedAt  time.Time  `json:"ingested_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// Analysis is the persisted outcome of analyzing one submission
type Analysis struct {
	ID           uuid.UUID        `json:"id"`
	SubmissionID uuid.UUID        `json:"submission_id"`
	FinalScore   int              `json:"final_score"`
	Assessment   Assessment       `json:"assessment"`
	Escalation   EscalationTier   `json:"escalation_tier"`
	Multiplier   MultiplierRule   `json:"multiplier"`
	Scores       map[Category]int `json:"scores"`
	Findings     []Finding        `json:"findings"`
	Links        []string         `json:"links"`
	Attachments  []string         `json:"attachments"`
	AnalyzedAt   time.Time        `json:"analyzed_at"`

	// Sender and Subject are read back from the submission for summaries, not stored twice
	Sender  string `json:"sender,omitempty"`
	Subject string `json:"subject,omitempty"`
}

// CachedAnalysis is a composite result together with the email collections it was computed from
type CachedAnalysis struct {
	Result      CompositeResult `json:"result"`
	Links       []string        `json:"links"`
	Attachments []string        `json:"attachments"`
	CachedAt    time.Time       `json:"cached_at"`
}

// Alert is published when a submission is assessed as highly suspicious
type Alert struct {
	AnalysisID   uuid.UUID  `json:"analysis_id"`
	SubmissionID uuid.UUID  `json:"submission_id"`
	Source       string     `json:"source"`
	Sender       string     `json:"sender"`
	Subject      string     `json:"subject"`
	FinalScore   int        `json:"final_score"`
	Assessment   Assessment `json:"assessment"`
	Findings     []Finding  `json:"findings"`
	RaisedAt     time.Time  `json:"raised_at"`
}
