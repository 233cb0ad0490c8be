package detection

import (
	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stoik/phishing-detector/internal/lexicon"
)

// Analyzer defines the interface that all phishing detectors must implement
//
// The set of analyzers is closed: the Detector weighs exactly one analyzer per
// domain.Category, so adding a variant means adding a category and a weight.
type Analyzer interface {
	// Analyze scores one facet of an email from 0 to 100 and reports what it matched.
	// It must not modify the email.
	Analyze(email domain.Email, context *DetectionContext) domain.DetectionResult

	// Category returns the category this analyzer scores
	Category() domain.Category

	// Name returns the human-readable name of this analyzer
	Name() string
}

// Extractor populates an email's links and attachments from its free text
//
// Extraction runs once, before any Analyzer reads the email.
type Extractor interface {
	Extract(email *domain.Email)
}

// DetectionContext provides shared context needed by multiple analyzers
type DetectionContext struct {
	// Lexicon holds the keyword, domain and extension lists.
	// It is read-only and shared across concurrent analyses.
	Lexicon *lexicon.Lexicon
}

// NewDetectionContext creates a new detection context over a loaded lexicon
func NewDetectionContext(lex *lexicon.Lexicon) *DetectionContext {
	return &DetectionContext{
		Lexicon: lex,
	}
}

// list returns a lexicon list, tolerating a context without a lexicon
func (c *DetectionContext) list(name lexicon.Name) []string {
	if c == nil {
		return nil
	}
	return c.Lexicon.List(name)
}
