package detection

import (
	"testing"

	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBodyAnalyzer_Extract(t *testing.T) {
	analyzer := NewBodyAnalyzer()

	tests := []struct {
		name                string
		body                string
		attachments         []string
		expectedLinks       []string
		expectedAttachments []string
	}{
		{
			name:                "Links kept in order with duplicates",
			body:                "Open https://example.com/a and www.example.org then https://example.com/a again",
			expectedLinks:       []string{"https://example.com/a", "www.example.org", "https://example.com/a"},
			expectedAttachments: []string{},
		},
		{
			name:                "Raw IP link",
			body:                "Please verify your password at http://192.168.1.5/login immediately.",
			expectedLinks:       []string{"http://192.168.1.5/login"},
			expectedAttachments: []string{},
		},
		{
			name:                "Mentioned attachment with recognized extension",
			body:                "See file report.zip, thanks",
			expectedLinks:       []string{},
			expectedAttachments: []string{"report.zip"},
		},
		{
			name:                "Mention already attached is not duplicated",
			body:                "Please open the attached invoice.pdf.",
			attachments:         []string{"invoice.pdf"},
			expectedLinks:       []string{},
			expectedAttachments: []string{"invoice.pdf"},
		},
		{
			name:                "Unrecognized extension is ignored",
			body:                "See attached notes.docx",
			expectedLinks:       []string{},
			expectedAttachments: []string{},
		},
		{
			name:                "Mention without extension is ignored",
			body:                "The document below explains everything",
			expectedLinks:       []string{},
			expectedAttachments: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := domain.NewEmail("alice@uncw.edu", "Hello", tt.body, tt.attachments)

			analyzer.Extract(email)

			assert.Equal(t, tt.expectedLinks, email.Links)
			assert.Equal(t, tt.expectedAttachments, email.Attachments)
		})
	}
}

func TestBodyAnalyzer_ExtractIsMonotonic(t *testing.T) {
	email := domain.NewEmail("alice@uncw.edu", "Hello", "attached setup.exe at https://example.com/x", []string{"a.pdf"})
	email.AddLink("https://preexisting.example")

	NewBodyAnalyzer().Extract(email)

	assert.Equal(t, []string{"https://preexisting.example", "https://example.com/x"}, email.Links)
	assert.Equal(t, []string{"a.pdf", "setup.exe"}, email.Attachments)
}

func TestBodyAnalyzer_Analyze(t *testing.T) {
	analyzer := NewBodyAnalyzer()
	context := testContext()

	tests := []struct {
		name          string
		body          string
		expectedScore int
	}{
		{
			name:          "Plain body",
			body:          "Hello team, notes from today.",
			expectedScore: 0,
		},
		{
			name:          "Generic salutation and account update",
			body:          "Dear Customer, your account needs updates.",
			expectedScore: 30,
		},
		{
			name:          "Formatting markers",
			body:          "Use _this_ and *that*",
			expectedScore: 5,
		},
		{
			name:          "Salutation match is case-sensitive",
			body:          "dear customer, hello",
			expectedScore: 0,
		},
		{
			name:          "Salutation must open the body",
			body:          "Hello. Dear Sir, ...",
			expectedScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := domain.NewEmail("alice@uncw.edu", "Hello", tt.body, nil)
			result := analyzer.Analyze(*email, context)

			assert.Equal(t, domain.CategoryBody, result.Category)
			assert.Equal(t, tt.expectedScore, result.Score)
			assert.Empty(t, email.Links, "Analyze must not extract")
		})
	}
}
