package detection

import (
	"testing"

	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHeaderAnalyzer_Analyze(t *testing.T) {
	analyzer := NewHeaderAnalyzer()
	context := testContext()

	tests := []struct {
		name          string
		sender        string
		subject       string
		expectedScore int
	}{
		{
			name:          "Neutral subject",
			sender:        "alice@uncw.edu",
			subject:       "Project meeting notes",
			expectedScore: 0,
		},
		{
			name:          "Keyword counts once plus six exclamation marks",
			sender:        "Bank <scam@malicious-login.biz>",
			subject:       "URGENT!!! Verify Your Account Now!!!",
			expectedScore: 45, // 15 + 6*5, mixed case
		},
		{
			name:          "All caps subject longer than ten characters",
			sender:        "alice@uncw.edu",
			subject:       "IMPORTANT NOTICE",
			expectedScore: 20,
		},
		{
			name:          "All caps but too short",
			sender:        "alice@uncw.edu",
			subject:       "HELLO",
			expectedScore: 0,
		},
		{
			name:          "Exclamation marks",
			sender:        "alice@uncw.edu",
			subject:       "Hi!!",
			expectedScore: 10,
		},
		{
			name:          "Display name names another domain",
			sender:        "PayPal.com Support <help@evil.org>",
			subject:       "Hello",
			expectedScore: 40,
		},
		{
			name:          "Display name matches address domain",
			sender:        "paypal.com <service@paypal.com>",
			subject:       "Hello",
			expectedScore: 0,
		},
		{
			name:          "Brackets in wrong order are ignored",
			sender:        "weird.com > name < x@y.net",
			subject:       "Hello",
			expectedScore: 0,
		},
		{
			name:          "Exclamation marks are capped at 100",
			sender:        "alice@uncw.edu",
			subject:       "Act now!!!!!!!!!!!!!!!!!!!!!!!!!!",
			expectedScore: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(domain.Email{Sender: tt.sender, Subject: tt.subject}, context)

			assert.Equal(t, domain.CategoryHeader, result.Category)
			assert.Equal(t, tt.expectedScore, result.Score)
		})
	}
}

func TestSplitDisplayName(t *testing.T) {
	name, senderDomain, ok := splitDisplayName("Bank <scam@malicious-login.biz>")
	assert.True(t, ok)
	assert.Equal(t, "Bank", name)
	assert.Equal(t, "malicious-login.biz", senderDomain)

	_, _, ok = splitDisplayName("Bank <no-address>")
	assert.False(t, ok)

	_, _, ok = splitDisplayName("plain@example.com")
	assert.False(t, ok)
}
