package detection

import (
	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stoik/phishing-detector/internal/lexicon"
)

// testLexicon returns a small fixed lexicon so scores do not drift with the default lists
func testLexicon() *lexicon.Lexicon {
	return lexicon.New(map[lexicon.Name][]string{
		lexicon.PhishingKeywords: {
			"urgent", "verify your account", "click here", "suspended",
			"your password", "act now", "wire transfer",
		},
		lexicon.SuspiciousDomains:    {"malicious-login.biz", "bit.ly"},
		lexicon.LegitimateDomains:    {"paypal.com", "google.com"},
		lexicon.HighRiskExtensions:   {".exe", ".scr", ".bat", ".js"},
		lexicon.MediumRiskExtensions: {".doc", ".zip", ".xls"},
	})
}

func testContext() *DetectionContext {
	return NewDetectionContext(testLexicon())
}

// scenarioA is a credential phish with a raw-IP link and a disguised executable
func scenarioA() *domain.Email {
	return domain.NewEmail(
		"Bank <scam@malicious-login.biz>",
		"URGENT!!! Verify Your Account Now!!!",
		"Dear Customer, we detected unusual activity. Please verify your password at http://192.168.1.5/login immediately.",
		[]string{"invoice.pdf.exe"},
	)
}

// scenarioB is an ordinary internal note
func scenarioB() *domain.Email {
	return domain.NewEmail("alice@uncw.edu", "Project meeting notes", "See attached notes.docx", nil)
}
