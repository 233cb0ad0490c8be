package main

import (
	"fmt"
	"strings"

	"github.com/stoik/phishing-detector/internal/domain"
)

func printSummary(analyses []domain.Analysis) {
	if len(analyses) == 0 {
		fmt.Println("No suspicious submissions found")
		return
	}

	fmt.Printf("\n=== SECURITY ALERT: %d Suspicious Submissions ===\n", len(analyses))
	for i, analysis := range analyses {
		fmt.Printf("%d. From: %s | Subject: %s\n", i+1, analysis.Sender, analysis.Subject)
		fmt.Printf("   Score: %d (%s) | Escalation: %s | Multiplier: %s\n",
			analysis.FinalScore, analysis.Assessment, analysis.Escalation, analysis.Multiplier)
		fmt.Printf("   %s\n", analysis.Assessment.Description())
		for _, finding := range analysis.Findings {
			fmt.Printf("   - %s (score: %d): %s\n", finding.Summary, finding.Score, strings.Join(finding.Indicators, "; "))
		}
	}
	fmt.Println(strings.Repeat("=", 50))
}
