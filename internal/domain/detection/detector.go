package detection

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stoik/phishing-detector/internal/lexicon"
)

// categoryWeights are percentages and must sum to 100
var categoryWeights = map[domain.Category]int{
	domain.CategorySender:     15,
	domain.CategoryHeader:     10,
	domain.CategoryBody:       5,
	domain.CategoryLink:       25,
	domain.CategoryContent:    25,
	domain.CategoryAttachment: 20,
}

// escalationTiers are evaluated high to low, first match wins
var escalationTiers = []struct {
	threshold int // max raw score across all detectors
	floor     int
	tier      domain.EscalationTier
}{
	{threshold: 85, floor: 75, tier: domain.EscalationCritical},
	{threshold: 70, floor: 60, tier: domain.EscalationHigh},
	{threshold: 50, floor: 45, tier: domain.EscalationElevated},
}

// Multipliers are expressed in tenths
const (
	factorNone                   = 10
	factorAttachmentAndSensitive = 14
	factorLinkAndSensitive       = 13
	factorDangerousAttachment    = 12
)

var (
	dangerousExtensions = []string{".exe", ".bat", ".js", ".vbs", ".scr", ".cmd"}
	sensitiveRequests   = []string{"password", "credit card", "social security", "bank account", "login", "verify your", "update your account"}
	suspiciousLinkWords = []string{"verify", "secure", "login", "account"}
)

// Detector scores emails by running every analyzer and combining their results
//
// Analysis runs in three phases with no back-edges:
//  1. Extraction: the body analyzer fills the email's links and attachments
//  2. Scoring: the five other analyzers run concurrently over a snapshot
//  3. Reduction: weighting, risk escalation and the combination multiplier
//
// A Detector holds no per-request state and is safe for concurrent use once
// its lexicon is loaded.
type Detector struct {
	extractor *BodyAnalyzer
	analyzers []Analyzer
	context   *DetectionContext
	logger    *zap.Logger
}

// NewDetector creates a new phishing detector with all six analyzers
func NewDetector(lex *lexicon.Lexicon, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		extractor: NewBodyAnalyzer(),
		analyzers: []Analyzer{
			NewSenderAnalyzer(),
			NewHeaderAnalyzer(),
			NewContentAnalyzer(),
			NewLinkAnalyzer(),
			NewAttachmentAnalyzer(),
		},
		context: NewDetectionContext(lex),
		logger:  logger,
	}
}

// AnalyzeEmail extracts links and attachments into the email, then scores it
func (d *Detector) AnalyzeEmail(email *domain.Email) domain.CompositeResult {
	// Phase 1: extraction must finish before anyone reads links or attachments
	d.extract(email)
	snapshot := domain.Email{
		Sender:      email.Sender,
		Subject:     email.Subject,
		Body:        email.Body,
		Links:       append([]string(nil), email.Links...),
		Attachments: append([]string(nil), email.Attachments...),
	}

	// Phase 2: body keeps its own score, the rest fan out
	results := make([]domain.DetectionResult, len(d.analyzers)+1)
	results[0] = d.run(d.extractor, snapshot)

	var g errgroup.Group
	for i, analyzer := range d.analyzers {
		g.Go(func() error {
			results[i+1] = d.run(analyzer, snapshot)
			return nil
		})
	}
	_ = g.Wait() // analyzers never return errors, panics are recovered in run

	// Phase 3
	composite := d.reduce(results, collectSignals(snapshot))

	d.logger.Debug("email analyzed",
		zap.Int("final_score", composite.FinalScore),
		zap.Int("weighted_score", composite.WeightedScore),
		zap.Any("scores", composite.Scores),
		zap.String("escalation_tier", string(composite.Escalation)),
		zap.String("multiplier", string(composite.Multiplier)),
		zap.String("assessment", string(composite.Assessment)))

	return composite
}

// extract runs the extraction phase, keeping whatever was appended before a failure
func (d *Detector) extract(email *domain.Email) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("extraction failed",
				zap.String("analyzer", d.extractor.Name()),
				zap.Any("panic", r))
		}
	}()
	d.extractor.Extract(email)
}

// run invokes one analyzer. A panicking analyzer scores 0 instead of aborting the analysis.
func (d *Detector) run(analyzer Analyzer, email domain.Email) (result domain.DetectionResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("analyzer failed",
				zap.String("analyzer", analyzer.Name()),
				zap.Any("panic", r))
			result = newResult(analyzer.Category(), 0, []string{
				fmt.Sprintf("%s analysis incomplete", analyzer.Name()),
			})
		}
	}()

	result = analyzer.Analyze(email, d.context)
	result.Category = analyzer.Category()
	result.Score = clampScore(result.Score)
	return result
}

// reduce combines raw detector results into the composite result
func (d *Detector) reduce(results []domain.DetectionResult, signals riskSignals) domain.CompositeResult {
	scores := make(map[domain.Category]int, len(domain.Categories))
	for _, category := range domain.Categories {
		scores[category] = 0
	}

	weightedSum := 0
	maxRaw := 0
	for _, result := range results {
		scores[result.Category] = result.Score
		weightedSum += result.Score * categoryWeights[result.Category]
		maxRaw = max(maxRaw, result.Score)
	}

	// Integer arithmetic keeps rounding exact: round half up on percentages
	weightedScore := (weightedSum + 50) / 100

	adjusted, tier := escalate(weightedScore, maxRaw)
	rule, factor := selectMultiplier(signals)
	finalScore := min(100, (adjusted*factor+5)/10)
	assessment := domain.AssessmentFor(finalScore)

	return domain.CompositeResult{
		FinalScore:    finalScore,
		WeightedScore: weightedScore,
		Scores:        scores,
		Results:       results,
		Escalation:    tier,
		Multiplier:    rule,
		Assessment:    assessment,
		Findings:      buildFindings(results),
	}
}

// escalate floors the weighted score when any raw score crosses a risk threshold
func escalate(weightedScore, maxRaw int) (int, domain.EscalationTier) {
	for _, t := range escalationTiers {
		if maxRaw >= t.threshold {
			return max(weightedScore, t.floor), t.tier
		}
	}
	return weightedScore, domain.EscalationNone
}

// riskSignals are raw email traits that combine into a multiplier
type riskSignals struct {
	dangerousAttachment bool
	sensitiveAsk        bool
	suspiciousLink      bool
}

// collectSignals inspects the post-extraction email for dangerous combinations
func collectSignals(email domain.Email) riskSignals {
	signals := riskSignals{
		sensitiveAsk: containsAny(strings.ToLower(email.Body), sensitiveRequests),
	}

	for _, attachment := range email.Attachments {
		lower := strings.ToLower(attachment)
		if _, ok := firstSuffix(lower, dangerousExtensions); ok || hasDoubleExtension(lower) {
			signals.dangerousAttachment = true
			break
		}
	}

	for _, link := range email.Links {
		lower := strings.ToLower(link)
		if containsAny(lower, suspiciousLinkWords) || ipv4Pattern.MatchString(lower) || !strings.HasPrefix(lower, "https") {
			signals.suspiciousLink = true
			break
		}
	}

	return signals
}

// selectMultiplier applies the first matching combination rule
//
// The second disjunct of the last rule is unreachable after the first two rules.
func selectMultiplier(s riskSignals) (domain.MultiplierRule, int) {
	switch {
	case s.dangerousAttachment && s.sensitiveAsk:
		return domain.MultiplierAttachmentAndSensitive, factorAttachmentAndSensitive
	case s.suspiciousLink && s.sensitiveAsk:
		return domain.MultiplierLinkAndSensitive, factorLinkAndSensitive
	case s.dangerousAttachment || (s.suspiciousLink && s.sensitiveAsk):
		return domain.MultiplierDangerousAttachment, factorDangerousAttachment
	default:
		return domain.MultiplierNone, factorNone
	}
}
