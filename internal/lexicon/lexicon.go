package lexicon

import (
	"strings"

	"go.uber.org/zap"
)

// Name identifies one of the word lists consumed by the detectors
type Name string

const (
	PhishingKeywords     Name = "phishing_keywords"
	SuspiciousDomains    Name = "suspicious_domains"
	LegitimateDomains    Name = "legitimate_domains"
	HighRiskExtensions   Name = "high_risk_extensions"
	MediumRiskExtensions Name = "medium_risk_extensions"
)

// Names lists every lexicon list in load order
var Names = []Name{
	PhishingKeywords,
	SuspiciousDomains,
	LegitimateDomains,
	HighRiskExtensions,
	MediumRiskExtensions,
}

// Provider supplies raw lexicon lists
//
// Implementations return an error when a list is unavailable. The error never
// reaches the detectors: Load turns it into an empty, not-loaded list.
type Provider interface {
	Load(name Name) ([]string, error)
}

// Lexicon holds the normalized word lists shared by every analysis
//
// A Lexicon is immutable once built and safe for concurrent reads.
type Lexicon struct {
	lists  map[Name][]string
	loaded map[Name]bool
}

// New creates a fully-loaded lexicon from in-memory lists
//
// Names missing from the map are recorded as loaded and empty.
func New(lists map[Name][]string) *Lexicon {
	lex := &Lexicon{
		lists:  make(map[Name][]string, len(Names)),
		loaded: make(map[Name]bool, len(Names)),
	}
	for _, name := range Names {
		lex.lists[name] = normalize(lists[name])
		lex.loaded[name] = true
	}
	return lex
}

// Load reads every list from the provider and logs a diagnostic per list
func Load(provider Provider, logger *zap.Logger) *Lexicon {
	lex := &Lexicon{
		lists:  make(map[Name][]string, len(Names)),
		loaded: make(map[Name]bool, len(Names)),
	}

	for _, name := range Names {
		raw, err := provider.Load(name)
		if err != nil {
			logger.Warn("lexicon list unavailable, rules depending on it are disabled",
				zap.String("list", string(name)),
				zap.Error(err))
			lex.lists[name] = []string{}
			lex.loaded[name] = false
			continue
		}

		entries := normalize(raw)
		lex.lists[name] = entries
		lex.loaded[name] = true

		if len(entries) == 0 {
			logger.Warn("lexicon list loaded empty",
				zap.String("list", string(name)))
			continue
		}
		logger.Info("lexicon list loaded",
			zap.String("list", string(name)),
			zap.Int("entries", len(entries)))
	}

	return lex
}

// List returns the entries of a list, lower-cased and in source order
func (l *Lexicon) List(name Name) []string {
	if l == nil {
		return nil
	}
	return l.lists[name]
}

// Loaded reports whether a list was supplied by its provider.
// An empty list that loaded successfully is still Loaded.
func (l *Lexicon) Loaded(name Name) bool {
	if l == nil {
		return false
	}
	return l.loaded[name]
}

// Size returns the number of entries in a list
func (l *Lexicon) Size(name Name) int {
	return len(l.List(name))
}

// normalize trims and lower-cases entries, dropping blanks and # comments
func normalize(raw []string) []string {
	entries := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, strings.ToLower(line))
	}
	return entries
}
