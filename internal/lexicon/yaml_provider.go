package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLProvider serves lists from a single YAML document
//
// Example:
//
//	phishing_keywords:
//	  - verify your account
//	  - urgent
//	suspicious_domains:
//	  - malicious-login.biz
type YAMLProvider struct {
	lists map[string][]string
}

// NewYAMLProvider parses the bundle at path
func NewYAMLProvider(path string) (*YAMLProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon bundle: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML builds a provider from raw YAML
func ParseYAML(data []byte) (*YAMLProvider, error) {
	lists := make(map[string][]string)
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon bundle: %w", err)
	}
	return &YAMLProvider{lists: lists}, nil
}

// Load returns one list from the bundle
func (p *YAMLProvider) Load(name Name) ([]string, error) {
	entries, ok := p.lists[string(name)]
	if !ok {
		return nil, fmt.Errorf("lexicon list %q missing from bundle", name)
	}
	return entries, nil
}
