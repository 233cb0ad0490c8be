package lexicon

import (
	"embed"
	"fmt"
)

//go:embed defaults/*.txt
var defaults embed.FS

// EmbeddedProvider serves the default lists compiled into the binary
type EmbeddedProvider struct{}

// NewEmbeddedProvider creates a provider over the built-in lists
func NewEmbeddedProvider() *EmbeddedProvider {
	return &EmbeddedProvider{}
}

// Load reads a built-in list
func (p *EmbeddedProvider) Load(name Name) ([]string, error) {
	data, err := defaults.ReadFile("defaults/" + string(name) + ".txt")
	if err != nil {
		return nil, fmt.Errorf("no built-in lexicon list %q: %w", name, err)
	}
	return splitLines(data)
}
