package lexicon

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// DirectoryProvider reads lists from <dir>/<name>.txt, one entry per line
type DirectoryProvider struct {
	dir string
}

// NewDirectoryProvider creates a provider rooted at dir
func NewDirectoryProvider(dir string) *DirectoryProvider {
	return &DirectoryProvider{dir: dir}
}

// Load reads a single list file
func (p *DirectoryProvider) Load(name Name) ([]string, error) {
	path := filepath.Join(p.dir, string(name)+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}
	return splitLines(data)
}

// splitLines returns the raw lines of a list file, normalization happens in Load
func splitLines(data []byte) ([]string, error) {
	lines := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan lexicon lines: %w", err)
	}
	return lines, nil
}
