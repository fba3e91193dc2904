// Package ignore matches repository paths against allow-list patterns in
// gitignore syntax, using go-git's gitignore engine.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// RepoIgnoreFile holds extra repository-level patterns
const RepoIgnoreFile = ".iconcheckignore"

// Matcher reports whether a repository-relative path is covered by a pattern
type Matcher struct {
	matcher  gitignore.Matcher
	patterns []string
}

// NewMatcher creates a matcher with layered patterns:
// 1. the configured patterns (e.g. "/dist/", "node_modules/")
// 2. .iconcheckignore at the repository root, when present
func NewMatcher(repoRoot string, patterns []string) (*Matcher, error) {
	var all []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			all = append(all, p)
		}
	}

	repoPatterns, err := readIgnoreFile(filepath.Join(repoRoot, RepoIgnoreFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", RepoIgnoreFile, err)
	}
	all = append(all, repoPatterns...)

	parsed := make([]gitignore.Pattern, 0, len(all))
	for _, p := range all {
		parsed = append(parsed, gitignore.ParsePattern(p, nil))
	}

	return &Matcher{
		matcher:  gitignore.NewMatcher(parsed),
		patterns: all,
	}, nil
}

// Patterns returns the effective patterns in evaluation order
func (m *Matcher) Patterns() []string {
	return append([]string(nil), m.patterns...)
}

// readIgnoreFile reads patterns from a text file (like .iconcheckignore)
func readIgnoreFile(path string) ([]string, error) {
	cleaned := filepath.Clean(path)
	if filepath.Base(cleaned) != RepoIgnoreFile {
		return nil, fmt.Errorf("disallowed ignore file path: %s", cleaned)
	}
	content, err := os.ReadFile(cleaned) // #nosec G304 -- path cleaned and allowlisted
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// Match checks a slash-separated repository-relative path
func (m *Matcher) Match(relPath string, isDir bool) bool {
	parts := splitPath(filepath.ToSlash(relPath))
	if len(parts) == 0 {
		return false
	}
	return m.matcher.Match(parts, isDir)
}

// splitPath converts a slash-separated path into components for go-git matching
func splitPath(path string) []string {
	if path == "" || path == "." {
		return []string{}
	}

	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}
