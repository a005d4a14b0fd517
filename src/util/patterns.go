package util

import (
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"codesage/src/config"
)

// ExclusionMatcher matches files and functions against exclusion patterns
type ExclusionMatcher struct {
	filePatterns     []string
	files            []string
	functionPatterns []*regexp.Regexp
}

// NewExclusionMatcher creates a new exclusion matcher from config
func NewExclusionMatcher(cfg config.ExclusionsConfig) *ExclusionMatcher {
	m := &ExclusionMatcher{
		filePatterns: cfg.FilePatterns,
		files:        cfg.Files,
	}

	for _, p := range cfg.FunctionPatterns {
		if re, err := regexp.Compile(p); err == nil {
			m.functionPatterns = append(m.functionPatterns, re)
		}
	}

	return m
}

// MatchesFile checks if a file should be excluded
func (m *ExclusionMatcher) MatchesFile(path string) bool {
	path = filepath.ToSlash(path)

	for _, f := range m.files {
		if path == filepath.ToSlash(f) {
			return true
		}
	}

	for _, pattern := range m.filePatterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}

	return false
}

// MatchesFunction checks if a function should be excluded by name
func (m *ExclusionMatcher) MatchesFunction(name string) bool {
	if name == "" {
		return false
	}
	for _, re := range m.functionPatterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Matches checks if an entity should be excluded
func (m *ExclusionMatcher) Matches(filePath, funcName string) bool {
	return m.MatchesFile(filePath) || m.MatchesFunction(funcName)
}
