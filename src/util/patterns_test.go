package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codesage/src/config"
)

func TestExclusionMatcher_FilePatterns(t *testing.T) {
	m := NewExclusionMatcher(config.ExclusionsConfig{
		FilePatterns: []string{"**/vendor/**", "**/*_generated.go"},
		Files:        []string{"src/legacy/old.py"},
	})

	tests := []struct {
		path    string
		matches bool
	}{
		{"vendor/lib/a.go", true},
		{"pkg/vendor/lib/a.go", true},
		{"pkg/model/types_generated.go", true},
		{"src/legacy/old.py", true},
		{"src/app/main.go", false},
		{"vendored/a.go", false},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.matches, m.MatchesFile(tc.path))
		})
	}
}

func TestExclusionMatcher_FunctionPatterns(t *testing.T) {
	m := NewExclusionMatcher(config.ExclusionsConfig{
		FunctionPatterns: []string{"^Test", "_generated$"},
	})

	assert.True(t, m.MatchesFunction("TestSomething"))
	assert.True(t, m.MatchesFunction("parse_generated"))
	assert.False(t, m.MatchesFunction("Parse"))
	assert.False(t, m.MatchesFunction(""))
}

func TestExclusionMatcher_InvalidRegexIgnored(t *testing.T) {
	m := NewExclusionMatcher(config.ExclusionsConfig{
		FunctionPatterns: []string{"(unclosed", "^main$"},
	})

	assert.True(t, m.MatchesFunction("main"))
	assert.False(t, m.MatchesFunction("(unclosed"))
}

func TestExclusionMatcher_Matches(t *testing.T) {
	m := NewExclusionMatcher(config.ExclusionsConfig{
		FilePatterns:     []string{"**/node_modules/**"},
		FunctionPatterns: []string{"^mock"},
	})

	assert.True(t, m.Matches("web/node_modules/x/index.js", "run"))
	assert.True(t, m.Matches("src/app.js", "mockServer"))
	assert.False(t, m.Matches("src/app.js", "run"))
}
