package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codesage/src/config"
	"codesage/src/model"
)

func sampleReport() *model.AnalysisReport {
	return &model.AnalysisReport{
		RootPath:    "testdata/project",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Summary: model.ReportSummary{
			FilesAnalyzed: 3,
			FilesSkipped:  1,
			Functions:     7,
			TotalIssues:   2,
			ByCategory:    map[model.Category]int{model.CategoryMaintainability: 1, model.CategoryBug: 1},
			BySeverity:    map[model.Severity]int{model.SeverityP1: 1, model.SeverityP2: 1},
			HotspotFiles:  []model.FileHotspot{{FilePath: "a.go", IssueCount: 2}},
		},
		Issues: []model.Issue{
			{
				Category: model.CategoryMaintainability, Subcategory: "cyclomatic_complexity",
				Severity: model.SeverityP1, FilePath: "a.go", Line: 10, EndLine: 30,
				EntityName: "parse", EntityType: "function",
				Message: "High cyclomatic complexity (CC=14)",
				Metrics: map[string]any{"cyclomatic_complexity": 14},
				Suggestion: "Extract conditional logic into separate functions",
			},
			{
				Category: model.CategoryBug, Subcategory: "empty_catch",
				Severity: model.SeverityP2, FilePath: "a.go", Line: 44,
				Message: "Exception handler has an empty body and silently swallows errors",
			},
		},
		Maintainability: 72.5,
		DebtMinutes:     95,
		Warnings: []model.Warning{
			{Kind: "parse_error", Path: "broken.py", Line: 3, Message: "parse error at broken.py:3:1: syntax error"},
		},
	}
}

func TestGenerate_JSON(t *testing.T) {
	g := NewGenerator(config.DefaultConfig().Output)

	out, err := g.Generate(sampleReport(), "json")
	require.NoError(t, err)

	var decoded model.AnalysisReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 2, decoded.Summary.TotalIssues)
	assert.Equal(t, 95, decoded.DebtMinutes)
}

func TestGenerate_Markdown(t *testing.T) {
	g := NewGenerator(config.DefaultConfig().Output)

	out, err := g.Generate(sampleReport(), "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "# Code Quality Analysis Report")
	assert.Contains(t, out, "**Maintainability:** 72.5/100")
	assert.Contains(t, out, "**Estimated Debt:** 1h 35m")
	assert.Contains(t, out, "| P1 | 1 |")
	assert.Contains(t, out, "`a.go:10-30`")
	assert.Contains(t, out, "empty_catch")
	assert.Contains(t, out, "broken.py")
}

func TestGenerate_MarkdownDeterministic(t *testing.T) {
	g := NewGenerator(config.DefaultConfig().Output)

	first, err := g.Generate(sampleReport(), "md")
	require.NoError(t, err)
	second, err := g.Generate(sampleReport(), "md")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_SARIF(t *testing.T) {
	g := NewGenerator(config.DefaultConfig().Output)

	out, err := g.Generate(sampleReport(), "sarif")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2.1.0", doc["version"])

	runs := doc["runs"].([]any)
	require.Len(t, runs, 1)
	results := runs[0].(map[string]any)["results"].([]any)
	assert.Len(t, results, 2)
}

func TestGenerate_UnknownFormat(t *testing.T) {
	g := NewGenerator(config.DefaultConfig().Output)

	_, err := g.Generate(sampleReport(), "xml")
	assert.Error(t, err)
}
