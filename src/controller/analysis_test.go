package controller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codesage/src/config"
	"codesage/src/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// branchySource has 10 if statements, so its cyclomatic complexity is 11
func branchySource() string {
	var sb strings.Builder
	sb.WriteString("package sample\n\nfunc route(n int) string {\n")
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&sb, "\tif n == %d {\n\t\treturn \"v%d\"\n\t}\n", i, i)
	}
	sb.WriteString("\treturn \"other\"\n}\n")
	return sb.String()
}

// fillSource is long enough in tokens to clear the default shingle window.
// Its identical statements make the normalized stream periodic; the shifted
// alignments that produces must all fold into one full-length match.
func fillSource() string {
	var sb strings.Builder
	sb.WriteString("package sample\n\nfunc fill() []int {\n\tout := make([]int, 0, 16)\n")
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&sb, "\tout = append(out, %d)\n", i)
	}
	sb.WriteString("\treturn out\n}\n")
	return sb.String()
}

// smallFnSource declares several functions, each far shorter than the
// shingle window on its own; only the whole-file stream can match.
func smallFnSource() string {
	return `package sample

func add(a, b int) int {
	return a + b
}

func sub(a, b int) int {
	return a - b
}

func mul(a, b int) int {
	return a * b
}

func half(a int) int {
	return a / 2
}

func neg(a int) int {
	return -a
}

func zero() int {
	return 0
}
`
}

func analyzeFixture(t *testing.T) (*model.AnalysisReport, *config.Config) {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, "complex.go", branchySource())
	writeFile(t, dir, "dup1.go", fillSource())
	writeFile(t, dir, "dup2.go", fillSource())
	writeFile(t, dir, "broken.go", "package sample\n\nfunc {{{\n")
	writeFile(t, dir, "vendor/skip.go", "package vendored\n")
	writeFile(t, dir, "notes.txt", "not source\n")

	cfg := config.DefaultConfig()
	cfg.Concurrency.Workers = 2

	ctrl := NewAnalysisController(cfg)
	report, err := ctrl.Analyze(context.Background(), AnalyzeRequest{Path: dir})
	require.NoError(t, err)
	return report, cfg
}

func TestAnalyze_EndToEnd(t *testing.T) {
	report, _ := analyzeFixture(t)

	assert.Equal(t, 3, report.Summary.FilesAnalyzed)
	assert.Equal(t, 1, report.Summary.FilesSkipped, "the unparsable file is skipped, not fatal")
	assert.Equal(t, 3, report.Summary.Functions)

	for _, fc := range report.Files {
		assert.NotContains(t, fc.Path, "vendor/", "excluded trees never reach analysis")
	}

	require.NotEmpty(t, report.Warnings)
	assert.Equal(t, "parse_error", report.Warnings[0].Kind)
	assert.Equal(t, "broken.go", report.Warnings[0].Path)

	require.Len(t, report.Duplication, 1)
	m := report.Duplication[0]
	assert.Equal(t, "dup1.go", m.PathA)
	assert.Equal(t, "dup2.go", m.PathB)
	assert.InDelta(t, 1.0, m.Similarity, 1e-9)

	assert.Greater(t, report.Maintainability, 0.0)
	assert.LessOrEqual(t, report.Maintainability, 100.0)
}

func TestAnalyze_IssuesGradedAndSorted(t *testing.T) {
	report, _ := analyzeFixture(t)

	var cyclomatic, duplicated *model.Issue
	for i := range report.Issues {
		issue := &report.Issues[i]
		switch issue.Subcategory {
		case "cyclomatic_complexity":
			cyclomatic = issue
		case "duplicated_code":
			duplicated = issue
		}
	}

	require.NotNil(t, cyclomatic)
	assert.Equal(t, model.SeverityP1, cyclomatic.Severity)
	assert.Equal(t, "complex.go", cyclomatic.FilePath)
	assert.Equal(t, "route", cyclomatic.EntityName)

	require.NotNil(t, duplicated)
	assert.Equal(t, model.SeverityP2, duplicated.Severity)
	assert.Equal(t, "dup1.go", duplicated.FilePath)

	for i := 1; i < len(report.Issues); i++ {
		prev, cur := report.Issues[i-1], report.Issues[i]
		require.LessOrEqual(t, prev.Severity.Rank(), cur.Severity.Rank())
		if prev.Severity.Rank() == cur.Severity.Rank() {
			require.LessOrEqual(t, prev.FilePath, cur.FilePath)
		}
	}
}

func TestAnalyze_DebtAccounting(t *testing.T) {
	report, cfg := analyzeFixture(t)

	// every issue is billed from the cost table, plus cyclomatic excess
	expected := 0
	for _, issue := range report.Issues {
		expected += cfg.Scoring.Debt.CostTable[string(issue.Category)][string(issue.Severity)]
	}
	expected += 2 // route: CC 11 is one point over the threshold at 2m/point

	assert.Equal(t, expected, report.DebtMinutes)
}

func TestAnalyze_DuplicateFilesOfSmallFunctions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "left.go", smallFnSource())
	writeFile(t, dir, "right.go", smallFnSource())

	cfg := config.DefaultConfig()
	ctrl := NewAnalysisController(cfg)
	report, err := ctrl.Analyze(context.Background(), AnalyzeRequest{Path: dir})
	require.NoError(t, err)

	require.Len(t, report.Duplication, 1, "identical files match once even when every function is small")
	m := report.Duplication[0]
	assert.Equal(t, "left.go", m.PathA)
	assert.Equal(t, "right.go", m.PathB)
	assert.InDelta(t, 1.0, m.Similarity, 1e-9)
}

func TestAnalyze_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "complex.go", branchySource())
	writeFile(t, dir, "dup1.go", fillSource())
	writeFile(t, dir, "dup2.go", fillSource())

	cfg := config.DefaultConfig()
	ctrl := NewAnalysisController(cfg)

	first, err := ctrl.Analyze(context.Background(), AnalyzeRequest{Path: dir})
	require.NoError(t, err)
	second, err := ctrl.Analyze(context.Background(), AnalyzeRequest{Path: dir})
	require.NoError(t, err)

	assert.Equal(t, first.Issues, second.Issues)
	assert.Equal(t, first.Duplication, second.Duplication)
	assert.Equal(t, first.Files, second.Files)
	assert.Equal(t, first.DebtMinutes, second.DebtMinutes)
}

func TestDedupeIssues(t *testing.T) {
	issues := []model.Issue{
		{Category: model.CategoryBug, FilePath: "a.go", Line: 5, Severity: model.SeverityP2, Message: "first"},
		{Category: model.CategoryBug, FilePath: "a.go", Line: 5, Severity: model.SeverityP0, Message: "worse"},
		{Category: model.CategoryMaintainability, FilePath: "a.go", Line: 5, Severity: model.SeverityP3},
	}

	deduped := dedupeIssues(issues)
	require.Len(t, deduped, 2, "same category, file, and line collapse")

	assert.Equal(t, model.SeverityP0, deduped[0].Severity)
	assert.Equal(t, "worse", deduped[0].Message, "the more severe duplicate wins")
	assert.Equal(t, model.SeverityP3, deduped[1].Severity)
}

func TestAnalyze_WhitespaceOnlyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blank.py", "\n\n   \n")

	cfg := config.DefaultConfig()
	ctrl := NewAnalysisController(cfg)

	report, err := ctrl.Analyze(context.Background(), AnalyzeRequest{Path: dir})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.FilesAnalyzed)
	assert.Empty(t, report.Issues)
	require.Len(t, report.Files, 1)
	assert.Equal(t, 0, report.Files[0].CodeLines)
	assert.Equal(t, 100.0, report.Files[0].Maintainability)
	assert.Equal(t, 100.0, report.Maintainability)
}

func TestAnalyze_EmptyDirectory(t *testing.T) {
	cfg := config.DefaultConfig()
	ctrl := NewAnalysisController(cfg)

	report, err := ctrl.Analyze(context.Background(), AnalyzeRequest{Path: t.TempDir()})
	require.NoError(t, err)

	assert.Zero(t, report.Summary.FilesAnalyzed)
	assert.Empty(t, report.Issues)
	assert.Equal(t, 100.0, report.Maintainability, "no files means nothing to penalize")
	assert.Zero(t, report.DebtMinutes)
}
