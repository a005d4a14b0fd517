// Package report renders an analysis report into its output formats.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"codesage/src/config"
	"codesage/src/model"
	"codesage/src/util"
)

// Generator generates reports in various formats
type Generator struct {
	cfg config.OutputConfig
}

// NewGenerator creates a new report generator
func NewGenerator(cfg config.OutputConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Generate generates a report in the specified format
func (g *Generator) Generate(report *model.AnalysisReport, format string) (string, error) {
	util.Debug("Generating report in %s format (%d issues)", format, len(report.Issues))
	switch format {
	case "json":
		return g.generateJSON(report)
	case "markdown", "md":
		return g.generateMarkdown(report)
	case "sarif":
		return g.generateSARIF(report)
	default:
		util.Warn("Unsupported report format requested: %s", format)
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (g *Generator) generateJSON(report *model.AnalysisReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *Generator) generateMarkdown(report *model.AnalysisReport) (string, error) {
	var sb strings.Builder

	// Header
	sb.WriteString("# Code Quality Analysis Report\n\n")
	sb.WriteString(fmt.Sprintf("**Path:** %s\n", report.RootPath))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Files Analyzed:** %d (%d skipped)\n", report.Summary.FilesAnalyzed, report.Summary.FilesSkipped))
	sb.WriteString(fmt.Sprintf("- **Functions:** %d\n", report.Summary.Functions))
	sb.WriteString(fmt.Sprintf("- **Total Issues:** %d\n", report.Summary.TotalIssues))
	sb.WriteString(fmt.Sprintf("- **Maintainability:** %.1f/100\n", report.Maintainability))
	sb.WriteString(fmt.Sprintf("- **Estimated Debt:** %s\n\n", formatMinutes(report.DebtMinutes)))

	// By Severity
	sb.WriteString("### Issues by Severity\n\n")
	sb.WriteString("| Severity | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, sev := range model.Severities {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", sev, report.Summary.BySeverity[sev]))
	}
	sb.WriteString("\n")

	// By Category
	sb.WriteString("### Issues by Category\n\n")
	sb.WriteString("| Category | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, cat := range model.Categories {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", cat, report.Summary.ByCategory[cat]))
	}
	sb.WriteString("\n")

	// Hotspots
	if len(report.Summary.HotspotFiles) > 0 {
		sb.WriteString("### Hotspot Files\n\n")
		sb.WriteString("| File | Issue Count |\n")
		sb.WriteString("|------|-------------|\n")
		for _, hs := range report.Summary.HotspotFiles {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", hs.FilePath, hs.IssueCount))
		}
		sb.WriteString("\n")
	}

	// Issues by Category
	sb.WriteString("## Issues\n\n")

	issuesByCategory := make(map[model.Category][]model.Issue)
	for _, issue := range report.Issues {
		issuesByCategory[issue.Category] = append(issuesByCategory[issue.Category], issue)
	}

	for _, cat := range model.Categories {
		issues := issuesByCategory[cat]
		if len(issues) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("### %s (%d issues)\n\n", string(cat), len(issues)))

		for _, issue := range issues {
			name := issue.EntityName
			if name == "" {
				name = issue.FilePath
			}
			sb.WriteString(fmt.Sprintf("#### [%s] `%s`\n\n", issue.Severity, name))
			if issue.EndLine > issue.Line {
				sb.WriteString(fmt.Sprintf("- **File:** `%s:%d-%d`\n", issue.FilePath, issue.Line, issue.EndLine))
			} else {
				sb.WriteString(fmt.Sprintf("- **File:** `%s:%d`\n", issue.FilePath, issue.Line))
			}
			sb.WriteString(fmt.Sprintf("- **Type:** %s\n", issue.Subcategory))
			sb.WriteString(fmt.Sprintf("- **Description:** %s\n", issue.Message))

			if g.cfg.IncludeSuggestions && issue.Suggestion != "" {
				sb.WriteString(fmt.Sprintf("- **Suggestion:** %s\n", issue.Suggestion))
			}

			if g.cfg.IncludeMetrics && len(issue.Metrics) > 0 {
				sb.WriteString("- **Metrics:**\n")
				for _, k := range sortedKeys(issue.Metrics) {
					sb.WriteString(fmt.Sprintf("  - %s: %v\n", k, issue.Metrics[k]))
				}
			}

			sb.WriteString("\n")
		}
	}

	// Warnings
	if len(report.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			sb.WriteString(fmt.Sprintf("- `%s`: %s\n", w.Path, w.Message))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func (g *Generator) generateSARIF(report *model.AnalysisReport) (string, error) {
	sarif := map[string]any{
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"version": "2.1.0",
		"runs": []map[string]any{
			{
				"tool": map[string]any{
					"driver": map[string]any{
						"name":    "codesage",
						"version": "1.0.0",
						"rules":   g.buildSARIFRules(report.Issues),
					},
				},
				"results": g.buildSARIFResults(report.Issues),
			},
		},
	}

	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *Generator) buildSARIFRules(issues []model.Issue) []map[string]any {
	ruleMap := make(map[string]bool)
	rules := []map[string]any{}

	for _, issue := range issues {
		ruleID := string(issue.Category) + "/" + issue.Subcategory
		if ruleMap[ruleID] {
			continue
		}
		ruleMap[ruleID] = true

		rules = append(rules, map[string]any{
			"id":   ruleID,
			"name": issue.Subcategory,
			"defaultConfiguration": map[string]any{
				"level": sarifLevel(issue.Severity),
			},
		})
	}

	return rules
}

func (g *Generator) buildSARIFResults(issues []model.Issue) []map[string]any {
	results := []map[string]any{}

	for _, issue := range issues {
		endLine := issue.EndLine
		if endLine < issue.Line {
			endLine = issue.Line
		}
		result := map[string]any{
			"ruleId":  string(issue.Category) + "/" + issue.Subcategory,
			"level":   sarifLevel(issue.Severity),
			"message": map[string]any{"text": issue.Message},
			"locations": []map[string]any{
				{
					"physicalLocation": map[string]any{
						"artifactLocation": map[string]any{
							"uri": issue.FilePath,
						},
						"region": map[string]any{
							"startLine": issue.Line,
							"endLine":   endLine,
						},
					},
				},
			},
		}

		if issue.Suggestion != "" {
			result["fixes"] = []map[string]any{
				{
					"description": map[string]any{"text": issue.Suggestion},
				},
			}
		}

		results = append(results, result)
	}

	return results
}

func sarifLevel(s model.Severity) string {
	switch s {
	case model.SeverityP0, model.SeverityP1:
		return "error"
	case model.SeverityP2:
		return "warning"
	default:
		return "note"
	}
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
