package model

import "time"

// Severity is the issue severity level, ordered P0 > P1 > P2 > P3
type Severity string

const (
	SeverityP0 Severity = "P0" // critical
	SeverityP1 Severity = "P1" // high
	SeverityP2 Severity = "P2" // medium
	SeverityP3 Severity = "P3" // low
)

// Rank returns the sort rank of a severity; lower rank means more severe.
// Unknown severities sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityP0:
		return 0
	case SeverityP1:
		return 1
	case SeverityP2:
		return 2
	case SeverityP3:
		return 3
	default:
		return 4
	}
}

// Category classifies an issue
type Category string

const (
	CategoryBug             Category = "bug"
	CategorySecurity        Category = "security"
	CategoryPerformance     Category = "performance"
	CategoryMaintainability Category = "maintainability"
	CategoryStyle           Category = "style"
	CategoryDocumentation   Category = "documentation"
	CategoryTestCoverage    Category = "test_coverage"
)

// Categories lists all categories in their canonical report order
var Categories = []Category{
	CategoryBug, CategorySecurity, CategoryPerformance,
	CategoryMaintainability, CategoryStyle, CategoryDocumentation,
	CategoryTestCoverage,
}

// Severities lists all severities from most to least severe
var Severities = []Severity{SeverityP0, SeverityP1, SeverityP2, SeverityP3}

// Issue is a single detected problem, anchored to a line in an analyzed file
type Issue struct {
	Category    Category       `json:"category"`
	Subcategory string         `json:"subcategory"`
	Severity    Severity       `json:"severity"`
	FilePath    string         `json:"file_path"`
	Line        int            `json:"line"`
	EndLine     int            `json:"end_line,omitempty"`
	EntityName  string         `json:"entity_name,omitempty"`
	EntityType  string         `json:"entity_type,omitempty"`
	Message     string         `json:"message"`
	Metrics     map[string]any `json:"metrics,omitempty"`
	Suggestion  string         `json:"suggestion,omitempty"`
}

// Warning records a non-fatal per-unit failure (parse error, unsupported
// language or construct, complexity overflow). A warning never removes
// other units from the report.
type Warning struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// AnalysisReport is the final output of one analysis run. It is built once,
// immutable thereafter, and handed to external consumers. All sequences are
// kept sorted so two serializations of the same report are byte-identical.
type AnalysisReport struct {
	RootPath        string             `json:"root_path"`
	GeneratedAt     time.Time          `json:"generated_at"`
	Summary         ReportSummary      `json:"summary"`
	Issues          []Issue            `json:"issues"`
	Files           []FileComplexity   `json:"files"`
	Duplication     []DuplicationMatch `json:"duplication"`
	Maintainability float64            `json:"maintainability"`
	DebtMinutes     int                `json:"debt_minutes"`
	Warnings        []Warning          `json:"warnings,omitempty"`
}

// ReportSummary contains aggregated statistics
type ReportSummary struct {
	FilesAnalyzed int              `json:"files_analyzed"`
	FilesSkipped  int              `json:"files_skipped"`
	Functions     int              `json:"functions"`
	TotalIssues   int              `json:"total_issues"`
	ByCategory    map[Category]int `json:"by_category"`
	BySeverity    map[Severity]int `json:"by_severity"`
	HotspotFiles  []FileHotspot    `json:"hotspot_files"`
}

// FileHotspot is a file with many issues
type FileHotspot struct {
	FilePath   string `json:"file_path"`
	IssueCount int    `json:"issue_count"`
}
