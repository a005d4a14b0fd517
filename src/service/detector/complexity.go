package detector

import (
	"context"
	"fmt"

	"codesage/src/config"
	"codesage/src/model"
	"codesage/src/service/metrics"
	"codesage/src/util"
)

// ComplexityDetector flags functions whose cyclomatic complexity or nesting
// depth crosses the configured thresholds
type ComplexityDetector struct {
	BaseDetector
	cfg config.ComplexityDetectorConfig
}

// NewComplexityDetector creates a new complexity detector
func NewComplexityDetector(base BaseDetector, cfg config.ComplexityDetectorConfig) *ComplexityDetector {
	return &ComplexityDetector{
		BaseDetector: base,
		cfg:          cfg,
	}
}

// Name returns the detector name
func (d *ComplexityDetector) Name() string {
	return "complexity"
}

// IsEnabled returns whether the detector is enabled
func (d *ComplexityDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect runs complexity detection
func (d *ComplexityDetector) Detect(ctx context.Context) ([]model.Issue, error) {
	functions := d.Corpus.Functions()
	util.Debug("Complexity detector: analyzing %d units", len(functions))

	var issues []model.Issue
	excluded := 0

	for _, rec := range functions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if d.ShouldExclude(rec.Fn.Path, rec.Fn.Name) {
			excluded++
			continue
		}

		if rec.Complexity.Cyclomatic >= d.cfg.CyclomaticHigh {
			issues = append(issues, d.createCyclomaticIssue(rec))
		}

		if rec.Complexity.MaxNestingDepth > d.cfg.MaxNestingDepth {
			issues = append(issues, d.createNestingIssue(rec))
		}
	}

	util.Debug("Complexity detector: %d units excluded by filters", excluded)
	return d.FilterBySeverity(issues), nil
}

func (d *ComplexityDetector) createCyclomaticIssue(rec *metrics.FunctionRecord) model.Issue {
	cc := rec.Complexity.Cyclomatic

	severity := model.SeverityP1
	if cc >= d.cfg.CyclomaticCritical {
		severity = model.SeverityP0
	}

	issueMetrics := map[string]any{
		"cyclomatic_complexity": cc,
	}
	if !rec.Complexity.CognitiveUnavailable {
		issueMetrics["cognitive_complexity"] = rec.Complexity.Cognitive
	}

	return model.Issue{
		Category:    model.CategoryMaintainability,
		Subcategory: "cyclomatic_complexity",
		Severity:    severity,
		FilePath:    rec.Fn.Path,
		Line:        rec.Fn.Span.StartLine,
		EndLine:     rec.Fn.Span.EndLine,
		EntityName:  rec.Fn.Name,
		EntityType:  rec.Fn.EntityType(),
		Message:     fmt.Sprintf("High cyclomatic complexity (CC=%d)", cc),
		Metrics:     issueMetrics,
		Suggestion:  d.ccSuggestion(cc),
	}
}

func (d *ComplexityDetector) createNestingIssue(rec *metrics.FunctionRecord) model.Issue {
	depth := rec.Complexity.MaxNestingDepth

	return model.Issue{
		Category:    model.CategoryMaintainability,
		Subcategory: "deep_nesting",
		Severity:    model.SeverityP2,
		FilePath:    rec.Fn.Path,
		Line:        rec.Fn.Span.StartLine,
		EndLine:     rec.Fn.Span.EndLine,
		EntityName:  rec.Fn.Name,
		EntityType:  rec.Fn.EntityType(),
		Message:     fmt.Sprintf("Deeply nested control flow (depth=%d)", depth),
		Metrics: map[string]any{
			"nesting_depth": depth,
		},
		Suggestion: "Reduce nesting with early returns, guard clauses, or extracted helpers",
	}
}

func (d *ComplexityDetector) ccSuggestion(cc int) string {
	if cc >= d.cfg.CyclomaticCritical {
		return "Split into multiple smaller functions; consider a strategy table"
	}
	return "Extract conditional logic into separate functions"
}
