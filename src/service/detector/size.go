package detector

import (
	"context"
	"fmt"

	"codesage/src/config"
	"codesage/src/model"
	"codesage/src/util"
)

// SizeDetector flags oversized functions, parameter lists, and files
type SizeDetector struct {
	BaseDetector
	cfg config.SizeDetectorConfig
}

// NewSizeDetector creates a new size detector
func NewSizeDetector(base BaseDetector, cfg config.SizeDetectorConfig) *SizeDetector {
	return &SizeDetector{
		BaseDetector: base,
		cfg:          cfg,
	}
}

// Name returns the detector name
func (d *SizeDetector) Name() string {
	return "size"
}

// IsEnabled returns whether the detector is enabled
func (d *SizeDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect runs size detection
func (d *SizeDetector) Detect(ctx context.Context) ([]model.Issue, error) {
	var issues []model.Issue

	for _, rec := range d.Corpus.Functions() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// file length is checked separately with its own threshold
		if rec.Fn.FileLevel {
			continue
		}
		if d.ShouldExclude(rec.Fn.Path, rec.Fn.Name) {
			continue
		}

		if rec.Fn.BodyLines > d.cfg.MaxFunctionLines {
			issues = append(issues, model.Issue{
				Category:    model.CategoryMaintainability,
				Subcategory: "long_function",
				Severity:    model.SeverityP2,
				FilePath:    rec.Fn.Path,
				Line:        rec.Fn.Span.StartLine,
				EndLine:     rec.Fn.Span.EndLine,
				EntityName:  rec.Fn.Name,
				EntityType:  rec.Fn.EntityType(),
				Message:     fmt.Sprintf("Function is %d lines long (max %d)", rec.Fn.BodyLines, d.cfg.MaxFunctionLines),
				Metrics: map[string]any{
					"lines": rec.Fn.BodyLines,
				},
				Suggestion: "Split the function along its logical phases",
			})
		}

		if rec.Fn.Params > d.cfg.MaxParameters {
			issues = append(issues, model.Issue{
				Category:    model.CategoryMaintainability,
				Subcategory: "too_many_parameters",
				Severity:    model.SeverityP3,
				FilePath:    rec.Fn.Path,
				Line:        rec.Fn.Span.StartLine,
				EndLine:     rec.Fn.Span.EndLine,
				EntityName:  rec.Fn.Name,
				EntityType:  rec.Fn.EntityType(),
				Message:     fmt.Sprintf("Function takes %d parameters (max %d)", rec.Fn.Params, d.cfg.MaxParameters),
				Metrics: map[string]any{
					"parameters": rec.Fn.Params,
				},
				Suggestion: "Group related parameters into a struct",
			})
		}
	}

	for _, fc := range d.Corpus.Files() {
		if d.ShouldExclude(fc.Path, "") {
			continue
		}
		if fc.Lines > d.cfg.MaxFileLines {
			issues = append(issues, model.Issue{
				Category:    model.CategoryMaintainability,
				Subcategory: "large_file",
				Severity:    model.SeverityP2,
				FilePath:    fc.Path,
				Line:        1,
				Message:     fmt.Sprintf("File is %d lines long (max %d)", fc.Lines, d.cfg.MaxFileLines),
				Metrics: map[string]any{
					"lines": fc.Lines,
				},
				Suggestion: "Split the file by responsibility",
			})
		}
	}

	util.Debug("Size detector: %d issues before severity filter", len(issues))
	return d.FilterBySeverity(issues), nil
}
