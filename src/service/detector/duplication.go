package detector

import (
	"context"
	"fmt"

	"codesage/src/config"
	"codesage/src/model"
	"codesage/src/util"
)

// DuplicationDetector grades resolved duplicate matches into issues
type DuplicationDetector struct {
	BaseDetector
	cfg config.DuplicationDetectorConfig
}

// NewDuplicationDetector creates a new duplication detector
func NewDuplicationDetector(base BaseDetector, cfg config.DuplicationDetectorConfig) *DuplicationDetector {
	return &DuplicationDetector{
		BaseDetector: base,
		cfg:          cfg,
	}
}

// Name returns the detector name
func (d *DuplicationDetector) Name() string {
	return "duplication"
}

// IsEnabled returns whether the detector is enabled
func (d *DuplicationDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect turns duplicate matches above the similarity threshold into
// issues. The issue anchors at the first occurrence and names the second.
func (d *DuplicationDetector) Detect(ctx context.Context) ([]model.Issue, error) {
	matches := d.Corpus.Matches()
	util.Debug("Duplication detector: grading %d matches", len(matches))

	var issues []model.Issue
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if m.Similarity < d.cfg.RatioThreshold {
			continue
		}
		if d.ShouldExclude(m.PathA, "") || d.ShouldExclude(m.PathB, "") {
			continue
		}

		issues = append(issues, model.Issue{
			Category:    model.CategoryMaintainability,
			Subcategory: "duplicated_code",
			Severity:    model.SeverityP2,
			FilePath:    m.PathA,
			Line:        m.SpanA.StartLine,
			EndLine:     m.SpanA.EndLine,
			Message: fmt.Sprintf("Duplicated block of %d tokens, also at %s:%d",
				m.Tokens, m.PathB, m.SpanB.StartLine),
			Metrics: map[string]any{
				"tokens":     m.Tokens,
				"similarity": m.Similarity,
				"other_file": m.PathB,
				"other_line": m.SpanB.StartLine,
			},
			Suggestion: "Extract the shared block into a common function",
		})
	}

	return d.FilterBySeverity(issues), nil
}
