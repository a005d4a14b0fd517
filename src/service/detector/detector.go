package detector

import (
	"context"

	"codesage/src/config"
	"codesage/src/model"
	"codesage/src/service/metrics"
	"codesage/src/util"
)

// Detector is the interface for all issue detectors
type Detector interface {
	// Name returns the detector name
	Name() string

	// IsEnabled returns whether the detector is enabled
	IsEnabled() bool

	// Detect runs the detection and returns found issues
	Detect(ctx context.Context) ([]model.Issue, error)
}

// BaseDetector provides common functionality for detectors
type BaseDetector struct {
	Corpus     *metrics.Corpus
	Cfg        *config.Config
	Exclusions *util.ExclusionMatcher
}

// NewBaseDetector creates a new base detector
func NewBaseDetector(corpus *metrics.Corpus, cfg *config.Config) BaseDetector {
	return BaseDetector{
		Corpus:     corpus,
		Cfg:        cfg,
		Exclusions: util.NewExclusionMatcher(cfg.Exclusions),
	}
}

// ShouldExclude checks if an entity should be excluded
func (b *BaseDetector) ShouldExclude(filePath, funcName string) bool {
	return b.Exclusions.Matches(filePath, funcName)
}

// FilterBySeverity drops issues graded below the configured minimum.
// P0 outranks P3, so a minimum of P1 keeps P0 and P1 only.
func (b *BaseDetector) FilterBySeverity(issues []model.Issue) []model.Issue {
	minRank := model.Severity(b.Cfg.Severity.MinSeverity).Rank()

	filtered := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity.Rank() <= minRank {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}
