// Package scoring turns raw metrics and issues into the maintainability
// index and technical-debt estimate.
package scoring

import (
	"math"

	"codesage/src/config"
)

// Scorer applies the configured maintainability weights and debt cost table
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a scorer from the scoring configuration
func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Maintainability computes the per-file index on a 0..100 scale. Average
// cyclomatic complexity and code size pull it down logarithmically, the
// comment ratio pushes it up linearly. A file with no code scores 100.
func (s *Scorer) Maintainability(avgCyclomatic float64, codeLines int, commentRatio float64) float64 {
	w := s.cfg.Maintainability

	mi := 100.0 -
		w.CyclomaticWeight*math.Log(math.Max(1, avgCyclomatic)) -
		w.SizeWeight*math.Log(math.Max(1, float64(codeLines))) +
		w.CommentWeight*commentRatio

	if mi < 0 {
		return 0
	}
	if mi > 100 {
		return 100
	}
	return mi
}

// IssueCost looks up the remediation minutes for one issue. Unknown
// category/severity combinations cost nothing rather than failing; the
// config validator rejects malformed tables up front.
func (s *Scorer) IssueCost(category, severity string) int {
	return s.cfg.Debt.CostTable[category][severity]
}

// ComplexityDebt charges each function for cyclomatic complexity above the
// threshold, in minutes per excess point.
func (s *Scorer) ComplexityDebt(cyclomatic int) int {
	excess := cyclomatic - s.cfg.Debt.CyclomaticThreshold
	if excess <= 0 {
		return 0
	}
	return s.cfg.Debt.MinutesPerPoint * excess
}
