package model

// ComplexityResult holds both complexity counts for one FunctionUnit.
// Cyclomatic is always >= 1 (the unconditional base path). When the nesting
// guard trips during the cognitive traversal, Cognitive is reported as
// unavailable instead of a wrong number.
type ComplexityResult struct {
	Cyclomatic           int  `json:"cyclomatic"`
	Cognitive            int  `json:"cognitive"`
	CognitiveUnavailable bool `json:"cognitive_unavailable,omitempty"`
	MaxNestingDepth      int  `json:"max_nesting_depth"`
}

// FileComplexity aggregates ComplexityResults per SourceUnit
type FileComplexity struct {
	Path            string   `json:"path"`
	Language        Language `json:"language"`
	Lines           int      `json:"lines"`
	CodeLines       int      `json:"code_lines"`
	CommentLines    int      `json:"comment_lines"`
	Functions       int      `json:"functions"`
	TotalCyclomatic int      `json:"total_cyclomatic"`
	MaxCyclomatic   int      `json:"max_cyclomatic"`
	AvgCyclomatic   float64  `json:"avg_cyclomatic"`
	TotalCognitive  int      `json:"total_cognitive"`
	Maintainability float64  `json:"maintainability"`
}

// CommentRatio returns comment lines over total lines, in [0,1]
func (f *FileComplexity) CommentRatio() float64 {
	if f.Lines <= 0 {
		return 0
	}
	return float64(f.CommentLines) / float64(f.Lines)
}

// DuplicationMatch is a pair of spans with a similarity ratio in [0,1].
// The relation is symmetric; spans never overlap within the same pairing,
// though both may belong to the same file.
type DuplicationMatch struct {
	PathA      string  `json:"path_a"`
	SpanA      Span    `json:"span_a"`
	PathB      string  `json:"path_b"`
	SpanB      Span    `json:"span_b"`
	Tokens     int     `json:"tokens"`
	Similarity float64 `json:"similarity"`
}
