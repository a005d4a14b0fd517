package detector

import (
	"context"

	"codesage/src/config"
	"codesage/src/model"
	"codesage/src/util"
)

// BugDetector flags likely-defective patterns in the node trees. Currently
// that means exception handlers with an empty body, which swallow errors.
type BugDetector struct {
	BaseDetector
	cfg config.BugDetectorConfig
}

// NewBugDetector creates a new bug detector
func NewBugDetector(base BaseDetector, cfg config.BugDetectorConfig) *BugDetector {
	return &BugDetector{
		BaseDetector: base,
		cfg:          cfg,
	}
}

// Name returns the detector name
func (d *BugDetector) Name() string {
	return "bugs"
}

// IsEnabled returns whether the detector is enabled
func (d *BugDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect walks each file's full node tree looking for empty catch bodies
func (d *BugDetector) Detect(ctx context.Context) ([]model.Issue, error) {
	var issues []model.Issue

	for _, rec := range d.Corpus.Functions() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// the file-level unit's tree contains every nested function
		if !rec.Fn.FileLevel {
			continue
		}
		if d.ShouldExclude(rec.Fn.Path, "") {
			continue
		}

		stack := []*model.GenericNode{rec.Fn.Node}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack = append(stack, n.Children...)

			if n.Kind == model.KindCatch && emptyCatchBody(n) {
				issues = append(issues, model.Issue{
					Category:    model.CategoryBug,
					Subcategory: "empty_catch",
					Severity:    model.SeverityP2,
					FilePath:    rec.Fn.Path,
					Line:        n.Span.StartLine,
					EndLine:     n.Span.EndLine,
					Message:     "Exception handler has an empty body and silently swallows errors",
					Suggestion:  "Handle the error or log why it is safe to ignore",
				})
			}
		}
	}

	util.Debug("Bug detector: %d issues before severity filter", len(issues))
	return d.FilterBySeverity(issues), nil
}

// emptyCatchBody reports whether a catch node's body block does nothing.
// The body is the last block child; earlier children are the caught
// pattern. A lone `pass` or `;` counts as empty.
func emptyCatchBody(n *model.GenericNode) bool {
	for i := len(n.Children) - 1; i >= 0; i-- {
		body := n.Children[i]
		if body.Kind != model.KindBlock {
			continue
		}
		for _, stmt := range body.Children {
			if stmt.IsLeaf() && (stmt.TokenText == "pass" || stmt.TokenText == ";") {
				continue
			}
			return false
		}
		return true
	}
	return false
}
