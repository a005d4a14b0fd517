// Package complexity computes cyclomatic and cognitive complexity over the
// generic node trees produced by the syntax adapter.
package complexity

import "codesage/src/model"

// Analyzer scores one function unit at a time. It is stateless apart from
// the nesting guard and safe for concurrent use.
type Analyzer struct {
	guard int
}

// NewAnalyzer creates an analyzer with the given nesting guard. Units whose
// structural nesting exceeds the guard get cyclomatic complexity only.
func NewAnalyzer(nestingGuard int) *Analyzer {
	return &Analyzer{guard: nestingGuard}
}

// Analyze scores a unit. Nested function-likes are skipped in both walks;
// each gets its own unit and its own score. A non-nil error means the
// nesting guard tripped: cyclomatic and nesting depth are still valid,
// cognitive is marked unavailable.
func (a *Analyzer) Analyze(fn *model.FunctionUnit) (model.ComplexityResult, error) {
	res := model.ComplexityResult{Cyclomatic: a.cyclomatic(fn.Node)}

	cognitive, maxDepth, err := a.cognitive(fn)
	res.MaxNestingDepth = maxDepth
	if err != nil {
		res.CognitiveUnavailable = true
		return res, err
	}
	res.Cognitive = cognitive
	return res, nil
}

// cyclomatic is 1 plus one per branch point. Default switch arms arrive as
// plain blocks, so they never count.
func (a *Analyzer) cyclomatic(root *model.GenericNode) int {
	count := 1
	stack := []*model.GenericNode{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Kind {
		case model.KindIf, model.KindLoop, model.KindCase, model.KindCatch,
			model.KindLogicalAnd, model.KindLogicalOr, model.KindTernary:
			count++
		}

		for _, child := range n.Children {
			if child.Kind == model.KindFunctionLike {
				continue
			}
			stack = append(stack, child)
		}
	}
	return count
}

// cogFrame carries the traversal state: structural depth and the logical
// operator context used to charge operator changes in boolean chains.
type cogFrame struct {
	n       *model.GenericNode
	depth   int
	boolCtx model.NodeKind
}

func (a *Analyzer) cognitive(fn *model.FunctionUnit) (score, maxDepth int, err error) {
	stack := make([]cogFrame, 0, 64)
	for i := len(fn.Node.Children) - 1; i >= 0; i-- {
		stack = append(stack, cogFrame{n: fn.Node.Children[i], boolCtx: model.KindOther})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.n

		switch n.Kind {
		case model.KindFunctionLike:
			continue

		case model.KindIf:
			score += 1 + f.depth
			if f.depth+1 > maxDepth {
				maxDepth = f.depth + 1
			}
			if f.depth+1 > a.guard {
				return 0, maxDepth, &model.ComplexityOverflowError{Function: fn.Name, Depth: f.depth + 1}
			}
			for i := len(n.Children) - 1; i >= 0; i-- {
				child := n.Children[i]
				depth := f.depth
				if child.Kind == model.KindBlock {
					// then/else bodies nest; an else-if chains at the same depth
					depth = f.depth + 1
				}
				stack = append(stack, cogFrame{n: child, depth: depth, boolCtx: model.KindOther})
			}

		case model.KindLoop, model.KindSwitch, model.KindCatch:
			score += 1 + f.depth
			if f.depth+1 > maxDepth {
				maxDepth = f.depth + 1
			}
			if f.depth+1 > a.guard {
				return 0, maxDepth, &model.ComplexityOverflowError{Function: fn.Name, Depth: f.depth + 1}
			}
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, cogFrame{n: n.Children[i], depth: f.depth + 1, boolCtx: model.KindOther})
			}

		case model.KindTernary:
			// charged with nesting but does not open a nesting level
			score += 1 + f.depth
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, cogFrame{n: n.Children[i], depth: f.depth, boolCtx: model.KindOther})
			}

		case model.KindLogicalAnd, model.KindLogicalOr:
			// one point per run of a single operator; changing operator
			// starts a new run
			if f.boolCtx != n.Kind {
				score++
			}
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, cogFrame{n: n.Children[i], depth: f.depth, boolCtx: n.Kind})
			}

		case model.KindCase:
			// arms are transparent; the switch already charged and nested
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, cogFrame{n: n.Children[i], depth: f.depth, boolCtx: model.KindOther})
			}

		default:
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, cogFrame{n: n.Children[i], depth: f.depth, boolCtx: model.KindOther})
			}
		}
	}

	// direct recursion reads as a hidden loop
	score += fn.RecursiveCalls
	return score, maxDepth, nil
}
