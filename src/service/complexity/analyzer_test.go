package complexity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codesage/src/model"
)

func leaf(text string) *model.GenericNode {
	return &model.GenericNode{Kind: model.KindOther, TokenClass: model.TokenPunct, TokenText: text}
}

func node(kind model.NodeKind, children ...*model.GenericNode) *model.GenericNode {
	return &model.GenericNode{Kind: kind, Children: children}
}

func block(children ...*model.GenericNode) *model.GenericNode {
	return node(model.KindBlock, children...)
}

func unit(children ...*model.GenericNode) *model.FunctionUnit {
	return &model.FunctionUnit{
		Name: "f",
		Node: node(model.KindFunctionLike, children...),
	}
}

func TestAnalyze_EmptyBody(t *testing.T) {
	a := NewAnalyzer(64)
	res, err := a.Analyze(unit(block()))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Cyclomatic)
	assert.Equal(t, 0, res.Cognitive)
	assert.Equal(t, 0, res.MaxNestingDepth)
}

func TestAnalyze_NestedIf(t *testing.T) {
	fn := unit(block(
		node(model.KindIf, leaf("a"),
			block(
				node(model.KindIf, leaf("b"),
					block(leaf("x")),
				),
			),
		),
	))

	a := NewAnalyzer(64)
	res, err := a.Analyze(fn)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Cyclomatic)
	assert.Equal(t, 3, res.Cognitive)
	assert.Equal(t, 2, res.MaxNestingDepth)
}

func TestAnalyze_LoopWithElseIfChain(t *testing.T) {
	// for { if a {} else if b {} else {} }
	fn := unit(block(
		node(model.KindLoop, leaf("cond"),
			block(
				node(model.KindIf, leaf("a"),
					block(leaf("s1")),
					node(model.KindIf, leaf("b"),
						block(leaf("s2")),
						block(leaf("s3")),
					),
				),
			),
		),
	))

	a := NewAnalyzer(64)
	res, err := a.Analyze(fn)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Cyclomatic, "loop + two ifs; bare else is free")
	assert.Equal(t, 5, res.Cognitive, "loop 1, each if 2; else-if stays at the loop's depth")
	assert.Equal(t, 2, res.MaxNestingDepth)
}

func TestAnalyze_SwitchCasesAndDefault(t *testing.T) {
	fn := unit(block(
		node(model.KindSwitch, leaf("x"),
			node(model.KindCase, leaf("1")),
			node(model.KindCase, leaf("2")),
			node(model.KindCase, leaf("3")),
			node(model.KindCase, leaf("4")),
			block(leaf("d")), // default arm arrives as a plain block
		),
	))

	a := NewAnalyzer(64)
	res, err := a.Analyze(fn)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Cyclomatic, "one per case, default excluded")
	assert.Equal(t, 1, res.Cognitive, "the switch counts once, arms are transparent")
}

func TestAnalyze_BooleanOperatorRuns(t *testing.T) {
	tests := []struct {
		name      string
		cond      *model.GenericNode
		cyclo     int
		cognitive int
	}{
		{
			name:      "single run a && b && c",
			cond:      node(model.KindLogicalAnd, node(model.KindLogicalAnd, leaf("a"), leaf("b")), leaf("c")),
			cyclo:     4, // if + two operators
			cognitive: 2, // if + one run
		},
		{
			name:      "operator change a && b || c",
			cond:      node(model.KindLogicalOr, node(model.KindLogicalAnd, leaf("a"), leaf("b")), leaf("c")),
			cyclo:     4,
			cognitive: 3, // if + a run per operator
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fn := unit(block(node(model.KindIf, tc.cond, block(leaf("x")))))

			a := NewAnalyzer(64)
			res, err := a.Analyze(fn)
			require.NoError(t, err)

			assert.Equal(t, tc.cyclo, res.Cyclomatic)
			assert.Equal(t, tc.cognitive, res.Cognitive)
		})
	}
}

func TestAnalyze_TernaryDoesNotNest(t *testing.T) {
	fn := unit(block(
		node(model.KindTernary, leaf("a"),
			node(model.KindTernary, leaf("b"), leaf("c"), leaf("d")),
			leaf("e"),
		),
	))

	a := NewAnalyzer(64)
	res, err := a.Analyze(fn)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Cyclomatic)
	assert.Equal(t, 2, res.Cognitive, "both ternaries charge at the same depth")
	assert.Equal(t, 0, res.MaxNestingDepth)
}

func TestAnalyze_RecursionAddsFlatIncrement(t *testing.T) {
	fn := unit(block(leaf("f"), leaf("("), leaf(")")))
	fn.RecursiveCalls = 2

	a := NewAnalyzer(64)
	res, err := a.Analyze(fn)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Cyclomatic)
	assert.Equal(t, 2, res.Cognitive)
}

// A nested function is strictly its own unit: the enclosing function's
// walks do not descend into it (so it adds neither branches nor a nesting
// increment here), and the nested unit is scored from depth zero.
func TestAnalyze_NestedFunctionScoredSeparately(t *testing.T) {
	inner := node(model.KindFunctionLike,
		block(node(model.KindIf, leaf("a"), block(leaf("x")))),
	)
	fn := unit(block(inner, node(model.KindIf, leaf("b"), block(leaf("y")))))

	a := NewAnalyzer(64)
	res, err := a.Analyze(fn)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Cyclomatic, "inner function's branches are not the outer's")
	assert.Equal(t, 1, res.Cognitive)
}

func TestAnalyze_NestingGuard(t *testing.T) {
	fn := unit(block(
		node(model.KindIf, leaf("a"),
			block(
				node(model.KindIf, leaf("b"),
					block(
						node(model.KindIf, leaf("c"), block(leaf("x"))),
					),
				),
			),
		),
	))

	a := NewAnalyzer(2)
	res, err := a.Analyze(fn)
	require.Error(t, err)

	var overflow *model.ComplexityOverflowError
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, "f", overflow.Function)

	assert.True(t, res.CognitiveUnavailable)
	assert.Equal(t, 0, res.Cognitive)
	assert.Equal(t, 4, res.Cyclomatic, "cyclomatic survives the guard")
}
