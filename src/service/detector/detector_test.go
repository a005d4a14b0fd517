package detector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codesage/src/config"
	"codesage/src/model"
	"codesage/src/service/metrics"
)

func record(path, name string, cyclomatic, nesting int) *metrics.FunctionRecord {
	return &metrics.FunctionRecord{
		Fn: &model.FunctionUnit{
			Name: name,
			Path: path,
			Span: model.Span{StartLine: 10, EndLine: 20},
		},
		Complexity: model.ComplexityResult{
			Cyclomatic:      cyclomatic,
			Cognitive:       cyclomatic,
			MaxNestingDepth: nesting,
		},
	}
}

func TestComplexityDetector_Grading(t *testing.T) {
	cfg := config.DefaultConfig()
	corpus := metrics.NewCorpus()
	corpus.AddFunction(record("a.go", "fine", 5, 1))
	corpus.AddFunction(record("a.go", "high", 12, 1))
	corpus.AddFunction(record("a.go", "critical", 25, 1))
	corpus.AddFunction(record("b.go", "deep", 3, 6))

	d := NewComplexityDetector(NewBaseDetector(corpus, cfg), cfg.Detectors.Complexity)
	issues, err := d.Detect(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 3)

	bySeverity := make(map[model.Severity][]model.Issue)
	for _, issue := range issues {
		bySeverity[issue.Severity] = append(bySeverity[issue.Severity], issue)
	}

	require.Len(t, bySeverity[model.SeverityP0], 1)
	assert.Equal(t, "critical", bySeverity[model.SeverityP0][0].EntityName)

	require.Len(t, bySeverity[model.SeverityP1], 1)
	assert.Equal(t, "high", bySeverity[model.SeverityP1][0].EntityName)

	require.Len(t, bySeverity[model.SeverityP2], 1)
	assert.Equal(t, "deep_nesting", bySeverity[model.SeverityP2][0].Subcategory)
}

func TestComplexityDetector_RespectsExclusions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Exclusions.FunctionPatterns = []string{"^legacy"}

	corpus := metrics.NewCorpus()
	corpus.AddFunction(record("a.go", "legacyMonster", 40, 1))

	d := NewComplexityDetector(NewBaseDetector(corpus, cfg), cfg.Detectors.Complexity)
	issues, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestSizeDetector(t *testing.T) {
	cfg := config.DefaultConfig()
	corpus := metrics.NewCorpus()

	long := record("a.go", "long", 1, 0)
	long.Fn.BodyLines = 80
	corpus.AddFunction(long)

	wide := record("a.go", "wide", 1, 0)
	wide.Fn.Params = 7
	corpus.AddFunction(wide)

	fileUnit := record("a.go", "a.go", 1, 0)
	fileUnit.Fn.FileLevel = true
	fileUnit.Fn.BodyLines = 700
	corpus.AddFunction(fileUnit)

	corpus.AddFile(&model.FileComplexity{Path: "a.go", Lines: 700})

	d := NewSizeDetector(NewBaseDetector(corpus, cfg), cfg.Detectors.Size)
	issues, err := d.Detect(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 3)

	subcats := make(map[string]model.Severity)
	for _, issue := range issues {
		subcats[issue.Subcategory] = issue.Severity
	}
	assert.Equal(t, model.SeverityP2, subcats["long_function"])
	assert.Equal(t, model.SeverityP3, subcats["too_many_parameters"])
	assert.Equal(t, model.SeverityP2, subcats["large_file"])
}

func TestDuplicationDetector_Threshold(t *testing.T) {
	cfg := config.DefaultConfig()
	corpus := metrics.NewCorpus()
	corpus.SetMatches([]model.DuplicationMatch{
		{PathA: "a.go", PathB: "b.go", Tokens: 60, Similarity: 0.5,
			SpanA: model.Span{StartLine: 1, EndLine: 5}, SpanB: model.Span{StartLine: 9, EndLine: 13}},
		{PathA: "a.go", PathB: "c.go", Tokens: 50, Similarity: 0.05,
			SpanA: model.Span{StartLine: 1, EndLine: 5}, SpanB: model.Span{StartLine: 1, EndLine: 5}},
	})

	d := NewDuplicationDetector(NewBaseDetector(corpus, cfg), cfg.Detectors.Duplication)
	issues, err := d.Detect(context.Background())
	require.NoError(t, err)

	require.Len(t, issues, 1, "matches below the ratio threshold are dropped")
	assert.Equal(t, "duplicated_code", issues[0].Subcategory)
	assert.Equal(t, "a.go", issues[0].FilePath)
	assert.Contains(t, issues[0].Message, "b.go")
}

func TestBugDetector_EmptyCatch(t *testing.T) {
	cfg := config.DefaultConfig()

	catch := &model.GenericNode{Kind: model.KindCatch, Span: model.Span{StartLine: 4, EndLine: 5},
		Children: []*model.GenericNode{
			{Kind: model.KindOther, TokenClass: model.TokenIdent, TokenText: "err"},
			{Kind: model.KindBlock},
		}}
	handled := &model.GenericNode{Kind: model.KindCatch,
		Children: []*model.GenericNode{
			{Kind: model.KindBlock, Children: []*model.GenericNode{
				{Kind: model.KindOther, TokenClass: model.TokenIdent, TokenText: "log"},
			}},
		}}

	root := &model.GenericNode{Kind: model.KindBlock, Children: []*model.GenericNode{catch, handled}}
	corpus := metrics.NewCorpus()
	corpus.AddFunction(&metrics.FunctionRecord{
		Fn: &model.FunctionUnit{Name: "x.py", Path: "x.py", Node: root, FileLevel: true},
	})

	d := NewBugDetector(NewBaseDetector(corpus, cfg), cfg.Detectors.Bugs)
	issues, err := d.Detect(context.Background())
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, model.CategoryBug, issues[0].Category)
	assert.Equal(t, "empty_catch", issues[0].Subcategory)
	assert.Equal(t, 4, issues[0].Line)
}

func TestFilterBySeverity(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Severity.MinSeverity = "P1"
	base := NewBaseDetector(metrics.NewCorpus(), cfg)

	issues := []model.Issue{
		{Severity: model.SeverityP0},
		{Severity: model.SeverityP1},
		{Severity: model.SeverityP2},
		{Severity: model.SeverityP3},
	}

	filtered := base.FilterBySeverity(issues)
	require.Len(t, filtered, 2)
	assert.Equal(t, model.SeverityP0, filtered[0].Severity)
	assert.Equal(t, model.SeverityP1, filtered[1].Severity)
}

func TestRunner_DisabledDetectorsSkipped(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Detectors.Complexity.Enabled = false
	cfg.Detectors.Size.Enabled = false
	cfg.Detectors.Duplication.Enabled = false
	cfg.Detectors.Bugs.Enabled = false

	runner := NewRunner(metrics.NewCorpus(), cfg)
	issues, err := runner.RunAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, issues)

	assert.ElementsMatch(t, []string{"complexity", "size", "duplication", "bugs"}, runner.ListDetectors())
	assert.NotNil(t, runner.GetDetector("bugs"))
	assert.Nil(t, runner.GetDetector("missing"))
}
