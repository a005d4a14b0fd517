package controller

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"codesage/src/config"
	"codesage/src/model"
	"codesage/src/service/complexity"
	"codesage/src/service/detector"
	"codesage/src/service/duplication"
	"codesage/src/service/metrics"
	"codesage/src/service/parser"
	"codesage/src/service/scoring"
	"codesage/src/service/syntax"
	"codesage/src/util"
)

// AnalysisController orchestrates the analysis pipeline: walk, parse, score,
// detect, aggregate. Files are processed in parallel; everything that needs
// a global view (duplication, detection, aggregation) runs after the join.
type AnalysisController struct {
	cfg *config.Config
}

// NewAnalysisController creates a new analysis controller
func NewAnalysisController(cfg *config.Config) *AnalysisController {
	return &AnalysisController{cfg: cfg}
}

// AnalyzeRequest represents a request to analyze a directory tree
type AnalyzeRequest struct {
	Path string
}

// fileResult is one worker's output. Workers write only their own slot of
// the results slice; the reduce step merges slots in path order, so the
// report is identical across runs regardless of scheduling.
type fileResult struct {
	file      *model.FileComplexity
	functions []*metrics.FunctionRecord
	stream    *duplication.Stream
	warnings  []model.Warning
	skipped   bool
}

// Analyze runs the full analysis pipeline
func (c *AnalysisController) Analyze(ctx context.Context, req AnalyzeRequest) (*model.AnalysisReport, error) {
	startTime := time.Now()
	util.Info("Starting analysis of %s", req.Path)

	paths, err := c.collectFiles(req.Path)
	if err != nil {
		util.Error("File discovery failed: %v", err)
		return nil, err
	}
	util.Info("Discovered %d candidate files", len(paths))

	results := make([]fileResult, len(paths))
	registry := parser.NewRegistry()
	analyzer := complexity.NewAnalyzer(c.cfg.Analysis.NestingGuard)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency.Workers)
	for i, rel := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.analyzeFile(req.Path, rel, registry, analyzer)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// single-threaded reduce keeps corpus and stream order deterministic
	corpus := metrics.NewCorpus()
	var streams []*duplication.Stream
	var warnings []model.Warning
	analyzed, skipped := 0, 0
	for _, res := range results {
		warnings = append(warnings, res.warnings...)
		if res.skipped {
			skipped++
			continue
		}
		analyzed++
		corpus.AddFile(res.file)
		for _, rec := range res.functions {
			corpus.AddFunction(rec)
		}
		streams = append(streams, res.stream)
	}

	util.Info("Parsed %d files (%d skipped), resolving duplication over %d streams",
		analyzed, skipped, len(streams))
	dup := duplication.NewDetector(c.cfg.Analysis.ShingleWindow, c.cfg.Analysis.MinDuplicateTokens)
	corpus.SetMatches(dup.Resolve(streams))

	runner := detector.NewRunner(corpus, c.cfg)
	issues, err := runner.RunAll(ctx)
	if err != nil {
		return nil, err
	}
	issues = dedupeIssues(issues)

	scorer := scoring.NewScorer(c.cfg.Scoring)
	rep := c.buildReport(req.Path, corpus, issues, warnings, scorer, analyzed, skipped)

	util.Info("Analysis complete: %d issues, maintainability %.1f, debt %dm (took %v)",
		len(issues), rep.Maintainability, rep.DebtMinutes, time.Since(startTime))
	return rep, nil
}

// collectFiles walks the tree and returns relative slash paths of supported,
// non-excluded files in lexical order.
func (c *AnalysisController) collectFiles(root string) ([]string, error) {
	matcher := util.NewExclusionMatcher(c.cfg.Exclusions)
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if _, ok := parser.LanguageForPath(rel); !ok {
			return nil
		}
		if matcher.MatchesFile(rel) {
			util.Debug("Excluded by pattern: %s", rel)
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// analyzeFile runs the per-file pipeline: read, parse, adapt, score, shingle.
// Failures degrade to warnings; a bad file never aborts the run.
func (c *AnalysisController) analyzeFile(root, rel string, registry *parser.Registry, analyzer *complexity.Analyzer) fileResult {
	lang, _ := parser.LanguageForPath(rel)

	source, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return fileResult{skipped: true, warnings: []model.Warning{{
			Kind: "read_error", Path: rel, Message: err.Error(),
		}}}
	}

	unit := &model.SourceUnit{
		Path:     rel,
		Language: lang,
		Source:   source,
		Lines:    countLines(source),
	}

	tree, err := registry.Parse(unit)
	if err != nil {
		util.Debug("Skipping %s: %v", rel, err)
		return fileResult{skipped: true, warnings: []model.Warning{warningFor(rel, err)}}
	}
	defer tree.Close()

	adapter, err := syntax.NewAdapter(lang)
	if err != nil {
		return fileResult{skipped: true, warnings: []model.Warning{warningFor(rel, err)}}
	}
	adapted := adapter.Adapt(unit, tree.RootNode())

	res := fileResult{warnings: adapted.Warnings}

	// duplicate detection compares whole files, so the stream comes from
	// the file-level unit and includes every declared function's tokens
	fileUnit := adapted.Functions[0]
	fileTokens := syntax.Tokens(fileUnit, c.cfg.Analysis.NormalizeIdentifiers)
	res.stream = duplication.NewStream(fileUnit, fileTokens, c.cfg.Analysis.ShingleWindow)

	fc := &model.FileComplexity{
		Path:         rel,
		Language:     lang,
		Lines:        unit.Lines,
		CodeLines:    adapted.CodeLines,
		CommentLines: adapted.CommentLines,
	}

	for _, fn := range adapted.Functions {
		score, err := analyzer.Analyze(fn)
		if err != nil {
			res.warnings = append(res.warnings, model.Warning{
				Kind: "complexity_overflow", Path: rel, Line: fn.Span.StartLine, Message: err.Error(),
			})
		}
		res.functions = append(res.functions, &metrics.FunctionRecord{Fn: fn, Complexity: score})

		if fn.FileLevel {
			continue
		}
		fc.Functions++
		fc.TotalCyclomatic += score.Cyclomatic
		fc.TotalCognitive += score.Cognitive
		if score.Cyclomatic > fc.MaxCyclomatic {
			fc.MaxCyclomatic = score.Cyclomatic
		}
	}

	if fc.Functions > 0 {
		fc.AvgCyclomatic = float64(fc.TotalCyclomatic) / float64(fc.Functions)
	} else if len(res.functions) > 0 {
		// scripts with no declared functions fall back to the file unit
		fc.AvgCyclomatic = float64(res.functions[0].Complexity.Cyclomatic)
	}

	scorer := scoring.NewScorer(c.cfg.Scoring)
	fc.Maintainability = scorer.Maintainability(fc.AvgCyclomatic, fc.CodeLines, fc.CommentRatio())

	res.file = fc
	return res
}

// buildReport assembles the final immutable report
func (c *AnalysisController) buildReport(root string, corpus *metrics.Corpus, issues []model.Issue,
	warnings []model.Warning, scorer *scoring.Scorer, analyzed, skipped int) *model.AnalysisReport {

	debt := 0
	for _, issue := range issues {
		debt += scorer.IssueCost(string(issue.Category), string(issue.Severity))
	}
	for _, rec := range corpus.Functions() {
		debt += scorer.ComplexityDebt(rec.Complexity.Cyclomatic)
	}

	files := make([]model.FileComplexity, 0, len(corpus.Files()))
	mi := 100.0
	if fcs := corpus.Files(); len(fcs) > 0 {
		sum := 0.0
		for _, fc := range fcs {
			files = append(files, *fc)
			sum += fc.Maintainability
		}
		mi = sum / float64(len(fcs))
	}

	functions := 0
	for _, rec := range corpus.Functions() {
		if !rec.Fn.FileLevel {
			functions++
		}
	}

	sort.Slice(warnings, func(i, j int) bool {
		a, b := warnings[i], warnings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Kind < b.Kind
	})

	return &model.AnalysisReport{
		RootPath:        root,
		GeneratedAt:     time.Now().UTC(),
		Summary:         c.generateSummary(issues, analyzed, skipped, functions),
		Issues:          issues,
		Files:           files,
		Duplication:     corpus.Matches(),
		Maintainability: mi,
		DebtMinutes:     debt,
		Warnings:        warnings,
	}
}

func (c *AnalysisController) generateSummary(issues []model.Issue, analyzed, skipped, functions int) model.ReportSummary {
	byCategory := make(map[model.Category]int)
	bySeverity := make(map[model.Severity]int)
	byFile := make(map[string]int)

	for _, issue := range issues {
		byCategory[issue.Category]++
		bySeverity[issue.Severity]++
		byFile[issue.FilePath]++
	}

	type fileCount struct {
		path  string
		count int
	}
	var counts []fileCount
	for path, count := range byFile {
		counts = append(counts, fileCount{path, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].path < counts[j].path
	})

	topN := c.cfg.Output.HotspotsTopN
	if topN > len(counts) {
		topN = len(counts)
	}
	hotspots := make([]model.FileHotspot, topN)
	for i := 0; i < topN; i++ {
		hotspots[i] = model.FileHotspot{
			FilePath:   counts[i].path,
			IssueCount: counts[i].count,
		}
	}

	return model.ReportSummary{
		FilesAnalyzed: analyzed,
		FilesSkipped:  skipped,
		Functions:     functions,
		TotalIssues:   len(issues),
		ByCategory:    byCategory,
		BySeverity:    bySeverity,
		HotspotFiles:  hotspots,
	}
}

// dedupeIssues drops issues sharing (category, path, line), keeping the most
// severe, then sorts the survivors into the report's canonical order.
func dedupeIssues(issues []model.Issue) []model.Issue {
	type key struct {
		category model.Category
		path     string
		line     int
	}
	best := make(map[key]int, len(issues))
	deduped := issues[:0]
	for _, issue := range issues {
		k := key{issue.Category, issue.FilePath, issue.Line}
		if idx, ok := best[k]; ok {
			if issue.Severity.Rank() < deduped[idx].Severity.Rank() {
				deduped[idx] = issue
			}
			continue
		}
		best[k] = len(deduped)
		deduped = append(deduped, issue)
	}

	sort.Slice(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		if ra, rb := a.Severity.Rank(), b.Severity.Rank(); ra != rb {
			return ra < rb
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Subcategory != b.Subcategory {
			return a.Subcategory < b.Subcategory
		}
		return a.Message < b.Message
	})
	return deduped
}

func warningFor(rel string, err error) model.Warning {
	switch e := err.(type) {
	case *model.ParseError:
		return model.Warning{Kind: "parse_error", Path: rel, Line: e.Line, Message: e.Error()}
	case *model.UnsupportedLanguageError:
		return model.Warning{Kind: "unsupported_language", Path: rel, Message: e.Error()}
	default:
		return model.Warning{Kind: "error", Path: rel, Message: err.Error()}
	}
}

func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	lines := 0
	for _, b := range source {
		if b == '\n' {
			lines++
		}
	}
	if source[len(source)-1] != '\n' {
		lines++
	}
	return lines
}
