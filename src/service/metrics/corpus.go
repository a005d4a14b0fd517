// Package metrics holds the per-run analysis corpus: every parsed file,
// every scored function unit, and the resolved duplicate matches. Detectors
// read from the corpus instead of re-walking source trees.
package metrics

import "codesage/src/model"

// FunctionRecord pairs a function unit with its complexity score
type FunctionRecord struct {
	Fn         *model.FunctionUnit
	Complexity model.ComplexityResult
}

// Corpus is populated by the analysis controller's single-threaded reduce
// step and is read-only afterwards, so detectors may read it concurrently.
type Corpus struct {
	files     []*model.FileComplexity
	functions []*FunctionRecord
	matches   []model.DuplicationMatch
}

// NewCorpus creates an empty corpus
func NewCorpus() *Corpus {
	return &Corpus{}
}

// AddFile records one analyzed file
func (c *Corpus) AddFile(fc *model.FileComplexity) {
	c.files = append(c.files, fc)
}

// AddFunction records one scored unit. File-level units are included; their
// Fn.FileLevel flag is set and their node spans the whole file.
func (c *Corpus) AddFunction(rec *FunctionRecord) {
	c.functions = append(c.functions, rec)
}

// SetMatches stores the resolved duplicate matches
func (c *Corpus) SetMatches(matches []model.DuplicationMatch) {
	c.matches = matches
}

// Files returns all analyzed files in path order
func (c *Corpus) Files() []*model.FileComplexity {
	return c.files
}

// Functions returns all scored units, file-level units included
func (c *Corpus) Functions() []*FunctionRecord {
	return c.functions
}

// Matches returns the resolved duplicate matches
func (c *Corpus) Matches() []model.DuplicationMatch {
	return c.matches
}
