package config

// Config is the root configuration structure
type Config struct {
	Agent       AgentConfig       `yaml:"agent"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Detectors   DetectorsConfig   `yaml:"detectors"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Exclusions  ExclusionsConfig  `yaml:"exclusions"`
	Severity    SeverityConfig    `yaml:"severity"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// AgentConfig contains tool metadata
type AgentConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	Workers              int  `yaml:"workers"`
	MaxParallelDetectors int  `yaml:"max_parallel_detectors"`
	FailFast             bool `yaml:"fail_fast"`
}

// AnalysisConfig contains core engine settings
type AnalysisConfig struct {
	// ShingleWindow is the duplicate-detection window length W, in tokens.
	ShingleWindow int `yaml:"shingle_window"`
	// MinDuplicateTokens is the minimum matched span length L; spans
	// shorter than this are discarded. Zero means "same as the window".
	MinDuplicateTokens int `yaml:"min_duplicate_tokens"`
	// NormalizeIdentifiers maps identifiers and literals to placeholders
	// so copy-paste-with-renaming duplicates are still found.
	NormalizeIdentifiers bool `yaml:"normalize_identifiers"`
	// NestingGuard aborts a unit's cognitive computation past this depth.
	NestingGuard int `yaml:"nesting_guard"`
}

// DetectorsConfig contains settings for all rule detectors
type DetectorsConfig struct {
	Complexity  ComplexityDetectorConfig  `yaml:"complexity"`
	Size        SizeDetectorConfig        `yaml:"size"`
	Duplication DuplicationDetectorConfig `yaml:"duplication"`
	Bugs        BugDetectorConfig         `yaml:"bugs"`
}

// ComplexityDetectorConfig contains complexity detector thresholds
type ComplexityDetectorConfig struct {
	Enabled bool `yaml:"enabled"`
	// CyclomaticHigh flags a function at P1; CyclomaticCritical at P0.
	CyclomaticHigh     int `yaml:"cyclomatic_high"`
	CyclomaticCritical int `yaml:"cyclomatic_critical"`
	MaxNestingDepth    int `yaml:"max_nesting_depth"`
}

// SizeDetectorConfig contains size detector thresholds
type SizeDetectorConfig struct {
	Enabled          bool `yaml:"enabled"`
	MaxFunctionLines int  `yaml:"max_function_lines"`
	MaxParameters    int  `yaml:"max_parameters"`
	MaxFileLines     int  `yaml:"max_file_lines"`
}

// DuplicationDetectorConfig contains duplication detector thresholds
type DuplicationDetectorConfig struct {
	Enabled bool `yaml:"enabled"`
	// RatioThreshold flags a match whose similarity ratio is at or above it.
	RatioThreshold float64 `yaml:"ratio_threshold"`
}

// BugDetectorConfig contains bug-pattern detector settings
type BugDetectorConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ScoringConfig contains the maintainability formula constants and the
// technical-debt cost table. Both are configuration, never derived at
// runtime, so the same report is always reproducible from the same input.
type ScoringConfig struct {
	Maintainability MaintainabilityConfig `yaml:"maintainability"`
	Debt            DebtConfig            `yaml:"debt"`
}

// MaintainabilityConfig holds the published constants of
// MI = 100 - a*ln(avg_cyclomatic) - b*ln(max(1, code_lines)) + c*comment_ratio
type MaintainabilityConfig struct {
	CyclomaticWeight float64 `yaml:"cyclomatic_weight"` // a
	SizeWeight       float64 `yaml:"size_weight"`       // b
	CommentWeight    float64 `yaml:"comment_weight"`    // c
}

// DebtConfig holds the remediation cost table keyed by (category, severity),
// in minutes, plus the penalty for cyclomatic excess.
type DebtConfig struct {
	CostTable           map[string]map[string]int `yaml:"cost_table"`
	CyclomaticThreshold int                       `yaml:"cyclomatic_threshold"`
	MinutesPerPoint     int                       `yaml:"minutes_per_point"`
}

// ExclusionsConfig contains exclusion patterns
type ExclusionsConfig struct {
	FilePatterns     []string `yaml:"file_patterns"`
	Files            []string `yaml:"files"`
	FunctionPatterns []string `yaml:"function_patterns"`
}

// SeverityConfig contains severity filtering settings
type SeverityConfig struct {
	// MinSeverity drops issues less severe than this level (P0..P3).
	MinSeverity string `yaml:"min_severity"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Formats            []string `yaml:"formats"`
	OutputDir          string   `yaml:"output_dir"`
	IncludeSuggestions bool     `yaml:"include_suggestions"`
	IncludeMetrics     bool     `yaml:"include_metrics"`
	HotspotsTopN       int      `yaml:"hotspots_top_n"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level            string `yaml:"level"`
	File             string `yaml:"file"`
	IncludeTimestamp bool   `yaml:"include_timestamp"`
}
