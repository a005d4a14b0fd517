package config

// Default maintainability formula constants. Published so results are
// reproducible: MI = 100 - a*ln(avg_cc) - b*ln(max(1, code_lines)) + c*comment_ratio.
const (
	DefaultCyclomaticWeight = 5.0  // a
	DefaultSizeWeight       = 10.0 // b
	DefaultCommentWeight    = 15.0 // c
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:    "codesage",
			Version: "1.0.0",
		},
		Concurrency: ConcurrencyConfig{
			Workers:              8,
			MaxParallelDetectors: 4,
			FailFast:             false,
		},
		Analysis: AnalysisConfig{
			ShingleWindow:        50,
			MinDuplicateTokens:   50,
			NormalizeIdentifiers: true,
			NestingGuard:         64,
		},
		Detectors: DetectorsConfig{
			Complexity: ComplexityDetectorConfig{
				Enabled:            true,
				CyclomaticHigh:     10,
				CyclomaticCritical: 20,
				MaxNestingDepth:    4,
			},
			Size: SizeDetectorConfig{
				Enabled:          true,
				MaxFunctionLines: 50,
				MaxParameters:    5,
				MaxFileLines:     500,
			},
			Duplication: DuplicationDetectorConfig{
				Enabled:        true,
				RatioThreshold: 0.10,
			},
			Bugs: BugDetectorConfig{
				Enabled: true,
			},
		},
		Scoring: ScoringConfig{
			Maintainability: MaintainabilityConfig{
				CyclomaticWeight: DefaultCyclomaticWeight,
				SizeWeight:       DefaultSizeWeight,
				CommentWeight:    DefaultCommentWeight,
			},
			Debt: DebtConfig{
				CostTable:           defaultCostTable(),
				CyclomaticThreshold: 10,
				MinutesPerPoint:     2,
			},
		},
		Exclusions: ExclusionsConfig{
			FilePatterns: []string{
				"**/vendor/**", "**/node_modules/**",
				"**/generated/**", "**/.git/**",
			},
			FunctionPatterns: []string{},
		},
		Severity: SeverityConfig{
			MinSeverity: "P3",
		},
		Output: OutputConfig{
			Formats:            []string{"json"},
			OutputDir:          ".",
			IncludeSuggestions: true,
			IncludeMetrics:     true,
			HotspotsTopN:       10,
		},
		Logging: LoggingConfig{
			Level:            "info",
			IncludeTimestamp: true,
		},
	}
}

// defaultCostTable is the fixed remediation cost in minutes keyed by
// (category, severity). Values are a configuration decision, held stable
// across runs so debt estimates are reproducible.
func defaultCostTable() map[string]map[string]int {
	return map[string]map[string]int{
		"bug":             {"P0": 120, "P1": 60, "P2": 30, "P3": 15},
		"security":        {"P0": 240, "P1": 120, "P2": 60, "P3": 30},
		"performance":     {"P0": 90, "P1": 45, "P2": 25, "P3": 10},
		"maintainability": {"P0": 60, "P1": 30, "P2": 20, "P3": 10},
		"style":           {"P0": 20, "P1": 10, "P2": 5, "P3": 2},
		"documentation":   {"P0": 15, "P1": 10, "P2": 5, "P3": 2},
		"test_coverage":   {"P0": 60, "P1": 30, "P2": 15, "P3": 5},
	}
}
