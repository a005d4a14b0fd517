package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"codesage/src/model"
)

// Loader handles configuration loading from YAML files
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load loads configuration from a YAML file with environment variable
// substitution, then validates it. Validation failures are fatal and
// surface before any analysis begins.
// Environment variables can be referenced in the YAML using:
//   - ${VAR_NAME} - substitutes the value of VAR_NAME, empty string if not set
//   - ${VAR_NAME:-default} - substitutes VAR_NAME or "default" if not set
func (l *Loader) Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	filePath := l.resolveConfigPath(configPath)
	if filePath == "" {
		// No config file found, use defaults
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := l.expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) resolveConfigPath(configPath string) string {
	if configPath != "" {
		return configPath
	}

	defaults := []string{
		"codesage.yaml",
		"config/codesage.yaml",
		filepath.Join(os.Getenv("HOME"), ".codesage", "config.yaml"),
	}

	for _, path := range defaults {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// expandEnvVars expands ${VAR} and ${VAR:-default} references
func (l *Loader) expandEnvVars(input string) string {
	re := regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		submatches := re.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		defaultVal := ""
		if len(submatches) >= 3 {
			defaultVal = submatches[2]
		}

		if val, exists := os.LookupEnv(varName); exists {
			return val
		}

		return defaultVal
	})
}

var validSeverities = map[string]bool{"P0": true, "P1": true, "P2": true, "P3": true}

var validCategories = map[string]bool{
	"bug": true, "security": true, "performance": true,
	"maintainability": true, "style": true, "documentation": true,
	"test_coverage": true,
}

// Validate checks thresholds, formula constants, and the debt cost table.
// Any failure is a ConfigurationError and aborts the run before analysis.
func (c *Config) Validate() error {
	if c.Concurrency.Workers < 1 {
		return &model.ConfigurationError{Field: "concurrency.workers", Reason: "must be >= 1"}
	}
	if c.Concurrency.MaxParallelDetectors < 1 {
		return &model.ConfigurationError{Field: "concurrency.max_parallel_detectors", Reason: "must be >= 1"}
	}
	if c.Analysis.ShingleWindow < 2 {
		return &model.ConfigurationError{Field: "analysis.shingle_window", Reason: "must be >= 2"}
	}
	if c.Analysis.MinDuplicateTokens == 0 {
		c.Analysis.MinDuplicateTokens = c.Analysis.ShingleWindow
	}
	if c.Analysis.MinDuplicateTokens < c.Analysis.ShingleWindow {
		return &model.ConfigurationError{Field: "analysis.min_duplicate_tokens", Reason: "must be >= shingle_window"}
	}
	if c.Analysis.NestingGuard < 1 {
		return &model.ConfigurationError{Field: "analysis.nesting_guard", Reason: "must be >= 1"}
	}
	if c.Detectors.Complexity.CyclomaticHigh < 1 {
		return &model.ConfigurationError{Field: "detectors.complexity.cyclomatic_high", Reason: "must be >= 1"}
	}
	if c.Detectors.Complexity.CyclomaticCritical < c.Detectors.Complexity.CyclomaticHigh {
		return &model.ConfigurationError{Field: "detectors.complexity.cyclomatic_critical", Reason: "must be >= cyclomatic_high"}
	}
	if t := c.Detectors.Duplication.RatioThreshold; t < 0 || t > 1 {
		return &model.ConfigurationError{Field: "detectors.duplication.ratio_threshold", Reason: "must be in [0,1]"}
	}
	if c.Scoring.Maintainability.CyclomaticWeight < 0 || c.Scoring.Maintainability.SizeWeight < 0 {
		return &model.ConfigurationError{Field: "scoring.maintainability", Reason: "weights must be >= 0"}
	}
	if c.Scoring.Debt.CyclomaticThreshold < 1 {
		return &model.ConfigurationError{Field: "scoring.debt.cyclomatic_threshold", Reason: "must be >= 1"}
	}
	if c.Scoring.Debt.MinutesPerPoint < 0 {
		return &model.ConfigurationError{Field: "scoring.debt.minutes_per_point", Reason: "must be >= 0"}
	}
	for cat, row := range c.Scoring.Debt.CostTable {
		if !validCategories[cat] {
			return &model.ConfigurationError{Field: "scoring.debt.cost_table", Reason: fmt.Sprintf("unknown category %q", cat)}
		}
		for sev, minutes := range row {
			if !validSeverities[sev] {
				return &model.ConfigurationError{Field: "scoring.debt.cost_table", Reason: fmt.Sprintf("unknown severity %q", sev)}
			}
			if minutes < 0 {
				return &model.ConfigurationError{Field: "scoring.debt.cost_table", Reason: fmt.Sprintf("%s/%s: minutes must be >= 0", cat, sev)}
			}
		}
	}
	if !validSeverities[c.Severity.MinSeverity] {
		return &model.ConfigurationError{Field: "severity.min_severity", Reason: "must be one of P0, P1, P2, P3"}
	}
	validFormats := map[string]bool{"json": true, "markdown": true, "md": true, "sarif": true}
	for _, f := range c.Output.Formats {
		if !validFormats[f] {
			return &model.ConfigurationError{Field: "output.formats", Reason: fmt.Sprintf("unknown format %q", f)}
		}
	}
	if c.Output.HotspotsTopN < 0 {
		return &model.ConfigurationError{Field: "output.hotspots_top_n", Reason: "must be >= 0"}
	}
	return nil
}
