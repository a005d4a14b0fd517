package model

import "fmt"

// ParseError is a located syntax error propagated untouched from the
// parsing layer. The affected unit is skipped with a recorded warning.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

// UnsupportedLanguageError means no grammar is registered for the file
type UnsupportedLanguageError struct {
	Path      string
	Extension string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language for %s (extension %q)", e.Path, e.Extension)
}

// UnsupportedConstructError marks a grammar node with no generic mapping.
// The node is treated as an opaque Other leaf so analysis continues.
type UnsupportedConstructError struct {
	Language Language
	Kind     string
	Line     int
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported %s construct %q at line %d", e.Language, e.Kind, e.Line)
}

// ComplexityOverflowError means the nesting guard tripped; the unit's
// cognitive score is reported as unavailable rather than wrong.
type ComplexityOverflowError struct {
	Function string
	Depth    int
}

func (e *ComplexityOverflowError) Error() string {
	return fmt.Sprintf("cognitive complexity aborted for %s: nesting depth %d exceeds guard", e.Function, e.Depth)
}

// ConfigurationError is fatal and surfaced before any analysis begins
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}
