package errors

import (
	"fmt"
	"time"
)

// Error types for the astrolabe analysis pipeline
type ErrorType string

const (
	ErrorTypeUnsupportedLanguage ErrorType = "unsupported_language"
	ErrorTypeParse               ErrorType = "parse"
	ErrorTypeConfig              ErrorType = "config"
	ErrorTypeFile                ErrorType = "file"
)

// UnsupportedLanguageError is returned when analysis is requested for a
// language that has no classifier table. The pipeline fails fast and produces
// no partial report.
type UnsupportedLanguageError struct {
	Type       ErrorType
	Language   string
	Suggestion string
	Timestamp  time.Time
}

// NewUnsupportedLanguageError creates a new unsupported-language error
func NewUnsupportedLanguageError(language, suggestion string) *UnsupportedLanguageError {
	return &UnsupportedLanguageError{
		Type:       ErrorTypeUnsupportedLanguage,
		Language:   language,
		Suggestion: suggestion,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *UnsupportedLanguageError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("language %q is not supported for analysis (did you mean %q?)", e.Language, e.Suggestion)
	}
	return fmt.Sprintf("language %q is not supported for analysis", e.Language)
}

// ParseError represents a failure to produce a syntax tree for a file
type ParseError struct {
	Type       ErrorType
	Path       string
	Underlying error
	Timestamp  time.Time
}

// NewParseError creates a new parse error
func NewParseError(path string, err error) *ParseError {
	return &ParseError{
		Type:       ErrorTypeParse,
		Path:       path,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse failed for %s: %v", e.Path, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// FileError represents a file-related error during batch runs
type FileError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewFileError creates a new file error
func NewFileError(op, path string, err error) *FileError {
	return &FileError{
		Type:       ErrorTypeFile,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("file %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *FileError) Unwrap() error {
	return e.Underlying
}

// MultiError aggregates failures from a batch of files
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error, dropping nil entries
func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
