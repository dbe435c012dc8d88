package errors

import (
	"fmt"
)

// ParseError represents a configuration or artifact parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// LookupError reports a history reference that matched no entry, or more than one.
type LookupError struct {
	Ref       string
	Ambiguous bool
}

// NewLookupError constructs a LookupError for an unknown reference.
func NewLookupError(ref string) error {
	return &LookupError{Ref: ref}
}

// NewAmbiguousLookupError constructs a LookupError for a reference matching several entries.
func NewAmbiguousLookupError(ref string) error {
	return &LookupError{Ref: ref, Ambiguous: true}
}

func (e *LookupError) Error() string {
	if e == nil {
		return ""
	}
	if e.Ambiguous {
		return fmt.Sprintf("lookup error: %q matches more than one history entry", e.Ref)
	}
	return fmt.Sprintf("lookup error: no history entry matches %q", e.Ref)
}

// ExportError indicates a failure writing an exported file.
type ExportError struct {
	Path string
	Err  error
}

// NewExportError constructs an ExportError for the given destination.
func NewExportError(path string, err error) error {
	return &ExportError{Path: path, Err: err}
}

func (e *ExportError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("export error [%s]: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("export error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *ExportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
