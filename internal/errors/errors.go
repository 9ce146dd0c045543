// Package errors provides a structured error type (BuildError) for
// category-based classification of content pipeline failures.
package errors

import (
	"fmt"
	"strings"
)

// ErrorCategory classifies a BuildError for reporting and exit-code mapping.
type ErrorCategory string

const (
	// Per-document content and rendering errors
	CategoryContent   ErrorCategory = "content"
	CategoryComponent ErrorCategory = "component"

	// Whole-set and configuration errors
	CategoryIndex  ErrorCategory = "index"
	CategoryConfig ErrorCategory = "config"

	// Pipeline and infrastructure errors
	CategoryBuild    ErrorCategory = "build"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how an error affects the build.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Aborts the whole build
	SeverityError   ErrorSeverity = "error"   // Excludes one document, build continues
	SeverityWarning ErrorSeverity = "warning" // Recorded, no exclusion
)

// ContextFields carries structured context for a BuildError.
type ContextFields map[string]any

// BuildError is a structured error with category, severity, and context.
type BuildError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *BuildError) WithContext(key string, value any) *BuildError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new BuildError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *BuildError {
	return &BuildError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BuildError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BuildError {
	return &BuildError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category ErrorCategory) bool {
	if be, ok := err.(*BuildError); ok {
		return be.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or CategoryInternal if
// the error is not a BuildError.
func GetCategory(err error) ErrorCategory {
	if be, ok := err.(*BuildError); ok {
		return be.Category
	}
	return CategoryInternal
}

// IsFatal reports whether an error aborts the whole build.
func IsFatal(err error) bool {
	if be, ok := err.(*BuildError); ok {
		return be.Severity == SeverityFatal
	}
	return false
}

// MalformedContent reports a document with a missing or invalid required
// field. Local to one document: the document is excluded, the build continues.
func MalformedContent(path, field string, cause error) *BuildError {
	return &BuildError{
		Category: CategoryContent,
		Severity: SeverityError,
		Message:  fmt.Sprintf("malformed content in %s: field %q", path, field),
		Cause:    cause,
		Context:  ContextFields{"path": path, "field": field},
	}
}

// UnknownComponent reports a body reference to a component name absent from
// the registry. Local to one document: resolution fails atomically for that
// document.
func UnknownComponent(slug, name string) *BuildError {
	return &BuildError{
		Category: CategoryComponent,
		Severity: SeverityError,
		Message:  fmt.Sprintf("document %q references unknown component %q", slug, name),
		Context:  ContextFields{"slug": slug, "component": name},
	}
}

// DuplicateComponent reports a second registration of a component name.
// Startup-time and fatal: the registry is populated exactly once.
func DuplicateComponent(name string) *BuildError {
	return &BuildError{
		Category: CategoryComponent,
		Severity: SeverityFatal,
		Message:  fmt.Sprintf("component %q registered twice", name),
		Context:  ContextFields{"component": name},
	}
}

// DuplicateSlug reports two documents resolving to the same slug. A whole-set
// invariant violation: fatal, aborts the build.
func DuplicateSlug(slug string, paths []string) *BuildError {
	return &BuildError{
		Category: CategoryIndex,
		Severity: SeverityFatal,
		Message:  fmt.Sprintf("slug %q claimed by multiple documents: %s", slug, strings.Join(paths, ", ")),
		Context:  ContextFields{"slug": slug, "paths": paths},
	}
}
