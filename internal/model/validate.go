package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateWorkItem checks a WorkItem for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the item is valid.
func ValidateWorkItem(w *WorkItem) error {
	var ve ValidationError

	// Name: required and at most 500 characters.
	name := strings.TrimSpace(w.Name)
	if name == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	} else if len([]rune(name)) > 500 {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "must be 500 characters or fewer"})
	}

	if w.WorkspaceID == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "workspace_id", Message: "is required"})
	}

	// Duration: zero means "no estimate"; negative values are nonsense.
	if w.Duration < 0 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "duration",
			Message: fmt.Sprintf("must not be negative, got %g", w.Duration),
		})
	}

	// Status: must be a valid enum value (closed set).
	if !w.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid value %q", w.Status),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateLink checks a Link for constraint violations.
// Self-loops are rejected here as well as at graph build time so that bad
// links never reach the database.
func ValidateLink(l *Link) error {
	var ve ValidationError

	if l.SourceID == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "source_id", Message: "is required"})
	}
	if l.TargetID == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "target_id", Message: "is required"})
	}
	if l.WorkspaceID == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "workspace_id", Message: "is required"})
	}
	if l.SourceID != "" && l.SourceID == l.TargetID {
		ve.Errors = append(ve.Errors, FieldError{Field: "target_id", Message: "must differ from source_id"})
	}
	if !l.Kind.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "kind",
			Message: fmt.Sprintf("invalid value %q", l.Kind),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
