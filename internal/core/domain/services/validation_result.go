package services

import "fmt"

// FieldError describes a single validation failure. Field is a dot-separated
// path into the submitted payload (e.g. "payment.status"); Index is the
// zero-based row position for errors produced while validating imported rows,
// and nil for single-payload validations.
type FieldError struct {
	Field   string
	Message string
	Index   *int
}

// ValidationResult collects every failure found during one validation call.
// A fresh result is produced per call; validators never retain state between
// invocations.
type ValidationResult struct {
	Errors []FieldError
}

// IsValid reports whether the validated payload had no failures.
func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) addError(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

func (r *ValidationResult) addRowError(field, message string, index int) {
	i := index
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message, Index: &i})
}

func (e FieldError) String() string {
	if e.Index != nil {
		return fmt.Sprintf("row %d, %s: %s", *e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
