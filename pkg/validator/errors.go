package validator

import (
	"strings"
)

// ValidationError describes one invalid or missing field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of field errors.
type ValidationErrors []ValidationError

// Error joins all messages with "; ".
func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Add appends a field error.
func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, ValidationError{Field: field, Message: message})
}

// Required records an error when value is empty after trimming spaces.
func (e *ValidationErrors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "is required")
	}
}

// Has reports whether field has at least one error.
func (e ValidationErrors) Has(field string) bool {
	for _, ve := range e {
		if ve.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when there are no errors, otherwise the collection itself.
func (e ValidationErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
