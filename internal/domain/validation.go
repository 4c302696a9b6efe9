package domain

import "strings"

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors is returned when a request fails validation.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NewValidationError builds a single-field ValidationErrors.
func NewValidationError(field, message string, value interface{}) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message, Value: value}}
}
