package domain

import (
	"sort"
	"strings"
)

// ValidationError carries field-scoped messages, rendered to clients as
// {"field": ["message", ...]}.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError(field string, msgs ...string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: msgs}}
}

// Add appends a message for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// HasErrors reports whether any field carries a message.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
