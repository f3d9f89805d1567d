// Package service holds the booking system's business logic.  Services are
// plain structs over repository.Store; handlers translate their errors to
// HTTP responses.
package service

import (
	"sort"
	"strings"
)

// ValidationError reports invalid input detected before any store access.
// Fields maps a JSON field name to a short reason.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Message: "invalid request", Fields: map[string]string{field: reason}}
}
