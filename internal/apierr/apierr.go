// Package apierr defines the error taxonomy surfaced by the HTTP API.
// Handlers translate these into status codes and structured JSON bodies;
// anything else becomes a 500.
package apierr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnauthenticated maps to 401.
	ErrUnauthenticated = errors.New("authentication credentials were not provided")

	// ErrForbidden maps to 403.
	ErrForbidden = errors.New("you do not have permission to perform this action")
)

// ValidationError reports invalid request fields. Fields maps a field name
// to its failure messages, serialized as the 400 response body.
type ValidationError struct {
	Fields map[string][]string
}

// Validation builds a ValidationError for a single field.
func Validation(field, msg string) *ValidationError {
	e := &ValidationError{Fields: map[string][]string{}}
	e.Add(field, msg)
	return e
}

// Add appends a failure message for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NotFoundError reports a missing resource and maps to 404.
type NotFoundError struct {
	Resource string
}

// NotFound builds a NotFoundError for the named resource.
func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}
