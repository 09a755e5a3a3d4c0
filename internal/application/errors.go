package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrTokenInvalid       = errors.New("reset link is invalid")
	ErrTokenExpired       = errors.New("reset link has expired")
	ErrPersistence        = errors.New("persistence failure")
)

// ValidationError reports rejected input per field.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// EntryError is the failure of one kitchen batch entry.
type EntryError struct {
	Name string
	Err  error
}

// BatchError collects the entries of a batch that could not be applied.
type BatchError struct {
	Failed []EntryError
}

func (e *BatchError) Error() string {
	names := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		names = append(names, f.Name)
	}
	return fmt.Sprintf("%d kitchen entries failed: %s", len(e.Failed), strings.Join(names, ", "))
}

// Rejected reports whether every failed entry was invalid input.
func (e *BatchError) Rejected() bool {
	for _, f := range e.Failed {
		var verr *ValidationError
		if !errors.As(f.Err, &verr) {
			return false
		}
	}
	return len(e.Failed) > 0
}

// Unwrap exposes the per-entry causes to errors.Is/As.
func (e *BatchError) Unwrap() []error {
	out := make([]error, 0, len(e.Failed))
	for _, f := range e.Failed {
		out = append(out, f.Err)
	}
	return out
}

func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
