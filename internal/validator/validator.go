// Package validator provides a Validator type for accumulating field-level
// validation errors in the order they were found.
package validator

import (
	"regexp"
	"slices"
)

// EmailRX is a compiled regular expression for basic email validation.
var EmailRX = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// FieldError names a field and the constraint it violated.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator holds the field errors collected so far.
// A Validator with no errors is considered valid.
type Validator struct {
	Errors []FieldError
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{}
}

// Valid returns true if no errors have been recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// Has reports whether key already has an error recorded.
func (v *Validator) Has(key string) bool {
	return slices.ContainsFunc(v.Errors, func(e FieldError) bool { return e.Field == key })
}

// AddError records key as failing with the given message.
// If key already has an error it is not overwritten, so the first
// failure for a field is always the one that is reported.
func (v *Validator) AddError(key, message string) {
	if !v.Has(key) {
		v.Errors = append(v.Errors, FieldError{Field: key, Message: message})
	}
}

// Check adds an error for key with message only when ok is false.
// Use this as a single-line guard:
//
//	v.Check(len(title) > 0, "title", "must be provided")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Map returns the collected errors keyed by field name.
func (v *Validator) Map() map[string]string {
	m := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		m[e.Field] = e.Message
	}
	return m
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	return slices.Contains(list, value)
}

// Matches returns true if value matches the provided compiled regexp.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}
