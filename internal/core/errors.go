package core

import (
	"errors"
	"strings"
)

// Error kinds surfaced by the chunking and validation engine.
// Callers match them with errors.Is; messages carry the detail.
var (
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrUnknownStrategy    = errors.New("unknown chunking strategy")
	ErrExtraction         = errors.New("extraction failed")
	ErrMetadataValidation = errors.New("metadata validation failed")
)

// ValidationError lists every schema violation found for one metadata map.
type ValidationError struct {
	DocumentType string
	Missing      []string
	InvalidTypes []string
	Failed       []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if len(e.Missing) > 0 {
		parts = append(parts, "Missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.InvalidTypes) > 0 {
		parts = append(parts, "Invalid field types: "+strings.Join(e.InvalidTypes, ", "))
	}
	if len(e.Failed) > 0 {
		parts = append(parts, "Failed validations: "+strings.Join(e.Failed, ", "))
	}
	return strings.Join(parts, ". ")
}

// Is lets errors.Is(err, ErrMetadataValidation) match a *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrMetadataValidation
}

// Violations returns all violation descriptions in reporting order.
func (e *ValidationError) Violations() []string {
	out := make([]string, 0, len(e.Missing)+len(e.InvalidTypes)+len(e.Failed))
	out = append(out, e.Missing...)
	out = append(out, e.InvalidTypes...)
	return append(out, e.Failed...)
}

// HasViolations reports whether anything was collected.
func (e *ValidationError) HasViolations() bool {
	return len(e.Missing)+len(e.InvalidTypes)+len(e.Failed) > 0
}
