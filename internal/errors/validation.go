package errors

import (
	"fmt"
	"slices"
	"strings"
)

type fieldError struct {
	field   string
	message string
}

// ValidationBuilder collects field problems in the order they are found.
// Build returns nil when there are none, or one InvalidArgument error listing
// them all with a "fields" meta entry keyed by field name.
type ValidationBuilder struct {
	errs []fieldError
}

// NewValidationBuilder creates an empty builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{}
}

// Field records a problem with field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.errs = append(vb.errs, fieldError{field: field, message: message})
	return vb
}

// Fieldf records a formatted problem with field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

// RequiredField records a missing dependency or value
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// InvalidField records a value that is present but unusable
func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

// Build returns the collected problems as an InvalidArgument error
func (vb *ValidationBuilder) Build() error {
	if len(vb.errs) == 0 {
		return nil
	}

	parts := make([]string, 0, len(vb.errs))
	fields := make(map[string][]string, len(vb.errs))
	for _, fe := range vb.errs {
		parts = append(parts, fe.field+": "+fe.message)
		fields[fe.field] = append(fields[fe.field], fe.message)
	}
	return InvalidArgument("validation failed: "+strings.Join(parts, "; ")).
		WithMeta("fields", fields)
}

// ValidateEnum records field when value is not one of allowed
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	if !slices.Contains(allowed, value) {
		vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
	}
}
