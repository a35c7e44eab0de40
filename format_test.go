package apidoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatErrorsEmpty(t *testing.T) {
	assert.Equal(t, "No validation errors", FormatErrors(nil))
	assert.Equal(t, "No validation errors", FormatErrors([]ValidationError{}))
}

func TestFormatErrorsSingular(t *testing.T) {
	out := FormatErrors([]ValidationError{
		{Field: "name", Path: "name", Message: "The name is mandatory", Type: "required"},
	})
	assert.True(t, strings.HasPrefix(out, "1 validation error:"))
	assert.Contains(t, out, "1. [required] name: The name is mandatory")
}

func TestFormatErrorsPlural(t *testing.T) {
	out := FormatErrors([]ValidationError{
		{Field: "name", Path: "name", Message: "m1", Type: "required"},
		{Field: "age", Path: "age", Message: "m2", Type: "type"},
		{Field: "email", Path: "email", Message: "m3", Type: "format"},
	})
	assert.True(t, strings.HasPrefix(out, "3 validation errors:"))
	assert.Contains(t, out, "2. [type] age: m2")
	assert.Contains(t, out, "3. [format] email: m3")
}

func TestFormatErrorsOptionalFieldsOmitted(t *testing.T) {
	out := FormatErrors([]ValidationError{
		{Field: "name", Path: "name", Message: "missing", Type: "required"},
	})
	assert.NotContains(t, out, "expected:")
	assert.NotContains(t, out, "received:")
	assert.NotContains(t, out, "fix:")
}

func TestFormatErrorsDetailLines(t *testing.T) {
	out := FormatErrors([]ValidationError{{
		Field:         "status",
		Path:          "status",
		Message:       "not allowed",
		Type:          "enum",
		Expected:      []any{"active", "inactive"},
		Received:      "paused",
		FixSuggestion: "Use one of the allowed values for status",
	}})
	assert.Contains(t, out, "expected: [active inactive]")
	assert.Contains(t, out, "received: paused")
	assert.Contains(t, out, "fix: Use one of the allowed values for status")
}

func TestFormatErrorsNumericValues(t *testing.T) {
	out := FormatErrors([]ValidationError{{
		Field:    "age",
		Path:     "age",
		Message:  "too small",
		Type:     "minimum",
		Expected: float64(18),
		Received: float64(7),
	}})
	assert.Contains(t, out, "expected: 18")
	assert.Contains(t, out, "received: 7")
}

func TestFormatReportValid(t *testing.T) {
	out := FormatReport(&ValidationReport{Valid: true, Summary: "Payload is valid"})
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "Payload is valid")
	assert.NotContains(t, out, "Warnings:")
}

func TestFormatReportValidWithWarnings(t *testing.T) {
	out := FormatReport(&ValidationReport{
		Valid:   true,
		Summary: "Payload is valid",
		Warnings: []ValidationWarning{{
			Field:      "email",
			Message:    "The optional email is recommended",
			Type:       "optional",
			Suggestion: "Recommended for receipts",
		}},
	})
	assert.Contains(t, out, "Warnings:")
	assert.Contains(t, out, "- email: The optional email is recommended (Recommended for receipts)")
}

func TestFormatReportInvalid(t *testing.T) {
	out := FormatReport(&ValidationReport{
		Valid:   false,
		Summary: "Validation failed with 1 error",
		Errors: []ValidationError{
			{Field: "name", Path: "name", Message: "The name is mandatory", Type: "required"},
		},
	})
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "Validation failed with 1 error")
	assert.Contains(t, out, "1 validation error:")
}

func TestFormatReportNil(t *testing.T) {
	assert.Equal(t, "", FormatReport(nil))
}

func TestFormatReportEndToEnd(t *testing.T) {
	report := Validate(map[string]any{"age": "x"}, mustSchema(t, userSchemaJson))
	out := FormatReport(report)
	assert.Contains(t, out, "Validation failed with 2 errors")
	assert.Contains(t, out, "[required] name:")
	assert.Contains(t, out, "[type] age:")
}
