package apidoc

import (
	"fmt"
	"strings"

	"github.com/goodluckxu-go/apidoc/openapi"

	json "github.com/json-iterator/go"
)

// Validate compiles the schema and checks the payload in one call. A schema
// that fails to compile yields an invalid report with a single custom error
// instead of an error return, so callers always get a report.
func Validate(payload any, schema *openapi.Schema) *ValidationReport {
	return validateWithLang(payload, schema, defaultLang())
}

// ValidateString decodes a raw JSON payload before validating it. Malformed
// JSON yields an invalid report rather than an error.
func ValidateString(payload string, schema *openapi.Schema) *ValidationReport {
	return validateStringWithLang(payload, schema, defaultLang())
}

func validateWithLang(payload any, schema *openapi.Schema, lng Lang) *ValidationReport {
	v, err := compileWithLang(schema, lng)
	if err != nil {
		return compileFailureReport(lng, err)
	}
	return v.Validate(payload)
}

func validateStringWithLang(payload string, schema *openapi.Schema, lng Lang) *ValidationReport {
	var decoded any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return &ValidationReport{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "payload",
				Message: lng.InvalidPayload(err.Error()),
				Type:    kindCustom,
			}},
			Summary: summarize(1),
		}
	}
	return validateWithLang(decoded, schema, lng)
}

// Validate checks a decoded payload against the compiled schema.
func (v *Validator) Validate(payload any) *ValidationReport {
	issues := v.check(payload, v.schema, "")
	report := &ValidationReport{
		Valid:  len(issues) == 0,
		Errors: []ValidationError{},
	}
	if report.Valid {
		report.Summary = "Payload is valid"
		report.Warnings = v.recommendations(payload, v.schema, "")
		return report
	}
	for _, is := range issues {
		field := fieldFromPath(is.path)
		report.Errors = append(report.Errors, ValidationError{
			Field:         field,
			Path:          is.path,
			Message:       is.message,
			Type:          is.kind,
			Expected:      is.expected,
			Received:      is.received,
			FixSuggestion: v.lang.Suggestion(is.kind, field, is.expected),
		})
	}
	report.Summary = summarize(len(report.Errors))
	return report
}

func compileFailureReport(lng Lang, err error) *ValidationReport {
	return &ValidationReport{
		Valid: false,
		Errors: []ValidationError{{
			Field:   "schema",
			Message: lng.InvalidSchema(err.Error()),
			Type:    kindCustom,
		}},
		Summary: summarize(1),
	}
}

func summarize(n int) string {
	unit := "error"
	if n != 1 {
		unit = "errors"
	}
	return fmt.Sprintf("Validation failed with %d %s", n, unit)
}

// recommendations warns about absent optional properties whose descriptions
// mark them as recommended. Only valid payloads are scanned, object by
// object, following the payload shape.
func (v *Validator) recommendations(payload any, s *openapi.Schema, path string) (warnings []ValidationWarning) {
	if s == nil || s.Ref != "" {
		return
	}
	if len(s.AllOf) > 0 {
		for _, sub := range s.AllOf {
			warnings = append(warnings, v.recommendations(payload, sub, path)...)
		}
		return
	}
	m, ok := toAnyMap(payload)
	if !ok {
		if list, lok := toAnySlice(payload); lok && s.Items != nil {
			for i, el := range list {
				warnings = append(warnings, v.recommendations(el, s.Items, indexPath(path, i))...)
			}
		}
		return
	}
	for _, name := range s.Properties.Keys() {
		prop := s.Properties.Value(name)
		if child, present := m[name]; present {
			warnings = append(warnings, v.recommendations(child, prop, joinPath(path, name))...)
			continue
		}
		if inArray(name, s.Required) || prop == nil {
			continue
		}
		if !hasRecommendCue(prop.Description) {
			continue
		}
		warnings = append(warnings, ValidationWarning{
			Field:      joinPath(path, name),
			Message:    v.lang.Recommended(name),
			Type:       warningTypeOptional,
			Suggestion: prop.Description,
		})
	}
	return
}

func hasRecommendCue(description string) bool {
	if description == "" {
		return false
	}
	lower := strings.ToLower(description)
	for _, cue := range recommendCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
