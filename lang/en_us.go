package lang

import "fmt"

type EnUs struct {
}

func (e *EnUs) Required(field string) string {
	return fmt.Sprintf("The %v is mandatory", field)
}

func (e *EnUs) Type(field string, expected string, received string) string {
	return fmt.Sprintf("The value of %v must be of type %v, received %v", field, expected, received)
}

func (e *EnUs) Format(field string, format string) string {
	return fmt.Sprintf("The value of %v is not a valid %v", field, format)
}

func (e *EnUs) Lt(field string, val float64) string {
	return fmt.Sprintf("The value of %v must be less than %v", field, val)
}

func (e *EnUs) Lte(field string, val float64) string {
	return fmt.Sprintf("The value of %v must be less than or equal to %v", field, val)
}

func (e *EnUs) Gt(field string, val float64) string {
	return fmt.Sprintf("The value of %v must be greater than %v", field, val)
}

func (e *EnUs) Gte(field string, val float64) string {
	return fmt.Sprintf("The value of %v must be greater than or equal to %v", field, val)
}

func (e *EnUs) MultipleOf(field string, val float64) string {
	return fmt.Sprintf("The value of %v must be a multiple of %v", field, val)
}

func (e *EnUs) Max(field string, val uint64) string {
	return fmt.Sprintf("The maximum length of %v is %v", field, val)
}

func (e *EnUs) Min(field string, val uint64) string {
	return fmt.Sprintf("The minimum length of %v is %v", field, val)
}

func (e *EnUs) Regexp(field string, val string) string {
	return fmt.Sprintf("The value of %v does not satisfy the regular expression %v", field, val)
}

func (e *EnUs) Enum(field string, val []any) string {
	s := ""
	for _, v := range val {
		s += fmt.Sprintf(",%v", v)
	}
	if s != "" {
		s = s[1:]
	}
	return fmt.Sprintf("The value of %v must be in %v", field, s)
}

func (e *EnUs) AdditionalProperty(field string) string {
	return fmt.Sprintf("The %v is not allowed by the schema", field)
}

func (e *EnUs) NoMatch(field string) string {
	return fmt.Sprintf("The value of %v does not match any allowed schema", field)
}

func (e *EnUs) Recommended(field string) string {
	return fmt.Sprintf("The optional %v is recommended", field)
}

func (e *EnUs) InvalidPayload(detail string) string {
	return fmt.Sprintf("The payload is not valid JSON: %v", detail)
}

func (e *EnUs) InvalidSchema(detail string) string {
	return fmt.Sprintf("The schema could not be compiled: %v", detail)
}

func (e *EnUs) Suggestion(kind string, field string, expected any) string {
	switch kind {
	case "required":
		return fmt.Sprintf("Add the %v field to the payload", field)
	case "type":
		return fmt.Sprintf("Change the value of %v to type %v", field, expected)
	case "format":
		return fmt.Sprintf("Use a valid %v value for %v", expected, field)
	case "pattern":
		return fmt.Sprintf("Make the value of %v match the pattern %v", field, expected)
	case "minLength":
		return fmt.Sprintf("Lengthen the value of %v to at least %v", field, expected)
	case "maxLength":
		return fmt.Sprintf("Shorten the value of %v to at most %v", field, expected)
	case "minimum":
		return fmt.Sprintf("Increase the value of %v to at least %v", field, expected)
	case "maximum":
		return fmt.Sprintf("Decrease the value of %v to at most %v", field, expected)
	case "enum":
		return fmt.Sprintf("Use one of the allowed values for %v", field)
	}
	return ""
}
