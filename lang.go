package apidoc

// Lang renders validation messages and fix suggestions. Implementations live
// in the lang package; lang.EnUs is the default.
type Lang interface {
	Required(field string) string
	Type(field string, expected string, received string) string
	Format(field string, format string) string
	Lt(field string, val float64) string
	Lte(field string, val float64) string
	Gt(field string, val float64) string
	Gte(field string, val float64) string
	MultipleOf(field string, val float64) string
	Max(field string, val uint64) string
	Min(field string, val uint64) string
	Regexp(field string, val string) string
	Enum(field string, val []any) string
	AdditionalProperty(field string) string
	NoMatch(field string) string
	Recommended(field string) string
	InvalidPayload(detail string) string
	InvalidSchema(detail string) string
	// Suggestion renders a fix hint for an error kind, or "" when the kind
	// has no template.
	Suggestion(kind string, field string, expected any) string
}
