package apidoc

import "regexp"

// Validation error kinds reported in ValidationError.Type.
const (
	kindRequired  = "required"
	kindType      = "type"
	kindFormat    = "format"
	kindPattern   = "pattern"
	kindMinLength = "minLength"
	kindMaxLength = "maxLength"
	kindMinimum   = "minimum"
	kindMaximum   = "maximum"
	kindEnum      = "enum"
	kindCustom    = "custom"
)

const warningTypeOptional = "optional"

// Schema type tags.
const (
	typeNull    = "null"
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// defaultMaxDepth bounds generation recursion when the caller does not.
// Large enough that ordinary schemas never hit it.
const defaultMaxDepth = 10

// Description cues that mark an absent optional property as worth a warning.
var recommendCues = []string{"recommended", "should"}

// Named string formats with enforceable checks. Formats not listed here are
// advisory and accepted verbatim.
var formatPatterns = map[string]*regexp.Regexp{
	"email":     regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`),
	"uri":       regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://\S+$`),
	"uuid":      regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`),
	"date":      regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	"date-time": regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[Tt]\d{2}:\d{2}:\d{2}(\.\d+)?([Zz]|[+-]\d{2}:\d{2})$`),
	"ssn":       regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`),
	"phone":     regexp.MustCompile(`^\+?[0-9][0-9\s().-]{6,}$`),
	"ipv4":      regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`),
	"ipv6":      regexp.MustCompile(`^([0-9a-fA-F]{0,4}:){2,7}[0-9a-fA-F]{0,4}$`),
}

// Example literals emitted for known formats.
var formatExamples = map[string]string{
	"email":     "user@example.com",
	"uri":       "https://example.com",
	"url":       "https://example.com",
	"uuid":      "123e4567-e89b-12d3-a456-426614174000",
	"date":      "2024-01-15",
	"date-time": "2024-01-15T09:30:00Z",
	"ssn":       "123-45-6789",
	"phone":     "555-123-4567",
	"ipv4":      "192.168.1.1",
	"ipv6":      "2001:db8::1",
	"hostname":  "example.com",
}

// Canonical literals for recognizable pattern shapes. Matching is by
// substring of the pattern source, anchors ignored.
var patternLiterals = []struct {
	needle  string
	literal string
}{
	{`\d{3}-\d{2}-\d{4}`, "123-45-6789"},
	{`\d{3}-\d{3}-\d{4}`, "555-123-4567"},
	{`[A-Z]{2}\d{6}`, "AB123456"},
}

type LogLevel uint

var logLevel = LogInfo | LogDebug | LogWarning | LogError | LogFail

const (
	LogInfo LogLevel = 1 << iota
	LogDebug
	LogWarning
	LogError
	LogFail
)
