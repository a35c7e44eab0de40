package apidoc

// ValidationReport is the result of checking a payload against a compiled
// schema. Valid is true only when Errors is empty; Warnings never affect it.
type ValidationReport struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings,omitempty"`
	Summary  string              `json:"summary"`
}

// ValidationError describes a single constraint violation.
type ValidationError struct {
	Field         string `json:"field"`
	Path          string `json:"path"`
	Message       string `json:"message"`
	Type          string `json:"type"`
	Expected      any    `json:"expected,omitempty"`
	Received      any    `json:"received,omitempty"`
	FixSuggestion string `json:"fix_suggestion,omitempty"`
}

// ValidationWarning flags an absent optional property whose description
// recommends supplying it. Suggestion echoes the property description.
type ValidationWarning struct {
	Field      string `json:"field"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Suggestion string `json:"suggestion,omitempty"`
}

// GenerateOptions tunes example generation.
type GenerateOptions struct {
	// RequiredOnly drops optional object properties from generated examples.
	RequiredOnly bool
	// MaxDepth bounds object nesting; zero or negative selects the default.
	MaxDepth int
}

// issue is a raw violation collected during a check walk, before language
// rendering into a ValidationError.
type issue struct {
	path     string
	kind     string
	message  string
	expected any
	received any
}
