package apidoc

import (
	"github.com/goodluckxu-go/apidoc/lang"
	"github.com/goodluckxu-go/apidoc/openapi"
)

// APIDoc It is a newly created schema interpretation engine
func APIDoc() *Engine {
	return &Engine{
		log:      &levelHandleLogger{log: &defaultLogger{}},
		lang:     &lang.EnUs{},
		maxDepth: defaultMaxDepth,
	}
}

type Engine struct {
	lang     Lang
	log      Logger
	maxDepth int
}

// SetLang It is to set the validation language function
func (e *Engine) SetLang(lang Lang) {
	e.lang = lang
}

// SetLogger It is a function for setting custom logs
func (e *Engine) SetLogger(log Logger) {
	e.log = &levelHandleLogger{log: log}
}

// Logger It is a method of obtaining logs
func (e *Engine) Logger() Logger {
	return e.log
}

// SetMaxDepth It is to set the default generation depth bound
func (e *Engine) SetMaxDepth(depth int) {
	if depth > 0 {
		e.maxDepth = depth
	}
}

// Compile turns a schema into a reusable Validator using the engine
// language for messages.
func (e *Engine) Compile(schema *openapi.Schema) (*Validator, error) {
	v, err := compileWithLang(schema, e.lang)
	if err != nil {
		e.log.Debug("schema compile failed: %v", err)
		return nil, err
	}
	return v, nil
}

// Generate produces an example payload using the engine depth bound unless
// the options override it.
func (e *Engine) Generate(schema *openapi.Schema, opts ...GenerateOptions) any {
	return newGenerator(normalizeOptions(opts, e.maxDepth)).value(schema, 0)
}

// Validate compiles and checks in one call, reporting compile failures as
// a single custom error in the report.
func (e *Engine) Validate(payload any, schema *openapi.Schema) *ValidationReport {
	return validateWithLang(payload, schema, e.lang)
}

// ValidateString decodes raw JSON before validating it.
func (e *Engine) ValidateString(payload string, schema *openapi.Schema) *ValidationReport {
	return validateStringWithLang(payload, schema, e.lang)
}

func defaultLang() Lang {
	return &lang.EnUs{}
}
