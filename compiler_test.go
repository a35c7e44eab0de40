package apidoc

import (
	"encoding/json"
	"testing"

	"github.com/goodluckxu-go/apidoc/openapi"

	"github.com/stretchr/testify/assert"
)

func mustSchema(t *testing.T, jsonStr string) *openapi.Schema {
	t.Helper()
	var s openapi.Schema
	err := json.Unmarshal([]byte(jsonStr), &s)
	assert.NoError(t, err)
	return &s
}

var userSchemaJson = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"age": {"type": "integer", "minimum": 18},
		"email": {"type": "string", "format": "email", "description": "Recommended for receipts"},
		"tags": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["name", "age"]
}`

func TestCompileValid(t *testing.T) {
	v, err := Compile(mustSchema(t, userSchemaJson))
	assert.NoError(t, err)
	assert.NotNil(t, v)
}

func TestCompileNilSchema(t *testing.T) {
	v, err := Compile(nil)
	assert.Nil(t, v)
	var cErr *SchemaCompileError
	assert.ErrorAs(t, err, &cErr)
}

func TestCompileUnknownType(t *testing.T) {
	v, err := Compile(mustSchema(t, `{"type": "integre"}`))
	assert.Nil(t, v)
	var cErr *SchemaCompileError
	assert.ErrorAs(t, err, &cErr)
	assert.Contains(t, cErr.Error(), "unknown type")
}

func TestCompileBadPattern(t *testing.T) {
	v, err := Compile(mustSchema(t, `{"type": "string", "pattern": "[unclosed"}`))
	assert.Nil(t, v)
	var cErr *SchemaCompileError
	assert.ErrorAs(t, err, &cErr)
	assert.Contains(t, cErr.Error(), "invalid pattern")
}

func TestCompileNestedBadPattern(t *testing.T) {
	_, err := Compile(mustSchema(t, `{
		"type": "object",
		"properties": {
			"items": {"type": "array", "items": {"type": "string", "pattern": "(("}}
		}
	}`))
	assert.Error(t, err)
}

func TestCompileBadTypeInCombinator(t *testing.T) {
	_, err := Compile(mustSchema(t, `{"oneOf": [{"type": "string"}, {"type": "strng"}]}`))
	assert.Error(t, err)
}

func TestCompileCyclicSchema(t *testing.T) {
	s := &openapi.Schema{Type: "object", Properties: &openapi.Properties{}}
	s.Properties.Set("child", s)
	v, err := Compile(s)
	assert.NoError(t, err)
	assert.NotNil(t, v)
}

func TestCompileUnresolvedRefTolerated(t *testing.T) {
	v, err := Compile(mustSchema(t, `{
		"type": "object",
		"properties": {"user": {"$ref": "#/components/schemas/User"}}
	}`))
	assert.NoError(t, err)
	report := v.Validate(map[string]any{"user": "anything at all"})
	assert.True(t, report.Valid)
}

func TestCompilePatternReuse(t *testing.T) {
	v, err := Compile(mustSchema(t, `{
		"type": "object",
		"properties": {
			"a": {"type": "string", "pattern": "^\\d+$"},
			"b": {"type": "string", "pattern": "^\\d+$"}
		}
	}`))
	assert.NoError(t, err)
	assert.Len(t, v.patterns, 1)
}
