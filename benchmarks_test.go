package apidoc

import (
	"encoding/json"
	"testing"

	"github.com/goodluckxu-go/apidoc/openapi"
)

func benchSchema() *openapi.Schema {
	var schema openapi.Schema
	if err := json.Unmarshal([]byte(userSchemaJson), &schema); err != nil {
		panic(err)
	}
	return &schema
}

func benchPayload() map[string]any {
	return map[string]any{
		"name":  "ada",
		"age":   30,
		"email": "ada@example.com",
		"tags":  []any{"admin"},
	}
}

func BenchmarkCompile(b *testing.B) {
	schema := benchSchema()
	for i := 0; i < b.N; i++ {
		if _, err := Compile(schema); err != nil {
			panic(err)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	schema := benchSchema()
	for i := 0; i < b.N; i++ {
		Generate(schema)
	}
}

func BenchmarkValidate(b *testing.B) {
	v, err := Compile(benchSchema())
	if err != nil {
		panic(err)
	}
	payload := benchPayload()
	for i := 0; i < b.N; i++ {
		v.Validate(payload)
	}
}

func BenchmarkValidateString(b *testing.B) {
	schema := benchSchema()
	buf, err := json.Marshal(benchPayload())
	if err != nil {
		panic(err)
	}
	body := string(buf)
	for i := 0; i < b.N; i++ {
		ValidateString(body, schema)
	}
}

func BenchmarkCatalogFind(b *testing.B) {
	var doc openapi.OpenAPI
	if err := json.Unmarshal([]byte(userServiceJson), &doc); err != nil {
		panic(err)
	}
	cat, err := NewCatalog(&doc)
	if err != nil {
		panic(err)
	}
	for i := 0; i < b.N; i++ {
		if _, _, ok := cat.Find("GET", "/users/42"); !ok {
			panic("endpoint not found")
		}
	}
}
