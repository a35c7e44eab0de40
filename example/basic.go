package main

import (
	"encoding/json"
	"fmt"

	"github.com/goodluckxu-go/apidoc"
	"github.com/goodluckxu-go/apidoc/openapi"
)

const userSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"age": {"type": "integer", "minimum": 18},
		"email": {
			"type": "string",
			"format": "email",
			"description": "Recommended for receipts"
		}
	},
	"required": ["name", "age"]
}`

func main() {
	var schema openapi.Schema
	if err := json.Unmarshal([]byte(userSchema), &schema); err != nil {
		panic(err)
	}

	api := apidoc.APIDoc()

	example := api.Generate(&schema)
	buf, _ := json.MarshalIndent(example, "", "  ")
	fmt.Println(string(buf))

	report := api.ValidateString(`{"name": "Ada", "age": 30}`, &schema)
	fmt.Println(apidoc.FormatReport(report))

	report = api.ValidateString(`{"name": "", "age": 7}`, &schema)
	fmt.Println(apidoc.FormatReport(report))
}
