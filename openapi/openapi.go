package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// OpenAPI is the root of an OpenAPI v3.0/v3.1 document.
// See https://github.com/OAI/OpenAPI-Specification/blob/main/versions/3.1.0.md
type OpenAPI struct {
	// REQUIRED. The version number of the OpenAPI Specification that the document uses.
	OpenAPI string `json:"openapi"`

	// REQUIRED. Provides metadata about the API.
	Info *Info `json:"info"`

	// An array of Server Objects, which provide connectivity information to a target server.
	Servers []*Server `json:"servers"`

	// The available paths and operations for the API.
	Paths *Paths `json:"paths"`

	// An element to hold various reusable objects for the document.
	Components *Components `json:"components"`

	// A list of tags used by the document with additional metadata.
	Tags []*Tag `json:"tags"`

	// Additional external documentation.
	ExternalDocs *ExternalDocs `json:"externalDocs"`

	// This object MAY be extended with Specification Extensions.
	Extensions map[string]any
}

func (o *OpenAPI) marshalField() []marshalField {
	return []marshalField{
		{"openapi", o.OpenAPI, o.OpenAPI == ""},
		{"info", o.Info, o.Info == nil},
		{"servers", o.Servers, o.Servers == nil},
		{"paths", o.Paths, o.Paths == nil},
		{"components", o.Components, o.Components == nil},
		{"tags", o.Tags, o.Tags == nil},
		{"externalDocs", o.ExternalDocs, o.ExternalDocs == nil},
	}
}

func (o *OpenAPI) MarshalJSON() ([]byte, error) {
	return marshalJson(o.marshalField(), o.Extensions)
}

func (o *OpenAPI) UnmarshalJSON(buf []byte) (err error) {
	type alias OpenAPI
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{
		"openapi", "info", "servers", "paths", "components", "tags", "externalDocs",
	}); err != nil {
		return
	}
	*o = OpenAPI(x)
	return
}

func (o *OpenAPI) Validate() error {
	if !regexp.MustCompile(`^3\.[01](\.\d+)*$`).MatchString(o.OpenAPI) {
		return verifyError("openapi", fmt.Errorf("must be 3.0.* or 3.1.*"))
	}

	if o.Info == nil {
		return verifyError("info", fmt.Errorf("must be a non empty object"))
	}
	if err := o.Info.Validate(); err != nil {
		return verifyError("info", err)
	}

	for k, v := range o.Servers {
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("servers[%v]", k), err)
		}
	}

	if o.Paths == nil && o.Components == nil {
		return verifyError("paths", fmt.Errorf("document must contain paths or components"))
	}
	if o.Paths != nil {
		if err := o.Paths.Validate(); err != nil {
			return verifyError("paths", err)
		}
	}
	if o.Components != nil {
		if err := o.Components.Validate(); err != nil {
			return verifyError("components", err)
		}
	}

	for k, v := range o.Tags {
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("tags[%v]", k), err)
		}
	}
	return nil
}

// SchemaByRef resolves a local "#/components/schemas/<name>" reference.
// External and unknown references return nil.
func (o *OpenAPI) SchemaByRef(ref string) *Schema {
	const prefix = "#/components/schemas/"
	if !strings.HasPrefix(ref, prefix) {
		return nil
	}
	if o.Components == nil || o.Components.Schemas == nil {
		return nil
	}
	name := strings.TrimPrefix(ref, prefix)
	name = strings.ReplaceAll(name, "~1", "/")
	name = strings.ReplaceAll(name, "~0", "~")
	return o.Components.Schemas[name]
}

// Dereference replaces local component schema references with the referenced
// schemas in place. External references and reference chains that loop back on
// themselves keep their $ref marker. The resulting schema graph may contain
// cycles; consumers bound their own recursion.
func (o *OpenAPI) Dereference() {
	seen := map[*Schema]bool{}
	if o.Components != nil {
		for k, v := range o.Components.Schemas {
			o.Components.Schemas[k] = o.resolveSchema(v, seen)
		}
	}
	if o.Paths == nil {
		return
	}
	for _, path := range o.Paths.Keys() {
		item := o.Paths.Value(path)
		if item == nil {
			continue
		}
		for _, p := range item.Parameters {
			if p != nil {
				p.Schema = o.resolveSchema(p.Schema, seen)
			}
		}
		for _, mo := range item.Operations() {
			for _, p := range mo.Op.Parameters {
				if p != nil {
					p.Schema = o.resolveSchema(p.Schema, seen)
				}
			}
			if mo.Op.RequestBody != nil {
				for _, mt := range mo.Op.RequestBody.Content {
					if mt != nil {
						mt.Schema = o.resolveSchema(mt.Schema, seen)
					}
				}
			}
			for _, resp := range mo.Op.Responses {
				if resp == nil {
					continue
				}
				for _, mt := range resp.Content {
					if mt != nil {
						mt.Schema = o.resolveSchema(mt.Schema, seen)
					}
				}
			}
		}
	}
}

func (o *OpenAPI) resolveSchema(s *Schema, seen map[*Schema]bool) *Schema {
	if s == nil {
		return nil
	}
	if s.Ref != "" {
		if seen[s] {
			return s
		}
		seen[s] = true
		if target := o.SchemaByRef(s.Ref); target != nil {
			return o.resolveSchema(target, seen)
		}
		return s
	}
	if seen[s] {
		return s
	}
	seen[s] = true
	s.Items = o.resolveSchema(s.Items, seen)
	for _, k := range s.Properties.Keys() {
		s.Properties.Set(k, o.resolveSchema(s.Properties.Value(k), seen))
	}
	for i, v := range s.OneOf {
		s.OneOf[i] = o.resolveSchema(v, seen)
	}
	for i, v := range s.AnyOf {
		s.AnyOf[i] = o.resolveSchema(v, seen)
	}
	for i, v := range s.AllOf {
		s.AllOf[i] = o.resolveSchema(v, seen)
	}
	if s.AdditionalProperties != nil && s.AdditionalProperties.Schema != nil {
		s.AdditionalProperties.Schema = o.resolveSchema(s.AdditionalProperties.Schema, seen)
	}
	return s
}

// Info provides metadata about the API.
type Info struct {
	// REQUIRED. The title of the API.
	Title string `json:"title"`

	// A description of the API.
	Description string `json:"description"`

	// A URL to the Terms of Service for the API.
	TermsOfService string `json:"termsOfService"`

	// The contact information for the exposed API.
	Contact *Contact `json:"contact"`

	// The license information for the exposed API.
	License *License `json:"license"`

	// REQUIRED. The version of the OpenAPI document.
	Version string `json:"version"`

	Extensions map[string]any
}

func (i *Info) marshalField() []marshalField {
	return []marshalField{
		{"title", i.Title, i.Title == ""},
		{"description", i.Description, i.Description == ""},
		{"termsOfService", i.TermsOfService, i.TermsOfService == ""},
		{"contact", i.Contact, i.Contact == nil},
		{"license", i.License, i.License == nil},
		{"version", i.Version, i.Version == ""},
	}
}

func (i *Info) MarshalJSON() ([]byte, error) {
	return marshalJson(i.marshalField(), i.Extensions)
}

func (i *Info) UnmarshalJSON(buf []byte) (err error) {
	type alias Info
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{
		"title", "description", "termsOfService", "contact", "license", "version",
	}); err != nil {
		return
	}
	*i = Info(x)
	return
}

func (i *Info) Validate() error {
	if i.Title == "" {
		return verifyError("title", fmt.Errorf("must be a non empty string"))
	}
	if i.Version == "" {
		return verifyError("version", fmt.Errorf("must be a non empty string"))
	}
	return nil
}

// Contact information for the exposed API.
type Contact struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Email string `json:"email"`

	Extensions map[string]any
}

func (c *Contact) MarshalJSON() ([]byte, error) {
	return marshalJson([]marshalField{
		{"name", c.Name, c.Name == ""},
		{"url", c.URL, c.URL == ""},
		{"email", c.Email, c.Email == ""},
	}, c.Extensions)
}

func (c *Contact) UnmarshalJSON(buf []byte) (err error) {
	type alias Contact
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{"name", "url", "email"}); err != nil {
		return
	}
	*c = Contact(x)
	return
}

// License information for the exposed API.
type License struct {
	Name string `json:"name"`
	URL  string `json:"url"`

	Extensions map[string]any
}

func (l *License) MarshalJSON() ([]byte, error) {
	return marshalJson([]marshalField{
		{"name", l.Name, l.Name == ""},
		{"url", l.URL, l.URL == ""},
	}, l.Extensions)
}

func (l *License) UnmarshalJSON(buf []byte) (err error) {
	type alias License
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{"name", "url"}); err != nil {
		return
	}
	*l = License(x)
	return
}

// Server represents a server hosting the described API.
type Server struct {
	// REQUIRED. A URL to the target host. Variable substitutions are marked with {brackets}.
	URL string `json:"url"`

	// An optional string describing the host designated by the URL.
	Description string `json:"description"`

	// A map between a variable name and its value.
	Variables map[string]*ServerVariable `json:"variables"`

	Extensions map[string]any
}

func (s *Server) MarshalJSON() ([]byte, error) {
	return marshalJson([]marshalField{
		{"url", s.URL, s.URL == ""},
		{"description", s.Description, s.Description == ""},
		{"variables", s.Variables, s.Variables == nil},
	}, s.Extensions)
}

func (s *Server) UnmarshalJSON(buf []byte) (err error) {
	type alias Server
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{"url", "description", "variables"}); err != nil {
		return
	}
	*s = Server(x)
	return
}

func (s *Server) Validate() error {
	if s.URL == "" {
		return verifyError("url", fmt.Errorf("must be a non empty string"))
	}
	return nil
}

// ServerVariable describes a server URL template variable.
type ServerVariable struct {
	Enum        []string `json:"enum"`
	Default     string   `json:"default"`
	Description string   `json:"description"`

	Extensions map[string]any
}

func (s *ServerVariable) MarshalJSON() ([]byte, error) {
	return marshalJson([]marshalField{
		{"enum", s.Enum, s.Enum == nil},
		{"default", s.Default, s.Default == ""},
		{"description", s.Description, s.Description == ""},
	}, s.Extensions)
}

func (s *ServerVariable) UnmarshalJSON(buf []byte) (err error) {
	type alias ServerVariable
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{"enum", "default", "description"}); err != nil {
		return
	}
	*s = ServerVariable(x)
	return
}

// Tag adds metadata to a single tag used by operations.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	Extensions map[string]any
}

func (t *Tag) MarshalJSON() ([]byte, error) {
	return marshalJson([]marshalField{
		{"name", t.Name, t.Name == ""},
		{"description", t.Description, t.Description == ""},
	}, t.Extensions)
}

func (t *Tag) UnmarshalJSON(buf []byte) (err error) {
	type alias Tag
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{"name", "description"}); err != nil {
		return
	}
	*t = Tag(x)
	return
}

func (t *Tag) Validate() error {
	if t.Name == "" {
		return verifyError("name", fmt.Errorf("must be a non empty string"))
	}
	return nil
}

// ExternalDocs references external documentation.
type ExternalDocs struct {
	Description string `json:"description"`
	URL         string `json:"url"`

	Extensions map[string]any
}

func (e *ExternalDocs) MarshalJSON() ([]byte, error) {
	return marshalJson([]marshalField{
		{"description", e.Description, e.Description == ""},
		{"url", e.URL, e.URL == ""},
	}, e.Extensions)
}

func (e *ExternalDocs) UnmarshalJSON(buf []byte) (err error) {
	type alias ExternalDocs
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{"description", "url"}); err != nil {
		return
	}
	*e = ExternalDocs(x)
	return
}

// Paths holds the relative paths to individual endpoints and their operations.
// Key order follows the document.
type Paths struct {
	keys []string
	m    map[string]*PathItem

	Extensions map[string]any
}

func (p *Paths) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	first := true
	for _, k := range p.keys {
		if !first {
			b.WriteByte(',')
		}
		first = false
		writeJsonKey(&b, k)
		val, err := json.Marshal(p.m[k])
		if err != nil {
			return nil, err
		}
		b.Write(val)
	}
	for k, v := range p.Extensions {
		if !first {
			b.WriteByte(',')
		}
		first = false
		writeJsonKey(&b, k)
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (p *Paths) UnmarshalJSON(buf []byte) (err error) {
	dec := json.NewDecoder(bytes.NewReader(buf))
	var t json.Token
	if t, err = dec.Token(); err != nil {
		return
	}
	if d, ok := t.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("paths must be an object")
	}
	for dec.More() {
		if t, err = dec.Token(); err != nil {
			return
		}
		key, _ := t.(string)
		if strings.HasPrefix(key, "x-") {
			var val any
			if err = dec.Decode(&val); err != nil {
				return
			}
			if p.Extensions == nil {
				p.Extensions = map[string]any{}
			}
			p.Extensions[key] = val
			continue
		}
		var item PathItem
		if err = dec.Decode(&item); err != nil {
			return
		}
		p.Set(key, &item)
	}
	_, err = dec.Token()
	return
}

func (p *Paths) Validate() error {
	for _, k := range p.keys {
		if k == "" || k[0] != '/' {
			return verifyError(k, fmt.Errorf("key must start with \"/\""))
		}
		if err := p.m[k].Validate(); err != nil {
			return verifyError(k, err)
		}
	}
	return nil
}

// Set stores a path item, keeping first-insertion order.
func (p *Paths) Set(path string, item *PathItem) {
	if p.m == nil {
		p.m = map[string]*PathItem{}
	}
	if _, ok := p.m[path]; !ok {
		p.keys = append(p.keys, path)
	}
	p.m[path] = item
}

func (p *Paths) Value(path string) *PathItem {
	if p == nil {
		return nil
	}
	return p.m[path]
}

func (p *Paths) Keys() []string {
	if p == nil {
		return nil
	}
	return p.keys
}

func (p *Paths) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	Ref string `json:"$ref"`

	Summary     string `json:"summary"`
	Description string `json:"description"`

	Get     *Operation `json:"get"`
	Put     *Operation `json:"put"`
	Post    *Operation `json:"post"`
	Delete  *Operation `json:"delete"`
	Options *Operation `json:"options"`
	Head    *Operation `json:"head"`
	Patch   *Operation `json:"patch"`
	Trace   *Operation `json:"trace"`

	// A list of parameters that are applicable for all the operations described under this path.
	Parameters []*Parameter `json:"parameters"`

	Extensions map[string]any
}

type MethodOperation struct {
	Method string
	Op     *Operation
}

// Operations lists the defined operations in a fixed method order.
func (p *PathItem) Operations() []MethodOperation {
	all := []MethodOperation{
		{"GET", p.Get},
		{"PUT", p.Put},
		{"POST", p.Post},
		{"DELETE", p.Delete},
		{"OPTIONS", p.Options},
		{"HEAD", p.Head},
		{"PATCH", p.Patch},
		{"TRACE", p.Trace},
	}
	var list []MethodOperation
	for _, v := range all {
		if v.Op != nil {
			list = append(list, v)
		}
	}
	return list
}

func (p *PathItem) marshalField() []marshalField {
	if p.Ref != "" {
		return []marshalField{
			{"$ref", p.Ref, false},
			{"summary", p.Summary, p.Summary == ""},
			{"description", p.Description, p.Description == ""},
		}
	}
	return []marshalField{
		{"summary", p.Summary, p.Summary == ""},
		{"description", p.Description, p.Description == ""},
		{"get", p.Get, p.Get == nil},
		{"put", p.Put, p.Put == nil},
		{"post", p.Post, p.Post == nil},
		{"delete", p.Delete, p.Delete == nil},
		{"options", p.Options, p.Options == nil},
		{"head", p.Head, p.Head == nil},
		{"patch", p.Patch, p.Patch == nil},
		{"trace", p.Trace, p.Trace == nil},
		{"parameters", p.Parameters, p.Parameters == nil},
	}
}

func (p *PathItem) MarshalJSON() ([]byte, error) {
	return marshalJson(p.marshalField(), p.Extensions)
}

func (p *PathItem) UnmarshalJSON(buf []byte) (err error) {
	type alias PathItem
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{
		"$ref", "summary", "description", "get", "put", "post", "delete",
		"options", "head", "patch", "trace", "parameters",
	}); err != nil {
		return
	}
	*p = PathItem(x)
	return
}

func (p *PathItem) Validate() error {
	for _, v := range p.Operations() {
		if err := v.Op.Validate(); err != nil {
			return verifyError(strings.ToLower(v.Method), err)
		}
	}
	for k, v := range p.Parameters {
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("parameters[%v]", k), err)
		}
	}
	return nil
}

// Operation describes a single API operation on a path.
type Operation struct {
	Tags        []string `json:"tags"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	OperationId string   `json:"operationId"`
	Deprecated  bool     `json:"deprecated"`

	Parameters  []*Parameter         `json:"parameters"`
	RequestBody *RequestBody         `json:"requestBody"`
	Responses   map[string]*Response `json:"responses"`

	Extensions map[string]any
}

func (o *Operation) marshalField() []marshalField {
	return []marshalField{
		{"tags", o.Tags, o.Tags == nil},
		{"summary", o.Summary, o.Summary == ""},
		{"description", o.Description, o.Description == ""},
		{"operationId", o.OperationId, o.OperationId == ""},
		{"deprecated", o.Deprecated, !o.Deprecated},
		{"parameters", o.Parameters, o.Parameters == nil},
		{"requestBody", o.RequestBody, o.RequestBody == nil},
		{"responses", o.Responses, o.Responses == nil},
	}
}

func (o *Operation) MarshalJSON() ([]byte, error) {
	return marshalJson(o.marshalField(), o.Extensions)
}

func (o *Operation) UnmarshalJSON(buf []byte) (err error) {
	type alias Operation
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{
		"tags", "summary", "description", "operationId", "deprecated",
		"parameters", "requestBody", "responses",
	}); err != nil {
		return
	}
	*o = Operation(x)
	return
}

func (o *Operation) Validate() error {
	for k, v := range o.Parameters {
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("parameters[%v]", k), err)
		}
	}
	if o.RequestBody != nil {
		if err := o.RequestBody.Validate(); err != nil {
			return verifyError("requestBody", err)
		}
	}
	for k, v := range o.Responses {
		if v == nil {
			continue
		}
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("responses[%v]", k), err, true)
		}
	}
	return nil
}

// Parameter describes a single operation parameter.
type Parameter struct {
	// REQUIRED. The name of the parameter. Parameter names are case sensitive.
	Name string `json:"name"`

	// REQUIRED. The location of the parameter: "query", "header", "path" or "cookie".
	In string `json:"in"`

	Description string  `json:"description"`
	Required    bool    `json:"required"`
	Deprecated  bool    `json:"deprecated"`
	Schema      *Schema `json:"schema"`
	Example     any     `json:"example"`

	Extensions map[string]any
}

func (p *Parameter) marshalField() []marshalField {
	return []marshalField{
		{"name", p.Name, p.Name == ""},
		{"in", p.In, p.In == ""},
		{"description", p.Description, p.Description == ""},
		{"required", p.Required, !p.Required},
		{"deprecated", p.Deprecated, !p.Deprecated},
		{"schema", p.Schema, p.Schema == nil},
		{"example", p.Example, p.Example == nil},
	}
}

func (p *Parameter) MarshalJSON() ([]byte, error) {
	return marshalJson(p.marshalField(), p.Extensions)
}

func (p *Parameter) UnmarshalJSON(buf []byte) (err error) {
	type alias Parameter
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{
		"name", "in", "description", "required", "deprecated", "schema", "example",
	}); err != nil {
		return
	}
	*p = Parameter(x)
	return
}

func (p *Parameter) Validate() error {
	if p.Name == "" {
		return verifyError("name", fmt.Errorf("must be a non empty string"))
	}
	switch p.In {
	case "query", "header", "path", "cookie":
	default:
		return verifyError("in", fmt.Errorf("must be within \"query\", \"header\", \"path\", \"cookie\""))
	}
	if p.Schema != nil {
		if err := p.Schema.Validate(); err != nil {
			return verifyError("schema", err)
		}
	}
	return nil
}

// RequestBody describes a single request body.
type RequestBody struct {
	Description string                `json:"description"`
	Content     map[string]*MediaType `json:"content"`
	Required    bool                  `json:"required"`

	Extensions map[string]any
}

func (r *RequestBody) MarshalJSON() ([]byte, error) {
	return marshalJson([]marshalField{
		{"description", r.Description, r.Description == ""},
		{"content", r.Content, r.Content == nil},
		{"required", r.Required, !r.Required},
	}, r.Extensions)
}

func (r *RequestBody) UnmarshalJSON(buf []byte) (err error) {
	type alias RequestBody
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{"description", "content", "required"}); err != nil {
		return
	}
	*r = RequestBody(x)
	return
}

func (r *RequestBody) Validate() error {
	if len(r.Content) == 0 {
		return verifyError("content", fmt.Errorf("must be a non empty object"))
	}
	for k, v := range r.Content {
		if v == nil {
			continue
		}
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("content[%v]", k), err, true)
		}
	}
	return nil
}

// Response describes a single response from an API operation.
type Response struct {
	Description string                `json:"description"`
	Content     map[string]*MediaType `json:"content"`

	Extensions map[string]any
}

func (r *Response) MarshalJSON() ([]byte, error) {
	return marshalJson([]marshalField{
		{"description", r.Description, r.Description == ""},
		{"content", r.Content, r.Content == nil},
	}, r.Extensions)
}

func (r *Response) UnmarshalJSON(buf []byte) (err error) {
	type alias Response
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{"description", "content"}); err != nil {
		return
	}
	*r = Response(x)
	return
}

func (r *Response) Validate() error {
	for k, v := range r.Content {
		if v == nil {
			continue
		}
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("content[%v]", k), err, true)
		}
	}
	return nil
}

// MediaType provides a schema and example for the media type identified by its key.
type MediaType struct {
	Schema  *Schema `json:"schema"`
	Example any     `json:"example"`

	Extensions map[string]any
}

func (m *MediaType) MarshalJSON() ([]byte, error) {
	return marshalJson([]marshalField{
		{"schema", m.Schema, m.Schema == nil},
		{"example", m.Example, m.Example == nil},
	}, m.Extensions)
}

func (m *MediaType) UnmarshalJSON(buf []byte) (err error) {
	type alias MediaType
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{"schema", "example"}); err != nil {
		return
	}
	*m = MediaType(x)
	return
}

func (m *MediaType) Validate() error {
	if m.Schema != nil {
		if err := m.Schema.Validate(); err != nil {
			return verifyError("schema", err)
		}
	}
	return nil
}

// Components holds a set of reusable objects.
type Components struct {
	Schemas       map[string]*Schema      `json:"schemas"`
	Parameters    map[string]*Parameter   `json:"parameters"`
	RequestBodies map[string]*RequestBody `json:"requestBodies"`
	Responses     map[string]*Response    `json:"responses"`

	Extensions map[string]any
}

func (c *Components) MarshalJSON() ([]byte, error) {
	return marshalJson([]marshalField{
		{"schemas", c.Schemas, c.Schemas == nil},
		{"parameters", c.Parameters, c.Parameters == nil},
		{"requestBodies", c.RequestBodies, c.RequestBodies == nil},
		{"responses", c.Responses, c.Responses == nil},
	}, c.Extensions)
}

func (c *Components) UnmarshalJSON(buf []byte) (err error) {
	type alias Components
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	if x.Extensions, err = captureExtensions(buf, []string{
		"schemas", "parameters", "requestBodies", "responses",
	}); err != nil {
		return
	}
	*c = Components(x)
	return
}

func (c *Components) Validate() error {
	for k, v := range c.Schemas {
		if v == nil {
			continue
		}
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("schemas[%v]", k), err, true)
		}
	}
	for k, v := range c.Parameters {
		if v == nil {
			continue
		}
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("parameters[%v]", k), err, true)
		}
	}
	for k, v := range c.RequestBodies {
		if v == nil {
			continue
		}
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("requestBodies[%v]", k), err, true)
		}
	}
	for k, v := range c.Responses {
		if v == nil {
			continue
		}
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("responses[%v]", k), err, true)
		}
	}
	return nil
}

// Schema describes the shape of a value: a tagged type plus its constraints.
// It covers the JSON Schema subset the interpretation engine understands;
// unknown keywords are preserved in Extensions and never interpreted.
type Schema struct {
	Ref string `json:"$ref"`

	// The value type: "null", "boolean", "integer", "number", "string", "array" or "object".
	Type   string `json:"type"`
	Format string `json:"format"`
	Enum   []any  `json:"enum"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Default     any    `json:"default"`
	Example     any    `json:"example"`
	Deprecated  bool   `json:"deprecated"`

	// number
	MultipleOf       *float64 `json:"multipleOf"`
	Maximum          *float64 `json:"maximum"`          // <=
	ExclusiveMaximum *float64 `json:"exclusiveMaximum"` // <
	Minimum          *float64 `json:"minimum"`          // >=
	ExclusiveMinimum *float64 `json:"exclusiveMinimum"` // >

	// string
	MaxLength *uint64 `json:"maxLength"`
	MinLength uint64  `json:"minLength"`
	Pattern   string  `json:"pattern"`

	// array
	Items    *Schema `json:"items"`
	MaxItems *uint64 `json:"maxItems"`
	MinItems uint64  `json:"minItems"`

	// object
	Properties           *Properties           `json:"properties"`
	Required             []string              `json:"required"`
	AdditionalProperties *AdditionalProperties `json:"additionalProperties"`

	OneOf []*Schema `json:"oneOf"`
	AnyOf []*Schema `json:"anyOf"`
	AllOf []*Schema `json:"allOf"`

	Extensions map[string]any
}

var schemaKeys = []string{
	"$ref", "type", "format", "enum", "title", "description", "default",
	"example", "examples", "deprecated", "multipleOf", "maximum",
	"exclusiveMaximum", "minimum", "exclusiveMinimum", "maxLength",
	"minLength", "pattern", "items", "maxItems", "minItems", "properties",
	"required", "additionalProperties", "oneOf", "anyOf", "allOf",
}

func (s *Schema) marshalField() []marshalField {
	if s.Ref != "" {
		return []marshalField{
			{"$ref", s.Ref, false},
			{"description", s.Description, s.Description == ""},
		}
	}
	return []marshalField{
		{"type", s.Type, s.Type == ""},
		{"format", s.Format, s.Format == ""},
		{"enum", s.Enum, s.Enum == nil},
		{"title", s.Title, s.Title == ""},
		{"description", s.Description, s.Description == ""},
		{"default", s.Default, s.Default == nil},
		{"example", s.Example, s.Example == nil},
		{"deprecated", s.Deprecated, !s.Deprecated},
		{"multipleOf", s.MultipleOf, s.MultipleOf == nil},
		{"maximum", s.Maximum, s.Maximum == nil},
		{"exclusiveMaximum", s.ExclusiveMaximum, s.ExclusiveMaximum == nil},
		{"minimum", s.Minimum, s.Minimum == nil},
		{"exclusiveMinimum", s.ExclusiveMinimum, s.ExclusiveMinimum == nil},
		{"maxLength", s.MaxLength, s.MaxLength == nil},
		{"minLength", s.MinLength, s.MinLength == 0},
		{"pattern", s.Pattern, s.Pattern == ""},
		{"items", s.Items, s.Items == nil},
		{"maxItems", s.MaxItems, s.MaxItems == nil},
		{"minItems", s.MinItems, s.MinItems == 0},
		{"properties", s.Properties, s.Properties.Len() == 0},
		{"required", s.Required, s.Required == nil},
		{"additionalProperties", s.AdditionalProperties, s.AdditionalProperties == nil},
		{"oneOf", s.OneOf, s.OneOf == nil},
		{"anyOf", s.AnyOf, s.AnyOf == nil},
		{"allOf", s.AllOf, s.AllOf == nil},
	}
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	return marshalJson(s.marshalField(), s.Extensions)
}

func (s *Schema) UnmarshalJSON(buf []byte) (err error) {
	var m map[string]json.RawMessage
	if err = json.Unmarshal(buf, &m); err != nil {
		return
	}
	normalizeBoolBound(m, "exclusiveMaximum", "maximum")
	normalizeBoolBound(m, "exclusiveMinimum", "minimum")
	normalizeTypeList(m)
	normalizeExamples(m)
	if buf, err = json.Marshal(m); err != nil {
		return
	}
	type alias Schema
	var x alias
	if err = json.Unmarshal(buf, &x); err != nil {
		return
	}
	for k, v := range m {
		if inList(k, schemaKeys) {
			continue
		}
		var val any
		if err = json.Unmarshal(v, &val); err != nil {
			return
		}
		if x.Extensions == nil {
			x.Extensions = map[string]any{}
		}
		x.Extensions[k] = val
	}
	*s = Schema(x)
	return
}

func (s *Schema) Validate() error {
	if s.Ref != "" {
		return nil
	}
	switch s.Type {
	case "", "null", "boolean", "integer", "number", "string", "array", "object":
	default:
		return verifyError("type", fmt.Errorf("must be within "+
			"\"null\", \"boolean\", \"integer\", \"number\", \"string\", \"array\", \"object\""))
	}

	if s.Items != nil {
		if err := s.Items.Validate(); err != nil {
			return verifyError("items", err)
		}
	}

	for _, k := range s.Properties.Keys() {
		if v := s.Properties.Value(k); v != nil {
			if err := v.Validate(); err != nil {
				return verifyError(fmt.Sprintf("properties[%v]", k), err)
			}
		}
	}

	if s.AdditionalProperties != nil && s.AdditionalProperties.Schema != nil {
		if err := s.AdditionalProperties.Schema.Validate(); err != nil {
			return verifyError("additionalProperties", err)
		}
	}

	for k, v := range s.OneOf {
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("oneOf[%v]", k), err)
		}
	}
	for k, v := range s.AnyOf {
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("anyOf[%v]", k), err)
		}
	}
	for k, v := range s.AllOf {
		if err := v.Validate(); err != nil {
			return verifyError(fmt.Sprintf("allOf[%v]", k), err)
		}
	}
	return nil
}

// Properties maps property names to schemas, keeping declaration order.
// Generation iterates properties in this order.
type Properties struct {
	keys []string
	m    map[string]*Schema
}

// Set stores a property schema, keeping first-insertion order.
func (p *Properties) Set(name string, s *Schema) {
	if p.m == nil {
		p.m = map[string]*Schema{}
	}
	if _, ok := p.m[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.m[name] = s
}

func (p *Properties) Value(name string) *Schema {
	if p == nil {
		return nil
	}
	return p.m[name]
}

func (p *Properties) Has(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.m[name]
	return ok
}

func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return p.keys
}

func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

func (p *Properties) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		writeJsonKey(&b, k)
		val, err := json.Marshal(p.m[k])
		if err != nil {
			return nil, err
		}
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (p *Properties) UnmarshalJSON(buf []byte) (err error) {
	dec := json.NewDecoder(bytes.NewReader(buf))
	var t json.Token
	if t, err = dec.Token(); err != nil {
		return
	}
	if d, ok := t.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("properties must be an object")
	}
	for dec.More() {
		if t, err = dec.Token(); err != nil {
			return
		}
		name, _ := t.(string)
		var s Schema
		if err = dec.Decode(&s); err != nil {
			return
		}
		p.Set(name, &s)
	}
	_, err = dec.Token()
	return
}

// AdditionalProperties is either a boolean switch or a schema for extra
// object keys. Absent means untyped extras are permitted.
type AdditionalProperties struct {
	Allowed *bool
	Schema  *Schema
}

func (a *AdditionalProperties) MarshalJSON() ([]byte, error) {
	if a.Allowed != nil {
		return json.Marshal(*a.Allowed)
	}
	return json.Marshal(a.Schema)
}

func (a *AdditionalProperties) UnmarshalJSON(buf []byte) (err error) {
	trim := bytes.TrimSpace(buf)
	if bytes.Equal(trim, []byte("true")) || bytes.Equal(trim, []byte("false")) {
		var allowed bool
		if err = json.Unmarshal(trim, &allowed); err != nil {
			return
		}
		a.Allowed = &allowed
		return
	}
	var s Schema
	if err = json.Unmarshal(buf, &s); err != nil {
		return
	}
	a.Schema = &s
	return
}

// Denied reports whether extra keys are explicitly rejected.
func (a *AdditionalProperties) Denied() bool {
	return a != nil && a.Allowed != nil && !*a.Allowed
}

type marshalField struct {
	key       string
	value     any
	omitempty bool
}

func marshalJson(list []marshalField, extensions map[string]any) ([]byte, error) {
	m := map[string]any{}
	if !(len(list) > 0 && list[0].key == "$ref") {
		for k, v := range extensions {
			m[k] = v
		}
	}
	for _, v := range list {
		if v.omitempty {
			continue
		}
		m[v.key] = v.value
	}
	return json.Marshal(m)
}

func writeJsonKey(b *bytes.Buffer, key string) {
	k, _ := json.Marshal(key)
	b.Write(k)
	b.WriteByte(':')
}

// captureExtensions collects the keys of buf not listed in known.
func captureExtensions(buf []byte, known []string) (ext map[string]any, err error) {
	var m map[string]json.RawMessage
	if err = json.Unmarshal(buf, &m); err != nil {
		return
	}
	for k, v := range m {
		if inList(k, known) {
			continue
		}
		var val any
		if err = json.Unmarshal(v, &val); err != nil {
			return
		}
		if ext == nil {
			ext = map[string]any{}
		}
		ext[k] = val
	}
	return
}

// normalizeBoolBound rewrites the OpenAPI 3.0 boolean form of an exclusive
// bound into the 3.1 numeric form.
func normalizeBoolBound(m map[string]json.RawMessage, exclusiveKey, inclusiveKey string) {
	raw, ok := m[exclusiveKey]
	if !ok {
		return
	}
	switch string(bytes.TrimSpace(raw)) {
	case "true":
		if inc, exists := m[inclusiveKey]; exists {
			m[exclusiveKey] = inc
			delete(m, inclusiveKey)
		} else {
			delete(m, exclusiveKey)
		}
	case "false":
		delete(m, exclusiveKey)
	}
}

// normalizeTypeList reduces the 3.1 list form of "type" to a single tag,
// preferring the first non-null entry.
func normalizeTypeList(m map[string]json.RawMessage) {
	raw, ok := m["type"]
	if !ok || len(raw) == 0 || bytes.TrimSpace(raw)[0] != '[' {
		return
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
		delete(m, "type")
		return
	}
	picked := list[0]
	for _, v := range list {
		if v != "null" {
			picked = v
			break
		}
	}
	b, _ := json.Marshal(picked)
	m["type"] = b
}

// normalizeExamples falls back to the first entry of the 3.1 "examples" list
// when no singular "example" is given.
func normalizeExamples(m map[string]json.RawMessage) {
	raw, ok := m["examples"]
	if !ok {
		return
	}
	if _, exists := m["example"]; exists {
		return
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
		return
	}
	m["example"] = list[0]
}

func inList(val string, list []string) bool {
	for _, v := range list {
		if val == v {
			return true
		}
	}
	return false
}

func verifyError(field string, err error, isMapOrArray ...bool) error {
	errStr := err.Error()
	reg := regexp.MustCompile(`^verify (.*?) error: (.+)$`)
	paths := reg.FindStringSubmatch(errStr)
	if len(paths) == 3 {
		errStr = paths[2]
		oldField := paths[1]
		if len(isMapOrArray) > 0 && isMapOrArray[0] {
			if idx := strings.Index(oldField, "."); idx != -1 {
				oldField = "[" + oldField[:idx] + "]" + oldField[idx:]
			} else if idx = strings.Index(oldField, "["); idx != -1 {
				oldField = "[" + oldField[:idx] + "]" + oldField[idx:]
			} else {
				oldField = "[" + oldField + "]"
			}
		} else {
			oldField = "." + oldField
		}
		field += oldField
	}
	return fmt.Errorf("verify %s error: %s", field, errStr)
}
