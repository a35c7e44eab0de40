package apidoc

import (
	"sort"
	"strings"

	"github.com/goodluckxu-go/apidoc/openapi"
)

// Endpoint is one operation of a parsed document, flattened for listing
// and lookup.
type Endpoint struct {
	Method        string
	Path          string
	OperationID   string
	Summary       string
	Description   string
	Tags          []string
	Deprecated    bool
	Parameters    []*openapi.Parameter
	RequestSchema *openapi.Schema
	Responses     map[string]*openapi.Schema
}

func (e *Endpoint) String() string {
	s := e.Method + " " + e.Path
	if e.Deprecated {
		s += " (deprecated)"
	}
	if e.Summary != "" {
		s += " - " + e.Summary
	}
	return s
}

// Catalog indexes every operation of a document in declaration order and
// resolves concrete request paths back to their templates.
type Catalog struct {
	doc       *openapi.OpenAPI
	endpoints []*Endpoint
	tree      *pathNode
}

func NewCatalog(doc *openapi.OpenAPI) (*Catalog, error) {
	c := &Catalog{tree: &pathNode{}}
	if doc == nil || doc.Paths == nil {
		return c, nil
	}
	c.doc = doc
	for _, path := range doc.Paths.Keys() {
		item := doc.Paths.Value(path)
		if item == nil {
			continue
		}
		for _, mo := range item.Operations() {
			ep := newEndpoint(path, mo, item.Parameters)
			c.endpoints = append(c.endpoints, ep)
			if err := c.tree.add(path, ep); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func newEndpoint(path string, mo openapi.MethodOperation, shared []*openapi.Parameter) *Endpoint {
	op := mo.Op
	ep := &Endpoint{
		Method:      mo.Method,
		Path:        path,
		OperationID: op.OperationId,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        op.Tags,
		Deprecated:  op.Deprecated,
	}
	ep.Parameters = append(ep.Parameters, shared...)
	ep.Parameters = append(ep.Parameters, op.Parameters...)
	if op.RequestBody != nil {
		ep.RequestSchema = schemaFromContent(op.RequestBody.Content)
	}
	if len(op.Responses) > 0 {
		ep.Responses = map[string]*openapi.Schema{}
		for code, resp := range op.Responses {
			if resp == nil {
				continue
			}
			ep.Responses[code] = schemaFromContent(resp.Content)
		}
	}
	return ep
}

// schemaFromContent prefers the JSON media type and falls back to the first
// media type carrying a schema, in sorted order so the pick is stable.
func schemaFromContent(content map[string]*openapi.MediaType) *openapi.Schema {
	if len(content) == 0 {
		return nil
	}
	if mt := content["application/json"]; mt != nil && mt.Schema != nil {
		return mt.Schema
	}
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if mt := content[k]; mt != nil && mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}

// Endpoints lists every operation in document declaration order.
func (c *Catalog) Endpoints() []*Endpoint {
	return c.endpoints
}

func (c *Catalog) Len() int {
	return len(c.endpoints)
}

// Tags lists every tag in use, sorted.
func (c *Catalog) Tags() []string {
	var tags []string
	for _, ep := range c.endpoints {
		for _, tag := range ep.Tags {
			if !inArray(tag, tags) {
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

func (c *Catalog) ByTag(tag string) []*Endpoint {
	var list []*Endpoint
	for _, ep := range c.endpoints {
		if inArray(tag, ep.Tags) {
			list = append(list, ep)
		}
	}
	return list
}

func (c *Catalog) ByMethod(method string) []*Endpoint {
	method = strings.ToUpper(method)
	var list []*Endpoint
	for _, ep := range c.endpoints {
		if ep.Method == method {
			list = append(list, ep)
		}
	}
	return list
}

// Find resolves a concrete request path against the registered templates
// and reports the matched endpoint with extracted path parameter values.
func (c *Catalog) Find(method, urlPath string) (*Endpoint, map[string]string, bool) {
	endpoints, params, exists := c.tree.find(urlPath)
	if !exists {
		return nil, nil, false
	}
	ep := endpoints[strings.ToUpper(method)]
	if ep == nil {
		return nil, nil, false
	}
	return ep, params, true
}
