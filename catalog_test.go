package apidoc

import (
	"encoding/json"
	"testing"

	"github.com/goodluckxu-go/apidoc/openapi"
	"github.com/stretchr/testify/assert"
)

func mustDoc(t *testing.T, body string) *openapi.OpenAPI {
	t.Helper()
	var doc openapi.OpenAPI
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return &doc
}

const userServiceJson = `{
	"openapi": "3.1.0",
	"info": {"title": "User Service", "version": "1.0.0"},
	"paths": {
		"/users": {
			"get": {
				"operationId": "listUsers",
				"summary": "List users",
				"tags": ["users"],
				"responses": {
					"200": {"description": "OK", "content": {"application/json": {"schema": {"type": "array", "items": {"type": "object"}}}}}
				}
			},
			"post": {
				"operationId": "createUser",
				"summary": "Create a user",
				"tags": ["users"],
				"requestBody": {
					"content": {
						"application/json": {
							"schema": {
								"type": "object",
								"properties": {"name": {"type": "string"}, "age": {"type": "integer"}},
								"required": ["name"]
							}
						}
					}
				},
				"responses": {"201": {"description": "Created"}}
			}
		},
		"/users/me": {
			"get": {
				"operationId": "currentUser",
				"tags": ["users"],
				"responses": {"200": {"description": "OK"}}
			}
		},
		"/users/{id}": {
			"parameters": [
				{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}
			],
			"get": {
				"operationId": "getUser",
				"summary": "Fetch a user",
				"tags": ["users"],
				"responses": {"200": {"description": "OK"}}
			},
			"delete": {
				"operationId": "deleteUser",
				"tags": ["admin"],
				"deprecated": true,
				"responses": {"204": {"description": "No Content"}}
			}
		},
		"/health": {
			"get": {
				"operationId": "healthCheck",
				"responses": {"200": {"description": "OK"}}
			}
		}
	}
}`

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog(mustDoc(t, userServiceJson))
	assert.NoError(t, err)
	return cat
}

func TestNewCatalogOrder(t *testing.T) {
	cat := mustCatalog(t)
	assert.Equal(t, 6, cat.Len())
	var keys []string
	for _, ep := range cat.Endpoints() {
		keys = append(keys, ep.Method+" "+ep.Path)
	}
	assert.Equal(t, []string{
		"GET /users",
		"POST /users",
		"GET /users/me",
		"GET /users/{id}",
		"DELETE /users/{id}",
		"GET /health",
	}, keys)
}

func TestCatalogEndpointFields(t *testing.T) {
	cat := mustCatalog(t)

	post := cat.ByMethod("POST")[0]
	assert.Equal(t, "createUser", post.OperationID)
	assert.NotNil(t, post.RequestSchema)
	assert.Equal(t, []string{"name", "age"}, post.RequestSchema.Properties.Keys())
	assert.Contains(t, post.Responses, "201")

	get, _, ok := cat.Find("GET", "/users/77")
	assert.True(t, ok)
	assert.Len(t, get.Parameters, 1)
	assert.Equal(t, "id", get.Parameters[0].Name)
}

func TestCatalogTags(t *testing.T) {
	cat := mustCatalog(t)
	assert.Equal(t, []string{"admin", "users"}, cat.Tags())

	admin := cat.ByTag("admin")
	assert.Len(t, admin, 1)
	assert.Equal(t, "deleteUser", admin[0].OperationID)
	assert.Empty(t, cat.ByTag("billing"))
}

func TestCatalogByMethod(t *testing.T) {
	cat := mustCatalog(t)
	assert.Len(t, cat.ByMethod("get"), 4)
	assert.Len(t, cat.ByMethod("DELETE"), 1)
	assert.Empty(t, cat.ByMethod("PATCH"))
}

func TestCatalogFind(t *testing.T) {
	cat := mustCatalog(t)

	ep, params, ok := cat.Find("GET", "/users/42")
	assert.True(t, ok)
	assert.Equal(t, "getUser", ep.OperationID)
	assert.Equal(t, map[string]string{"id": "42"}, params)

	ep, params, ok = cat.Find("get", "/users")
	assert.True(t, ok)
	assert.Equal(t, "listUsers", ep.OperationID)
	assert.Empty(t, params)

	_, _, ok = cat.Find("PATCH", "/users/42")
	assert.False(t, ok)
	_, _, ok = cat.Find("GET", "/missing")
	assert.False(t, ok)
}

func TestCatalogFindPrefersDeclaredLiteral(t *testing.T) {
	cat := mustCatalog(t)

	ep, params, ok := cat.Find("GET", "/users/me")
	assert.True(t, ok)
	assert.Equal(t, "currentUser", ep.OperationID)
	assert.Empty(t, params)
}

func TestCatalogEndpointString(t *testing.T) {
	cat := mustCatalog(t)

	del := cat.ByMethod("DELETE")[0]
	assert.Equal(t, "DELETE /users/{id} (deprecated)", del.String())

	list, _, _ := cat.Find("GET", "/users")
	assert.Equal(t, "GET /users - List users", list.String())
}

func TestNewCatalogNilDoc(t *testing.T) {
	cat, err := NewCatalog(nil)
	assert.NoError(t, err)
	assert.Zero(t, cat.Len())
	_, _, ok := cat.Find("GET", "/users")
	assert.False(t, ok)
}

func TestNewCatalogBadPathTemplate(t *testing.T) {
	doc := mustDoc(t, `{
		"openapi": "3.1.0",
		"info": {"title": "Broken", "version": "1.0.0"},
		"paths": {
			"/users/{id": {
				"get": {"operationId": "broken", "responses": {"200": {"description": "OK"}}}
			}
		}
	}`)
	_, err := NewCatalog(doc)
	assert.ErrorContains(t, err, "path format error")
}
