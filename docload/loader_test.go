package docload

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const petsJson = `{
	"openapi": "3.1.0",
	"info": {"title": "Pets", "version": "1.0.0"},
	"paths": {
		"/pets": {
			"get": {
				"summary": "List pets",
				"tags": ["pets"],
				"responses": {"200": {"description": "OK"}}
			}
		}
	}
}`

const petsYaml = `openapi: 3.1.0
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
components:
  schemas:
    Pet:
      type: object
      properties:
        zebra:
          type: string
        apple:
          type: integer
        mango:
          type: boolean
`

func TestLoadJsonOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(petsJson))
	}))
	defer srv.Close()

	doc, err := NewLoader().Load(context.Background(), srv.URL)
	assert.NoError(t, err)
	assert.Equal(t, "Pets", doc.Info.Title)
	assert.Equal(t, []string{"/pets"}, doc.Paths.Keys())
}

func TestLoadYamlOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(petsYaml))
	}))
	defer srv.Close()

	doc, err := NewLoader().Load(context.Background(), srv.URL)
	assert.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	pet := doc.Components.Schemas["Pet"]
	assert.NotNil(t, pet)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, pet.Properties.Keys())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.json")
	assert.NoError(t, os.WriteFile(path, []byte(petsJson), 0o644))

	doc, err := NewLoader().Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, "Pets", doc.Info.Title)
}

func TestLoadUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewLoader().Load(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "unexpected status")
}

func TestLoadInvalidDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"openapi": "2.0", "info": {"title": "Old", "version": "1"}, "paths": {}}`))
	}))
	defer srv.Close()

	_, err := NewLoader().Load(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "validate")
}

func TestLoadUsesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(petsJson))
	}))
	defer srv.Close()

	loader := NewLoader()
	cache := NewMemoryCache(0)
	loader.SetCache(cache)

	_, err := loader.Load(context.Background(), srv.URL)
	assert.NoError(t, err)
	_, err = loader.Load(context.Background(), srv.URL)
	assert.NoError(t, err)
	assert.Equal(t, 1, hits)

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestLoadDereference(t *testing.T) {
	body := `{
		"openapi": "3.1.0",
		"info": {"title": "Refs", "version": "1.0.0"},
		"components": {
			"schemas": {
				"Alias": {"$ref": "#/components/schemas/Name"},
				"Name": {"type": "string"}
			}
		}
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	loader := NewLoader()
	loader.SetDereference(true)
	doc, err := loader.Load(context.Background(), srv.URL)
	assert.NoError(t, err)
	alias := doc.Components.Schemas["Alias"]
	assert.Equal(t, "", alias.Ref)
	assert.Equal(t, "string", alias.Type)
}

func TestLoadWithClientCredentials(t *testing.T) {
	token := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "secret-token", "token_type": "bearer"}`))
	}))
	defer token.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(petsJson))
	}))
	defer srv.Close()

	loader := NewLoader()
	loader.SetClientCredentials(context.Background(), "id", "secret", token.URL+"/token")
	doc, err := loader.Load(context.Background(), srv.URL)
	assert.NoError(t, err)
	assert.Equal(t, "Pets", doc.Info.Title)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte("  \n"))
	assert.ErrorContains(t, err, "empty document")
}

func TestParseMalformedJson(t *testing.T) {
	_, err := Parse([]byte(`{"openapi": `))
	assert.Error(t, err)
}

func TestParseYamlScalars(t *testing.T) {
	doc, err := Parse([]byte(`openapi: 3.1.0
info:
  title: Types
  version: "2"
paths:
  /t:
    get:
      deprecated: true
      responses:
        "200":
          description: OK
`))
	assert.NoError(t, err)
	assert.Equal(t, "2", doc.Info.Version)
	assert.True(t, doc.Paths.Value("/t").Get.Deprecated)
}
