package docload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goodluckxu-go/apidoc/openapi"

	json "github.com/json-iterator/go"
	"golang.org/x/oauth2/clientcredentials"
	"gopkg.in/yaml.v3"
)

// Loader fetches interface documents from HTTP endpoints or local files and
// parses them into the openapi model.
type Loader struct {
	client *http.Client
	cache  Cache
	deref  bool
}

func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetClient replaces the HTTP client used for remote sources.
func (l *Loader) SetClient(client *http.Client) {
	if client != nil {
		l.client = client
	}
}

// SetCache attaches a document cache consulted before every fetch.
func (l *Loader) SetCache(cache Cache) {
	l.cache = cache
}

// SetDereference makes Load resolve local component references after
// parsing.
func (l *Loader) SetDereference(on bool) {
	l.deref = on
}

// SetClientCredentials switches the loader to an OAuth2 client-credentials
// transport for protected documentation endpoints. Tokens are fetched and
// refreshed on demand.
func (l *Loader) SetClientCredentials(ctx context.Context, clientID, clientSecret, tokenURL string, scopes ...string) {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       scopes,
	}
	l.client = cfg.Client(ctx)
}

// Load fetches, parses and structurally validates a document. Sources
// starting with http:// or https:// are fetched, anything else is read as a
// local file path.
func (l *Loader) Load(ctx context.Context, source string) (*openapi.OpenAPI, error) {
	if l.cache != nil {
		if doc, ok := l.cache.Get(source); ok {
			return doc, nil
		}
	}
	data, err := l.fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	if err = doc.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", source, err)
	}
	if l.deref {
		doc.Dereference()
	}
	if l.cache != nil {
		l.cache.Put(source, doc)
	}
	return doc, nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json, application/yaml")
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: unexpected status %s", source, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(source)
}

// Parse decodes a document from JSON or YAML bytes. JSON is detected by the
// first significant byte; YAML goes through an order-preserving conversion
// so schema property order survives either format.
func Parse(data []byte) (*openapi.OpenAPI, error) {
	var doc openapi.OpenAPI
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}
	buf, err := yamlToJson(data)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(buf, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// yamlToJson rewrites a YAML document as JSON bytes, keeping mapping key
// order by walking the node tree instead of decoding into Go maps.
func yamlToJson(data []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := writeYamlNode(&b, &root); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func writeYamlNode(b *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			b.WriteString("null")
			return nil
		}
		return writeYamlNode(b, n.Content[0])
	case yaml.MappingNode:
		b.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				b.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			b.Write(key)
			b.WriteByte(':')
			if err = writeYamlNode(b, n.Content[i+1]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case yaml.SequenceNode:
		b.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeYamlNode(b, c); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		buf, err := json.Marshal(v)
		if err != nil {
			return err
		}
		b.Write(buf)
	case yaml.AliasNode:
		if n.Alias != nil {
			return writeYamlNode(b, n.Alias)
		}
		b.WriteString("null")
	default:
		b.WriteString("null")
	}
	return nil
}
