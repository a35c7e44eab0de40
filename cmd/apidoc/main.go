// apidoc validates payloads, generates examples and lists endpoints from
// OpenAPI documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goodluckxu-go/apidoc"
	"github.com/goodluckxu-go/apidoc/docload"
	"github.com/goodluckxu-go/apidoc/lang"
	"github.com/goodluckxu-go/apidoc/openapi"
	"github.com/jessevdk/go-flags"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errQuiet makes run exit non-zero without printing; the command already
// reported the outcome on stdout.
var errQuiet = errors.New("quiet failure")

type cliOptions struct {
	Validate  validateCommand  `command:"validate" description:"Validate a JSON payload against an operation's request schema"`
	Example   exampleCommand   `command:"example" description:"Generate an example payload for a schema"`
	Endpoints endpointsCommand `command:"endpoints" description:"List the operations of a document"`
	Health    healthCommand    `command:"health" description:"Probe the server URLs a document declares"`
	Diff      diffCommand      `command:"diff" description:"Compare two revisions of a document"`
}

// documentFlags are shared by every command that loads a document.
type documentFlags struct {
	Cache       string `long:"cache" description:"SQLite file keeping the last good copy of each document"`
	Dereference bool   `long:"dereference" description:"Resolve local $ref references after parsing"`
}

type validateCommand struct {
	runner *cliRunner

	Doc     documentFlags `group:"Document"`
	Method  string        `short:"m" long:"method" description:"HTTP method of the operation" default:"POST"`
	Path    string        `short:"p" long:"path" description:"Operation path, template or concrete" required:"yes"`
	Payload string        `long:"payload" description:"Payload file path (stdin when omitted)"`
	Lang    string        `long:"lang" description:"Language for validation messages" choice:"en" choice:"zh" choice:"ja" default:"en"`

	Args struct {
		Document string `positional-arg-name:"document" description:"Document URL or file path" required:"yes"`
	} `positional-args:"yes"`
}

func (c *validateCommand) Execute(_ []string) error {
	doc, err := c.runner.loadDocument(c.Args.Document, c.Doc)
	if err != nil {
		return err
	}
	schema, err := requestSchema(doc, c.Method, c.Path)
	if err != nil {
		return err
	}
	payload, err := c.runner.readInput(c.Payload)
	if err != nil {
		return err
	}

	engine := apidoc.APIDoc()
	engine.SetLang(langByName(c.Lang))
	report := engine.ValidateString(string(payload), schema)
	fmt.Fprintln(c.runner.stdout, apidoc.FormatReport(report))
	if !report.Valid {
		return errQuiet
	}
	return nil
}

type exampleCommand struct {
	runner *cliRunner

	Doc          documentFlags `group:"Document"`
	Method       string        `short:"m" long:"method" description:"HTTP method of the operation" default:"POST"`
	Path         string        `short:"p" long:"path" description:"Operation path, template or concrete"`
	Schema       string        `short:"s" long:"schema" description:"Component schema name instead of an operation"`
	RequiredOnly bool          `long:"required-only" description:"Generate only required object properties"`
	MaxDepth     int           `long:"max-depth" description:"Nesting depth bound" default:"10"`

	Args struct {
		Document string `positional-arg-name:"document" description:"Document URL or file path" required:"yes"`
	} `positional-args:"yes"`
}

func (c *exampleCommand) Execute(_ []string) error {
	doc, err := c.runner.loadDocument(c.Args.Document, c.Doc)
	if err != nil {
		return err
	}
	var schema *openapi.Schema
	switch {
	case c.Schema != "":
		schema = doc.SchemaByRef("#/components/schemas/" + c.Schema)
		if schema == nil {
			return fmt.Errorf("document has no schema named %q", c.Schema)
		}
	case c.Path != "":
		if schema, err = requestSchema(doc, c.Method, c.Path); err != nil {
			return err
		}
	default:
		return errors.New("one of --path or --schema is required")
	}

	value := apidoc.Generate(schema, apidoc.GenerateOptions{
		RequiredOnly: c.RequiredOnly,
		MaxDepth:     c.MaxDepth,
	})
	buf, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode example: %w", err)
	}
	fmt.Fprintln(c.runner.stdout, string(buf))
	return nil
}

type endpointsCommand struct {
	runner *cliRunner

	Doc    documentFlags `group:"Document"`
	Tag    string        `short:"t" long:"tag" description:"Only operations carrying this tag"`
	Method string        `short:"m" long:"method" description:"Only operations with this method"`

	Args struct {
		Document string `positional-arg-name:"document" description:"Document URL or file path" required:"yes"`
	} `positional-args:"yes"`
}

func (c *endpointsCommand) Execute(_ []string) error {
	doc, err := c.runner.loadDocument(c.Args.Document, c.Doc)
	if err != nil {
		return err
	}
	cat, err := apidoc.NewCatalog(doc)
	if err != nil {
		return err
	}
	list := cat.Endpoints()
	if c.Tag != "" {
		list = cat.ByTag(c.Tag)
	}
	if c.Method != "" {
		var filtered []*apidoc.Endpoint
		for _, ep := range list {
			if ep.Method == httpMethod(c.Method) {
				filtered = append(filtered, ep)
			}
		}
		list = filtered
	}
	for _, ep := range list {
		fmt.Fprintln(c.runner.stdout, ep.String())
	}
	return nil
}

type healthCommand struct {
	runner *cliRunner

	Doc      documentFlags `group:"Document"`
	Watch    bool          `short:"w" long:"watch" description:"Keep probing on an interval instead of once"`
	Interval time.Duration `long:"interval" description:"Probe interval in watch mode" default:"30s"`
	Timeout  time.Duration `long:"timeout" description:"Per-probe timeout" default:"10s"`

	Args struct {
		Document string `positional-arg-name:"document" description:"Document URL or file path" required:"yes"`
	} `positional-args:"yes"`
}

func (c *healthCommand) Execute(_ []string) error {
	doc, err := c.runner.loadDocument(c.Args.Document, c.Doc)
	if err != nil {
		return err
	}
	targets := apidoc.ServerTargets(doc)
	if len(targets) == 0 {
		return errors.New("document declares no server URLs")
	}

	checker := apidoc.NewHealthChecker()
	checker.SetClient(&http.Client{Timeout: c.Timeout})
	ctx := context.Background()
	if c.Watch {
		checker.Poll(ctx, targets, c.Interval, func(statuses []apidoc.HealthStatus) {
			c.runner.writeHealth(statuses)
		})
		return nil
	}
	statuses := checker.Check(ctx, targets)
	c.runner.writeHealth(statuses)
	for _, st := range statuses {
		if !st.Healthy {
			return errQuiet
		}
	}
	return nil
}

type diffCommand struct {
	runner *cliRunner

	Doc  documentFlags `group:"Document"`
	Json bool          `long:"json" description:"Emit the diff as JSON"`

	Args struct {
		Old string `positional-arg-name:"old" description:"Old document URL or file path" required:"yes"`
		New string `positional-arg-name:"new" description:"New document URL or file path" required:"yes"`
	} `positional-args:"yes"`
}

func (c *diffCommand) Execute(_ []string) error {
	oldDoc, err := c.runner.loadDocument(c.Args.Old, c.Doc)
	if err != nil {
		return err
	}
	newDoc, err := c.runner.loadDocument(c.Args.New, c.Doc)
	if err != nil {
		return err
	}
	diff, err := apidoc.DiffDocuments(oldDoc, newDoc)
	if err != nil {
		return err
	}
	if c.Json {
		buf, err := json.MarshalIndent(diff, "", "  ")
		if err != nil {
			return fmt.Errorf("encode diff: %w", err)
		}
		fmt.Fprintln(c.runner.stdout, string(buf))
	} else {
		c.runner.writeDiff(diff)
	}
	if !diff.Empty() {
		return errQuiet
	}
	return nil
}

type cliRunner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	runner := &cliRunner{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(runner.run(os.Args[1:]))
}

func (r *cliRunner) run(args []string) int {
	err := parseArgs(args, r)
	if err == nil {
		return 0
	}
	if errors.Is(err, errQuiet) {
		return 1
	}
	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			fmt.Fprintln(r.stdout, err)
			return 0
		}
		fmt.Fprintln(r.stderr, err)
		return 2
	}
	fmt.Fprintln(r.stderr, err)
	return 1
}

func parseArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Validate.runner = runner
	options.Example.runner = runner
	options.Endpoints.runner = runner
	options.Health.runner = runner
	options.Diff.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = "apidoc"
	_, err := parser.ParseArgs(args)
	return err
}

// loadDocument fetches and parses a document, keeping the last good copy in
// the cache store and falling back to it when the source is unreachable.
func (r *cliRunner) loadDocument(source string, f documentFlags) (*openapi.OpenAPI, error) {
	loader := docload.NewLoader()
	loader.SetDereference(f.Dereference)
	ctx := context.Background()
	if f.Cache == "" {
		return loader.Load(ctx, source)
	}

	store, err := docload.OpenStore(f.Cache)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	doc, err := loader.Load(ctx, source)
	if err != nil {
		stored, gerr := store.Get(source)
		if gerr != nil {
			return nil, err
		}
		fmt.Fprintf(r.stderr, "warning: %v, using copy stored %s\n", err, stored.FetchedAt.Format(time.RFC3339))
		doc, gerr = docload.Parse(stored.Body)
		if gerr != nil {
			return nil, gerr
		}
		if f.Dereference {
			doc.Dereference()
		}
		return doc, nil
	}

	body, merr := json.Marshal(doc)
	if merr == nil {
		if _, perr := store.Put(source, doc.Info.Version, body); perr != nil {
			fmt.Fprintf(r.stderr, "warning: %v\n", perr)
		}
	}
	return doc, nil
}

func (r *cliRunner) readInput(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read payload %q: %w", path, err)
		}
		return data, nil
	}
	data, err := io.ReadAll(r.stdin)
	if err != nil {
		return nil, fmt.Errorf("read payload from stdin: %w", err)
	}
	return data, nil
}

func (r *cliRunner) writeHealth(statuses []apidoc.HealthStatus) {
	for _, st := range statuses {
		mark := "✓"
		if !st.Healthy {
			mark = "✗"
		}
		if st.Error != "" {
			fmt.Fprintf(r.stdout, "%s %s: %s\n", mark, st.Target, st.Error)
			continue
		}
		fmt.Fprintf(r.stdout, "%s %s: %d in %s\n", mark, st.Target, st.StatusCode, st.Latency.Round(time.Millisecond))
	}
}

func (r *cliRunner) writeDiff(diff *apidoc.DocumentDiff) {
	fmt.Fprintf(r.stdout, "version: %s -> %s\n", diff.OldVersion, diff.NewVersion)
	if diff.Empty() {
		fmt.Fprintln(r.stdout, "no changes")
		return
	}
	for _, key := range diff.Added {
		fmt.Fprintf(r.stdout, "+ %s\n", key)
	}
	for _, key := range diff.Removed {
		fmt.Fprintf(r.stdout, "- %s\n", key)
	}
	for _, change := range diff.Changed {
		fmt.Fprintf(r.stdout, "~ %s %s\n", change.Method, change.Path)
		for _, detail := range change.Details {
			fmt.Fprintf(r.stdout, "    %s\n", detail)
		}
	}
}

// requestSchema resolves an operation by method and path, accepting both the
// template form and a concrete URL.
func requestSchema(doc *openapi.OpenAPI, method, path string) (*openapi.Schema, error) {
	cat, err := apidoc.NewCatalog(doc)
	if err != nil {
		return nil, err
	}
	ep, _, ok := cat.Find(method, path)
	if !ok {
		return nil, fmt.Errorf("no %s operation matches %s", httpMethod(method), path)
	}
	if ep.RequestSchema == nil {
		return nil, fmt.Errorf("%s declares no request schema", ep.String())
	}
	return ep.RequestSchema, nil
}

func langByName(name string) apidoc.Lang {
	switch name {
	case "zh":
		return &lang.ZhCn{}
	case "ja":
		return &lang.JaJp{}
	default:
		return &lang.EnUs{}
	}
}

func httpMethod(method string) string {
	return strings.ToUpper(method)
}
