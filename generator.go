package apidoc

import (
	"strings"

	"github.com/goodluckxu-go/apidoc/openapi"
)

// Generate produces an example payload satisfying the schema. Generation is
// deterministic and never fails: unresolvable shapes degrade to stub values.
func Generate(schema *openapi.Schema, opts ...GenerateOptions) any {
	return newGenerator(normalizeOptions(opts, defaultMaxDepth)).value(schema, 0)
}

func normalizeOptions(opts []GenerateOptions, fallbackDepth int) GenerateOptions {
	var opt GenerateOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = fallbackDepth
	}
	return opt
}

type generator struct {
	opt GenerateOptions
	// active guards combinator recursion, which does not consume depth.
	active map[*openapi.Schema]bool
}

func newGenerator(opt GenerateOptions) *generator {
	return &generator{opt: opt, active: map[*openapi.Schema]bool{}}
}

func (g *generator) value(s *openapi.Schema, depth int) any {
	if s == nil {
		return nil
	}
	if s.Ref != "" {
		return refStub(s.Ref)
	}
	if s.Example != nil {
		return s.Example
	}
	if s.Default != nil {
		return s.Default
	}
	if len(s.Enum) > 0 {
		return s.Enum[0]
	}
	if len(s.OneOf) > 0 {
		return g.branch(s, s.OneOf[0], depth)
	}
	if len(s.AnyOf) > 0 {
		return g.branch(s, s.AnyOf[0], depth)
	}
	if len(s.AllOf) > 0 {
		return g.value(mergeAllOf(s), depth)
	}
	switch s.Type {
	case typeObject:
		return g.object(s, depth)
	case typeArray:
		return g.array(s, depth)
	case typeString:
		return g.text(s)
	case typeInteger:
		return g.integer(s)
	case typeNumber:
		return g.number(s)
	case typeBoolean:
		return true
	case typeNull:
		return nil
	}
	if s.Properties.Len() > 0 {
		return g.object(s, depth)
	}
	if s.Items != nil {
		return g.array(s, depth)
	}
	return nil
}

// branch follows the first combinator alternative at the same depth. The
// active set breaks pointer cycles that the depth bound cannot see.
func (g *generator) branch(parent, child *openapi.Schema, depth int) any {
	if g.active[parent] {
		return nil
	}
	g.active[parent] = true
	defer delete(g.active, parent)
	return g.value(child, depth)
}

func (g *generator) object(s *openapi.Schema, depth int) map[string]any {
	out := map[string]any{}
	if depth >= g.opt.MaxDepth {
		return out
	}
	for _, name := range s.Properties.Keys() {
		if g.opt.RequiredOnly && !inArray(name, s.Required) {
			continue
		}
		key := sanitizeName(name)
		if key == "" {
			continue
		}
		out[key] = g.value(s.Properties.Value(name), depth+1)
	}
	return out
}

func (g *generator) array(s *openapi.Schema, depth int) []any {
	if s.Items == nil || depth >= g.opt.MaxDepth {
		return []any{}
	}
	count := 1
	if s.MinItems > 1 {
		count = int(s.MinItems)
	}
	el := g.value(s.Items, depth+1)
	out := make([]any, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, el)
	}
	return out
}

func (g *generator) text(s *openapi.Schema) string {
	if s.Pattern != "" {
		for _, pl := range patternLiterals {
			if strings.Contains(s.Pattern, pl.needle) {
				return pl.literal
			}
		}
		return "string"
	}
	if s.Format != "" {
		if lit, ok := formatExamples[s.Format]; ok {
			return lit
		}
	}
	out := "string"
	for s.MinLength > 0 && uint64(len(out)) < s.MinLength {
		out += "string"
	}
	if s.MaxLength != nil && uint64(len(out)) > *s.MaxLength {
		out = out[:*s.MaxLength]
	}
	return out
}

func (g *generator) integer(s *openapi.Schema) int {
	switch {
	case s.Minimum != nil:
		return int(*s.Minimum)
	case s.ExclusiveMinimum != nil:
		v := int(*s.ExclusiveMinimum) + 1
		if s.Maximum != nil && float64(v) > *s.Maximum {
			v = int(*s.Maximum)
		}
		if s.ExclusiveMaximum != nil && float64(v) >= *s.ExclusiveMaximum {
			v = int((*s.ExclusiveMinimum + *s.ExclusiveMaximum) / 2)
		}
		return v
	case s.Maximum != nil:
		return int(*s.Maximum)
	case s.ExclusiveMaximum != nil:
		return int(*s.ExclusiveMaximum) - 1
	}
	return 0
}

func (g *generator) number(s *openapi.Schema) float64 {
	switch {
	case s.Minimum != nil:
		return *s.Minimum
	case s.ExclusiveMinimum != nil:
		v := *s.ExclusiveMinimum + 1
		if s.Maximum != nil && v > *s.Maximum {
			v = *s.Maximum
		}
		if s.ExclusiveMaximum != nil && v >= *s.ExclusiveMaximum {
			v = (*s.ExclusiveMinimum + *s.ExclusiveMaximum) / 2
		}
		return v
	case s.Maximum != nil:
		return *s.Maximum
	case s.ExclusiveMaximum != nil:
		return *s.ExclusiveMaximum - 1
	}
	return 0
}

// mergeAllOf flattens allOf branches into a single object shape. Later
// branches override earlier ones on property name collision; required names
// accumulate without duplicates.
func mergeAllOf(s *openapi.Schema) *openapi.Schema {
	merged := &openapi.Schema{
		Type:       typeObject,
		Properties: &openapi.Properties{},
	}
	seen := map[*openapi.Schema]bool{}
	var collect func(branches []*openapi.Schema)
	collect = func(branches []*openapi.Schema) {
		for _, b := range branches {
			if b == nil || seen[b] {
				continue
			}
			seen[b] = true
			if len(b.AllOf) > 0 {
				collect(b.AllOf)
			}
			for _, name := range b.Properties.Keys() {
				merged.Properties.Set(name, b.Properties.Value(name))
			}
			for _, req := range b.Required {
				if !inArray(req, merged.Required) {
					merged.Required = append(merged.Required, req)
				}
			}
		}
	}
	collect(s.AllOf)
	return merged
}

// refStub names an unresolved reference in a generated payload.
func refStub(ref string) string {
	name := ref
	if idx := strings.LastIndex(name, "/"); idx != -1 && idx+1 < len(name) {
		name = name[idx+1:]
	}
	return "<" + name + ">"
}
