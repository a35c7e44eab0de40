package apidoc

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/goodluckxu-go/apidoc/openapi"
	"github.com/shopspring/decimal"
)

// SchemaCompileError reports a schema whose constraints cannot be turned
// into an executable validator, such as an unknown type tag or a pattern
// that does not compile.
type SchemaCompileError struct {
	Detail string
}

func (e *SchemaCompileError) Error() string {
	return fmt.Sprintf("schema compile error: %s", e.Detail)
}

func compileError(format string, a ...any) *SchemaCompileError {
	return &SchemaCompileError{Detail: fmt.Sprintf(format, a...)}
}

// Validator executes a compiled schema against decoded payloads. A Validator
// is immutable after Compile and safe for concurrent use.
type Validator struct {
	schema   *openapi.Schema
	lang     Lang
	patterns map[string]*regexp.Regexp
}

// Compile walks the schema once, rejecting shapes that cannot be checked and
// precompiling every pattern it will need at check time.
func Compile(schema *openapi.Schema) (*Validator, error) {
	return compileWithLang(schema, defaultLang())
}

func compileWithLang(schema *openapi.Schema, lng Lang) (*Validator, error) {
	if schema == nil {
		return nil, compileError("schema is nil")
	}
	if lng == nil {
		lng = defaultLang()
	}
	v := &Validator{
		schema:   schema,
		lang:     lng,
		patterns: map[string]*regexp.Regexp{},
	}
	if err := v.compileSchema(schema, map[*openapi.Schema]bool{}); err != nil {
		return nil, err
	}
	return v, nil
}

// compileSchema recurses the schema graph. The seen set keeps cyclic graphs
// from looping; revisiting a node adds nothing since patterns are cached by
// source.
func (v *Validator) compileSchema(s *openapi.Schema, seen map[*openapi.Schema]bool) error {
	if s == nil || seen[s] {
		return nil
	}
	seen[s] = true
	if s.Ref != "" {
		// Unresolved references stay in the graph and accept anything at
		// check time.
		return nil
	}
	switch s.Type {
	case "", typeNull, typeBoolean, typeInteger, typeNumber, typeString, typeArray, typeObject:
	default:
		return compileError("unknown type %q", s.Type)
	}
	if s.Pattern != "" {
		if _, ok := v.patterns[s.Pattern]; !ok {
			re, err := regexp.Compile(s.Pattern)
			if err != nil {
				return compileError("invalid pattern %q: %v", s.Pattern, err)
			}
			v.patterns[s.Pattern] = re
		}
	}
	if err := v.compileSchema(s.Items, seen); err != nil {
		return err
	}
	for _, name := range s.Properties.Keys() {
		if err := v.compileSchema(s.Properties.Value(name), seen); err != nil {
			return err
		}
	}
	if s.AdditionalProperties != nil {
		if err := v.compileSchema(s.AdditionalProperties.Schema, seen); err != nil {
			return err
		}
	}
	for _, group := range [][]*openapi.Schema{s.OneOf, s.AnyOf, s.AllOf} {
		for _, sub := range group {
			if err := v.compileSchema(sub, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// check walks a decoded payload against a schema node and collects every
// violation. Paths use dot and index notation, empty for the root.
func (v *Validator) check(val any, s *openapi.Schema, path string) (issues []issue) {
	if s == nil || s.Ref != "" {
		return
	}
	name := displayName(path)

	// Combinator nodes delegate entirely to their branches.
	if len(s.AllOf) > 0 {
		for _, sub := range s.AllOf {
			issues = append(issues, v.check(val, sub, path)...)
		}
		return
	}
	if branches := v.alternatives(s); len(branches) > 0 {
		for _, sub := range branches {
			if len(v.check(val, sub, path)) == 0 {
				return nil
			}
		}
		issues = append(issues, issue{
			path:     path,
			kind:     kindCustom,
			message:  v.lang.NoMatch(name),
			received: jsonTypeName(val),
		})
		return
	}

	if len(s.Enum) > 0 && !v.enumHas(s.Enum, val) {
		issues = append(issues, issue{
			path:     path,
			kind:     kindEnum,
			message:  v.lang.Enum(name, s.Enum),
			expected: s.Enum,
			received: val,
		})
		return
	}

	switch s.Type {
	case typeNull:
		if val != nil {
			issues = append(issues, v.typeIssue(path, typeNull, val))
		}
	case typeBoolean:
		if _, ok := val.(bool); !ok {
			issues = append(issues, v.typeIssue(path, typeBoolean, val))
		}
	case typeString:
		str, ok := val.(string)
		if !ok {
			issues = append(issues, v.typeIssue(path, typeString, val))
			return
		}
		issues = append(issues, v.checkString(str, s, path)...)
	case typeInteger, typeNumber:
		f, ok := toNumber(val)
		if !ok {
			issues = append(issues, v.typeIssue(path, s.Type, val))
			return
		}
		if s.Type == typeInteger && f != float64(int64(f)) {
			issues = append(issues, issue{
				path:     path,
				kind:     kindType,
				message:  v.lang.Type(name, typeInteger, typeNumber),
				expected: typeInteger,
				received: typeNumber,
			})
			return
		}
		issues = append(issues, v.checkNumber(f, s, path)...)
	case typeArray:
		list, ok := toAnySlice(val)
		if !ok {
			issues = append(issues, v.typeIssue(path, typeArray, val))
			return
		}
		issues = append(issues, v.checkArray(list, s, path)...)
	case typeObject:
		m, ok := toAnyMap(val)
		if !ok {
			issues = append(issues, v.typeIssue(path, typeObject, val))
			return
		}
		issues = append(issues, v.checkObject(m, s, path)...)
	case "":
		// Untyped nodes apply whatever structural constraints they carry.
		if s.Properties.Len() > 0 || len(s.Required) > 0 {
			if m, ok := toAnyMap(val); ok {
				issues = append(issues, v.checkObject(m, s, path)...)
			}
			return
		}
		if s.Items != nil {
			if list, ok := toAnySlice(val); ok {
				issues = append(issues, v.checkArray(list, s, path)...)
			}
			return
		}
		if str, ok := val.(string); ok {
			issues = append(issues, v.checkString(str, s, path)...)
			return
		}
		if f, ok := toNumber(val); ok {
			issues = append(issues, v.checkNumber(f, s, path)...)
		}
	}
	return
}

func (v *Validator) alternatives(s *openapi.Schema) []*openapi.Schema {
	if len(s.OneOf) > 0 {
		return s.OneOf
	}
	return s.AnyOf
}

func (v *Validator) typeIssue(path, expected string, val any) issue {
	received := jsonTypeName(val)
	return issue{
		path:     path,
		kind:     kindType,
		message:  v.lang.Type(displayName(path), expected, received),
		expected: expected,
		received: received,
	}
}

func (v *Validator) enumHas(enum []any, val any) bool {
	for _, e := range enum {
		if equalLiteral(e, val) {
			return true
		}
	}
	return false
}

func (v *Validator) checkString(str string, s *openapi.Schema, path string) (issues []issue) {
	name := displayName(path)
	if s.MinLength > 0 && uint64(len(str)) < s.MinLength {
		issues = append(issues, issue{
			path:     path,
			kind:     kindMinLength,
			message:  v.lang.Min(name, s.MinLength),
			expected: s.MinLength,
			received: len(str),
		})
	}
	if s.MaxLength != nil && uint64(len(str)) > *s.MaxLength {
		issues = append(issues, issue{
			path:     path,
			kind:     kindMaxLength,
			message:  v.lang.Max(name, *s.MaxLength),
			expected: *s.MaxLength,
			received: len(str),
		})
	}
	if s.Pattern != "" {
		if re := v.patterns[s.Pattern]; re != nil && !re.MatchString(str) {
			issues = append(issues, issue{
				path:     path,
				kind:     kindPattern,
				message:  v.lang.Regexp(name, s.Pattern),
				expected: s.Pattern,
				received: str,
			})
		}
	}
	if s.Format != "" {
		if re, ok := formatPatterns[s.Format]; ok && !re.MatchString(str) {
			issues = append(issues, issue{
				path:     path,
				kind:     kindFormat,
				message:  v.lang.Format(name, s.Format),
				expected: s.Format,
				received: str,
			})
		}
	}
	return
}

func (v *Validator) checkNumber(f float64, s *openapi.Schema, path string) (issues []issue) {
	name := displayName(path)
	if s.Minimum != nil && f < *s.Minimum {
		issues = append(issues, issue{
			path:     path,
			kind:     kindMinimum,
			message:  v.lang.Gte(name, *s.Minimum),
			expected: *s.Minimum,
			received: f,
		})
	}
	if s.ExclusiveMinimum != nil && f <= *s.ExclusiveMinimum {
		issues = append(issues, issue{
			path:     path,
			kind:     kindMinimum,
			message:  v.lang.Gt(name, *s.ExclusiveMinimum),
			expected: *s.ExclusiveMinimum,
			received: f,
		})
	}
	if s.Maximum != nil && f > *s.Maximum {
		issues = append(issues, issue{
			path:     path,
			kind:     kindMaximum,
			message:  v.lang.Lte(name, *s.Maximum),
			expected: *s.Maximum,
			received: f,
		})
	}
	if s.ExclusiveMaximum != nil && f >= *s.ExclusiveMaximum {
		issues = append(issues, issue{
			path:     path,
			kind:     kindMaximum,
			message:  v.lang.Lt(name, *s.ExclusiveMaximum),
			expected: *s.ExclusiveMaximum,
			received: f,
		})
	}
	if s.MultipleOf != nil {
		if *s.MultipleOf == 0 {
			issues = append(issues, issue{
				path:     path,
				kind:     kindCustom,
				message:  v.lang.MultipleOf(name, *s.MultipleOf),
				expected: *s.MultipleOf,
				received: f,
			})
			return
		}
		rs, _ := decimal.NewFromFloat(f).Div(decimal.NewFromFloat(*s.MultipleOf)).Float64()
		if rs != float64(int64(rs)) {
			issues = append(issues, issue{
				path:     path,
				kind:     kindCustom,
				message:  v.lang.MultipleOf(name, *s.MultipleOf),
				expected: *s.MultipleOf,
				received: f,
			})
		}
	}
	return
}

func (v *Validator) checkArray(list []any, s *openapi.Schema, path string) (issues []issue) {
	name := displayName(path)
	if s.MinItems > 0 && uint64(len(list)) < s.MinItems {
		issues = append(issues, issue{
			path:     path,
			kind:     kindMinLength,
			message:  v.lang.Min(name, s.MinItems),
			expected: s.MinItems,
			received: len(list),
		})
	}
	if s.MaxItems != nil && uint64(len(list)) > *s.MaxItems {
		issues = append(issues, issue{
			path:     path,
			kind:     kindMaxLength,
			message:  v.lang.Max(name, *s.MaxItems),
			expected: *s.MaxItems,
			received: len(list),
		})
	}
	if s.Items != nil {
		for i, el := range list {
			issues = append(issues, v.check(el, s.Items, indexPath(path, i))...)
		}
	}
	return
}

func (v *Validator) checkObject(m map[string]any, s *openapi.Schema, path string) (issues []issue) {
	for _, req := range s.Required {
		if _, ok := m[req]; !ok {
			child := joinPath(path, req)
			issues = append(issues, issue{
				path:    child,
				kind:    kindRequired,
				message: v.lang.Required(displayName(child)),
			})
		}
	}
	for _, key := range s.Properties.Keys() {
		child, ok := m[key]
		if !ok {
			continue
		}
		issues = append(issues, v.check(child, s.Properties.Value(key), joinPath(path, key))...)
	}
	if s.AdditionalProperties.Denied() {
		var extras []string
		for key := range m {
			if !s.Properties.Has(key) {
				extras = append(extras, key)
			}
		}
		sort.Strings(extras)
		for _, key := range extras {
			child := joinPath(path, key)
			issues = append(issues, issue{
				path:     child,
				kind:     kindCustom,
				message:  v.lang.AdditionalProperty(displayName(child)),
				received: jsonTypeName(m[key]),
			})
		}
	} else if s.AdditionalProperties != nil && s.AdditionalProperties.Schema != nil {
		var extras []string
		for key := range m {
			if !s.Properties.Has(key) {
				extras = append(extras, key)
			}
		}
		sort.Strings(extras)
		for _, key := range extras {
			issues = append(issues, v.check(m[key], s.AdditionalProperties.Schema, joinPath(path, key))...)
		}
	}
	return
}
