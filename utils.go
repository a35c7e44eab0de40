package apidoc

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

func inArray[T comparable](val T, list []T) bool {
	for _, v := range list {
		if val == v {
			return true
		}
	}
	return false
}

func toPtr[T any](val T) *T {
	return &val
}

func spanFill(input string, inputLen, num int) string {
	zeroNum := num - inputLen
	for i := 0; i < zeroNum; i++ {
		input += " "
	}
	return input
}

func timeFormat(date time.Time, format ...string) string {
	if date.IsZero() {
		return ""
	}
	str := "Y-m-d H:i:s"
	if len(format) > 0 {
		str = format[0]
	}
	year := strconv.Itoa(date.Year())
	month := fmt.Sprintf("%d", date.Month())
	day := strconv.Itoa(date.Day())
	hour := strconv.Itoa(date.Hour())
	minute := strconv.Itoa(date.Minute())
	second := strconv.Itoa(date.Second())
	week := date.Weekday().String()
	weekMap := map[string]string{
		"Monday":    "1",
		"Tuesday":   "2",
		"Wednesday": "3",
		"Thursday":  "4",
		"Friday":    "5",
		"Saturday":  "6",
		"Sunday":    "7",
	}
	str = strings.ReplaceAll(str, "Y", year)
	str = strings.ReplaceAll(str, "m", zeroFill(month, 2))
	str = strings.ReplaceAll(str, "d", zeroFill(day, 2))
	str = strings.ReplaceAll(str, "H", zeroFill(hour, 2))
	str = strings.ReplaceAll(str, "i", zeroFill(minute, 2))
	str = strings.ReplaceAll(str, "s", zeroFill(second, 2))
	str = strings.ReplaceAll(str, "w", weekMap[week])
	str = strings.ReplaceAll(str, "W", week)
	return str
}

func zeroFill(input string, num int) string {
	zeroNum := num - len(input)
	rs := ""
	for i := 0; i < zeroNum; i++ {
		rs += "0"
	}
	return rs + input
}

// toNumber reports the float64 value of any Go numeric. Unlike a lossy
// conversion it refuses strings and booleans.
func toNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	}
	return 0, false
}

// equalLiteral compares two decoded JSON values. Numbers compare by value,
// so the integer 1 equals the float 1.0 regardless of decoding type.
func equalLiteral(a, b any) bool {
	fa, aok := toNumber(a)
	fb, bok := toNumber(b)
	if aok && bok {
		return fa == fb
	}
	if aok != bok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toAnySlice(v any) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func toAnyMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// jsonTypeName names the JSON type of a decoded value for error messages.
// Integral numbers report as integer so type mismatches read naturally.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return typeNull
	case bool:
		return typeBoolean
	case string:
		return typeString
	case map[string]any:
		return typeObject
	case []any:
		return typeArray
	}
	if f, ok := toNumber(v); ok {
		if f == float64(int64(f)) {
			return typeInteger
		}
		return typeNumber
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Slice, reflect.Array:
		return typeArray
	case reflect.Map, reflect.Struct:
		return typeObject
	default:
		return rv.Kind().String()
	}
}

// sanitizeName keeps [A-Za-z0-9_$-] and replaces everything else with an
// underscore. An empty result means the property is dropped.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '$', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

// fieldFromPath extracts the property name a path addresses. The root path
// reports as "value".
func fieldFromPath(path string) string {
	if path == "" {
		return "value"
	}
	last := path
	if idx := strings.LastIndex(last, "."); idx != -1 {
		last = last[idx+1:]
	}
	if idx := strings.Index(last, "["); idx != -1 {
		last = last[:idx]
	}
	if last == "" {
		return "value"
	}
	return last
}

func displayName(path string) string {
	if path == "" {
		return "value"
	}
	return path
}
