package lang

import "fmt"

type JaJp struct {
}

func (j *JaJp) Required(field string) string {
	return fmt.Sprintf("%vは必須です", field)
}

func (j *JaJp) Type(field string, expected string, received string) string {
	return fmt.Sprintf("%vの値は%v型でなければならない、実際は%v", field, expected, received)
}

func (j *JaJp) Format(field string, format string) string {
	return fmt.Sprintf("%vの値は有効な%vではありません", field, format)
}

func (j *JaJp) Lt(field string, val float64) string {
	return fmt.Sprintf("%vの値は%vより小さくなければならない", field, val)
}

func (j *JaJp) Lte(field string, val float64) string {
	return fmt.Sprintf("%vの値は%v以下でなければならない", field, val)
}

func (j *JaJp) Gt(field string, val float64) string {
	return fmt.Sprintf("%vの値は%vより大きくなければならない", field, val)
}

func (j *JaJp) Gte(field string, val float64) string {
	return fmt.Sprintf("%vの値は%v以上でなければならない", field, val)
}

func (j *JaJp) MultipleOf(field string, val float64) string {
	return fmt.Sprintf("%vの値は%vの倍数でなければならない", field, val)
}

func (j *JaJp) Max(field string, val uint64) string {
	return fmt.Sprintf("%vの長さの最大値は%v", field, val)
}

func (j *JaJp) Min(field string, val uint64) string {
	return fmt.Sprintf("%vの長さの最小値は%vである", field, val)
}

func (j *JaJp) Regexp(field string, val string) string {
	return fmt.Sprintf("%vの値が正規表現%vを満たしていない", field, val)
}

func (j *JaJp) Enum(field string, val []any) string {
	s := ""
	for _, v := range val {
		s += fmt.Sprintf(",%v", v)
	}
	if s != "" {
		s = s[1:]
	}
	return fmt.Sprintf("%vの値は%vになければならない", field, s)
}

func (j *JaJp) AdditionalProperty(field string) string {
	return fmt.Sprintf("%vはこのオブジェクトでは許可されていません", field)
}

func (j *JaJp) NoMatch(field string) string {
	return fmt.Sprintf("%vの値は許可されたスキーマのいずれにも一致しません", field)
}

func (j *JaJp) Recommended(field string) string {
	return fmt.Sprintf("任意項目%vの入力を推奨します", field)
}

func (j *JaJp) InvalidPayload(detail string) string {
	return fmt.Sprintf("ペイロードは有効なJSONではありません: %v", detail)
}

func (j *JaJp) InvalidSchema(detail string) string {
	return fmt.Sprintf("スキーマをコンパイルできません: %v", detail)
}

func (j *JaJp) Suggestion(kind string, field string, expected any) string {
	switch kind {
	case "required":
		return fmt.Sprintf("%vフィールドをペイロードに追加してください", field)
	case "type":
		return fmt.Sprintf("%vの値を%v型に変更してください", field, expected)
	case "format":
		return fmt.Sprintf("%vに有効な%v値を使用してください", field, expected)
	case "pattern":
		return fmt.Sprintf("%vの値を正規表現%vに一致させてください", field, expected)
	case "minLength":
		return fmt.Sprintf("%vの長さを%v以上にしてください", field, expected)
	case "maxLength":
		return fmt.Sprintf("%vの長さを%v以下にしてください", field, expected)
	case "minimum":
		return fmt.Sprintf("%vの値を%v以上にしてください", field, expected)
	case "maximum":
		return fmt.Sprintf("%vの値を%v以下にしてください", field, expected)
	case "enum":
		return fmt.Sprintf("%vに許可された値のいずれかを使用してください", field)
	}
	return ""
}
