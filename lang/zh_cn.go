package lang

import "fmt"

type ZhCn struct {
}

func (z *ZhCn) Required(field string) string {
	return fmt.Sprintf("%v为必填", field)
}

func (z *ZhCn) Type(field string, expected string, received string) string {
	return fmt.Sprintf("%v的值类型必须为%v，实际为%v", field, expected, received)
}

func (z *ZhCn) Format(field string, format string) string {
	return fmt.Sprintf("%v的值不是有效的%v", field, format)
}

func (z *ZhCn) Lt(field string, val float64) string {
	return fmt.Sprintf("%v的值必须小于%v", field, val)
}

func (z *ZhCn) Lte(field string, val float64) string {
	return fmt.Sprintf("%v的值必须小于等于%v", field, val)
}

func (z *ZhCn) Gt(field string, val float64) string {
	return fmt.Sprintf("%v的值必须大于%v", field, val)
}

func (z *ZhCn) Gte(field string, val float64) string {
	return fmt.Sprintf("%v的值必须大于等于%v", field, val)
}

func (z *ZhCn) MultipleOf(field string, val float64) string {
	return fmt.Sprintf("%v的值必须是%v的倍数", field, val)
}

func (z *ZhCn) Max(field string, val uint64) string {
	return fmt.Sprintf("%v的长度最大值为%v", field, val)
}

func (z *ZhCn) Min(field string, val uint64) string {
	return fmt.Sprintf("%v的长度最小值为%v", field, val)
}

func (z *ZhCn) Regexp(field string, val string) string {
	return fmt.Sprintf("%v的值不满足正则表达式%v", field, val)
}

func (z *ZhCn) Enum(field string, val []any) string {
	s := ""
	for _, v := range val {
		s += fmt.Sprintf(",%v", v)
	}
	if s != "" {
		s = s[1:]
	}
	return fmt.Sprintf("%v的值必须在%v中", field, s)
}

func (z *ZhCn) AdditionalProperty(field string) string {
	return fmt.Sprintf("%v不允许出现在该对象中", field)
}

func (z *ZhCn) NoMatch(field string) string {
	return fmt.Sprintf("%v的值不匹配任何允许的模式", field)
}

func (z *ZhCn) Recommended(field string) string {
	return fmt.Sprintf("建议填写可选字段%v", field)
}

func (z *ZhCn) InvalidPayload(detail string) string {
	return fmt.Sprintf("载荷不是有效的JSON: %v", detail)
}

func (z *ZhCn) InvalidSchema(detail string) string {
	return fmt.Sprintf("模式编译失败: %v", detail)
}

func (z *ZhCn) Suggestion(kind string, field string, expected any) string {
	switch kind {
	case "required":
		return fmt.Sprintf("请在载荷中添加%v字段", field)
	case "type":
		return fmt.Sprintf("请将%v的值改为%v类型", field, expected)
	case "format":
		return fmt.Sprintf("请为%v使用有效的%v值", field, expected)
	case "pattern":
		return fmt.Sprintf("请使%v的值匹配正则表达式%v", field, expected)
	case "minLength":
		return fmt.Sprintf("请将%v的长度增加到至少%v", field, expected)
	case "maxLength":
		return fmt.Sprintf("请将%v的长度缩短到至多%v", field, expected)
	case "minimum":
		return fmt.Sprintf("请将%v的值增大到至少%v", field, expected)
	case "maximum":
		return fmt.Sprintf("请将%v的值减小到至多%v", field, expected)
	case "enum":
		return fmt.Sprintf("请为%v使用允许的值之一", field)
	}
	return ""
}
