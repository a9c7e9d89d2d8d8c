package cronpal

import (
	"errors"
	"fmt"
)

// ErrInvalidCount 表示批量推算请求的数量小于 1
var ErrInvalidCount = errors.New("occurrence count must be at least 1")

// FieldCountError 表示表达式按空白分割后的字段数量不符合要求
type FieldCountError struct {
	Count int // 实际字段数
	Min   int // 允许的最小字段数
	Max   int // 允许的最大字段数
}

func (e *FieldCountError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("invalid number of fields: expected %d, got %d", e.Min, e.Count)
	}
	return fmt.Sprintf("invalid number of fields: expected %d to %d, got %d", e.Min, e.Max, e.Count)
}

// GrammarError 表示字段内部的语法错误：
// 非法分隔符、零或负的步长、空列表项、该字段不支持的特殊记号等
type GrammarError struct {
	Field string // 出错的字段名称，表达式级错误时为空
	Input string // 导致错误的原始子串
	Msg   string
}

func (e *GrammarError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("syntax error in %q: %s", e.Input, e.Msg)
	}
	return fmt.Sprintf("syntax error in %s field %q: %s", e.Field, e.Input, e.Msg)
}

// RangeError 表示数值或别名解析结果超出字段的允许范围
type RangeError struct {
	Field string
	Input string // 导致错误的原始子串
	Value int    // 解析出的越界数值
	Min   uint
	Max   uint
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s value %d out of range [%d-%d] in %q", e.Field, e.Value, e.Min, e.Max, e.Input)
}

// UnsatisfiableScheduleError 表示在搜索边界内找不到任何满足表达式的时间点，
// 例如把 31 号限制在二月这类不可能的组合
type UnsatisfiableScheduleError struct {
	Expr     string
	Backward bool // 是否为向过去搜索
	Horizon  int  // 搜索边界（年）
}

func (e *UnsatisfiableScheduleError) Error() string {
	dir := "after"
	if e.Backward {
		dir = "before"
	}
	return fmt.Sprintf("schedule %q has no occurrence within %d years %s the reference time", e.Expr, e.Horizon, dir)
}
