package cronpal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseOption 配置解析器接受的字段布局和语法
type ParseOption int

const (
	Second         ParseOption = 1 << iota // 秒字段，位于表达式开头
	SecondOptional                         // 秒字段可有可无，按字段数量自动识别
	Minute
	Hour
	Dom
	Month
	Dow
	Descriptor // 允许 @daily 这类描述符
)

// places 按表达式中的出现顺序列出各字段
var places = []ParseOption{Second, Minute, Hour, Dom, Month, Dow}

// defaults 是省略字段的默认取值
var defaults = []string{"0", "0", "0", "*", "*", "*"}

// specs 是按 places 顺序对应的字段规则表
var specs = []*fieldSpec{&seconds, &minutes, &hours, &dom, &months, &dow}

// Parser 是可配置的 cron 表达式解析器
// 零值不接受任何字段，请通过 NewParser 创建
type Parser struct {
	options ParseOption
}

// NewParser 按给定选项创建解析器
func NewParser(options ParseOption) Parser {
	return Parser{options: options}
}

// standardParser 接受经典五字段以及带秒的六字段表达式
var standardParser = NewParser(Minute | Hour | Dom | Month | Dow | SecondOptional | Descriptor)

// ParseStandard 解析经典的五字段（分 时 日 月 周）或带秒的六字段表达式
// 解析结果会进入缓存，相同表达式的重复解析直接复用同一个 Schedule
func ParseStandard(expr string) (*Schedule, error) {
	return parseWithCache(standardParser, expr)
}

// Parse 按 Parser 的配置解析表达式
func (p Parser) Parse(expr string) (*Schedule, error) {
	return parseWithCache(p, expr)
}

// parse 是不经过缓存的完整解析流程
func (p Parser) parse(expr string) (*Schedule, error) {
	// 空表达式分割出 0 个字段，由字段数量校验统一报告
	raw := strings.TrimSpace(expr)

	if strings.HasPrefix(raw, "@") {
		if p.options&Descriptor == 0 {
			return nil, &GrammarError{Input: raw, Msg: "descriptors not enabled for this parser"}
		}
		return p.parseDescriptor(raw)
	}

	return p.parseFields(raw, raw)
}

// descriptors 是描述符到经典五字段形式的展开表
var descriptors = map[string]string{
	"@yearly":   "0 0 1 1 *",
	"@annually": "0 0 1 1 *",
	"@monthly":  "0 0 1 * *",
	"@weekly":   "0 0 * * 0",
	"@daily":    "0 0 * * *",
	"@midnight": "0 0 * * *",
	"@hourly":   "0 * * * *",
}

// parseDescriptor 解析 @yearly、@every 1h30m 这类描述符语法
func (p Parser) parseDescriptor(raw string) (*Schedule, error) {
	name := strings.ToLower(raw)

	if expanded, ok := descriptors[name]; ok {
		if p.options&Second > 0 && p.options&SecondOptional == 0 {
			expanded = "0 " + expanded
		}
		return p.parseFields(expanded, name)
	}

	// @reboot 没有时间字段，只能由调用方按启动事件处理
	if name == "@reboot" {
		return &Schedule{raw: name, reboot: true}, nil
	}

	if after, ok := strings.CutPrefix(name, "@every "); ok {
		d, err := time.ParseDuration(strings.TrimSpace(after))
		if err != nil {
			return nil, &GrammarError{Input: raw, Msg: fmt.Sprintf("invalid duration: %v", err)}
		}
		if d <= 0 {
			return nil, &GrammarError{Input: raw, Msg: fmt.Sprintf("non-positive duration %s", d)}
		}
		return &Schedule{raw: "@every " + d.String(), every: d}, nil
	}

	return nil, &GrammarError{Input: raw, Msg: "unrecognized descriptor; valid: @yearly, @annually, @monthly, @weekly, @daily, @midnight, @hourly, @reboot, @every <duration>"}
}

// parseFields 按空白分割表达式并逐字段交给字段语法解析
func (p Parser) parseFields(expr, raw string) (*Schedule, error) {
	fields, withSeconds, err := normalizeFields(strings.Fields(expr), p.options)
	if err != nil {
		return nil, err
	}

	s := &Schedule{
		raw:         strings.Join(strings.Fields(raw), " "),
		withSeconds: withSeconds,
	}
	dst := []*FieldValue{&s.second, &s.minute, &s.hour, &s.dom, &s.month, &s.dow}
	for i, spec := range specs {
		fv, err := parseField(fields[i], spec)
		if err != nil {
			return nil, err
		}
		*dst[i] = fv
	}
	return s, nil
}

// normalizeFields 校验字段数量并为省略的字段补默认值
// 返回补齐到六个位置的字段切片，以及表达式是否携带秒字段
func normalizeFields(fields []string, options ParseOption) ([]string, bool, error) {
	if options&SecondOptional > 0 {
		options |= Second
	}

	max := 0
	for _, place := range places {
		if options&place > 0 {
			max++
		}
	}
	min := max
	if options&SecondOptional > 0 {
		min--
	}

	if len(fields) < min || len(fields) > max {
		return nil, false, &FieldCountError{Count: len(fields), Min: min, Max: max}
	}

	withSeconds := options&Second > 0 && (options&SecondOptional == 0 || len(fields) == max)

	out := make([]string, len(places))
	copy(out, defaults)
	idx := 0
	for i, place := range places {
		if options&place == 0 {
			continue
		}
		if place == Second && !withSeconds {
			continue
		}
		out[i] = fields[idx]
		idx++
	}
	return out, withSeconds, nil
}

// parseField 把一个字段的文本解析为取值集合
// 逗号分隔的每一项可以是通配、单值、区间、步长或特殊记号，结果取并集
func parseField(text string, spec *fieldSpec) (FieldValue, error) {
	fv := FieldValue{spec: spec, raw: text}
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			return fv, &GrammarError{Field: spec.name, Input: text, Msg: "empty list item"}
		}

		tok, ok, err := parseDayToken(item, spec)
		if err != nil {
			return fv, err
		}
		if ok {
			fv.tokens = append(fv.tokens, tok)
			continue
		}

		bits, err := getRange(item, spec)
		if err != nil {
			return fv, err
		}
		fv.bits |= bits
	}
	return fv, nil
}

// parseDayToken 识别列表项中的特殊日期记号
// 该项不属于特殊记号时返回 ok=false，交给常规语法处理
func parseDayToken(item string, spec *fieldSpec) (DayToken, bool, error) {
	lower := strings.ToLower(item)

	if strings.Contains(lower, "#") && spec.specials != specialDow {
		return DayToken{}, false, &GrammarError{Field: spec.name, Input: item, Msg: "nth-weekday token not permitted in this field"}
	}
	if (lower == "l" || lower == "lw") && spec.specials != specialDom {
		return DayToken{}, false, &GrammarError{Field: spec.name, Input: item, Msg: "last-day token not permitted in this field"}
	}

	switch spec.specials {
	case specialDom:
		switch lower {
		case "l":
			return DayToken{Kind: TokenLastDay}, true, nil
		case "lw":
			return DayToken{Kind: TokenLastWeekday}, true, nil
		}
		if day, ok := strings.CutSuffix(lower, "w"); ok && day != "" {
			n, err := strconv.Atoi(day)
			if err != nil {
				return DayToken{}, false, &GrammarError{Field: spec.name, Input: item, Msg: "malformed nearest-weekday token"}
			}
			if n < int(spec.min) || n > int(spec.max) {
				return DayToken{}, false, &RangeError{Field: spec.name, Input: item, Value: n, Min: spec.min, Max: spec.max}
			}
			return DayToken{Kind: TokenNearestWeekday, Day: n}, true, nil
		}
	case specialDow:
		if wd, nth, ok := strings.Cut(lower, "#"); ok {
			w, err := parseIntOrName(wd, spec, item)
			if err != nil {
				return DayToken{}, false, err
			}
			if w == 7 {
				w = 0
			}
			n, err := strconv.Atoi(nth)
			if err != nil || n < 1 || n > 5 {
				return DayToken{}, false, &GrammarError{Field: spec.name, Input: item, Msg: "nth-weekday ordinal must be 1-5"}
			}
			return DayToken{Kind: TokenNthWeekday, Weekday: int(w), Nth: n}, true, nil
		}
		if wd, ok := strings.CutSuffix(lower, "l"); ok && wd != "" && !strings.ContainsAny(wd, "-/,*") {
			w, err := parseIntOrName(wd, spec, item)
			if err != nil {
				return DayToken{}, false, err
			}
			if w == 7 {
				w = 0
			}
			return DayToken{Kind: TokenLastOfWeekday, Weekday: int(w)}, true, nil
		}
	}
	return DayToken{}, false, nil
}

// getRange 解析单个列表项（通配、单值、区间，均可带步长），返回对应的位集合：
//
//	数字 | 数字-数字 | 数字/步长 | 数字-数字/步长 | * | */步长
//
// 数字位置也接受字段定义的符号别名
func getRange(item string, spec *fieldSpec) (uint64, error) {
	var begin, end, step uint
	rangeAndStep := strings.Split(item, "/")
	lowAndHigh := strings.Split(rangeAndStep[0], "-")
	singleDigit := len(lowAndHigh) == 1
	wildcard := lowAndHigh[0] == "*" || lowAndHigh[0] == "?"

	if lowAndHigh[0] == "?" && spec.specials == specialNone {
		return 0, &GrammarError{Field: spec.name, Input: item, Msg: `"?" is only valid in the day fields`}
	}

	var extra uint64
	if wildcard {
		if len(lowAndHigh) > 1 {
			return 0, &GrammarError{Field: spec.name, Input: item, Msg: "wildcard cannot be a range endpoint"}
		}
		begin, end = spec.min, spec.max
		extra = starBit
	} else {
		var err error
		begin, err = parseIntOrName(lowAndHigh[0], spec, item)
		if err != nil {
			return 0, err
		}
		switch len(lowAndHigh) {
		case 1:
			end = begin
		case 2:
			end, err = parseIntOrName(lowAndHigh[1], spec, item)
			if err != nil {
				return 0, err
			}
		default:
			return 0, &GrammarError{Field: spec.name, Input: item, Msg: "too many hyphens"}
		}
	}

	switch len(rangeAndStep) {
	case 1:
		step = 1
	case 2:
		var err error
		step, err = parseStep(rangeAndStep[1], spec, item)
		if err != nil {
			return 0, err
		}
		// N/S 等价于 N-max/S
		if singleDigit && !wildcard {
			end = spec.max
		}
		// 带步长后不再视为无限制
		if step > 1 {
			extra = 0
		}
	default:
		return 0, &GrammarError{Field: spec.name, Input: item, Msg: "too many slashes"}
	}

	// 星期字段按 0-7 的线性区间展开，写作 7 的端点在展开后折回 0
	if spec == &dow && begin == 7 && begin > end {
		begin = 0
	}

	var bits uint64
	if begin > end {
		if !spec.wrap {
			return 0, &GrammarError{Field: spec.name, Input: item, Msg: fmt.Sprintf("descending range %d-%d", begin, end)}
		}
		bits = wrapBits(begin, end, step, spec)
	} else {
		bits = getBits(begin, end, step)
	}
	if spec == &dow && bits&(1<<7) > 0 {
		bits = bits&^(1<<7) | 1
	}
	return bits | extra, nil
}

// parseIntOrName 解析数值或符号别名并做范围校验
// 别名不区分大小写；星期字段的周日既可以写 0 也可以写 7
func parseIntOrName(s string, spec *fieldSpec, item string) (uint, error) {
	if spec.names != nil {
		if v, ok := spec.names[strings.ToLower(s)]; ok {
			return v, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &GrammarError{Field: spec.name, Input: item, Msg: fmt.Sprintf("%q is not a number or name", s)}
	}
	// 星期字段的周日可写作 7，此处原样放行
	// 折回 0 的动作留到区间展开之后，否则 0-7 这类区间的端点会被提前破坏
	max := spec.max
	if spec == &dow {
		max = 7
	}
	if n < int(spec.min) || n > int(max) {
		return 0, &RangeError{Field: spec.name, Input: item, Value: n, Min: spec.min, Max: max}
	}
	return uint(n), nil
}

// parseStep 解析步长，步长必须是正整数
func parseStep(s string, spec *fieldSpec, item string) (uint, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, &GrammarError{Field: spec.name, Input: item, Msg: fmt.Sprintf("invalid step %q", s)}
	}
	if n == 0 {
		return 0, &GrammarError{Field: spec.name, Input: item, Msg: "step must be positive"}
	}
	return uint(n), nil
}

// getBits 返回 [min,max] 内按 step 间隔取值的位集合
func getBits(min, max, step uint) uint64 {
	var bits uint64
	for i := min; i <= max; i += step {
		bits |= 1 << i
	}
	return bits
}

// wrapBits 处理越过字段最大值回绕到最小值的区间，步长跨越回绕点继续计数
func wrapBits(begin, end, step uint, spec *fieldSpec) uint64 {
	var bits uint64
	span := (spec.max - begin) + (end - spec.min) + 1
	for off := uint(0); off <= span; off += step {
		v := begin + off
		if v > spec.max {
			v = spec.min + (v - spec.max - 1)
		}
		bits |= 1 << v
	}
	return bits
}
