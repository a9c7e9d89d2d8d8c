package cronpal

// fieldSpec 描述一个字段位置的取值规则
// 这些表是进程级的只读常量，在所有解析调用之间安全共享
type fieldSpec struct {
	name     string          // 字段名称，用于错误信息和展示
	min, max uint            // 允许的数值范围
	names    map[string]uint // 符号别名到数值的映射（统一小写）
	wrap     bool            // 是否允许 N-M 中 N > M 的环绕区间
	specials special         // 该字段允许的特殊记号集合
}

// special 标识字段允许哪一类特殊日期记号
type special uint8

const (
	specialNone special = iota
	specialDom          // L、LW、NW
	specialDow          // N#K、NL
)

// 各字段位置的取值规则表
var (
	seconds = fieldSpec{name: "second", min: 0, max: 59}
	minutes = fieldSpec{name: "minute", min: 0, max: 59}
	hours   = fieldSpec{name: "hour", min: 0, max: 23}
	dom     = fieldSpec{name: "day of month", min: 1, max: 31, specials: specialDom}
	months  = fieldSpec{name: "month", min: 1, max: 12, names: map[string]uint{
		"jan": 1,
		"feb": 2,
		"mar": 3,
		"apr": 4,
		"may": 5,
		"jun": 6,
		"jul": 7,
		"aug": 8,
		"sep": 9,
		"oct": 10,
		"nov": 11,
		"dec": 12,
	}}
	// 星期字段允许环绕区间（如 fri-mon），周日可写作 0 或 7
	dow = fieldSpec{name: "day of week", min: 0, max: 6, wrap: true, specials: specialDow, names: map[string]uint{
		"sun": 0,
		"mon": 1,
		"tue": 2,
		"wed": 3,
		"thu": 4,
		"fri": 5,
		"sat": 6,
	}}
)

const (
	// 字段为纯通配（不限制取值）时置上最高位
	starBit = 1 << 63
)

// FieldValue 是单个字段解析后的取值集合：
// 位集合中第 v 位为 1 表示数值 v 被允许，外加零个或多个延迟求值的特殊记号
// 解析完成后不再修改，可被并发共享
type FieldValue struct {
	bits   uint64
	spec   *fieldSpec
	tokens []DayToken
	raw    string
}

// Name 返回字段名称，如 "minute"
func (f FieldValue) Name() string {
	if f.spec == nil {
		return ""
	}
	return f.spec.name
}

// Raw 返回该字段在表达式中的原始文本
func (f FieldValue) Raw() string { return f.raw }

// Bounds 返回字段的取值范围 [min, max]
func (f FieldValue) Bounds() (min, max uint) {
	if f.spec == nil {
		return 0, 0
	}
	return f.spec.min, f.spec.max
}

// Unrestricted 报告该字段是否为纯通配（匹配范围内的任何取值）
func (f FieldValue) Unrestricted() bool {
	return f.bits&starBit > 0 && len(f.tokens) == 0
}

// restricted 报告该字段是否参与日字段的联合规则
// 带特殊记号的字段即使写了通配也视为受限
func (f FieldValue) restricted() bool {
	return f.bits&starBit == 0 || len(f.tokens) > 0
}

// Contains 报告数值 v 是否在取值集合中（不含特殊记号）
func (f FieldValue) Contains(v int) bool {
	if f.spec == nil || v < int(f.spec.min) || v > int(f.spec.max) {
		return false
	}
	return f.bits&(1<<uint(v)) > 0
}

// Values 返回取值集合中的所有数值，升序且无重复
// 纯通配字段返回范围内的全部取值
func (f FieldValue) Values() []int {
	if f.spec == nil {
		return nil
	}
	vals := make([]int, 0, f.spec.max-f.spec.min+1)
	for i := f.spec.min; i <= f.spec.max; i++ {
		if f.bits&(1<<i) > 0 {
			vals = append(vals, int(i))
		}
	}
	return vals
}

// Tokens 返回该字段携带的特殊日期记号
func (f FieldValue) Tokens() []DayToken {
	return append([]DayToken(nil), f.tokens...)
}
