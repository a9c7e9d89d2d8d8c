package cronpal

import (
	"fmt"
	"time"
)

// DayTokenKind 标识特殊日期记号的类型
type DayTokenKind uint8

const (
	TokenLastDay        DayTokenKind = iota + 1 // L：当月最后一天
	TokenLastWeekday                            // LW：当月最后一个工作日
	TokenNearestWeekday                         // NW：离 N 号最近且不跨月的工作日
	TokenNthWeekday                             // d#n：当月第 n 个星期 d
	TokenLastOfWeekday                          // dL：当月最后一个星期 d
)

// DayToken 是一个延迟求值的特殊日期记号
// 它对应的具体日期取决于被检查的年份和月份，因此不在解析时展开成静态数值，
// 而是在出现时间搜索过程中针对候选月份逐次解析
type DayToken struct {
	Kind    DayTokenKind
	Day     int // NW 的基准日
	Weekday int // d#n 和 dL 的星期值（0=周日）
	Nth     int // d#n 的序号（1-5）
}

// matches 判断候选时间的日期是否命中该记号
func (tk DayToken) matches(t time.Time) bool {
	last := daysIn(t.Year(), t.Month())
	switch tk.Kind {
	case TokenLastDay:
		return t.Day() == last
	case TokenLastWeekday:
		return t.Day() == lastWeekday(t.Year(), t.Month())
	case TokenNearestWeekday:
		// 基准日在当月不存在时本月无命中（与普通的 31 号在小月跳过一致）
		if tk.Day > last {
			return false
		}
		return t.Day() == nearestWeekday(t.Year(), t.Month(), tk.Day)
	case TokenNthWeekday:
		return int(t.Weekday()) == tk.Weekday && (t.Day()-1)/7+1 == tk.Nth
	case TokenLastOfWeekday:
		return int(t.Weekday()) == tk.Weekday && t.Day()+7 > last
	}
	return false
}

func (tk DayToken) String() string {
	switch tk.Kind {
	case TokenLastDay:
		return "L"
	case TokenLastWeekday:
		return "LW"
	case TokenNearestWeekday:
		return fmt.Sprintf("%dW", tk.Day)
	case TokenNthWeekday:
		return fmt.Sprintf("%d#%d", tk.Weekday, tk.Nth)
	case TokenLastOfWeekday:
		return fmt.Sprintf("%dL", tk.Weekday)
	}
	return ""
}

// daysIn 返回指定年月的天数
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// lastWeekday 返回当月最后一个工作日（周一至周五）的日期
func lastWeekday(year int, month time.Month) int {
	d := daysIn(year, month)
	switch time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Weekday() {
	case time.Saturday:
		return d - 1
	case time.Sunday:
		return d - 2
	}
	return d
}

// nearestWeekday 返回离 day 号最近且不跨出当月的工作日：
// 周六向前取周五，周日向后取周一，贴着月份边界时反向调整
func nearestWeekday(year int, month time.Month, day int) int {
	switch time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday() {
	case time.Saturday:
		if day == 1 {
			return 3
		}
		return day - 1
	case time.Sunday:
		if day == daysIn(year, month) {
			return day - 2
		}
		return day + 1
	}
	return day
}
