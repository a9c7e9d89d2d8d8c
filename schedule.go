package cronpal

import "time"

// Schedule 是一条经过校验的调度规则
// 由解析器一次性构造，此后不可变，可在多个 goroutine 之间只读共享
type Schedule struct {
	second, minute, hour, dom, month, dow FieldValue

	raw         string
	withSeconds bool          // 表达式是否携带秒字段
	every       time.Duration // @every 描述符的间隔，非零时字段集合不生效
	reboot      bool          // @reboot 描述符，没有日历含义
}

// String 返回规范化后的表达式文本
// 重新解析该文本得到语义等价的 Schedule
func (s *Schedule) String() string { return s.raw }

// HasSeconds 报告表达式是否携带秒字段
func (s *Schedule) HasSeconds() bool { return s.withSeconds }

// IsReboot 报告是否为 @reboot 表达式
func (s *Schedule) IsReboot() bool { return s.reboot }

// Every 返回 @every 表达式的间隔，普通表达式返回 0
func (s *Schedule) Every() time.Duration { return s.every }

// Second 返回秒字段；五字段布局下固定为 0
func (s *Schedule) Second() FieldValue { return s.second }

// Minute 返回分钟字段
func (s *Schedule) Minute() FieldValue { return s.minute }

// Hour 返回小时字段
func (s *Schedule) Hour() FieldValue { return s.hour }

// Dom 返回日期字段
func (s *Schedule) Dom() FieldValue { return s.dom }

// Month 返回月份字段
func (s *Schedule) Month() FieldValue { return s.month }

// Dow 返回星期字段
func (s *Schedule) Dow() FieldValue { return s.dow }

// Fields 按表达式中的出现顺序返回各字段，五字段布局不含秒
// @every 和 @reboot 没有字段，返回 nil
func (s *Schedule) Fields() []FieldValue {
	if s.every > 0 || s.reboot {
		return nil
	}
	all := []FieldValue{s.second, s.minute, s.hour, s.dom, s.month, s.dow}
	if !s.withSeconds {
		return all[1:]
	}
	return all
}

// Matches 判断一个时间点（按整秒）是否满足调度规则
// @every 和 @reboot 不对应具体时间点，恒为 false
func (s *Schedule) Matches(t time.Time) bool {
	if s.every > 0 || s.reboot {
		return false
	}
	if 1<<uint(t.Second())&s.second.bits == 0 {
		return false
	}
	if 1<<uint(t.Minute())&s.minute.bits == 0 {
		return false
	}
	if 1<<uint(t.Hour())&s.hour.bits == 0 {
		return false
	}
	if 1<<uint(t.Month())&s.month.bits == 0 {
		return false
	}
	return s.dayMatches(t)
}

// dayMatches 应用日字段的联合规则：
// 日期字段和星期字段同时受限时，命中任意一个即算命中；
// 至少一方不受限时，两者都必须命中（不受限的一方恒为命中）
func (s *Schedule) dayMatches(t time.Time) bool {
	domMatch := s.dom.matchesDay(t, t.Day())
	dowMatch := s.dow.matchesDay(t, int(t.Weekday()))
	if s.dom.restricted() && s.dow.restricted() {
		return domMatch || dowMatch
	}
	return domMatch && dowMatch
}

// matchesDay 检查位集合或任一特殊记号是否命中候选日期
func (f FieldValue) matchesDay(t time.Time, v int) bool {
	if f.bits&(1<<uint(v)) > 0 {
		return true
	}
	for _, tk := range f.tokens {
		if tk.matches(t) {
			return true
		}
	}
	return false
}
