package cronpal

import "time"

// HorizonYears 是出现时间搜索的边界：向前或向后最多搜索这么多年
// 超出边界仍无命中即认为表达式不可满足，返回 UnsatisfiableScheduleError
// 五年足以覆盖最稀疏的合法组合（如每四年一次的 2 月 29 日）
const HorizonYears = 5

// Next 返回严格晚于 t 的下一个满足调度规则的时间
// 日历运算在 t 携带的时区上进行，时区转换由调用方负责
func (s *Schedule) Next(t time.Time) (time.Time, error) {
	if s.reboot {
		return time.Time{}, s.unsatisfiable(false)
	}
	if s.every > 0 {
		return t.Add(s.every - time.Duration(t.Nanosecond())), nil
	}

	// 对齐到下一个整秒
	t = t.Add(1*time.Second - time.Duration(t.Nanosecond()))

	yearLimit := t.Year() + HorizonYears

WRAP:
	for t.Year() <= yearLimit {
		// 月份不匹配时直接跳到下个月的第一天，而不是逐日扫描
		for 1<<uint(t.Month())&s.month.bits == 0 {
			t = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
			if t.Year() > yearLimit {
				return time.Time{}, s.unsatisfiable(false)
			}
		}

		for !s.dayMatches(t) {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
			if t.Day() == 1 {
				// 进入新的月份，重新校验月份
				goto WRAP
			}
		}

		for 1<<uint(t.Hour())&s.hour.bits == 0 {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(time.Hour)
			if t.Hour() == 0 {
				// 进入新的一天，重新校验日期
				goto WRAP
			}
		}

		for 1<<uint(t.Minute())&s.minute.bits == 0 {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location()).Add(time.Minute)
			if t.Minute() == 0 {
				goto WRAP
			}
		}

		for 1<<uint(t.Second())&s.second.bits == 0 {
			t = t.Add(time.Second)
			if t.Second() == 0 {
				goto WRAP
			}
		}

		return t, nil
	}

	return time.Time{}, s.unsatisfiable(false)
}

// Prev 返回严格早于 t 的上一个满足调度规则的时间，是 Next 的时间镜像
func (s *Schedule) Prev(t time.Time) (time.Time, error) {
	if s.reboot {
		return time.Time{}, s.unsatisfiable(true)
	}
	if s.every > 0 {
		return t.Add(-time.Duration(t.Nanosecond())).Add(-s.every), nil
	}

	// 对齐到上一个整秒
	if ns := t.Nanosecond(); ns > 0 {
		t = t.Add(-time.Duration(ns))
	} else {
		t = t.Add(-time.Second)
	}

	yearLimit := t.Year() - HorizonYears

WRAP:
	for t.Year() >= yearLimit {
		// 月份不匹配时跳到上个月的最后一秒
		for 1<<uint(t.Month())&s.month.bits == 0 {
			t = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).Add(-time.Second)
			if t.Year() < yearLimit {
				return time.Time{}, s.unsatisfiable(true)
			}
		}

		for !s.dayMatches(t) {
			crossed := t.Day() == 1
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).Add(-time.Second)
			if crossed {
				// 退入上一个月份，重新校验月份
				goto WRAP
			}
		}

		for 1<<uint(t.Hour())&s.hour.bits == 0 {
			crossed := t.Hour() == 0
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(-time.Second)
			if crossed {
				goto WRAP
			}
		}

		for 1<<uint(t.Minute())&s.minute.bits == 0 {
			crossed := t.Minute() == 0
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location()).Add(-time.Second)
			if crossed {
				goto WRAP
			}
		}

		for 1<<uint(t.Second())&s.second.bits == 0 {
			crossed := t.Second() == 0
			t = t.Add(-time.Second)
			if crossed {
				goto WRAP
			}
		}

		return t, nil
	}

	return time.Time{}, s.unsatisfiable(true)
}

// Occurrences 返回 after 之后 count 个严格递增的出现时间
// 每次调用独立重建搜索状态，同一个 Schedule 可以被多个调用方同时消费
func (s *Schedule) Occurrences(after time.Time, count int) ([]time.Time, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	out := make([]time.Time, 0, count)
	t := after
	for len(out) < count {
		next, err := s.Next(t)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
		t = next
	}
	return out, nil
}

// PrevOccurrences 返回 before 之前 count 个出现时间，按从近到远排列
func (s *Schedule) PrevOccurrences(before time.Time, count int) ([]time.Time, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	out := make([]time.Time, 0, count)
	t := before
	for len(out) < count {
		prev, err := s.Prev(t)
		if err != nil {
			return nil, err
		}
		out = append(out, prev)
		t = prev
	}
	return out, nil
}

func (s *Schedule) unsatisfiable(backward bool) error {
	return &UnsatisfiableScheduleError{Expr: s.raw, Backward: backward, Horizon: HorizonYears}
}
