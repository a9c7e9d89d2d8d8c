package cronpal

import (
	"errors"
	"testing"
	"time"
)

func mustParse(t *testing.T, expr string) *Schedule {
	t.Helper()
	s, err := ParseStandard(expr)
	if err != nil {
		t.Fatalf("ParseStandard(%q) 失败: %v", expr, err)
	}
	return s
}

// TestNext 测试下一次执行时间的推算
func TestNext(t *testing.T) {
	tests := []struct {
		expr string
		from time.Time
		want time.Time
	}{
		// 结果必须严格晚于参考时间
		{"* * * * *",
			time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC),
			time.Date(2024, 3, 10, 12, 31, 0, 0, time.UTC)},
		// 参考时间不在整分钟上
		{"* * * * *",
			time.Date(2024, 3, 10, 12, 30, 45, 0, time.UTC),
			time.Date(2024, 3, 10, 12, 31, 0, 0, time.UTC)},
		// 纳秒部分向上取整到下一个整秒
		{"* * * * *",
			time.Date(2024, 3, 10, 12, 30, 59, 500, time.UTC),
			time.Date(2024, 3, 10, 12, 31, 0, 0, time.UTC)},
		{"*/15 * * * *",
			time.Date(2024, 3, 10, 12, 31, 0, 0, time.UTC),
			time.Date(2024, 3, 10, 12, 45, 0, 0, time.UTC)},
		// 跨年翻转
		{"0 0 1 1 *",
			time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"0 0 1 1 *",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		// 跨天翻转
		{"30 3 * * *",
			time.Date(2024, 3, 10, 4, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 11, 3, 30, 0, 0, time.UTC)},
		// 周五 10 点之后的下一个工作日 9 点是下周一
		{"0 9 * * mon-fri",
			time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)},
		// 环绕区间 fri-mon
		{"0 0 * * fri-mon",
			time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)},
		// 日期和星期同时受限：命中其一即可（周二之后先等到周一）
		{"0 0 1 * 1",
			time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC),
			time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC)},
		// 同一表达式：周一之后先等到月初
		{"0 0 1 * 1",
			time.Date(2024, 4, 29, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		// 闰日：下一个 2 月 29 日在四年后
		{"0 0 29 2 *",
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)},
		// L：当月最后一天
		{"0 0 L * *",
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"0 0 L * *",
			time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
		// 15W：2023-07-15 是周六，就近取周五 14 号
		{"0 12 15W * *",
			time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 7, 14, 12, 0, 0, 0, time.UTC)},
		// 15W：2023-10-15 是周日，就近取周一 16 号
		{"0 12 15W * *",
			time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 10, 16, 12, 0, 0, 0, time.UTC)},
		// LW：2024-06-30 是周日，最后一个工作日是 28 号周五
		{"0 0 LW * *",
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)},
		// 1#3：2024 年 5 月的第 3 个周一是 20 号
		{"0 0 * * 1#3",
			time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
		// 5L：2024 年 5 月最后一个周五是 31 号
		{"0 0 * * 5L",
			time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)},
		// 六字段：秒级分辨率
		{"30 * * * * *",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 30, 0, time.UTC)},
		{"15 30 14 * * *",
			time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 2, 14, 30, 15, 0, time.UTC)},
		{"@daily",
			time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := mustParse(t, tt.expr).Next(tt.from)
		if err != nil {
			t.Errorf("Next(%q, %v) 失败: %v", tt.expr, tt.from, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Next(%q, %v) = %v, 期望 %v", tt.expr, tt.from, got, tt.want)
		}
	}
}

// TestPrev 测试上一次执行时间的推算
func TestPrev(t *testing.T) {
	tests := []struct {
		expr string
		from time.Time
		want time.Time
	}{
		// 结果必须严格早于参考时间
		{"* * * * *",
			time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC),
			time.Date(2024, 3, 10, 12, 29, 0, 0, time.UTC)},
		{"*/15 * * * *",
			time.Date(2024, 3, 10, 12, 31, 0, 0, time.UTC),
			time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)},
		// 跨年回退
		{"0 0 1 1 *",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"0 0 1 1 *",
			time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		// 周一早上之前的上一个工作日 9 点是上周五
		{"0 9 * * mon-fri",
			time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)},
		// L：回退到闰年 2 月的最后一天
		{"0 0 L * *",
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"@daily",
			time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := mustParse(t, tt.expr).Prev(tt.from)
		if err != nil {
			t.Errorf("Prev(%q, %v) 失败: %v", tt.expr, tt.from, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Prev(%q, %v) = %v, 期望 %v", tt.expr, tt.from, got, tt.want)
		}
	}
}

// TestNextPrev_Mirror 测试 Prev 是 Next 的时间镜像：
// 紧跟在一次出现之后回退应当回到同一次出现
func TestNextPrev_Mirror(t *testing.T) {
	exprs := []string{
		"* * * * *",
		"*/7 * * * *",
		"0 9 * * mon-fri",
		"0 0 1 * 1",
		"0 0 L * *",
		"30 */2 * * * *",
	}
	from := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

	for _, expr := range exprs {
		s := mustParse(t, expr)
		next, err := s.Next(from)
		if err != nil {
			t.Fatalf("Next(%q) 失败: %v", expr, err)
		}
		back, err := s.Prev(next.Add(time.Second))
		if err != nil {
			t.Fatalf("Prev(%q) 失败: %v", expr, err)
		}
		if !back.Equal(next) {
			t.Errorf("%q: Prev(Next+1s) = %v, 期望 %v", expr, back, next)
		}
	}
}

// TestNext_Unsatisfiable 测试搜索边界内不可满足的表达式
func TestNext_Unsatisfiable(t *testing.T) {
	s := mustParse(t, "0 0 31 2 *") // 二月没有 31 号
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var unsatErr *UnsatisfiableScheduleError
	if _, err := s.Next(from); !errors.As(err, &unsatErr) {
		t.Fatalf("Next 期望 UnsatisfiableScheduleError, 得到 %v", err)
	}
	if unsatErr.Backward {
		t.Error("向未来搜索的错误不应标记 Backward")
	}
	if unsatErr.Horizon != HorizonYears {
		t.Errorf("Horizon = %d, 期望 %d", unsatErr.Horizon, HorizonYears)
	}

	if _, err := s.Prev(from); !errors.As(err, &unsatErr) {
		t.Fatalf("Prev 期望 UnsatisfiableScheduleError, 得到 %v", err)
	}
	if !unsatErr.Backward {
		t.Error("向过去搜索的错误应标记 Backward")
	}

	if _, err := s.Occurrences(from, 3); !errors.As(err, &unsatErr) {
		t.Errorf("Occurrences 期望 UnsatisfiableScheduleError, 得到 %v", err)
	}
}

// TestOccurrences 测试批量推算的数量、顺序和匹配性
func TestOccurrences(t *testing.T) {
	s := mustParse(t, "*/7 * * * *")
	from := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

	runs, err := s.Occurrences(from, 20)
	if err != nil {
		t.Fatalf("Occurrences 失败: %v", err)
	}
	if len(runs) != 20 {
		t.Fatalf("返回 %d 个时间, 期望 20", len(runs))
	}
	prev := from
	for i, r := range runs {
		if !r.After(prev) {
			t.Errorf("第 %d 个时间 %v 未严格晚于 %v", i, r, prev)
		}
		if !s.Matches(r) {
			t.Errorf("第 %d 个时间 %v 不满足表达式", i, r)
		}
		prev = r
	}

	if _, err := s.Occurrences(from, 0); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("count 为 0 期望 ErrInvalidCount, 得到 %v", err)
	}
}

// TestPrevOccurrences 测试向过去批量推算按从近到远排列
func TestPrevOccurrences(t *testing.T) {
	s := mustParse(t, "0 */4 * * *")
	before := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

	runs, err := s.PrevOccurrences(before, 5)
	if err != nil {
		t.Fatalf("PrevOccurrences 失败: %v", err)
	}
	if len(runs) != 5 {
		t.Fatalf("返回 %d 个时间, 期望 5", len(runs))
	}
	prev := before
	for i, r := range runs {
		if !r.Before(prev) {
			t.Errorf("第 %d 个时间 %v 未严格早于 %v", i, r, prev)
		}
		if !s.Matches(r) {
			t.Errorf("第 %d 个时间 %v 不满足表达式", i, r)
		}
		prev = r
	}

	if _, err := s.PrevOccurrences(before, -1); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("count 为负期望 ErrInvalidCount, 得到 %v", err)
	}
}

// TestNext_Every 测试 @every 的间隔推算
func TestNext_Every(t *testing.T) {
	s := mustParse(t, "@every 1h")
	from := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

	next, err := s.Next(from)
	if err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
	if want := from.Add(time.Hour); !next.Equal(want) {
		t.Errorf("Next = %v, 期望 %v", next, want)
	}

	prev, err := s.Prev(from)
	if err != nil {
		t.Fatalf("Prev 失败: %v", err)
	}
	if want := from.Add(-time.Hour); !prev.Equal(want) {
		t.Errorf("Prev = %v, 期望 %v", prev, want)
	}
}

// TestNext_Timezone 测试日历运算在参考时间携带的时区上进行
func TestNext_Timezone(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	s := mustParse(t, "0 9 * * *")
	from := time.Date(2024, 5, 1, 10, 0, 0, 0, loc)

	next, err := s.Next(from)
	if err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
	want := time.Date(2024, 5, 2, 9, 0, 0, 0, loc)
	if !next.Equal(want) {
		t.Errorf("Next = %v, 期望 %v", next, want)
	}
	if next.Location() != loc {
		t.Errorf("结果时区 = %v, 期望 %v", next.Location(), loc)
	}
}
