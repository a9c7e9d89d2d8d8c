package cronpal

import (
	"errors"
	"testing"
	"time"
)

// TestDaysIn 测试月份天数计算（含闰年）
func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2000, time.February, 29},
		{1900, time.February, 28},
		{2024, time.April, 30},
		{2024, time.January, 31},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := daysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("daysIn(%d, %v) = %d, 期望 %d", tt.year, tt.month, got, tt.want)
		}
	}
}

// TestLastWeekday 测试当月最后一个工作日的计算
func TestLastWeekday(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.May, 31},   // 5 月 31 日是周五
		{2024, time.June, 28},  // 6 月 30 日是周日，退到周五 28 号
		{2024, time.March, 29}, // 3 月 31 日是周日
		{2024, time.August, 30}, // 8 月 31 日是周六，退到周五 30 号
	}

	for _, tt := range tests {
		if got := lastWeekday(tt.year, tt.month); got != tt.want {
			t.Errorf("lastWeekday(%d, %v) = %d, 期望 %d", tt.year, tt.month, got, tt.want)
		}
	}
}

// TestNearestWeekday 测试就近工作日的计算，包括月份边界的反向调整
func TestNearestWeekday(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
		want  int
	}{
		{2024, time.June, 12, 12},   // 周三，无需调整
		{2023, time.July, 15, 14},   // 周六向前取周五
		{2023, time.October, 15, 16}, // 周日向后取周一
		{2024, time.June, 1, 3},     // 1 号是周六，不能跨出月初，向后取周一
		{2024, time.June, 30, 28},   // 月末是周日，不能跨出月末，向前取周五
	}

	for _, tt := range tests {
		if got := nearestWeekday(tt.year, tt.month, tt.day); got != tt.want {
			t.Errorf("nearestWeekday(%d, %v, %d) = %d, 期望 %d", tt.year, tt.month, tt.day, got, tt.want)
		}
	}
}

// TestDayToken_Matches 测试记号对具体日期的匹配
func TestDayToken_Matches(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		tok  DayToken
		t    time.Time
		want bool
	}{
		{DayToken{Kind: TokenLastDay}, day(2024, time.February, 29), true},
		{DayToken{Kind: TokenLastDay}, day(2024, time.February, 28), false},
		{DayToken{Kind: TokenLastWeekday}, day(2024, time.June, 28), true},
		{DayToken{Kind: TokenLastWeekday}, day(2024, time.June, 30), false},
		{DayToken{Kind: TokenNearestWeekday, Day: 15}, day(2023, time.July, 14), true},
		{DayToken{Kind: TokenNearestWeekday, Day: 15}, day(2023, time.July, 15), false},
		// 基准日超出当月天数时整月无命中
		{DayToken{Kind: TokenNearestWeekday, Day: 31}, day(2024, time.June, 28), false},
		{DayToken{Kind: TokenNthWeekday, Weekday: 1, Nth: 3}, day(2024, time.May, 20), true},
		{DayToken{Kind: TokenNthWeekday, Weekday: 1, Nth: 3}, day(2024, time.May, 13), false},
		{DayToken{Kind: TokenLastOfWeekday, Weekday: 5}, day(2024, time.May, 31), true},
		{DayToken{Kind: TokenLastOfWeekday, Weekday: 5}, day(2024, time.May, 24), false},
	}

	for _, tt := range tests {
		if got := tt.tok.matches(tt.t); got != tt.want {
			t.Errorf("%v.matches(%v) = %v, 期望 %v", tt.tok, tt.t.Format("2006-01-02"), got, tt.want)
		}
	}
}

// TestDayToken_String 测试记号的文本表示
func TestDayToken_String(t *testing.T) {
	tests := []struct {
		tok  DayToken
		want string
	}{
		{DayToken{Kind: TokenLastDay}, "L"},
		{DayToken{Kind: TokenLastWeekday}, "LW"},
		{DayToken{Kind: TokenNearestWeekday, Day: 15}, "15W"},
		{DayToken{Kind: TokenNthWeekday, Weekday: 1, Nth: 3}, "1#3"},
		{DayToken{Kind: TokenLastOfWeekday, Weekday: 5}, "5L"},
	}

	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, 期望 %q", got, tt.want)
		}
	}
}

// TestNearestWeekday_ShortMonth 测试基准日不存在的月份被整体跳过
func TestNearestWeekday_ShortMonth(t *testing.T) {
	// 6 月没有 31 号，31W 限定在 6 月时不可满足
	s := mustParse(t, "0 0 31W 6 *")
	var unsatErr *UnsatisfiableScheduleError
	if _, err := s.Next(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)); !errors.As(err, &unsatErr) {
		t.Errorf("期望 UnsatisfiableScheduleError, 得到 %v", err)
	}

	// 1W：2024-06-01 是周六，向后取周一 3 号
	s = mustParse(t, "0 0 1W * *")
	next, err := s.Next(time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
	if want := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC); !next.Equal(want) {
		t.Errorf("Next = %v, 期望 %v", next, want)
	}
}
