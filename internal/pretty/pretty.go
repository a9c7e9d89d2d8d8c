// Package pretty 把解析结果渲染为终端友好的文本：
// 字段明细（简单、表格、详细三种布局）、人类可读的调度摘要以及错误提示
package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/darkit/cronpal"
)

var monthNames = []string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Printer 渲染器，颜色可关闭（管道输出或 --no-color）
type Printer struct {
	ok    lipgloss.Style
	bad   lipgloss.Style
	head  lipgloss.Style
	label lipgloss.Style
	dim   lipgloss.Style
}

// NewPrinter 创建渲染器，color 为 false 时所有样式退化为纯文本
func NewPrinter(color bool) *Printer {
	p := &Printer{}
	if color {
		p.ok = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
		p.bad = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		p.head = lipgloss.NewStyle().Bold(true)
		p.label = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		p.dim = lipgloss.NewStyle().Faint(true)
	}
	return p
}

// Valid 渲染表达式通过校验的提示行
func (p *Printer) Valid(s *cronpal.Schedule) string {
	return p.ok.Render("✓") + " Valid cron expression: " + p.head.Render(s.String())
}

// Error 按错误类型渲染失败提示，verbose 时附加表达式和格式说明
func (p *Printer) Error(err error, expr string, verbose bool) string {
	var (
		countErr *cronpal.FieldCountError
		gramErr  *cronpal.GrammarError
		rangeErr *cronpal.RangeError
		unsatErr *cronpal.UnsatisfiableScheduleError
	)

	var msg string
	switch {
	case errors.As(err, &countErr):
		msg = fmt.Sprintf("Invalid cron expression: %v", err)
	case errors.As(err, &gramErr) && gramErr.Field != "":
		msg = fmt.Sprintf("Field error in %s: %v", gramErr.Field, err)
	case errors.As(err, &gramErr):
		msg = fmt.Sprintf("Parse error: %v", err)
	case errors.As(err, &rangeErr):
		msg = fmt.Sprintf("Field error in %s: %v", rangeErr.Field, err)
	case errors.As(err, &unsatErr):
		msg = fmt.Sprintf("Error: %v", err)
	default:
		msg = fmt.Sprintf("Unexpected error: %v", err)
	}

	out := p.bad.Render("✗") + " " + msg
	if verbose && expr != "" {
		out += fmt.Sprintf("\n  Expression: %q", expr)
		out += "\n  Expected format: [second] <minute> <hour> <day> <month> <weekday>"
	}
	return out
}

// Suggest 针对常见错误给出修正建议，无建议时返回空串
func Suggest(err error, expr string) string {
	var (
		countErr *cronpal.FieldCountError
		gramErr  *cronpal.GrammarError
		rangeErr *cronpal.RangeError
	)

	switch {
	case errors.As(err, &countErr):
		if countErr.Count == 0 {
			return "Provide a cron expression. Example: '0 0 * * *' for daily at midnight"
		}
		if countErr.Count < countErr.Min {
			return "Add missing fields. Example: '0 0 * * *' for daily at midnight"
		}
		return "Remove extra fields. Standard cron uses 5 fields (6 with seconds)"
	case errors.As(err, &rangeErr):
		return fmt.Sprintf("Use a value between %d and %d for the %s field",
			rangeErr.Min, rangeErr.Max, rangeErr.Field)
	case errors.As(err, &gramErr):
		m := gramErr.Msg
		switch {
		case strings.Contains(m, "empty"):
			return "Remove stray commas; list items cannot be empty"
		case strings.Contains(m, "descriptor"):
			return "Valid descriptors: @yearly, @monthly, @weekly, @daily, @hourly, @reboot, @every <duration>"
		case strings.Contains(m, "not a number or name"):
			return "Use only numbers, names, wildcards (*), ranges (-), lists (,), and steps (/)"
		case strings.Contains(m, "descending"):
			return "Write ranges low-to-high; only the weekday field may wrap (e.g. fri-mon)"
		}
	}
	return ""
}

// Simple 渲染逐字段的单行明细
func (p *Printer) Simple(s *cronpal.Schedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cron Expression: %s\n", p.head.Render(s.String()))
	b.WriteString(strings.Repeat("-", 50))
	b.WriteByte('\n')

	if line, ok := p.descriptorLine(s); ok {
		b.WriteString(line)
		return b.String()
	}

	for _, fv := range s.Fields() {
		fmt.Fprintf(&b, "%s %-10s %s\n",
			p.label.Render(fmt.Sprintf("%-13s", displayName(fv)+":")),
			fv.Raw(), describeField(fv))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Table 渲染带边框的分析表格
func (p *Printer) Table(s *cronpal.Schedule) string {
	var lines []string
	lines = append(lines, "┌"+strings.Repeat("─", 78)+"┐")
	lines = append(lines, fmt.Sprintf("│ %s │", p.head.Render(center("Cron Expression Analysis", 76))))
	lines = append(lines, "├"+strings.Repeat("─", 78)+"┤")
	lines = append(lines, fmt.Sprintf("│ Expression: %-64s │", truncate(s.String(), 64)))

	if line, ok := p.descriptorLine(s); ok {
		lines = append(lines, fmt.Sprintf("│ %-76s │", truncate(line, 76)))
		lines = append(lines, "└"+strings.Repeat("─", 78)+"┘")
		return strings.Join(lines, "\n")
	}

	lines = append(lines, "├"+strings.Repeat("─", 17)+"┬"+strings.Repeat("─", 15)+"┬"+strings.Repeat("─", 44)+"┤")
	lines = append(lines, "│ Field           │ Value         │ Description                                │")
	lines = append(lines, "├"+strings.Repeat("─", 17)+"┼"+strings.Repeat("─", 15)+"┼"+strings.Repeat("─", 44)+"┤")
	for _, fv := range s.Fields() {
		lines = append(lines, fmt.Sprintf("│ %-15s │ %-13s │ %-42s │",
			displayName(fv), truncate(fv.Raw(), 13), truncate(describeField(fv), 42)))
	}
	lines = append(lines, "└"+strings.Repeat("─", 17)+"┴"+strings.Repeat("─", 15)+"┴"+strings.Repeat("─", 44)+"┘")
	return strings.Join(lines, "\n")
}

// Detailed 渲染包含取值列表的完整明细
func (p *Printer) Detailed(s *cronpal.Schedule) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("═", 80))
	b.WriteByte('\n')
	fmt.Fprintf(&b, " CRON EXPRESSION: %s\n", p.head.Render(s.String()))
	b.WriteString(strings.Repeat("═", 80))

	if line, ok := p.descriptorLine(s); ok {
		b.WriteString("\n\n " + line + "\n")
		b.WriteString(strings.Repeat("═", 80))
		return b.String()
	}

	for _, fv := range s.Fields() {
		min, max := fv.Bounds()
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "%s %s\n", p.label.Render("▸"), p.head.Render(strings.ToUpper(displayName(fv))))
		b.WriteString("  " + strings.Repeat("─", 76) + "\n")
		fmt.Fprintf(&b, "  Raw Value:    %s\n", fv.Raw())
		fmt.Fprintf(&b, "  Range:        %d-%d\n", min, max)
		fmt.Fprintf(&b, "  Description:  %s\n", describeField(fv))
		if vals := fv.Values(); len(vals) > 0 {
			fmt.Fprintf(&b, "  Values:       %s", formatValues(fv))
		}
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("═", 80))
	return b.String()
}

// descriptorLine 处理没有字段明细的 @every / @reboot
func (p *Printer) descriptorLine(s *cronpal.Schedule) (string, bool) {
	switch {
	case s.IsReboot():
		return "Runs at system startup", true
	case s.Every() > 0:
		return fmt.Sprintf("Runs every %s", s.Every()), true
	}
	return "", false
}

// Summary 生成一句话的调度描述，如 "Runs daily at 02:00"
func Summary(s *cronpal.Schedule) string {
	if s.IsReboot() {
		return "Runs at system startup"
	}
	if s.Every() > 0 {
		return fmt.Sprintf("Runs every %s", s.Every())
	}

	minute, minuteOne := singleValue(s.Minute())
	hour, hourOne := singleValue(s.Hour())
	day, dayOne := singleValue(s.Dom())
	month, monthOne := singleValue(s.Month())
	weekday, weekdayOne := singleValue(s.Dow())

	allWild := s.Minute().Unrestricted() && s.Hour().Unrestricted() &&
		s.Dom().Unrestricted() && s.Month().Unrestricted() && s.Dow().Unrestricted()
	restWild := s.Dom().Unrestricted() && s.Month().Unrestricted() && s.Dow().Unrestricted()

	switch {
	case allWild:
		return "Runs every minute"
	case minuteOne && s.Hour().Unrestricted() && restWild:
		return fmt.Sprintf("Runs every hour at minute %02d", minute)
	case minuteOne && hourOne && restWild:
		return fmt.Sprintf("Runs daily at %02d:%02d", hour, minute)
	case minuteOne && hourOne && weekdayOne && s.Dom().Unrestricted() && s.Month().Unrestricted():
		return fmt.Sprintf("Runs every %s at %02d:%02d", weekdayNames[weekday], hour, minute)
	case minuteOne && hourOne && dayOne && s.Month().Unrestricted() && s.Dow().Unrestricted():
		return fmt.Sprintf("Runs on day %d of every month at %02d:%02d", day, hour, minute)
	case minuteOne && hourOne && dayOne && monthOne && s.Dow().Unrestricted():
		return fmt.Sprintf("Runs on %s %d at %02d:%02d", monthNames[month], day, hour, minute)
	}

	timePart := describeTime(s)
	datePart := describeDate(s)
	switch {
	case timePart != "" && datePart != "":
		return "Runs " + timePart + " " + datePart
	case timePart != "":
		return "Runs " + timePart
	case datePart != "":
		return "Runs " + datePart
	}
	return "Complex schedule"
}

func describeTime(s *cronpal.Schedule) string {
	minute, minuteOne := singleValue(s.Minute())
	hour, hourOne := singleValue(s.Hour())
	switch {
	case minuteOne && hourOne:
		return fmt.Sprintf("at %02d:%02d", hour, minute)
	case minuteOne && !s.Hour().Unrestricted():
		return fmt.Sprintf("at minute %02d of selected hours", minute)
	case hourOne:
		return fmt.Sprintf("at selected minutes of hour %d", hour)
	}
	return "at selected times"
}

func describeDate(s *cronpal.Schedule) string {
	var parts []string

	if !s.Dom().Unrestricted() {
		if desc := describeTokens(s.Dom()); desc != "" {
			parts = append(parts, desc)
		}
		if days := s.Dom().Values(); len(days) == 1 {
			parts = append(parts, fmt.Sprintf("on day %d", days[0]))
		} else if len(days) > 1 {
			parts = append(parts, "on days "+shortList(days))
		}
	}
	if !s.Month().Unrestricted() {
		ms := s.Month().Values()
		names := make([]string, 0, 3)
		for _, m := range ms {
			if len(names) == 3 {
				break
			}
			names = append(names, monthNames[m])
		}
		suffix := ""
		if len(ms) > 3 {
			suffix = "..."
		}
		parts = append(parts, "in "+strings.Join(names, ", ")+suffix)
	}
	if !s.Dow().Unrestricted() {
		if desc := describeTokens(s.Dow()); desc != "" {
			parts = append(parts, desc)
		}
		ds := s.Dow().Values()
		names := make([]string, 0, 3)
		for _, d := range ds {
			if len(names) == 3 {
				break
			}
			names = append(names, weekdayNames[d])
		}
		if len(names) > 0 {
			suffix := ""
			if len(ds) > 3 {
				suffix = "..."
			}
			parts = append(parts, "on "+strings.Join(names, ", ")+suffix)
		}
	}
	return strings.Join(parts, " ")
}

// describeField 生成单个字段的人类可读描述
func describeField(fv cronpal.FieldValue) string {
	if fv.Unrestricted() {
		return "Every " + unitName(fv)
	}

	vals := fv.Values()
	tokens := describeTokens(fv)

	var desc string
	switch {
	case len(vals) == 0:
		desc = ""
	case strings.Contains(fv.Raw(), "/"):
		step := stepOf(vals)
		if strings.Contains(fv.Raw(), "*/") {
			desc = fmt.Sprintf("Every %d %s", step, pluralName(fv))
		} else {
			desc = fmt.Sprintf("Every %d %s from %d", step, pluralName(fv), vals[0])
		}
	case isContiguous(vals) && strings.Contains(fv.Raw(), "-"):
		desc = fmt.Sprintf("From %d to %d", vals[0], vals[len(vals)-1])
	case len(vals) == 1:
		desc = valueName(fv, vals[0])
	case len(vals) <= 5:
		names := make([]string, len(vals))
		for i, v := range vals {
			names[i] = valueName(fv, v)
		}
		desc = strings.Join(names, ", ")
	default:
		desc = fmt.Sprintf("%d selected %s", len(vals), pluralName(fv))
	}

	switch {
	case desc == "":
		return tokens
	case tokens == "":
		return desc
	}
	return desc + "; " + tokens
}

// describeTokens 描述字段携带的特殊记号
func describeTokens(fv cronpal.FieldValue) string {
	var parts []string
	for _, tk := range fv.Tokens() {
		switch tk.Kind {
		case cronpal.TokenLastDay:
			parts = append(parts, "last day of the month")
		case cronpal.TokenLastWeekday:
			parts = append(parts, "last weekday of the month")
		case cronpal.TokenNearestWeekday:
			parts = append(parts, fmt.Sprintf("nearest weekday to day %d", tk.Day))
		case cronpal.TokenNthWeekday:
			parts = append(parts, fmt.Sprintf("%s %s of the month", ordinal(tk.Nth), weekdayNames[tk.Weekday]))
		case cronpal.TokenLastOfWeekday:
			parts = append(parts, fmt.Sprintf("last %s of the month", weekdayNames[tk.Weekday]))
		}
	}
	return strings.Join(parts, ", ")
}

// formatValues 格式化取值列表，过长时首尾截断
func formatValues(fv cronpal.FieldValue) string {
	vals := fv.Values()
	if len(vals) > 20 {
		head := make([]string, 10)
		for i := 0; i < 10; i++ {
			head[i] = fmt.Sprint(vals[i])
		}
		tail := make([]string, 5)
		for i := 0; i < 5; i++ {
			tail[i] = fmt.Sprint(vals[len(vals)-5+i])
		}
		return fmt.Sprintf("%s ... %s (%d values)",
			strings.Join(head, ", "), strings.Join(tail, ", "), len(vals))
	}

	parts := make([]string, len(vals))
	for i, v := range vals {
		switch fv.Name() {
		case "month":
			parts[i] = fmt.Sprintf("%d (%s)", v, monthNames[v])
		case "day of week":
			parts[i] = fmt.Sprintf("%d (%s)", v, weekdayNames[v])
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return strings.Join(parts, ", ")
}

func valueName(fv cronpal.FieldValue, v int) string {
	switch fv.Name() {
	case "month":
		return monthNames[v]
	case "day of week":
		return weekdayNames[v]
	}
	return fmt.Sprintf("At %s %d", unitName(fv), v)
}

func displayName(fv cronpal.FieldValue) string {
	switch fv.Name() {
	case "second":
		return "Second"
	case "minute":
		return "Minute"
	case "hour":
		return "Hour"
	case "day of month":
		return "Day of Month"
	case "month":
		return "Month"
	case "day of week":
		return "Day of Week"
	}
	return fv.Name()
}

func unitName(fv cronpal.FieldValue) string {
	if fv.Name() == "day of month" {
		return "day"
	}
	return fv.Name()
}

func pluralName(fv cronpal.FieldValue) string {
	switch fv.Name() {
	case "day of month":
		return "days"
	case "day of week":
		return "days of week"
	}
	return fv.Name() + "s"
}

func singleValue(fv cronpal.FieldValue) (int, bool) {
	if fv.Unrestricted() {
		return 0, false
	}
	vals := fv.Values()
	if len(vals) != 1 || len(fv.Tokens()) > 0 {
		return 0, false
	}
	return vals[0], true
}

func isContiguous(vals []int) bool {
	if len(vals) < 2 {
		return false
	}
	for i := 1; i < len(vals); i++ {
		if vals[i] != vals[i-1]+1 {
			return false
		}
	}
	return true
}

func stepOf(vals []int) int {
	if len(vals) >= 2 {
		return vals[1] - vals[0]
	}
	return 1
}

func shortList(vals []int) string {
	if len(vals) <= 5 {
		parts := make([]string, len(vals))
		for i, v := range vals {
			parts[i] = fmt.Sprint(v)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%d, %d, ... %d", vals[0], vals[1], vals[len(vals)-1])
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	}
	return fmt.Sprintf("%dth", n)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return fmt.Sprintf("%-*s", n, s)
	}
	return s[:n-3] + "..."
}

func center(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	left := (n - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", n-len(s)-left)
}
