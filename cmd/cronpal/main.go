// cronpal 命令行工具：解析、校验 cron 表达式并推算执行时间
//
//	cronpal "0 0 * * *"                  # 校验并显示摘要
//	cronpal -n 5 "*/15 9-17 * * 1-5"     # 显示之后 5 次执行时间
//	cronpal -p 3 "@daily"                # 显示之前 3 次执行时间
//	cronpal --format table "0 2 * * 0"   # 表格形式的字段明细
//	cronpal -z Asia/Shanghai "0 9 * * *" # 按指定时区推算
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/darkit/cronpal"
	"github.com/darkit/cronpal/internal/pretty"
)

const timeLayout = "2006-01-02 15:04:05 MST"

type options struct {
	next     int
	previous int
	format   string
	summary  bool
	verbose  bool
	timezone string
	noColor  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if isCronError(err) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

// isCronError 区分用户输入导致的表达式错误和意外错误，两者映射到不同退出码
func isCronError(err error) bool {
	var (
		countErr *cronpal.FieldCountError
		gramErr  *cronpal.GrammarError
		rangeErr *cronpal.RangeError
		unsatErr *cronpal.UnsatisfiableScheduleError
	)
	return errors.As(err, &countErr) || errors.As(err, &gramErr) ||
		errors.As(err, &rangeErr) || errors.As(err, &unsatErr)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cronpal [expression]",
		Short: "Parse and analyze cron expressions",
		Long: `Parse and analyze cron expressions.

Cron Expression Format:
  ┌───────────── minute (0-59)
  │ ┌───────────── hour (0-23)
  │ │ ┌───────────── day of month (1-31)
  │ │ │ ┌───────────── month (1-12)
  │ │ │ │ ┌───────────── day of week (0-7)
  │ │ │ │ │
  * * * * *

A leading seconds field (0-59) makes it a 6-field expression.
Descriptors like @daily, @hourly and @every 1h30m are accepted.`,
		Example: `  cronpal "0 0 * * *"
  cronpal -n 5 "*/15 9-17 * * 1-5"
  cronpal --format table "0 2 * * 0"`,
		Version:       cronpal.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.next, "next", "n", 0, "show next N run times")
	cmd.Flags().IntVarP(&opts.previous, "previous", "p", 0, "show previous N run times")
	cmd.Flags().StringVar(&opts.format, "format", "", "field breakdown format: simple, table or detailed")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "show a human-readable schedule summary")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "enable verbose output")
	cmd.Flags().StringVarP(&opts.timezone, "timezone", "z", "", "IANA timezone for run time calculation (e.g. Europe/London)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	logger := newLogger(opts.verbose)
	printer := pretty.NewPrinter(!opts.noColor)

	if len(args) == 0 {
		return cmd.Help()
	}
	expr := args[0]

	sched, err := cronpal.ParseStandard(expr)
	if err != nil {
		reportError(printer, err, expr, opts.verbose)
		return err
	}
	logger.Debug().
		Str("expression", sched.String()).
		Bool("seconds", sched.HasSeconds()).
		Msg("expression parsed")

	loc := time.Local
	if opts.timezone != "" {
		loc, err = time.LoadLocation(opts.timezone)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ Unknown timezone %q: use an IANA name like Europe/London\n", opts.timezone)
			return err
		}
		logger.Debug().Str("timezone", opts.timezone).Msg("timezone loaded")
	}
	now := time.Now().In(loc)

	fmt.Println(printer.Valid(sched))

	if opts.summary || opts.verbose {
		fmt.Println("  " + pretty.Summary(sched))
	}

	switch opts.format {
	case "":
		if opts.verbose {
			fmt.Println()
			fmt.Println(printer.Simple(sched))
		}
	case "simple":
		fmt.Println()
		fmt.Println(printer.Simple(sched))
	case "table":
		fmt.Println()
		fmt.Println(printer.Table(sched))
	case "detailed":
		fmt.Println()
		fmt.Println(printer.Detailed(sched))
	default:
		return fmt.Errorf("unknown format %q: use simple, table or detailed", opts.format)
	}

	if opts.next > 0 {
		runs, err := sched.Occurrences(now, opts.next)
		if err != nil {
			reportError(printer, err, expr, opts.verbose)
			return err
		}
		fmt.Printf("\nNext %d run(s) from %s:\n", opts.next, now.Format(timeLayout))
		for i, r := range runs {
			fmt.Printf("  %2d. %s\n", i+1, r.Format(timeLayout))
		}
	}

	if opts.previous > 0 {
		runs, err := sched.PrevOccurrences(now, opts.previous)
		if err != nil {
			reportError(printer, err, expr, opts.verbose)
			return err
		}
		fmt.Printf("\nPrevious %d run(s) before %s:\n", opts.previous, now.Format(timeLayout))
		for i, r := range runs {
			fmt.Printf("  %2d. %s\n", i+1, r.Format(timeLayout))
		}
	}

	return nil
}

// newLogger 创建诊断日志，仅 --verbose 时输出
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.Disabled
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func reportError(printer *pretty.Printer, err error, expr string, verbose bool) {
	fmt.Fprintln(os.Stderr, printer.Error(err, expr, verbose))
	if suggestion := pretty.Suggest(err, expr); suggestion != "" {
		fmt.Fprintf(os.Stderr, "  💡 Suggestion: %s\n", suggestion)
	}
}
