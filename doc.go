// Package cronpal 提供 cron 表达式的解析、校验和执行时间推算
//
// 基本用法:
//
//	sched, err := cronpal.ParseStandard("*/15 9-17 * * 1-5")
//	if err != nil {
//	    // 错误携带出错字段的名称和原始子串
//	}
//
//	// 下一次执行时间
//	next, err := sched.Next(time.Now())
//
//	// 之后的 5 次执行时间
//	runs, err := sched.Occurrences(time.Now(), 5)
//
//	// 上一次执行时间
//	prev, err := sched.Prev(time.Now())
//
// 表达式格式:
//
//	分 时 日 月 周          // 经典五字段
//	秒 分 时 日 月 周       // 六字段（带秒）
//
//	0 0 * * *        // 每天零点
//	*/15 * * * *     // 每 15 分钟
//	0 9 * * mon-fri  // 工作日上午 9 点
//	0 0 1 1 *        // 每年 1 月 1 日零点
//
// 描述符:
//
//	@yearly @annually @monthly @weekly @daily @midnight @hourly
//	@every 1h30m
//	@reboot
//
// 特殊日期记号（日字段和星期字段）:
//
//	L      当月最后一天
//	LW     当月最后一个工作日
//	15W    离 15 号最近的工作日
//	1#3    当月第 3 个周一
//	5L     当月最后一个周五
//
// 日期字段和星期字段同时受限时，命中任意一个即算命中（标准 cron 的并集语义）
//
// 错误类型:
//
//	FieldCountError             字段数量错误
//	GrammarError                字段语法错误
//	RangeError                  数值超出字段范围
//	UnsatisfiableScheduleError  表达式在搜索边界内不可满足
//	ErrInvalidCount             批量推算请求的数量小于 1
//
// 所有操作都是同步的纯函数，Schedule 构造后不可变，可并发共享
package cronpal

// Version 是库和命令行工具的版本号
const Version = "1.2.0"
