// Package schedule 将选题分配到周一/三/五的发布节奏上，每个发布日两个位置
package schedule

import (
	"errors"
	"time"
)

// SlotsPerDay 每个发布日的选题数
const SlotsPerDay = 2

const dateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Allocate 为 n 个选题生成排期日期，从 today 当天（若为发布日）或下一个发布日开始。
// today 只取其在自身时区下的年月日，之后全部按 UTC 日期运算，避免夏令时等引起的偏移
func Allocate(n int, today time.Time) []string {
	if n <= 0 {
		return []string{}
	}

	day := NextCadenceDay(DateOnly(today))
	dates := make([]string, 0, n)
	for len(dates) < n {
		ds := day.Format(dateLayout)
		for slot := 0; slot < SlotsPerDay && len(dates) < n; slot++ {
			dates = append(dates, ds)
		}
		day = day.AddDate(0, 0, stepAfter(day.Weekday()))
	}
	return dates
}

// DateOnly 取 t 在其时区下的日历日期，返回该日期的 UTC 零点
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsCadenceDay 是否为周一/三/五
func IsCadenceDay(wd time.Weekday) bool {
	return wd == time.Monday || wd == time.Wednesday || wd == time.Friday
}

// NextCadenceDay 返回 d 当天或之后的第一个发布日
func NextCadenceDay(d time.Time) time.Time {
	for !IsCadenceDay(d.Weekday()) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func stepAfter(wd time.Weekday) int {
	switch wd {
	case time.Monday, time.Wednesday:
		return 2
	case time.Friday:
		return 3
	default:
		// 非发布日不会出现在序列中，兜底前进一天
		return 1
	}
}

// ParseDate 解析 YYYY-MM-DD，返回 UTC 零点
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ValidateCadenceDate 校验日期字符串落在发布日上
func ValidateCadenceDate(s string) (bool, error) {
	t, err := ParseDate(s)
	if err != nil {
		return false, err
	}
	return IsCadenceDay(t.Weekday()), nil
}
