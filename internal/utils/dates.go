package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DefaultDate 无法解析时的兜底日期
const DefaultDate = "1970-01-01"

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// NormalizeDate 把选举数据里各种写法的日期归一化为 YYYY-MM-DD
// "May 2019" -> "2019-05-01"; "15 May 2019" -> "2019-05-15"; 解析失败 -> "1970-01-01"
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DefaultDate
	}

	// 快速路径："月份 年份"，缺失的日补为 1 号
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 2 {
		if month, ok := monthNames[fields[0]]; ok {
			if year := StringToInt(fields[1]); year >= 1000 && year <= 9999 {
				return fmt.Sprintf("%04d-%02d-01", year, month)
			}
		}
	}

	// 纯年份："2019" -> "2019-01-01"
	if len(fields) == 1 {
		if year := StringToInt(fields[0]); year >= 1000 && year <= 9999 {
			return fmt.Sprintf("%04d-01-01", year)
		}
	}

	// 数字日期按日在前解读（15/05/2019 是 5 月 15 日），歧义时允许换位重试
	t, err := dateparse.ParseAny(s,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true))
	if err != nil {
		return DefaultDate
	}
	return t.Format("2006-01-02")
}
