package utils

import (
	"fmt"
	"time"
)

// 日期键与到期时间使用的固定格式
const (
	DateLayout     = "01/02/2006"
	TimeLayout     = "15:04"
	DateTimeLayout = "01/02/2006 15:04"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FormatDay 将日字符串补齐为两位，例如 "1" -> "01"，"10" 保持不变
func FormatDay(day string) string {
	if len(day) == 1 {
		return "0" + day
	}
	return day
}

// ClockPattern 将小时或分钟格式化为两位
func ClockPattern(n int) string {
	return fmt.Sprintf("%02d", n)
}

// DateKey 根据年、月索引（0-11）和日字符串生成 "MM/dd/yyyy" 日期键
func DateKey(year int, monthIndex int, day string) string {
	return fmt.Sprintf("%s/%s/%d", ClockPattern(monthIndex+1), FormatDay(day), year)
}

// ConvertMillisToDate 将毫秒时间戳转换为 "MM/dd/yyyy" 日期字符串
func ConvertMillisToDate(millis int64) string {
	return time.UnixMilli(millis).Format(DateLayout)
}

// ConvertDateTimeToMillis 将日期和时间字符串转换为毫秒时间戳，解析失败返回0
func ConvertDateTimeToMillis(date string, clock string) int64 {
	t, err := time.ParseInLocation(DateTimeLayout, date+" "+clock, time.Local)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

// DaysInMonth 返回指定月份的天数，月索引为0-11，闰年按公历规则处理
func DaysInMonth(monthIndex int, year int) int {
	// 下个月第0天即本月最后一天
	return time.Date(year, time.Month(monthIndex+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayShortName 返回指定日期的星期短名称（Sun..Sat）
func WeekdayShortName(year int, monthIndex int, day int) string {
	return time.Date(year, time.Month(monthIndex+1), day, 0, 0, 0, 0, time.UTC).Format("Mon")
}

// MonthName 根据月索引（0-11）返回月份名称
func MonthName(monthIndex int) string {
	return monthNames[monthIndex]
}
