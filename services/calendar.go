package services

import (
	"strconv"
	"sync"
	"time"

	"TaskMinderGo/utils"
)

// WeekdayDay 星期短名称和日的配对，供日历横向日选择器展示
type WeekdayDay struct {
	Weekday string `json:"weekday"`
	Day     string `json:"day"`
}

// CalendarSelection 日历选择状态：年、月、日游标及派生的星期/日列表
// 自身不做任何I/O，也不感知订阅方，变更由持有它的会话负责传播
type CalendarSelection struct {
	mu sync.Mutex

	selectedYear       int
	selectedMonthIndex int    // 0-11
	selectedDayInMonth string // 原始值，展示和生成日期键时才补零
	weekdaysAndDays    []WeekdayDay
}

// CalendarSnapshot 日历状态的只读视图，日已补零
type CalendarSnapshot struct {
	SelectedYear           int          `json:"selectedYear"`
	SelectedMonthIndex     int          `json:"selectedMonthIndex"`
	SelectedMonth          string       `json:"selectedMonth"`
	SelectedDayInMonth     string       `json:"selectedDayInMonth"`
	WeekdaysAndDaysInMonth []WeekdayDay `json:"weekdaysAndDaysInMonth"`
}

// NewCalendarSelection 以今天为默认值创建日历选择状态
func NewCalendarSelection() *CalendarSelection {
	now := time.Now()
	return NewCalendarSelectionAt(now.Year(), int(now.Month())-1, strconv.Itoa(now.Day()))
}

// NewCalendarSelectionAt 以指定的年、月索引（0-11）和日创建日历选择状态
func NewCalendarSelectionAt(year int, monthIndex int, day string) *CalendarSelection {
	c := &CalendarSelection{
		selectedYear:       year,
		selectedMonthIndex: monthIndex,
		selectedDayInMonth: day,
	}
	c.recomputeDays()
	return c
}

// SetYear 设置年份并重新计算当月的星期/日列表
// 取值范围由调用方约束（界面限制在1900-2100），这里不做校验
func (c *CalendarSelection) SetYear(year int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedYear = year
	c.recomputeDays()
}

// NextMonth 切换到下一个月，12月时不做任何事（不跨年）
func (c *CalendarSelection) NextMonth() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedMonthIndex < 11 {
		c.selectedMonthIndex++
		c.recomputeDays()
	}
}

// PreviousMonth 切换到上一个月，1月时不做任何事（不跨年）
func (c *CalendarSelection) PreviousMonth() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedMonthIndex > 0 {
		c.selectedMonthIndex--
		c.recomputeDays()
	}
}

// SetDayInMonth 直接设置选中的日，不校验是否超出当月天数
// 超出范围的日生成的日期键匹配不到任何任务，得到空列表而不是错误
func (c *CalendarSelection) SetDayInMonth(day string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedDayInMonth = day
}

// DateKey 返回当前选择对应的 "MM/dd/yyyy" 日期键
func (c *CalendarSelection) DateKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return utils.DateKey(c.selectedYear, c.selectedMonthIndex, c.selectedDayInMonth)
}

// SelectedMonth 返回当前选中月份的名称
func (c *CalendarSelection) SelectedMonth() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return utils.MonthName(c.selectedMonthIndex)
}

// Snapshot 返回当前状态的只读视图，日补零后输出
func (c *CalendarSelection) Snapshot() CalendarSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	days := make([]WeekdayDay, len(c.weekdaysAndDays))
	for i, pair := range c.weekdaysAndDays {
		days[i] = WeekdayDay{Weekday: pair.Weekday, Day: utils.FormatDay(pair.Day)}
	}

	return CalendarSnapshot{
		SelectedYear:           c.selectedYear,
		SelectedMonthIndex:     c.selectedMonthIndex,
		SelectedMonth:          utils.MonthName(c.selectedMonthIndex),
		SelectedDayInMonth:     utils.FormatDay(c.selectedDayInMonth),
		WeekdaysAndDaysInMonth: days,
	}
}

// recomputeDays 重新生成当月每一天的（星期短名称, 日）配对，按日升序
// 调用方需持有锁
func (c *CalendarSelection) recomputeDays() {
	total := utils.DaysInMonth(c.selectedMonthIndex, c.selectedYear)
	pairs := make([]WeekdayDay, 0, total)
	for day := 1; day <= total; day++ {
		pairs = append(pairs, WeekdayDay{
			Weekday: utils.WeekdayShortName(c.selectedYear, c.selectedMonthIndex, day),
			Day:     strconv.Itoa(day),
		})
	}
	c.weekdaysAndDays = pairs
}
