package services

import (
	"strconv"
	"testing"

	"TaskMinderGo/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayListMatchesMonthLength(t *testing.T) {
	for year := 2023; year <= 2024; year++ {
		for month := 0; month < 12; month++ {
			c := NewCalendarSelectionAt(year, month, "1")
			snapshot := c.Snapshot()
			assert.Len(t, snapshot.WeekdaysAndDaysInMonth, utils.DaysInMonth(month, year),
				"year=%d month=%d", year, month)
		}
	}
}

func TestDayListAscendingAndPadded(t *testing.T) {
	c := NewCalendarSelectionAt(2024, 0, "1")
	days := c.Snapshot().WeekdaysAndDaysInMonth

	require.NotEmpty(t, days)
	assert.Equal(t, "01", days[0].Day)
	for i, pair := range days {
		assert.Equal(t, utils.FormatDay(strconv.Itoa(i+1)), pair.Day)
		assert.NotEmpty(t, pair.Weekday)
	}
}

func TestNextMonthNoOpAtDecember(t *testing.T) {
	c := NewCalendarSelectionAt(2024, 11, "1")
	c.NextMonth()
	assert.Equal(t, 11, c.Snapshot().SelectedMonthIndex)
	assert.Equal(t, 2024, c.Snapshot().SelectedYear)
}

func TestPreviousMonthNoOpAtJanuary(t *testing.T) {
	c := NewCalendarSelectionAt(2024, 0, "1")
	c.PreviousMonth()
	assert.Equal(t, 0, c.Snapshot().SelectedMonthIndex)
	assert.Equal(t, 2024, c.Snapshot().SelectedYear)
}

func TestMonthStepRecomputesDayList(t *testing.T) {
	// 2024年1月31天，2月29天
	c := NewCalendarSelectionAt(2024, 0, "1")
	c.NextMonth()
	assert.Len(t, c.Snapshot().WeekdaysAndDaysInMonth, 29)
	c.PreviousMonth()
	assert.Len(t, c.Snapshot().WeekdaysAndDaysInMonth, 31)
}

func TestSetYearRecomputesDayList(t *testing.T) {
	c := NewCalendarSelectionAt(2024, 1, "1")
	assert.Len(t, c.Snapshot().WeekdaysAndDaysInMonth, 29)
	c.SetYear(2023)
	assert.Len(t, c.Snapshot().WeekdaysAndDaysInMonth, 28)
}

func TestDateKeyDerivation(t *testing.T) {
	c := NewCalendarSelectionAt(2024, 0, "5")
	assert.Equal(t, "01/05/2024", c.DateKey())
}

func TestPreviousMonthFromMarchDerivesFebruaryKey(t *testing.T) {
	c := NewCalendarSelectionAt(2024, 2, "1")
	c.SetYear(2024)
	c.PreviousMonth()
	c.SetDayInMonth("15")
	assert.Equal(t, "02/15/2024", c.DateKey())
}

func TestDayNotClampedOnMonthChange(t *testing.T) {
	// 选中31日后切到30天的月份，选择保持不变
	c := NewCalendarSelectionAt(2024, 2, "31")
	c.NextMonth()
	snapshot := c.Snapshot()
	assert.Equal(t, "31", snapshot.SelectedDayInMonth)
	assert.Equal(t, "04/31/2024", c.DateKey())
}

func TestSetDayDoesNotRecomputeDayList(t *testing.T) {
	c := NewCalendarSelectionAt(2024, 0, "1")
	before := c.Snapshot().WeekdaysAndDaysInMonth
	c.SetDayInMonth("15")
	assert.Equal(t, before, c.Snapshot().WeekdaysAndDaysInMonth)
}

func TestSelectedMonthName(t *testing.T) {
	c := NewCalendarSelectionAt(2024, 0, "1")
	assert.Equal(t, "January", c.SelectedMonth())
	c.NextMonth()
	assert.Equal(t, "February", c.SelectedMonth())
}

func TestSnapshotPadsSelectedDay(t *testing.T) {
	c := NewCalendarSelectionAt(2024, 0, "5")
	assert.Equal(t, "05", c.Snapshot().SelectedDayInMonth)
}
